package main

import (
	"context"
	"fmt"
	"os"

	"dgkit/internal/filter"
	"dgkit/internal/pipeline"
	"dgkit/internal/sink"
	"dgkit/internal/summary"

	"github.com/urfave/cli/v3"
)

// convertCommand implements "convert": stream one or more gzipped Discogs
// XML dumps into JSON or JSON Lines files, console, or a no-op destination
// (spec.md §6 "convert").
func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert gzipped Discogs XML dumps into record files",
		ArgsUsage: "INPUT...",
		Flags: append(sharedFlags(),
			&cli.StringFlag{Name: "format", Required: true, Usage: "json | jsonl | console | blackhole"},
			&cli.StringFlag{Name: "output-dir", Usage: "destination directory for file sinks"},
			&cli.StringFlag{Name: "compress", Usage: "none | gz | bz2"},
			&cli.BoolFlag{Name: "overwrite", Usage: "allow overwriting an existing output file"},
		),
		Action: runConvert,
	}
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("convert: at least one input file is required")
	}

	format := cmd.String("format")

	compression, err := compressionFor(cmd.String("compress"))
	if err != nil {
		return err
	}

	filters, err := buildFilterChain(cmd)
	if err != nil {
		return err
	}

	opts := pipelineOptions(cmd)

	// Blackhole and console aggregate inputs (spec.md §4.6): one sink, one
	// Driver.Run call over every input file.
	switch format {
	case "blackhole":
		return runAggregated(ctx, cmd, sink.Blackhole{}, inputs, filters, opts)
	case "console":
		return runAggregated(ctx, cmd, sink.Console{Writer: os.Stdout}, inputs, filters, opts)
	case "json", "jsonl":
		return runPerFile(ctx, cmd, inputs, format, cmd.String("output-dir"), compression, cmd.Bool("overwrite"), filters, opts)
	default:
		return fmt.Errorf("convert: unknown --format %q (want json, jsonl, console, or blackhole)", format)
	}
}

func runAggregated(ctx context.Context, cmd *cli.Command, s sink.Sink, inputs []string, filters *filter.Chain, opts pipeline.Options) error {
	driver := pipeline.NewDriver(s, filters, opts)
	sum, runErr := driver.Run(ctx, inputs)
	displaySummary(cmd, sum)
	return runErr
}

// runPerFile drives one Driver.Run per input file: JSON and JSON Lines
// sinks don't aggregate inputs (spec.md §4.6), so each file needs its own
// output path, and the per-file summaries are merged for the final report.
func runPerFile(ctx context.Context, cmd *cli.Command, inputs []string, format, outputDir string, compression sink.Compression, overwrite bool, filters *filter.Chain, opts pipeline.Options) error {
	total := &summary.Summary{}
	for _, input := range inputs {
		s, err := fileSinkFor(format, input, outputDir, compression, overwrite)
		if err != nil {
			return err
		}
		driver := pipeline.NewDriver(s, filters, opts)
		fileSum, runErr := driver.Run(ctx, []string{input})
		total.Merge(fileSum)
		if runErr != nil {
			displaySummary(cmd, total)
			return runErr
		}
	}
	displaySummary(cmd, total)
	return nil
}

func fileSinkFor(format, input, outputDir string, compression sink.Compression, overwrite bool) (sink.Sink, error) {
	switch format {
	case "json":
		path := outputPathFor(input, outputDir, "json", compression)
		return &sink.JSONSink{Path: path, Compression: compression, Overwrite: overwrite}, nil
	case "jsonl":
		path := outputPathFor(input, outputDir, "jsonl", compression)
		return &sink.JSONLinesSink{Path: path, Compression: compression, Overwrite: overwrite}, nil
	default:
		return nil, fmt.Errorf("convert: unknown --format %q", format)
	}
}

func displaySummary(cmd *cli.Command, sum *summary.Summary) {
	if cmd.Bool("summary") && sum != nil {
		sum.Display(os.Stderr)
	}
}
