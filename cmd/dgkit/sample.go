package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dgkit/internal/reader"
	"dgkit/internal/records"
	"dgkit/internal/xmlstream"

	"github.com/klauspost/compress/gzip"
	"github.com/urfave/cli/v3"
)

// sampleCommand implements "sample": slice the first N root-level entity
// elements of an input back out as a well-formed, re-gzipped XML document
// (spec.md §6 "sample", supplemented from original_source/src/dgkit/
// sampler.py per SPEC_FULL.md §12.2 — "peripheral, not specified in
// detail" in the original spec).
func sampleCommand() *cli.Command {
	return &cli.Command{
		Name:      "sample",
		Usage:     "write the first N elements of a gzipped Discogs XML dump back out as XML",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Value: 10, Usage: "number of elements to keep"},
			&cli.StringFlag{Name: "output", Usage: "destination path (default: <stem>_sample_<N>.xml.gz)"},
			&cli.StringFlag{Name: "type", Usage: "override entity detection (artists|labels|masters|releases)"},
			&cli.BoolFlag{Name: "overwrite", Usage: "allow overwriting an existing output file"},
			&cli.BoolFlag{Name: "progress", Value: true, Usage: "print progress"},
		},
		Action: runSample,
	}
}

func runSample(ctx context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) != 1 {
		return fmt.Errorf("sample: exactly one input file is required")
	}
	input := inputs[0]
	count := int(cmd.Int("count"))
	if count <= 0 {
		return fmt.Errorf("sample: --count must be positive")
	}

	entity := cmd.String("type")
	if entity == "" {
		var ok bool
		entity, ok = records.EntityFromFilename(filepath.Base(input))
		if !ok {
			return fmt.Errorf("sample: %s does not match the input filename pattern and no --type override was given", input)
		}
	}
	targetTag, requireRootParent, err := records.TargetTag(entity)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = defaultSampleOutput(input, count)
	}

	r, err := reader.Open(input)
	if err != nil {
		return err
	}
	defer r.Close()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !cmd.Bool("overwrite") {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(output, flags, 0o644)
	if err != nil {
		return fmt.Errorf("sample: open output %s: %w", output, err)
	}
	gz := gzip.NewWriter(out)

	n, copyErr := xmlstream.CopyElements(gz, r.Bytes(), targetTag, requireRootParent, count)

	closeErr := gz.Close()
	fileErr := out.Close()

	if copyErr != nil {
		return copyErr
	}
	if closeErr != nil {
		return fmt.Errorf("sample: closing gzip writer: %w", closeErr)
	}
	if fileErr != nil {
		return fmt.Errorf("sample: closing output file: %w", fileErr)
	}

	if cmd.Bool("progress") {
		fmt.Fprintf(os.Stderr, "wrote %d elements to %s\n", n, output)
	}
	return nil
}

// defaultSampleOutput implements spec.md §6 "Sample filename:
// <stem>_sample_<N>.xml.gz".
func defaultSampleOutput(input string, n int) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, ".xml.gz")
	return filepath.Join(filepath.Dir(input), fmt.Sprintf("%s_sample_%d.xml.gz", stem, n))
}
