package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dgkit/internal/filter"
	"dgkit/internal/pipeline"
	"dgkit/internal/sink"

	"github.com/urfave/cli/v3"
)

// sharedFlags are the flags common to convert and load (spec.md §6).
func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "limit", Usage: "stop each input after N elements"},
		&cli.StringFlag{Name: "type", Usage: "override entity detection (artists|labels|masters|releases)"},
		&cli.StringFlag{Name: "drop-if", Usage: "drop records matching this filter expression"},
		&cli.StringFlag{Name: "unset", Usage: "comma-separated field names to null out on every record"},
		&cli.BoolFlag{Name: "summary", Value: true, Usage: "print the run summary"},
		&cli.BoolFlag{Name: "progress", Value: true, Usage: "print progress"},
		&cli.BoolFlag{Name: "strict", Usage: "audit each element for unread tags/attributes"},
		&cli.BoolFlag{Name: "strict-fail", Usage: "treat unhandled data or parse errors as fatal (implies --strict)"},
	}
}

// buildFilterChain assembles the filter chain from --drop-if and --unset
// (spec.md §4.5).
func buildFilterChain(cmd *cli.Command) (*filter.Chain, error) {
	var filters []filter.Filter

	if expr := cmd.String("drop-if"); expr != "" {
		parsed, err := filter.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("--drop-if: %w", err)
		}
		filters = append(filters, filter.ExprFilter{Expr: parsed})
	}

	if unset := cmd.String("unset"); unset != "" {
		fields := strings.Split(unset, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		filters = append(filters, filter.UnsetFilter{Fields: fields})
	}

	if len(filters) == 0 {
		return nil, nil
	}
	return filter.NewChain(filters...), nil
}

// pipelineOptions builds the shared pipeline.Options from shared flags.
func pipelineOptions(cmd *cli.Command) pipeline.Options {
	strict := cmd.Bool("strict") || cmd.Bool("strict-fail")

	var progress pipeline.ProgressFunc
	if cmd.Bool("progress") {
		progress = func(p pipeline.Progress) {
			if p.ElementsLimit > 0 {
				fmt.Fprintf(os.Stderr, "\r%s: %d/%d elements", p.File, p.ElementsDone, p.ElementsLimit)
			} else if p.TotalSize > 0 {
				fmt.Fprintf(os.Stderr, "\r%s: %.1f%%", p.File, 100*float64(p.BytesRead)/float64(p.TotalSize))
			}
		}
	}

	return pipeline.Options{
		EntityOverride:  cmd.String("type"),
		Limit:           int(cmd.Int("limit")),
		Strict:          strict,
		FailOnUnhandled: cmd.Bool("strict-fail"),
		Progress:        progress,
	}
}

// compressionFor maps the --compress flag value to a sink.Compression.
func compressionFor(value string) (sink.Compression, error) {
	switch value {
	case "", "none":
		return sink.CompressionNone, nil
	case "gz", "gzip":
		return sink.CompressionGzip, nil
	case "bz2", "bzip2":
		return sink.CompressionBzip, nil
	default:
		return "", fmt.Errorf("unknown --compress value %q", value)
	}
}

// outputPathFor derives "<stem>.<format>[.<ext>]" in outputDir, stripping
// ".xml.gz" from the input's base name (spec.md §6 "Output: file sinks").
func outputPathFor(inputPath, outputDir, formatExt string, compression sink.Compression) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, ".xml.gz")
	name := stem + "." + formatExt + compression.Extension()
	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	return filepath.Join(outputDir, name)
}
