// Package pipeline implements C8, the driver that composes C1-C7: for
// each input file it picks a parser, streams elements through the
// extractor, optionally audits them in strict mode, routes the resulting
// records through the filter chain and sink, and reports progress and a
// final summary. Grounded on the teacher's ParseXMLFiles orchestration
// (internal/services/discogsXMLParser.service.go in
// _examples/Bparsons0904-waugzee), which drives the same per-file,
// per-element, per-record loop over GORM writes instead of this pipeline's
// sink abstraction.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"dgkit/internal/filter"
	"dgkit/internal/logger"
	"dgkit/internal/reader"
	"dgkit/internal/records"
	"dgkit/internal/sink"
	"dgkit/internal/summary"
	"dgkit/internal/xmlstream"
)

// Options configures one pipeline run.
type Options struct {
	// EntityOverride bypasses the filename regex (spec.md §6 "--type").
	EntityOverride string
	// Limit stops each input file after N elements (0 = unlimited).
	Limit int
	// Strict enables the unhandled-data audit (C3) after each element.
	Strict bool
	// FailOnUnhandled makes a parse error or a strict-mode unhandled
	// finding abort the run instead of recording a warning.
	FailOnUnhandled bool
	Progress        ProgressFunc
}

// cleanMarker lets a sink (the relational sink, specifically) learn
// whether the run finished without error, without the pipeline package
// depending on internal/relstore directly.
type cleanMarker interface{ MarkClean() }

// Driver ties the filter chain and one sink to repeated file runs,
// accumulating one Summary across every input (spec.md §4.8 step 6).
type Driver struct {
	Sink    sink.Sink
	Filters *filter.Chain
	Opts    Options

	log logger.Logger
}

// NewDriver builds a Driver. filters may be nil (no filter chain).
func NewDriver(s sink.Sink, filters *filter.Chain, opts Options) *Driver {
	return &Driver{Sink: s, Filters: filters, Opts: opts, log: logger.New("pipeline")}
}

// Run processes every input path in order, opening/closing the sink once
// for the whole run if it aggregates inputs, or once per file otherwise
// (spec.md §4.8 "Aggregating sinks open once for the whole run").
func (d *Driver) Run(ctx context.Context, paths []string) (*summary.Summary, error) {
	var sum summary.Summary
	sum.Start()
	defer sum.Stop()

	aggregating := d.Sink.AggregatesInputs()
	if aggregating {
		if err := d.Sink.Open(); err != nil {
			return &sum, fmt.Errorf("pipeline: open sink: %w", err)
		}
	}

	var runErr error
	for _, path := range paths {
		if !aggregating {
			if err := d.Sink.Open(); err != nil {
				runErr = fmt.Errorf("pipeline: open sink for %s: %w", path, err)
				break
			}
		}

		err := d.runFile(ctx, path, &sum)

		if !aggregating {
			if closeErr := d.Sink.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("pipeline: close sink for %s: %w", path, closeErr)
			}
		}

		if err != nil {
			runErr = err
			break
		}
	}

	if aggregating {
		if runErr == nil {
			if marker, ok := d.Sink.(cleanMarker); ok {
				marker.MarkClean()
			}
		}
		if closeErr := d.Sink.Close(); closeErr != nil && runErr == nil {
			runErr = fmt.Errorf("pipeline: close sink: %w", closeErr)
		}
	}

	return &sum, runErr
}

func (d *Driver) runFile(ctx context.Context, path string, sum *summary.Summary) error {
	entity := d.Opts.EntityOverride
	if entity == "" {
		var ok bool
		entity, ok = records.EntityFromFilename(filepath.Base(path))
		if !ok {
			return fmt.Errorf("pipeline: %s does not match the input filename pattern and no --type override was given", path)
		}
	}

	targetTag, requireRootParent, err := records.TargetTag(entity)
	if err != nil {
		return fmt.Errorf("pipeline: %s: %w", path, err)
	}

	d.log.Info("processing input file", "path", path, "entity", entity)

	r, err := reader.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	ex := xmlstream.New(r.Bytes(), targetTag, requireRootParent, d.Opts.Limit)
	elementsDone := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		el, err := ex.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("pipeline: %s: %w", path, err)
		}

		if err := d.processElement(entity, el, sum); err != nil {
			return fmt.Errorf("pipeline: %s: %w", path, err)
		}

		elementsDone++
		d.reportProgress(path, r, elementsDone)
	}

	return nil
}

func (d *Driver) processElement(entity string, el *xmlstream.Element, sum *summary.Summary) error {
	tracked := xmlstream.Wrap(el)

	recs, parseErr := records.Parse(entity, tracked)
	if parseErr != nil {
		sum.IncUnhandled()
		sum.Warn("%s", parseErr.Error())
		if d.Opts.FailOnUnhandled {
			return parseErr
		}
		return nil
	}

	for _, rec := range recs {
		sum.IncRead()

		result := filter.Result{Record: rec}
		if d.Filters != nil {
			var err error
			result, err = d.Filters.Apply(rec)
			if err != nil {
				return err
			}
		}

		if result.Dropped {
			sum.IncDropped()
			continue
		}
		if result.Modified {
			sum.IncModified()
		}

		if err := d.Sink.Write(result.Record); err != nil {
			return err
		}
		sum.IncWritten()
	}

	if d.Opts.Strict {
		id := bestEffortID(el)
		if unaccessed := tracked.Unaccessed(); len(unaccessed) > 0 {
			sum.IncUnhandled()
			warning := fmt.Sprintf("Unhandled in %s id=%s: %s", el.Tag, id, joinPaths(unaccessed))
			sum.Warn("%s", warning)
			if d.Opts.FailOnUnhandled {
				return fmt.Errorf("%s", warning)
			}
		}
	}

	return nil
}

func (d *Driver) reportProgress(path string, r *reader.Reader, elementsDone int) {
	if d.Opts.Progress == nil {
		return
	}
	p := Progress{File: path}
	if d.Opts.Limit > 0 {
		p.ElementsDone = elementsDone
		p.ElementsLimit = d.Opts.Limit
	} else {
		p.BytesRead = r.BytesRead()
		p.TotalSize = r.TotalSize()
	}
	d.Opts.Progress(p)
}

func bestEffortID(el *xmlstream.Element) string {
	if id, ok := el.Attr("id"); ok && id != "" {
		return id
	}
	if id, ok := el.FindText("id"); ok && id != "" {
		return id
	}
	return "?"
}

func joinPaths(paths []string) string {
	out := ""
	for i, p := range paths {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
