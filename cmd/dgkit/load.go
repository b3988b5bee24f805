package main

import (
	"context"
	"fmt"
	"os"

	"dgkit/internal/config"
	"dgkit/internal/pipeline"
	"dgkit/internal/relstore"

	"github.com/urfave/cli/v3"
)

// loadCommand implements "load": bulk-load one or more gzipped Discogs XML
// dumps into SQLite or PostgreSQL (spec.md §6 "load"). The relational
// sink aggregates inputs, so every input file shares one Store/Backend.
// --batch and --commit-interval default to cfg's values (DGKIT_BATCH_SIZE /
// DGKIT_COMMIT_INTERVAL), falling back to config.Defaults() when unset.
func loadCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "load gzipped Discogs XML dumps into a relational database",
		ArgsUsage: "INPUT...",
		Flags: append(sharedFlags(),
			&cli.StringFlag{Name: "dsn", Required: true, Usage: "sqlite:///path, sqlite:///:memory:, or postgresql://..."},
			&cli.IntFlag{Name: "batch", Value: int64(cfg.DefaultBatchSize), Usage: "rows buffered per table/junction before a flush"},
			&cli.IntFlag{Name: "commit-interval", Value: int64(cfg.DefaultCommitInterval), Usage: "PostgreSQL only: rows between commits (0 = commit every flush)"},
		),
		Action: runLoad,
	}
}

func runLoad(ctx context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("load: at least one input file is required")
	}

	parsed, err := relstore.ParseDSN(cmd.String("dsn"))
	if err != nil {
		return err
	}

	backend, err := openBackend(ctx, parsed, int(cmd.Int("commit-interval")))
	if err != nil {
		return err
	}

	batch := int(cmd.Int("batch"))
	store := relstore.NewStore(backend, batch)
	relSink := relstore.NewRelSink(ctx, store)

	filters, err := buildFilterChain(cmd)
	if err != nil {
		return err
	}

	driver := pipeline.NewDriver(relSink, filters, pipelineOptions(cmd))
	sum, runErr := driver.Run(ctx, inputs)

	if cmd.Bool("summary") {
		sum.Display(os.Stderr)
	}
	return runErr
}

func openBackend(ctx context.Context, dsn relstore.ParsedDSN, commitInterval int) (relstore.Backend, error) {
	switch dsn.Dialect {
	case relstore.DialectSQLite:
		if dsn.Target != ":memory:" {
			if _, err := os.Stat(dsn.Target); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("load: checking sqlite path %s: %w", dsn.Target, err)
			}
		}
		return relstore.OpenSQLite(dsn.Target)
	case relstore.DialectPostgres:
		return relstore.OpenPostgres(ctx, dsn.Target, commitInterval)
	default:
		return nil, fmt.Errorf("load: unsupported dialect")
	}
}
