// Command dgkit is the CLI front end for the ingestion engine: convert
// reads gzipped Discogs XML dumps into JSON/JSON-Lines files, load bulk
// loads them into SQLite or PostgreSQL, and sample slices the first N
// elements of a file back out as a smaller gzipped XML document. The CLI
// itself is out of scope for the core (spec.md §1); this wiring is the
// thin urfave/cli/v3 front end spec.md §6 describes, grounded on the
// teacher's urfave-free mains plus farcloser-haustorium's
// cmd/haustorium/main.go Command/Flags/Action layout.
package main

import (
	"context"
	"os"

	"dgkit/internal/config"
	"dgkit/internal/logger"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.New("cmd").Er("failed to load config, falling back to built-in defaults", err)
		cfg = config.Defaults()
	}
	if cfg.LogFormat == "text" {
		os.Setenv("LOG_FORMAT", "text")
	}
	log := logger.New("cmd")

	app := &cli.Command{
		Name:  "dgkit",
		Usage: "stream Discogs XML dumps into files or a database",
		Commands: []*cli.Command{
			convertCommand(),
			loadCommand(cfg),
			sampleCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Er("dgkit failed", err)
		os.Exit(1)
	}
}
