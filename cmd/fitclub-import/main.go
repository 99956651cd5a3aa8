package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitclub/internal/catalog"
	"github.com/claude/fitclub/internal/config"
	"github.com/claude/fitclub/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	file := flag.String("file", "", "path to a JSON or CSV exercise catalog")
	seed := flag.Bool("seed", false, "import the built-in exercise catalog")
	dryRun := flag.Bool("dry-run", false, "report counts without writing to the database")
	force := flag.Bool("force", false, "import even if the file was imported before")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*file == "") == !*seed {
		fmt.Fprintf(os.Stderr, "Usage: fitclub-import -config config.yaml (-file catalog.json | -seed) [-dry-run] [-force]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode: no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Import state lets unchanged files be skipped on the next run
	var state *catalog.StateDB
	if !*force {
		state, err = catalog.OpenStateDB(cfg.Import.StateDir)
		if err != nil {
			log.Error("failed to open import state", "error", err)
			os.Exit(1)
		}
		defer state.Close()
	}

	imp := catalog.NewImporter(db, state, log, *dryRun)

	var stats *catalog.Stats
	if *seed {
		stats, err = imp.ImportSeed(ctx)
	} else {
		stats, err = imp.ImportFile(ctx, *file)
	}
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *catalog.Stats) {
	if stats == nil {
		return
	}
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"exercises_received", stats.Received,
		"exercises_upserted", stats.Upserted,
	)
}
