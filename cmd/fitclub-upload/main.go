package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/claude/fitclub/internal/catalog"
	"github.com/claude/fitclub/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "FitClub server URL (e.g. https://fitclub.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("FITCLUB_AUTH_API_KEY"), "API key (defaults to $FITCLUB_AUTH_API_KEY)")
	dryRun := flag.Bool("dry-run", false, "parse catalogs but don't send them to the server")
	force := flag.Bool("force", false, "upload even if a file was uploaded before")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitclub-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: fitclub-upload -server <URL> [-api-key KEY] [-dry-run] [-force] catalog.json [more.csv ...]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if (*serverURL == "" || *apiKey == "") && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server and -api-key are required (or use -dry-run)\n")
		os.Exit(1)
	}

	// Open state database
	var state *catalog.StateDB
	if !*force {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		state, err = catalog.OpenStateDB(filepath.Join(homeDir, ".fitclub-upload"))
		if err != nil {
			log.Error("failed to open state database", "error", err)
			os.Exit(1)
		}
		defer state.Close()
	}

	// Create client (nil-safe in dry-run mode)
	var client *upload.Client
	if !*dryRun {
		client = upload.NewClient(*serverURL, *apiKey)
	}

	if *dryRun {
		log.Info("DRY RUN mode: catalogs will be parsed but not sent")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uploader := upload.New(client, state, *dryRun, log)
	stats, err := uploader.Run(ctx, paths)
	printStats(stats)
	if err != nil {
		log.Error("upload failed", "error", err)
		os.Exit(1)
	}
	log.Info("upload complete")
}

func printStats(stats *upload.Stats) {
	fmt.Println()
	fmt.Println("=== Upload Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files uploaded:   %d\n", stats.FilesUploaded)
	fmt.Printf("  Files skipped:    %d (already uploaded)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Exercises parsed: %d\n", stats.Exercises)
	fmt.Printf("  Rows upserted:    %d\n", stats.Upserted)
	fmt.Println()
}
