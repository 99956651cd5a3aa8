package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/claude/fitclub/internal/models"
)

// Store is the part of the storage layer the importer writes to.
type Store interface {
	UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error)
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int   `json:"files_processed"`
	FilesSkipped   int   `json:"files_skipped"`
	Received       int   `json:"received"`
	Upserted       int64 `json:"upserted"`
}

// Importer loads catalog files into the store.
type Importer struct {
	store  Store
	state  *StateDB
	log    *slog.Logger
	dryRun bool
}

// NewImporter creates an Importer. state may be nil, in which case every file
// is imported regardless of previous runs.
func NewImporter(store Store, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{store: store, state: state, log: log, dryRun: dryRun}
}

// ImportFile imports a catalog file, skipping it when the state DB shows the
// same content was imported before.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*Stats, error) {
	stats := &Stats{}

	format, err := FormatFromPath(path)
	if err != nil {
		return stats, err
	}

	file, err := StatCatalogFile(path)
	if err != nil {
		return stats, fmt.Errorf("reading %s: %w", path, err)
	}

	if imp.state != nil {
		done, err := imp.state.Delivered(LocalDestination, file)
		if err != nil {
			return stats, fmt.Errorf("checking import state: %w", err)
		}
		if done {
			imp.log.Info("catalog unchanged, skipping", "path", file.Path)
			stats.FilesSkipped++
			return stats, nil
		}
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return stats, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := imp.load(ctx, f, format, stats); err != nil {
		return stats, fmt.Errorf("importing %s: %w", path, err)
	}

	if imp.state != nil && !imp.dryRun {
		if err := imp.state.MarkDelivered(LocalDestination, file, stats.Received); err != nil {
			imp.log.Warn("failed to record import state", "path", file.Path, "error", err)
		}
	}
	return stats, nil
}

// ImportReader imports a catalog from r without consulting the state DB.
func (imp *Importer) ImportReader(ctx context.Context, r io.Reader, format Format) (*Stats, error) {
	stats := &Stats{}
	if err := imp.load(ctx, r, format, stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// ImportSeed imports the embedded default catalog.
func (imp *Importer) ImportSeed(ctx context.Context) (*Stats, error) {
	return imp.ImportReader(ctx, bytes.NewReader(SeedCatalog()), FormatJSON)
}

func (imp *Importer) load(ctx context.Context, r io.Reader, format Format, stats *Stats) error {
	exercises, err := Parse(r, format)
	if err != nil {
		return fmt.Errorf("parsing %s catalog: %w", format, err)
	}
	stats.FilesProcessed++
	stats.Received += len(exercises)

	if imp.dryRun || len(exercises) == 0 {
		imp.log.Info("catalog parsed", "format", format.String(), "exercises", len(exercises), "dry_run", imp.dryRun)
		return nil
	}

	n, err := imp.store.UpsertExercises(ctx, exercises)
	if err != nil {
		return fmt.Errorf("storing exercises: %w", err)
	}
	stats.Upserted += n
	imp.log.Info("catalog imported", "format", format.String(), "exercises", len(exercises), "upserted", n)
	return nil
}
