// Package upload pushes local catalog files to a remote FitClub server.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitclub/internal/catalog"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int
	Exercises     int
	Upserted      int64
}

// Uploader validates catalog files locally and sends the changed ones.
type Uploader struct {
	client *Client
	state  *catalog.StateDB
	dryRun bool
	log    *slog.Logger
}

// New creates an Uploader. client may be nil in dry-run mode and state may be
// nil to upload every file regardless of previous runs.
func New(client *Client, state *catalog.StateDB, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{client: client, state: state, dryRun: dryRun, log: log}
}

// Run uploads each file in turn. A file that fails is counted and logged; the
// rest are still attempted.
func (u *Uploader) Run(ctx context.Context, paths []string) (*Stats, error) {
	stats := &Stats{FilesTotal: len(paths)}
	var firstErr error

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := u.uploadFile(ctx, path, stats); err != nil {
			u.log.Error("upload failed", "path", path, "error", err)
			stats.FilesErrored++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return stats, fmt.Errorf("%d of %d files failed: %w", stats.FilesErrored, stats.FilesTotal, firstErr)
	}
	return stats, nil
}

func (u *Uploader) uploadFile(ctx context.Context, path string, stats *Stats) error {
	format, err := catalog.FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := catalog.StatCatalogFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// Delivery is tracked per server: a catalog already on one server still
	// goes to another.
	destination := u.destination()
	if u.state != nil {
		done, err := u.state.Delivered(destination, file)
		if err != nil {
			return fmt.Errorf("checking upload state: %w", err)
		}
		if done {
			u.log.Info("catalog unchanged, skipping", "path", file.Path, "server", destination)
			stats.FilesSkipped++
			return nil
		}
	}

	// Parse locally first so a malformed file never reaches the server.
	exercises, err := catalog.Parse(bytes.NewReader(data), format)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	stats.Exercises += len(exercises)

	if u.dryRun {
		u.log.Info("dry run: catalog parsed", "path", file.Path, "exercises", len(exercises))
		return nil
	}

	result, err := u.client.SendCatalog(ctx, data, format)
	if err != nil {
		return err
	}
	stats.FilesUploaded++
	stats.Upserted += result.Upserted
	u.log.Info("catalog uploaded", "path", file.Path, "exercises", len(exercises), "upserted", result.Upserted)

	if u.state != nil {
		if err := u.state.MarkDelivered(destination, file, len(exercises)); err != nil {
			u.log.Warn("failed to record upload state", "path", file.Path, "error", err)
		}
	}
	return nil
}

func (u *Uploader) destination() string {
	if u.client == nil {
		return ""
	}
	return u.client.ServerURL()
}
