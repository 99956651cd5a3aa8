// Package similar looks up exercises related to the one being viewed and
// reports each related collection as an explicit load state.
package similar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/fitclub/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Kind names one of the related collections.
type Kind string

const (
	KindTarget    Kind = "target"
	KindEquipment Kind = "equipment"
)

// ParseKind validates a kind taken from a URL.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTarget, KindEquipment:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown similar kind %q", s)
	}
}

// Source fetches exercises sharing an attribute with another exercise.
type Source interface {
	ExercisesByTarget(ctx context.Context, target string, exclude uuid.UUID, limit int) ([]models.Exercise, error)
	ExercisesByEquipment(ctx context.Context, equipment string, exclude uuid.UUID, limit int) ([]models.Exercise, error)
}

// Result holds both related collections of an exercise.
type Result struct {
	Target    models.ExerciseCollection
	Equipment models.ExerciseCollection
}

// Finder fetches related exercises.
type Finder struct {
	src       Source
	log       *slog.Logger
	limit     int
	timeout   time.Duration
	sourceURL func(id uuid.UUID, kind Kind) string
}

// Option configures a Finder.
type Option func(*Finder)

// WithLimit caps the number of exercises per collection.
func WithLimit(n int) Option {
	return func(f *Finder) { f.limit = n }
}

// WithTimeout bounds each collection fetch in Find. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Finder) { f.timeout = d }
}

// WithSourceURL sets how a collection that missed the timeout can be fetched later.
func WithSourceURL(fn func(id uuid.UUID, kind Kind) string) Option {
	return func(f *Finder) { f.sourceURL = fn }
}

// NewFinder creates a Finder reading from src.
func NewFinder(src Source, log *slog.Logger, opts ...Option) *Finder {
	f := &Finder{src: src, log: log, limit: 12}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find fetches both collections concurrently. A collection that does not
// arrive within the timeout is reported as loading (with its source URL), one
// whose fetch fails is reported as failed. The two never affect each other.
// Fetch failures are folded into the result; the group only reports that the
// caller went away before a section was queried.
func (f *Finder) Find(ctx context.Context, ex models.Exercise) Result {
	var res Result
	g, gctx := errgroup.WithContext(ctx)

	section := func(kind Kind, out *models.ExerciseCollection) func() error {
		return func() error {
			if err := gctx.Err(); err != nil {
				*out = models.Failed(failureReason(kind))
				return err
			}
			*out = f.bounded(gctx, ex, kind)
			return nil
		}
	}
	g.Go(section(KindTarget, &res.Target))
	g.Go(section(KindEquipment, &res.Equipment))

	if err := g.Wait(); err != nil {
		f.log.Debug("similar exercises skipped", "exercise", ex.ID, "error", err)
	}
	return res
}

// FindKind fetches a single collection without the render timeout. It never
// returns a loading collection.
func (f *Finder) FindKind(ctx context.Context, ex models.Exercise, kind Kind) models.ExerciseCollection {
	items, err := f.fetch(ctx, ex, kind)
	if err != nil {
		f.log.Warn("similar exercises fetch failed", "exercise", ex.ID, "kind", kind, "error", err)
		return models.Failed(failureReason(kind))
	}
	return models.Loaded(items)
}

func (f *Finder) bounded(ctx context.Context, ex models.Exercise, kind Kind) models.ExerciseCollection {
	fetchCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	items, err := f.fetch(fetchCtx, ex, kind)
	switch {
	case err == nil:
		return models.Loaded(items)
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		f.log.Info("similar exercises deferred", "exercise", ex.ID, "kind", kind, "timeout", f.timeout)
		return models.Loading(f.source(ex.ID, kind))
	default:
		f.log.Warn("similar exercises fetch failed", "exercise", ex.ID, "kind", kind, "error", err)
		return models.Failed(failureReason(kind))
	}
}

func (f *Finder) fetch(ctx context.Context, ex models.Exercise, kind Kind) ([]models.Exercise, error) {
	switch kind {
	case KindTarget:
		return f.src.ExercisesByTarget(ctx, ex.Target, ex.ID, f.limit)
	case KindEquipment:
		return f.src.ExercisesByEquipment(ctx, ex.Equipment, ex.ID, f.limit)
	default:
		return nil, fmt.Errorf("unknown similar kind %q", kind)
	}
}

func (f *Finder) source(id uuid.UUID, kind Kind) string {
	if f.sourceURL == nil {
		return ""
	}
	return f.sourceURL(id, kind)
}

func failureReason(kind Kind) string {
	switch kind {
	case KindTarget:
		return "Could not load exercises for this target muscle."
	case KindEquipment:
		return "Could not load exercises for this equipment."
	default:
		return "Could not load similar exercises."
	}
}
