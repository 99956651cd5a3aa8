package mcp

import (
	"context"

	"github.com/claude/fitclub/internal/models"
	"github.com/claude/fitclub/internal/similar"
	"github.com/claude/fitclub/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	similar.Source
	SearchExercises(ctx context.Context, q models.ExerciseQuery) (*models.ExercisePage, error)
	GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error)
	ListBodyParts(ctx context.Context) ([]string, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
