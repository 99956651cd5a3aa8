package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/fitclub/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const exerciseColumns = `id, name, body_part, target, equipment, gif_url, secondary_muscles, instructions`

// upsertBatchSize keeps each statement well below PostgreSQL's 65535 parameter limit.
const upsertBatchSize = 500

// UpsertExercises batch-inserts exercises, updating rows whose ID already exists.
// Returns the number of rows written.
func (db *DB) UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error) {
	var total int64
	for start := 0; start < len(exercises); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(exercises))
		n, err := db.upsertExerciseBatch(ctx, exercises[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (db *DB) upsertExerciseBatch(ctx context.Context, batch []models.Exercise) (int64, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	query := `INSERT INTO exercises (` + exerciseColumns + `) VALUES `
	args := make([]any, 0, len(batch)*8)
	valueStrings := make([]string, 0, len(batch))

	for i, e := range batch {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args, e.ID, e.Name, e.BodyPart, e.Target, e.Equipment, e.GifURL,
			nonNil(e.SecondaryMuscles), nonNil(e.Instructions))
	}

	query += strings.Join(valueStrings, ",") + `
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			body_part = EXCLUDED.body_part,
			target = EXCLUDED.target,
			equipment = EXCLUDED.equipment,
			gif_url = EXCLUDED.gif_url,
			secondary_muscles = EXCLUDED.secondary_muscles,
			instructions = EXCLUDED.instructions,
			updated_at = NOW()`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting exercises: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetExercise retrieves a single exercise. Returns ErrNotFound if it does not exist.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)

	e, err := scanExercise(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting exercise %s: %w", id, err)
	}
	return &e, nil
}

// SearchExercises returns one page of exercises matching the query, ordered by name.
func (db *DB) SearchExercises(ctx context.Context, q models.ExerciseQuery) (*models.ExercisePage, error) {
	q = q.Normalize()
	where, args := searchFilter(q)

	var total int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting exercises: %w", err)
	}

	page := &models.ExercisePage{Total: total, Page: q.Page, PageSize: q.PageSize}
	if total == 0 || q.Offset() >= total {
		page.Items = []models.Exercise{}
		return page, nil
	}

	n := len(args)
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises`+where+
			fmt.Sprintf(` ORDER BY name, id LIMIT $%d OFFSET $%d`, n+1, n+2),
		append(args, q.PageSize, q.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("searching exercises: %w", err)
	}
	defer rows.Close()

	page.Items, err = scanExercises(rows)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// searchFilter builds the WHERE clause for a normalized query.
func searchFilter(q models.ExerciseQuery) (string, []any) {
	var clauses []string
	var args []any

	if q.Search != "" {
		args = append(args, "%"+escapeLike(strings.ToLower(q.Search))+"%")
		p := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(name) LIKE $%d OR target LIKE $%d OR equipment LIKE $%d OR body_part LIKE $%d)",
			p, p, p, p))
	}
	if q.BodyPart != "" {
		args = append(args, q.BodyPart)
		clauses = append(clauses, fmt.Sprintf("body_part = $%d", len(args)))
	}
	if q.Target != "" {
		args = append(args, q.Target)
		clauses = append(clauses, fmt.Sprintf("target = $%d", len(args)))
	}
	if q.Equipment != "" {
		args = append(args, q.Equipment)
		clauses = append(clauses, fmt.Sprintf("equipment = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ExercisesByTarget returns up to limit exercises working the given target
// muscle, excluding one exercise (usually the one being viewed).
func (db *DB) ExercisesByTarget(ctx context.Context, target string, exclude uuid.UUID, limit int) ([]models.Exercise, error) {
	return db.exercisesBy(ctx, "target", target, exclude, limit)
}

// ExercisesByEquipment returns up to limit exercises using the given equipment,
// excluding one exercise.
func (db *DB) ExercisesByEquipment(ctx context.Context, equipment string, exclude uuid.UUID, limit int) ([]models.Exercise, error) {
	return db.exercisesBy(ctx, "equipment", equipment, exclude, limit)
}

// exercisesBy is only called with fixed column names.
func (db *DB) exercisesBy(ctx context.Context, column, value string, exclude uuid.UUID, limit int) ([]models.Exercise, error) {
	if limit <= 0 {
		limit = models.MaxPageSize
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE `+column+` = $1 AND id <> $2
		 ORDER BY name, id
		 LIMIT $3`,
		strings.ToLower(value), exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exercises by %s: %w", column, err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// ListBodyParts returns the distinct body parts in the catalog.
func (db *DB) ListBodyParts(ctx context.Context) ([]string, error) {
	return db.distinct(ctx, "body_part")
}

// ListTargets returns the distinct target muscles in the catalog.
func (db *DB) ListTargets(ctx context.Context) ([]string, error) {
	return db.distinct(ctx, "target")
}

// ListEquipment returns the distinct equipment in the catalog.
func (db *DB) ListEquipment(ctx context.Context) ([]string, error) {
	return db.distinct(ctx, "equipment")
}

func (db *DB) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT `+column+` FROM exercises WHERE `+column+` <> '' ORDER BY `+column)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", column, err)
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", column, err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// CountExercises returns the number of exercises in the catalog.
func (db *DB) CountExercises(ctx context.Context) (int, error) {
	var n int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting exercises: %w", err)
	}
	return n, nil
}

func scanExercise(row pgx.Row) (models.Exercise, error) {
	var e models.Exercise
	err := row.Scan(&e.ID, &e.Name, &e.BodyPart, &e.Target, &e.Equipment, &e.GifURL,
		&e.SecondaryMuscles, &e.Instructions)
	return e, err
}

func scanExercises(rows pgx.Rows) ([]models.Exercise, error) {
	result := []models.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
