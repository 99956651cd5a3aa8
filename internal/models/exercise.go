package models

import (
	"strings"

	"github.com/google/uuid"
)

// exerciseNamespace scopes name-derived exercise IDs.
var exerciseNamespace = uuid.MustParse("6f1c2a52-0d8e-4b7c-9a3e-5c2f8e1d4b60")

// Exercise is a single catalog entry.
type Exercise struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	BodyPart         string    `json:"bodyPart"`
	Target           string    `json:"target"`
	Equipment        string    `json:"equipment"`
	GifURL           string    `json:"gifUrl"`
	SecondaryMuscles []string  `json:"secondaryMuscles"`
	Instructions     []string  `json:"instructions"`
}

// ExerciseID derives a stable ID from an exercise name so that re-importing
// the same catalog updates rows in place.
func ExerciseID(name string) uuid.UUID {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	return uuid.NewSHA1(exerciseNamespace, []byte(key))
}

const (
	DefaultPageSize = 9
	MaxPageSize     = 100
)

// ExerciseQuery filters and paginates the catalog.
type ExerciseQuery struct {
	Search    string
	BodyPart  string
	Target    string
	Equipment string
	Page      int
	PageSize  int
}

// Normalize clamps pagination and canonicalizes filter values. The body part
// "all" means no body part filter.
func (q ExerciseQuery) Normalize() ExerciseQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.BodyPart = strings.ToLower(strings.TrimSpace(q.BodyPart))
	if q.BodyPart == "all" {
		q.BodyPart = ""
	}
	q.Target = strings.ToLower(strings.TrimSpace(q.Target))
	q.Equipment = strings.ToLower(strings.TrimSpace(q.Equipment))
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset returns the row offset of the query's page. Call on a normalized query.
func (q ExerciseQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ExercisePage is one page of search results.
type ExercisePage struct {
	Items    []Exercise `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// Pages returns the number of pages needed for Total items.
func (p ExercisePage) Pages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
