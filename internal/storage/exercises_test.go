package storage

import (
	"testing"

	"github.com/claude/fitclub/internal/models"
	"github.com/google/go-cmp/cmp"
)

// TestSearchFilter verifies the WHERE clause and argument numbering for each
// combination of filters.
func TestSearchFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     models.ExerciseQuery
		wantWhere string
		wantArgs  []any
	}{
		{
			name:  "no filters",
			query: models.ExerciseQuery{},
		},
		{
			name:      "search only",
			query:     models.ExerciseQuery{Search: "Curl"},
			wantWhere: " WHERE (LOWER(name) LIKE $1 OR target LIKE $1 OR equipment LIKE $1 OR body_part LIKE $1)",
			wantArgs:  []any{"%curl%"},
		},
		{
			name:      "body part only",
			query:     models.ExerciseQuery{BodyPart: "Back"},
			wantWhere: " WHERE body_part = $1",
			wantArgs:  []any{"back"},
		},
		{
			name:      "all body parts is no filter",
			query:     models.ExerciseQuery{BodyPart: "all"},
			wantWhere: "",
		},
		{
			name: "everything",
			query: models.ExerciseQuery{
				Search: "press", BodyPart: "chest", Target: "pectorals", Equipment: "barbell",
			},
			wantWhere: " WHERE (LOWER(name) LIKE $1 OR target LIKE $1 OR equipment LIKE $1 OR body_part LIKE $1)" +
				" AND body_part = $2 AND target = $3 AND equipment = $4",
			wantArgs: []any{"%press%", "chest", "pectorals", "barbell"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := searchFilter(tt.query.Normalize())
			if where != tt.wantWhere {
				t.Errorf("where = %q\nwant    %q", where, tt.wantWhere)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestEscapeLike verifies LIKE wildcards in user input match literally.
func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"plain":   "plain",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
		"%_\\":    `\%\_\\`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNonNil(t *testing.T) {
	if got := nonNil(nil); got == nil || len(got) != 0 {
		t.Errorf("nonNil(nil) = %#v, want empty non-nil slice", got)
	}
	in := []string{"a"}
	if got := nonNil(in); &got[0] != &in[0] {
		t.Error("nonNil copied a non-nil slice")
	}
}
