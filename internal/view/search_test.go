package view

import (
	"strings"
	"testing"

	"github.com/claude/fitclub/internal/models"
)

func TestHomePath(t *testing.T) {
	tests := []struct {
		q    models.ExerciseQuery
		page int
		want string
	}{
		{models.ExerciseQuery{}, 1, "/#exercises"},
		{models.ExerciseQuery{BodyPart: "all"}, 1, "/#exercises"},
		{models.ExerciseQuery{BodyPart: "back"}, 1, "/?bodyPart=back#exercises"},
		{models.ExerciseQuery{Search: "bench press"}, 2, "/?page=2&q=bench+press#exercises"},
		{models.ExerciseQuery{Search: "x", BodyPart: "upper arms"}, 3, "/?bodyPart=upper+arms&page=3&q=x#exercises"},
		{
			models.ExerciseQuery{Search: "curl", BodyPart: "upper arms", Target: "biceps", Equipment: "dumbbell", Page: 1, PageSize: 5},
			2,
			"/?bodyPart=upper+arms&equipment=dumbbell&page=2&pageSize=5&q=curl&target=biceps#exercises",
		},
	}
	for _, tt := range tests {
		if got := HomePath(tt.q, tt.page); got != tt.want {
			t.Errorf("HomePath(%+v, %d) = %q, want %q", tt.q, tt.page, got, tt.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, pages, size int
		first, last          int
	}{
		{1, 3, 7, 1, 3},
		{1, 20, 7, 1, 7},
		{10, 20, 7, 7, 13},
		{20, 20, 7, 14, 20},
		{18, 20, 7, 14, 20},
	}
	for _, tt := range tests {
		first, last := pageWindow(tt.current, tt.pages, tt.size)
		if first != tt.first || last != tt.last {
			t.Errorf("pageWindow(%d, %d, %d) = %d..%d, want %d..%d",
				tt.current, tt.pages, tt.size, first, last, tt.first, tt.last)
		}
	}
}

func TestPaginationSinglePage(t *testing.T) {
	page := models.ExercisePage{Total: 5, Page: 1, PageSize: 9}
	if n := Pagination(models.ExerciseQuery{}, page); n != nil {
		t.Errorf("single page should render no pagination, got %v", n)
	}
}

func TestPaginationLinks(t *testing.T) {
	q := models.ExerciseQuery{Search: "curl", Page: 2, PageSize: 9}
	page := models.ExercisePage{Total: 30, Page: 2, PageSize: 9}
	html := render(t, Pagination(q, page))

	for _, want := range []string{
		`aria-current="page">2<`,
		`href="/?pageSize=9&amp;q=curl#exercises"`,
		`href="/?page=3&amp;pageSize=9&amp;q=curl#exercises"`,
		`href="/?page=4&amp;pageSize=9&amp;q=curl#exercises"`,
		">Prev<",
		">Next<",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("pagination missing %q in %s", want, html)
		}
	}
}

// TestPaginationKeepsFilters verifies page links of a narrowed, resized result
// set stay narrowed and resized.
func TestPaginationKeepsFilters(t *testing.T) {
	q := models.ExerciseQuery{Target: "biceps", Equipment: "dumbbell", Page: 1, PageSize: 5}
	page := models.ExercisePage{Total: 12, Page: 1, PageSize: 5}
	html := render(t, Pagination(q, page))

	want := `href="/?equipment=dumbbell&amp;page=2&amp;pageSize=5&amp;target=biceps#exercises"`
	if !strings.Contains(html, want) {
		t.Errorf("page 2 link missing %s in %s", want, html)
	}
	if strings.Contains(html, `href="/?page=2#exercises"`) {
		t.Error("page 2 link dropped the filters")
	}
}

func TestExercisesEmpty(t *testing.T) {
	html := render(t, Exercises(ExercisesProps{
		Query:   models.ExerciseQuery{Page: 1, PageSize: 9},
		Results: models.ExercisePage{Page: 1, PageSize: 9},
	}))
	if !strings.Contains(html, `id="exercises"`) {
		t.Error("exercise list has no #exercises anchor")
	}
	if !strings.Contains(html, "No exercises found.") {
		t.Error("empty result message missing")
	}
}

func TestSearchExercisesKeepsFilter(t *testing.T) {
	html := render(t, SearchExercises(SearchProps{Search: "row", BodyPart: "back", BodyParts: []string{"back"}}))
	if !strings.Contains(html, `name="q" value="row"`) {
		t.Errorf("search text not kept: %s", html)
	}
	if !strings.Contains(html, `type="hidden" name="bodyPart" value="back"`) {
		t.Errorf("body part filter not kept: %s", html)
	}
}
