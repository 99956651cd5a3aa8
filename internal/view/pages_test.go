package view

import (
	"net/http"
	"strings"
	"testing"

	"github.com/claude/fitclub/internal/models"
)

func TestHomePage(t *testing.T) {
	html := render(t, HomePage(HomeProps{
		Query:     models.ExerciseQuery{Page: 1, PageSize: 9},
		Results:   models.ExercisePage{Items: []models.Exercise{exercise(1, "push-up")}, Total: 1, Page: 1, PageSize: 9},
		BodyParts: []string{"chest"},
	}))

	if !strings.HasPrefix(html, "<!doctype html>") {
		t.Errorf("not a full document: %.40s", html)
	}
	hero := strings.Index(html, `class="hero-banner"`)
	list := strings.Index(html, `id="exercises"`)
	if hero < 0 || list < 0 || hero > list {
		t.Error("home page should show the banner above the exercise list")
	}
	for _, want := range []string{StylesheetPath, ScriptPath, "push-up", "<title>FitClub</title>"} {
		if !strings.Contains(html, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestExerciseDetailPage(t *testing.T) {
	e := exercise(1, "hammer curl")
	e.Instructions = []string{"Hold the dumbbells.", "Curl."}
	e.SecondaryMuscles = []string{"forearms"}

	html := render(t, ExerciseDetailPage(DetailProps{
		Exercise: e,
		Similar: SimilarProps{
			Target:    models.Loaded([]models.Exercise{exercise(2, "concentration curl")}),
			Equipment: models.Loading(SimilarPath(e.ID, "equipment")),
		},
	}))

	for _, want := range []string{
		"<title>hammer curl | FitClub</title>",
		"hammer curl is one of the best exercises to target your biceps",
		"<li>Hold the dumbbells.</li>",
		"forearms",
		"concentration curl",
		`data-src="` + SimilarPath(e.ID, "equipment") + `"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("detail page missing %q", want)
		}
	}
	if detail, similar := strings.Index(html, "exercise-detail"), strings.Index(html, "similar-exercises"); detail > similar {
		t.Error("similar exercises should follow the detail block")
	}
}

func TestErrorPage(t *testing.T) {
	html := render(t, ErrorPage(http.StatusNotFound, "Exercise not found."))
	for _, want := range []string{"<title>Not Found | FitClub</title>", ">404<", "Exercise not found."} {
		if !strings.Contains(html, want) {
			t.Errorf("error page missing %q", want)
		}
	}
}
