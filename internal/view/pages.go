package view

import (
	"net/http"
	"strconv"

	"github.com/claude/fitclub/internal/models"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// HomeProps is everything the home page shows.
type HomeProps struct {
	Query     models.ExerciseQuery
	Results   models.ExercisePage
	BodyParts []string
}

// HomePage composes the hero banner, search and exercise list.
func HomePage(p HomeProps) g.Node {
	return Layout(
		PageProps{},
		HeroBanner(),
		SearchExercises(SearchProps{
			Search:    p.Query.Search,
			BodyPart:  p.Query.BodyPart,
			BodyParts: p.BodyParts,
		}),
		Exercises(ExercisesProps{Query: p.Query, Results: p.Results}),
	)
}

// DetailProps is everything an exercise page shows.
type DetailProps struct {
	Exercise models.Exercise
	Similar  SimilarProps
}

// ExerciseDetailPage shows one exercise followed by related exercises.
func ExerciseDetailPage(p DetailProps) g.Node {
	return Layout(
		PageProps{
			Title:       p.Exercise.Name,
			Description: "How to do " + p.Exercise.Name + ", plus similar " + p.Exercise.Target + " and " + p.Exercise.Equipment + " exercises.",
		},
		ExerciseDetail(p.Exercise),
		SimilarSections(p.Similar),
	)
}

// ErrorPage is shown for HTML requests that fail.
func ErrorPage(status int, message string) g.Node {
	return Layout(
		PageProps{Title: http.StatusText(status)},
		Section(
			Class("error-page"),
			H1(Class("error-status"), g.Text(strconv.Itoa(status))),
			P(Class("error-message"), g.Text(message)),
			A(Class("hero-cta"), Href("/"), g.Text("Back to exercises")),
		),
	)
}
