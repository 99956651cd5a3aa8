package view

import (
	"strconv"

	"github.com/claude/fitclub/internal/models"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// SearchProps feeds the search form and body part filter.
type SearchProps struct {
	Search    string
	BodyPart  string
	BodyParts []string
}

// SearchExercises is the search form above the exercise list.
func SearchExercises(p SearchProps) g.Node {
	return Section(
		Class("search-exercises"),
		H2(
			Class("search-title"),
			g.Text("Awesome Exercises You"),
			Br(),
			g.Text("Should Know"),
		),
		Form(
			Class("search-form"),
			Method("get"),
			Action("/"),
			Input(
				Class("search-input"),
				Type("search"),
				Name("q"),
				Value(p.Search),
				Placeholder("Search Exercises"),
			),
			g.If(p.BodyPart != "", Input(Type("hidden"), Name("bodyPart"), Value(p.BodyPart))),
			Button(Class("search-btn"), Type("submit"), g.Text("Search")),
		),
		BodyPartScrollbar(p.BodyParts, p.BodyPart, p.Search),
	)
}

// ExercisesProps feeds the exercise list.
type ExercisesProps struct {
	Query   models.ExerciseQuery
	Results models.ExercisePage
}

// Exercises is the paginated result grid. The home page's call to action
// scrolls here.
func Exercises(p ExercisesProps) g.Node {
	var results g.Node
	if len(p.Results.Items) == 0 {
		results = P(Class("exercises-empty"), g.Text("No exercises found."))
	} else {
		results = Div(
			Class("exercises-grid"),
			g.Map(p.Results.Items, ExerciseCard),
		)
	}

	return Section(
		Class("exercises"),
		ID("exercises"),
		H3(Class("exercises-heading"), g.Text("Showing Results")),
		results,
		Pagination(p.Query, p.Results),
	)
}

// maxPageLinks bounds the numbered links shown around the current page.
const maxPageLinks = 7

// Pagination renders page links for a result set, or nothing for a single page.
func Pagination(q models.ExerciseQuery, page models.ExercisePage) g.Node {
	pages := page.Pages()
	if pages <= 1 {
		return nil
	}
	current := min(max(page.Page, 1), pages)

	first, last := pageWindow(current, pages, maxPageLinks)
	links := make([]g.Node, 0, last-first+3)

	if current > 1 {
		links = append(links, A(Class("page-link page-prev"), Href(HomePath(q, current-1)), Rel("prev"), g.Text("Prev")))
	}
	for n := first; n <= last; n++ {
		if n == current {
			links = append(links, Span(Class("page-link page-current"), Aria("current", "page"), g.Text(strconv.Itoa(n))))
			continue
		}
		links = append(links, A(Class("page-link"), Href(HomePath(q, n)), g.Text(strconv.Itoa(n))))
	}
	if current < pages {
		links = append(links, A(Class("page-link page-next"), Href(HomePath(q, current+1)), Rel("next"), g.Text("Next")))
	}

	return Nav(Class("pagination"), Aria("label", "Pagination"), g.Group(links))
}

// pageWindow returns the first and last page of a window of at most size pages
// centred on current.
func pageWindow(current, pages, size int) (int, int) {
	if pages <= size {
		return 1, pages
	}
	first := current - size/2
	first = max(first, 1)
	first = min(first, pages-size+1)
	return first, first + size - 1
}
