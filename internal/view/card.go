package view

import (
	"github.com/claude/fitclub/internal/models"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ExerciseCard links to an exercise's detail page.
func ExerciseCard(e models.Exercise) g.Node {
	return A(
		Class("exercise-card"),
		Href(ExercisePath(e.ID)),
		g.Attr("data-exercise-id", e.ID.String()),

		Img(Src(exerciseImage(e)), Alt(e.Name), g.Attr("loading", "lazy")),
		Div(
			Class("exercise-card-tags"),
			Span(Class("pill pill-body-part"), g.Text(e.BodyPart)),
			Span(Class("pill pill-target"), g.Text(e.Target)),
		),
		P(Class("exercise-card-name"), g.Text(e.Name)),
	)
}

// BodyPartCard is one entry of the body part filter.
func BodyPartCard(part string, selected bool, search string) g.Node {
	class := "body-part-card"
	if selected {
		class += " selected"
	}
	return A(
		Class(class),
		Href(HomePath(models.ExerciseQuery{Search: search, BodyPart: part}, 1)),
		g.If(selected, Aria("current", "true")),
		Img(Src(LogoImage), Alt(""), Class("body-part-icon")),
		Span(Class("body-part-name"), g.Text(part)),
	)
}

func exerciseImage(e models.Exercise) string {
	if e.GifURL == "" {
		return LogoImage
	}
	return e.GifURL
}
