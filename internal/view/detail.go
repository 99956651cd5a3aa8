package view

import (
	"github.com/claude/fitclub/internal/models"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type detailFact struct {
	class string
	label string
	value string
}

// ExerciseDetail is the top block of an exercise page.
func ExerciseDetail(e models.Exercise) g.Node {
	facts := []detailFact{
		{class: "fact-body-part", label: "Body part", value: e.BodyPart},
		{class: "fact-target", label: "Target", value: e.Target},
		{class: "fact-equipment", label: "Equipment", value: e.Equipment},
	}

	return Section(
		Class("exercise-detail"),
		Img(Class("detail-image"), Src(exerciseImage(e)), Alt(e.Name), g.Attr("loading", "lazy")),
		Div(
			Class("detail-body"),
			H1(Class("detail-name"), g.Text(e.Name)),
			P(
				Class("detail-description"),
				g.Textf("Exercises keep you strong. %s is one of the best exercises to target your %s. It will help you improve your mood and gain energy.", e.Name, e.Target),
			),
			Ul(
				Class("detail-facts"),
				g.Map(facts, func(f detailFact) g.Node {
					return Li(
						Class("detail-fact "+f.class),
						Img(Src(LogoImage), Alt(""), Class("detail-fact-icon")),
						Span(Class("visually-hidden"), g.Text(f.label+": ")),
						Span(Class("detail-fact-value"), g.Text(f.value)),
					)
				}),
			),
			g.If(len(e.SecondaryMuscles) > 0,
				P(
					Class("detail-secondary"),
					Strong(g.Text("Also works: ")),
					g.Map(e.SecondaryMuscles, func(m string) g.Node {
						return Span(Class("pill pill-secondary"), g.Text(m))
					}),
				),
			),
			g.If(len(e.Instructions) > 0,
				Ol(
					Class("detail-instructions"),
					g.Map(e.Instructions, func(step string) g.Node {
						return Li(g.Text(step))
					}),
				),
			),
		),
	)
}
