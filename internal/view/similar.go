package view

import (
	"github.com/claude/fitclub/internal/models"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// SimilarProps carries the two related collections of an exercise.
type SimilarProps struct {
	Target    models.ExerciseCollection
	Equipment models.ExerciseCollection
}

// SimilarExercises renders the related exercises of a detail page from the raw
// collections: an empty collection shows the loader, anything else the
// scrolling strip.
func SimilarExercises(targetMuscleExercises, equipmentExercises []models.Exercise) g.Node {
	return SimilarSections(SimilarProps{
		Target:    models.CollectionFromItems(targetMuscleExercises),
		Equipment: models.CollectionFromItems(equipmentExercises),
	})
}

// SimilarSections renders the related exercises from explicit load states.
func SimilarSections(p SimilarProps) g.Node {
	return defaultSections.similar(p)
}

// SectionBody renders the content of one similar section for a collection.
// The fragment endpoint sends it alone to replace a loader.
func SectionBody(c models.ExerciseCollection) g.Node {
	return defaultSections.body(c)
}

// sectionRenderers are the child components a section delegates to.
type sectionRenderers struct {
	scrollbar func(data []models.Exercise) g.Node
	loader    func(src string) g.Node
}

var defaultSections = sectionRenderers{
	scrollbar: HorizontalScrollbar,
	loader:    LoaderFrom,
}

func (r sectionRenderers) similar(p SimilarProps) g.Node {
	return Section(
		Class("similar-exercises"),
		ID("similar"),

		similarHeading("Target Muscle"),
		Div(
			Class("similar-section similar-section-target"),
			ID("similar-target"),
			g.Attr("data-status", p.Target.Status.String()),
			r.body(p.Target),
		),

		similarHeading("Equipment"),
		Div(
			Class("similar-section similar-section-equipment"),
			ID("similar-equipment"),
			g.Attr("data-status", p.Equipment.Status.String()),
			r.body(p.Equipment),
		),
	)
}

func (r sectionRenderers) body(c models.ExerciseCollection) g.Node {
	switch c.Status {
	case models.StatusLoaded:
		if len(c.Items) == 0 {
			return P(Class("similar-empty"), g.Text("No similar exercises found."))
		}
		return r.scrollbar(c.Items)
	case models.StatusFailed:
		return P(Class("similar-error"), Role("alert"), g.Text(c.Reason))
	default:
		return r.loader(c.Source)
	}
}

func similarHeading(accent string) g.Node {
	return H3(
		Class("similar-heading"),
		g.Text("Similar "),
		Span(Class("accent"), g.Text(accent)),
		g.Text(" exercises"),
	)
}
