package view

import (
	"github.com/claude/fitclub/internal/models"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// HorizontalScrollbar renders exercises as cards in a horizontally scrolling
// strip, in the order given.
func HorizontalScrollbar(data []models.Exercise) g.Node {
	return scrollStrip("horizontal-scrollbar",
		g.Map(data, func(e models.Exercise) g.Node {
			return Div(Class("scroll-item"), Role("listitem"), ExerciseCard(e))
		}),
	)
}

// BodyPartScrollbar renders the body part filter strip. "all" comes first and
// the selected part is highlighted. search is carried over into the links.
func BodyPartScrollbar(parts []string, selected, search string) g.Node {
	if selected == "" {
		selected = "all"
	}
	all := append([]string{"all"}, parts...)
	return scrollStrip("body-part-scrollbar",
		g.Map(all, func(part string) g.Node {
			return Div(Class("scroll-item"), Role("listitem"), BodyPartCard(part, part == selected, search))
		}),
	)
}

func scrollStrip(class string, items g.Node) g.Node {
	return Div(
		Class("scroll-strip "+class),
		Button(Type("button"), Class("scroll-arrow scroll-arrow-left"), g.Attr("data-scroll", "-1"), Aria("label", "Scroll left"), g.Text("‹")),
		Div(Class("scroll-track"), Role("list"), items),
		Button(Type("button"), Class("scroll-arrow scroll-arrow-right"), g.Attr("data-scroll", "1"), Aria("label", "Scroll right"), g.Text("›")),
	)
}

// Loader is the placeholder shown while a collection has not arrived.
func Loader() g.Node {
	return LoaderFrom("")
}

// LoaderFrom is a Loader that sections.js replaces with the fragment at src
// once it is available. An empty src renders a plain Loader.
func LoaderFrom(src string) g.Node {
	return Div(
		Class("loader"),
		Role("status"),
		g.If(src != "", g.Attr("data-src", src)),
		Span(Class("loader-spinner"), Aria("hidden", "true")),
		Span(Class("visually-hidden"), g.Text("Loading…")),
	)
}
