package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// HeroBanner is the fixed marketing section at the top of the home page.
// Offsets and the watermark's visibility per breakpoint live in site.css.
func HeroBanner() g.Node {
	return Section(
		Class("hero-banner"),
		ID("hero"),

		P(Class("hero-eyebrow"), g.Text("Fitness Club")),
		H1(
			Class("hero-title"),
			g.Text("Sweat, Smile"),
			Br(),
			g.Text("and Repeat"),
		),
		P(
			Class("hero-description"),
			g.Text("Check out the most effective exercises personalized to you"),
		),
		A(
			Class("hero-cta"),
			Href("#exercises"),
			g.Text("Explore Exercises"),
		),
		P(
			Class("hero-watermark"),
			Aria("hidden", "true"),
			g.Text("Exercise"),
		),
		Img(
			Class("hero-banner-img"),
			Src(BannerImage),
			Alt("banner"),
		),
	)
}
