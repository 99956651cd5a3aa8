package view

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// PageProps describes the document around a page's content.
type PageProps struct {
	Title       string
	Description string
}

const siteName = "FitClub"

// Layout wraps page content in the HTML document with navigation and footer.
func Layout(p PageProps, children ...g.Node) g.Node {
	title := siteName
	if p.Title != "" {
		title = p.Title + " | " + siteName
	}
	description := p.Description
	if description == "" {
		description = "Browse exercises by body part, target muscle and equipment."
	}

	return c.HTML5(c.HTML5Props{
		Title:       title,
		Description: description,
		Language:    "en",
		Head: []g.Node{
			Link(Rel("stylesheet"), Href(StylesheetPath)),
			Link(Rel("icon"), Type("image/png"), Href(LogoImage)),
			Script(Src(ScriptPath), Defer()),
		},
		Body: []g.Node{
			Div(
				Class("page"),
				Navbar(),
				Main(children...),
				SiteFooter(),
			),
		},
	})
}

// Navbar is the top navigation.
func Navbar() g.Node {
	return Nav(
		Class("navbar"),
		A(Href("/"), Img(Src(LogoImage), Alt("logo"), Class("navbar-logo"))),
		Div(
			Class("navbar-links"),
			A(Href("/"), Class("navbar-link navbar-link-home"), g.Text("Home")),
			A(Href("/#exercises"), Class("navbar-link"), g.Text("Exercises")),
		),
	)
}

func SiteFooter() g.Node {
	return Footer(
		Class("site-footer"),
		Img(Src(LogoImage), Alt("logo"), Class("footer-logo")),
		P(g.Text("Made with sweat by the FitClub team")),
	)
}
