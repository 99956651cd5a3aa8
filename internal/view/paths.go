package view

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/claude/fitclub/internal/models"
)

// Static asset locations, served from the embedded web/static tree.
const (
	StylesheetPath = "/static/css/site.css"
	ScriptPath     = "/static/js/sections.js"
	BannerImage    = "/static/images/banner.png"
	LogoImage      = "/static/images/logo.png"
)

// BrandColor is the accent used for the eyebrow, call to action and headings.
const BrandColor = "#FF2625"

// ExercisePath is the detail page of an exercise.
func ExercisePath(id uuid.UUID) string {
	return "/exercises/" + id.String()
}

// SimilarPath is the fragment endpoint rendering one similar-exercises section.
func SimilarPath(id uuid.UUID, kind string) string {
	return ExercisePath(id) + "/similar/" + kind
}

// HomePath is the home page showing the given page of q's results, scrolled to
// the exercise list. Every filter and the page size carry over so that paging
// never widens the result set.
func HomePath(q models.ExerciseQuery, page int) string {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("q", q.Search)
	if q.BodyPart != "all" {
		set("bodyPart", q.BodyPart)
	}
	set("target", q.Target)
	set("equipment", q.Equipment)
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return "/#exercises"
	}
	return "/?" + v.Encode() + "#exercises"
}
