// Package fitclub holds the assets embedded into the FitClub binaries.
package fitclub

import (
	"embed"
	"io/fs"
)

// Each asset is listed so that a missing file fails the build.
//
//go:embed web/static/css/site.css
//go:embed web/static/js/sections.js
//go:embed web/static/images/banner.png web/static/images/logo.png
var webFS embed.FS

// StaticFS is the stylesheet, script and image tree served under /static/.
var StaticFS = mustSub(webFS, "web/static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
