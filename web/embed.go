// Package web provides the embedded static assets for the order viewer.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var staticFS embed.FS

// StaticFS returns the viewer assets rooted at static/, with the "static"
// prefix stripped so files are served from the site root.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The static directory is compiled into the binary; a failure
		// here means a broken build, not a runtime condition.
		panic(err)
	}

	return sub
}
