package momir

import (
	"embed"
	"io/fs"
)

// Embed the stylesheet and the zen-mode script
//
//go:embed static/momir.css static/momir.js
var staticFiles embed.FS

// StaticFS returns the embedded assets rooted at static/
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
