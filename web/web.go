// Package web embeds the default templates and static assets so the binary
// runs without a checkout.  A site directory configured under paths.* takes
// precedence over these defaults.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates is rooted at templates/.
func Templates() fs.FS { return sub("templates") }

// Static is rooted at static/.
func Static() fs.FS { return sub("static") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err) // dir is a compile-time constant
	}
	return f
}
