// internal/locals/middleware.go
//
// Pipeline installation.
//
/*
Context
--------
Install must be mounted once, globally, ahead of every route.  It
composes the locals and stores them in request.Context.  Route groups then
add section assets with Style and Script:

	r.Use(composer.Install)
	r.Route("/catalog", func(r chi.Router) {
		r.Use(locals.Style(head.Stylesheet("/static/css/catalog.css"), 10))
		r.Get("/", list)
	})

Within one request registrations happen outer to inner, then in the
handler, and view.Render reads the builder last.

Notes
-----
  • A second Install in the same chain is a no-op, so mounting it on a
    sub-router by accident never resets the registry.
  • Style and Script log and forward when Install has not run.
*/
package locals

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/campus/internal/head"
)

// Install composes and attaches Locals, then forwards.
func (c *Composer) Install(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}
		l := c.Compose(r)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), l)))
	})
}

// Style returns middleware that registers a style fragment.
func Style(content string, priority int) func(http.Handler) http.Handler {
	return withAssets(func(b *head.Builder) { b.AddStyle(content, priority) })
}

// Script returns middleware that registers a script fragment.
func Script(content string, priority int) func(http.Handler) http.Handler {
	return withAssets(func(b *head.Builder) { b.AddScript(content, priority) })
}

func withAssets(fn func(*head.Builder)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l := FromContext(r.Context()); l != nil {
				fn(l.Assets)
			} else {
				zap.S().Warnw("asset middleware ran before locals.Install", "path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
		})
	}
}
