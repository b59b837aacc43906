// internal/locals/locals.go
//
// Page locals: the bag of values every template sees.
//
/*
Context
--------
A *Locals is created once per request by Composer.Install, the first
application middleware in the chain.  It carries

  • computed values   – year, environment, greetings, body theme,
                        login state, query echo, request info,
  • the asset builder – a fresh head.Builder that route-group middleware
                        and handlers append styles and scripts to.

The value lives in request.Context under an unexported key and is read
once more by view.Render, which flattens it with Map.  Nothing outlives
the request.

Notes
-----
  • Locals are never shared between requests, so no field needs locking;
    head.Builder guards itself.
*/
package locals

import (
	"context"
	"html/template"

	"github.com/yanizio/campus/internal/head"
	"github.com/yanizio/campus/internal/requestinfo"
	"github.com/yanizio/campus/internal/theme"
)

// Locals is the response-scoped context.
type Locals struct {
	CurrentYear      int
	Environment      string            // lower-cased, "production" when unset
	Query            map[string]string // first value per query key
	Greeting         template.HTML     // <p>…</p>
	SeasonalGreeting template.HTML     // empty in January
	BodyThemeClass   theme.ID
	IsLoggedIn       bool

	Info      *requestinfo.RequestInfo // nil when Enrich did not run
	RequestID string                   // "" when RequestID did not run
	Assets    *head.Builder
}

// Map flattens l for template execution.  The asset callables are
// template-friendly: AddStyle and AddScript return "" so
// {{ call .AddStyle "<link …>" 5 }} emits nothing.
func (l *Locals) Map() map[string]any {
	return map[string]any{
		"CurrentYear":      l.CurrentYear,
		"Environment":      l.Environment,
		"Query":            l.Query,
		"Greeting":         l.Greeting,
		"SeasonalGreeting": l.SeasonalGreeting,
		"BodyThemeClass":   string(l.BodyThemeClass),
		"IsLoggedIn":       l.IsLoggedIn,
		"Info":             l.Info,
		"RequestID":        l.RequestID,
		"Title":            l.Assets.Title,
		"AddStyle":         func(c string, p int) string { l.Assets.AddStyle(c, p); return "" },
		"AddScript":        func(c string, p int) string { l.Assets.AddScript(c, p); return "" },
		"RenderStyles":     l.Assets.RenderStyles,
		"RenderScripts":    l.Assets.RenderScripts,
	}
}

/*──────────────────────────── context plumbing ─────────────────────────────*/

type ctxKey struct{} // unexported, collision-proof

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l *Locals) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the Locals installed by Composer.Install, or nil.
func FromContext(ctx context.Context) *Locals {
	l, _ := ctx.Value(ctxKey{}).(*Locals)
	return l
}
