// internal/head/builder.go
//
// The Builder collects the style and script fragments a page injects into
// its layout, plus the page <title>.  It is scoped to a single request.
// Middleware and handlers push fragments with a priority, then the layout
// template emits them in one place.
//
// Features
// --------
//   - SetTitle             – single <title> tag (last call wins).
//   - AddStyle, AddScript  – append an opaque fragment with a priority.
//   - RenderStyles,        – fragments joined by "\n", highest priority
//     RenderScripts          first, insertion order among equal priority.
//
// Notes
// -----
// • Fragments are neither parsed nor deduplicated.
// • Rendering never mutates the collections, so calling it twice yields the
//   same output.
package head

import (
	"cmp"
	"html/template"
	"slices"
	"strings"
	"sync"
)

// Asset is one fragment plus its render priority.
type Asset struct {
	Content  string
	Priority int
}

// Builder is created once per request.  Typical use is one goroutine per
// request; the mutex covers handlers that fan out.
type Builder struct {
	mu sync.Mutex

	title   string
	styles  []Asset
	scripts []Asset
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// ------------------------------------------------------------------
// Single-value helper
// ------------------------------------------------------------------

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) {
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	b.mu.Lock()
	t := b.title
	b.mu.Unlock()
	if t == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(t) + "</title>")
}

// ------------------------------------------------------------------
// Registration
// ------------------------------------------------------------------

// AddStyle appends a style fragment, e.g. a complete <link rel="stylesheet">.
func (b *Builder) AddStyle(content string, priority int) { b.add(&b.styles, content, priority) }

// AddScript appends a script fragment, e.g. a complete <script src>.
func (b *Builder) AddScript(content string, priority int) { b.add(&b.scripts, content, priority) }

func (b *Builder) add(tgt *[]Asset, content string, priority int) {
	b.mu.Lock()
	*tgt = append(*tgt, Asset{Content: content, Priority: priority})
	b.mu.Unlock()
}

// Styles returns a copy of the style entries in insertion order.
func (b *Builder) Styles() []Asset { return b.snapshot(b.styles) }

// Scripts returns a copy of the script entries in insertion order.
func (b *Builder) Scripts() []Asset { return b.snapshot(b.scripts) }

func (b *Builder) snapshot(sl []Asset) []Asset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(sl)
}

// ------------------------------------------------------------------
// Rendering helpers called from layout templates
// ------------------------------------------------------------------

func (b *Builder) RenderStyles() template.HTML  { return render(b.Styles()) }
func (b *Builder) RenderScripts() template.HTML { return render(b.Scripts()) }

// render orders a private copy by descending priority and joins the
// fragments.  SortStableFunc keeps insertion order among equal priorities.
func render(sl []Asset) template.HTML {
	if len(sl) == 0 {
		return ""
	}
	slices.SortStableFunc(sl, func(a, b Asset) int { return cmp.Compare(b.Priority, a.Priority) })

	parts := make([]string, len(sl))
	for i, a := range sl {
		parts[i] = a.Content
	}
	return template.HTML(strings.Join(parts, "\n"))
}
