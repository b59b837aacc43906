// internal/view/render.go
//
// Central view engine: template lookup, override chain, func-map injection,
// and an LRU of parsed *template.Template* sets.
//
// Public helpers
// --------------
//   - Render        – 200 response from a page template.
//   - RenderStatus  – same with an explicit status.
//   - Error         – status page with a fallback chain.
//   - PageData      – locals map merged with handler data.
//
// Lookup precedence (first hit wins):
//   1. the site template directory (conf: paths.templates), when present
//   2. the defaults embedded in the binary (package web)
//
// Layout
// ------
// Every page is a top-level "<name>.html".  Files under layouts/ and
// partials/ are shared and parsed into each page's set before the page
// itself, so a page can say {{ template "base" . }} and fill the blocks
// the layout declares.  Pages add their assets before invoking the layout:
//
//	{{ call .AddStyle (stylesheet "/static/css/home.css") 5 }}
//	{{ template "base" . }}
//	{{ define "content" }} … {{ end }}
//
// Output is executed into a buffer first; a failing template never leaves a
// half-written page on the wire.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/yanizio/campus/internal/cache"
	"github.com/yanizio/campus/internal/head"
	"github.com/yanizio/campus/internal/locals"
	"github.com/yanizio/campus/internal/metrics"
)

// Shared template directories.
var sharedDirs = []string{"layouts", "partials"}

// Options tunes a Renderer.
type Options struct {
	// NoCache re-parses on every render.  Use in development so template
	// edits show up without a restart.
	NoCache bool
	// CacheSize bounds the number of parsed page sets kept.
	CacheSize int
	// Globals, when set, adds per-request keys every page needs (the
	// logout token, for one).  They sit between locals and handler data.
	Globals func(r *http.Request) map[string]any
}

// Renderer executes page templates.  Safe for concurrent use.
type Renderer struct {
	sources []fs.FS
	funcs   template.FuncMap
	sets    *cache.LRU // nil when Options.NoCache
	globals func(r *http.Request) map[string]any
}

// New returns a Renderer reading from sources in precedence order.
func New(opts Options, sources ...fs.FS) (*Renderer, error) {
	if len(sources) == 0 {
		return nil, errors.New("view: at least one template source required")
	}
	rd := &Renderer{sources: sources, funcs: FuncMap(), globals: opts.Globals}
	if !opts.NoCache {
		size := opts.CacheSize
		if size < 1 {
			size = 64
		}
		rd.sets = cache.New(size, 0)
	}
	return rd, nil
}

//
// public helpers
//

// Render executes page name with status 200.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return rd.RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus executes page name and writes it with status.
func (rd *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	body, err := rd.execute(name, rd.pageData(r, data))
	if err != nil {
		return err
	}
	writeHTML(w, status, body)
	return nil
}

// Error writes a status page.  It tries "<status>.html", then "error.html",
// then falls back to a plain-text http.Error.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, status int) {
	data := map[string]any{
		"Status":     status,
		"StatusText": http.StatusText(status),
	}
	for _, name := range []string{strconv.Itoa(status), "error"} {
		body, err := rd.execute(name, rd.pageData(r, data))
		if err == nil {
			writeHTML(w, status, body)
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			zap.L().Error("error page", zap.String("template", name), zap.Error(err))
		}
	}
	http.Error(w, http.StatusText(status), status)
}

// PageData flattens the request's locals and overlays data.  Keys in data
// win over locals keys.  Without installed locals the template still sees
// every key, zero-valued, and working asset callables.
func PageData(r *http.Request, data map[string]any) map[string]any {
	l := locals.FromContext(r.Context())
	if l == nil {
		l = &locals.Locals{Assets: head.New()}
	}
	m := l.Map()
	for k, v := range data {
		m[k] = v
	}
	return m
}

// Check parses every page once so template syntax errors fail at boot.
func (rd *Renderer) Check() error {
	for _, name := range rd.pages() {
		if _, err := rd.load(name); err != nil {
			return err
		}
	}
	return nil
}

//
// internal
//

func (rd *Renderer) pageData(r *http.Request, data map[string]any) map[string]any {
	if rd.globals == nil {
		return PageData(r, data)
	}
	m := PageData(r, rd.globals(r))
	for k, v := range data {
		m[k] = v
	}
	return m
}

func (rd *Renderer) execute(name string, data map[string]any) ([]byte, error) {
	t, err := rd.load(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name+".html", data); err != nil {
		metrics.TemplateRenderErrorsTotal.WithLabelValues(name).Inc()
		return nil, fmt.Errorf("view: execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// load finds and (if necessary) parses the template set for page name.
func (rd *Renderer) load(name string) (*template.Template, error) {
	if rd.sets != nil {
		if v, ok := rd.sets.Get(name); ok {
			return v.(*template.Template), nil
		}
	}

	page := name + ".html"
	src := rd.find(page)
	if src == nil {
		return nil, fmt.Errorf("view: template %q: %w", page, fs.ErrNotExist)
	}

	t := template.New(page).Funcs(rd.funcs)
	for _, sf := range rd.shared() {
		if err := parseInto(t, sf.src, sf.path); err != nil {
			return nil, err
		}
	}
	if err := parseInto(t, src, page); err != nil {
		return nil, err
	}

	if rd.sets != nil {
		rd.sets.Add(name, t)
	}
	return t, nil
}

// find returns the first source holding path.
func (rd *Renderer) find(path string) fs.FS {
	for _, src := range rd.sources {
		if _, err := fs.Stat(src, path); err == nil {
			return src
		}
	}
	return nil
}

type sourced struct {
	src  fs.FS
	path string
}

// shared lists layout and partial files, first source winning per path,
// in lexical path order.
func (rd *Renderer) shared() []sourced {
	seen := map[string]fs.FS{}
	for _, src := range rd.sources {
		for _, dir := range sharedDirs {
			files, _ := CollectHTML(src, dir)
			for _, f := range files {
				if _, dup := seen[f]; !dup {
					seen[f] = src
				}
			}
		}
	}
	out := make([]sourced, 0, len(seen))
	for p, src := range seen {
		out = append(out, sourced{src, p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

// pages lists top-level page names across all sources.
func (rd *Renderer) pages() []string {
	seen := map[string]bool{}
	var out []string
	for _, src := range rd.sources {
		matches, _ := fs.Glob(src, "*.html")
		for _, m := range matches {
			name := m[:len(m)-len(".html")]
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

func parseInto(t *template.Template, src fs.FS, path string) error {
	raw, err := fs.ReadFile(src, path)
	if err != nil {
		return err
	}
	if _, err := t.New(path).Parse(string(raw)); err != nil {
		return fmt.Errorf("view: parse %s: %w", path, err)
	}
	return nil
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		zap.L().Debug("write response", zap.Error(err))
	}
}
