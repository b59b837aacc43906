// components/faculty/faculty.go
//
// Campus faculty component – directory and profile pages under /faculty.
//
//------------------------------------------------------------------------------

package faculty

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/campus/internal/component"
	"github.com/yanizio/campus/internal/head"
	"github.com/yanizio/campus/internal/locals"
	"github.com/yanizio/campus/internal/routing"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/view"
)

var _ component.Component = (*Component)(nil)

// directory is the store surface this component reads.
type directory interface {
	ListFaculty(ctx context.Context, dept string) ([]store.Faculty, error)
	FacultyByID(ctx context.Context, id uint64) (*store.Faculty, error)
}

// Component owns the /faculty section.
type Component struct {
	dir   directory
	pages view.Pages
}

func init() { component.Register(&Component{}) }

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string   { return "faculty" }
func (c *Component) Prefix() string { return "/faculty" }

func (c *Component) Init(d component.Deps) error {
	c.dir = d.GetStore()
	c.pages = d.GetView()
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Use(
		locals.Style(head.Stylesheet("/static/css/faculty.css"), 10),
		locals.Script(head.ScriptSrc("/static/js/faculty.js"), 10),
	)
	r.Get("/", c.handleList)
	r.Get("/{id}", c.handleShow)
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	dept := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("dept")))

	rows, err := c.dir.ListFaculty(r.Context(), dept)
	if err != nil {
		zap.L().Error("faculty list", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}

	if l := locals.FromContext(r.Context()); l != nil {
		l.Assets.SetTitle("Faculty directory")
	}
	view.Serve(c.pages, w, r, http.StatusOK, "faculty", map[string]any{
		"Faculty": rows,
		"Dept":    dept,
	})
}

func (c *Component) handleShow(w http.ResponseWriter, r *http.Request) {
	seg := chi.URLParam(r, "id")
	id, ok := routing.ParseIDSlug(seg)
	if !ok {
		c.pages.Error(w, r, http.StatusNotFound)
		return
	}

	m, err := c.dir.FacultyByID(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.pages.Error(w, r, http.StatusNotFound)
		return
	case err != nil:
		zap.L().Error("faculty show", zap.Uint64("id", id), zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}

	// Stale or missing slug: send the client to the canonical URL.
	if canonical := routing.IDSlug(m.ID, m.Name); seg != canonical {
		http.Redirect(w, r, routing.BuildPath(c.Prefix(), canonical), http.StatusMovedPermanently)
		return
	}

	if l := locals.FromContext(r.Context()); l != nil {
		l.Assets.SetTitle(m.Name)
	}
	view.Serve(c.pages, w, r, http.StatusOK, "faculty_member", map[string]any{"Member": m})
}
