// components/catalog/catalog.go
//
// Campus catalog component – course listing and course detail.
//
// Routes (mounted at /catalog)
//   GET /          ?sort=code|name|credits&dept=<code>
//   GET /{code}    one course, 404 when absent
//
// Every catalog page carries catalog.css via the group middleware below; no
// other section sees it.
//
//------------------------------------------------------------------------------

package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/campus/internal/component"
	"github.com/yanizio/campus/internal/head"
	"github.com/yanizio/campus/internal/locals"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/view"
)

var _ component.Component = (*Component)(nil)

// Component owns the /catalog section.
type Component struct {
	courses store.CourseSource
	pages   view.Pages
}

func init() { component.Register(&Component{}) }

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string   { return "catalog" }
func (c *Component) Prefix() string { return "/catalog" }

func (c *Component) Init(d component.Deps) error {
	c.courses = d.GetCatalog()
	c.pages = d.GetView()
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Use(locals.Style(head.Stylesheet("/static/css/catalog.css"), 10))
	r.Get("/", c.handleList)
	r.Get("/{code}", c.handleShow)
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort := store.NormalizeSort(q.Get("sort"))
	dept := strings.ToUpper(strings.TrimSpace(q.Get("dept")))

	courses, err := c.courses.ListCourses(r.Context(), sort, dept)
	if err != nil {
		zap.L().Error("catalog list", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}
	depts, err := c.courses.Departments(r.Context())
	if err != nil {
		zap.L().Error("catalog departments", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}

	setTitle(r, "Course catalog")
	view.Serve(c.pages, w, r, http.StatusOK, "catalog", map[string]any{
		"Courses":     courses,
		"Departments": depts,
		"Sort":        sort,
		"Dept":        dept,
	})
}

func (c *Component) handleShow(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))

	course, err := c.courses.CourseByCode(r.Context(), code)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.pages.Error(w, r, http.StatusNotFound)
		return
	case err != nil:
		zap.L().Error("catalog show", zap.String("code", code), zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}

	setTitle(r, course.Code+" "+course.Title)
	view.Serve(c.pages, w, r, http.StatusOK, "course", map[string]any{"Course": course})
}

func setTitle(r *http.Request, t string) {
	if l := locals.FromContext(r.Context()); l != nil {
		l.Assets.SetTitle(t)
	}
}
