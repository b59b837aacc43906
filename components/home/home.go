// components/home/home.go
//
// Campus home component – the landing page at "/".
//
//------------------------------------------------------------------------------

package home

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/campus/internal/component"
	"github.com/yanizio/campus/internal/locals"
	"github.com/yanizio/campus/internal/view"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component serves the landing page.
type Component struct {
	pages view.Pages
}

func init() { component.Register(&Component{}) }

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string   { return "home" }
func (c *Component) Prefix() string { return "/" }

func (c *Component) Init(d component.Deps) error {
	c.pages = d.GetView()
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Get("/", c.handleHome)
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleHome(w http.ResponseWriter, r *http.Request) {
	if l := locals.FromContext(r.Context()); l != nil {
		l.Assets.SetTitle("Campus")
	}
	view.Serve(c.pages, w, r, http.StatusOK, "home", nil)
}
