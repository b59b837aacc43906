// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  internal/app imports the
// components for their side effect, calls Init(deps) on each, then opens
// a route group at Prefix() and lets the component add its routes:
//
//	"/"        → r.Group(c.Routes)
//	"/catalog" → r.Route("/catalog", c.Routes)
//
// Middleware a component adds with r.Use stays inside its own group, which
// is how section stylesheets reach only section pages.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Initializer is optional in spirit: components with nothing to set up
// return nil.  app calls Init once before Routes.
type Initializer interface {
	Init(Deps) error
}

// Component contract.
//
// Routes receives a router already scoped to Prefix(), e.g.
//
//	func (c *Component) Routes(r chi.Router) {
//		r.Use(locals.Style(head.Stylesheet("/static/css/catalog.css"), 10))
//		r.Get("/", c.list)
//		r.Get("/{code}", c.show)
//	}
type Component interface {
	Name() string
	Prefix() string
	Routes(r chi.Router)
	Initializer
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.  A second
// registration under the same name replaces the first.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component ordered by name so route
// registration is deterministic.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount initialises every registered component and adds its routes to r.
func Mount(r chi.Router, deps Deps) error {
	for _, c := range All() {
		if err := c.Init(deps); err != nil {
			return &InitError{Component: c.Name(), Err: err}
		}
		switch p := c.Prefix(); p {
		case "", "/":
			r.Group(c.Routes)
		default:
			r.Route(p, c.Routes)
		}
	}
	return nil
}

// InitError names the component whose Init failed.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string { return "component " + e.Component + ": " + e.Err.Error() }
func (e *InitError) Unwrap() error { return e.Err }
