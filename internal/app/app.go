// internal/app/app.go
//
// Campus – application assembly.
//
// Context
// -------
// App owns the long-lived resources (store, sessions, forms, renderer, and
// locals composer) and builds the root chi router.  Middleware order is
// fixed:
//
//	RequestID → Recoverer → Logging → Security → ForceHTTPS
//	→ requestinfo.Enrich → auth.LoadUser → locals.Install → Metrics
//	→ site assets → component route groups → handler → view
//
// Locals are installed before any route group so section middleware
// (catalog.css, faculty.js) can append to the per-request asset registry.
//
// Notes
// -----
// • App satisfies component.Deps; components pull what they need in Init.
package app

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/campus/internal/auth"
	"github.com/yanizio/campus/internal/component"
	"github.com/yanizio/campus/internal/config"
	"github.com/yanizio/campus/internal/form"
	"github.com/yanizio/campus/internal/head"
	"github.com/yanizio/campus/internal/locals"
	"github.com/yanizio/campus/internal/middleware"
	"github.com/yanizio/campus/internal/requestinfo"
	"github.com/yanizio/campus/internal/session"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/theme"
	"github.com/yanizio/campus/internal/view"
	"github.com/yanizio/campus/web"

	// Components register themselves in init().
	_ "github.com/yanizio/campus/components/auth"
	_ "github.com/yanizio/campus/components/catalog"
	_ "github.com/yanizio/campus/components/contact"
	_ "github.com/yanizio/campus/components/faculty"
	_ "github.com/yanizio/campus/components/home"
)

// Catalog cache sizing.
const (
	catalogCacheSize = 128
	catalogCacheTTL  = time.Minute
)

// App is the assembled application.
type App struct {
	cfg      *config.Config
	db       *sqlx.DB
	store    *store.Store
	catalog  *store.CachedCatalog
	sessions *session.Store
	forms    *form.Processor
	view     *view.Renderer
	composer *locals.Composer
	static   fs.FS
}

var _ component.Deps = (*App)(nil)

// New wires every long-lived dependency from cfg and db.
func New(cfg *config.Config, db *sqlx.DB) (*App, error) {
	secret := []byte(cfg.Session.Secret)

	sessions, err := session.New(secret, cfg.Session.MaxAge)
	if err != nil {
		return nil, err
	}
	sessions.Secure = cfg.HTTP.ForceHTTPS

	a := &App{
		cfg:      cfg,
		db:       db,
		store:    store.New(db),
		sessions: sessions,
		forms:    form.NewProcessor(form.NewCSRF(secret)),
		static:   overlay(cfg.Paths.Static, web.Static()),
	}
	a.catalog = store.NewCachedCatalog(a.store, catalogCacheSize, catalogCacheTTL)
	a.composer = &locals.Composer{
		Environment: cfg.App.Environment,
		Themes:      theme.NewRandomPicker(nil),
		Sessions:    sessions,
	}

	env := locals.EnvironmentName(cfg.App.Environment)
	a.view, err = view.New(view.Options{
		NoCache: env == "development",
		Globals: a.globals,
	}, sources(cfg.Paths.Templates, web.Templates())...)
	if err != nil {
		return nil, err
	}
	if err := a.view.Check(); err != nil {
		return nil, err
	}
	return a, nil
}

/*────────────────── component.Deps ─────────────────────────────────────────*/

func (a *App) GetStore() *store.Store { return a.store }
func (a *App) GetCatalog() store.CourseSource { return a.catalog }
func (a *App) GetSessions() *session.Store { return a.sessions }
func (a *App) GetForms() *form.Processor { return a.forms }
func (a *App) GetView() *view.Renderer { return a.view }

/*────────────────── router ─────────────────────────────────────────────────*/

// Router builds the root handler.
func (a *App) Router() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logging,
		middleware.Security,
		middleware.ForceHTTPS(a.cfg.HTTP.ForceHTTPS),
		requestinfo.Enrich,
		auth.LoadUser(a.sessions),
		a.composer.Install,
		middleware.Metrics,
		locals.Style(head.Stylesheet("/static/css/site.css"), 100),
		locals.Script(head.ScriptSrc("/static/js/site.js"), 0),
	)

	// Set before mounting so sub-routers inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.view.Error(w, r, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		a.view.Error(w, r, http.StatusMethodNotAllowed)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", a.health)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(a.static))))

	if err := component.Mount(r, a); err != nil {
		return nil, err
	}
	return r, nil
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.db.PingContext(ctx); err != nil {
		zap.L().Warn("health ping", zap.Error(err))
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}
	_, _ = w.Write([]byte("ok"))
}

// Refresh drops cached catalog listings so edits made by another process
// (cmd/seed) show before the TTL runs out.
func (a *App) Refresh() {
	a.catalog.Invalidate()
	zap.L().Info("catalog cache cleared")
}

// RefreshOn calls Refresh for each value received on sig until ctx ends.
func (a *App) RefreshOn(ctx context.Context, sig <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			a.Refresh()
		}
	}
}

// globals supplies keys every page needs beyond the locals.
func (a *App) globals(r *http.Request) map[string]any {
	if _, ok := auth.UserID(r.Context()); !ok {
		return nil
	}
	tok, err := a.forms.CSRF.Token()
	if err != nil {
		zap.L().Warn("logout token", zap.Error(err))
		return nil
	}
	return map[string]any{"LogoutToken": tok}
}

/*────────────────── helpers ────────────────────────────────────────────────*/

// sources puts an on-disk directory, when it exists, ahead of the embedded
// defaults.
func sources(dir string, embedded fs.FS) []fs.FS {
	if dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return []fs.FS{os.DirFS(dir), embedded}
		}
	}
	return []fs.FS{embedded}
}
