// components/auth/auth.go
//
// Campus authentication component – login and logout.
//
// Routes (mounted at /)
//   GET  /login    form; already-authenticated visitors go straight to next
//   POST /login    checks the user table, writes the session cookie
//   POST /logout   CSRF-checked, clears the session cookie
//
//------------------------------------------------------------------------------

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	iauth "github.com/yanizio/campus/internal/auth"
	"github.com/yanizio/campus/internal/component"
	"github.com/yanizio/campus/internal/form"
	"github.com/yanizio/campus/internal/locals"
	"github.com/yanizio/campus/internal/session"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/view"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// users is the store surface login needs.
type users interface {
	UserByEmail(ctx context.Context, email string) (*store.User, error)
}

// sessions is the cookie surface login and logout need.
type sessions interface {
	Get(r *http.Request) (*session.Session, bool)
	Start(r *http.Request) *session.Session
	Save(w http.ResponseWriter, r *http.Request, s *session.Session) error
	Clear(w http.ResponseWriter)
}

// Component encapsulates login functionality.
type Component struct {
	users    users
	sessions sessions
	forms    *form.Processor
	pages    view.Pages
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "auth" }

// Prefix mounts the routes at the site root.
func (c *Component) Prefix() string { return "/" }

// Init wires the store, session cookies, and form processor.
func (c *Component) Init(d component.Deps) error {
	c.users = d.GetStore()
	c.sessions = d.GetSessions()
	c.forms = d.GetForms()
	c.pages = d.GetView()
	return nil
}

// Routes adds the login and logout endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Get("/login", c.handleLoginGET)
	r.Post("/login", c.handleLoginPOST)
	r.Post("/logout", c.handleLogout)
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleLoginGET(w http.ResponseWriter, r *http.Request) {
	next := iauth.SafeNext(r.URL.Query().Get("next"))
	if s, ok := c.sessions.Get(r); ok && s.Authenticated() {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	c.render(w, r, http.StatusOK, next, nil, url.Values{})
}

func (c *Component) handleLoginPOST(w http.ResponseWriter, r *http.Request) {
	var f form.Login
	if err := c.forms.Submit(r, &f); err != nil {
		if form.IsValidationError(err) {
			c.render(w, r, http.StatusUnprocessableEntity, r.PostForm.Get("next"), form.Fields(err), r.PostForm)
			return
		}
		c.pages.Error(w, r, http.StatusBadRequest)
		return
	}

	u, err := c.users.UserByEmail(r.Context(), f.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		zap.L().Error("login lookup", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}
	if u == nil || !iauth.CheckPassword(u.PasswordHash, f.Password) {
		c.render(w, r, http.StatusUnprocessableEntity, f.Next, []form.ErrorField{{
			Name:    "password",
			Message: "Incorrect email or password.",
		}}, r.PostForm)
		return
	}

	s := c.sessions.Start(r)
	s.ID = uuid.NewString() // fresh id on privilege change
	s.UserID = u.ID
	s.Email = u.Email
	if err := c.sessions.Save(w, r, s); err != nil {
		zap.L().Error("login session save", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}
	zap.L().Info("login", zap.Int64("user_id", u.ID))
	http.Redirect(w, r, iauth.SafeNext(f.Next), http.StatusSeeOther)
}

func (c *Component) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !c.forms.CSRF.Verify(r.PostFormValue("csrf_token")) {
		c.pages.Error(w, r, http.StatusForbidden)
		return
	}
	c.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

func (c *Component) render(w http.ResponseWriter, r *http.Request, status int, next string, errs []form.ErrorField, prefill url.Values) {
	hidden, err := c.forms.Hidden()
	if err != nil {
		zap.L().Error("login form", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}
	if l := locals.FromContext(r.Context()); l != nil {
		l.Assets.SetTitle("Log in")
	}
	view.Serve(c.pages, w, r, status, "login", map[string]any{
		"Hidden":     hidden,
		"Next":       iauth.SafeNext(next),
		"FormErrors": errs,
		"Prefill":    prefill,
	})
}
