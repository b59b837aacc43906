// components/contact/contact.go
//
// Campus contact component – the public contact form and the course
// registration form for logged-in users.
//
// Routes (mounted at /)
//   GET  /contact    form; ?sent=1 shows the thank-you notice
//   POST /contact    validates, stores, redirects to /contact?sent=1
//   GET  /register   login required; ?course= prefills the course code
//   POST /register   validates, stores, redirects to /register?sent=1
//
// Invalid submissions re-render the form with status 422, field errors,
// and the posted values.
//
//------------------------------------------------------------------------------

package contact

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/campus/internal/auth"
	"github.com/yanizio/campus/internal/component"
	"github.com/yanizio/campus/internal/form"
	"github.com/yanizio/campus/internal/locals"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/view"
)

var _ component.Component = (*Component)(nil)

// inbox is the write side this component needs.
type inbox interface {
	CreateContactMessage(ctx context.Context, m store.ContactMessage) error
	CreateRegistration(ctx context.Context, r store.Registration) error
	RegistrationsForUser(ctx context.Context, userID int64) ([]store.Registration, error)
}

// Component owns /contact and /register.
type Component struct {
	inbox   inbox
	courses store.CourseSource
	forms   *form.Processor
	pages   view.Pages
}

func init() { component.Register(&Component{}) }

/*────────────────── component.Component methods ───────────────────────────*/

func (c *Component) Name() string   { return "contact" }
func (c *Component) Prefix() string { return "/" }

func (c *Component) Init(d component.Deps) error {
	c.inbox = d.GetStore()
	c.courses = d.GetCatalog()
	c.forms = d.GetForms()
	c.pages = d.GetView()
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Get("/contact", c.handleContactGET)
	r.Post("/contact", c.handleContactPOST)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireLogin)
		r.Get("/register", c.handleRegisterGET)
		r.Post("/register", c.handleRegisterPOST)
	})
}

/*──────────────────────────── contact ──────────────────────────────────────*/

func (c *Component) handleContactGET(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "contact", "Contact us", nil, url.Values{}, nil)
}

func (c *Component) handleContactPOST(w http.ResponseWriter, r *http.Request) {
	var f form.Contact
	if err := c.forms.Submit(r, &f); err != nil {
		c.submitFailed(w, r, "contact", "Contact us", err, nil)
		return
	}

	if err := c.inbox.CreateContactMessage(r.Context(), store.ContactMessage{
		Name: f.Name, Email: f.Email, Subject: f.Subject, Body: f.Message,
	}); err != nil {
		zap.L().Error("contact save", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}

/*──────────────────────────── register ─────────────────────────────────────*/

func (c *Component) handleRegisterGET(w http.ResponseWriter, r *http.Request) {
	prefill := url.Values{}
	if code := r.URL.Query().Get("course"); code != "" {
		prefill.Set("course", code)
	}
	c.render(w, r, http.StatusOK, "register", "Course registration", nil, prefill, c.registrations(r))
}

func (c *Component) handleRegisterPOST(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserID(r.Context()) // RequireLogin guarantees a user

	var f form.Registration
	if err := c.forms.Submit(r, &f); err != nil {
		c.submitFailed(w, r, "register", "Course registration", err, c.registrations(r))
		return
	}

	if _, err := c.courses.CourseByCode(r.Context(), f.CourseCode); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.fieldError(w, r, "course", "Unknown course.")
			return
		}
		zap.L().Error("register course lookup", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}

	err := c.inbox.CreateRegistration(r.Context(), store.Registration{
		UserID: uid, CourseCode: f.CourseCode, Term: f.Term, Phone: f.Phone,
	})
	switch {
	case errors.Is(err, store.ErrDuplicate):
		c.fieldError(w, r, "course", "You are already registered for this course and term.")
		return
	case err != nil:
		zap.L().Error("register save", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/register?sent=1", http.StatusSeeOther)
}

func (c *Component) fieldError(w http.ResponseWriter, r *http.Request, name, msg string) {
	c.render(w, r, http.StatusUnprocessableEntity, "register", "Course registration",
		[]form.ErrorField{{Name: name, Message: msg}}, r.PostForm, c.registrations(r))
}

func (c *Component) registrations(r *http.Request) []store.Registration {
	uid, ok := auth.UserID(r.Context())
	if !ok {
		return nil
	}
	regs, err := c.inbox.RegistrationsForUser(r.Context(), uid)
	if err != nil {
		zap.L().Warn("registrations", zap.Int64("user_id", uid), zap.Error(err))
		return nil
	}
	return regs
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

func (c *Component) submitFailed(w http.ResponseWriter, r *http.Request, page, title string, err error, regs []store.Registration) {
	if !form.IsValidationError(err) {
		c.pages.Error(w, r, http.StatusBadRequest)
		return
	}
	c.render(w, r, http.StatusUnprocessableEntity, page, title, form.Fields(err), r.PostForm, regs)
}

func (c *Component) render(w http.ResponseWriter, r *http.Request, status int, page, title string,
	errs []form.ErrorField, prefill url.Values, regs []store.Registration) {
	hidden, err := c.forms.Hidden()
	if err != nil {
		zap.L().Error("form hidden fields", zap.Error(err))
		c.pages.Error(w, r, http.StatusInternalServerError)
		return
	}
	if l := locals.FromContext(r.Context()); l != nil {
		l.Assets.SetTitle(title)
	}
	view.Serve(c.pages, w, r, status, page, map[string]any{
		"Hidden":        hidden,
		"FormErrors":    errs,
		"Prefill":       prefill,
		"Registrations": regs,
	})
}
