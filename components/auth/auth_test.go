package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iauth "github.com/yanizio/campus/internal/auth"
	"github.com/yanizio/campus/internal/form"
	"github.com/yanizio/campus/internal/session"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/view/viewtest"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

type fakeUsers map[string]*store.User

func (f fakeUsers) UserByEmail(_ context.Context, email string) (*store.User, error) {
	if u, ok := f[email]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

type fixture struct {
	comp  *Component
	rec   *viewtest.Recorder
	sess  *session.Store
	forms *form.Processor
	h     http.Handler
}

func setup(t *testing.T) *fixture {
	t.Helper()
	hash, err := iauth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	sess, err := session.New(secret, 0)
	require.NoError(t, err)
	forms := form.NewProcessor(form.NewCSRF(secret))
	forms.MinDelay = 0

	f := &fixture{rec: &viewtest.Recorder{}, sess: sess, forms: forms}
	f.comp = &Component{
		users:    fakeUsers{"ada@example.edu": {ID: 7, Email: "ada@example.edu", PasswordHash: hash}},
		sessions: sess,
		forms:    forms,
		pages:    f.rec,
	}
	r := chi.NewRouter()
	r.Group(f.comp.Routes)
	f.h = r
	return f
}

func (f *fixture) post(t *testing.T, path string, vals url.Values) *httptest.ResponseRecorder {
	t.Helper()
	hidden, err := f.forms.Hidden()
	require.NoError(t, err)
	for k, v := range hidden {
		vals.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.h.ServeHTTP(w, req)
	return w
}

func TestLoginSuccessSetsSession(t *testing.T) {
	f := setup(t)
	w := f.post(t, "/login", url.Values{
		"email": {"ADA@example.edu"}, "password": {"s3cret-pass"}, "next": {"/register"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	s, ok := f.sess.Get(req)
	require.True(t, ok)
	assert.Equal(t, int64(7), s.UserID)
	assert.True(t, s.Authenticated())
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := setup(t)
	w := f.post(t, "/login", url.Values{"email": {"ada@example.edu"}, "password": {"nope-nope"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	call := f.rec.Last()
	assert.Equal(t, "login", call.Name)
	errs := call.Data["FormErrors"].([]form.ErrorField)
	assert.Equal(t, "password", errs[0].Name)
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginUnknownUserLooksTheSame(t *testing.T) {
	f := setup(t)
	w := f.post(t, "/login", url.Values{"email": {"who@example.edu"}, "password": {"whatever1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Incorrect email or password.", f.rec.Last().Data["FormErrors"].([]form.ErrorField)[0].Message)
}

func TestLoginOpenRedirectBlocked(t *testing.T) {
	f := setup(t)
	w := f.post(t, "/login", url.Values{
		"email": {"ada@example.edu"}, "password": {"s3cret-pass"}, "next": {"//evil.example"},
	})
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLoginGETRedirectsWhenLoggedIn(t *testing.T) {
	f := setup(t)

	w := httptest.NewRecorder()
	f.h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login?next=/catalog", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/catalog", f.rec.Last().Data["Next"])

	cookieW := httptest.NewRecorder()
	require.NoError(t, f.sess.Save(cookieW, httptest.NewRequest(http.MethodGet, "/", nil), &session.Session{UserID: 7}))
	req := httptest.NewRequest(http.MethodGet, "/login?next=/catalog", nil)
	for _, c := range cookieW.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	f.h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	f := setup(t)

	w := f.post(t, "/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader("csrf_token=forged"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	f.h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
