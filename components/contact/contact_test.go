package contact

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

	"github.com/yanizio/campus/internal/auth"
	"github.com/yanizio/campus/internal/form"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/view/viewtest"
)

type fakeInbox struct {
	messages []store.ContactMessage
	regs     []store.Registration
}

func (f *fakeInbox) CreateContactMessage(_ context.Context, m store.ContactMessage) error {
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeInbox) CreateRegistration(_ context.Context, r store.Registration) error {
	for _, have := range f.regs {
		if have.UserID == r.UserID && have.CourseCode == r.CourseCode && have.Term == r.Term {
			return store.ErrDuplicate
		}
	}
	f.regs = append(f.regs, r)
	return nil
}

func (f *fakeInbox) RegistrationsForUser(_ context.Context, uid int64) ([]store.Registration, error) {
	var out []store.Registration
	for _, r := range f.regs {
		if r.UserID == uid {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCourses struct{}

func (fakeCourses) ListCourses(context.Context, string, string) ([]store.Course, error) {
	return nil, nil
}

func (fakeCourses) CourseByCode(_ context.Context, code string) (*store.Course, error) {
	if code == "CS101" {
		return &store.Course{Code: code}, nil
	}
	return nil, store.ErrNotFound
}

func (fakeCourses) Departments(context.Context) ([]string, error) { return nil, nil }

type fixture struct {
	inbox *fakeInbox
	rec   *viewtest.Recorder
	forms *form.Processor
	h     http.Handler
}

// setup mounts the component; uid > 0 simulates a logged-in user.
func setup(uid int64) *fixture {
	forms := form.NewProcessor(form.NewCSRF([]byte("0123456789abcdef0123456789abcdef")))
	forms.MinDelay = 0
	f := &fixture{inbox: &fakeInbox{}, rec: &viewtest.Recorder{}, forms: forms}
	c := &Component{inbox: f.inbox, courses: fakeCourses{}, forms: forms, pages: f.rec}

	r := chi.NewRouter()
	if uid > 0 {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), uid)))
			})
		})
	}
	r.Group(c.Routes)
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

func TestContactGET(t *testing.T) {
	f := setup(0)
	w := httptest.NewRecorder()
	f.h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	call := f.rec.Last()
	assert.Equal(t, "contact", call.Name)
	assert.NotEmpty(t, call.Data["Hidden"].(map[string]string)["csrf_token"])
	assert.NotNil(t, call.Data["Prefill"])
}

func TestContactPOSTStoresAndRedirects(t *testing.T) {
	f := setup(0)
	w := f.post(t, "/contact", url.Values{
		"name": {"Ada"}, "email": {"ada@example.edu"}, "subject": {"Hi"}, "message": {"Is the library open late?"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contact?sent=1", w.Header().Get("Location"))
	require.Len(t, f.inbox.messages, 1)
	assert.Equal(t, "Is the library open late?", f.inbox.messages[0].Body)
}

func TestContactPOSTInvalidPrefills(t *testing.T) {
	f := setup(0)
	w := f.post(t, "/contact", url.Values{"name": {"Ada"}, "email": {"nope"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	call := f.rec.Last()
	assert.Equal(t, "contact", call.Name)
	assert.Equal(t, "Ada", call.Data["Prefill"].(url.Values).Get("name"))
	assert.NotEmpty(t, call.Data["FormErrors"])
	assert.Empty(t, f.inbox.messages)
}

func TestRegisterRequiresLogin(t *testing.T) {
	f := setup(0)
	w := httptest.NewRecorder()
	f.h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register?course=CS101", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?next=%2Fregister%3Fcourse%3DCS101", w.Header().Get("Location"))
}

func TestRegisterGETPrefillsCourse(t *testing.T) {
	f := setup(3)
	w := httptest.NewRecorder()
	f.h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register?course=CS101", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CS101", f.rec.Last().Data["Prefill"].(url.Values).Get("course"))
}

func TestRegisterFlow(t *testing.T) {
	f := setup(3)
	vals := func() url.Values {
		return url.Values{"course": {"cs101"}, "term": {"fall-2025"}, "phone": {"555-010-0100"}}
	}

	w := f.post(t, "/register", vals())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register?sent=1", w.Header().Get("Location"))
	require.Len(t, f.inbox.regs, 1)
	assert.Equal(t, int64(3), f.inbox.regs[0].UserID)
	assert.Equal(t, "CS101", f.inbox.regs[0].CourseCode)

	// same course and term again
	w = f.post(t, "/register", vals())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := f.rec.Last().Data["FormErrors"].([]form.ErrorField)
	assert.Equal(t, "course", errs[0].Name)
	assert.Len(t, f.rec.Last().Data["Registrations"], 1)
}

func TestRegisterUnknownCourse(t *testing.T) {
	f := setup(3)
	w := f.post(t, "/register", url.Values{"course": {"XX999"}, "term": {"fall-2025"}, "phone": {"555-010-0100"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Unknown course.", f.rec.Last().Data["FormErrors"].([]form.ErrorField)[0].Message)
}
