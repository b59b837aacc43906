package faculty

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/campus/internal/head"
	"github.com/yanizio/campus/internal/locals"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/view/viewtest"
)

type fakeDir struct{ dept string }

func (f *fakeDir) ListFaculty(_ context.Context, dept string) ([]store.Faculty, error) {
	f.dept = dept
	return []store.Faculty{{ID: 1, Name: "Grace Hopper"}}, nil
}

func (f *fakeDir) FacultyByID(_ context.Context, id uint64) (*store.Faculty, error) {
	if id == 1 {
		return &store.Faculty{ID: 1, Name: "Grace Hopper"}, nil
	}
	return nil, store.ErrNotFound
}

func setup() (*fakeDir, *viewtest.Recorder, http.Handler) {
	dir := &fakeDir{}
	rec := &viewtest.Recorder{}
	c := &Component{dir: dir, pages: rec}

	var comp locals.Composer
	r := chi.NewRouter()
	r.Use(comp.Install)
	r.Route(c.Prefix(), c.Routes)
	r.Get("/elsewhere", func(w http.ResponseWriter, r *http.Request) {
		_ = rec.Render(w, r, "elsewhere", nil)
	})
	return dir, rec, r
}

func TestListAddsSectionAssets(t *testing.T) {
	dir, rec, h := setup()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/faculty?dept=math", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MATH", dir.dept)

	l := locals.FromContext(rec.Last().Req.Context())
	require.NotNil(t, l)
	assert.Equal(t, head.Stylesheet("/static/css/faculty.css"), string(l.Assets.RenderStyles()))
	assert.Equal(t, head.ScriptSrc("/static/js/faculty.js"), string(l.Assets.RenderScripts()))
}

func TestAssetsStayInSection(t *testing.T) {
	_, rec, h := setup()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/elsewhere", nil))

	l := locals.FromContext(rec.Last().Req.Context())
	require.NotNil(t, l)
	assert.Empty(t, l.Assets.Styles())
	assert.Empty(t, l.Assets.Scripts())
}

func TestShow(t *testing.T) {
	cases := map[string]int{
		"/faculty/1-grace-hopper": http.StatusOK,
		"/faculty/1":              http.StatusMovedPermanently,
		"/faculty/1-old-name":     http.StatusMovedPermanently,
		"/faculty/2-nobody":       http.StatusNotFound,
		"/faculty/abc":            http.StatusNotFound,
	}
	for path, status := range cases {
		t.Run(path, func(t *testing.T) {
			_, _, h := setup()
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, status, w.Code)
		})
	}
}

func TestShowRedirectsToCanonical(t *testing.T) {
	_, _, h := setup()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/faculty/1", nil))

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/faculty/1-grace-hopper", w.Header().Get("Location"))
}
