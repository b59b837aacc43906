package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("k", 32))

func newStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(testSecret, time.Hour)
	require.NoError(t, err)
	return st
}

// roundTrip saves s and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, st *Store, s *Session) *http.Request {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, st.Save(rr, httptest.NewRequest(http.MethodGet, "/", nil), s))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew_ShortSecret(t *testing.T) {
	_, err := New([]byte("short"), 0)
	assert.ErrorIs(t, err, ErrShortSecret)
}

func TestGet_NoCookie(t *testing.T) {
	s, ok := newStore(t).Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.False(t, s.Authenticated())
}

func TestSaveGet_RoundTrip(t *testing.T) {
	st := newStore(t)
	req := roundTrip(t, st, &Session{UserID: 7, Email: "dean@example.edu"})

	s, ok := st.Get(req)
	require.True(t, ok)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, int64(7), s.UserID)
	assert.Equal(t, "dean@example.edu", s.Email)
	assert.True(t, s.Authenticated())
}

func TestGet_AnonymousSession(t *testing.T) {
	st := newStore(t)
	s, ok := st.Get(roundTrip(t, st, &Session{}))
	require.True(t, ok)
	assert.False(t, s.Authenticated())
}

func TestGet_TamperedCookie(t *testing.T) {
	st := newStore(t)
	req := roundTrip(t, st, &Session{UserID: 1})
	c, err := req.Cookie(cookieName)
	require.NoError(t, err)

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.AddCookie(&http.Cookie{Name: cookieName, Value: "x" + c.Value})
	_, ok := st.Get(bad)
	assert.False(t, ok)
}

func TestGet_Expired(t *testing.T) {
	st := newStore(t)
	req := roundTrip(t, st, &Session{UserID: 1})

	st.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, ok := st.Get(req)
	assert.False(t, ok)
}

func TestStart_FreshSession(t *testing.T) {
	s := newStore(t).Start(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Authenticated())
}

func TestClear(t *testing.T) {
	rr := httptest.NewRecorder()
	newStore(t).Clear(rr)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestSave_SecureFlag(t *testing.T) {
	st := newStore(t)

	cookie := func() *http.Cookie {
		rr := httptest.NewRecorder()
		require.NoError(t, st.Save(rr, httptest.NewRequest(http.MethodGet, "/", nil), &Session{UserID: 1}))
		cs := rr.Result().Cookies()
		require.Len(t, cs, 1)
		return cs[0]
	}

	assert.False(t, cookie().Secure, "plain http without the flag")

	// TLS terminated upstream: the request itself is plain http.
	st.Secure = true
	assert.True(t, cookie().Secure)

	rr := httptest.NewRecorder()
	st.Clear(rr)
	assert.True(t, rr.Result().Cookies()[0].Secure)
}
