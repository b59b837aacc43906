// internal/session/session.go
//
// Campus – Signed cookie sessions.
//
// Context
//   Authentication persists a "logged-in" marker between requests.  The
//   session lives entirely in one cookie, "campus_session", whose value is
//
//      base64url(json payload) "." base64url(HMAC_SHA256(secret, payload))
//
//   The payload carries a random session id, the user id (0 when anonymous),
//   the email, and an expiry.  Any tampering, truncation, or expiry makes
//   Get report no session, so callers degrade to "anonymous" instead of
//   failing.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const cookieName = "campus_session"

// ErrShortSecret is returned by New when the signing key is too weak.
var ErrShortSecret = errors.New("session: secret must be at least 32 bytes")

// Session is the decoded cookie payload.
type Session struct {
	ID      string    `json:"id"`
	UserID  int64     `json:"uid,omitempty"`
	Email   string    `json:"email,omitempty"`
	Expires time.Time `json:"exp"`
}

// Authenticated reports whether the session carries a user marker.
func (s *Session) Authenticated() bool { return s != nil && s.UserID > 0 }

// Store signs and verifies session cookies.  Safe for concurrent use.
type Store struct {
	// Secure marks cookies Secure regardless of r.TLS.  Set it when TLS
	// ends at a proxy in front of the app.
	Secure bool

	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// New returns a Store.  maxAge <= 0 defaults to fourteen days.
func New(secret []byte, maxAge time.Duration) (*Store, error) {
	if len(secret) < 32 {
		return nil, ErrShortSecret
	}
	if maxAge <= 0 {
		maxAge = 14 * 24 * time.Hour
	}
	return &Store{secret: secret, maxAge: maxAge, now: time.Now}, nil
}

// Get returns the session attached to r.  ok is false when the cookie is
// missing, malformed, badly signed, or expired.
func (st *Store) Get(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	s, err := st.decode(c.Value)
	if err != nil {
		return nil, false
	}
	return s, true
}

// Start returns the existing session or a fresh anonymous one.
func (st *Store) Start(r *http.Request) *Session {
	if s, ok := st.Get(r); ok {
		return s
	}
	return &Session{ID: uuid.NewString()}
}

// Save writes s as a signed cookie and refreshes its expiry.
func (st *Store) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Expires = st.now().Add(st.maxAge).UTC()

	val, err := st.encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   st.Secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.Expires,
	})
	return nil
}

// Clear expires the session cookie.
func (st *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   st.Secure,
	})
}

/*──────────────────────────── codec ────────────────────────────────────────*/

func (st *Store) encode(s *Session) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + base64.RawURLEncoding.EncodeToString(st.sign(payload)), nil
}

func (st *Store) decode(val string) (*Session, error) {
	payload, sig, ok := strings.Cut(val, ".")
	if !ok {
		return nil, errors.New("session: malformed cookie")
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(got, st.sign(payload)) {
		return nil, errors.New("session: bad signature")
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if !s.Expires.After(st.now()) {
		return nil, errors.New("session: expired")
	}
	return &s, nil
}

func (st *Store) sign(payload string) []byte {
	mac := hmac.New(sha256.New, st.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
