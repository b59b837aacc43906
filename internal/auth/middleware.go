// internal/auth/middleware.go
//
// Chi middleware for the login marker.
//
//   • LoadUser copies the user id from the signed session cookie into the
//     request context so handlers can call auth.UserID.
//   • RequireLogin sends anonymous visitors to /login?next=<original URI>.

package auth

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/campus/internal/session"
)

// LoginPath is where RequireLogin redirects.
const LoginPath = "/login"

// SessionSource reads the current session.  *session.Store satisfies it.
type SessionSource interface {
	Get(r *http.Request) (*session.Session, bool)
}

// LoadUser attaches the session's user id to the request context.
func LoadUser(src SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := src.Get(r); ok && s.Authenticated() {
				r = r.WithContext(WithUser(r.Context(), s.UserID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		zap.L().Debug("login required", zap.String("path", r.URL.Path))
		target := LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusSeeOther)
	})
}

// SafeNext returns next when it is a local absolute path, "/" otherwise.
// Protocol-relative and absolute URLs are rejected to avoid open redirects.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
