// internal/locals/composer.go
//
// Composer builds one *Locals per request.  Every ambient input is injected
// (clock, environment name, theme picker, and session source) so tests can
// pin each one.  No step can fail: a missing session reads as logged out,
// and a blank environment reads as "production".
package locals

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanizio/campus/internal/greeting"
	"github.com/yanizio/campus/internal/head"
	"github.com/yanizio/campus/internal/metrics"
	"github.com/yanizio/campus/internal/middleware"
	"github.com/yanizio/campus/internal/requestinfo"
	"github.com/yanizio/campus/internal/session"
	"github.com/yanizio/campus/internal/theme"
)

// DefaultEnvironment is used when no environment name is configured.
const DefaultEnvironment = "production"

// SessionSource reports the session attached to a request, if any.
// *session.Store satisfies it.
type SessionSource interface {
	Get(r *http.Request) (*session.Session, bool)
}

// Composer holds the process-wide, read-only inputs.  The zero value is
// usable: wall clock, "production", random themes, and no sessions.
type Composer struct {
	Clock       func() time.Time
	Environment string
	Themes      theme.Picker
	Sessions    SessionSource
}

// Compose computes the locals for r.
func (c *Composer) Compose(r *http.Request) *Locals {
	now := c.now()

	l := &Locals{
		CurrentYear:    now.Year(),
		Environment:    EnvironmentName(c.Environment),
		Query:          queryEcho(r.URL.Query()),
		Greeting:       greeting.Wrap(greeting.TimeOfDay(now)),
		BodyThemeClass: c.pickTheme(),
		IsLoggedIn:     c.loggedIn(r),
		Info:           requestinfo.FromContext(r.Context()),
		RequestID:      middleware.RequestIDFromContext(r.Context()),
		Assets:         head.New(),
	}
	if msg, ok := greeting.Seasonal(now); ok {
		l.SeasonalGreeting = greeting.Wrap(msg)
	}

	metrics.ThemePicksTotal.WithLabelValues(string(l.BodyThemeClass)).Inc()
	return l
}

// EnvironmentName lower-cases name and falls back to DefaultEnvironment.
func EnvironmentName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultEnvironment
	}
	return name
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func (c *Composer) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

func (c *Composer) pickTheme() theme.ID {
	if c.Themes != nil {
		return c.Themes.Pick()
	}
	return defaultPicker.Pick()
}

var defaultPicker = theme.NewRandomPicker(nil)

func (c *Composer) loggedIn(r *http.Request) bool {
	if c.Sessions == nil {
		return false
	}
	s, ok := c.Sessions.Get(r)
	return ok && s.Authenticated()
}

// queryEcho copies the first value of every query key.
func queryEcho(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[0]
		} else {
			out[k] = ""
		}
	}
	return out
}
