// internal/greeting/greeting.go
//
// Time-of-day and seasonal greetings shown in the page header.
//
// Context
// -------
// Both resolvers are pure functions of a time.Time.  The Current* variants
// bind them to the wall clock for callers that do not inject one.  Output is
// plain text; Wrap turns it into the paragraph markup templates expect.
//
// Notes
// -----
// • Hour bands are half-open: [0,12) morning, [12,18) afternoon, [18,24)
//   evening.
// • January has no seasonal greeting.  Seasonal reports ok == false for
//   that month and callers store an empty string.
package greeting

import (
	"html/template"
	"time"
)

// Greeting literals.
const (
	Morning   = "Good morning! Welcome to campus."
	Afternoon = "Good afternoon! Welcome to campus."
	Evening   = "Good evening! Welcome to campus."

	Winter = "Stay warm this winter and check out our spring courses."
	Spring = "Spring is here.  Registration for summer sessions is open."
	Summer = "Enjoy the summer, and plan ahead for the fall semester."
	Fall   = "Welcome back for the fall semester."
)

// TimeOfDay returns the greeting for t's hour.
func TimeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return Morning
	case h < 18:
		return Afternoon
	default:
		return Evening
	}
}

// Seasonal returns the greeting for t's month.  ok is false in January,
// which belongs to no season band.
func Seasonal(t time.Time) (msg string, ok bool) {
	switch t.Month() {
	case time.December, time.February:
		return Winter, true
	case time.March, time.April, time.May:
		return Spring, true
	case time.June, time.July, time.August:
		return Summer, true
	case time.September, time.October, time.November:
		return Fall, true
	}
	return "", false
}

// Current is TimeOfDay bound to the wall clock.
func Current() string { return TimeOfDay(time.Now()) }

// CurrentSeasonal is Seasonal bound to the wall clock.
func CurrentSeasonal() (string, bool) { return Seasonal(time.Now()) }

// Wrap escapes s and wraps it in a paragraph.  Empty input stays empty.
func Wrap(s string) template.HTML {
	if s == "" {
		return ""
	}
	return template.HTML("<p>" + template.HTMLEscapeString(s) + "</p>")
}
