// internal/routing/slug.go
//
// Slug and path helpers.
//
// • MakeSlug(title) ─ converts arbitrary text into a URL-safe slug restricted
//   to ASCII a-z, 0-9 and “-”.
// • IDSlug(id, title) / ParseIDSlug(s) ─ "7-grace-hopper" style path
//   segments: the id is authoritative, the slug is decoration.
// • BuildPath(parts...) ─ joins segments with a single “/” and guarantees
//   exactly one leading slash.
//
// Rules (MakeSlug)
// ----------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one “-”.  That strips
//    spaces, punctuation, emoji, and non-ASCII.
// 3. Trim leading / trailing “-”.
// 4. If the result is empty, return "item".
//
// Notes
// -----
// • No Unicode transliteration; "Émilie" becomes "milie".
// • Slugs are max 100 bytes; the cut never leaves a trailing dash.

package routing

import (
	"strconv"
	"strings"
)

// MakeSlug converts title → lower-kebab ASCII.
func MakeSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			// any non-ASCII or punctuation becomes a single dash
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "item"
	}
	if len(slug) > 100 {
		slug = slug[:100]
		// trim trailing dash if the cut landed on one
		slug = strings.TrimRightFunc(slug, func(r rune) bool { return r == '-' })
	}
	return slug
}

// IDSlug renders "<id>-<slug>".
func IDSlug(id uint64, title string) string {
	return strconv.FormatUint(id, 10) + "-" + MakeSlug(title)
}

// ParseIDSlug reads the leading id of an IDSlug segment.  A bare id is
// accepted too.
func ParseIDSlug(seg string) (uint64, bool) {
	num, _, _ := strings.Cut(seg, "-")
	id, err := strconv.ParseUint(num, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// BuildPath joins parts ensuring exactly one leading slash and no
// duplicate separators.  Empty parts are skipped.
func BuildPath(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(p)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
