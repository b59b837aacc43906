package head

import "html/template"

// Stylesheet returns a <link rel="stylesheet"> tag for href.
func Stylesheet(href string) string {
	return `<link rel="stylesheet" href="` + template.HTMLEscapeString(href) + `">`
}

// ScriptSrc returns a deferred <script src> tag for src.
func ScriptSrc(src string) string {
	return `<script src="` + template.HTMLEscapeString(src) + `" defer></script>`
}
