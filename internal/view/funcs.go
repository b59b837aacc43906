//
//  internal/view/funcs.go
//
//  Template functions.  The visitor helpers read *requestinfo.RequestInfo
//  and each one tolerates nil.
//

package view

import (
	"html/template"

	"github.com/yanizio/campus/internal/form"
	"github.com/yanizio/campus/internal/head"
	"github.com/yanizio/campus/internal/requestinfo"
	"github.com/yanizio/campus/internal/routing"
)

// FuncMap returns the template function map shared by every page.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict":       dict,
		"stylesheet": head.Stylesheet,
		"script":     head.ScriptSrc,
		"fieldError": fieldError,
		"slug":       routing.MakeSlug,
		"idSlug":     routing.IDSlug,
		"path":       routing.BuildPath,

		// Visitor helpers; the layout passes .Info, which may be nil.
		"device": func(i *requestinfo.RequestInfo) string {
			if i == nil || i.Agent.Device == "" {
				return "other"
			}
			return i.Agent.Device
		},
		"isBot": func(i *requestinfo.RequestInfo) bool {
			return i != nil && i.Agent.Bot
		},
		"located": (*requestinfo.RequestInfo).Located,
		"place": func(i *requestinfo.RequestInfo) string {
			switch {
			case !i.Located():
				return ""
			case i.Origin.City != "":
				return i.Origin.City + ", " + i.Origin.Country
			default:
				return i.Origin.Country
			}
		},
	}
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}

// fieldError returns the first message for name, or "".
// {{ fieldError .FormErrors "email" }}
func fieldError(errs []form.ErrorField, name string) string {
	for _, e := range errs {
		if e.Name == name {
			return e.Message
		}
	}
	return ""
}
