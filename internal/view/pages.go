package view

import (
	"net/http"

	"go.uber.org/zap"
)

// Pages is the part of *Renderer that handlers use.
type Pages interface {
	Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error
	RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error
	Error(w http.ResponseWriter, r *http.Request, status int)
}

var _ Pages = (*Renderer)(nil)

// Serve renders name with status, answering 500 if the template fails.
func Serve(p Pages, w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if err := p.RenderStatus(w, r, status, name, data); err != nil {
		zap.L().Error("render", zap.String("template", name), zap.Error(err))
		p.Error(w, r, http.StatusInternalServerError)
	}
}
