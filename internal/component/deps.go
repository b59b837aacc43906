package component

import (
	"github.com/yanizio/campus/internal/form"
	"github.com/yanizio/campus/internal/session"
	"github.com/yanizio/campus/internal/store"
	"github.com/yanizio/campus/internal/view"
)

// Deps exposes shared resources to Components during Init.
type Deps interface {
	GetStore() *store.Store
	GetCatalog() store.CourseSource // cached read path over GetStore
	GetSessions() *session.Store
	GetForms() *form.Processor
	GetView() *view.Renderer
}
