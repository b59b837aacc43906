// Package viewtest provides a recording view.Pages for handler tests.
package viewtest

import (
	"net/http"
	"sync"
)

// Call is one recorded render.
type Call struct {
	Name   string // template name, "error" for Error
	Status int
	Data   map[string]any
	Req    *http.Request
}

// Recorder implements view.Pages.  It writes the status and the template
// name as the body so tests can assert on either.
type Recorder struct {
	Err error // returned from Render and RenderStatus when set

	mu    sync.Mutex
	calls []Call
}

func (rec *Recorder) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return rec.RenderStatus(w, r, http.StatusOK, name, data)
}

func (rec *Recorder) RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	if rec.Err != nil {
		return rec.Err
	}
	rec.record(Call{Name: name, Status: status, Data: data, Req: r})
	w.WriteHeader(status)
	_, _ = w.Write([]byte(name))
	return nil
}

func (rec *Recorder) Error(w http.ResponseWriter, r *http.Request, status int) {
	rec.record(Call{Name: "error", Status: status, Req: r})
	w.WriteHeader(status)
	_, _ = w.Write([]byte("error"))
}

// Last returns the most recent call, or the zero Call.
func (rec *Recorder) Last() Call {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.calls) == 0 {
		return Call{}
	}
	return rec.calls[len(rec.calls)-1]
}

// Calls returns a copy of every recorded call.
func (rec *Recorder) Calls() []Call {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Call(nil), rec.calls...)
}

func (rec *Recorder) record(c Call) {
	rec.mu.Lock()
	rec.calls = append(rec.calls, c)
	rec.mu.Unlock()
}
