// internal/middleware/logging.go
//
// Access log and request metrics.
//
// Both wrappers observe the response through chi's WrapResponseWriter and
// label by the matched chi route pattern (e.g. "/catalog/{code}") rather
// than the raw path, keeping metric cardinality bounded.
//
// Middleware further down the chain adds fields to the access line with
// Annotate; the line is written once the handler returns.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/campus/internal/metrics"
)

// Logging emits one INFO line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		extra := &annotations{}

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), annotationsKey{}, extra)))

		fields := append([]zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status(ww)),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", RequestIDFromContext(r.Context())),
		}, extra.fields...)
		zap.L().Info("request", fields...)
	})
}

type annotationsKey struct{}

// annotations is owned by one request goroutine.
type annotations struct{ fields []zap.Field }

// Annotate adds fields to the access log line of the request carrying ctx.
// Without Logging upstream it does nothing.
func Annotate(ctx context.Context, fields ...zap.Field) {
	if a, ok := ctx.Value(annotationsKey{}).(*annotations); ok {
		a.fields = append(a.fields, fields...)
	}
}

// Metrics records request counts and latency per route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status(ww))).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// status reports 200 for handlers that wrote a body without WriteHeader.
func status(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
