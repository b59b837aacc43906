// internal/requestinfo/middleware.go
//
// Enrich runs ahead of the locals composer so Locals.Info is populated, and
// hands the visitor fields to the access log through
// middleware.Annotate.

package requestinfo

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yanizio/campus/internal/middleware"
)

// Enrich attaches *RequestInfo to the request context.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			Agent:    parseAgent(r.UserAgent(), r.Header.Get("Accept-Language")),
			Origin:   locate(clientIP(r)),
			Received: time.Now().UTC(),
		}
		middleware.Annotate(r.Context(), info.Fields()...)

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), info)))
	})
}

// clientIP prefers the first parseable X-Forwarded-For hop, then
// X-Real-IP, then RemoteAddr.
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-Ip"))); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
