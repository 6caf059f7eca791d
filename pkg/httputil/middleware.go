package httputil

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/collabgraph/pkg/observability"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RouteFunc returns the route pattern a request matched, for example
// "/v1/users/{label}/closest". It is called after the handler ran.
type RouteFunc func(r *http.Request) string

// Instrument wraps next so every request is reported to
// [observability.HTTP] and logged at debug level. A nil route func reports
// the raw path.
func Instrument(logger *log.Logger, route RouteFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hooks := observability.HTTP()
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			pattern := r.URL.Path
			if route != nil {
				if p := route(r); p != "" {
					pattern = p
				}
			}
			// OnRequest fires late because the pattern is only known
			// after routing.
			hooks.OnRequest(r.Context(), r.Method, pattern)
			d := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, pattern, rec.status, d)
			if logger != nil {
				logger.Debug("request", "method", r.Method, "route", pattern, "status", rec.status, "duration", d)
			}
		})
	}
}
