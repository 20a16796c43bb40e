package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-doublefield/pkg/metrics"
)

// Metrics records request count and latency labelled by the matched chi
// route pattern, so path parameters do not explode label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		path := routePattern(r)
		labels := prometheus.Labels{"method": r.Method, "path": path, "status": strconv.Itoa(m.Code)}
		metrics.Requests.With(labels).Inc()
		metrics.Latency.WithLabelValues(r.Method, path).Observe(m.Duration.Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
