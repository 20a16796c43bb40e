// Package metrics defines the Prometheus collectors exported by the preview
// server.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doublefield_http_requests_total",
			Help: "Number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	Latency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "doublefield_http_latency_seconds",
			Help:    "HTTP latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	RenderedElements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doublefield_rendered_elements_total",
			Help: "Render elements produced by formatter and renderer",
		},
		[]string{"formatter", "renderer"},
	)
	RenderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doublefield_render_errors_total",
			Help: "Failed render requests by formatter",
		},
		[]string{"formatter"},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registerer once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(Requests, Latency, RenderedElements, RenderErrors)
	})
}
