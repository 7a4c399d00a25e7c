// Package metrics exposes Prometheus instrumentation for the HTTP API and the
// few domain events worth counting.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for this process.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	// Conflicts counts relationship writes rejected as duplicates.
	Conflicts prometheus.Counter
	// CascadeDeletes counts relationships removed because a member was deleted.
	CascadeDeletes prometheus.Counter
}

// New creates a Metrics with its own registry (plus Go and process collectors).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "familytree",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "familytree",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "familytree",
			Name:      "relationship_conflicts_total",
			Help:      "Relationship writes rejected because the tuple already exists.",
		}),
		CascadeDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "familytree",
			Name:      "relationship_cascade_deletes_total",
			Help:      "Relationships deleted as part of deleting a member.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.Conflicts, m.CascadeDeletes,
	)
	return m
}

// Middleware records request count and latency, labelled by chi route pattern
// so ids in paths do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordConflict counts a rejected duplicate relationship. Safe on a nil receiver.
func (m *Metrics) RecordConflict() {
	if m == nil {
		return
	}
	m.Conflicts.Inc()
}

// RecordCascade counts relationships removed by a member delete. Safe on a nil receiver.
func (m *Metrics) RecordCascade(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.CascadeDeletes.Add(float64(n))
}
