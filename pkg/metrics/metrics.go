// Package metrics exposes Prometheus collectors for the account flows,
// background email dispatch and HTTP traffic.
//
// Collectors are registered on an explicit registry so tests can use a fresh
// one per case. Handler serves the registry in the Prometheus text format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accountd"

// Metrics holds every collector the service records to.
type Metrics struct {
	registry *prometheus.Registry

	flows         *prometheus.CounterVec
	emails        *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// New creates the collectors on a new registry together with the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		flows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_flow_total",
			Help:      "Account flow attempts by flow and outcome.",
		}, []string{"flow", "outcome"}),
		emails: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_dispatch_total",
			Help:      "Email dispatch events by outcome.",
		}, []string{"outcome"}),
		httpDurations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFlow counts one attempt of an account flow.
func (m *Metrics) ObserveFlow(flow, outcome string) {
	m.flows.WithLabelValues(flow, outcome).Inc()
}

// ObserveEmail counts one email dispatch event.
// It matches the signature of email.WithOutcomeHook.
func (m *Metrics) ObserveEmail(outcome string) {
	m.emails.WithLabelValues(outcome).Inc()
}

// RegisterQueueDepth exposes a gauge read from depth on every scrape.
func (m *Metrics) RegisterQueueDepth(name string, depth func() int) error {
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "queue_depth",
		Help:        "Tasks waiting for a worker.",
		ConstLabels: prometheus.Labels{"queue": name},
	}, func() float64 {
		return float64(depth())
	}))
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request latency. The route label uses the chi route
// pattern so path parameters do not explode label cardinality.
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

		m.httpDurations.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
