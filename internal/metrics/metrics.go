// Package metrics exposes Prometheus collectors for the HTTP surface and the
// domain events reported by the auth, accounts, violations, and uniforms
// packages.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/unifix/internal/reports"
)

const namespace = "unifix"

// Metrics holds every collector on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authRejections  *prometheus.CounterVec
	logins          *prometheus.CounterVec
	violations      *prometheus.CounterVec
	reports         *prometheus.CounterVec
	uniforms        prometheus.Counter
}

// New creates a Metrics instance with Go runtime and process collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern, and status code",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		authRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_rejections_total",
			Help:      "Requests refused by the access gate",
		}, []string{"reason"}),
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result",
		}, []string{"result"}),
		violations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "violations_total",
			Help:      "Violation store mutations by operation",
		}, []string{"operation"}),
		reports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_rendered_total",
			Help:      "PDF reports rendered by image block outcome",
		}, []string{"image"}),
		uniforms: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uniform_images_uploaded_total",
			Help:      "Uniform images stored",
		}),
	}
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency. It must wrap a ServeMux
// so the matched route pattern is available after dispatch.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) AuthRejected(reason string) {
	m.authRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) LoginAttempted(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) ViolationCreated() {
	m.violations.WithLabelValues("create").Inc()
}

func (m *Metrics) ViolationDeleted() {
	m.violations.WithLabelValues("delete").Inc()
}

func (m *Metrics) ReportRendered(image reports.ImageStatus) {
	m.reports.WithLabelValues(string(image)).Inc()
}

func (m *Metrics) UniformsUploaded(count int) {
	m.uniforms.Add(float64(count))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
