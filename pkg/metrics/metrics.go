package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/getmockd/bookstore/pkg/books"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "bookstore"

// RouteUnmatched is the route label for requests no endpoint handled.
const RouteUnmatched = "unmatched"

// Mutation result label values.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Metrics holds the service collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	booksGauge      prometheus.Gauge
	mutationsTotal  *prometheus.CounterVec
}

// New creates a Metrics with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Number of book API requests.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Book API request latency.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		booksGauge: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "books",
				Help:      "Number of books currently stored.",
			},
		),
		mutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "book_mutations_total",
				Help:      "Number of store mutations by operation and result.",
			},
			[]string{"op", "result"},
		),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished API request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = RouteUnmatched
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SetBooks sets the books gauge.
func (m *Metrics) SetBooks(n int) {
	m.booksGauge.Set(float64(n))
}

// OnMutation implements books.Observer.
func (m *Metrics) OnMutation(op string, id int, size int) {
	m.mutationsTotal.WithLabelValues(op, ResultOK).Inc()
	m.booksGauge.Set(float64(size))
}

// OnError implements books.Observer.
func (m *Metrics) OnError(op string, err error) {
	m.mutationsTotal.WithLabelValues(op, resultFor(err)).Inc()
}

func resultFor(err error) string {
	var nf *books.NotFoundError
	var ve *books.ValidationError
	switch {
	case errors.As(err, &nf):
		return ResultNotFound
	case errors.As(err, &ve):
		return ResultInvalid
	default:
		return ResultError
	}
}

var _ books.Observer = (*Metrics)(nil)
