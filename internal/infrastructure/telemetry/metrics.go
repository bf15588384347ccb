package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Outcome labels for request metrics.
const (
	OutcomeSuccess    = "success"
	OutcomeResponse   = "response_error"
	OutcomeNoResponse = "no_response"
	OutcomeSetup      = "setup_error"
)

// Metrics records client-side request and dispatch metrics in its own registry.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	dispatchesTotal *prometheus.CounterVec
	inFlight        *prometheus.GaugeVec

	mu     sync.Mutex
	server *http.Server
	logger *zap.Logger
}

// NewMetrics creates the collectors under the given namespace ("cartlink" when empty).
func NewMetrics(namespace string, logger *zap.Logger) *Metrics {
	if namespace == "" {
		namespace = "cartlink"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logger:   logger,
	}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Backend requests sent by the client.",
		},
		[]string{"method", "route", "status", "outcome"},
	)
	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of backend requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.dispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slice_dispatches_total",
			Help:      "Slice operations dispatched, by resolution.",
		},
		[]string{"slice", "action", "result"},
	)
	m.inFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slice_in_flight",
			Help:      "Slice operations dispatched and not yet resolved.",
		},
		[]string{"slice"},
	)

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.dispatchesTotal,
		m.inFlight,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one finished backend call.
func (m *Metrics) ObserveRequest(method, route string, status int, outcome string, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status), outcome).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// DispatchStarted marks a slice operation as in flight.
func (m *Metrics) DispatchStarted(slice string) {
	m.inFlight.WithLabelValues(slice).Inc()
}

// DispatchFinished records how a slice operation resolved: fulfilled, rejected, or stale.
func (m *Metrics) DispatchFinished(slice, action, result string) {
	m.inFlight.WithLabelValues(slice).Dec()
	m.dispatchesTotal.WithLabelValues(slice, action, result).Inc()
}

// Handler returns the promhttp handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve starts the metrics endpoint on addr in the background and returns the bound address.
func (m *Metrics) Serve(addr, path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.server != nil {
		return "", errors.New("metrics endpoint already running")
	}
	if path == "" {
		path = "/metrics"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listening on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())
	m.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Warn("metrics endpoint stopped", zap.Error(err))
		}
	}(m.server)

	return ln.Addr().String(), nil
}

// Stop shuts the metrics endpoint down if it is running.
func (m *Metrics) Stop(ctx context.Context) error {
	m.mu.Lock()
	srv := m.server
	m.server = nil
	m.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
