package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the scheduling engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	generationRuns      *prometheus.CounterVec
	assignedBlocks      prometheus.Counter
	unresolvedConflicts prometheus.Counter
	generationDuration  prometheus.Histogram
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_generation_runs_total",
		Help: "Total automatic generation runs by outcome",
	}, []string{"outcome"})

	assignedBlocks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_assigned_blocks_total",
		Help: "Total blocks placed by automatic generation",
	})

	unresolvedConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_unresolved_conflicts_total",
		Help: "Total block units automatic generation could not place",
	})

	generationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_generation_duration_seconds",
		Help:    "Wall time of one generation run",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationRuns, assignedBlocks, unresolvedConflicts, generationDuration, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		generationRuns:      generationRuns,
		assignedBlocks:      assignedBlocks,
		unresolvedConflicts: unresolvedConflicts,
		generationDuration:  generationDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveGeneration records the outcome of one automatic generation run.
func (m *MetricsService) ObserveGeneration(assigned, conflicts int, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "complete"
	if conflicts > 0 {
		outcome = "partial"
	}
	m.generationRuns.WithLabelValues(outcome).Inc()
	m.assignedBlocks.Add(float64(assigned))
	m.unresolvedConflicts.Add(float64(conflicts))
	m.generationDuration.Observe(duration.Seconds())
}
