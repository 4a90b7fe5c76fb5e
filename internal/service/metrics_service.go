package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the import
// pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	extractionDuration prometheus.Observer
	documentsParsed    prometheus.Counter
	eventsExtracted    prometheus.Counter
	insertTotal        *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
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

	extractionDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_extraction_duration_seconds",
		Help:    "Duration of generative extraction calls",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
	})

	documentsParsed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_documents_parsed_total",
		Help: "Total schedule documents successfully parsed",
	})

	eventsExtracted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_events_extracted_total",
		Help: "Total event records extracted from documents",
	})

	insertTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_event_inserts_total",
		Help: "Calendar insert attempts by mode and outcome",
	}, []string{"mode", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, extractionDuration, documentsParsed, eventsExtracted, insertTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:           registry,
		handler:            handler,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		extractionDuration: extractionDuration,
		documentsParsed:    documentsParsed,
		eventsExtracted:    eventsExtracted,
		insertTotal:        insertTotal,
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

// ObserveExtraction records one successful document extraction.
func (m *MetricsService) ObserveExtraction(duration time.Duration, eventCount int) {
	if m == nil {
		return
	}
	m.extractionDuration.Observe(duration.Seconds())
	m.documentsParsed.Inc()
	m.eventsExtracted.Add(float64(eventCount))
}

// ObserveInsert records one calendar insert attempt.
func (m *MetricsService) ObserveInsert(mode string, success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.insertTotal.WithLabelValues(mode, outcome).Inc()
}
