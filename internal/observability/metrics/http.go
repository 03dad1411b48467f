package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	reportUploadsTotal  *prometheus.CounterVec
	uploadFilesPerBatch *prometheus.HistogramVec
	finalizationsTotal  *prometheus.CounterVec
	scoresComputedTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labscan",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "labscan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "labscan",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	reportUploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labscan",
			Subsystem: "reports",
			Name:      "uploads_total",
			Help:      "Total report upload requests by outcome.",
		},
		[]string{"service", "status"},
	)
	uploadFilesPerBatch := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "labscan",
			Subsystem: "reports",
			Name:      "upload_files_per_batch",
			Help:      "Distribution of files per upload request.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		},
		[]string{"service"},
	)
	finalizationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labscan",
			Subsystem: "reports",
			Name:      "finalizations_total",
			Help:      "Total human verification submissions by outcome.",
		},
		[]string{"service", "status"},
	)
	scoresComputedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labscan",
			Subsystem: "scoring",
			Name:      "scores_computed_total",
			Help:      "Total computed scores by kind and resulting risk level.",
		},
		[]string{"service", "score", "risk_level"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		reportUploadsTotal,
		uploadFilesPerBatch,
		finalizationsTotal,
		scoresComputedTotal,
	)

	return &HTTPServerMetrics{
		registry:            registry,
		requestTotal:        requestTotal,
		requestDuration:     requestDuration,
		requestInFlight:     requestInFlight,
		reportUploadsTotal:  reportUploadsTotal,
		uploadFilesPerBatch: uploadFilesPerBatch,
		finalizationsTotal:  finalizationsTotal,
		scoresComputedTotal: scoresComputedTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/v1/reports/") {
		return path
	}
	if strings.HasSuffix(path, "/finalize") {
		return "/v1/reports/{report_id}/finalize"
	}
	return "/v1/reports/{report_id}"
}

func (m *HTTPServerMetrics) RecordUpload(service string, fileCount int, err error) {
	m.reportUploadsTotal.WithLabelValues(service, outcome(err)).Inc()
	if err == nil && fileCount > 0 {
		m.uploadFilesPerBatch.WithLabelValues(service).Observe(float64(fileCount))
	}
}

func (m *HTTPServerMetrics) RecordFinalization(service string, err error) {
	m.finalizationsTotal.WithLabelValues(service, outcome(err)).Inc()
}

func (m *HTTPServerMetrics) RecordScore(service, score, riskLevel string) {
	if riskLevel == "" {
		riskLevel = "unknown"
	}
	m.scoresComputedTotal.WithLabelValues(service, score, riskLevel).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
