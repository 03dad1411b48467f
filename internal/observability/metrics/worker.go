package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal        *prometheus.CounterVec
	processDuration     *prometheus.HistogramVec
	processInFlight     prometheus.Gauge
	queueLag            *prometheus.HistogramVec
	ocrConfidence       *prometheus.HistogramVec
	extractedParameters *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labscan",
			Subsystem: "worker",
			Name:      "report_process_total",
			Help:      "Total processed reports by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "labscan",
			Subsystem: "worker",
			Name:      "report_process_duration_seconds",
			Help:      "Report processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "labscan",
			Subsystem: "worker",
			Name:      "report_process_in_flight",
			Help:      "Number of in-flight report processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "labscan",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between report upload and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	ocrConfidence := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "labscan",
			Subsystem: "worker",
			Name:      "ocr_confidence",
			Help:      "Distribution of mean OCR confidence per processed report.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 100},
		},
		[]string{"service"},
	)
	extractedParameters := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "labscan",
			Subsystem: "worker",
			Name:      "extracted_parameters",
			Help:      "Distribution of matched lab parameters per processed report.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		processTotal,
		processDuration,
		processInFlight,
		queueLag,
		ocrConfidence,
		extractedParameters,
	)

	return &WorkerMetrics{
		registry:            registry,
		processTotal:        processTotal,
		processDuration:     processDuration,
		processInFlight:     processInFlight,
		queueLag:            queueLag,
		ocrConfidence:       ocrConfidence,
		extractedParameters: extractedParameters,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartReport() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishReport(service string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) ObserveReportOutcome(service string, confidence float64, parameterCount int) {
	m.ocrConfidence.WithLabelValues(service).Observe(confidence)
	m.extractedParameters.WithLabelValues(service).Observe(float64(parameterCount))
}
