package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/homahealth/labscan/internal/bootstrap"
	"github.com/homahealth/labscan/internal/config"
	"github.com/homahealth/labscan/internal/observability/logging"
	"github.com/homahealth/labscan/internal/observability/metrics"
)

const serviceName = "labscan-worker"

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeReportIngested(ctx, func(handlerCtx context.Context, reportID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		workerMetrics.StartReport()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, reportID)
		workerMetrics.FinishReport(serviceName, time.Since(start), processErr)

		if report, err := app.Repo.GetByID(processCtx, reportID); err == nil {
			workerMetrics.ObserveQueueLag(serviceName, start.Sub(report.CreatedAt))
			if report.Results != nil && report.Results.Extraction != nil {
				workerMetrics.ObserveReportOutcome(
					serviceName,
					report.Results.OCRConfidence,
					len(report.Results.Extraction.TestResults),
				)
			}
		}
		return processErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
