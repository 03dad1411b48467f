package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/homahealth/labscan/internal/config"
	"github.com/homahealth/labscan/internal/core/extraction"
	"github.com/homahealth/labscan/internal/core/ports"
	"github.com/homahealth/labscan/internal/core/usecase"
	"github.com/homahealth/labscan/internal/infrastructure/queue/nats"
	"github.com/homahealth/labscan/internal/infrastructure/recognize"
	"github.com/homahealth/labscan/internal/infrastructure/recognize/pdftext"
	"github.com/homahealth/labscan/internal/infrastructure/recognize/plaintext"
	"github.com/homahealth/labscan/internal/infrastructure/recognize/tesseract"
	"github.com/homahealth/labscan/internal/infrastructure/repository/postgres"
	"github.com/homahealth/labscan/internal/infrastructure/resilience"
	"github.com/homahealth/labscan/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue      ports.MessageQueue
	Repo       ports.ReportRepository
	Extractor  *extraction.Extractor
	IngestUC   *usecase.IngestReportUseCase
	ProcessUC  *usecase.ProcessReportUseCase
	FinalizeUC *usecase.FinalizeReportUseCase
	ManageUC   *usecase.ManageReportsUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewReportRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		RetryInitialBackoff: time.Duration(cfg.RetryInitialBackoffMillis) * time.Millisecond,
		RetryMaxBackoff:     time.Duration(cfg.RetryMaxBackoffMillis) * time.Millisecond,
		BreakerEnabled:      cfg.BreakerEnabled,
	})

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load parameter catalog: %w", err)
	}
	extractor := extraction.NewExtractor(catalog)

	ocrClient := tesseract.New(cfg.TesseractURL, cfg.TesseractLanguages, tesseract.Options{
		RequestsPerSecond:  cfg.OCRRequestsPerSec,
		Burst:              cfg.OCRBurst,
		Timeout:            time.Duration(cfg.OCRTimeoutSeconds) * time.Second,
		ResilienceExecutor: executor,
	})
	recognizer := recognize.NewDispatcher(pdftext.New(), ocrClient, plaintext.New())

	ingestUC := usecase.NewIngestReportUseCase(repo, storage, queue)
	processUC := usecase.NewProcessReportUseCase(repo, storage, recognizer, extractor)
	finalizeUC := usecase.NewFinalizeReportUseCase(repo)
	manageUC := usecase.NewManageReportsUseCase(repo, storage)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		Extractor:  extractor,
		IngestUC:   ingestUC,
		ProcessUC:  processUC,
		FinalizeUC: finalizeUC,
		ManageUC:   manageUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func loadCatalog(path string) (*extraction.Catalog, error) {
	if path == "" {
		return extraction.NewDefaultCatalog()
	}
	return extraction.LoadCatalog(path)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
