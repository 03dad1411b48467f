package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homahealth/labscan/internal/core/domain"
	"github.com/homahealth/labscan/internal/core/ports"
)

// UploadFile is one incoming multipart part: metadata plus the unread body.
type UploadFile struct {
	Filename string
	MimeType string
	Body     io.Reader
}

type IngestReportUseCase struct {
	repo    ports.ReportRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestReportUseCase(
	repo ports.ReportRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestReportUseCase {
	return &IngestReportUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

// Upload stores every file of one report, records the metadata row, and
// enqueues the report for processing. All files belong to one patient; the
// worker later merges their extractions in upload order.
func (uc *IngestReportUseCase) Upload(
	ctx context.Context,
	patientID, patientName, reportType string,
	files []UploadFile,
) (*domain.Report, error) {
	if len(files) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload report", fmt.Errorf("no files provided"))
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	sources := make([]domain.SourceFile, 0, len(files))
	for i, file := range files {
		storageKey := fmt.Sprintf("%s_%d_%s", id, i, sanitizeFilename(file.Filename))
		if err := uc.storage.Save(ctx, storageKey, file.Body); err != nil {
			return nil, fmt.Errorf("save file %q to object storage: %w", file.Filename, err)
		}
		sources = append(sources, domain.SourceFile{
			Filename:    file.Filename,
			MimeType:    file.MimeType,
			StoragePath: storageKey,
		})
	}

	report := &domain.Report{
		ID:          id,
		PatientID:   patientID,
		PatientName: patientName,
		ReportType:  reportType,
		Files:       sources,
		Status:      domain.ReportUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report metadata: %w", err)
	}

	if err := uc.queue.PublishReportIngested(ctx, report.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion event: %w", err)
	}

	return report, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	// filepath.Base maps "" to "." rather than the empty string.
	if base == "" || base == "." || base == ".." {
		return "report.bin"
	}
	return base
}
