package ports

import (
	"context"
	"io"

	"github.com/homahealth/labscan/internal/core/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, limit, offset int) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, errMessage string) error
	SaveResults(ctx context.Context, id string, status domain.ReportStatus, results *domain.ReportResults) error
	Delete(ctx context.Context, id string) error
}

type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type MessageQueue interface {
	PublishReportIngested(ctx context.Context, reportID string) error
	SubscribeReportIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextRecognizer turns one stored source file into text. Implementations
// dispatch on MIME type; Confidence is only meaningful for OCR-backed
// recognition and is 100 for formats read losslessly.
type TextRecognizer interface {
	Recognize(ctx context.Context, file domain.SourceFile, data io.Reader) (domain.RecognizedText, error)
}
