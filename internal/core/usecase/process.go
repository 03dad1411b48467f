package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/homahealth/labscan/internal/core/domain"
	"github.com/homahealth/labscan/internal/core/extraction"
	"github.com/homahealth/labscan/internal/core/ports"
	"github.com/homahealth/labscan/internal/core/scoring"
)

type ProcessReportUseCase struct {
	repo       ports.ReportRepository
	storage    ports.ObjectStorage
	recognizer ports.TextRecognizer
	extractor  *extraction.Extractor
}

func NewProcessReportUseCase(
	repo ports.ReportRepository,
	storage ports.ObjectStorage,
	recognizer ports.TextRecognizer,
	extractor *extraction.Extractor,
) *ProcessReportUseCase {
	return &ProcessReportUseCase{
		repo:       repo,
		storage:    storage,
		recognizer: recognizer,
		extractor:  extractor,
	}
}

// ProcessByID runs the full pipeline for one uploaded report: read every
// source file, validate that the text looks like a lab report, extract
// parameters, compute the derived indices and both scores, and persist the
// results. Any pipeline error marks the report failed with the cause.
func (uc *ProcessReportUseCase) ProcessByID(ctx context.Context, reportID string) error {
	if err := uc.markStatus(ctx, reportID, domain.ReportProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	results, err := uc.processPipeline(ctx, reportID)
	if err != nil {
		if failErr := uc.markFailed(ctx, reportID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveResults(ctx, reportID, domain.ReportProcessed, results); err != nil {
		return fmt.Errorf("save report results: %w", err)
	}

	return nil
}

func (uc *ProcessReportUseCase) processPipeline(ctx context.Context, reportID string) (*domain.ReportResults, error) {
	report, err := uc.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	texts, confidence, err := uc.recognizeFiles(ctx, report)
	if err != nil {
		return nil, err
	}

	validation := extraction.ValidateReport(strings.Join(texts, "\n"))
	if !validation.IsValid {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"validate report",
			fmt.Errorf("text does not look like a lab report (confidence %.1f%%)", validation.Confidence),
		)
	}

	extracted := uc.extractor.ExtractBatch(texts)
	metrics := scoring.CalculateAllHealthMetrics(extracted.LabValues, domain.PatientData{})

	results := &domain.ReportResults{
		Extraction:    &extracted,
		Validation:    &validation,
		OCRConfidence: confidence,
		HealthMetrics: &metrics,
	}

	// Scores are best-effort at this stage: a report with no scorable
	// values still persists its extraction for human verification.
	if homaIQ, err := scoring.CalculateHomaIQScore(extracted.LabValues); err == nil {
		results.HomaIQ = homaIQ
	} else if !errors.Is(err, domain.ErrNoLabValues) {
		return nil, fmt.Errorf("compute composite score: %w", err)
	}
	results.MetabolicRisk = scoring.CalculateMetabolicRisk(extracted.LabValues, domain.PatientData{})

	return results, nil
}

func (uc *ProcessReportUseCase) loadReport(ctx context.Context, reportID string) (*domain.Report, error) {
	report, err := uc.repo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("fetch report by id: %w", err)
	}
	if len(report.Files) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "fetch report by id", errors.New("report has no source files"))
	}
	return report, nil
}

// recognizeFiles reads every source file in upload order. The reported
// confidence is the mean across files.
func (uc *ProcessReportUseCase) recognizeFiles(ctx context.Context, report *domain.Report) ([]string, float64, error) {
	texts := make([]string, 0, len(report.Files))
	var confidenceSum float64

	for _, file := range report.Files {
		text, confidence, err := uc.recognizeFile(ctx, file)
		if err != nil {
			return nil, 0, err
		}
		texts = append(texts, text)
		confidenceSum += confidence
	}

	return texts, confidenceSum / float64(len(texts)), nil
}

func (uc *ProcessReportUseCase) recognizeFile(ctx context.Context, file domain.SourceFile) (string, float64, error) {
	data, err := uc.storage.Open(ctx, file.StoragePath)
	if err != nil {
		return "", 0, fmt.Errorf("open stored file %q: %w", file.StoragePath, err)
	}
	defer data.Close()

	recognized, err := uc.recognizer.Recognize(ctx, file, data)
	if err != nil {
		return "", 0, fmt.Errorf("recognize text in %q: %w", file.Filename, err)
	}
	if strings.TrimSpace(recognized.Text) == "" {
		return "", 0, domain.WrapError(domain.ErrInvalidInput, "recognize text", fmt.Errorf("no text recovered from %q", file.Filename))
	}
	return recognized.Text, recognized.Confidence, nil
}

func (uc *ProcessReportUseCase) markStatus(ctx context.Context, reportID string, status domain.ReportStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, reportID, status, errMessage)
}

func (uc *ProcessReportUseCase) markFailed(ctx context.Context, reportID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, reportID, domain.ReportFailed, processErr.Error())
}
