package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/homahealth/labscan/internal/core/domain"
	"github.com/homahealth/labscan/internal/core/ports"
	"github.com/homahealth/labscan/internal/core/scoring"
)

type FinalizeReportUseCase struct {
	repo ports.ReportRepository
}

func NewFinalizeReportUseCase(repo ports.ReportRepository) *FinalizeReportUseCase {
	return &FinalizeReportUseCase{repo: repo}
}

// Finalize replaces the automatic extraction with human-verified values and
// recomputes every score from them. Verified values take the report to its
// terminal state; the automatic extraction stays on record next to them.
func (uc *FinalizeReportUseCase) Finalize(
	ctx context.Context,
	reportID string,
	labValues domain.LabValues,
	patientData domain.PatientData,
) (*domain.Report, error) {
	report, err := uc.repo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("fetch report by id: %w", err)
	}

	homaIQ, err := scoring.CalculateHomaIQScore(labValues)
	if err != nil {
		return nil, fmt.Errorf("compute composite score: %w", err)
	}

	metrics := scoring.CalculateAllHealthMetrics(labValues, patientData)
	metabolic := scoring.CalculateMetabolicRisk(labValues, patientData)
	now := time.Now().UTC()

	results := report.Results
	if results == nil {
		results = &domain.ReportResults{}
	}
	if results.Extraction == nil {
		results.Extraction = &domain.ExtractionResult{}
	}
	results.Extraction.LabValues = labValues
	results.PatientData = &patientData
	results.HomaIQ = homaIQ
	results.MetabolicRisk = metabolic
	results.HealthMetrics = &metrics
	results.HumanVerified = true
	results.VerifiedAt = &now

	if err := uc.repo.SaveResults(ctx, reportID, domain.ReportVerified, results); err != nil {
		return nil, fmt.Errorf("save verified results: %w", err)
	}

	report.Results = results
	report.Status = domain.ReportVerified
	report.UpdatedAt = now
	return report, nil
}
