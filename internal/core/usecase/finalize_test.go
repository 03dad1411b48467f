package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/homahealth/labscan/internal/core/domain"
)

func TestFinalizeRecomputesFromVerifiedValues(t *testing.T) {
	repo := &reportRepoFake{report: &domain.Report{
		ID:     "r1",
		Status: domain.ReportProcessed,
		Results: &domain.ReportResults{
			Extraction: &domain.ExtractionResult{
				LabValues: domain.LabValues{"glucose": 250}, // mis-read by OCR
			},
		},
	}}
	uc := NewFinalizeReportUseCase(repo)

	verified := domain.LabValues{"glucose": 95, "insulin": 8, "triglycerides": 120}
	patient := domain.PatientData{Waist: 92, Weight: 70, Height: 175}

	report, err := uc.Finalize(context.Background(), "r1", verified, patient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Status != domain.ReportVerified {
		t.Errorf("status = %q, want verified", report.Status)
	}
	if repo.savedStatus != domain.ReportVerified {
		t.Errorf("persisted status = %q, want verified", repo.savedStatus)
	}

	results := repo.savedResults
	if !results.HumanVerified || results.VerifiedAt == nil {
		t.Error("verified flags not set")
	}
	if got := results.Extraction.LabValues["glucose"]; got != 95 {
		t.Errorf("glucose = %v, want the verified 95", got)
	}
	if results.HomaIQ == nil || results.HomaIQ.Score != 100 {
		t.Errorf("composite score = %+v, want 100", results.HomaIQ)
	}
	if results.MetabolicRisk == nil {
		t.Fatal("expected metabolic risk score")
	}
	// Waist 92 awards 15; TYG ln(120*95/2)=8.65 awards another 15.
	if results.MetabolicRisk.Score != 30 {
		t.Errorf("metabolic score = %d, want 30", results.MetabolicRisk.Score)
	}
	if results.HealthMetrics == nil || results.HealthMetrics.BMI == nil {
		t.Error("expected BMI from verified anthropometrics")
	}
	if results.PatientData == nil || results.PatientData.Waist != 92 {
		t.Errorf("patient data = %+v", results.PatientData)
	}
}

func TestFinalizeWithoutPriorResults(t *testing.T) {
	repo := &reportRepoFake{report: &domain.Report{ID: "r2", Status: domain.ReportFailed}}
	uc := NewFinalizeReportUseCase(repo)

	_, err := uc.Finalize(context.Background(), "r2", domain.LabValues{"glucose": 110}, domain.PatientData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.savedResults.Extraction == nil {
		t.Fatal("extraction container not initialized")
	}
	if got := repo.savedResults.Extraction.LabValues["glucose"]; got != 110 {
		t.Errorf("glucose = %v, want 110", got)
	}
}

func TestFinalizeNoScorableValues(t *testing.T) {
	repo := &reportRepoFake{report: &domain.Report{ID: "r3"}}
	uc := NewFinalizeReportUseCase(repo)

	_, err := uc.Finalize(context.Background(), "r3", domain.LabValues{}, domain.PatientData{})
	if !errors.Is(err, domain.ErrNoLabValues) {
		t.Errorf("err = %v, want ErrNoLabValues", err)
	}
	if repo.savedResults != nil {
		t.Error("results persisted despite scoring failure")
	}
}

func TestManageDelete(t *testing.T) {
	repo := &reportRepoFake{report: &domain.Report{
		ID: "r4",
		Files: []domain.SourceFile{
			{StoragePath: "r4_0_a.txt"},
			{StoragePath: "r4_1_b.txt"},
		},
	}}
	storage := newStorageFake()
	uc := NewManageReportsUseCase(repo, storage)

	if err := uc.Delete(context.Background(), "r4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedID != "r4" {
		t.Errorf("deleted id = %q", repo.deletedID)
	}
	if len(storage.deleted) != 2 {
		t.Errorf("deleted files = %v, want both", storage.deleted)
	}
}

func TestManageListClampsLimit(t *testing.T) {
	repo := &reportRepoFake{reports: []domain.Report{{ID: "a"}}}
	uc := NewManageReportsUseCase(repo, newStorageFake())

	reports, err := uc.List(context.Background(), -5, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("reports = %d, want 1", len(reports))
	}
}
