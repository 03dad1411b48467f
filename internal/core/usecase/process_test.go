package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/homahealth/labscan/internal/core/domain"
	"github.com/homahealth/labscan/internal/core/extraction"
)

type statusCall struct {
	status domain.ReportStatus
	errMsg string
}

type reportRepoFake struct {
	report       *domain.Report
	reports      []domain.Report
	getErr       error
	createErr    error
	saveErr      error
	statusErr    error
	listErr      error
	deleteErr    error
	created      *domain.Report
	statusCalls  []statusCall
	savedID      string
	savedStatus  domain.ReportStatus
	savedResults *domain.ReportResults
	deletedID    string
}

func (f *reportRepoFake) Create(_ context.Context, report *domain.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = report
	return nil
}

func (f *reportRepoFake) GetByID(context.Context, string) (*domain.Report, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyReport := *f.report
	return &copyReport, nil
}

func (f *reportRepoFake) List(context.Context, int, int) ([]domain.Report, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.reports, nil
}

func (f *reportRepoFake) UpdateStatus(_ context.Context, _ string, status domain.ReportStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if f.statusErr != nil {
		return f.statusErr
	}
	return nil
}

func (f *reportRepoFake) SaveResults(_ context.Context, id string, status domain.ReportStatus, results *domain.ReportResults) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedID = id
	f.savedStatus = status
	f.savedResults = results
	return nil
}

func (f *reportRepoFake) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type storageFake struct {
	saved   map[string][]byte
	files   map[string]string
	saveErr error
	openErr error
	deleted []string
}

func newStorageFake() *storageFake {
	return &storageFake{saved: map[string][]byte{}, files: map[string]string{}}
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.saved[key] = content
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	if content, ok := f.files[key]; ok {
		return io.NopCloser(strings.NewReader(content)), nil
	}
	if content, ok := f.saved[key]; ok {
		return io.NopCloser(bytes.NewReader(content)), nil
	}
	return nil, errors.New("no such key")
}

func (f *storageFake) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type queueFake struct {
	published  []string
	publishErr error
}

func (f *queueFake) PublishReportIngested(_ context.Context, reportID string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, reportID)
	return nil
}

func (f *queueFake) SubscribeReportIngested(context.Context, func(context.Context, string) error) error {
	return nil
}

// recognizerFake returns the stored file content as recognized text.
type recognizerFake struct {
	confidence float64
	err        error
}

func (f *recognizerFake) Recognize(_ context.Context, _ domain.SourceFile, data io.Reader) (domain.RecognizedText, error) {
	if f.err != nil {
		return domain.RecognizedText{}, f.err
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return domain.RecognizedText{}, err
	}
	return domain.RecognizedText{Text: string(content), Confidence: f.confidence}, nil
}

func newProcessUseCase(t *testing.T, repo *reportRepoFake, storage *storageFake, recognizer *recognizerFake) *ProcessReportUseCase {
	t.Helper()
	catalog, err := extraction.NewDefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return NewProcessReportUseCase(repo, storage, recognizer, extraction.NewExtractor(catalog))
}

func TestProcessReportHappyPath(t *testing.T) {
	storage := newStorageFake()
	storage.files["r1_0_report.txt"] = `City Diagnostics Laboratory
Patient Name: Ramesh Kumar
Fasting Blood Sugar: 112 mg/dL
Fasting Insulin: 1686 uU/mL
Triglycerides: 182 mg/dL`

	repo := &reportRepoFake{report: &domain.Report{
		ID:     "r1",
		Files:  []domain.SourceFile{{Filename: "report.txt", MimeType: "text/plain", StoragePath: "r1_0_report.txt"}},
		Status: domain.ReportUploaded,
	}}

	uc := newProcessUseCase(t, repo, storage, &recognizerFake{confidence: 92})
	if err := uc.ProcessByID(context.Background(), "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.statusCalls) != 1 || repo.statusCalls[0].status != domain.ReportProcessing {
		t.Fatalf("status calls = %+v, want single processing transition", repo.statusCalls)
	}
	if repo.savedStatus != domain.ReportProcessed {
		t.Errorf("saved status = %q, want processed", repo.savedStatus)
	}

	results := repo.savedResults
	if results == nil {
		t.Fatal("no results saved")
	}
	if results.OCRConfidence != 92 {
		t.Errorf("ocr confidence = %v, want 92", results.OCRConfidence)
	}
	if got := results.Extraction.LabValues["glucose"]; got != 112 {
		t.Errorf("glucose = %v, want 112", got)
	}
	if got := results.Extraction.LabValues["insulin"]; got != 16.86 {
		t.Errorf("insulin = %v, want 16.86 after decimal fix", got)
	}
	if results.HealthMetrics == nil || results.HealthMetrics.HomaIR == nil {
		t.Fatal("expected HOMA-IR metric")
	}
	if results.HomaIQ == nil {
		t.Fatal("expected composite score")
	}
	if results.MetabolicRisk == nil {
		t.Fatal("expected metabolic risk score")
	}
	if results.Validation == nil || !results.Validation.IsValid {
		t.Errorf("validation = %+v, want valid", results.Validation)
	}
}

func TestProcessReportBatchMergesFirstWins(t *testing.T) {
	storage := newStorageFake()
	storage.files["r2_0_a.txt"] = "Laboratory report for patient\nFasting Blood Sugar: 110 mg/dL"
	storage.files["r2_1_b.txt"] = "Laboratory report for patient\nFasting Blood Sugar: 95 mg/dL\nHbA1c: 5.9 %"

	repo := &reportRepoFake{report: &domain.Report{
		ID: "r2",
		Files: []domain.SourceFile{
			{Filename: "a.txt", MimeType: "text/plain", StoragePath: "r2_0_a.txt"},
			{Filename: "b.txt", MimeType: "text/plain", StoragePath: "r2_1_b.txt"},
		},
	}}

	uc := newProcessUseCase(t, repo, storage, &recognizerFake{confidence: 80})
	if err := uc.ProcessByID(context.Background(), "r2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := repo.savedResults.Extraction.LabValues
	if values["glucose"] != 110 {
		t.Errorf("glucose = %v, want 110 from the first file", values["glucose"])
	}
	if values["hba1c"] != 5.9 {
		t.Errorf("hba1c = %v, want 5.9", values["hba1c"])
	}
}

func TestProcessReportInvalidTextFails(t *testing.T) {
	storage := newStorageFake()
	storage.files["r3_0_memo.txt"] = "quarterly revenue summary"

	repo := &reportRepoFake{report: &domain.Report{
		ID:    "r3",
		Files: []domain.SourceFile{{Filename: "memo.txt", MimeType: "text/plain", StoragePath: "r3_0_memo.txt"}},
	}}

	uc := newProcessUseCase(t, repo, storage, &recognizerFake{confidence: 95})
	err := uc.ProcessByID(context.Background(), "r3")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	last := repo.statusCalls[len(repo.statusCalls)-1]
	if last.status != domain.ReportFailed {
		t.Errorf("final status = %q, want failed", last.status)
	}
	if last.errMsg == "" {
		t.Error("failed status carries no error message")
	}
}

func TestProcessReportRecognizerError(t *testing.T) {
	storage := newStorageFake()
	storage.files["r4_0_scan.png"] = "binary"

	repo := &reportRepoFake{report: &domain.Report{
		ID:    "r4",
		Files: []domain.SourceFile{{Filename: "scan.png", MimeType: "image/png", StoragePath: "r4_0_scan.png"}},
	}}

	recognizeErr := errors.New("ocr backend unavailable")
	uc := newProcessUseCase(t, repo, storage, &recognizerFake{err: recognizeErr})
	err := uc.ProcessByID(context.Background(), "r4")
	if !errors.Is(err, recognizeErr) {
		t.Fatalf("err = %v, want recognizer error", err)
	}

	last := repo.statusCalls[len(repo.statusCalls)-1]
	if last.status != domain.ReportFailed {
		t.Errorf("final status = %q, want failed", last.status)
	}
}

func TestProcessReportNoScorableValuesStillPersists(t *testing.T) {
	// A valid report whose parameters are all outside the scoring set keeps
	// its extraction and skips the composite score.
	storage := newStorageFake()
	storage.files["r5_0_cbc.txt"] = "Pathology laboratory report\nHemoglobin: 13.4 g/dL"

	repo := &reportRepoFake{report: &domain.Report{
		ID:    "r5",
		Files: []domain.SourceFile{{Filename: "cbc.txt", MimeType: "text/plain", StoragePath: "r5_0_cbc.txt"}},
	}}

	uc := newProcessUseCase(t, repo, storage, &recognizerFake{confidence: 88})
	if err := uc.ProcessByID(context.Background(), "r5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.savedResults.HomaIQ != nil {
		t.Errorf("composite score = %+v, want nil without scorable values", repo.savedResults.HomaIQ)
	}
	if repo.savedResults.MetabolicRisk == nil {
		t.Error("expected metabolic risk score even with zero points")
	}
	if got := repo.savedResults.Extraction.LabValues["hemoglobin"]; got != 13.4 {
		t.Errorf("hemoglobin = %v, want 13.4", got)
	}
}

func TestProcessReportGetError(t *testing.T) {
	repo := &reportRepoFake{getErr: errors.New("db down")}
	uc := newProcessUseCase(t, repo, newStorageFake(), &recognizerFake{})

	if err := uc.ProcessByID(context.Background(), "r6"); err == nil {
		t.Fatal("expected error")
	}
	last := repo.statusCalls[len(repo.statusCalls)-1]
	if last.status != domain.ReportFailed {
		t.Errorf("final status = %q, want failed", last.status)
	}
}
