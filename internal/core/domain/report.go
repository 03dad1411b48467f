package domain

import "time"

type ReportStatus string

const (
	ReportUploaded   ReportStatus = "uploaded"
	ReportProcessing ReportStatus = "processing"
	ReportProcessed  ReportStatus = "processed"
	ReportVerified   ReportStatus = "verified"
	ReportFailed     ReportStatus = "failed"
)

// SourceFile is one uploaded document belonging to a report. A report
// uploaded in batch mode carries several files attributed to one patient.
type SourceFile struct {
	Filename    string `json:"filename"`
	MimeType    string `json:"mime_type"`
	StoragePath string `json:"storage_path"`
}

type Report struct {
	ID          string         `json:"id"`
	PatientID   string         `json:"patient_id,omitempty"`
	PatientName string         `json:"patient_name,omitempty"`
	ReportType  string         `json:"report_type,omitempty"`
	Files       []SourceFile   `json:"files"`
	OCRText     string         `json:"ocr_text,omitempty"`
	Results     *ReportResults `json:"results,omitempty"`
	Status      ReportStatus   `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ReportResults is the computed payload stored alongside a report after
// processing or finalization. Field names are part of the stored/wire
// contract; dashboard code keys off them structurally.
type ReportResults struct {
	Extraction    *ExtractionResult    `json:"extraction,omitempty"`
	Validation    *ReportValidation    `json:"validation,omitempty"`
	OCRConfidence float64              `json:"ocrConfidence,omitempty"`
	HomaIQ        *HomaIQResult        `json:"homaIqScore,omitempty"`
	MetabolicRisk *MetabolicRiskResult `json:"metabolicRiskScore,omitempty"`
	HealthMetrics *HealthMetrics       `json:"healthMetrics,omitempty"`
	PatientData   *PatientData         `json:"patientData,omitempty"`
	HumanVerified bool                 `json:"humanVerified,omitempty"`
	VerifiedAt    *time.Time           `json:"verifiedAt,omitempty"`
}
