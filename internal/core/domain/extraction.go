package domain

// PatientInfo is best-effort demographic data read from the report header.
// Absent fields stay zero-valued; extraction never fails on them.
type PatientInfo struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// TestResult is one matched clinical parameter: the catalogue display name,
// canonical key, corrected numeric value, and the raw text that matched.
type TestResult struct {
	TestName string  `json:"testName"`
	Key      string  `json:"key"`
	Value    float64 `json:"value"`
	RawText  string  `json:"rawText"`
}

// ExtractionResult is the structured output of scanning one document's
// OCR text (or the merged output of a batch).
type ExtractionResult struct {
	PatientInfo    PatientInfo  `json:"patientInfo"`
	TestResults    []TestResult `json:"testResults"`
	LabValues      LabValues    `json:"labValues"`
	ReportDate     string       `json:"reportDate,omitempty"`
	LaboratoryName string       `json:"laboratoryName,omitempty"`
}

// RecognizedText is the output of reading one source file: the recovered
// text plus the recognizer's 0-100 confidence in it.
type RecognizedText struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ReportValidation says whether a scanned text looks like a lab report at
// all, based on a fixed keyword vocabulary.
type ReportValidation struct {
	IsValid       bool     `json:"isValid"`
	Confidence    float64  `json:"confidence"`
	FoundKeywords []string `json:"foundKeywords"`
}
