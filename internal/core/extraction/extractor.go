package extraction

import (
	"strconv"

	"github.com/homahealth/labscan/internal/core/domain"
)

// Extractor turns raw OCR text into normalized clinical parameters using the
// parameter catalog. It is pure and safe for concurrent use.
type Extractor struct {
	catalog *Catalog
}

func NewExtractor(catalog *Catalog) *Extractor {
	return &Extractor{catalog: catalog}
}

// ExtractLabData scans one document's text and returns the structured
// extraction: matched test results, the normalized value map, and
// best-effort patient/report metadata.
func (e *Extractor) ExtractLabData(text string) domain.ExtractionResult {
	testResults, labValues := e.extractTestResults(text)
	return domain.ExtractionResult{
		PatientInfo:    extractPatientInfo(text),
		TestResults:    testResults,
		LabValues:      labValues,
		ReportDate:     extractReportDate(text),
		LaboratoryName: extractLaboratoryName(text),
	}
}

// ExtractBatch folds a batch of documents, in upload order, into one merged
// result. Within a document the last match per parameter wins; across
// documents the first document's value for a key wins. The two rules are
// intentionally asymmetric.
func (e *Extractor) ExtractBatch(texts []string) domain.ExtractionResult {
	merged := domain.ExtractionResult{LabValues: domain.LabValues{}}

	for _, text := range texts {
		result := e.ExtractLabData(text)
		merged.TestResults = append(merged.TestResults, result.TestResults...)
		for key, value := range result.LabValues {
			merged.LabValues.SetIfAbsent(key, value)
		}

		if merged.PatientInfo == (domain.PatientInfo{}) {
			merged.PatientInfo = result.PatientInfo
		}
		if merged.ReportDate == "" {
			merged.ReportDate = result.ReportDate
		}
		if merged.LaboratoryName == "" {
			merged.LaboratoryName = result.LaboratoryName
		}
	}
	return merged
}

func (e *Extractor) extractTestResults(text string) ([]domain.TestResult, domain.LabValues) {
	testResults := make([]domain.TestResult, 0, len(e.catalog.entries))
	labValues := domain.LabValues{}

	for i, entry := range e.catalog.entries {
		matches := e.catalog.patterns[i].FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}

		// Reference ranges are typically printed before the actual
		// reading in scanned formats, so the last occurrence is the
		// result.
		last := matches[len(matches)-1]
		rawValue, err := strconv.ParseFloat(last[1], 64)
		if err != nil {
			continue
		}

		value := FixDecimal(entry.Name, rawValue)
		if value <= 0 {
			continue
		}

		testResults = append(testResults, domain.TestResult{
			TestName: entry.Name,
			Key:      entry.Key,
			Value:    value,
			RawText:  last[0],
		})
		labValues.SetIfAbsent(entry.Key, value)
	}

	return testResults, labValues
}
