package extraction

import (
	"strings"

	"github.com/homahealth/labscan/internal/core/domain"
)

// Fixed vocabulary used to decide whether a scanned text is a lab report.
var reportKeywords = []string{
	"laboratory", "lab", "test", "result", "patient",
	"hemoglobin", "glucose", "blood", "urine", "report",
	"pathology", "diagnostics", "clinical",
}

// ValidateReport checks the whole text for lab-report keywords. Two distinct
// keyword hits are enough to accept the document; the confidence is the
// matched fraction of the vocabulary.
func ValidateReport(text string) domain.ReportValidation {
	lower := strings.ToLower(text)

	found := make([]string, 0, len(reportKeywords))
	for _, keyword := range reportKeywords {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
		}
	}

	return domain.ReportValidation{
		IsValid:       len(found) >= 2,
		Confidence:    float64(len(found)) / float64(len(reportKeywords)) * 100,
		FoundKeywords: found,
	}
}
