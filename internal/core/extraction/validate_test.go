package extraction

import (
	"math"
	"testing"
)

func TestValidateReport(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantValid bool
		wantFound int
	}{
		{
			name:      "real report header",
			text:      "City Diagnostics Laboratory\nPatient report\nBlood glucose test results",
			wantValid: true,
			wantFound: 9, // laboratory, lab, test, result, patient, glucose, blood, report, diagnostics
		},
		{
			name:      "single keyword is not enough",
			text:      "routine blood work",
			wantValid: false,
			wantFound: 1,
		},
		{
			name:      "unrelated text",
			text:      "quarterly revenue summary",
			wantValid: false,
			wantFound: 0,
		},
		{
			name:      "case insensitive",
			text:      "PATHOLOGY REPORT",
			wantValid: true,
			wantFound: 2,
		},
		{
			name:      "empty text",
			text:      "",
			wantValid: false,
			wantFound: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateReport(tt.text)
			if got.IsValid != tt.wantValid {
				t.Errorf("isValid = %v, want %v", got.IsValid, tt.wantValid)
			}
			if len(got.FoundKeywords) != tt.wantFound {
				t.Errorf("found %d keywords %v, want %d", len(got.FoundKeywords), got.FoundKeywords, tt.wantFound)
			}
			wantConfidence := float64(tt.wantFound) / 13 * 100
			if math.Abs(got.Confidence-wantConfidence) > 1e-9 {
				t.Errorf("confidence = %v, want %v", got.Confidence, wantConfidence)
			}
		})
	}
}
