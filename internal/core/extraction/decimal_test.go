package extraction

import "testing"

func TestFixDecimal(t *testing.T) {
	tests := []struct {
		name      string
		parameter string
		value     float64
		want      float64
	}{
		{"insulin OCR artifact divided", "Insulin", 1686, 16.86},
		{"insulin below window untouched", "Insulin", 95, 95},
		{"insulin at window boundary untouched", "Insulin", 100, 100},
		{"insulin above window untouched", "Insulin", 10000, 10000},
		{"c-peptide artifact divided", "C-Peptide", 245, 2.45},
		{"tsh artifact divided", "TSH", 245, 2.45},
		{"tsh below window untouched", "TSH", 50, 50},
		{"creatinine artifact divided", "Creatinine", 94, 0.94},
		{"creatinine plausible untouched", "Serum Creatinine", 14, 14},
		{"unlisted parameter untouched", "Glucose", 1686, 1686},
		{"fractional value short-circuits", "Insulin", 168.6, 168.6},
		{"zero untouched", "Insulin", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixDecimal(tt.parameter, tt.value); got != tt.want {
				t.Errorf("FixDecimal(%q, %v) = %v, want %v", tt.parameter, tt.value, got, tt.want)
			}
		})
	}
}

func TestFixDecimalIdempotent(t *testing.T) {
	once := FixDecimal("Insulin", 1686)
	twice := FixDecimal("Insulin", once)
	if once != twice {
		t.Errorf("second application changed the value: %v -> %v", once, twice)
	}
}
