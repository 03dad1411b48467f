package scoring

import (
	"math"
	"testing"

	"github.com/homahealth/labscan/internal/core/domain"
)

func TestCalculateHomaIRBands(t *testing.T) {
	tests := []struct {
		name       string
		glucose    float64
		insulin    float64
		wantValue  float64
		wantZone   domain.ColorZone
		wantStatus string
		wantRisk   domain.RiskLevel
	}{
		{
			// 90 * 9 / 405 = 2.0 exactly, lower bound of the orange band
			name:       "exactly two is moderate",
			glucose:    90,
			insulin:    9,
			wantValue:  2.0,
			wantZone:   domain.ZoneOrange,
			wantStatus: "Moderate Risk",
			wantRisk:   domain.RiskModerate,
		},
		{
			name:       "just below two stays green",
			glucose:    89.9,
			insulin:    9,
			wantValue:  2.0, // rounds up for display, band uses raw value
			wantZone:   domain.ZoneGreen,
			wantStatus: "Excellent",
			wantRisk:   domain.RiskLow,
		},
		{
			name:       "severe band saturates",
			glucose:    300,
			insulin:    30,
			wantValue:  22.22,
			wantZone:   domain.ZoneDarkRed,
			wantStatus: "Severe Risk",
			wantRisk:   domain.RiskVeryHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHomaIR(tt.glucose, tt.insulin)
			if got == nil {
				t.Fatal("expected a result, got nil")
			}
			if got.Value != tt.wantValue {
				t.Errorf("value = %v, want %v", got.Value, tt.wantValue)
			}
			if got.ColorZone != tt.wantZone {
				t.Errorf("zone = %q, want %q", got.ColorZone, tt.wantZone)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.RiskLevel != tt.wantRisk {
				t.Errorf("risk = %q, want %q", got.RiskLevel, tt.wantRisk)
			}
		})
	}
}

func TestCalculateHomaIRMissingInputs(t *testing.T) {
	if got := CalculateHomaIR(0, 10); got != nil {
		t.Errorf("expected nil without glucose, got %+v", got)
	}
	if got := CalculateHomaIR(90, 0); got != nil {
		t.Errorf("expected nil without insulin, got %+v", got)
	}
}

func TestCalculateHomaIRNormalizedSaturation(t *testing.T) {
	got := CalculateHomaIR(405, 30) // HOMA-IR = 30
	if got.NormalizedValue != 100 {
		t.Errorf("normalized = %v, want 100", got.NormalizedValue)
	}
}

func TestCalculateTygIndexBands(t *testing.T) {
	// trigs 150 * glucose 100 / 2 = 7500, ln = 8.9227
	got := CalculateTygIndex(150, 100)
	if got == nil {
		t.Fatal("expected a result, got nil")
	}
	if got.Value != 8.92 {
		t.Errorf("value = %v, want 8.92", got.Value)
	}
	if got.ColorZone != domain.ZoneYellowRed {
		t.Errorf("zone = %q, want yellowred", got.ColorZone)
	}
	if got.Status != "Borderline High" {
		t.Errorf("status = %q", got.Status)
	}

	raw := math.Log(150 * 100 / 2)
	wantNorm := 40 + (raw-8)/2*20
	if math.Abs(got.NormalizedValue-wantNorm) > 1e-9 {
		t.Errorf("normalized = %v, want %v", got.NormalizedValue, wantNorm)
	}
}

func TestCalculateTygIndexHighBandSlope(t *testing.T) {
	// A value inside [10,15) interpolates over the 5-unit band width.
	tyg := 12.5
	trigs := 200.0
	glucose := 2 * math.Exp(tyg) / trigs

	got := CalculateTygIndex(trigs, glucose)
	if got == nil {
		t.Fatal("expected a result, got nil")
	}
	if got.ColorZone != domain.ZoneReddishYellow {
		t.Errorf("zone = %q, want reddishyellow", got.ColorZone)
	}
	wantNorm := 60 + (tyg-10)/5*30
	if math.Abs(got.NormalizedValue-wantNorm) > 1e-6 {
		t.Errorf("normalized = %v, want %v", got.NormalizedValue, wantNorm)
	}
}

func TestCalculateBMI(t *testing.T) {
	got := CalculateBMI(70, 184, HeightCentimeters)
	if got == nil {
		t.Fatal("expected a result, got nil")
	}
	if got.Value != 20.7 {
		t.Errorf("value = %v, want 20.7", got.Value)
	}
	if got.Status != "Healthy Weight" {
		t.Errorf("status = %q, want Healthy Weight", got.Status)
	}
	if got.ColorZone != domain.ZoneGreen {
		t.Errorf("zone = %q, want green", got.ColorZone)
	}
	if got.Unit != "kg/m²" {
		t.Errorf("unit = %q", got.Unit)
	}
}

func TestCalculateBMIHeightUnits(t *testing.T) {
	cm := CalculateBMI(70, 184, HeightCentimeters)
	m := CalculateBMI(70, 1.84, HeightMeters)
	if cm.Value != m.Value {
		t.Errorf("cm and meter readings disagree: %v vs %v", cm.Value, m.Value)
	}
}

func TestCalculateWaistBands(t *testing.T) {
	tests := []struct {
		waist      float64
		wantZone   domain.ColorZone
		wantStatus string
		wantNorm   float64
	}{
		{80, domain.ZoneGreen, "Good", 80.0 / 85 * 20},
		{87.5, domain.ZoneBlue, "Borderline", 25},
		{92.5, domain.ZoneYellowRed, "Moderate Risk", 35},
		{97.5, domain.ZoneOrangeRed, "Increased Risk", 47.5},
		{105, domain.ZoneReddishYellow, "High Risk", 65},
		{115, domain.ZoneRed, "Very High Risk", 82.5},
		{130, domain.ZoneDarkRed, "Extremely High Risk", 95},
		{200, domain.ZoneDarkRed, "Extremely High Risk", 100},
	}

	for _, tt := range tests {
		got := CalculateWaist(tt.waist)
		if got == nil {
			t.Fatalf("waist %v: expected a result, got nil", tt.waist)
		}
		if got.ColorZone != tt.wantZone {
			t.Errorf("waist %v: zone = %q, want %q", tt.waist, got.ColorZone, tt.wantZone)
		}
		if got.Status != tt.wantStatus {
			t.Errorf("waist %v: status = %q, want %q", tt.waist, got.Status, tt.wantStatus)
		}
		if math.Abs(got.NormalizedValue-tt.wantNorm) > 1e-9 {
			t.Errorf("waist %v: normalized = %v, want %v", tt.waist, got.NormalizedValue, tt.wantNorm)
		}
	}
}

func TestCalculateWaistInchesDisplay(t *testing.T) {
	got := CalculateWaist(100)
	if got.ValueInches != 39.4 {
		t.Errorf("inches = %v, want 39.4", got.ValueInches)
	}
	if got.Unit != "cm" {
		t.Errorf("unit = %q, want cm", got.Unit)
	}
}

func TestCalculateAllHealthMetrics(t *testing.T) {
	labValues := domain.LabValues{
		"glucose":       95,
		"insulin":       8,
		"triglycerides": 120,
	}
	patient := domain.PatientData{Weight: 70, Height: 175, Waist: 92}

	metrics := CalculateAllHealthMetrics(labValues, patient)
	if metrics.HomaIR == nil || metrics.TygIndex == nil || metrics.BMI == nil || metrics.WaistCircumference == nil {
		t.Fatalf("expected all four metrics, got %+v", metrics)
	}
	if metrics.HomaIR.Value != 1.88 {
		t.Errorf("HOMA-IR = %v, want 1.88", metrics.HomaIR.Value)
	}
}

func TestCalculateAllHealthMetricsFallsBackToLabValues(t *testing.T) {
	labValues := domain.LabValues{
		"weight": 80,
		"height": 170,
		"waist":  95,
	}

	metrics := CalculateAllHealthMetrics(labValues, domain.PatientData{})
	if metrics.BMI == nil {
		t.Fatal("expected BMI from extracted anthropometrics")
	}
	if metrics.WaistCircumference == nil {
		t.Fatal("expected waist metric from extracted value")
	}
	if metrics.HomaIR != nil {
		t.Errorf("expected nil HOMA-IR without glucose and insulin, got %+v", metrics.HomaIR)
	}
}

func TestCalculateAllHealthMetricsPartialInputs(t *testing.T) {
	metrics := CalculateAllHealthMetrics(domain.LabValues{"glucose": 100}, domain.PatientData{})
	if metrics.HomaIR != nil || metrics.TygIndex != nil || metrics.BMI != nil || metrics.WaistCircumference != nil {
		t.Errorf("expected all nil metrics, got %+v", metrics)
	}
}
