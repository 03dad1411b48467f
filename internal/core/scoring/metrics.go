package scoring

import (
	"math"

	"github.com/homahealth/labscan/internal/core/domain"
)

// The classifiers below evaluate threshold bands high-to-low; every band is
// inclusive on its lower bound, and the normalized gauge position is
// interpolated linearly inside the band. The boundary constants are the
// contract: a score must not drift between deployments.

// CalculateHomaIR derives HOMA-IR from glucose and insulin and classifies it.
// Returns nil when either input is absent.
func CalculateHomaIR(glucose, insulin float64) *domain.MetricResult {
	value, ok := HomaIR(glucose, insulin)
	if !ok {
		return nil
	}

	var (
		zone       domain.ColorZone
		status     string
		risk       domain.RiskLevel
		normalized float64
	)

	switch {
	case value >= 20:
		zone, status, risk = domain.ZoneDarkRed, "Severe Risk", domain.RiskVeryHigh
		normalized = 100
	case value >= 12:
		zone, status, risk = domain.ZoneReddishBlue, "Very High Risk", domain.RiskVeryHigh
		normalized = 80 + (value-12)/8*20
	case value >= 8:
		zone, status, risk = domain.ZoneYellowDarkRed, "High Risk", domain.RiskHigh
		normalized = 60 + (value-8)/4*20
	case value >= 6:
		zone, status, risk = domain.ZoneYellowRed, "Borderline High", domain.RiskModerate
		normalized = 40 + (value-6)/2*20
	case value >= 2:
		zone, status, risk = domain.ZoneOrange, "Moderate Risk", domain.RiskModerate
		normalized = 20 + (value-2)/4*20
	case value >= 1:
		zone, status, risk = domain.ZoneGreen, "Excellent", domain.RiskLow
		normalized = (value - 1) * 20
	default:
		zone, status, risk = domain.ZoneGreen, "Excellent", domain.RiskLow
		normalized = 0
	}

	return &domain.MetricResult{
		Value:           round2(value),
		NormalizedValue: clamp100(normalized),
		ColorZone:       zone,
		Status:          status,
		RiskLevel:       risk,
		Unit:            "",
		Interpretation:  homaIRInterpretation(value),
	}
}

// CalculateTygIndex derives the TYG index from triglycerides and glucose and
// classifies it. Returns nil when either input is absent.
func CalculateTygIndex(triglycerides, glucose float64) *domain.MetricResult {
	value, ok := TygIndex(triglycerides, glucose)
	if !ok {
		return nil
	}

	var (
		zone       domain.ColorZone
		status     string
		risk       domain.RiskLevel
		normalized float64
	)

	switch {
	case value >= 15:
		zone, status, risk = domain.ZoneDarkRed, "Very High Risk", domain.RiskVeryHigh
		normalized = 90 + math.Min((value-15)*2, 10)
	case value >= 10:
		zone, status, risk = domain.ZoneReddishYellow, "High Risk", domain.RiskHigh
		normalized = 60 + (value-10)/5*30
	case value >= 8:
		zone, status, risk = domain.ZoneYellowRed, "Borderline High", domain.RiskModerate
		normalized = 40 + (value-8)/2*20
	case value >= 5:
		zone, status, risk = domain.ZoneOrange, "Moderate Risk", domain.RiskModerate
		normalized = 20 + (value-5)/3*20
	case value >= 4.5:
		zone, status, risk = domain.ZoneGreen, "Normal", domain.RiskLow
		normalized = (value - 4.5) * 40
	default:
		zone, status, risk = domain.ZoneGreen, "Excellent", domain.RiskLow
		normalized = 0
	}

	return &domain.MetricResult{
		Value:           round2(value),
		NormalizedValue: clamp100(normalized),
		ColorZone:       zone,
		Status:          status,
		RiskLevel:       risk,
		Unit:            "",
		Interpretation:  tygInterpretation(value),
	}
}

// CalculateBMI derives BMI and classifies it into the WHO weight classes.
// Returns nil when weight or height is absent.
func CalculateBMI(weight, height float64, unit HeightUnit) *domain.MetricResult {
	value, ok := BMI(weight, height, unit)
	if !ok {
		return nil
	}

	var (
		zone       domain.ColorZone
		status     string
		risk       domain.RiskLevel
		normalized float64
	)

	switch {
	case value < 18.5:
		zone, status, risk = domain.ZoneYellow, "Underweight", domain.RiskBorderline
		normalized = value / 18.5 * 15
	case value < 25:
		zone, status, risk = domain.ZoneGreen, "Healthy Weight", domain.RiskLow
		normalized = (value - 18.5) / 6.5 * 20
	case value < 30:
		zone, status, risk = domain.ZoneYellow, "Overweight", domain.RiskBorderline
		normalized = 20 + (value-25)/5*20
	case value < 35:
		zone, status, risk = domain.ZoneOrange, "Obese Class I", domain.RiskModerate
		normalized = 40 + (value-30)/5*20
	case value < 40:
		zone, status, risk = domain.ZoneRed, "Obese Class II", domain.RiskHigh
		normalized = 60 + (value-35)/5*20
	default:
		zone, status, risk = domain.ZoneDarkRed, "Obese Class III", domain.RiskVeryHigh
		normalized = 80 + math.Min((value-40)/20*20, 20)
	}

	return &domain.MetricResult{
		Value:           round1(value),
		NormalizedValue: clamp100(normalized),
		ColorZone:       zone,
		Status:          status,
		RiskLevel:       risk,
		Unit:            "kg/m²",
		Interpretation:  bmiInterpretation(value),
	}
}

// CalculateWaist classifies a waist circumference in centimeters; the
// inches equivalent is carried for display only.
func CalculateWaist(waistCm float64) *domain.MetricResult {
	if waistCm <= 0 {
		return nil
	}

	var (
		zone       domain.ColorZone
		status     string
		risk       domain.RiskLevel
		normalized float64
	)

	switch {
	case waistCm >= 120:
		zone, status, risk = domain.ZoneDarkRed, "Extremely High Risk", domain.RiskVeryHigh
		normalized = 90 + math.Min((waistCm-120)/20*10, 10)
	case waistCm >= 110:
		zone, status, risk = domain.ZoneRed, "Very High Risk", domain.RiskVeryHigh
		normalized = 75 + (waistCm-110)/10*15
	case waistCm >= 100:
		zone, status, risk = domain.ZoneReddishYellow, "High Risk", domain.RiskHigh
		normalized = 55 + (waistCm-100)/10*20
	case waistCm >= 95:
		zone, status, risk = domain.ZoneOrangeRed, "Increased Risk", domain.RiskModerate
		normalized = 40 + (waistCm-95)/5*15
	case waistCm >= 90:
		zone, status, risk = domain.ZoneYellowRed, "Moderate Risk", domain.RiskModerate
		normalized = 30 + (waistCm-90)/5*10
	case waistCm >= 85:
		zone, status, risk = domain.ZoneBlue, "Borderline", domain.RiskBorderline
		normalized = 20 + (waistCm-85)/5*10
	default:
		zone, status, risk = domain.ZoneGreen, "Good", domain.RiskLow
		normalized = waistCm / 85 * 20
	}

	return &domain.MetricResult{
		Value:           round1(waistCm),
		ValueInches:     round1(WaistInches(waistCm)),
		NormalizedValue: clamp100(normalized),
		ColorZone:       zone,
		Status:          status,
		RiskLevel:       risk,
		Unit:            "cm",
		Interpretation:  waistInterpretation(waistCm),
	}
}

// CalculateAllHealthMetrics computes every gauge index that has its inputs
// present. Anthropometrics prefer the patient record over extracted values.
func CalculateAllHealthMetrics(labValues domain.LabValues, patient domain.PatientData) domain.HealthMetrics {
	glucose, _ := labValues.Value("glucose", "blood_sugar", "fbs")
	insulin, _ := labValues.Value("insulin")
	triglycerides, _ := labValues.Value("triglycerides", "tg")

	weight := patient.Weight
	if weight <= 0 {
		weight, _ = labValues.Value("weight")
	}
	height := patient.Height
	if height <= 0 {
		height, _ = labValues.Value("height")
	}
	waist := patient.Waist
	if waist <= 0 {
		waist, _ = labValues.Value("waist", "waist_circumference")
	}

	return domain.HealthMetrics{
		HomaIR:             CalculateHomaIR(glucose, insulin),
		TygIndex:           CalculateTygIndex(triglycerides, glucose),
		BMI:                CalculateBMI(weight, height, HeightCentimeters),
		WaistCircumference: CalculateWaist(waist),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp100(v float64) float64 {
	return math.Max(0, math.Min(v, 100))
}
