package scoring

import "math"

// HeightUnit selects the conversion applied to a raw height reading before
// the BMI division. Centimeters are the default on report forms.
type HeightUnit string

const (
	HeightCentimeters HeightUnit = "cm"
	HeightMeters      HeightUnit = "m"
	HeightInches      HeightUnit = "inches"
)

// HomaIR computes (glucose mg/dL x insulin uU/mL) / 405. The second return
// is false when either input is absent or non-positive.
func HomaIR(glucose, insulin float64) (float64, bool) {
	if glucose <= 0 || insulin <= 0 {
		return 0, false
	}
	return glucose * insulin / 405, true
}

// TygIndex computes ln(triglycerides mg/dL x glucose mg/dL / 2).
func TygIndex(triglycerides, glucose float64) (float64, bool) {
	if triglycerides <= 0 || glucose <= 0 {
		return 0, false
	}
	return math.Log(triglycerides * glucose / 2), true
}

// BMI computes weight kg / height m^2, converting the height reading
// according to unit.
func BMI(weight, height float64, unit HeightUnit) (float64, bool) {
	if weight <= 0 || height <= 0 {
		return 0, false
	}

	meters := height
	switch unit {
	case HeightCentimeters:
		meters = height / 100
	case HeightInches:
		meters = height * 0.0254
	}
	return weight / (meters * meters), true
}

// WaistInches is a display conversion only; classification always works on
// centimeters.
func WaistInches(waistCm float64) float64 {
	return waistCm * 0.393701
}
