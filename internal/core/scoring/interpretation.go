package scoring

// Interpretation buckets are clinician-facing one-liners keyed off the raw
// index value, not the color zone; the two scales intentionally differ.

func homaIRInterpretation(value float64) string {
	switch {
	case value < 1.0:
		return "Optimal insulin sensitivity"
	case value < 2.0:
		return "Normal insulin sensitivity"
	case value < 3.0:
		return "Early insulin resistance"
	case value < 5.0:
		return "Insulin resistance present"
	case value < 10.0:
		return "Moderate insulin resistance"
	default:
		return "Severe insulin resistance"
	}
}

func tygInterpretation(value float64) string {
	switch {
	case value < 8.5:
		return "Low cardiovascular risk"
	case value < 9.0:
		return "Moderate cardiovascular risk"
	case value < 9.5:
		return "Increased metabolic syndrome risk"
	case value < 10.0:
		return "High cardiovascular risk"
	default:
		return "Very high metabolic syndrome risk"
	}
}

func bmiInterpretation(value float64) string {
	switch {
	case value < 18.5:
		return "Below healthy weight"
	case value < 25:
		return "Healthy weight range"
	case value < 30:
		return "Above healthy weight"
	case value < 35:
		return "Obesity - increased health risks"
	case value < 40:
		return "Severe obesity - high health risks"
	default:
		return "Very severe obesity - very high health risks"
	}
}

func waistInterpretation(value float64) string {
	switch {
	case value < 85:
		return "Low metabolic risk"
	case value < 90:
		return "Slightly increased risk"
	case value < 95:
		return "Increased metabolic risk"
	case value < 100:
		return "Substantially increased risk"
	case value < 110:
		return "High cardiovascular risk"
	case value < 120:
		return "Very high health risk"
	default:
		return "Extremely high health risk"
	}
}
