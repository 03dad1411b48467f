package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/homahealth/labscan/internal/core/domain"
)

// scoredParameters lists, in report order, the parameters whose band scores
// enter the composite mean. Insulin feeds HOMA-IR but carries no band score
// of its own, so it is deliberately absent here.
var scoredParameters = []string{"glucose", "cholesterol", "hdl", "ldl", "triglycerides", "hba1c"}

// parameterSynonyms maps each scored parameter to the lab-value keys it may
// have been extracted under.
var parameterSynonyms = map[string][]string{
	"glucose":       {"glucose", "blood_sugar", "fbs", "blood sugar", "fasting glucose"},
	"insulin":       {"insulin", "fasting insulin"},
	"cholesterol":   {"cholesterol", "total cholesterol", "total_cholesterol"},
	"hdl":           {"hdl", "hdl cholesterol", "hdl_cholesterol"},
	"ldl":           {"ldl", "ldl cholesterol", "ldl_cholesterol"},
	"triglycerides": {"triglycerides", "tg", "triglyceride"},
	"hba1c":         {"hba1c", "hb a1c", "glycated hemoglobin", "a1c"},
}

var parameterUnits = map[string]string{
	"glucose":       "mg/dL",
	"insulin":       "μU/mL",
	"cholesterol":   "mg/dL",
	"hdl":           "mg/dL",
	"ldl":           "mg/dL",
	"triglycerides": "mg/dL",
	"hba1c":         "%",
}

// ClassifyHomaIR grades the raw HOMA-IR value for the composite report. The
// cutpoints here are coarser than the gauge bands: they drive the abnormal
// flag, not the dial position.
func ClassifyHomaIR(glucose, insulin float64) *domain.HomaIRAssessment {
	value, ok := HomaIR(glucose, insulin)
	if !ok {
		return nil
	}

	classification := "Normal"
	switch {
	case value >= 10:
		classification = "Very High Risk - Severe Insulin Resistance"
	case value >= 5:
		classification = "High Risk - Significant Insulin Resistance"
	case value >= 2:
		classification = "Moderate Risk - Insulin Resistance Present"
	case value >= 1:
		classification = "Early Insulin Resistance"
	}

	return &domain.HomaIRAssessment{
		Value:          round2(value),
		Classification: classification,
		IsAbnormal:     value >= 2.0,
	}
}

// AssessParameter grades one clinical parameter against its reference bands
// and returns a 0-100 score. Nil when the value is absent or the parameter
// has no bands.
func AssessParameter(name string, value float64) *domain.ParameterAssessment {
	if value <= 0 {
		return nil
	}

	var (
		score    int
		status   string
		abnormal bool
	)

	switch name {
	case "glucose":
		switch {
		case value <= 125:
			score, status = 100, "Normal"
		case value <= 140:
			score, status, abnormal = 60, "Pre-diabetic", true
		default:
			score, status, abnormal = 20, "Diabetic range", true
		}
	case "cholesterol":
		switch {
		case value <= 200:
			score, status = 100, "Optimal"
		case value <= 239:
			score, status, abnormal = 70, "Borderline high", true
		default:
			score, status, abnormal = 40, "High", true
		}
	case "hdl":
		switch {
		case value >= 60:
			score, status = 100, "High (protective)"
		case value >= 40:
			score, status = 100, "Optimal"
		default:
			score, status, abnormal = 50, "Low (risk factor)", true
		}
	case "ldl":
		switch {
		case value <= 100:
			score, status = 100, "Optimal"
		case value <= 129:
			score, status, abnormal = 70, "High risk (above 100)", true
		case value <= 159:
			score, status, abnormal = 50, "Borderline high", true
		case value <= 189:
			score, status, abnormal = 30, "High", true
		default:
			score, status, abnormal = 15, "Very high", true
		}
	case "triglycerides":
		switch {
		case value <= 150:
			score, status = 100, "Optimal"
		case value <= 199:
			score, status, abnormal = 70, "Borderline high", true
		case value <= 499:
			score, status, abnormal = 40, "High", true
		default:
			score, status, abnormal = 20, "Very high", true
		}
	case "hba1c":
		switch {
		case value <= 5.7:
			score, status = 100, "Normal"
		case value <= 6.4:
			score, status, abnormal = 60, "Pre-diabetic", true
		default:
			score, status, abnormal = 20, "Diabetic range", true
		}
	default:
		return nil
	}

	return &domain.ParameterAssessment{
		Value:      value,
		Score:      score,
		Status:     status,
		IsAbnormal: abnormal,
		Unit:       parameterUnits[name],
	}
}

// CalculateHomaIQScore computes the composite metabolic score: the mean of
// the per-parameter band scores, rounded to the nearest integer. Fails with
// domain.ErrNoLabValues when none of the scored parameters is present.
func CalculateHomaIQScore(labValues domain.LabValues) (*domain.HomaIQResult, error) {
	if len(labValues) == 0 {
		return nil, fmt.Errorf("scoring.CalculateHomaIQScore: %w", domain.ErrNoLabValues)
	}

	assessments := make(map[string]domain.ParameterAssessment, len(scoredParameters))
	var (
		scoreSum int
		abnormal []domain.AbnormalParameter
	)

	for _, name := range scoredParameters {
		value, ok := labValues.Value(parameterSynonyms[name]...)
		if !ok {
			continue
		}
		assessment := AssessParameter(name, value)
		if assessment == nil {
			continue
		}
		assessments[name] = *assessment
		scoreSum += assessment.Score

		if assessment.IsAbnormal {
			abnormal = append(abnormal, domain.AbnormalParameter{
				Parameter: strings.ToUpper(name),
				Value:     assessment.Value,
				Unit:      assessment.Unit,
				Status:    assessment.Status,
			})
		}
	}

	if len(assessments) == 0 {
		return nil, fmt.Errorf("scoring.CalculateHomaIQScore: %w", domain.ErrNoLabValues)
	}

	var homaIR *domain.HomaIRAssessment
	glucose, hasGlucose := labValues.Value(parameterSynonyms["glucose"]...)
	insulin, hasInsulin := labValues.Value(parameterSynonyms["insulin"]...)
	if hasGlucose && hasInsulin {
		homaIR = ClassifyHomaIR(glucose, insulin)
		if homaIR != nil && homaIR.IsAbnormal {
			abnormal = append(abnormal, domain.AbnormalParameter{
				Parameter: "HOMA-IR",
				Value:     homaIR.Value,
				Unit:      "",
				Status:    homaIR.Classification,
			})
		}
	}

	score := int(math.Round(float64(scoreSum) / float64(len(assessments))))
	risk := riskAssessmentFor(score)

	return &domain.HomaIQResult{
		Score:              score,
		RiskLevel:          risk.level,
		RiskColor:          risk.color,
		RiskDescription:    risk.description,
		ParametersAssessed: len(assessments),
		AbnormalCount:      len(abnormal),
		AbnormalParameters: abnormal,
		Assessments:        assessments,
		HomaIR:             homaIR,
		Recommendations:    risk.recommendations,
		ClinicalSummary:    clinicalSummary(assessments, abnormal, score),
	}, nil
}

type riskAssessment struct {
	level           string
	color           string
	description     string
	recommendations []string
}

func riskAssessmentFor(score int) riskAssessment {
	switch {
	case score >= 80:
		return riskAssessment{
			level:       "Excellent",
			color:       "#10b981",
			description: "Excellent metabolic health. All parameters within optimal range.",
			recommendations: []string{
				"Maintain current healthy lifestyle",
				"Continue regular exercise",
				"Keep balanced diet",
				"Annual health check-ups recommended",
			},
		}
	case score >= 60:
		return riskAssessment{
			level:       "Good",
			color:       "#3b82f6",
			description: "Good metabolic health with minor areas for improvement.",
			recommendations: []string{
				"Monitor parameters regularly",
				"Consider lifestyle modifications",
				"Increase physical activity if needed",
				"Consult with healthcare provider for optimization",
			},
		}
	case score >= 40:
		return riskAssessment{
			level:       "Moderate Risk",
			color:       "#f59e0b",
			description: "Moderate metabolic risk. Some parameters require attention.",
			recommendations: []string{
				"Immediate lifestyle modifications recommended",
				"Dietary changes essential",
				"Regular exercise program needed",
				"Follow-up testing in 3 months",
				"Consult healthcare provider for treatment plan",
			},
		}
	case score >= 20:
		return riskAssessment{
			level:       "High Risk",
			color:       "#ef4444",
			description: "High metabolic risk. Multiple parameters abnormal.",
			recommendations: []string{
				"Urgent medical consultation required",
				"Comprehensive lifestyle changes needed",
				"Medication may be necessary",
				"Close monitoring essential",
				"Follow medical treatment plan strictly",
			},
		}
	default:
		return riskAssessment{
			level:       "Very High Risk",
			color:       "#991b1b",
			description: "Very high metabolic risk. Immediate medical attention required.",
			recommendations: []string{
				"IMMEDIATE medical consultation required",
				"Comprehensive medical evaluation needed",
				"Medication therapy likely necessary",
				"Weekly monitoring recommended",
				"Consider specialist referral",
			},
		}
	}
}

func clinicalSummary(assessments map[string]domain.ParameterAssessment, abnormal []domain.AbnormalParameter, score int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "HOMA-IQ Score: %d/100\n\n", score)

	if len(abnormal) == 0 {
		b.WriteString("All assessed parameters are within normal ranges. Patient shows excellent metabolic health.\n")
	} else {
		fmt.Fprintf(&b, "%d parameter(s) outside normal range:\n", len(abnormal))
		for _, p := range abnormal {
			fmt.Fprintf(&b, "- %s: %v %s (%s)\n", p.Parameter, p.Value, p.Unit, p.Status)
		}
	}

	b.WriteString("\nDetailed Assessment:\n")
	for _, name := range scoredParameters {
		assessment, ok := assessments[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %v %s - %s\n", strings.ToUpper(name), assessment.Value, assessment.Unit, assessment.Status)
	}
	return b.String()
}
