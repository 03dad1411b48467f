package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/homahealth/labscan/internal/core/domain"
)

// HOMA Healthcare Center point-based metabolic risk score. Each risk factor
// contributes a fixed point award; the total is reported against a nominal
// ceiling of 100 but is not capped, past medical history alone can stack 20.
const metabolicMaxScore = 100

// ClinicContact is printed on every metabolic risk report.
var ClinicContact = domain.DoctorInfo{
	Name:        "Dr. Muddu Surendra Nehru",
	Designation: "Professor of Medicine, Metabolism Specialist",
	Phone:       "09963721999",
	Website:     "www.homahealthcarecenter.in",
	Message:     "CONTACT PHYSICIAN METABOLISM SPECIALIST DR MUDDU SURENDRA NEHRU, PROFESSOR OF MEDICINE, 09963721999. www.homahealthcarecenter.in",
}

// CalculateMetabolicRisk computes the point-based risk score from lab values
// and the patient record. Factors with missing inputs contribute nothing.
func CalculateMetabolicRisk(labValues domain.LabValues, patient domain.PatientData) *domain.MetabolicRiskResult {
	total := 0
	var details []domain.ScoreDetail

	award := func(d domain.ScoreDetail) {
		total += d.Points
		details = append(details, d)
	}

	if patient.Waist > 85 {
		award(domain.ScoreDetail{
			Parameter: "Waist Circumference",
			Value:     formatNumber(patient.Waist),
			Unit:      "cm",
			Points:    15,
			Status:    "Abnormal (> 85cm)",
			Risk:      "High",
		})
	}

	glucose, hasGlucose := labValues.Value("glucose", "fbs")
	insulin, hasInsulin := labValues.Value("insulin")
	if hasGlucose && hasInsulin {
		if homaIR, ok := HomaIR(glucose, insulin); ok && homaIR > 2 {
			award(domain.ScoreDetail{
				Parameter: "HOMA-IR",
				Value:     strconv.FormatFloat(homaIR, 'f', 2, 64),
				Points:    15,
				Status:    "Abnormal (> 2.0)",
				Risk:      "High",
			})
		}
	}

	triglycerides, hasTG := labValues.Value("triglycerides")
	if hasTG && hasGlucose {
		if tyg, ok := TygIndex(triglycerides, glucose); ok && tyg > 4.5 {
			award(domain.ScoreDetail{
				Parameter: "TYG Index",
				Value:     strconv.FormatFloat(tyg, 'f', 2, 64),
				Points:    15,
				Status:    "Abnormal (> 4.5)",
				Risk:      "High",
			})
		}
	}

	if patient.Weight > 0 && patient.Height > 0 {
		// Height on intake forms may arrive in meters or centimeters;
		// anything above 10 is treated as centimeters.
		heightM := patient.Height
		if heightM > 10 {
			heightM = heightM / 100
		}
		bmi := patient.Weight / (heightM * heightM)
		if bmi > 25 || bmi < 18.5 {
			status := "Underweight"
			if bmi > 25 {
				status = "Overweight"
			}
			award(domain.ScoreDetail{
				Parameter: "BMI",
				Value:     strconv.FormatFloat(bmi, 'f', 1, 64),
				Unit:      "kg/m²",
				Points:    5,
				Status:    status,
				Risk:      "Moderate",
			})
		}
	}

	if hasGlucose && glucose > 100 {
		status := "Pre-diabetic"
		if glucose > 126 {
			status = "Diabetic"
		}
		award(domain.ScoreDetail{
			Parameter: "FBS",
			Value:     formatNumber(glucose),
			Unit:      "mg/dL",
			Points:    5,
			Status:    status,
			Risk:      "Moderate",
		})
	}

	if plbs, ok := labValues.Value("postLunchSugar", "plbs", "ppbs"); ok && plbs > 140 {
		status := "Elevated"
		if plbs > 200 {
			status = "Diabetic"
		}
		award(domain.ScoreDetail{
			Parameter: "PLBS",
			Value:     formatNumber(plbs),
			Unit:      "mg/dL",
			Points:    5,
			Status:    status,
			Risk:      "Moderate",
		})
	}

	if hba1c, ok := labValues.Value("hba1c"); ok && hba1c > 5.7 {
		status := "Pre-diabetic"
		if hba1c > 6.5 {
			status = "Diabetic"
		}
		award(domain.ScoreDetail{
			Parameter: "HbA1c",
			Value:     formatNumber(hba1c),
			Unit:      "%",
			Points:    5,
			Status:    status,
			Risk:      "Moderate",
		})
	}

	if ldl, ok := labValues.Value("ldl"); ok && ldl > 100 {
		status := "High"
		if ldl > 160 {
			status = "Very High"
		}
		award(domain.ScoreDetail{
			Parameter: "LDL",
			Value:     formatNumber(ldl),
			Unit:      "mg/dL",
			Points:    5,
			Status:    status,
			Risk:      "Moderate",
		})
	}

	if tc, ok := labValues.Value("cholesterol"); ok && tc > 200 {
		status := "Borderline"
		if tc > 240 {
			status = "High"
		}
		award(domain.ScoreDetail{
			Parameter: "Total Cholesterol",
			Value:     formatNumber(tc),
			Unit:      "mg/dL",
			Points:    5,
			Status:    status,
			Risk:      "Moderate",
		})
	}

	if hdl, ok := labValues.Value("hdl"); ok && hdl < 40 {
		award(domain.ScoreDetail{
			Parameter: "HDL",
			Value:     formatNumber(hdl),
			Unit:      "mg/dL",
			Points:    5,
			Status:    "Low (Risk Factor)",
			Risk:      "Moderate",
		})
	}

	if hasTG && triglycerides > 150 {
		status := "Borderline"
		if triglycerides > 200 {
			status = "High"
		}
		award(domain.ScoreDetail{
			Parameter: "Triglycerides",
			Value:     formatNumber(triglycerides),
			Unit:      "mg/dL",
			Points:    5,
			Status:    status,
			Risk:      "Moderate",
		})
	}

	if patient.FamilyHistory.Any() {
		var conditions []string
		if patient.FamilyHistory.Diabetes {
			conditions = append(conditions, "DM")
		}
		if patient.FamilyHistory.Hypertension {
			conditions = append(conditions, "HTM")
		}
		if patient.FamilyHistory.CAD {
			conditions = append(conditions, "CAD")
		}
		award(domain.ScoreDetail{
			Parameter: "Family History",
			Value:     strings.Join(conditions, ", "),
			Points:    5,
			Status:    "Present",
			Risk:      "Moderate",
		})
	}

	pastPoints := 0
	var pastConditions []string
	if patient.PastHistory.CAD {
		pastPoints += 5
		pastConditions = append(pastConditions, "CAD")
	}
	if patient.PastHistory.Stroke {
		pastPoints += 5
		pastConditions = append(pastConditions, "CVA")
	}
	if patient.PastHistory.Cancer {
		pastPoints += 5
		pastConditions = append(pastConditions, "Cancer")
	}
	if patient.PastHistory.Stent {
		pastPoints += 5
		pastConditions = append(pastConditions, "PTCA/Stent")
	}
	if pastPoints > 0 {
		award(domain.ScoreDetail{
			Parameter: "Past Medical History",
			Value:     strings.Join(pastConditions, ", "),
			Points:    pastPoints,
			Status:    "Present",
			Risk:      "High",
		})
	}

	if patient.Lifestyle.Any() {
		var factors []string
		if patient.Lifestyle.Smoking {
			factors = append(factors, "Smoking")
		}
		if patient.Lifestyle.Alcohol {
			factors = append(factors, "Alcohol")
		}
		if patient.Lifestyle.TobaccoChewing {
			factors = append(factors, "Pan")
		}
		if patient.Lifestyle.Drugs {
			factors = append(factors, "Drugs")
		}
		award(domain.ScoreDetail{
			Parameter: "Lifestyle Risk Factors",
			Value:     strings.Join(factors, ", "),
			Points:    5,
			Status:    "Present",
			Risk:      "Moderate",
		})
	}

	level, color, description := metabolicRiskBand(total)

	return &domain.MetabolicRiskResult{
		Score:           total,
		MaxScore:        metabolicMaxScore,
		RiskLevel:       level,
		RiskColor:       color,
		RiskDescription: description,
		AbnormalCount:   len(details),
		Details:         details,
		DoctorInfo:      ClinicContact,
		Recommendation:  ClinicContact.Message,
	}
}

// metabolicRiskBand returns the serialized riskLevel label for a point total.
// The dashboard keys off the " Risk"-suffixed display strings, not the bare
// ordinal names used by the gauge metrics.
func metabolicRiskBand(score int) (string, domain.ColorZone, string) {
	switch {
	case score >= 80:
		return "Very High Risk", domain.ZoneDarkRed, "URGENT: Immediate medical attention required"
	case score >= 60:
		return "High Risk", domain.ZoneRed, "WARNING: Significant metabolic abnormalities detected"
	case score >= 30:
		return "Moderate Risk", domain.ZoneOrange, "CAUTION: Multiple risk factors present"
	default:
		return "Low Risk", domain.ZoneGreen, "Good metabolic health"
	}
}

// formatNumber renders a reading the way it was written on the report, with
// no trailing zeros.
func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
