package domain

// AbnormalParameter is one lab value whose classified status deviates from
// the optimal band.
type AbnormalParameter struct {
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Status    string  `json:"status"`
}

// ParameterAssessment is the per-parameter outcome inside the HOMA-IQ score.
type ParameterAssessment struct {
	Value      float64 `json:"value"`
	Score      int     `json:"score"`
	Status     string  `json:"status"`
	IsAbnormal bool    `json:"isAbnormal"`
	Unit       string  `json:"unit"`
}

// HomaIRAssessment carries the standalone HOMA-IR evaluation attached to the
// HOMA-IQ score. It never enters the averaged score.
type HomaIRAssessment struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"`
	IsAbnormal     bool    `json:"isAbnormal"`
}

// HomaIQResult is the weighted 0-100 composite score: the unweighted mean of
// all present per-parameter scores, banded into a risk level.
type HomaIQResult struct {
	Score              int                            `json:"score"`
	RiskLevel          string                         `json:"riskLevel"`
	RiskColor          string                         `json:"riskColor"`
	RiskDescription    string                         `json:"riskDescription"`
	ParametersAssessed int                            `json:"parametersAssessed"`
	AbnormalCount      int                            `json:"abnormalCount"`
	AbnormalParameters []AbnormalParameter            `json:"abnormalParameters"`
	Assessments        map[string]ParameterAssessment `json:"detailedAssessments"`
	HomaIR             *HomaIRAssessment              `json:"homaIR,omitempty"`
	Recommendations    []string                       `json:"recommendations"`
	ClinicalSummary    string                         `json:"clinicalSummary"`
}

// ScoreDetail is one point award in the metabolic risk score with its
// textual rationale.
type ScoreDetail struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
	Unit      string `json:"unit"`
	Points    int    `json:"points"`
	Status    string `json:"status"`
	Risk      string `json:"risk"`
}

// DoctorInfo is a fixed informational payload carried by the metabolic risk
// score. Opaque constants, not business logic.
type DoctorInfo struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Message     string `json:"message"`
}

// MetabolicRiskResult is the point-accumulation 0-100 score. Score is the raw
// sum of awarded points (not clamped before banding); MaxScore is a fixed
// display constant.
type MetabolicRiskResult struct {
	Score           int           `json:"score"`
	MaxScore        int           `json:"maxScore"`
	RiskLevel       string        `json:"riskLevel"`
	RiskColor       ColorZone     `json:"riskColor"`
	RiskDescription string        `json:"riskDescription"`
	AbnormalCount   int           `json:"abnormalCount"`
	Details         []ScoreDetail `json:"details"`
	DoctorInfo      DoctorInfo    `json:"doctorInfo"`
	Recommendation  string        `json:"recommendation"`
}
