package domain

type RiskLevel string

const (
	RiskLow        RiskLevel = "Low"
	RiskBorderline RiskLevel = "Borderline"
	RiskModerate   RiskLevel = "Moderate"
	RiskHigh       RiskLevel = "High"
	RiskVeryHigh   RiskLevel = "Very High"
)

// ColorZone is a discrete display-band token consumed by the gauge UI.
type ColorZone string

const (
	ZoneGreen          ColorZone = "green"
	ZoneBlue           ColorZone = "blue"
	ZoneGreenishYellow ColorZone = "greenishyellow"
	ZoneYellow         ColorZone = "yellow"
	ZoneYellowRed      ColorZone = "yellowred"
	ZoneYellowDarkRed  ColorZone = "yellowdarkred"
	ZoneOrange         ColorZone = "orange"
	ZoneOrangeRed      ColorZone = "orangered"
	ZoneReddishYellow  ColorZone = "reddishyellow"
	ZoneReddishBlue    ColorZone = "reddishblue"
	ZoneRed            ColorZone = "red"
	ZoneDarkRed        ColorZone = "darkred"
)

var zoneColors = map[ColorZone]string{
	ZoneGreen:          "#10b981",
	ZoneBlue:           "#3b82f6",
	ZoneGreenishYellow: "#84cc16",
	ZoneYellow:         "#fbbf24",
	ZoneYellowRed:      "#f59e0b",
	ZoneYellowDarkRed:  "#dc2626",
	ZoneOrange:         "#f97316",
	ZoneOrangeRed:      "#ea580c",
	ZoneReddishYellow:  "#ef4444",
	ZoneReddishBlue:    "#7c3aed",
	ZoneRed:            "#ef4444",
	ZoneDarkRed:        "#991b1b",
}

// HexColor returns the display color for a zone token, with a neutral grey
// fallback for unknown zones.
func (z ColorZone) HexColor() string {
	if c, ok := zoneColors[z]; ok {
		return c
	}
	return "#6b7280"
}

// MetricResult is one classified gauge reading. Value is rounded for display;
// NormalizedValue is the 0-100 gauge position, clamped, never rounded.
type MetricResult struct {
	Value           float64   `json:"value"`
	ValueInches     float64   `json:"valueInches,omitempty"`
	NormalizedValue float64   `json:"normalizedValue"`
	ColorZone       ColorZone `json:"colorZone"`
	Status          string    `json:"status"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Unit            string    `json:"unit"`
	Interpretation  string    `json:"interpretation"`
}

// HealthMetrics bundles the four gauge indices. A nil entry means the inputs
// required for that index were absent.
type HealthMetrics struct {
	HomaIR             *MetricResult `json:"homaIR"`
	TygIndex           *MetricResult `json:"tygIndex"`
	BMI                *MetricResult `json:"bmi"`
	WaistCircumference *MetricResult `json:"waistCircumference"`
}
