package domain

import "strings"

// LabValues maps canonical parameter keys (glucose, hdl, insulin, ...) to
// corrected numeric readings. Values are always finite and positive; a zero
// or negative reading means the parameter is absent and is never stored.
type LabValues map[string]float64

// Value resolves the first present key from a list of naming variants.
// Lookup is exact first, then case-insensitive, then substring on the stored
// keys, mirroring how verified form data and OCR keys drift apart.
func (lv LabValues) Value(names ...string) (float64, bool) {
	for _, name := range names {
		if v, ok := lv[name]; ok && v > 0 {
			return v, true
		}
		lower := strings.ToLower(name)
		for key, v := range lv {
			if v <= 0 {
				continue
			}
			k := strings.ToLower(key)
			if k == lower || strings.Contains(k, lower) {
				return v, true
			}
		}
	}
	return 0, false
}

// SetIfAbsent implements the batch merge rule: the first document's
// successful extraction for a key wins across a batch.
func (lv LabValues) SetIfAbsent(key string, value float64) {
	if value <= 0 {
		return
	}
	if _, ok := lv[key]; !ok {
		lv[key] = value
	}
}

// FamilyHistory flags are independent, not mutually exclusive.
type FamilyHistory struct {
	Diabetes     bool `json:"diabetes"`
	Hypertension bool `json:"hypertension"`
	CAD          bool `json:"cad"`
}

func (f FamilyHistory) Any() bool {
	return f.Diabetes || f.Hypertension || f.CAD
}

type PastHistory struct {
	CAD    bool `json:"cad"`
	Stroke bool `json:"cva"`
	Cancer bool `json:"cancer"`
	Stent  bool `json:"ptca"`
}

type Lifestyle struct {
	Smoking        bool `json:"smoking"`
	Alcohol        bool `json:"alcohol"`
	TobaccoChewing bool `json:"pan"`
	Drugs          bool `json:"drugs"`
}

func (l Lifestyle) Any() bool {
	return l.Smoking || l.Alcohol || l.TobaccoChewing || l.Drugs
}

// PatientData is the auxiliary record accompanying lab values: anthropometrics
// plus the three risk-factor flag groups used by the point-based score.
type PatientData struct {
	Age           int           `json:"age,omitempty"`
	Gender        string        `json:"gender,omitempty"`
	Weight        float64       `json:"weight,omitempty"`
	Height        float64       `json:"height,omitempty"`
	Waist         float64       `json:"waist,omitempty"`
	FamilyHistory FamilyHistory `json:"familyHistory"`
	PastHistory   PastHistory   `json:"pastHistory"`
	Lifestyle     Lifestyle     `json:"lifestyle"`
}
