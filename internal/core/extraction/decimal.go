package extraction

import (
	"math"
	"strings"
)

// decimalRule recovers a decimal point the OCR engine dropped: when the raw
// integer magnitude is implausible-but-recoverable for a parameter that is
// normally reported with 1-2 decimal digits, dividing by 100 reconstructs
// the intended reading ("1686" -> 16.86).
type decimalRule struct {
	nameContains []string
	min, max     float64
	divisor      float64
}

// Boundary values are fixed per parameter; order matters because parameter
// names are matched by substring.
var decimalRules = []decimalRule{
	{nameContains: []string{"insulin"}, min: 100, max: 10000, divisor: 100},
	{nameContains: []string{"c-peptide", "cpeptide", "c peptide"}, min: 50, max: 10000, divisor: 100},
	{nameContains: []string{"tsh"}, min: 50, max: 10000, divisor: 100},
	{nameContains: []string{"creatinine"}, min: 15, max: 1000, divisor: 100},
}

// FixDecimal corrects a dropped decimal point for a small fixed set of
// parameters. A value that already carries a fractional part is returned
// unchanged, which also makes the correction idempotent.
func FixDecimal(parameterName string, value float64) float64 {
	if value != math.Trunc(value) {
		return value
	}

	name := strings.ToLower(parameterName)
	for _, rule := range decimalRules {
		for _, fragment := range rule.nameContains {
			if strings.Contains(name, fragment) {
				if value > rule.min && value < rule.max {
					return value / rule.divisor
				}
				return value
			}
		}
	}
	return value
}
