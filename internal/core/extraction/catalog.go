package extraction

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogEntry associates a canonical parameter key with the label spellings
// and unit tokens recognized for it in scanned report text. Adding a
// parameter is a data change, not a code change.
type CatalogEntry struct {
	Key      string   `yaml:"key"`
	Name     string   `yaml:"name"`
	Synonyms []string `yaml:"synonyms"`
	Units    []string `yaml:"units"`
}

// Catalog is the ordered, immutable parameter registry with patterns
// compiled once at construction.
type Catalog struct {
	entries  []CatalogEntry
	patterns []*regexp.Regexp
}

// NewCatalog compiles one search pattern per entry: label synonym, separator,
// numeric value, optional unit token. Matching is case-insensitive and not
// line-restricted, since OCR output separates labels and values with
// arbitrary whitespace.
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("parameter catalog is empty")
	}

	patterns := make([]*regexp.Regexp, 0, len(entries))
	for _, entry := range entries {
		if entry.Key == "" || len(entry.Synonyms) == 0 {
			return nil, fmt.Errorf("catalog entry %q: key and synonyms are required", entry.Name)
		}
		re, err := regexp.Compile(buildPattern(entry))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", entry.Key, err)
		}
		patterns = append(patterns, re)
	}

	return &Catalog{entries: entries, patterns: patterns}, nil
}

func buildPattern(entry CatalogEntry) string {
	labels := make([]string, 0, len(entry.Synonyms))
	for _, s := range entry.Synonyms {
		labels = append(labels, regexp.QuoteMeta(s))
	}

	pattern := `(?i)(?:` + strings.Join(labels, "|") + `)[:\s]+(\d+\.?\d*)`
	if len(entry.Units) > 0 {
		units := make([]string, 0, len(entry.Units))
		for _, u := range entry.Units {
			units = append(units, regexp.QuoteMeta(u))
		}
		pattern += `\s*(?:` + strings.Join(units, "|") + `)?`
	}
	return pattern
}

func (c *Catalog) Entries() []CatalogEntry {
	return c.entries
}

type catalogFile struct {
	Entries []CatalogEntry `yaml:"entries"`
}

// LoadCatalog reads a catalog overlay from a YAML file; an empty path yields
// the built-in default registry.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewDefaultCatalog()
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return NewCatalog(file.Entries)
}

// NewDefaultCatalog returns the built-in parameter registry. Synonym order
// within an entry is significant: longer spellings come first so they win
// the alternation.
func NewDefaultCatalog() (*Catalog, error) {
	return NewCatalog(defaultEntries())
}

func defaultEntries() []CatalogEntry {
	mg := []string{"mg/dL", "mg/dl", "mgdl"}
	return []CatalogEntry{
		{
			Key:      "glucose",
			Name:     "Fasting Blood Sugar",
			Synonyms: []string{"Fasting Blood Sugar", "FBS", "Fasting Glucose", "Blood Glucose", "Glucose", "Blood Sugar"},
			Units:    mg,
		},
		{
			Key:      "postLunchSugar",
			Name:     "Post-lunch Blood Sugar",
			Synonyms: []string{"Post-lunch Blood Sugar", "Post Lunch Blood Sugar", "PP Blood Sugar", "PPBS", "Post Prandial"},
			Units:    mg,
		},
		{
			Key:      "insulin",
			Name:     "Insulin",
			Synonyms: []string{"Insulin", "Fasting Insulin", "Serum Insulin"},
			Units:    []string{"μU/mL", "uU/mL", "mU/L", "International Units", "IU"},
		},
		{
			Key:      "c_peptide",
			Name:     "C-Peptide",
			Synonyms: []string{"C-Peptide", "C Peptide", "CPeptide"},
			Units:    []string{"ng/mL", "ng/ml"},
		},
		{
			Key:      "hba1c",
			Name:     "HbA1c",
			Synonyms: []string{"HbA1c", "HbA1C", "Hb A1c", "A1C", "Glycated Hemoglobin", "Glycosylated Hemoglobin"},
			Units:    []string{"%"},
		},
		{
			Key:      "cholesterol",
			Name:     "Total Cholesterol",
			Synonyms: []string{"Total Cholesterol", "Cholesterol Total", "Cholesterol"},
			Units:    mg,
		},
		{
			Key:      "hdl",
			Name:     "HDL Cholesterol",
			Synonyms: []string{"HDL Cholesterol", "HDL-C", "HDL"},
			Units:    mg,
		},
		{
			Key:      "ldl",
			Name:     "LDL Cholesterol",
			Synonyms: []string{"LDL Cholesterol", "LDL-C", "LDL"},
			Units:    mg,
		},
		{
			Key:      "triglycerides",
			Name:     "Triglycerides",
			Synonyms: []string{"Triglycerides", "Triglyceride", "TG"},
			Units:    mg,
		},
		{
			Key:      "vldl",
			Name:     "VLDL Cholesterol",
			Synonyms: []string{"VLDL Cholesterol", "VLDL-C", "VLDL"},
			Units:    mg,
		},
		{
			Key:      "weight",
			Name:     "Weight",
			Synonyms: []string{"Body Weight", "Weight", "Wt"},
			Units:    []string{"kgs", "kg", "kilograms", "kilogram"},
		},
		{
			Key:      "height",
			Name:     "Height",
			Synonyms: []string{"Height", "Ht"},
			Units:    []string{"cm", "centimeters", "centimeter"},
		},
		{
			Key:      "waist",
			Name:     "Waist Circumference",
			Synonyms: []string{"Waist Circumference", "Abdominal Circumference", "Waist"},
			Units:    []string{"cm", "centimeters", "centimeter", "inches", "inch"},
		},
		{
			Key:      "hemoglobin",
			Name:     "Hemoglobin",
			Synonyms: []string{"Hemoglobin", "HGB", "Hb"},
			Units:    []string{"g/dL", "gm/dl"},
		},
		{
			Key:      "wbc",
			Name:     "WBC",
			Synonyms: []string{"White Blood Cell", "Leucocyte Count", "WBC"},
			Units:    []string{"cells/cumm", "/cmm", "x10^3/uL"},
		},
		{
			Key:      "rbc",
			Name:     "RBC",
			Synonyms: []string{"Red Blood Cell", "RBC"},
			Units:    []string{"million/cumm", "x10^6/uL"},
		},
		{
			Key:      "platelet",
			Name:     "Platelet",
			Synonyms: []string{"Platelet Count", "Platelet", "PLT"},
			Units:    []string{"lakhs/cumm", "x10^3/uL"},
		},
		{
			Key:      "sgot",
			Name:     "SGOT/AST",
			Synonyms: []string{"SGOT", "AST"},
			Units:    []string{"U/L", "IU/L"},
		},
		{
			Key:      "sgpt",
			Name:     "SGPT/ALT",
			Synonyms: []string{"SGPT", "ALT"},
			Units:    []string{"U/L", "IU/L"},
		},
		{
			Key:      "bilirubin",
			Name:     "Bilirubin",
			Synonyms: []string{"Total Bilirubin", "Bilirubin"},
			Units:    []string{"mg/dL"},
		},
		{
			Key:      "creatinine",
			Name:     "Creatinine",
			Synonyms: []string{"Serum Creatinine", "Creatinine"},
			Units:    []string{"mg/dL"},
		},
		{
			Key:      "urea",
			Name:     "Blood Urea",
			Synonyms: []string{"Blood Urea", "Urea", "BUN"},
			Units:    []string{"mg/dL"},
		},
		{
			Key:      "tsh",
			Name:     "TSH",
			Synonyms: []string{"Thyroid Stimulating Hormone", "TSH"},
			Units:    []string{"μIU/mL", "mIU/L"},
		},
		{
			Key:      "t3",
			Name:     "T3",
			Synonyms: []string{"Triiodothyronine", "T3"},
			Units:    []string{"ng/dL"},
		},
		{
			Key:      "t4",
			Name:     "T4",
			Synonyms: []string{"Thyroxine", "T4"},
			Units:    []string{"μg/dL"},
		},
	}
}
