package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/homahealth/labscan/internal/core/domain"
)

var (
	patientIDPattern   = regexp.MustCompile(`(?i)(?:Patient ID|Pat ID|ID|Patient No)[:\s]+([A-Z0-9]+)`)
	patientNamePattern = regexp.MustCompile(`(?i)(?:Patient Name|Name|Patient)[:\s]+([A-Za-z\s]+?)(?:\n|,|$)`)
	patientAgePattern  = regexp.MustCompile(`(?i)(?:Age|Age/Sex)[:\s]+(\d+)`)
	genderPattern      = regexp.MustCompile(`(?i)(?:Gender|Sex)[:\s]+(Male|Female|M|F)`)

	reportDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Date|Report Date|Collection Date)[:\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
		regexp.MustCompile(`(?i)(?:Date|Report Date|Collection Date)[:\s]+(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4})`),
	}

	laboratoryPattern = regexp.MustCompile(`(?i)(?:Laboratory|Lab|Diagnostics|Pathology|Medical Center)`)
)

// extractPatientInfo pulls demographic fields from the report header.
// Best-effort: any field that does not match stays empty.
func extractPatientInfo(text string) domain.PatientInfo {
	var info domain.PatientInfo

	if m := patientIDPattern.FindStringSubmatch(text); m != nil {
		info.ID = m[1]
	}
	if m := patientNamePattern.FindStringSubmatch(text); m != nil {
		info.Name = strings.TrimSpace(m[1])
	}
	if m := patientAgePattern.FindStringSubmatch(text); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			info.Age = age
		}
	}
	if m := genderPattern.FindStringSubmatch(text); m != nil {
		info.Gender = m[1]
	}
	return info
}

func extractReportDate(text string) string {
	for _, pattern := range reportDatePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractLaboratoryName looks at the first few lines only; the issuing lab
// is printed at the top of the report.
func extractLaboratoryName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		if laboratoryPattern.MatchString(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
