package assessment

import (
	"strings"
	"time"
)

const (
	dateLongLayout  = "January 2, 2006"
	dateShortLayout = "Jan 2, 2006"

	// Ages outside this range are treated as data-entry noise, not bucketed.
	maxPlausibleAge = 120
)

// Normalize maps a raw assessment record onto the flat view model the report
// binds against. It is total: malformed or missing fields normalize to "N/A"
// and never abort the report. The clock is injected so generation timestamps
// stay out of equality checks in tests.
func Normalize(raw RawAssessment, now time.Time) PatientViewModel {
	assessedAt, hasDate := parseAssessmentDate(raw.AssessmentDate)

	vm := PatientViewModel{
		Name:               orUnavailable(raw.PatientName),
		Gender:             orUnavailable(raw.Gender),
		AgeGroup:           AgeGroup(raw.Age),
		AssessmentID:       orUnavailable(raw.ID),
		AssigningPhysician: orUnavailable(raw.AssigningPhysician.Name),
		DateOfBirth:        estimateDOB(raw.Age, assessedAt, hasDate),
		AssessmentDate:     FieldUnavailable,
		AssessmentDateLong: FieldUnavailable,
		ReportGenerated:    now.Format(dateLongLayout + " 3:04 PM"),
	}
	if hasDate {
		vm.AssessmentDate = assessedAt.Format(dateShortLayout)
		vm.AssessmentDateLong = assessedAt.Format(dateLongLayout)
	}
	return vm
}

// AgeGroup buckets an age into the portal's fixed left-closed bands.
// Non-positive or implausible ages read "N/A".
func AgeGroup(age int) string {
	switch {
	case age <= 0 || age > maxPlausibleAge:
		return FieldUnavailable
	case age < 18:
		return "<18"
	case age <= 24:
		return "18–24"
	case age <= 34:
		return "25–34"
	case age <= 44:
		return "35–44"
	case age <= 54:
		return "45–54"
	case age <= 64:
		return "55–64"
	case age <= 74:
		return "65–74"
	case age <= 84:
		return "75–84"
	case age <= 94:
		return "85–94"
	default:
		return "95+"
	}
}

// estimateDOB approximates date of birth as June 15 of the assessment year
// minus age. It is a mid-year approximation for display, not a real DOB.
func estimateDOB(age int, assessedAt time.Time, hasDate bool) string {
	if age <= 0 || age > maxPlausibleAge || !hasDate {
		return FieldUnavailable
	}
	dob := time.Date(assessedAt.Year()-age, time.June, 15, 0, 0, 0, 0, time.UTC)
	return dob.Format(dateLongLayout)
}

func parseAssessmentDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func orUnavailable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return FieldUnavailable
	}
	return s
}
