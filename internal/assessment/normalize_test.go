package assessment

import (
	"testing"
	"time"
)

var testClock = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

func completeRecord() RawAssessment {
	return RawAssessment{
		ID:                 "asmt-001",
		PatientName:        "Margaret Hale",
		Age:                72,
		Gender:             "Female",
		AssessmentDate:     "2024-03-01",
		AssigningPhysician: Physician{Name: "Dr. Thornton"},
	}
}

func TestNormalizeCompleteRecord(t *testing.T) {
	vm := Normalize(completeRecord(), testClock)
	if vm.Name != "Margaret Hale" {
		t.Fatalf("name: got %q", vm.Name)
	}
	if vm.AgeGroup != "65–74" {
		t.Fatalf("age group: got %q, want 65–74", vm.AgeGroup)
	}
	if vm.AssessmentDate != "Mar 1, 2024" {
		t.Fatalf("short date: got %q, want Mar 1, 2024", vm.AssessmentDate)
	}
	if vm.AssessmentDateLong != "March 1, 2024" {
		t.Fatalf("long date: got %q, want March 1, 2024", vm.AssessmentDateLong)
	}
	if vm.DateOfBirth != "June 15, 1952" {
		t.Fatalf("estimated dob: got %q, want June 15, 1952", vm.DateOfBirth)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := completeRecord()
	a := Normalize(raw, testClock)
	b := Normalize(raw, testClock)
	if a != b {
		t.Fatalf("normalize not idempotent: %+v vs %+v", a, b)
	}
}

func TestNormalizeTotalOverPartialInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RawAssessment)
		check  func(t *testing.T, vm PatientViewModel)
	}{
		{"missing age", func(r *RawAssessment) { r.Age = 0 }, func(t *testing.T, vm PatientViewModel) {
			if vm.AgeGroup != FieldUnavailable || vm.DateOfBirth != FieldUnavailable {
				t.Fatalf("want N/A age group and dob, got %q / %q", vm.AgeGroup, vm.DateOfBirth)
			}
		}},
		{"negative age", func(r *RawAssessment) { r.Age = -5 }, func(t *testing.T, vm PatientViewModel) {
			if vm.AgeGroup != FieldUnavailable {
				t.Fatalf("want N/A, got %q", vm.AgeGroup)
			}
		}},
		{"implausible age", func(r *RawAssessment) { r.Age = 200 }, func(t *testing.T, vm PatientViewModel) {
			if vm.AgeGroup != FieldUnavailable {
				t.Fatalf("want N/A, got %q", vm.AgeGroup)
			}
		}},
		{"missing assessment date", func(r *RawAssessment) { r.AssessmentDate = "" }, func(t *testing.T, vm PatientViewModel) {
			if vm.AssessmentDate != FieldUnavailable || vm.DateOfBirth != FieldUnavailable {
				t.Fatalf("want N/A date and dob, got %q / %q", vm.AssessmentDate, vm.DateOfBirth)
			}
		}},
		{"garbage date", func(r *RawAssessment) { r.AssessmentDate = "not-a-date" }, func(t *testing.T, vm PatientViewModel) {
			if vm.AssessmentDate != FieldUnavailable {
				t.Fatalf("want N/A, got %q", vm.AssessmentDate)
			}
		}},
		{"missing name and gender", func(r *RawAssessment) { r.PatientName = ""; r.Gender = "  " }, func(t *testing.T, vm PatientViewModel) {
			if vm.Name != FieldUnavailable || vm.Gender != FieldUnavailable {
				t.Fatalf("want N/A name and gender, got %q / %q", vm.Name, vm.Gender)
			}
		}},
		{"empty record", func(r *RawAssessment) { *r = RawAssessment{} }, func(t *testing.T, vm PatientViewModel) {
			if vm.AssessmentID != FieldUnavailable {
				t.Fatalf("want N/A assessment id, got %q", vm.AssessmentID)
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := completeRecord()
			tc.mutate(&raw)
			tc.check(t, Normalize(raw, testClock))
		})
	}
}

func TestAgeGroupBoundaries(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{0, FieldUnavailable},
		{-1, FieldUnavailable},
		{17, "<18"},
		{18, "18–24"},
		{24, "18–24"},
		{25, "25–34"},
		{64, "55–64"},
		{65, "65–74"},
		{74, "65–74"},
		{84, "75–84"},
		{94, "85–94"},
		{95, "95+"},
		{120, "95+"},
		{121, FieldUnavailable},
	}
	for _, tc := range cases {
		if got := AgeGroup(tc.age); got != tc.want {
			t.Errorf("AgeGroup(%d) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestNormalizeAcceptsRFC3339Date(t *testing.T) {
	raw := completeRecord()
	raw.AssessmentDate = "2024-03-01T09:15:00Z"
	vm := Normalize(raw, testClock)
	if vm.AssessmentDate != "Mar 1, 2024" {
		t.Fatalf("got %q, want Mar 1, 2024", vm.AssessmentDate)
	}
}
