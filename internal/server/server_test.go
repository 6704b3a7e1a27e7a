package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clearfield-health/cogreport/internal/assessment"
	"github.com/clearfield-health/cogreport/internal/report"
	"github.com/clearfield-health/cogreport/internal/store"
)

type fakeRecords struct {
	mu          sync.Mutex
	assessments map[string]assessment.RawAssessment
	bundles     map[string]assessment.QuestionBundle
	generations []store.Generation
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{
		assessments: map[string]assessment.RawAssessment{},
		bundles:     map[string]assessment.QuestionBundle{},
	}
}

func (f *fakeRecords) GetAssessment(id string) (assessment.RawAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.assessments[id]
	if !ok {
		return assessment.RawAssessment{}, store.ErrNotFound
	}
	return raw, nil
}

func (f *fakeRecords) GetQuestionBundle(id string) (assessment.QuestionBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bundles[id]
	if !ok {
		return assessment.QuestionBundle{}, store.ErrNotFound
	}
	return b, nil
}

func (f *fakeRecords) LogGeneration(g store.Generation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generations = append(f.generations, g)
	return nil
}

func (f *fakeRecords) ListGenerations(id string) ([]store.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Generation
	for _, g := range f.generations {
		if g.AssessmentID == id {
			out = append(out, g)
		}
	}
	return out, nil
}

type stubRenderer struct {
	delay time.Duration
}

func (r stubRenderer) Render(ctx context.Context, doc report.Document) ([]byte, error) {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []byte("%PDF-1.4 stub"), nil
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
}

func testHandler(records Records, renderer stubRenderer) http.Handler {
	return newServer(records, renderer, zerolog.Nop(), fixedClock)
}

func seedRecords() *fakeRecords {
	f := newFakeRecords()
	one := 1
	f.assessments["asmt-001"] = assessment.RawAssessment{
		ID:             "asmt-001",
		PatientName:    "Margaret Hale",
		Age:            72,
		Gender:         "Female",
		AssessmentDate: "2024-03-01",
		BatchCall:      assessment.BatchCallData{BatchCallID: "call-77"},
	}
	f.bundles["call-77"] = assessment.QuestionBundle{
		QuestionResponses: []assessment.QuestionResponse{
			{QuestionCode: "Q1", QuestionText: "What year is it?", Response: "2024", Score: &one},
		},
		TotalQuestions: 1,
		Answered:       1,
	}
	return f
}

func TestGetAssessmentEnvelope(t *testing.T) {
	h := testHandler(seedRecords(), stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/request-assessments/asmt-001", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Success bool                     `json:"success"`
		Data    assessment.RawAssessment `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || payload.Data.PatientName != "Margaret Hale" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestGetAssessmentNotFound(t *testing.T) {
	h := testHandler(newFakeRecords(), stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/request-assessments/missing", nil))
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestGetQuestionBundle(t *testing.T) {
	h := testHandler(seedRecords(), stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/request-assessments/questions/call-77", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "What year is it?") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestReportPreview(t *testing.T) {
	h := testHandler(seedRecords(), stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/asmt-001/report", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	for _, needle := range []string{"Margaret Hale", "65–74", "Mar 1, 2024", "<details"} {
		if !strings.Contains(body, needle) {
			t.Fatalf("preview missing %q", needle)
		}
	}
}

func TestReportPreviewRefusedWhenRecordMissing(t *testing.T) {
	h := testHandler(newFakeRecords(), stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/nope/report", nil))
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestReportPDFDownload(t *testing.T) {
	records := seedRecords()
	h := testHandler(records, stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/asmt-001/report.pdf", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "Cognitive_Assessment_Report_Margaret_Hale_2024-03-05.pdf") {
		t.Fatalf("disposition = %q", cd)
	}
	if len(records.generations) != 1 {
		t.Fatalf("generation log entries = %d, want 1", len(records.generations))
	}
}

func TestReportPDFMissingBundleIsPartialData(t *testing.T) {
	records := seedRecords()
	delete(records.bundles, "call-77")
	h := testHandler(records, stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/asmt-001/report.pdf", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200 despite missing transcript", rec.Code)
	}
}

func TestConcurrentPDFRequestsSingleFlight(t *testing.T) {
	h := testHandler(seedRecords(), stubRenderer{delay: 200 * time.Millisecond})

	codes := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/asmt-001/report.pdf", nil))
			codes <- rec.Code
		}()
		// Stagger so the second request lands while the first renders.
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()
	close(codes)

	var ok, conflict int
	for c := range codes {
		switch c {
		case 200:
			ok++
		case 409:
			conflict++
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("got %d ok / %d conflict, want exactly one of each", ok, conflict)
	}
}

func TestGenerationsEndpoint(t *testing.T) {
	records := seedRecords()
	h := testHandler(records, stubRenderer{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/asmt-001/report.pdf", nil))
	if rec.Code != 200 {
		t.Fatalf("pdf status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/asmt-001/generations", nil))
	if rec.Code != 200 {
		t.Fatalf("generations status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Cognitive_Assessment_Report_Margaret_Hale") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := testHandler(seedRecords(), stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/request-assessments/asmt-001", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(newFakeRecords(), stubRenderer{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
}
