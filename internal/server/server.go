// Package server exposes the assessment data contracts and the report
// endpoints over HTTP. Responses follow the portal envelope: {success, data}
// on success, {success:false, error} otherwise.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/clearfield-health/cogreport/internal/assessment"
	"github.com/clearfield-health/cogreport/internal/export"
	"github.com/clearfield-health/cogreport/internal/render"
	"github.com/clearfield-health/cogreport/internal/report"
	"github.com/clearfield-health/cogreport/internal/store"
)

// Records is the storage surface the server needs. *store.Store satisfies
// it; tests substitute an in-memory fake.
type Records interface {
	GetAssessment(id string) (assessment.RawAssessment, error)
	GetQuestionBundle(batchCallID string) (assessment.QuestionBundle, error)
	LogGeneration(g store.Generation) error
	ListGenerations(assessmentID string) ([]store.Generation, error)
}

type Server struct {
	records   Records
	encoder   *export.Encoder
	reference report.ReferenceTable
	log       zerolog.Logger
	now       func() time.Time
}

func NewServer(records Records, renderer render.DocumentRenderer, logger zerolog.Logger) http.Handler {
	return newServer(records, renderer, logger, time.Now)
}

func newServer(records Records, renderer render.DocumentRenderer, logger zerolog.Logger, now func() time.Time) http.Handler {
	s := &Server{
		records:   records,
		encoder:   export.NewEncoder(renderer),
		reference: report.DefaultReferenceTable(),
		log:       logger,
		now:       now,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/request-assessments/questions/", s.handleQuestions)
	mux.HandleFunc("/api/request-assessments/", s.handleAssessment)
	mux.HandleFunc("/api/assessments/", s.handleReportRoutes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, 200, map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/request-assessments/"), "/")
	if id == "" {
		writeError(w, 400, "assessment id is required")
		return
	}
	raw, err := s.records.GetAssessment(id)
	if err != nil {
		s.respondStoreError(w, err, "assessment")
		return
	}
	writeData(w, raw)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	callID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/request-assessments/questions/"), "/")
	if callID == "" {
		writeError(w, 400, "call id is required")
		return
	}
	bundle, err := s.records.GetQuestionBundle(callID)
	if err != nil {
		s.respondStoreError(w, err, "question bundle")
		return
	}
	writeData(w, bundle)
}

// handleReportRoutes serves /api/assessments/{id}/report,
// /api/assessments/{id}/report.pdf and /api/assessments/{id}/generations.
func (s *Server) handleReportRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/assessments/"), "/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, 400, "path must be /api/assessments/{id}/report[.pdf]")
		return
	}
	id := parts[0]
	switch parts[1] {
	case "report":
		s.serveReportPreview(w, r, id)
	case "report.pdf":
		s.serveReportPDF(w, r, id)
	case "generations":
		s.serveGenerations(w, id)
	default:
		writeError(w, 404, "unknown report resource")
	}
}

func (s *Server) serveReportPreview(w http.ResponseWriter, r *http.Request, id string) {
	doc, _, err := s.buildDocument(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "assessment")
		return
	}
	body, err := render.RenderHTML(doc, render.ModePreview)
	if err != nil {
		s.log.Error().Err(err).Str("assessment_id", id).Msg("render preview failed")
		writeError(w, 500, "failed to render report preview")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(200)
	_, _ = w.Write([]byte(render.BuildPage(report.BrandSubtitle, body)))
}

func (s *Server) serveReportPDF(w http.ResponseWriter, r *http.Request, id string) {
	started := s.now()
	doc, raw, err := s.buildDocument(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "assessment")
		return
	}

	pdf, err := s.encoder.Export(r.Context(), doc)
	if errors.Is(err, export.ErrExportInFlight) {
		// A generation for this assessment is already running; the second
		// request is dropped, not queued.
		writeError(w, 409, "report generation already in progress")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("assessment_id", id).Msg("pdf export failed")
		writeError(w, 500, "failed to generate pdf")
		return
	}

	filename := export.Filename(raw.PatientName, s.now())
	if err := s.records.LogGeneration(store.Generation{
		GenerationID: uuid.NewString(),
		AssessmentID: id,
		Filename:     filename,
		DurationMS:   s.now().Sub(started).Milliseconds(),
		GeneratedAt:  s.now(),
	}); err != nil {
		// The artifact is already rendered; a failed audit write must not
		// block the download.
		s.log.Warn().Err(err).Str("assessment_id", id).Msg("generation log write failed")
	}

	s.log.Info().Str("assessment_id", id).Str("filename", filename).
		Int("bytes", len(pdf)).Msg("report generated")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(200)
	_, _ = w.Write(pdf)
}

func (s *Server) serveGenerations(w http.ResponseWriter, id string) {
	gens, err := s.records.ListGenerations(id)
	if err != nil {
		s.respondStoreError(w, err, "generation log")
		return
	}
	if gens == nil {
		gens = []store.Generation{}
	}
	writeData(w, gens)
}

// buildDocument fetches the record, normalizes it, and assembles the section
// tree. A missing question bundle is partial data, not an error: the report
// renders with an empty transcript record.
func (s *Server) buildDocument(ctx context.Context, id string) (report.Document, assessment.RawAssessment, error) {
	_, span := otel.Tracer("cogreport/server").Start(ctx, "report.build")
	defer span.End()

	raw, err := s.records.GetAssessment(id)
	if err != nil {
		return report.Document{}, assessment.RawAssessment{}, err
	}

	var responses []assessment.QuestionResponse
	if raw.BatchCall.BatchCallID != "" {
		bundle, err := s.records.GetQuestionBundle(raw.BatchCall.BatchCallID)
		switch {
		case err == nil:
			responses = bundle.QuestionResponses
		case errors.Is(err, store.ErrNotFound):
			// in-progress call, nothing recorded yet
		default:
			return report.Document{}, assessment.RawAssessment{}, err
		}
	}

	doc := report.BuildDocument(report.BuildInput{
		Patient:    assessment.Normalize(raw, s.now()),
		Domains:    raw.DomainScores,
		Screenings: raw.Screenings,
		IADL:       raw.IADL,
		Responses:  responses,
		Reference:  s.reference,
	})
	return doc, raw, nil
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, 404, what+" not found")
		return
	}
	s.log.Error().Err(err).Msg("store read failed")
	writeError(w, 503, "data unavailable")
}
