// Package store persists assessment records and the report generation log in
// SQLite. Records arrive as JSON from the intake portal and are stored
// write-through; structured sub-documents (domain scores, screenings,
// question responses) are kept as JSON columns since nothing queries inside
// them.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/clearfield-health/cogreport/internal/assessment"
)

var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	id              TEXT PRIMARY KEY,
	patient_name    TEXT NOT NULL DEFAULT '',
	age             INTEGER NOT NULL DEFAULT 0,
	gender          TEXT NOT NULL DEFAULT '',
	assessment_date TEXT NOT NULL DEFAULT '',
	physician_name  TEXT NOT NULL DEFAULT '',
	batch_call_id   TEXT NOT NULL DEFAULT '',
	domain_scores   TEXT NOT NULL DEFAULT '[]',
	screenings      TEXT NOT NULL DEFAULT '[]',
	iadl            TEXT
);

CREATE TABLE IF NOT EXISTS question_bundles (
	batch_call_id      TEXT PRIMARY KEY,
	question_responses TEXT NOT NULL DEFAULT '[]',
	transcript         TEXT NOT NULL DEFAULT '',
	postcall_analysis  TEXT NOT NULL DEFAULT '',
	total_questions    INTEGER NOT NULL DEFAULT 0,
	answered           INTEGER NOT NULL DEFAULT 0,
	not_recorded       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS generation_log (
	generation_id TEXT PRIMARY KEY,
	assessment_id TEXT NOT NULL,
	filename      TEXT NOT NULL,
	duration_ms   INTEGER NOT NULL,
	generated_at  TEXT NOT NULL
);
`

type Store struct {
	db *sqlx.DB
}

func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PutAssessment(raw assessment.RawAssessment) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO assessments
		(id, patient_name, age, gender, assessment_date, physician_name, batch_call_id, domain_scores, screenings, iadl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		raw.ID,
		raw.PatientName,
		raw.Age,
		raw.Gender,
		raw.AssessmentDate,
		raw.AssigningPhysician.Name,
		raw.BatchCall.BatchCallID,
		marshalJSON(raw.DomainScores),
		marshalJSON(raw.Screenings),
		nullableJSON(raw.IADL),
	)
	return err
}

func (s *Store) GetAssessment(id string) (assessment.RawAssessment, error) {
	row := s.db.QueryRow(`SELECT id, patient_name, age, gender, assessment_date, physician_name, batch_call_id, domain_scores, screenings, iadl
		FROM assessments WHERE id = ?`, id)

	var raw assessment.RawAssessment
	var domainsJSON, screeningsJSON string
	var iadlJSON *string
	err := row.Scan(&raw.ID, &raw.PatientName, &raw.Age, &raw.Gender, &raw.AssessmentDate,
		&raw.AssigningPhysician.Name, &raw.BatchCall.BatchCallID, &domainsJSON, &screeningsJSON, &iadlJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return assessment.RawAssessment{}, ErrNotFound
		}
		return assessment.RawAssessment{}, err
	}
	_ = json.Unmarshal([]byte(domainsJSON), &raw.DomainScores)
	_ = json.Unmarshal([]byte(screeningsJSON), &raw.Screenings)
	if iadlJSON != nil && *iadlJSON != "" {
		_ = json.Unmarshal([]byte(*iadlJSON), &raw.IADL)
	}
	return raw, nil
}

func (s *Store) PutQuestionBundle(batchCallID string, b assessment.QuestionBundle) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO question_bundles
		(batch_call_id, question_responses, transcript, postcall_analysis, total_questions, answered, not_recorded)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		batchCallID,
		marshalJSON(b.QuestionResponses),
		b.ConversationTranscript,
		b.PostcallAnalysis,
		b.TotalQuestions,
		b.Answered,
		b.NotRecorded,
	)
	return err
}

func (s *Store) GetQuestionBundle(batchCallID string) (assessment.QuestionBundle, error) {
	row := s.db.QueryRow(`SELECT question_responses, transcript, postcall_analysis, total_questions, answered, not_recorded
		FROM question_bundles WHERE batch_call_id = ?`, batchCallID)

	var b assessment.QuestionBundle
	var responsesJSON string
	err := row.Scan(&responsesJSON, &b.ConversationTranscript, &b.PostcallAnalysis, &b.TotalQuestions, &b.Answered, &b.NotRecorded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return assessment.QuestionBundle{}, ErrNotFound
		}
		return assessment.QuestionBundle{}, err
	}
	_ = json.Unmarshal([]byte(responsesJSON), &b.QuestionResponses)
	return b, nil
}

// Generation is one row of the PDF generation audit trail.
type Generation struct {
	GenerationID string    `db:"generation_id" json:"generationId"`
	AssessmentID string    `db:"assessment_id" json:"assessmentId"`
	Filename     string    `db:"filename" json:"filename"`
	DurationMS   int64     `db:"duration_ms" json:"durationMs"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

func (s *Store) LogGeneration(g Generation) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO generation_log
		(generation_id, assessment_id, filename, duration_ms, generated_at)
		VALUES (?, ?, ?, ?, ?)`,
		g.GenerationID, g.AssessmentID, g.Filename, g.DurationMS,
		g.GeneratedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *Store) ListGenerations(assessmentID string) ([]Generation, error) {
	rows, err := s.db.Query(`SELECT generation_id, assessment_id, filename, duration_ms, generated_at
		FROM generation_log WHERE assessment_id = ? ORDER BY generated_at`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		var generatedAt string
		if err := rows.Scan(&g.GenerationID, &g.AssessmentID, &g.Filename, &g.DurationMS, &generatedAt); err != nil {
			return nil, err
		}
		g.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generatedAt)
		out = append(out, g)
	}
	return out, rows.Err()
}

// SeedFile is the JSON shape ImportJSON accepts: assessment records plus
// their question bundles keyed by batch call ID.
type SeedFile struct {
	Assessments     []assessment.RawAssessment           `json:"assessments"`
	QuestionBundles map[string]assessment.QuestionBundle `json:"questionBundles"`
}

// ImportJSON loads a seed file into the store, replacing any records with
// matching IDs.
func (s *Store) ImportJSON(path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed SeedFile
	if err := json.Unmarshal(blob, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}
	for _, raw := range seed.Assessments {
		if err := s.PutAssessment(raw); err != nil {
			return fmt.Errorf("import assessment %s: %w", raw.ID, err)
		}
	}
	for callID, bundle := range seed.QuestionBundles {
		if err := s.PutQuestionBundle(callID, bundle); err != nil {
			return fmt.Errorf("import question bundle %s: %w", callID, err)
		}
	}
	return nil
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func nullableJSON(iadl *assessment.IADLScore) *string {
	if iadl == nil {
		return nil
	}
	b, err := json.Marshal(iadl)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
