// Package export owns the download side of report generation: deterministic
// filenames and the single-flight gate that keeps a double-click from
// spawning two renders.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/clearfield-health/cogreport/internal/render"
	"github.com/clearfield-health/cogreport/internal/report"
)

// ErrExportInFlight is returned when a generation is already running for the
// same key. The second request is dropped, not queued.
var ErrExportInFlight = errors.New("export already in flight")

const filenamePrefix = "Cognitive_Assessment_Report"

// Filename derives the download name from the patient name and export date:
// whitespace runs collapse to a single underscore, everything outside
// [A-Za-z0-9_] is stripped, and a name that sanitizes to nothing falls back
// to "Report".
func Filename(patientName string, when time.Time) string {
	name := sanitizeName(patientName)
	return fmt.Sprintf("%s_%s_%s.pdf", filenamePrefix, name, when.Format("2006-01-02"))
}

func sanitizeName(name string) string {
	joined := strings.Join(strings.Fields(name), "_")
	var b strings.Builder
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "Report"
	}
	return out
}

// Gate is an explicit single-flight guard, one per key (here: assessment ID).
// Begin reports whether the caller won the slot; losers must not render.
type Gate struct {
	mu   sync.Mutex
	busy map[string]bool
}

func NewGate() *Gate {
	return &Gate{busy: map[string]bool{}}
}

func (g *Gate) Begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[key] {
		return false
	}
	g.busy[key] = true
	return true
}

func (g *Gate) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, key)
}

// Encoder renders a document to PDF bytes behind the single-flight gate.
// It holds no state between exports beyond the gate itself; each call
// rebuilds nothing and leaves nothing behind.
type Encoder struct {
	renderer render.DocumentRenderer
	gate     *Gate
}

func NewEncoder(renderer render.DocumentRenderer) *Encoder {
	return &Encoder{renderer: renderer, gate: NewGate()}
}

// Export renders the document, keyed by assessment ID for the in-flight
// guard. A concurrent export for the same assessment gets
// ErrExportInFlight; the gate is always released, including on render
// failure, so a manual retry works. Filename derivation stays with the
// caller, which holds the raw (un-normalized) patient name.
func (e *Encoder) Export(ctx context.Context, doc report.Document) ([]byte, error) {
	key := doc.Patient.AssessmentID
	if !e.gate.Begin(key) {
		return nil, ErrExportInFlight
	}
	defer e.gate.End(key)

	pdf, err := e.renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}
