// Package report builds the fixed 14-page cognitive assessment document as a
// typed section tree. The tree is the single source both renderers consume,
// so the interactive preview and the printed PDF cannot drift apart.
package report

import (
	"fmt"

	"github.com/clearfield-health/cogreport/internal/assessment"
)

// PageCount is fixed. The document structure is hard-coded by design; it is
// a clinical artifact, not a configurable template.
const PageCount = 14

type Document struct {
	Patient assessment.PatientViewModel
	Pages   []Page
}

type Page struct {
	Number   int
	Title    string
	Sections []Section
}

type SectionKind string

const (
	KindKeyValues     SectionKind = "key-values"
	KindTable         SectionKind = "table"
	KindNarrative     SectionKind = "narrative"
	KindList          SectionKind = "list"
	KindScoreBar      SectionKind = "score-bar"
	KindDomainCards   SectionKind = "domain-cards"
	KindResponseCards SectionKind = "response-cards"
)

// Section is one block on a page: a dark header bar plus a body whose shape
// depends on Kind. Exactly one of the payload fields is populated.
type Section struct {
	Kind      SectionKind
	Title     string
	KeyValues []KeyValue
	Table     *Table
	Markdown  string
	Items     []string
	Bar       *ScoreBar
	Domains   []DomainCard
	Cards     []ResponseCard
}

type KeyValue struct {
	Key   string
	Value string
}

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

type Column struct {
	Name  string
	Align Align
}

type Table struct {
	Columns []Column
	Rows    [][]string
}

// NewTable builds a table from column names. Status columns are centered so
// checkmark and status glyphs read cleanly; everything else stays
// left-aligned.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{Rows: rows}
	for _, name := range columns {
		align := AlignLeft
		if name == "Status" {
			align = AlignCenter
		}
		t.Columns = append(t.Columns, Column{Name: name, Align: align})
	}
	return t
}

// ScoreBar renders a proportional fill over a discrete 0..Total scale.
type ScoreBar struct {
	Label   string
	Current int
	Total   int
}

// FillPercent returns the fill width. A zero or negative total yields an
// empty bar rather than dividing by zero.
func (b ScoreBar) FillPercent() float64 {
	if b.Total <= 0 {
		return 0
	}
	pct := float64(b.Current) / float64(b.Total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Ticks returns the discrete scale labels, 0 through Total inclusive.
func (b ScoreBar) Ticks() []int {
	if b.Total <= 0 {
		return []int{0}
	}
	ticks := make([]int, b.Total+1)
	for i := range ticks {
		ticks[i] = i
	}
	return ticks
}

// ScoreStyle is the three-way visual state of a transcript answer. Absent
// scores are their own state, not an error and not an alert.
type ScoreStyle string

const (
	StylePositive ScoreStyle = "positive"
	StyleAlert    ScoreStyle = "alert"
	StyleNoData   ScoreStyle = "nodata"
)

func StyleForScore(score *int) ScoreStyle {
	switch {
	case score == nil:
		return StyleNoData
	case *score == 0:
		return StyleAlert
	default:
		return StylePositive
	}
}

// ScoreLabel renders the score cell text for a transcript card.
func ScoreLabel(score *int) string {
	if score == nil {
		return "No score"
	}
	return fmt.Sprintf("Score: %d", *score)
}

type ResponseCard struct {
	Code     string
	Question string
	Response string
	Score    string
	Style    ScoreStyle
}

type DomainCard struct {
	Name        string
	Percentile  int
	Status      assessment.DomainStatus
	Description string
	Bar         ScoreBar
}

// ReferenceTable holds the percentile cutoffs used to classify a domain when
// the record carries no explicit status. The cutoffs are clinical reference
// data: they require sign-off before changes, which is why they are a table
// and not a formula.
type ReferenceTable struct {
	DefaultCutoff int
	Cutoffs       map[string]int
}

// DefaultReferenceTable uses a global 16th-percentile cutoff (roughly one
// standard deviation below the mean). TODO: replace the global default with
// per-domain cutoffs once the clinical team signs them off.
func DefaultReferenceTable() ReferenceTable {
	return ReferenceTable{DefaultCutoff: 16}
}

// Classify returns the domain status, preferring the status already carried
// on the record over any computed cutoff.
func (r ReferenceTable) Classify(d assessment.DomainScore) assessment.DomainStatus {
	if d.Status == assessment.StatusConcern || d.Status == assessment.StatusPreserved {
		return d.Status
	}
	cutoff := r.DefaultCutoff
	if c, ok := r.Cutoffs[d.DomainName]; ok {
		cutoff = c
	}
	if d.Percentile < cutoff {
		return assessment.StatusConcern
	}
	return assessment.StatusPreserved
}
