package report

import (
	"testing"

	"github.com/clearfield-health/cogreport/internal/assessment"
)

func TestScoreBarFillAndTicks(t *testing.T) {
	bar := ScoreBar{Current: 6, Total: 8}
	if got := bar.FillPercent(); got != 75 {
		t.Fatalf("fill = %v, want 75", got)
	}
	ticks := bar.Ticks()
	if len(ticks) != 9 {
		t.Fatalf("tick count = %d, want 9", len(ticks))
	}
	if ticks[0] != 0 || ticks[8] != 8 {
		t.Fatalf("ticks span %d..%d, want 0..8", ticks[0], ticks[8])
	}
}

func TestScoreBarZeroTotalGuard(t *testing.T) {
	bar := ScoreBar{Current: 3, Total: 0}
	if got := bar.FillPercent(); got != 0 {
		t.Fatalf("fill with zero total = %v, want 0", got)
	}
	if got := len(bar.Ticks()); got != 1 {
		t.Fatalf("ticks with zero total = %d, want 1", got)
	}
}

func TestScoreBarClampsOverflow(t *testing.T) {
	bar := ScoreBar{Current: 12, Total: 8}
	if got := bar.FillPercent(); got != 100 {
		t.Fatalf("fill = %v, want clamp to 100", got)
	}
}

func TestStyleForScoreThreeWay(t *testing.T) {
	one, zero := 1, 0
	if got := StyleForScore(&one); got != StylePositive {
		t.Fatalf("score 1 = %q, want positive", got)
	}
	if got := StyleForScore(&zero); got != StyleAlert {
		t.Fatalf("score 0 = %q, want alert", got)
	}
	if got := StyleForScore(nil); got != StyleNoData {
		t.Fatalf("nil score = %q, want nodata", got)
	}
	if StylePositive == StyleAlert || StyleAlert == StyleNoData || StylePositive == StyleNoData {
		t.Fatal("styles must be distinct")
	}
}

func TestScoreLabel(t *testing.T) {
	if got := ScoreLabel(nil); got != "No score" {
		t.Fatalf("nil score label = %q", got)
	}
	one := 1
	if got := ScoreLabel(&one); got != "Score: 1" {
		t.Fatalf("score label = %q", got)
	}
}

func TestNewTableStatusColumnCentered(t *testing.T) {
	table := NewTable([]string{"Domain", "Percentile", "Status"}, nil)
	if table.Columns[0].Align != AlignLeft || table.Columns[1].Align != AlignLeft {
		t.Fatal("non-status columns must be left-aligned")
	}
	if table.Columns[2].Align != AlignCenter {
		t.Fatal("status column must be center-aligned")
	}
}

func TestReferenceTableClassify(t *testing.T) {
	ref := DefaultReferenceTable()
	if got := ref.Classify(assessment.DomainScore{DomainName: "Memory", Percentile: 8}); got != assessment.StatusConcern {
		t.Fatalf("8th percentile = %q, want concern", got)
	}
	if got := ref.Classify(assessment.DomainScore{DomainName: "Memory", Percentile: 16}); got != assessment.StatusPreserved {
		t.Fatalf("16th percentile = %q, want preserved", got)
	}
}

func TestReferenceTableRecordStatusWins(t *testing.T) {
	ref := DefaultReferenceTable()
	d := assessment.DomainScore{DomainName: "Memory", Percentile: 60, Status: assessment.StatusConcern}
	if got := ref.Classify(d); got != assessment.StatusConcern {
		t.Fatalf("explicit record status overridden: got %q", got)
	}
}

func TestReferenceTablePerDomainCutoff(t *testing.T) {
	ref := ReferenceTable{DefaultCutoff: 16, Cutoffs: map[string]int{"Attention": 25}}
	d := assessment.DomainScore{DomainName: "Attention", Percentile: 20}
	if got := ref.Classify(d); got != assessment.StatusConcern {
		t.Fatalf("per-domain cutoff not applied: got %q", got)
	}
}
