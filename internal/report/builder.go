package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clearfield-health/cogreport/internal/assessment"
)

// BuildInput carries everything a document build needs. Builds are pure:
// the same input produces the same section tree, and nothing is shared
// between generations.
type BuildInput struct {
	Patient    assessment.PatientViewModel
	Domains    []assessment.DomainScore
	Screenings []assessment.ScreeningScore
	IADL       *assessment.IADLScore
	Responses  []assessment.QuestionResponse
	Reference  ReferenceTable
}

// BuildDocument assembles the fixed 14-page report. The page list is
// hard-coded: the document is a versioned clinical artifact and its shape
// does not vary with input, only the values bound into it do. The single
// exception is the transcript card list on page 11, which grows with the
// number of recorded questions.
func BuildDocument(in BuildInput) Document {
	if in.Reference.DefaultCutoff == 0 && in.Reference.Cutoffs == nil {
		in.Reference = DefaultReferenceTable()
	}
	concern, preserved := partitionDomains(in.Domains, in.Reference)

	pages := []Page{
		buildPatientDetailsPage(in),
		buildAboutPage(),
		buildDomainOverviewPage(in),
		buildConcernPage(concern),
		buildPreservedPage(preserved),
		buildDomainDetailPage(),
		buildIADLPage(in.IADL),
		buildScreeningPage("Mood Screening", assessment.InstrumentGDS15, assessment.GDS15Max, contentGDSIntro, in.Screenings),
		buildScreeningPage("Anxiety Screening", assessment.InstrumentGAD7, assessment.GAD7Max, contentGADIntro, in.Screenings),
		buildIntegratedSummaryPage(),
		buildGlossaryPage(in.Responses),
		buildConsiderationsPage(),
		buildNextStepsPage(),
		buildReferencesPage(),
	}
	for i := range pages {
		pages[i].Number = i + 1
	}
	return Document{Patient: in.Patient, Pages: pages}
}

func partitionDomains(domains []assessment.DomainScore, ref ReferenceTable) (concern, preserved []DomainCard) {
	for _, d := range domains {
		card := DomainCard{
			Name:        d.DomainName,
			Percentile:  d.Percentile,
			Status:      ref.Classify(d),
			Description: d.Description,
			Bar:         ScoreBar{Label: d.DomainName, Current: d.Percentile, Total: 100},
		}
		if card.Status == assessment.StatusConcern {
			concern = append(concern, card)
		} else {
			preserved = append(preserved, card)
		}
	}
	return concern, preserved
}

func buildPatientDetailsPage(in BuildInput) Page {
	p := in.Patient
	return Page{
		Title: "Patient Details",
		Sections: []Section{
			{
				Kind:  KindKeyValues,
				Title: "Patient Details",
				KeyValues: []KeyValue{
					{Key: "Name", Value: p.Name},
					{Key: "Date of Birth", Value: p.DateOfBirth},
					{Key: "Gender", Value: p.Gender},
					{Key: "Group", Value: p.AgeGroup},
					{Key: "Assessment Date", Value: p.AssessmentDate},
					{Key: "Assessment ID", Value: p.AssessmentID},
					{Key: "Assigning Physician", Value: p.AssigningPhysician},
					{Key: "Report Generated", Value: p.ReportGenerated},
				},
			},
			{Kind: KindNarrative, Title: "Clinical Triage Summary", Markdown: content(contentTriageSummary)},
			{
				Kind:     KindTable,
				Title:    "DSM-5 Neurocognitive Criteria",
				Markdown: content(contentDSM5Intro),
				Table:    NewTable([]string{"Criterion", "Description", "Status"}, dsm5Criteria),
			},
		},
	}
}

func buildAboutPage() Page {
	return Page{
		Title: "About This Assessment",
		Sections: []Section{
			{Kind: KindNarrative, Title: "About This Assessment", Markdown: content(contentAboutAssessment)},
			{Kind: KindNarrative, Title: "How To Read This Report", Markdown: content(contentHowToRead)},
		},
	}
}

func buildDomainOverviewPage(in BuildInput) Page {
	rows := make([][]string, 0, len(in.Domains))
	for _, d := range in.Domains {
		status := string(in.Reference.Classify(d))
		rows = append(rows, []string{d.DomainName, ordinalPercentile(d.Percentile), status})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{assessment.FieldUnavailable, assessment.FieldUnavailable, assessment.FieldUnavailable})
	}
	return Page{
		Title: "Cognitive Domain Overview",
		Sections: []Section{
			{
				Kind:     KindTable,
				Title:    "Cognitive Domain Overview",
				Markdown: content(contentDomainOverviewIntro),
				Table:    NewTable([]string{"Domain", "Percentile", "Status"}, rows),
			},
		},
	}
}

func buildConcernPage(cards []DomainCard) Page {
	sections := []Section{
		{Kind: KindNarrative, Title: "Domains of Concern", Markdown: content(contentConcernIntro)},
	}
	if len(cards) == 0 {
		sections = append(sections, Section{
			Kind:     KindNarrative,
			Title:    "Findings",
			Markdown: "No domains scored below the clinical reference cutoff on this screen.",
		})
	} else {
		sections = append(sections, Section{Kind: KindDomainCards, Title: "Findings", Domains: cards})
	}
	return Page{Title: "Domains of Concern", Sections: sections}
}

func buildPreservedPage(cards []DomainCard) Page {
	sections := []Section{
		{Kind: KindNarrative, Title: "Preserved Domains", Markdown: content(contentPreservedIntro)},
	}
	if len(cards) == 0 {
		sections = append(sections, Section{
			Kind:     KindNarrative,
			Title:    "Findings",
			Markdown: "No domains scored at or above the clinical reference cutoff on this screen.",
		})
	} else {
		sections = append(sections, Section{Kind: KindDomainCards, Title: "Findings", Domains: cards})
	}
	return Page{Title: "Preserved Domains", Sections: sections}
}

func buildDomainDetailPage() Page {
	return Page{
		Title: "Interpreting Domain Results",
		Sections: []Section{
			{Kind: KindNarrative, Title: "Interpreting Domain Results", Markdown: content(contentDomainDetail)},
		},
	}
}

func buildIADLPage(iadl *assessment.IADLScore) Page {
	sections := []Section{
		{Kind: KindNarrative, Title: "Functional Status (IADL)", Markdown: content(contentIADLIntro)},
	}
	if iadl == nil {
		sections = append(sections, Section{
			Kind:     KindNarrative,
			Title:    "IADL Score",
			Markdown: "Functional status data was not available for this assessment.",
		})
	} else {
		total := iadl.Total
		if total == 0 {
			total = assessment.IADLTotal
		}
		sections = append(sections,
			Section{
				Kind:  KindScoreBar,
				Title: "IADL Score",
				Bar:   &ScoreBar{Label: fmt.Sprintf("Independent in %d of %d areas", iadl.Score, total), Current: iadl.Score, Total: total},
			},
			Section{Kind: KindList, Title: "Independent Areas", Items: orNoneRecorded(iadl.IndependentAreas)},
			Section{Kind: KindList, Title: "Areas Needing Support", Items: orNoneRecorded(iadl.SupportAreas)},
		)
	}
	return Page{Title: "Functional Status", Sections: sections}
}

func buildScreeningPage(title, instrument string, max int, intro contentKey, screenings []assessment.ScreeningScore) Page {
	sections := []Section{
		{Kind: KindNarrative, Title: title, Markdown: content(intro)},
	}
	score, ok := findScreening(screenings, instrument)
	if !ok {
		sections = append(sections, Section{
			Kind:     KindNarrative,
			Title:    instrument + " Result",
			Markdown: fmt.Sprintf("%s was not completed for this assessment.", instrument),
		})
		return Page{Title: title, Sections: sections}
	}
	// Instrument maxima are fixed by the instrument, not by the record; a
	// mismatched max on the record is corrected here.
	raw := clamp(score.Raw, 0, max)
	sections = append(sections,
		Section{
			Kind:  KindScoreBar,
			Title: instrument + " Result",
			Bar:   &ScoreBar{Label: fmt.Sprintf("%s: %d / %d", instrument, raw, max), Current: raw, Total: max},
		},
		Section{
			Kind:  KindKeyValues,
			Title: "Interpretation",
			KeyValues: []KeyValue{
				{Key: "Instrument", Value: instrument},
				{Key: "Raw Score", Value: strconv.Itoa(raw)},
				{Key: "Maximum", Value: strconv.Itoa(max)},
				{Key: "Severity", Value: orUnavailable(score.SeverityLabel)},
			},
		},
	)
	return Page{Title: title, Sections: sections}
}

func buildIntegratedSummaryPage() Page {
	return Page{
		Title: "Integrated Clinical Summary",
		Sections: []Section{
			{Kind: KindNarrative, Title: "Integrated Clinical Summary", Markdown: content(contentIntegratedSummary)},
		},
	}
}

func buildGlossaryPage(responses []assessment.QuestionResponse) Page {
	return Page{
		Title: "Glossary and Interview Record",
		Sections: []Section{
			{Kind: KindKeyValues, Title: "Cognitive Domain Glossary", KeyValues: domainGlossary},
			{
				Kind:     KindResponseCards,
				Title:    "Question and Response Record",
				Markdown: content(contentTranscriptIntro),
				Cards:    buildResponseCards(responses),
			},
		},
	}
}

func buildResponseCards(responses []assessment.QuestionResponse) []ResponseCard {
	cards := make([]ResponseCard, 0, len(responses))
	for _, q := range responses {
		resp := strings.TrimSpace(q.Response)
		if resp == "" {
			resp = "No response recorded"
		}
		cards = append(cards, ResponseCard{
			Code:     q.QuestionCode,
			Question: q.QuestionText,
			Response: resp,
			Score:    ScoreLabel(q.Score),
			Style:    StyleForScore(q.Score),
		})
	}
	return cards
}

func buildConsiderationsPage() Page {
	return Page{
		Title: "Diagnostic Considerations",
		Sections: []Section{
			{Kind: KindNarrative, Title: "Diagnostic Considerations", Markdown: content(contentDSM5Considerations)},
		},
	}
}

func buildNextStepsPage() Page {
	return Page{
		Title: "Next Steps and Care Planning",
		Sections: []Section{
			{Kind: KindNarrative, Title: "Next Steps and Care Planning", Markdown: content(contentNextSteps)},
		},
	}
}

func buildReferencesPage() Page {
	return Page{
		Title: "Scope, Limitations, and References",
		Sections: []Section{
			{Kind: KindNarrative, Title: "Scope, Limitations, and References", Markdown: content(contentDisclaimerFull)},
		},
	}
}

func findScreening(screenings []assessment.ScreeningScore, instrument string) (assessment.ScreeningScore, bool) {
	for _, s := range screenings {
		if s.InstrumentName == instrument {
			return s, true
		}
	}
	return assessment.ScreeningScore{}, false
}

func ordinalPercentile(p int) string {
	suffix := "th"
	switch p % 100 {
	case 11, 12, 13:
	default:
		switch p % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", p, suffix)
}

func orNoneRecorded(items []string) []string {
	if len(items) == 0 {
		return []string{"None recorded"}
	}
	return items
}

func orUnavailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return assessment.FieldUnavailable
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
