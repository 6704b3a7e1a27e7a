package report

// Static clinical copy, keyed by section. The copy is deliberately separated
// from the binding code in builder.go so wording changes never touch layout
// logic. All narrative bodies are GitHub-flavored markdown; the renderers
// convert them at layout time.

const Disclaimer = "This report is generated from a remote cognitive screening " +
	"and is intended to support, not replace, clinical judgment. Screening " +
	"results are not a diagnosis. All findings should be interpreted by a " +
	"qualified clinician in the context of the full patient history."

const BrandName = "Clearfield Health"
const BrandSubtitle = "Cognitive Assessment Report"

type contentKey string

const (
	contentTriageSummary       contentKey = "triage-summary"
	contentDSM5Intro           contentKey = "dsm5-intro"
	contentAboutAssessment     contentKey = "about-assessment"
	contentHowToRead           contentKey = "how-to-read"
	contentDomainOverviewIntro contentKey = "domain-overview-intro"
	contentConcernIntro        contentKey = "concern-intro"
	contentPreservedIntro      contentKey = "preserved-intro"
	contentDomainDetail        contentKey = "domain-detail"
	contentIADLIntro           contentKey = "iadl-intro"
	contentGDSIntro            contentKey = "gds-intro"
	contentGADIntro            contentKey = "gad-intro"
	contentIntegratedSummary   contentKey = "integrated-summary"
	contentTranscriptIntro     contentKey = "transcript-intro"
	contentDSM5Considerations  contentKey = "dsm5-considerations"
	contentNextSteps           contentKey = "next-steps"
	contentDisclaimerFull      contentKey = "disclaimer-full"
)

var staticContent = map[contentKey]string{
	contentTriageSummary: `This assessment was administered as a structured telephone ` +
		`interview covering orientation, memory, attention, language, and executive ` +
		`function, together with standardized mood, anxiety, and functional screens. ` +
		`The triage summary below reflects the pattern of results across those ` +
		`instruments and is intended to guide the ordering clinician toward the ` +
		`appropriate next step: routine monitoring, targeted follow-up, or referral ` +
		`for comprehensive neuropsychological evaluation.`,

	contentDSM5Intro: `The DSM-5 frames neurocognitive disorders around evidence of ` +
		`decline in one or more cognitive domains, corroborated by standardized ` +
		`testing, and the degree to which that decline interferes with independence ` +
		`in everyday activities. The criteria summarized here are reproduced for ` +
		`reference only; this screening does not by itself establish that any ` +
		`criterion is met.`,

	contentAboutAssessment: `## About This Assessment

The cognitive screening battery is delivered as a guided voice conversation.
Each question is scored against standardized criteria at the time of the call,
and domain scores are expressed as percentiles against age-adjusted normative
data. Because the interview is conversational, individual items may be
skipped, declined, or left unscored; those items appear in the transcript
record with an explicit "no score" marker rather than being silently dropped.`,

	contentHowToRead: `## How To Read This Report

- **Percentiles** compare the patient to peers of the same age band. The 50th
  percentile is the population median.
- Domains falling below the clinical reference cutoff are grouped under
  **Domains of Concern**; all others appear under **Preserved Domains**.
- Screening instruments (GDS-15, GAD-7) report a raw score against the
  instrument maximum with a severity label.
- Fields reading **N/A** indicate data that was unavailable when the report
  was generated, not an abnormal result.`,

	contentDomainOverviewIntro: `Scores for each assessed cognitive domain are listed ` +
		`below. Percentiles are age-adjusted. The status column reflects the ` +
		`clinical reference cutoffs in effect at generation time.`,

	contentConcernIntro: `The following domains scored below the clinical reference ` +
		`cutoff. A below-cutoff screening result signals that the domain warrants ` +
		`closer attention; it does not by itself establish impairment.`,

	contentPreservedIntro: `The following domains scored at or above the clinical ` +
		`reference cutoff and are considered preserved on this screen.`,

	contentDomainDetail: `## Interpreting Domain Results

**Memory** items probe immediate and delayed recall of structured material.
Delayed recall is the most sensitive single indicator in this battery.

**Attention** items require sustained focus across a multi-step instruction;
low scores are common in both primary attentional disorders and mood-related
presentations.

**Language** items assess naming, fluency, and comprehension. Isolated
low language scores should prompt review of hearing and line quality before
clinical interpretation.

**Executive function** items involve set-shifting and abstraction. Scores in
this domain are the most sensitive to fatigue and interview conditions.

**Orientation** items cover person, place, and time, and anchor the rest of
the battery; a low orientation score should be weighed heavily.`,

	contentIADLIntro: `Instrumental Activities of Daily Living measure the practical ` +
		`independence the DSM-5 criteria hinge on: managing finances, medications, ` +
		`transportation, meals, housekeeping, laundry, telephone use, and shopping. ` +
		`The score counts areas of full independence out of eight.`,

	contentGDSIntro: `The Geriatric Depression Scale (GDS-15) is a 15-item screen for ` +
		`depressive symptoms in older adults. Mood symptoms can depress cognitive ` +
		`screening performance, so this result should be read alongside the domain ` +
		`scores rather than in isolation.`,

	contentGADIntro: `The GAD-7 is a seven-item screen for generalized anxiety, scored ` +
		`0–21. As with mood, anxiety at the time of interview can suppress attention ` +
		`and working-memory performance.`,

	contentIntegratedSummary: `## Integrated Clinical Summary

The sections above should be read as a whole. A typical review proceeds:

1. Confirm orientation and the validity context of the interview (line
   quality, interruptions, reported fatigue).
2. Weigh domains of concern against the mood and anxiety screens; affective
   load is the most common non-neurological explanation for a below-cutoff
   domain score.
3. Cross-check functional independence (IADL) against the cognitive pattern.
   Preserved IADLs with isolated low domain scores favor monitoring over
   immediate referral.
4. Review the question-level transcript record for skipped or unscored items
   that may have lowered a domain score artifactually.`,

	contentTranscriptIntro: `Each interview item is recorded below with its scored ` +
		`outcome. Items the patient declined or the interview did not reach carry ` +
		`an explicit "no score" marker.`,

	contentDSM5Considerations: `## Diagnostic Considerations

The DSM-5 distinguishes **mild** neurocognitive disorder (modest decline,
independence preserved with greater effort or compensation) from **major**
neurocognitive disorder (significant decline interfering with independence).
Screening percentiles map onto that framework only loosely:

| Screening pattern | Typical next step |
|---|---|
| All domains preserved | Routine follow-up at the usual interval |
| Single domain of concern, IADLs independent | Re-screen in 3–6 months |
| Multiple domains of concern | Comprehensive neuropsychological evaluation |
| Any concern plus IADL support needs | Expedited clinical review |

Reversible contributors — medication effects, sleep disorders, depression,
metabolic abnormalities — should be excluded before attributing decline to a
neurodegenerative process.`,

	contentNextSteps: `## Next Steps and Care Planning

Recommended actions are ordered by urgency and should be adapted to the
patient's context by the assigning physician:

- Review current medications for anticholinergic and sedative burden.
- Address positive mood or anxiety screens before re-testing cognition.
- For domains of concern, arrange in-person confirmation testing; telephone
  screening understates performance for hearing-impaired patients.
- Document functional baseline now so future change is measurable.
- Share this report with the patient's care team; repeat screening is most
  informative on the same instrument and modality.`,

	contentDisclaimerFull: `## Scope and Limitations

` + Disclaimer + `

Normative comparisons assume the demographic details recorded at intake are
accurate. Results may underestimate ability for patients tested in a
non-native language or with uncorrected hearing loss.

## References

- American Psychiatric Association. *Diagnostic and Statistical Manual of
  Mental Disorders*, 5th ed. (DSM-5), Neurocognitive Disorders.
- Yesavage JA, et al. Development and validation of a geriatric depression
  screening scale. *J Psychiatr Res.* 1982–83;17(1):37–49.
- Spitzer RL, Kroenke K, Williams JBW, Löwe B. A brief measure for assessing
  generalized anxiety disorder: the GAD-7. *Arch Intern Med.* 2006;166(10).
- Lawton MP, Brody EM. Assessment of older people: self-maintaining and
  instrumental activities of daily living. *Gerontologist.* 1969;9(3).`,
}

// dsm5Criteria is the static reference table on page 1. The status column is
// intentionally blank at screening time; it is completed by the reviewing
// clinician, not by this system.
var dsm5Criteria = [][]string{
	{"A", "Evidence of significant cognitive decline in one or more domains", "—"},
	{"B", "Decline interferes with independence in everyday activities", "—"},
	{"C", "Deficits do not occur exclusively in the context of delirium", "—"},
	{"D", "Deficits are not better explained by another mental disorder", "—"},
}

// domainGlossary defines each assessed domain for the reference page.
var domainGlossary = []KeyValue{
	{Key: "Orientation", Value: "Awareness of person, place, time, and situation."},
	{Key: "Memory", Value: "Registration, retention, and delayed recall of new information."},
	{Key: "Attention", Value: "Sustained focus and resistance to distraction across a task."},
	{Key: "Language", Value: "Naming, verbal fluency, and comprehension of spoken instructions."},
	{Key: "Executive Function", Value: "Planning, set-shifting, abstraction, and self-monitoring."},
	{Key: "Processing Speed", Value: "Rate of completing simple cognitive operations accurately."},
}

func content(key contentKey) string {
	return staticContent[key]
}
