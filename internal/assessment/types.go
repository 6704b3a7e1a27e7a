package assessment

// FieldUnavailable is the literal rendered wherever a required field is
// missing from a partially completed record. A partial clinical record must
// still produce a best-effort report, so absence is a display state, never an
// error.
const FieldUnavailable = "N/A"

type DomainStatus string

const (
	StatusConcern   DomainStatus = "concern"
	StatusPreserved DomainStatus = "preserved"
)

type Physician struct {
	Name string `json:"name"`
}

type BatchCallData struct {
	BatchCallID string `json:"batch_call_id"`
}

// RawAssessment is the record shape produced by the intake portal. Fields may
// be zero-valued when the assessment is still in progress.
type RawAssessment struct {
	ID                 string           `json:"_id"`
	PatientName        string           `json:"patientName"`
	Age                int              `json:"age"`
	Gender             string           `json:"gender"`
	AssessmentDate     string           `json:"assessmentDate"`
	AssigningPhysician Physician        `json:"assigningPhysician"`
	BatchCall          BatchCallData    `json:"retellBatchCallData"`
	DomainScores       []DomainScore    `json:"domainScores,omitempty"`
	Screenings         []ScreeningScore `json:"screenings,omitempty"`
	IADL               *IADLScore       `json:"iadl,omitempty"`
}

// DomainScore carries one cognitive domain result. Status is reference data
// signed off per domain; when empty it is classified against the configured
// percentile cutoff at build time.
type DomainScore struct {
	DomainName  string       `json:"domainName"`
	Percentile  int          `json:"percentile"`
	Status      DomainStatus `json:"status,omitempty"`
	Description string       `json:"description,omitempty"`
}

type ScreeningScore struct {
	InstrumentName string `json:"instrumentName"`
	Raw            int    `json:"raw"`
	Max            int    `json:"max"`
	SeverityLabel  string `json:"severityLabel"`
}

const (
	InstrumentGDS15 = "GDS-15"
	InstrumentGAD7  = "GAD-7"

	GDS15Max = 15
	GAD7Max  = 21

	IADLTotal = 8
)

type IADLScore struct {
	Score            int      `json:"score"`
	Total            int      `json:"total"`
	IndependentAreas []string `json:"independentAreas"`
	SupportAreas     []string `json:"supportAreas"`
}

// QuestionResponse is one call-transcript item. A nil Score is a first-class
// "no data" state with its own rendering, distinct from a scored 0.
type QuestionResponse struct {
	QuestionCode string `json:"questionCode"`
	QuestionText string `json:"questionText"`
	Response     string `json:"response"`
	Score        *int   `json:"score"`
}

// QuestionBundle mirrors the questions endpoint payload keyed by batch call.
type QuestionBundle struct {
	QuestionResponses      []QuestionResponse `json:"questionResponses"`
	ConversationTranscript string             `json:"conversationTranscript,omitempty"`
	PostcallAnalysis       string             `json:"postcallAnalysis,omitempty"`
	TotalQuestions         int                `json:"totalQuestions"`
	Answered               int                `json:"answered"`
	NotRecorded            int                `json:"notRecorded"`
}

// PatientViewModel is the flat view the report binds against. Every field is
// already formatted for display; unavailable data reads "N/A".
type PatientViewModel struct {
	Name               string `json:"name"`
	DateOfBirth        string `json:"dateOfBirth"`
	Gender             string `json:"gender"`
	AgeGroup           string `json:"ageGroup"`
	AssessmentDate     string `json:"assessmentDate"`
	AssessmentDateLong string `json:"assessmentDateLong"`
	AssessmentID       string `json:"assessmentId"`
	AssigningPhysician string `json:"assigningPhysician"`
	ReportGenerated    string `json:"reportGenerated"`
}
