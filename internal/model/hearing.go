package model

// Judicial result categories.
const (
	CategoryFinal   = "FINAL"
	CategoryInterim = "INTERIM"
)

// HearingInfo identifies the hearing a decision was made at. It is copied onto
// the resulting policy for traceability and never inspected by the rules.
type HearingInfo struct {
	HearingID        string `json:"hearingId"`
	HearingType      string `json:"hearingType"`
	JurisdictionType string `json:"jurisdictionType"`
	CourtCentreID    string `json:"courtCentreId"`
	CourtCentreName  string `json:"courtCentreName"`
	CourtRoomID      string `json:"courtRoomId"`
	CourtRoomName    string `json:"courtRoomName"`
}

type Offence struct {
	ID              string           `json:"id"`
	Verdict         *Verdict         `json:"verdict"`
	JudicialResults []JudicialResult `json:"judicialResults"`
}

type Verdict struct {
	VerdictType VerdictType `json:"verdictType"`
}

type VerdictType struct {
	CJSVerdictCode string `json:"cjsVerdictCode"`
}

// DefendantJudicialResult is a judicial result recorded against the defendant
// rather than a specific offence.
type DefendantJudicialResult struct {
	JudicialResult JudicialResult `json:"judicialResult"`
}

type JudicialResult struct {
	Category             string                 `json:"category"`
	JudicialResultTypeID string                 `json:"judicialResultTypeId,omitempty"`
	OrderedDate          string                 `json:"orderedDate"`
	Prompts              []JudicialResultPrompt `json:"judicialResultPrompts"`
}

type JudicialResultPrompt struct {
	PromptTypeID    string `json:"judicialResultPromptTypeId"`
	PromptReference string `json:"promptReference,omitempty"`
	Value           string `json:"value"`
}

// IsFinal reports whether the result is in the FINAL category.
func (r JudicialResult) IsFinal() bool {
	return r.Category == CategoryFinal
}

// NewOffence builds an offence, normalizing a nil result list to empty.
func NewOffence(id string, verdict *Verdict, results []JudicialResult) Offence {
	if results == nil {
		results = []JudicialResult{}
	}
	return Offence{ID: id, Verdict: verdict, JudicialResults: results}
}

// NewVerdict builds a verdict carrying the given CJS verdict code.
func NewVerdict(cjsCode string) *Verdict {
	return &Verdict{VerdictType: VerdictType{CJSVerdictCode: cjsCode}}
}

// NewJudicialResult builds a judicial result, normalizing a nil prompt list to empty.
func NewJudicialResult(category, typeID, orderedDate string, prompts ...JudicialResultPrompt) JudicialResult {
	if prompts == nil {
		prompts = []JudicialResultPrompt{}
	}
	return JudicialResult{
		Category:             category,
		JudicialResultTypeID: typeID,
		OrderedDate:          orderedDate,
		Prompts:              prompts,
	}
}

func NewPrompt(typeID, reference, value string) JudicialResultPrompt {
	return JudicialResultPrompt{PromptTypeID: typeID, PromptReference: reference, Value: value}
}
