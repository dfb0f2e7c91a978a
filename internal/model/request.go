package model

type EvaluationRequest struct {
	Hearing    HearingInfo        `json:"hearing"`
	Defendants []DefendantOutcome `json:"defendants"`
	// RemitResultIDs overrides the reference-data remittal list when present.
	RemitResultIDs []string `json:"remitResultIds,omitempty"`
}

// DefendantOutcome is everything the hearing resulted for one defendant.
type DefendantOutcome struct {
	DefendantID     string                    `json:"defendantId"`
	JudicialResults []DefendantJudicialResult `json:"judicialResults"`
	Offences        []Offence                 `json:"offences"`
}

type ResolveRequest struct {
	Policies []RetentionPolicy `json:"policies"`
}
