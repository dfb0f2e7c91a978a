package model

type EvaluationResponse struct {
	EvaluationMetadata EvaluationMetadata `json:"evaluationMetadata"`
	EvaluationResult   EvaluationResult   `json:"evaluationResult"`
}

type EvaluationMetadata struct {
	EvaluationID          string `json:"evaluationId"`
	HearingID             string `json:"hearingId"`
	EvaluationStartedAt   string `json:"evaluationStartedAt"`
	EvaluationCompletedAt string `json:"evaluationCompletedAt"`
	EvaluationDurationMs  int64  `json:"evaluationDurationMs"`
	EvaluationOutcome     string `json:"evaluationOutcome"`
}

type EvaluationResult struct {
	Messages   []EvaluationMessage `json:"messages"`
	Defendants []DefendantPolicy   `json:"defendants"`
	CasePolicy *RetentionPolicy    `json:"casePolicy"`
}

// DefendantPolicy records the policy chosen for one defendant and the rule that chose it.
type DefendantPolicy struct {
	DefendantID     string          `json:"defendantId"`
	Rule            string          `json:"rule"`
	RetentionPolicy RetentionPolicy `json:"retentionPolicy"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
