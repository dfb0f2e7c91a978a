package model

type EvaluationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeRemitIDsFallback       = "REMIT_IDS_FALLBACK"
	CodePolicyResolutionFailed = "POLICY_RESOLUTION_FAILED"
)
