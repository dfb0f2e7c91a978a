package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"retention-engine/internal/metrics"
	"retention-engine/internal/model"
	"retention-engine/internal/priority"
	"retention-engine/internal/rules"
)

// RemitSource supplies the remittal result-type ids. ok is false when the ids
// are a fallback rather than live reference data.
type RemitSource interface {
	RemitResultIDs(ctx context.Context) (ids []string, ok bool)
}

// Engine evaluates hearing outcomes into retention policies.
type Engine struct {
	markers rules.Markers
	remit   RemitSource
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates an engine. remit and m may be nil.
func New(markers rules.Markers, remit RemitSource, logger *slog.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		markers: markers.WithDefaults(),
		remit:   remit,
		logger:  logger.With("component", "engine"),
		metrics: m,
	}
}

// Process runs the rule chain for every defendant and resolves the case-level
// policy across them.
func (e *Engine) Process(ctx context.Context, req *model.EvaluationRequest) *model.EvaluationResponse {
	start := time.Now()

	var messages []model.EvaluationMessage
	addMessage := func(level, code, text string) {
		messages = append(messages, model.EvaluationMessage{
			ID:      len(messages),
			Level:   level,
			Code:    code,
			Message: text,
		})
	}
	outcome := model.OutcomeSuccess

	remitIDs := req.RemitResultIDs
	if remitIDs == nil && e.remit != nil {
		ids, ok := e.remit.RemitResultIDs(ctx)
		if !ok {
			e.metrics.IncRefDataFallback()
			addMessage(model.LevelWarning, model.CodeRemitIDsFallback,
				fmt.Sprintf("Reference data unavailable, evaluated with %d configured remittal result ids", len(ids)))
		}
		remitIDs = ids
	}

	defendants := make([]model.DefendantPolicy, 0, len(req.Defendants))
	policies := make([]model.RetentionPolicy, 0, len(req.Defendants))
	for _, d := range req.Defendants {
		decision := rules.NewChain(req.Hearing, d.JudicialResults, d.Offences, remitIDs, rules.WithMarkers(e.markers)).Evaluate()

		e.logger.Debug("defendant evaluated",
			"hearing_id", req.Hearing.HearingID,
			"defendant_id", d.DefendantID,
			"rule", decision.Rule.String(),
			"policy_type", string(decision.Policy.PolicyType),
			"period", decision.Policy.Period,
		)
		e.metrics.ObserveDecision(decision.Rule.String(), string(decision.Policy.PolicyType))

		defendants = append(defendants, model.DefendantPolicy{
			DefendantID:     d.DefendantID,
			Rule:            decision.Rule.String(),
			RetentionPolicy: decision.Policy,
		})
		policies = append(policies, decision.Policy)
	}

	var casePolicy *model.RetentionPolicy
	resolved, err := e.ResolvePriority(policies)
	if err != nil {
		outcome = model.OutcomeFailure
		addMessage(model.LevelCritical, model.CodePolicyResolutionFailed, err.Error())
	} else {
		casePolicy = &resolved
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()
	e.metrics.ObserveEvaluation(outcome, elapsed)

	if outcome == model.OutcomeSuccess {
		e.logger.Info("hearing evaluated",
			"hearing_id", req.Hearing.HearingID,
			"defendants", len(defendants),
			"policy_type", string(casePolicy.PolicyType),
			"period", casePolicy.Period,
		)
	} else {
		e.logger.Warn("hearing evaluation failed",
			"hearing_id", req.Hearing.HearingID,
			"defendants", len(defendants),
			"error", err,
		)
	}

	if messages == nil {
		messages = []model.EvaluationMessage{}
	}

	return &model.EvaluationResponse{
		EvaluationMetadata: model.EvaluationMetadata{
			EvaluationID:          uuid.New().String(),
			HearingID:             req.Hearing.HearingID,
			EvaluationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			EvaluationCompletedAt: now.Format(time.RFC3339),
			EvaluationDurationMs:  elapsed.Milliseconds(),
			EvaluationOutcome:     outcome,
		},
		EvaluationResult: model.EvaluationResult{
			Messages:   messages,
			Defendants: defendants,
			CasePolicy: casePolicy,
		},
	}
}

// ResolvePriority picks the governing policy among several.
func (e *Engine) ResolvePriority(policies []model.RetentionPolicy) (model.RetentionPolicy, error) {
	p, err := priority.Resolve(policies)
	e.metrics.ObserveResolution(string(p.PolicyType), err)
	if err != nil {
		return model.RetentionPolicy{}, fmt.Errorf("resolve %d policies: %w", len(policies), err)
	}
	return p, nil
}
