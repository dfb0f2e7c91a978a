package rules

import "retention-engine/internal/model"

// Chain evaluates the rules for one defendant in Order. It keeps no state
// between calls and is safe for concurrent use.
type Chain struct {
	ctx Context
}

// Decision is the policy a chain selected and the rule that selected it.
type Decision struct {
	Rule   Kind
	Policy model.RetentionPolicy
}

type Option func(*Context)

// WithMarkers overrides the reference-data ids the rules match on. Empty ids
// keep their defaults.
func WithMarkers(m Markers) Option {
	return func(c *Context) {
		c.Markers = m.WithDefaults()
	}
}

// NewChain builds a chain over the hearing facts. Nil collections are treated
// as empty.
func NewChain(hearing model.HearingInfo, defendantResults []model.DefendantJudicialResult, offences []model.Offence, remitResultIDs []string, opts ...Option) *Chain {
	if defendantResults == nil {
		defendantResults = []model.DefendantJudicialResult{}
	}
	if offences == nil {
		offences = []model.Offence{}
	}
	if remitResultIDs == nil {
		remitResultIDs = []string{}
	}

	c := &Chain{ctx: Context{
		Hearing:          hearing,
		DefendantResults: defendantResults,
		Offences:         offences,
		RemitResultIDs:   remitResultIDs,
		Markers:          DefaultMarkers(),
	}}
	for _, opt := range opts {
		opt(&c.ctx)
	}
	return c
}

// Resolve returns the policy of the first rule in Order that applies.
func (c *Chain) Resolve() model.RetentionPolicy {
	return c.Evaluate().Policy
}

// Evaluate is Resolve that also reports which rule matched.
func (c *Chain) Evaluate() Decision {
	ctx := c.ctx
	for _, k := range Order {
		if k.Applies(&ctx) {
			return Decision{Rule: k, Policy: k.Policy(&ctx)}
		}
	}
	// Unreachable while Default is in Order.
	return Decision{Rule: Default, Policy: Default.Policy(&ctx)}
}
