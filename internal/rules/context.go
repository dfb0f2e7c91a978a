package rules

import "retention-engine/internal/model"

// Context holds the hearing facts every rule evaluates against. Build it with
// NewChain; collections are never nil.
type Context struct {
	Hearing          model.HearingInfo
	DefendantResults []model.DefendantJudicialResult
	Offences         []model.Offence
	RemitResultIDs   []string
	Markers          Markers
}

func (c *Context) isRemitResult(typeID string) bool {
	for _, id := range c.RemitResultIDs {
		if id == typeID {
			return true
		}
	}
	return false
}

// offenceResults calls fn for every offence-level judicial result until fn returns true.
func (c *Context) offenceResults(fn func(model.JudicialResult) bool) bool {
	for _, o := range c.Offences {
		for _, r := range o.JudicialResults {
			if fn(r) {
				return true
			}
		}
	}
	return false
}
