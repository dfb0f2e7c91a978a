// Package rules decides the retention policy for one defendant's hearing
// outcome. Each Kind is one rule; Chain tries them in precedence order.
package rules

import (
	"fmt"
	"strings"

	"retention-engine/internal/duration"
	"retention-engine/internal/model"
)

// Kind is one retention rule. The set is closed: every Kind is listed in Order
// and handled by the switches in Applies and Policy.
type Kind int

const (
	Life Kind = iota
	Custodial
	Remittal
	Acquittal
	NotGuiltyVerdict
	NonCustodial
	Default
)

// Order is the precedence in which the chain tries rules. Default always
// applies, so evaluation always terminates.
var Order = [...]Kind{Life, Custodial, Remittal, Acquittal, NotGuiltyVerdict, NonCustodial, Default}

const (
	lifePeriod         = "99Y0M0D"
	custodialPeriod    = "7Y0M0D"
	remittalPeriod     = "7Y0M0D"
	acquittalPeriod    = "1Y0M0D"
	notGuiltyPeriod    = "1Y0M0D"
	nonCustodialPeriod = "7Y0M0D"
)

var notGuiltyCodes = map[string]bool{
	"N":    true,
	"NGJU": true,
	"NGJA": true,
	"NGJJ": true,
}

func (k Kind) String() string {
	switch k {
	case Life:
		return "Life"
	case Custodial:
		return "Custodial"
	case Remittal:
		return "Remittal"
	case Acquittal:
		return "Acquittal"
	case NotGuiltyVerdict:
		return "NotGuiltyVerdict"
	case NonCustodial:
		return "NonCustodial"
	case Default:
		return "Default"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Applies reports whether the rule matches the hearing facts.
func (k Kind) Applies(ctx *Context) bool {
	switch k {
	case Life:
		return lifeApplies(ctx)
	case Custodial:
		_, ok := longestCustodialPeriod(ctx)
		return ok
	case Remittal:
		return remittalApplies(ctx)
	case Acquittal:
		return acquittalApplies(ctx)
	case NotGuiltyVerdict:
		return notGuiltyApplies(ctx)
	case NonCustodial, Default:
		return true
	}
	panic(fmt.Sprintf("rules: unhandled %v", k))
}

// Policy returns the retention policy the rule selects. It is only meaningful
// when Applies returned true for the same context.
func (k Kind) Policy(ctx *Context) model.RetentionPolicy {
	switch k {
	case Life:
		return model.NewRetentionPolicy(model.PolicyLife, lifePeriod, ctx.Hearing)
	case Custodial:
		return model.NewRetentionPolicy(model.PolicyCustodial, custodialPolicyPeriod(ctx), ctx.Hearing)
	case Remittal:
		return model.NewRetentionPolicy(model.PolicyRemittal, remittalPeriod, ctx.Hearing)
	case Acquittal:
		return model.NewRetentionPolicy(model.PolicyAcquittal, acquittalPeriod, ctx.Hearing)
	case NotGuiltyVerdict:
		return model.NewRetentionPolicy(model.PolicyNotGuilty, notGuiltyPeriod, ctx.Hearing)
	case NonCustodial, Default:
		return model.NewRetentionPolicy(model.PolicyNonCustodial, nonCustodialPeriod, ctx.Hearing)
	}
	panic(fmt.Sprintf("rules: unhandled %v", k))
}

func lifeApplies(ctx *Context) bool {
	marker := ctx.Markers.LifeSentence
	return ctx.offenceResults(func(r model.JudicialResult) bool {
		for _, p := range r.Prompts {
			if marker.matches(p.PromptTypeID, p.PromptReference) && parseBool(p.Value) {
				return true
			}
		}
		return false
	})
}

// parseBool accepts "true" in any case; every other value is false.
func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

func remittalApplies(ctx *Context) bool {
	if len(ctx.RemitResultIDs) == 0 {
		return false
	}
	return ctx.offenceResults(func(r model.JudicialResult) bool {
		return r.JudicialResultTypeID != "" && ctx.isRemitResult(r.JudicialResultTypeID)
	})
}

func acquittalApplies(ctx *Context) bool {
	discharge := ctx.Markers.DischargeResultTypeID
	isDischarge := func(r model.JudicialResult) bool {
		return r.IsFinal() && r.JudicialResultTypeID == discharge
	}
	for _, dr := range ctx.DefendantResults {
		if isDischarge(dr.JudicialResult) {
			return true
		}
	}
	return ctx.offenceResults(isDischarge)
}

func notGuiltyApplies(ctx *Context) bool {
	if len(ctx.Offences) == 0 {
		return false
	}
	for _, o := range ctx.Offences {
		if o.Verdict == nil || !notGuiltyCodes[o.Verdict.VerdictType.CJSVerdictCode] {
			return false
		}
	}
	return true
}

// custodialPolicyPeriod picks the longer of the custodial default and the
// longest sentence-derived period.
func custodialPolicyPeriod(ctx *Context) string {
	longest, ok := longestCustodialPeriod(ctx)
	if !ok {
		return custodialPeriod
	}
	if duration.MustDays(longest) > duration.MustDays(custodialPeriod) {
		return longest
	}
	return custodialPeriod
}
