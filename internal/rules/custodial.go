package rules

import (
	"time"

	"retention-engine/internal/duration"
	"retention-engine/internal/model"
)

// longestCustodialPeriod returns the longest total custodial period written in
// the hearing's prompts, measured from the ordered date of the first custodial
// defendant result. ok is false when the defendant has no custodial result or
// no period can be computed.
func longestCustodialPeriod(ctx *Context) (period string, ok bool) {
	custodial := custodialResults(ctx)
	if len(custodial) == 0 {
		return "", false
	}
	ordered, valid := duration.ParseDate(custodial[0].OrderedDate)
	if !valid {
		return "", false
	}

	var prompts []model.JudicialResultPrompt
	for _, r := range custodial {
		prompts = append(prompts, periodPrompts(ctx, r)...)
	}
	ctx.offenceResults(func(r model.JudicialResult) bool {
		prompts = append(prompts, periodPrompts(ctx, r)...)
		return false
	})

	best := -1
	for _, p := range prompts {
		candidate, err := sentencePeriod(ordered, p.Value)
		if err != nil {
			continue
		}
		days, err := duration.ToDays(candidate)
		if err != nil {
			continue
		}
		if days > best {
			best, period = days, candidate
		}
	}
	return period, best >= 0
}

func custodialResults(ctx *Context) []model.JudicialResult {
	var out []model.JudicialResult
	for _, dr := range ctx.DefendantResults {
		if dr.JudicialResult.JudicialResultTypeID == ctx.Markers.CustodialResultTypeID {
			out = append(out, dr.JudicialResult)
		}
	}
	return out
}

func periodPrompts(ctx *Context, r model.JudicialResult) []model.JudicialResultPrompt {
	var out []model.JudicialResultPrompt
	for _, p := range r.Prompts {
		if ctx.Markers.TotalCustodialPeriod.matches(p.PromptTypeID, p.PromptReference) {
			out = append(out, p)
		}
	}
	return out
}

// sentencePeriod turns a prompt value such as "2 Years 6 Months" into the
// canonical calendar period it spans from the ordered date. Values that run
// past duration.MaxYear are rejected.
func sentencePeriod(ordered time.Time, value string) (string, error) {
	d, err := duration.Parse(value)
	if err != nil {
		return "", err
	}
	y, m, days, err := duration.Span(ordered, d)
	if err != nil {
		return "", err
	}
	return duration.Format(y, m, days), nil
}
