// Package priority reduces several retention policies, typically one per
// defendant, to the single policy that governs the case.
package priority

import (
	"errors"
	"fmt"
	"sort"

	"retention-engine/internal/duration"
	"retention-engine/internal/model"
)

var ErrNoPolicies = errors.New("no retention policies to resolve")

// Resolve returns the policy with the highest type precedence. Between two
// Custodial or two Remittal policies the longer period wins; any other tie
// keeps input order.
func Resolve(policies []model.RetentionPolicy) (model.RetentionPolicy, error) {
	if len(policies) == 0 {
		return model.RetentionPolicy{}, ErrNoPolicies
	}

	days := make([]int, len(policies))
	for i, p := range policies {
		d, err := duration.ToDays(p.Period)
		if err != nil {
			return model.RetentionPolicy{}, fmt.Errorf("policy %d (%s): %w", i, p.PolicyType, err)
		}
		days[i] = d
	}

	idx := make([]int, len(policies))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := policies[idx[a]], policies[idx[b]]
		if pa.PolicyType.Priority() != pb.PolicyType.Priority() {
			return pa.PolicyType.Priority() < pb.PolicyType.Priority()
		}
		if pa.PolicyType == pb.PolicyType && comparesByLength(pa.PolicyType) {
			return days[idx[a]] > days[idx[b]]
		}
		return false
	})
	return policies[idx[0]], nil
}

func comparesByLength(t model.PolicyType) bool {
	return t == model.PolicyCustodial || t == model.PolicyRemittal
}
