package model

import "fmt"

// PolicyType is the kind of retention decided for a case.
type PolicyType string

const (
	PolicyLife         PolicyType = "Life"
	PolicyCustodial    PolicyType = "Custodial"
	PolicyNonCustodial PolicyType = "NonCustodial"
	PolicyRemittal     PolicyType = "Remittal"
	PolicyAcquittal    PolicyType = "Acquittal"
	PolicyNotGuilty    PolicyType = "NotGuilty"
)

var policyPriorities = map[PolicyType]int{
	PolicyLife:         1,
	PolicyCustodial:    2,
	PolicyNonCustodial: 3,
	PolicyRemittal:     4,
	PolicyAcquittal:    5,
	PolicyNotGuilty:    6,
}

// Priority returns the precedence of the type; lower numbers win.
// Unknown types sort after every known one.
func (t PolicyType) Priority() int {
	if p, ok := policyPriorities[t]; ok {
		return p
	}
	return len(policyPriorities) + 1
}

func (t PolicyType) Valid() bool {
	_, ok := policyPriorities[t]
	return ok
}

// RetentionPolicy is the outcome of an evaluation: how long case material is kept.
type RetentionPolicy struct {
	PolicyType PolicyType  `json:"policyType"`
	Period     string      `json:"period"`
	Hearing    HearingInfo `json:"hearing"`
}

func NewRetentionPolicy(policyType PolicyType, period string, hearing HearingInfo) RetentionPolicy {
	return RetentionPolicy{PolicyType: policyType, Period: period, Hearing: hearing}
}

// Equal compares policy type and period only; the hearing is not part of identity.
func (p RetentionPolicy) Equal(other RetentionPolicy) bool {
	return p.PolicyType == other.PolicyType && p.Period == other.Period
}

func (p RetentionPolicy) String() string {
	return fmt.Sprintf("%s(%s)", p.PolicyType, p.Period)
}
