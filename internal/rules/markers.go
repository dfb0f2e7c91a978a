package rules

// PromptMarker identifies a prompt by type id and, when set, its reference.
// Several prompts can share a type id; the reference tells them apart.
type PromptMarker struct {
	TypeID    string `yaml:"type_id"`
	Reference string `yaml:"reference"`
}

func (m PromptMarker) matches(typeID, reference string) bool {
	if typeID != m.TypeID {
		return false
	}
	return m.Reference == "" || reference == m.Reference
}

// Markers are the reference-data ids the rules look for in judicial results.
type Markers struct {
	LifeSentence          PromptMarker `yaml:"life_sentence"`
	TotalCustodialPeriod  PromptMarker `yaml:"total_custodial_period"`
	CustodialResultTypeID string       `yaml:"custodial_result_type_id"`
	DischargeResultTypeID string       `yaml:"discharge_result_type_id"`
}

// DefaultMarkers returns the ids published in the results reference data.
func DefaultMarkers() Markers {
	return Markers{
		LifeSentence: PromptMarker{
			TypeID:    "6d76a10c-64c4-4eb8-a5d6-6f1d4a1e0b2e",
			Reference: "lifeSentence",
		},
		TotalCustodialPeriod: PromptMarker{
			TypeID:    "b0aeb4fc-df63-4e2f-af88-97e3f23e847f",
			Reference: "totalCustodialPeriod",
		},
		CustodialResultTypeID: "3f7a6c1e-8d52-4b6e-9a1c-2f9e5d7b4c10",
		DischargeResultTypeID: "a2b4c6d8-1e3f-4a5b-8c7d-9e0f1a2b3c4d",
	}
}

// WithDefaults fills any empty id from DefaultMarkers.
func (m Markers) WithDefaults() Markers {
	d := DefaultMarkers()
	if m.LifeSentence.TypeID == "" {
		m.LifeSentence = d.LifeSentence
	}
	if m.TotalCustodialPeriod.TypeID == "" {
		m.TotalCustodialPeriod = d.TotalCustodialPeriod
	}
	if m.CustodialResultTypeID == "" {
		m.CustodialResultTypeID = d.CustodialResultTypeID
	}
	if m.DischargeResultTypeID == "" {
		m.DischargeResultTypeID = d.DischargeResultTypeID
	}
	return m
}
