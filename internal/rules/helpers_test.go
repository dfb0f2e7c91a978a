package rules

import "retention-engine/internal/model"

var (
	testHearing = model.HearingInfo{
		HearingID:        "h1111111-1111-1111-1111-111111111111",
		HearingType:      "Sentence",
		JurisdictionType: "CROWN",
		CourtCentreID:    "cc222222-2222-2222-2222-222222222222",
		CourtCentreName:  "Lavender Hill Magistrates' Court",
		CourtRoomID:      "cr333333-3333-3333-3333-333333333333",
		CourtRoomName:    "Courtroom 01",
	}
	markers = DefaultMarkers()
)

const remitResultID = "r4444444-4444-4444-4444-444444444444"

func lifePrompt(value string) model.JudicialResultPrompt {
	return model.NewPrompt(markers.LifeSentence.TypeID, markers.LifeSentence.Reference, value)
}

func periodPrompt(value string) model.JudicialResultPrompt {
	return model.NewPrompt(markers.TotalCustodialPeriod.TypeID, markers.TotalCustodialPeriod.Reference, value)
}

func custodialResult(orderedDate string, prompts ...model.JudicialResultPrompt) model.DefendantJudicialResult {
	return model.DefendantJudicialResult{
		JudicialResult: model.NewJudicialResult(model.CategoryFinal, markers.CustodialResultTypeID, orderedDate, prompts...),
	}
}

func offenceWithResults(results ...model.JudicialResult) model.Offence {
	return model.NewOffence("o5555555-5555-5555-5555-555555555555", nil, results)
}

func offenceWithVerdict(code string) model.Offence {
	var v *model.Verdict
	if code != "" {
		v = model.NewVerdict(code)
	}
	return model.NewOffence("o6666666-6666-6666-6666-666666666666", v, nil)
}

func newContext(defendant []model.DefendantJudicialResult, offences []model.Offence, remit []string) *Context {
	return &NewChain(testHearing, defendant, offences, remit).ctx
}
