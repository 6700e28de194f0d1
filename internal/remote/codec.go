package remote

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/path2action/planwizard/internal/domain"
)

// The Firestore REST API tags every field value with its kind. The whole
// wizard aggregate travels as one JSON string inside a stringValue wrapper,
// sidestepping a per-field Value mapping for the nested sections.

type wireValue struct {
	StringValue    *string `json:"stringValue,omitempty"`
	IntegerValue   *string `json:"integerValue,omitempty"`
	TimestampValue *string `json:"timestampValue,omitempty"`
}

type wireDoc struct {
	Fields map[string]wireValue `json:"fields"`
}

// PlanSnapshot is a plan document as stored remotely.
type PlanSnapshot struct {
	WizardData  domain.WizardData
	CurrentStep int
	UpdatedAt   time.Time
}

// savedFields names exactly the document fields a save touches, in
// updateMask order. Remote-only fields stay untouched.
var savedFields = []string{"wizardData", "currentStep", "updatedAt"}

// encodeDoc builds the wire document for a save. Serialization of the
// aggregate cannot fail: WizardData contains only strings and slices.
func encodeDoc(data domain.WizardData, step int, now time.Time) wireDoc {
	raw, _ := json.Marshal(data)
	payload := string(raw)
	stepStr := strconv.Itoa(step)
	ts := now.UTC().Format(time.RFC3339)
	return wireDoc{Fields: map[string]wireValue{
		"wizardData":  {StringValue: &payload},
		"currentStep": {IntegerValue: &stepStr},
		"updatedAt":   {TimestampValue: &ts},
	}}
}

// decodeDoc converts a wire document back into a snapshot. It is total:
// a malformed embedded payload yields the empty aggregate, a missing or
// unparseable step yields step 1.
func decodeDoc(body []byte) PlanSnapshot {
	snap := PlanSnapshot{
		WizardData:  domain.InitialWizardData(),
		CurrentStep: 1,
	}

	var doc wireDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return snap
	}

	if v, ok := doc.Fields["wizardData"]; ok && v.StringValue != nil {
		var data domain.WizardData
		if err := json.Unmarshal([]byte(*v.StringValue), &data); err == nil {
			snap.WizardData = data
		}
	}
	if v, ok := doc.Fields["currentStep"]; ok && v.IntegerValue != nil {
		if n, err := strconv.Atoi(*v.IntegerValue); err == nil {
			snap.CurrentStep = domain.ClampStep(n)
		}
	}
	if v, ok := doc.Fields["updatedAt"]; ok && v.TimestampValue != nil {
		if t, err := time.Parse(time.RFC3339, *v.TimestampValue); err == nil {
			snap.UpdatedAt = t
		}
	}
	return snap
}
