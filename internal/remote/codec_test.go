package remote

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/path2action/planwizard/internal/domain"
	"github.com/path2action/planwizard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	data := testutil.NewTestWizardData()
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	body, err := json.Marshal(encodeDoc(data, 4, now))
	require.NoError(t, err)

	snap := decodeDoc(body)
	assert.Equal(t, data, snap.WizardData)
	assert.Equal(t, 4, snap.CurrentStep)
	assert.Equal(t, now, snap.UpdatedAt)
}

func TestCodec_EncodeTagsFieldKinds(t *testing.T) {
	doc := encodeDoc(domain.InitialWizardData(), 7, time.Now())

	require.Contains(t, doc.Fields, "wizardData")
	require.Contains(t, doc.Fields, "currentStep")
	require.Contains(t, doc.Fields, "updatedAt")

	assert.NotNil(t, doc.Fields["wizardData"].StringValue)
	assert.NotNil(t, doc.Fields["currentStep"].IntegerValue)
	assert.Equal(t, "7", *doc.Fields["currentStep"].IntegerValue)
	assert.NotNil(t, doc.Fields["updatedAt"].TimestampValue)

	// The embedded aggregate is itself valid JSON with the web client's
	// field names.
	var embedded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(*doc.Fields["wizardData"].StringValue), &embedded))
	assert.Contains(t, embedded, "goalSetting")
	assert.Contains(t, embedded, "riskAssessment")
}

func TestCodec_DecodeMalformedBody(t *testing.T) {
	snap := decodeDoc([]byte("not json at all"))
	assert.Equal(t, domain.InitialWizardData(), snap.WizardData)
	assert.Equal(t, 1, snap.CurrentStep)
	assert.True(t, snap.UpdatedAt.IsZero())
}

func TestCodec_DecodeMalformedEmbeddedPayload(t *testing.T) {
	bad := "{{{"
	body, err := json.Marshal(wireDoc{Fields: map[string]wireValue{
		"wizardData": {StringValue: &bad},
	}})
	require.NoError(t, err)

	snap := decodeDoc(body)
	assert.Equal(t, domain.InitialWizardData(), snap.WizardData)
	assert.Equal(t, 1, snap.CurrentStep)
}

func TestCodec_DecodeClampsStep(t *testing.T) {
	for raw, want := range map[string]int{"0": 1, "-3": 1, "99": domain.TotalSteps, "5": 5} {
		step := raw
		body, err := json.Marshal(wireDoc{Fields: map[string]wireValue{
			"currentStep": {IntegerValue: &step},
		}})
		require.NoError(t, err)
		assert.Equal(t, want, decodeDoc(body).CurrentStep, "step %q", raw)
	}
}

func TestCodec_DecodeMissingFields(t *testing.T) {
	snap := decodeDoc([]byte(`{"fields":{}}`))
	assert.Equal(t, domain.InitialWizardData(), snap.WizardData)
	assert.Equal(t, 1, snap.CurrentStep)
}
