package cli

import (
	"testing"

	"github.com/path2action/planwizard/internal/domain"
	"github.com/path2action/planwizard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRoundTrip_AllSteps(t *testing.T) {
	original := testutil.NewTestWizardData()
	original.Team.Roles = []domain.Role{
		{Title: "Coordinator", Responsibilities: "schedules volunteers"},
	}

	b := bufferFrom(original)
	var rebuilt domain.WizardData
	for step := 1; step <= 9; step++ {
		b.apply(&rebuilt, step)
	}

	assert.Equal(t, original, rebuilt)
}

func TestBufferApply_TouchesOnlyItsSection(t *testing.T) {
	d := testutil.NewTestWizardData()
	before := d

	b := bufferFrom(d)
	b.campaignName = "Renamed"
	b.teamSize = "12" // a different step's field, not applied below
	b.apply(&d, 1)

	assert.Equal(t, "Renamed", d.GoalSetting.CampaignName)
	assert.Equal(t, before.Team, d.Team)
	assert.Equal(t, before.Budget, d.Budget)
}

func TestMilestoneCodec(t *testing.T) {
	ms := []domain.Milestone{
		{Title: "Kickoff", Date: "2026-09-20"},
		{Title: "First cleanup", Date: "2026-10-04"},
	}

	text := milestonesToText(ms)
	assert.Equal(t, "Kickoff | 2026-09-20\nFirst cleanup | 2026-10-04", text)
	assert.Equal(t, ms, textToMilestones(text))
}

func TestMilestoneCodec_ToleratesSloppyInput(t *testing.T) {
	got := textToMilestones("Kickoff|2026-09-20\n\n   \nJust a title\ntoo | many | fields")
	require.Len(t, got, 3)
	assert.Equal(t, domain.Milestone{Title: "Kickoff", Date: "2026-09-20"}, got[0])
	assert.Equal(t, domain.Milestone{Title: "Just a title"}, got[1])
	assert.Equal(t, domain.Milestone{Title: "too", Date: "many"}, got[2])
}

func TestExpenseCodec(t *testing.T) {
	es := []domain.ExpenseCategory{
		{Category: "Printing", Amount: "40000 AMD", Notes: "posters"},
		{Category: "Food", Amount: "25000 AMD"},
	}

	text := expensesToText(es)
	assert.Equal(t, "Printing | 40000 AMD | posters\nFood | 25000 AMD | ", text)
	assert.Equal(t, es, textToExpenses(text))
}

func TestRiskCodec(t *testing.T) {
	rs := []domain.Risk{
		{Risk: "Low turnout", Likelihood: "medium", Mitigation: "partner with schools"},
	}
	assert.Equal(t, rs, textToRisks(risksToText(rs)))
	assert.Empty(t, textToRisks("  \n \n"))
}

func TestRoleCodec(t *testing.T) {
	rs := []domain.Role{
		{Title: "Coordinator", Responsibilities: "schedules volunteers"},
		{Title: "Press lead", Responsibilities: ""},
	}
	assert.Equal(t, rs, textToRoles(rolesToText(rs)))
}

func TestValidateOptionalDate(t *testing.T) {
	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("   "))
	assert.NoError(t, validateOptionalDate("2026-09-15"))
	assert.NoError(t, validateOptionalDate(" 2026-09-15 "))
	assert.Error(t, validateOptionalDate("15/09/2026"))
	assert.Error(t, validateOptionalDate("2026-13-40"))
	assert.Error(t, validateOptionalDate("soon"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("you@example.org"))
	assert.NoError(t, validateEmail("  a@b.co  "))
	assert.Error(t, validateEmail(""))
	assert.Error(t, validateEmail("@example.org"))
	assert.Error(t, validateEmail("no-at-sign"))
	assert.Error(t, validateEmail("user@nodot"))
}

func TestDateFlag(t *testing.T) {
	var f dateFlag
	assert.Equal(t, "date", f.Type())

	require.NoError(t, f.Set("2026-09-15"))
	assert.Equal(t, "2026-09-15", f.String())

	assert.Error(t, f.Set("tomorrow"))
	assert.Equal(t, "2026-09-15", f.String(), "a rejected value leaves the flag unchanged")
}

func TestStepTitles_CoverEveryStep(t *testing.T) {
	for step := 1; step <= domain.TotalSteps; step++ {
		assert.NotEmpty(t, stepTitles[step].title, "step %d", step)
		assert.NotEmpty(t, stepTitles[step].desc, "step %d", step)
	}
}

func TestStepForm_BuildsForEveryStep(t *testing.T) {
	b := bufferFrom(domain.InitialWizardData())
	for step := 1; step <= domain.TotalSteps; step++ {
		assert.NotNil(t, stepForm(step, b), "step %d", step)
	}
}
