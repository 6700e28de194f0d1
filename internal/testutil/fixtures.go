package testutil

import (
	"fmt"

	"github.com/path2action/planwizard/internal/domain"
)

// WizardDataOption mutates a test wizard aggregate.
type WizardDataOption func(*domain.WizardData)

func WithCampaignName(name string) WizardDataOption {
	return func(d *domain.WizardData) {
		d.GoalSetting.CampaignName = name
	}
}

func WithGoalStatement(s string) WizardDataOption {
	return func(d *domain.WizardData) {
		d.GoalSetting.GoalStatement = s
	}
}

func WithMilestones(ms ...domain.Milestone) WizardDataOption {
	return func(d *domain.WizardData) {
		d.Timeline.Milestones = ms
	}
}

func WithTactics(tactics ...string) WizardDataOption {
	return func(d *domain.WizardData) {
		d.Strategy.Tactics = tactics
	}
}

// NewTestWizardData builds a populated wizard aggregate for tests.
func NewTestWizardData(opts ...WizardDataOption) domain.WizardData {
	d := domain.InitialWizardData()
	d.GoalSetting = domain.GoalSetting{
		CampaignName:  "Clean Streets",
		GoalStatement: "Cut litter on central streets in half by spring.",
		CampaignType:  "awareness",
		SuccessMetric: "50 volunteers at the first cleanup",
	}
	d.TargetAudience.PrimaryAudience = "Neighborhood residents"
	d.TargetAudience.AgeGroups = []string{"adults", "youth"}
	d.Strategy.Tactics = []string{"socialMedia", "publicEvents"}
	d.Timeline.Milestones = []domain.Milestone{
		{Title: "Kickoff", Date: "2026-09-20"},
		{Title: "First cleanup", Date: "2026-10-04"},
	}
	d.Budget.ExpenseCategories = []domain.ExpenseCategory{
		{Category: "Printing", Amount: "40000 AMD", Notes: "posters"},
	}
	d.RiskAssessment.Risks = []domain.Risk{
		{Risk: "Low turnout", Likelihood: "medium", Mitigation: "partner with schools"},
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewTestDay builds a DayAvailability with the given booked start times.
func NewTestDay(date string, bookedStarts ...string) domain.DayAvailability {
	booked := make(map[string]bool, len(bookedStarts))
	for _, s := range bookedStarts {
		booked[s] = true
	}
	slots := []domain.TimeSlot{}
	for hour := 9; hour < 21; hour++ {
		start := fmt.Sprintf("%02d:00", hour)
		slots = append(slots, domain.TimeSlot{
			Start:  start,
			End:    fmt.Sprintf("%02d:00", hour+1),
			Booked: booked[start],
		})
	}
	return domain.DayAvailability{Date: date, Slots: slots}
}
