// Package export renders a fully-populated plan document for handoff.
// The terminal client renders Markdown; richer formats are downstream
// collaborators fed from the same document.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/path2action/planwizard/internal/domain"
)

var funcs = template.FuncMap{
	"join": func(items []string) string {
		if len(items) == 0 {
			return "—"
		}
		return strings.Join(items, ", ")
	},
	"orDash": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "—"
		}
		return s
	},
}

const planTemplate = `# {{orDash .Data.GoalSetting.CampaignName}}

Plan ID: {{.ID}}{{if not .UpdatedAt.IsZero}}
Last synced: {{.UpdatedAt.Format "2006-01-02 15:04 MST"}}{{end}}

## Goal Setting

- Goal statement: {{orDash .Data.GoalSetting.GoalStatement}}
- Campaign type: {{orDash .Data.GoalSetting.CampaignType}}
- Success metric: {{orDash .Data.GoalSetting.SuccessMetric}}

## Target Audience

- Primary audience: {{orDash .Data.TargetAudience.PrimaryAudience}}
- Expected participants: {{orDash .Data.TargetAudience.ParticipantCount}}
- Age groups: {{join .Data.TargetAudience.AgeGroups}}
- Geographic focus: {{orDash .Data.TargetAudience.GeographicFocus}}
- Key stakeholders: {{orDash .Data.TargetAudience.KeyStakeholders}}

## Strategy

- Main approach: {{orDash .Data.Strategy.MainApproach}}
- Tactics: {{join .Data.Strategy.Tactics}}
- Key messages: {{orDash .Data.Strategy.KeyMessages}}
- Potential allies: {{orDash .Data.Strategy.PotentialAllies}}

## Timeline

- Start: {{orDash .Data.Timeline.StartDate}}
- End: {{orDash .Data.Timeline.EndDate}}
{{- if .Data.Timeline.Milestones}}

| Milestone | Date |
|---|---|
{{- range .Data.Timeline.Milestones}}
| {{orDash .Title}} | {{orDash .Date}} |
{{- end}}
{{- end}}

## Resources

- Resource types: {{join .Data.Resources.ResourceTypes}}
- Venue type: {{orDash .Data.Resources.VenueType}}
- Materials needed: {{orDash .Data.Resources.MaterialsNeeded}}
- Tools and equipment: {{orDash .Data.Resources.ToolsAndEquipment}}
- Venue requirements: {{orDash .Data.Resources.VenueRequirements}}

## Team

- Team size: {{orDash .Data.Team.TeamSize}}
{{- if .Data.Team.Roles}}

| Role | Responsibilities |
|---|---|
{{- range .Data.Team.Roles}}
| {{orDash .Title}} | {{orDash .Responsibilities}} |
{{- end}}
{{- end}}
- Recruitment plan: {{orDash .Data.Team.RecruitmentPlan}}
- Communication channels: {{orDash .Data.Team.CommunicationChannels}}

## Outreach

- Channels: {{join .Data.Outreach.Channels}}
- Social media plan: {{orDash .Data.Outreach.SocialMediaPlan}}
- Press strategy: {{orDash .Data.Outreach.PressStrategy}}
- Content calendar: {{orDash .Data.Outreach.ContentCalendar}}

## Budget

- Total budget: {{orDash .Data.Budget.TotalBudget}}
{{- if .Data.Budget.ExpenseCategories}}

| Category | Amount | Notes |
|---|---|---|
{{- range .Data.Budget.ExpenseCategories}}
| {{orDash .Category}} | {{orDash .Amount}} | {{orDash .Notes}} |
{{- end}}
{{- end}}
- Funding sources: {{orDash .Data.Budget.FundingSources}}
- Contingency plan: {{orDash .Data.Budget.ContingencyPlan}}

## Risk Assessment
{{- if .Data.RiskAssessment.Risks}}

| Risk | Likelihood | Mitigation |
|---|---|---|
{{- range .Data.RiskAssessment.Risks}}
| {{orDash .Risk}} | {{orDash .Likelihood}} | {{orDash .Mitigation}} |
{{- end}}
{{- end}}

- Legal considerations: {{orDash .Data.RiskAssessment.LegalConsiderations}}
- Safety plan: {{orDash .Data.RiskAssessment.SafetyPlan}}
- Crisis communication plan: {{orDash .Data.RiskAssessment.CommunicationCrisisPlan}}
`

var tmpl = template.Must(template.New("plan").Funcs(funcs).Parse(planTemplate))

type planView struct {
	ID        string
	Data      domain.WizardData
	UpdatedAt time.Time
}

// Render produces a Markdown document for the plan. It is total over any
// combination of populated and empty sections.
func Render(plan domain.Plan) ([]byte, error) {
	var buf bytes.Buffer
	view := planView{ID: plan.ID, Data: plan.WizardData, UpdatedAt: plan.UpdatedAt}
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("rendering plan %s: %w", plan.ID, err)
	}
	return buf.Bytes(), nil
}
