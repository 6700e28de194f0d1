package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/path2action/planwizard/internal/domain"
)

// stepTitles indexes wizard step metadata by step number (1-based).
var stepTitles = [domain.TotalSteps + 1]struct{ title, desc string }{
	1:  {"Goal Setting", "What is this campaign trying to achieve?"},
	2:  {"Target Audience", "Who are you trying to reach?"},
	3:  {"Strategy", "How will you get there?"},
	4:  {"Timeline", "When does it happen?"},
	5:  {"Resources", "What do you need?"},
	6:  {"Team", "Who is doing the work?"},
	7:  {"Outreach", "How will people hear about it?"},
	8:  {"Budget", "What will it cost?"},
	9:  {"Risk Assessment", "What could go wrong?"},
	10: {"Launch", "Review and share your plan."},
}

// Launch step actions.
const (
	launchExport  = "export"
	launchNewPlan = "new"
	launchQuit    = "quit"
)

// stepBuffer holds the editable text representation of the wizard data for
// form binding. Record lists (milestones, roles, expenses, risks) are
// edited as one line per record with fields separated by " | ".
type stepBuffer struct {
	campaignName, goalStatement, campaignType, successMetric string

	primaryAudience, participantCount string
	ageGroups                         []string
	geographicFocus, keyStakeholders  string

	mainApproach                 string
	tactics                      []string
	keyMessages, potentialAllies string

	startDate, endDate, milestones string

	resourceTypes                                            []string
	venueType, materialsNeeded, toolsAndEquipment, venueReqs string

	teamSize, roles, recruitmentPlan, communicationChannels string

	channels                                        []string
	socialMediaPlan, pressStrategy, contentCalendar string

	expenses, totalBudget, fundingSources, contingencyPlan string

	risks, legalConsiderations, safetyPlan, crisisPlan string

	launchChoice string
}

func bufferFrom(d domain.WizardData) *stepBuffer {
	return &stepBuffer{
		campaignName:  d.GoalSetting.CampaignName,
		goalStatement: d.GoalSetting.GoalStatement,
		campaignType:  d.GoalSetting.CampaignType,
		successMetric: d.GoalSetting.SuccessMetric,

		primaryAudience:  d.TargetAudience.PrimaryAudience,
		participantCount: d.TargetAudience.ParticipantCount,
		ageGroups:        append([]string{}, d.TargetAudience.AgeGroups...),
		geographicFocus:  d.TargetAudience.GeographicFocus,
		keyStakeholders:  d.TargetAudience.KeyStakeholders,

		mainApproach:    d.Strategy.MainApproach,
		tactics:         append([]string{}, d.Strategy.Tactics...),
		keyMessages:     d.Strategy.KeyMessages,
		potentialAllies: d.Strategy.PotentialAllies,

		startDate:  d.Timeline.StartDate,
		endDate:    d.Timeline.EndDate,
		milestones: milestonesToText(d.Timeline.Milestones),

		resourceTypes:     append([]string{}, d.Resources.ResourceTypes...),
		venueType:         d.Resources.VenueType,
		materialsNeeded:   d.Resources.MaterialsNeeded,
		toolsAndEquipment: d.Resources.ToolsAndEquipment,
		venueReqs:         d.Resources.VenueRequirements,

		teamSize:              d.Team.TeamSize,
		roles:                 rolesToText(d.Team.Roles),
		recruitmentPlan:       d.Team.RecruitmentPlan,
		communicationChannels: d.Team.CommunicationChannels,

		channels:        append([]string{}, d.Outreach.Channels...),
		socialMediaPlan: d.Outreach.SocialMediaPlan,
		pressStrategy:   d.Outreach.PressStrategy,
		contentCalendar: d.Outreach.ContentCalendar,

		expenses:        expensesToText(d.Budget.ExpenseCategories),
		totalBudget:     d.Budget.TotalBudget,
		fundingSources:  d.Budget.FundingSources,
		contingencyPlan: d.Budget.ContingencyPlan,

		risks:               risksToText(d.RiskAssessment.Risks),
		legalConsiderations: d.RiskAssessment.LegalConsiderations,
		safetyPlan:          d.RiskAssessment.SafetyPlan,
		crisisPlan:          d.RiskAssessment.CommunicationCrisisPlan,
	}
}

// apply commits the buffer's section for the given step back into d.
// Only the edited section is touched.
func (b *stepBuffer) apply(d *domain.WizardData, step int) {
	switch step {
	case 1:
		d.GoalSetting = domain.GoalSetting{
			CampaignName:  b.campaignName,
			GoalStatement: b.goalStatement,
			CampaignType:  b.campaignType,
			SuccessMetric: b.successMetric,
		}
	case 2:
		d.TargetAudience = domain.TargetAudience{
			PrimaryAudience:  b.primaryAudience,
			ParticipantCount: b.participantCount,
			AgeGroups:        append([]string{}, b.ageGroups...),
			GeographicFocus:  b.geographicFocus,
			KeyStakeholders:  b.keyStakeholders,
		}
	case 3:
		d.Strategy = domain.Strategy{
			MainApproach:    b.mainApproach,
			Tactics:         append([]string{}, b.tactics...),
			KeyMessages:     b.keyMessages,
			PotentialAllies: b.potentialAllies,
		}
	case 4:
		d.Timeline = domain.Timeline{
			StartDate:  b.startDate,
			EndDate:    b.endDate,
			Milestones: textToMilestones(b.milestones),
		}
	case 5:
		d.Resources = domain.Resources{
			ResourceTypes:     append([]string{}, b.resourceTypes...),
			VenueType:         b.venueType,
			MaterialsNeeded:   b.materialsNeeded,
			ToolsAndEquipment: b.toolsAndEquipment,
			VenueRequirements: b.venueReqs,
		}
	case 6:
		d.Team = domain.Team{
			TeamSize:              b.teamSize,
			Roles:                 textToRoles(b.roles),
			RecruitmentPlan:       b.recruitmentPlan,
			CommunicationChannels: b.communicationChannels,
		}
	case 7:
		d.Outreach = domain.Outreach{
			Channels:        append([]string{}, b.channels...),
			SocialMediaPlan: b.socialMediaPlan,
			PressStrategy:   b.pressStrategy,
			ContentCalendar: b.contentCalendar,
		}
	case 8:
		d.Budget = domain.Budget{
			ExpenseCategories: textToExpenses(b.expenses),
			TotalBudget:       b.totalBudget,
			FundingSources:    b.fundingSources,
			ContingencyPlan:   b.contingencyPlan,
		}
	case 9:
		d.RiskAssessment = domain.RiskAssessment{
			Risks:                   textToRisks(b.risks),
			LegalConsiderations:     b.legalConsiderations,
			SafetyPlan:              b.safetyPlan,
			CommunicationCrisisPlan: b.crisisPlan,
		}
	}
}

// stepForm builds the huh form for a wizard step, bound to the buffer.
func stepForm(step int, b *stepBuffer) *huh.Form {
	var group *huh.Group

	switch step {
	case 1:
		group = huh.NewGroup(
			huh.NewInput().Title("Campaign name").Placeholder("Clean Streets Initiative").Value(&b.campaignName),
			huh.NewText().Title("Goal statement").Description("One or two sentences on the change you want to see.").Value(&b.goalStatement),
			huh.NewSelect[string]().Title("Campaign type").Options(
				huh.NewOption("Awareness", "awareness"),
				huh.NewOption("Petition", "petition"),
				huh.NewOption("Event", "event"),
				huh.NewOption("Advocacy", "advocacy"),
			).Value(&b.campaignType),
			huh.NewInput().Title("Success metric").Placeholder("500 signatures collected").Value(&b.successMetric),
		)
	case 2:
		group = huh.NewGroup(
			huh.NewInput().Title("Primary audience").Value(&b.primaryAudience),
			huh.NewSelect[string]().Title("Expected participants").Options(
				huh.NewOption("1-20", "1-20"),
				huh.NewOption("21-50", "21-50"),
				huh.NewOption("51-100", "51-100"),
				huh.NewOption("101-200", "101-200"),
				huh.NewOption("201-500", "201-500"),
				huh.NewOption("500+", "500+"),
			).Value(&b.participantCount),
			huh.NewMultiSelect[string]().Title("Age groups").Options(
				huh.NewOption("Youth", "youth"),
				huh.NewOption("Young adults", "youngAdults"),
				huh.NewOption("Adults", "adults"),
				huh.NewOption("Seniors", "seniors"),
				huh.NewOption("All ages", "allAges"),
			).Value(&b.ageGroups),
			huh.NewInput().Title("Geographic focus").Value(&b.geographicFocus),
			huh.NewText().Title("Key stakeholders").Value(&b.keyStakeholders),
		)
	case 3:
		group = huh.NewGroup(
			huh.NewText().Title("Main approach").Value(&b.mainApproach),
			huh.NewMultiSelect[string]().Title("Tactics").Options(
				huh.NewOption("Social media", "socialMedia"),
				huh.NewOption("Public events", "publicEvents"),
				huh.NewOption("Petitions", "petitions"),
				huh.NewOption("Media outreach", "mediaOutreach"),
				huh.NewOption("Direct action", "directAction"),
				huh.NewOption("Education", "education"),
			).Value(&b.tactics),
			huh.NewText().Title("Key messages").Value(&b.keyMessages),
			huh.NewText().Title("Potential allies").Value(&b.potentialAllies),
		)
	case 4:
		group = huh.NewGroup(
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Placeholder("2026-09-15").Value(&b.startDate).Validate(validateOptionalDate),
			huh.NewInput().Title("End date (YYYY-MM-DD)").Placeholder("2026-12-01").Value(&b.endDate).Validate(validateOptionalDate),
			huh.NewText().Title("Milestones").
				Description("One per line: title | date").
				Placeholder("Kickoff meeting | 2026-09-20").
				Value(&b.milestones),
		)
	case 5:
		group = huh.NewGroup(
			huh.NewMultiSelect[string]().Title("Resource types").Options(
				huh.NewOption("Printing", "printing"),
				huh.NewOption("Digital", "digital"),
				huh.NewOption("Venue", "venue"),
				huh.NewOption("Transportation", "transportation"),
				huh.NewOption("Food", "food"),
				huh.NewOption("Equipment", "equipment"),
			).Value(&b.resourceTypes),
			huh.NewInput().Title("Venue type").Value(&b.venueType),
			huh.NewText().Title("Materials needed").Value(&b.materialsNeeded),
			huh.NewText().Title("Tools and equipment").Value(&b.toolsAndEquipment),
			huh.NewText().Title("Venue requirements").Value(&b.venueReqs),
		)
	case 6:
		group = huh.NewGroup(
			huh.NewInput().Title("Team size").Value(&b.teamSize),
			huh.NewText().Title("Roles").
				Description("One per line: role | responsibilities").
				Placeholder("Coordinator | schedules volunteers, runs weekly check-ins").
				Value(&b.roles),
			huh.NewText().Title("Recruitment plan").Value(&b.recruitmentPlan),
			huh.NewInput().Title("Communication channels").Value(&b.communicationChannels),
		)
	case 7:
		group = huh.NewGroup(
			huh.NewMultiSelect[string]().Title("Outreach channels").Options(
				huh.NewOption("Facebook", "facebook"),
				huh.NewOption("Instagram", "instagram"),
				huh.NewOption("Twitter", "twitter"),
				huh.NewOption("Telegram", "telegram"),
				huh.NewOption("Email", "email"),
				huh.NewOption("Press", "press"),
				huh.NewOption("Flyers", "flyers"),
				huh.NewOption("Word of mouth", "wordOfMouth"),
			).Value(&b.channels),
			huh.NewText().Title("Social media plan").Value(&b.socialMediaPlan),
			huh.NewText().Title("Press strategy").Value(&b.pressStrategy),
			huh.NewText().Title("Content calendar").Value(&b.contentCalendar),
		)
	case 8:
		group = huh.NewGroup(
			huh.NewText().Title("Expense categories").
				Description("One per line: category | amount | notes").
				Placeholder("Printing | 40000 AMD | posters and flyers").
				Value(&b.expenses),
			huh.NewInput().Title("Total budget").Value(&b.totalBudget),
			huh.NewText().Title("Funding sources").Value(&b.fundingSources),
			huh.NewText().Title("Contingency plan").Value(&b.contingencyPlan),
		)
	case 9:
		group = huh.NewGroup(
			huh.NewText().Title("Risks").
				Description("One per line: risk | likelihood | mitigation").
				Placeholder("Low turnout | medium | partner with local groups").
				Value(&b.risks),
			huh.NewText().Title("Legal considerations").Value(&b.legalConsiderations),
			huh.NewText().Title("Safety plan").Value(&b.safetyPlan),
			huh.NewText().Title("Crisis communication plan").Value(&b.crisisPlan),
		)
	case 10:
		group = huh.NewGroup(
			huh.NewSelect[string]().Title("Your plan is ready").Options(
				huh.NewOption("Export plan to Markdown", launchExport),
				huh.NewOption("Start a new plan", launchNewPlan),
				huh.NewOption("Save and quit", launchQuit),
			).Value(&b.launchChoice),
		)
	}

	return huh.NewForm(group).WithTheme(wizardHuhTheme()).WithShowHelp(false)
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// ── record-list text codecs ──────────────────────────────────────────────────

func joinFields(fields ...string) string {
	return strings.Join(fields, " | ")
}

// parseLines splits multiline text into records of exactly n fields,
// padding missing fields with "". Blank lines are skipped.
func parseLines(s string, n int) [][]string {
	var rows [][]string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "|")
		row := make([]string, n)
		for i := 0; i < n && i < len(parts); i++ {
			row[i] = strings.TrimSpace(parts[i])
		}
		rows = append(rows, row)
	}
	return rows
}

func milestonesToText(ms []domain.Milestone) string {
	lines := make([]string, 0, len(ms))
	for _, m := range ms {
		lines = append(lines, joinFields(m.Title, m.Date))
	}
	return strings.Join(lines, "\n")
}

func textToMilestones(s string) []domain.Milestone {
	ms := []domain.Milestone{}
	for _, row := range parseLines(s, 2) {
		ms = append(ms, domain.Milestone{Title: row[0], Date: row[1]})
	}
	return ms
}

func rolesToText(rs []domain.Role) string {
	lines := make([]string, 0, len(rs))
	for _, r := range rs {
		lines = append(lines, joinFields(r.Title, r.Responsibilities))
	}
	return strings.Join(lines, "\n")
}

func textToRoles(s string) []domain.Role {
	rs := []domain.Role{}
	for _, row := range parseLines(s, 2) {
		rs = append(rs, domain.Role{Title: row[0], Responsibilities: row[1]})
	}
	return rs
}

func expensesToText(es []domain.ExpenseCategory) string {
	lines := make([]string, 0, len(es))
	for _, e := range es {
		lines = append(lines, joinFields(e.Category, e.Amount, e.Notes))
	}
	return strings.Join(lines, "\n")
}

func textToExpenses(s string) []domain.ExpenseCategory {
	es := []domain.ExpenseCategory{}
	for _, row := range parseLines(s, 3) {
		es = append(es, domain.ExpenseCategory{Category: row[0], Amount: row[1], Notes: row[2]})
	}
	return es
}

func risksToText(rs []domain.Risk) string {
	lines := make([]string, 0, len(rs))
	for _, r := range rs {
		lines = append(lines, joinFields(r.Risk, r.Likelihood, r.Mitigation))
	}
	return strings.Join(lines, "\n")
}

func textToRisks(s string) []domain.Risk {
	rs := []domain.Risk{}
	for _, row := range parseLines(s, 3) {
		rs = append(rs, domain.Risk{Risk: row[0], Likelihood: row[1], Mitigation: row[2]})
	}
	return rs
}
