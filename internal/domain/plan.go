package domain

import "time"

// TotalSteps is the number of steps in the planning wizard.
const TotalSteps = 10

// ClampStep clamps a requested step number to the valid [1, TotalSteps] range.
func ClampStep(n int) int {
	if n < 1 {
		return 1
	}
	if n > TotalSteps {
		return TotalSteps
	}
	return n
}

// Plan is the root entity: everything a user has entered across the wizard
// steps plus the metadata needed to resume it.
type Plan struct {
	ID          string
	WizardData  WizardData
	CurrentStep int
	// UpdatedAt is set by the remote store on every successful write.
	// Zero when the plan has never synced.
	UpdatedAt time.Time
}

// Milestone is a dated entry in the campaign timeline. Slice order is
// display order.
type Milestone struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Role describes one team position.
type Role struct {
	Title            string `json:"title"`
	Responsibilities string `json:"responsibilities"`
}

// ExpenseCategory is one budget line item.
type ExpenseCategory struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes"`
}

// Risk is one entry in the risk assessment matrix.
type Risk struct {
	Risk       string `json:"risk"`
	Likelihood string `json:"likelihood"`
	Mitigation string `json:"mitigation"`
}

type GoalSetting struct {
	CampaignName  string `json:"campaignName"`
	GoalStatement string `json:"goalStatement"`
	CampaignType  string `json:"campaignType"`
	SuccessMetric string `json:"successMetric"`
}

type TargetAudience struct {
	PrimaryAudience  string   `json:"primaryAudience"`
	ParticipantCount string   `json:"participantCount"`
	AgeGroups        []string `json:"ageGroups"`
	GeographicFocus  string   `json:"geographicFocus"`
	KeyStakeholders  string   `json:"keyStakeholders"`
}

type Strategy struct {
	MainApproach    string   `json:"mainApproach"`
	Tactics         []string `json:"tactics"`
	KeyMessages     string   `json:"keyMessages"`
	PotentialAllies string   `json:"potentialAllies"`
}

type Timeline struct {
	StartDate  string      `json:"startDate"`
	EndDate    string      `json:"endDate"`
	Milestones []Milestone `json:"milestones"`
}

type Resources struct {
	ResourceTypes     []string `json:"resourceTypes"`
	VenueType         string   `json:"venueType"`
	MaterialsNeeded   string   `json:"materialsNeeded"`
	ToolsAndEquipment string   `json:"toolsAndEquipment"`
	VenueRequirements string   `json:"venueRequirements"`
}

type Team struct {
	TeamSize              string `json:"teamSize"`
	Roles                 []Role `json:"roles"`
	RecruitmentPlan       string `json:"recruitmentPlan"`
	CommunicationChannels string `json:"communicationChannels"`
}

type Outreach struct {
	Channels        []string `json:"channels"`
	SocialMediaPlan string   `json:"socialMediaPlan"`
	PressStrategy   string   `json:"pressStrategy"`
	ContentCalendar string   `json:"contentCalendar"`
}

type Budget struct {
	ExpenseCategories []ExpenseCategory `json:"expenseCategories"`
	TotalBudget       string            `json:"totalBudget"`
	FundingSources    string            `json:"fundingSources"`
	ContingencyPlan   string            `json:"contingencyPlan"`
}

type RiskAssessment struct {
	Risks                   []Risk `json:"risks"`
	LegalConsiderations     string `json:"legalConsiderations"`
	SafetyPlan              string `json:"safetyPlan"`
	CommunicationCrisisPlan string `json:"communicationCrisisPlan"`
}

// WizardData is the fixed-shape aggregate of all wizard sections. The JSON
// field names match the documents written by the web client so payloads
// round-trip between the two.
type WizardData struct {
	GoalSetting    GoalSetting    `json:"goalSetting"`
	TargetAudience TargetAudience `json:"targetAudience"`
	Strategy       Strategy       `json:"strategy"`
	Timeline       Timeline       `json:"timeline"`
	Resources      Resources      `json:"resources"`
	Team           Team           `json:"team"`
	Outreach       Outreach       `json:"outreach"`
	Budget         Budget         `json:"budget"`
	RiskAssessment RiskAssessment `json:"riskAssessment"`
}

// InitialWizardData returns the empty aggregate. Every section is present
// and every slice is non-nil, so callers never see a partially absent shape.
func InitialWizardData() WizardData {
	return WizardData{
		TargetAudience: TargetAudience{AgeGroups: []string{}},
		Strategy:       Strategy{Tactics: []string{}},
		Timeline:       Timeline{Milestones: []Milestone{}},
		Resources:      Resources{ResourceTypes: []string{}},
		Team:           Team{Roles: []Role{}},
		Outreach:       Outreach{Channels: []string{}},
		Budget:         Budget{ExpenseCategories: []ExpenseCategory{}},
		RiskAssessment: RiskAssessment{Risks: []Risk{}},
	}
}
