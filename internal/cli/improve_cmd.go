package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/path2action/planwizard/internal/domain"
	"github.com/path2action/planwizard/internal/wizard"
	"github.com/spf13/cobra"
)

// improvableField binds a field name to its accessors on the aggregate.
type improvableField struct {
	context string // human description fed to the assistant
	get     func(d *domain.WizardData) string
	set     func(d *domain.WizardData, v string)
}

// improvableFields lists the free-text fields the assistant can rewrite.
var improvableFields = map[string]improvableField{
	"goalStatement": {
		context: "campaign goal statement",
		get:     func(d *domain.WizardData) string { return d.GoalSetting.GoalStatement },
		set:     func(d *domain.WizardData, v string) { d.GoalSetting.GoalStatement = v },
	},
	"keyStakeholders": {
		context: "key stakeholders description",
		get:     func(d *domain.WizardData) string { return d.TargetAudience.KeyStakeholders },
		set:     func(d *domain.WizardData, v string) { d.TargetAudience.KeyStakeholders = v },
	},
	"mainApproach": {
		context: "campaign strategy main approach",
		get:     func(d *domain.WizardData) string { return d.Strategy.MainApproach },
		set:     func(d *domain.WizardData, v string) { d.Strategy.MainApproach = v },
	},
	"keyMessages": {
		context: "campaign key messages",
		get:     func(d *domain.WizardData) string { return d.Strategy.KeyMessages },
		set:     func(d *domain.WizardData, v string) { d.Strategy.KeyMessages = v },
	},
	"recruitmentPlan": {
		context: "volunteer recruitment plan",
		get:     func(d *domain.WizardData) string { return d.Team.RecruitmentPlan },
		set:     func(d *domain.WizardData, v string) { d.Team.RecruitmentPlan = v },
	},
	"socialMediaPlan": {
		context: "social media outreach plan",
		get:     func(d *domain.WizardData) string { return d.Outreach.SocialMediaPlan },
		set:     func(d *domain.WizardData, v string) { d.Outreach.SocialMediaPlan = v },
	},
	"pressStrategy": {
		context: "press outreach strategy",
		get:     func(d *domain.WizardData) string { return d.Outreach.PressStrategy },
		set:     func(d *domain.WizardData, v string) { d.Outreach.PressStrategy = v },
	},
	"safetyPlan": {
		context: "event safety plan",
		get:     func(d *domain.WizardData) string { return d.RiskAssessment.SafetyPlan },
		set:     func(d *domain.WizardData, v string) { d.RiskAssessment.SafetyPlan = v },
	},
}

func newImproveCmd(app *App) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "improve <field> [plan-id]",
		Short: "Let the AI assistant rewrite one plan field",
		Long: "Rewrites a free-text field of the plan with the AI assistant.\n" +
			"Available fields: " + strings.Join(improvableFieldNames(), ", "),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := improvableFields[args[0]]
			if !ok {
				return fmt.Errorf("unknown field %q (available: %s)", args[0], strings.Join(improvableFieldNames(), ", "))
			}
			if !app.Assist.Enabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "The AI assistant is disabled. Set PLANWIZARD_OPENAI_API_KEY to enable it.")
				return nil
			}

			explicitID := ""
			if len(args) > 1 {
				explicitID = args[1]
			}
			coord := wizard.New(app.Session, app.Cache, app.Remote, app.Saver)
			coord.Start(cmd.Context(), explicitID)
			defer coord.Close()

			data := coord.Data()
			campaign := data.GoalSetting.CampaignName
			improved, err := app.Assist.Improve(cmd.Context(), field.get(&data), field.context, campaign)
			if err != nil {
				return fmt.Errorf("improving %s: %w", args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), improved)
			if !apply {
				fmt.Fprintln(cmd.OutOrStdout(), "\nRe-run with --apply to save this version.")
				return nil
			}

			coord.UpdateData(func(d *domain.WizardData) {
				field.set(d, improved)
			})
			if err := coord.Flush(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Saved locally; cloud sync will retry on next run.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "write the improved text back into the plan")
	return cmd
}

func improvableFieldNames() []string {
	names := make([]string, 0, len(improvableFields))
	for name := range improvableFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
