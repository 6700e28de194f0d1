package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/path2action/planwizard/internal/wizard"
	"github.com/spf13/cobra"
)

func newWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard [plan-id]",
		Short: "Open the step-by-step campaign planner",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicitID := ""
			if len(args) > 0 {
				explicitID = args[0]
			}

			coord := wizard.New(app.Session, app.Cache, app.Remote, app.Saver)
			coord.Start(cmd.Context(), explicitID)
			defer coord.Close()

			if !app.IsInteractive() {
				printPlanSummary(cmd, coord)
				return nil
			}

			stopWatch := app.Cache.StartWatching(time.Second)
			defer stopWatch()

			p := tea.NewProgram(newWizardModel(app, coord), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running wizard: %w", err)
			}

			// Push the final state before exiting; a hung network just
			// means the local copy stays ahead until next run.
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = coord.Flush(ctx)
			return nil
		},
	}
}

func printPlanSummary(cmd *cobra.Command, coord *wizard.Coordinator) {
	data := coord.Data()
	name := data.GoalSetting.CampaignName
	if name == "" {
		name = "(untitled)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Plan %s\n", coord.PlanID())
	fmt.Fprintf(cmd.OutOrStdout(), "  Campaign: %s\n", name)
	fmt.Fprintf(cmd.OutOrStdout(), "  Step:     %d of 10\n", coord.Step())
	if coord.RemoteUnavailable() {
		fmt.Fprintln(cmd.OutOrStdout(), "  Sync:     offline, using local copy")
	} else if st := coord.SyncStatus(); !st.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "  Sync:     local only")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "  Sync:     up to date")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Run inside a terminal to edit the plan interactively.")
}
