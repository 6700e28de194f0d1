package cli

import (
	"fmt"

	"github.com/path2action/planwizard/internal/wizard"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [plan-id]",
		Short: "Push a plan to the remote store immediately",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicitID := ""
			if len(args) > 0 {
				explicitID = args[0]
			}

			coord := wizard.New(app.Session, app.Cache, app.Remote, app.Saver)
			coord.Start(cmd.Context(), explicitID)
			defer coord.Close()

			if !app.Remote.Configured() {
				fmt.Fprintln(cmd.OutOrStdout(), "Remote sync is not configured; plan is saved locally only.")
				fmt.Fprintln(cmd.OutOrStdout(), "Set PLANWIZARD_FIREBASE_API_KEY and PLANWIZARD_FIREBASE_PROJECT_ID to enable it.")
				return nil
			}

			// Schedule then flush so the full current state goes out even
			// when nothing changed this run.
			app.Saver.Schedule(coord.PlanID(), coord.Data(), coord.Step())
			if err := coord.Flush(cmd.Context()); err != nil {
				return fmt.Errorf("syncing plan %s: %w", coord.PlanID(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Plan %s synced at step %d.\n", coord.PlanID(), coord.Step())
			return nil
		},
	}
}
