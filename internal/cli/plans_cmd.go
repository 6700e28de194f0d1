package cli

import (
	"fmt"

	"github.com/path2action/planwizard/internal/cache"
	"github.com/path2action/planwizard/internal/domain"
	"github.com/path2action/planwizard/internal/session"
	"github.com/spf13/cobra"
)

func newPlansCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List locally cached plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := app.Session.CachedPlanIDs()
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cached plans. Run \"planwizard\" to start one.")
				return nil
			}

			active := app.Session.ActiveID()
			for _, id := range ids {
				data := cache.ReadJSON(app.Cache, session.DataKey(id), domain.InitialWizardData())
				step := cache.ReadJSON(app.Cache, session.StepKey(id), 1)

				name := data.GoalSetting.CampaignName
				if name == "" {
					name = "(untitled)"
				}
				marker := " "
				if id == active {
					marker = "*"
				}
				updated := ""
				if t, ok := app.Cache.LastUpdated(session.DataKey(id)); ok {
					updated = "  " + t.Local().Format("2006-01-02 15:04")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  step %2d/10  %s%s\n", marker, id, step, name, updated)
			}
			if active != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "\n* active plan")
			}
			return nil
		},
	}
}
