package cli

import (
	"fmt"
	"os"

	"github.com/path2action/planwizard/internal/domain"
	"github.com/path2action/planwizard/internal/export"
	"github.com/path2action/planwizard/internal/wizard"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [plan-id]",
		Short: "Render a plan to a Markdown document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicitID := ""
			if len(args) > 0 {
				explicitID = args[0]
			}

			coord := wizard.New(app.Session, app.Cache, app.Remote, app.Saver)
			coord.Start(cmd.Context(), explicitID)
			defer coord.Close()

			path, err := exportPlanFile(coord, outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default plan-<id>.md)")
	return cmd
}

// exportPlanFile renders the coordinator's plan and writes it to path,
// defaulting to plan-<id-prefix>.md in the working directory.
func exportPlanFile(coord *wizard.Coordinator, path string) (string, error) {
	plan := domain.Plan{
		ID:          coord.PlanID(),
		WizardData:  coord.Data(),
		CurrentStep: coord.Step(),
	}

	doc, err := export.Render(plan)
	if err != nil {
		return "", err
	}

	if path == "" {
		id := plan.ID
		if len(id) > 8 {
			id = id[:8]
		}
		path = fmt.Sprintf("plan-%s.md", id)
	}
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
