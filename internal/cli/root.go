package cli

import (
	"github.com/path2action/planwizard/internal/assist"
	"github.com/path2action/planwizard/internal/availability"
	"github.com/path2action/planwizard/internal/booking"
	"github.com/path2action/planwizard/internal/cache"
	"github.com/path2action/planwizard/internal/remote"
	"github.com/path2action/planwizard/internal/session"
	"github.com/spf13/cobra"
)

// App holds references to the components used by CLI commands.
type App struct {
	Session  *session.Context
	Cache    *cache.Store
	Remote   *remote.Client
	Saver    *remote.Saver
	Assist   *assist.Client
	Booking  booking.Sender
	Schedule *availability.Schedule

	// IsInteractive reports whether stdin is an interactive terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "planwizard" command and registers all
// subcommands against the provided App. Running the bare command opens
// the wizard.
func NewRootCmd(app *App) *cobra.Command {
	wizard := newWizardCmd(app)

	root := &cobra.Command{
		Use:   "planwizard",
		Short: "Guided civic-campaign planner with local cache and cloud sync",
		Args:  cobra.MaximumNArgs(1),
		RunE:  wizard.RunE,
	}

	root.AddCommand(
		wizard,
		newPlansCmd(app),
		newExportCmd(app),
		newVenuesCmd(app),
		newSyncCmd(app),
		newImproveCmd(app),
	)

	return root
}
