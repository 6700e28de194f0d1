package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/path2action/planwizard/internal/assist"
	"github.com/path2action/planwizard/internal/availability"
	"github.com/path2action/planwizard/internal/booking"
	"github.com/path2action/planwizard/internal/cache"
	"github.com/path2action/planwizard/internal/cli"
	"github.com/path2action/planwizard/internal/db"
	"github.com/path2action/planwizard/internal/remote"
	"github.com/path2action/planwizard/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine cache DB path: env var or default ~/.planwizard/planwizard.db
	dbPath := os.Getenv("PLANWIZARD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".planwizard", "planwizard.db")
	}

	// Open the local cache database. A failure here degrades to an
	// in-memory session rather than refusing to start.
	var store *cache.Store
	if database, err := db.OpenDB(dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: local cache unavailable (%v); changes will not survive restarts\n", err)
		store = cache.NewStore(nil)
	} else {
		defer database.Close()
		store = cache.NewStore(database)
	}

	// Wire the remote plan store (disabled without credentials).
	remoteCfg := remote.LoadConfig()
	var observer remote.Observer = remote.NoopObserver{}
	if remoteCfg.LogSync {
		observer = remote.NewLogObserver(os.Stderr)
	}
	remoteClient := remote.NewClient(remoteCfg, observer)
	saver := remote.NewSaver(remoteClient)

	// Venue schedule: seed file override or the embedded default.
	sched, err := availability.LoadSchedule(os.Getenv("PLANWIZARD_AVAILABILITY"), time.Now())
	if err != nil {
		return fmt.Errorf("loading venue availability: %w", err)
	}

	app := &cli.App{
		Session:  session.NewContext(store),
		Cache:    store,
		Remote:   remoteClient,
		Saver:    saver,
		Assist:   assist.NewClient(assist.LoadConfig()),
		Booking:  booking.NewEmailSender(booking.LoadConfig()),
		Schedule: sched,
	}

	// Detect interactive terminal for the TUI entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
