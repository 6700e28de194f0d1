package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/path2action/planwizard/internal/availability"
	"github.com/path2action/planwizard/internal/booking"
	"github.com/path2action/planwizard/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateFlag is a pflag.Value that only accepts YYYY-MM-DD.
type dateFlag struct {
	value string
}

func (d *dateFlag) String() string { return d.value }
func (d *dateFlag) Type() string   { return "date" }

func (d *dateFlag) Set(s string) error {
	if _, err := time.Parse(domain.DateFormat, s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	d.value = s
	return nil
}

var _ pflag.Value = (*dateFlag)(nil)

func newVenuesCmd(app *App) *cobra.Command {
	var date dateFlag
	var book bool

	cmd := &cobra.Command{
		Use:   "venues",
		Short: "Show venue availability and request a booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if book {
				if !app.IsInteractive() {
					return fmt.Errorf("booking requires an interactive terminal")
				}
				return runBookingFlow(cmd, app)
			}
			printAvailability(cmd, app.Schedule, date.value)
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "show slot details for one day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&book, "book", false, "start the interactive booking flow")
	return cmd
}

func printAvailability(cmd *cobra.Command, sched *availability.Schedule, date string) {
	out := cmd.OutOrStdout()
	for _, v := range sched.Venues {
		fmt.Fprintf(out, "%s — %s (%s)\n", v.Name, v.Address, v.Capacity)

		va, ok := sched.ForVenue(v.ID)
		if !ok {
			fmt.Fprintln(out, "  no availability data")
			continue
		}

		for _, day := range va.Days {
			if date != "" && day.Date != date {
				continue
			}
			free := availability.AvailableSlots(day)
			switch {
			case len(free) == 0:
				fmt.Fprintf(out, "  %s  fully booked\n", day.Date)
			case date != "":
				starts := make([]string, 0, len(free))
				for _, s := range free {
					starts = append(starts, s.Start)
				}
				fmt.Fprintf(out, "  %s  free: %s\n", day.Date, strings.Join(starts, " "))
			default:
				fmt.Fprintf(out, "  %s  %d of %d slots free\n", day.Date, len(free), len(day.Slots))
			}
		}
		fmt.Fprintln(out)
	}
}

// runBookingFlow walks venue → day → start slot → duration → email, with
// each choice list derived from the previous one so an ineligible option
// can never be picked.
func runBookingFlow(cmd *cobra.Command, app *App) error {
	sched := app.Schedule
	today := time.Now()

	var venueID int
	venueOpts := make([]huh.Option[int], 0, len(sched.Venues))
	for _, v := range sched.Venues {
		venueOpts = append(venueOpts, huh.NewOption(fmt.Sprintf("%s — %s", v.Name, v.Capacity), v.ID))
	}
	if err := runForm(huh.NewSelect[int]().Title("Which venue?").Options(venueOpts...).Value(&venueID)); err != nil {
		return err
	}

	venue, _ := sched.VenueByID(venueID)
	va, ok := sched.ForVenue(venueID)
	if !ok {
		return fmt.Errorf("no availability data for %s", venue.Name)
	}

	var date string
	dayOpts := []huh.Option[string]{}
	for _, day := range va.Days {
		if !availability.IsDateDisabled(va, day.Date, today) {
			dayOpts = append(dayOpts, huh.NewOption(day.Date, day.Date))
		}
	}
	if len(dayOpts) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is fully booked for the coming days.\n", venue.Name)
		return nil
	}
	if err := runForm(huh.NewSelect[string]().Title("Which day?").Options(dayOpts...).Value(&date)); err != nil {
		return err
	}

	day, _ := availability.DayFor(va, date)
	var start string
	slotOpts := []huh.Option[string]{}
	for _, s := range availability.AvailableSlots(day) {
		slotOpts = append(slotOpts, huh.NewOption(fmt.Sprintf("%s – %s", s.Start, s.End), s.Start))
	}
	if err := runForm(huh.NewSelect[string]().Title("Starting at?").Options(slotOpts...).Value(&start)); err != nil {
		return err
	}

	maxHours := availability.MaxConsecutiveFreeHours(day, start)
	var hours int
	hourOpts := make([]huh.Option[int], 0, maxHours)
	for h := 1; h <= maxHours; h++ {
		hourOpts = append(hourOpts, huh.NewOption(fmt.Sprintf("%d h", h), h))
	}
	if err := runForm(huh.NewSelect[int]().Title("For how many hours?").Options(hourOpts...).Value(&hours)); err != nil {
		return err
	}

	var email string
	if err := runForm(huh.NewInput().Title("Your email").Placeholder("you@example.org").Value(&email).Validate(validateEmail)); err != nil {
		return err
	}

	req := booking.Request{
		VenueName:       venue.Name,
		Date:            date,
		StartTime:       start,
		Hours:           hours,
		RequesterEmail:  email,
		VenueOwnerEmail: venue.OwnerEmail,
	}
	if err := app.Booking.Send(cmd.Context(), req); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Could not send the booking request: %v\n", err)
		fmt.Fprintf(cmd.OutOrStdout(), "Contact the venue directly: %s\n", venue.OwnerEmail)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Booking request sent for %s on %s at %s (%d h).\n",
		venue.Name, date, start, hours)
	return nil
}

func runForm(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(wizardHuhTheme()).
		WithShowHelp(false).
		Run()
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at < 1 || !strings.Contains(s[at:], ".") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}
