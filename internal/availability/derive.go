// Package availability derives bookable choices from per-day venue
// schedules: which days are selectable, which slots remain, and how many
// contiguous hours a booking may run from a chosen start.
package availability

import (
	"fmt"
	"time"

	"github.com/path2action/planwizard/internal/domain"
)

const (
	// Bookable window of a day: hourly slots from 09:00 to 21:00.
	DayStartHour = 9
	DayEndHour   = 21

	// LookaheadDays bounds how far ahead the booking calendar models.
	// Dates beyond it are neither available nor bookable through this path.
	LookaheadDays = 30
)

// GenerateSlots builds the fixed hourly slot sequence for one day, marking
// slots whose start time appears in bookedStarts.
func GenerateSlots(bookedStarts []string) []domain.TimeSlot {
	booked := make(map[string]bool, len(bookedStarts))
	for _, s := range bookedStarts {
		booked[s] = true
	}

	slots := make([]domain.TimeSlot, 0, DayEndHour-DayStartHour)
	for hour := DayStartHour; hour < DayEndHour; hour++ {
		start := fmt.Sprintf("%02d:00", hour)
		slots = append(slots, domain.TimeSlot{
			Start:  start,
			End:    fmt.Sprintf("%02d:00", hour+1),
			Booked: booked[start],
		})
	}
	return slots
}

// IsFullyBooked reports whether every slot in the day is booked.
func IsFullyBooked(day domain.DayAvailability) bool {
	for _, s := range day.Slots {
		if !s.Booked {
			return false
		}
	}
	return true
}

// AvailableSlots returns the unbooked slots in chronological order.
func AvailableSlots(day domain.DayAvailability) []domain.TimeSlot {
	var free []domain.TimeSlot
	for _, s := range day.Slots {
		if !s.Booked {
			free = append(free, s)
		}
	}
	return free
}

// MaxConsecutiveFreeHours counts forward from the slot starting at start,
// stopping at the first booked slot or the end of the day. The result
// bounds a booking's duration so it can never run into a booked slot.
// Returns 0 when start does not match any slot.
func MaxConsecutiveFreeHours(day domain.DayAvailability, start string) int {
	idx := -1
	for i, s := range day.Slots {
		if s.Start == start {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0
	}

	count := 0
	for i := idx; i < len(day.Slots); i++ {
		if day.Slots[i].Booked {
			break
		}
		count++
	}
	return count
}

// DayFor returns the venue's schedule for a calendar date.
func DayFor(venue domain.VenueAvailability, date string) (domain.DayAvailability, bool) {
	for _, d := range venue.Days {
		if d.Date == date {
			return d, true
		}
	}
	return domain.DayAvailability{}, false
}

// IsDateDisabled reports whether date is ineligible for booking at this
// venue: strictly in the past by calendar day, beyond the lookahead
// window, or fully booked.
func IsDateDisabled(venue domain.VenueAvailability, date string, today time.Time) bool {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return true
	}
	t, _ := time.Parse(domain.DateFormat, today.Format(domain.DateFormat))

	if d.Before(t) {
		return true
	}
	if d.After(t.AddDate(0, 0, LookaheadDays)) {
		return true
	}
	if day, ok := DayFor(venue, date); ok && IsFullyBooked(day) {
		return true
	}
	return false
}
