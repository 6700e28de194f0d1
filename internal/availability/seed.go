package availability

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/path2action/planwizard/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Schedule holds the venues and their materialized forward availability.
type Schedule struct {
	Venues       []domain.Venue
	Availability []domain.VenueAvailability
}

// seed file shape: days are expressed as offsets from "today" so the
// window always starts at the current date.
type seedDay struct {
	Offset       int      `yaml:"offset"`
	FullyBooked  bool     `yaml:"fullyBooked"`
	BookedStarts []string `yaml:"bookedStarts"`
}

type seedVenueDays struct {
	VenueID int       `yaml:"venueId"`
	Days    []seedDay `yaml:"days"`
}

type seedFile struct {
	Venues       []domain.Venue  `yaml:"venues"`
	Availability []seedVenueDays `yaml:"availability"`
}

// LoadSchedule reads a seed file (or the embedded default when path is "")
// and materializes day offsets into calendar dates relative to today.
func LoadSchedule(path string, today time.Time) (*Schedule, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading availability seed: %w", err)
		}
		raw = b
	}

	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parsing availability seed: %w", err)
	}

	sched := &Schedule{Venues: sf.Venues}
	for _, v := range sf.Availability {
		va := domain.VenueAvailability{VenueID: v.VenueID}
		for _, d := range v.Days {
			starts := d.BookedStarts
			if d.FullyBooked {
				starts = allStarts()
			}
			va.Days = append(va.Days, domain.DayAvailability{
				Date:  today.AddDate(0, 0, d.Offset).Format(domain.DateFormat),
				Slots: GenerateSlots(starts),
			})
		}
		sched.Availability = append(sched.Availability, va)
	}
	return sched, nil
}

// VenueByID returns the venue with the given id.
func (s *Schedule) VenueByID(id int) (domain.Venue, bool) {
	for _, v := range s.Venues {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Venue{}, false
}

// ForVenue returns the availability for a venue id.
func (s *Schedule) ForVenue(id int) (domain.VenueAvailability, bool) {
	for _, va := range s.Availability {
		if va.VenueID == id {
			return va, true
		}
	}
	return domain.VenueAvailability{}, false
}

func allStarts() []string {
	starts := make([]string, 0, DayEndHour-DayStartHour)
	for hour := DayStartHour; hour < DayEndHour; hour++ {
		starts = append(starts, fmt.Sprintf("%02d:00", hour))
	}
	return starts
}
