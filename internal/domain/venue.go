package domain

// DateFormat is the calendar day key used throughout availability data.
const DateFormat = "2006-01-02"

// TimeSlot is a fixed one-hour bookable interval within a venue's day.
// Booked is the only field that varies between slots of the same day.
type TimeSlot struct {
	Start  string `json:"start" yaml:"start"`
	End    string `json:"end" yaml:"end"`
	Booked bool   `json:"booked" yaml:"booked"`
}

// DayAvailability is one calendar day's schedule for one venue: contiguous
// hourly slots covering the daily bookable window, in chronological order.
type DayAvailability struct {
	Date  string     `json:"date" yaml:"date"`
	Slots []TimeSlot `json:"slots" yaml:"slots"`
}

// VenueAvailability holds the forward schedule for a single venue.
type VenueAvailability struct {
	VenueID int               `json:"venueId" yaml:"venueId"`
	Days    []DayAvailability `json:"availability" yaml:"availability"`
}

// Venue describes a bookable location.
type Venue struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Address     string  `json:"address" yaml:"address"`
	Lat         float64 `json:"lat" yaml:"lat"`
	Lng         float64 `json:"lng" yaml:"lng"`
	Capacity    string  `json:"capacity" yaml:"capacity"`
	OwnerEmail  string  `json:"ownerEmail" yaml:"ownerEmail"`
}

// Coordinates returns the (lat, lng, label) triple handed to the map
// rendering collaborator.
func (v Venue) Coordinates() (float64, float64, string) {
	return v.Lat, v.Lng, v.Name
}
