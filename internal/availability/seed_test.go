package availability

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/path2action/planwizard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchedule_EmbeddedDefault(t *testing.T) {
	today := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	sched, err := LoadSchedule("", today)
	require.NoError(t, err)

	require.NotEmpty(t, sched.Venues)
	require.NotEmpty(t, sched.Availability)

	for _, v := range sched.Venues {
		assert.NotEmpty(t, v.Name, "venue %d", v.ID)
		assert.NotEmpty(t, v.OwnerEmail, "venue %d", v.ID)
		va, ok := sched.ForVenue(v.ID)
		require.True(t, ok, "venue %d has no availability", v.ID)
		for _, day := range va.Days {
			assert.Len(t, day.Slots, 12)
			_, err := time.Parse(domain.DateFormat, day.Date)
			assert.NoError(t, err)
		}
	}
}

func TestLoadSchedule_MaterializesOffsets(t *testing.T) {
	seed := `venues:
  - id: 1
    name: Test Hall
    ownerEmail: owner@example.com
availability:
  - venueId: 1
    days:
      - offset: 0
        bookedStarts: ["10:00"]
      - offset: 2
        fullyBooked: true
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	today := time.Date(2026, 8, 28, 17, 0, 0, 0, time.UTC)
	sched, err := LoadSchedule(path, today)
	require.NoError(t, err)

	venue, ok := sched.VenueByID(1)
	require.True(t, ok)
	assert.Equal(t, "Test Hall", venue.Name)

	va, ok := sched.ForVenue(1)
	require.True(t, ok)
	require.Len(t, va.Days, 2)

	assert.Equal(t, "2026-08-28", va.Days[0].Date)
	assert.Len(t, AvailableSlots(va.Days[0]), 11)

	assert.Equal(t, "2026-08-30", va.Days[1].Date)
	assert.True(t, IsFullyBooked(va.Days[1]))
}

func TestLoadSchedule_MissingFile(t *testing.T) {
	_, err := LoadSchedule(filepath.Join(t.TempDir(), "nope.yaml"), time.Now())
	assert.Error(t, err)
}

func TestLoadSchedule_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("venues: ["), 0o644))

	_, err := LoadSchedule(path, time.Now())
	assert.Error(t, err)
}

func TestScheduleLookups_Unknown(t *testing.T) {
	sched, err := LoadSchedule("", time.Now())
	require.NoError(t, err)

	_, ok := sched.VenueByID(999)
	assert.False(t, ok)
	_, ok = sched.ForVenue(999)
	assert.False(t, ok)
}
