package remote

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/path2action/planwizard/internal/domain"
)

// Soft status messages shown next to the step indicator. Sync failures are
// never surfaced as errors to interrupt the user.
const (
	msgNotConfigured = "Remote sync is not configured. Set PLANWIZARD_FIREBASE_API_KEY and PLANWIZARD_FIREBASE_PROJECT_ID."
	msgSaveFailed    = "Failed to save plan to cloud. Your data is still saved locally."
)

type saveJob struct {
	planID string
	data   domain.WizardData
	step   int
}

// Saver coalesces rapid save requests: only the last payload scheduled
// within the quiet window is sent. Superseded pending jobs are replaced,
// not queued; an already-dispatched request is left to finish.
type Saver struct {
	client *Client
	delay  time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	pending   *saveJob
	saving    bool
	errMsg    string
	lastSaved time.Time
}

// Status is a snapshot of the sync state for the UI indicator.
type Status struct {
	Enabled     bool
	Saving      bool
	Err         string
	LastSavedAt time.Time
}

// NewSaver creates a Saver over client using the configured quiet window.
func NewSaver(client *Client) *Saver {
	return &Saver{
		client: client,
		delay:  time.Duration(client.cfg.DebounceMs) * time.Millisecond,
	}
}

// Schedule records a save for planID and (re)starts the quiet-window
// timer. Any previously pending job for this Saver is superseded.
func (s *Saver) Schedule(planID string, data domain.WizardData, step int) {
	if planID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.client.Configured() {
		s.errMsg = msgNotConfigured
		return
	}

	s.pending = &saveJob{planID: planID, data: data, step: step}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Flush sends any pending save immediately, bypassing the quiet window.
// Returns nil when nothing was pending.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	job := s.pending
	s.pending = nil
	s.mu.Unlock()

	if job == nil {
		return nil
	}
	return s.send(ctx, job)
}

// Status returns the current sync status snapshot.
func (s *Saver) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Enabled:     s.client.Configured(),
		Saving:      s.saving || s.pending != nil,
		Err:         s.errMsg,
		LastSavedAt: s.lastSaved,
	}
}

func (s *Saver) fire() {
	s.mu.Lock()
	job := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if job == nil {
		return
	}
	_ = s.send(context.Background(), job)
}

func (s *Saver) send(ctx context.Context, job *saveJob) error {
	s.mu.Lock()
	s.saving = true
	s.mu.Unlock()

	err := s.client.Save(ctx, job.planID, job.data, job.step)

	s.mu.Lock()
	s.saving = false
	switch {
	case errors.Is(err, ErrNotConfigured):
		s.errMsg = msgNotConfigured
	case err != nil:
		s.errMsg = msgSaveFailed
	default:
		s.errMsg = ""
		s.lastSaved = time.Now()
	}
	s.mu.Unlock()
	return err
}
