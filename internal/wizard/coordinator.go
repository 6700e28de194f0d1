// Package wizard owns the in-memory plan document for one wizard session
// and keeps it durable: every mutation lands in the local cache
// synchronously and reaches the remote store through a debounced save.
package wizard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/path2action/planwizard/internal/cache"
	"github.com/path2action/planwizard/internal/domain"
	"github.com/path2action/planwizard/internal/remote"
	"github.com/path2action/planwizard/internal/session"
)

// Phase is the coordinator lifecycle state.
type Phase string

const (
	PhaseUninitialized     Phase = "uninitialized"
	PhaseResolvingIdentity Phase = "resolving_identity"
	PhaseLoadingRemote     Phase = "loading_remote"
	PhaseReady             Phase = "ready"
)

// RemoteLoader is the read side of the remote plan store.
type RemoteLoader interface {
	Load(ctx context.Context, planID string) (*remote.PlanSnapshot, error)
}

// SaveScheduler is the debounced write side of the remote plan store.
type SaveScheduler interface {
	Schedule(planID string, data domain.WizardData, step int)
	Flush(ctx context.Context) error
	Status() remote.Status
}

// Coordinator drives one wizard session. Construct with New, call Start
// once, then mutate through UpdateData and the step methods.
type Coordinator struct {
	session *session.Context
	store   *cache.Store
	loader  RemoteLoader
	saver   SaveScheduler

	mu                sync.Mutex
	phase             Phase
	planID            string
	data              domain.WizardData
	step              int
	initialLoading    bool
	remoteUnavailable bool
	updatedAt         time.Time
	unwatch           []func()
}

// New creates a Coordinator. All collaborators are injected; the
// coordinator holds no ambient global state.
func New(sess *session.Context, store *cache.Store, loader RemoteLoader, saver SaveScheduler) *Coordinator {
	return &Coordinator{
		session:        sess,
		store:          store,
		loader:         loader,
		saver:          saver,
		phase:          PhaseUninitialized,
		data:           domain.InitialWizardData(),
		step:           1,
		initialLoading: true,
	}
}

// Start resolves the plan identity and performs the initial load. The plan
// id is fixed for the session afterwards (until StartNewPlan).
//
// Load precedence: a non-nil remote snapshot overwrites both the in-memory
// document and the cache. A nil snapshot or a remote error keeps whatever
// the cache holds, or the defaults. No remote save can be scheduled before
// Start returns, so a default document can never clobber real remote data
// during the mount/load race.
func (c *Coordinator) Start(ctx context.Context, explicitID string) {
	c.mu.Lock()
	c.phase = PhaseResolvingIdentity
	c.mu.Unlock()

	planID, _ := c.session.Resolve(explicitID)

	c.mu.Lock()
	c.planID = planID
	c.data = cache.ReadJSON(c.store, session.DataKey(planID), domain.InitialWizardData())
	c.step = domain.ClampStep(cache.ReadJSON(c.store, session.StepKey(planID), 1))
	c.phase = PhaseLoadingRemote
	c.mu.Unlock()

	snap, err := c.loader.Load(ctx, planID)

	c.mu.Lock()
	switch {
	case err != nil:
		c.remoteUnavailable = true
	case snap != nil:
		c.data = snap.WizardData
		c.step = domain.ClampStep(snap.CurrentStep)
		c.updatedAt = snap.UpdatedAt
		cache.WriteJSON(c.store, session.DataKey(planID), c.data)
		cache.WriteJSON(c.store, session.StepKey(planID), c.step)
	}
	c.initialLoading = false
	c.phase = PhaseReady
	c.mu.Unlock()

	c.watchKeys(planID)
}

// UpdateData applies fn to the plan document, writes the cache, and
// schedules a debounced remote save. The cache write happens before any
// remote call, so the cache is always ahead of or equal to the remote copy.
func (c *Coordinator) UpdateData(fn func(*domain.WizardData)) {
	c.mu.Lock()
	fn(&c.data)
	data, step, planID := c.data, c.step, c.planID
	loading := c.initialLoading
	c.mu.Unlock()

	cache.WriteJSON(c.store, session.DataKey(planID), data)
	if !loading {
		c.saver.Schedule(planID, data, step)
	}
}

// GoToStep navigates to step n. Out-of-range requests are clamped;
// a request that lands on the current step is a no-op.
func (c *Coordinator) GoToStep(n int) {
	target := domain.ClampStep(n)

	c.mu.Lock()
	if target == c.step {
		c.mu.Unlock()
		return
	}
	c.step = target
	data, step, planID := c.data, c.step, c.planID
	loading := c.initialLoading
	c.mu.Unlock()

	cache.WriteJSON(c.store, session.StepKey(planID), step)
	if !loading {
		c.saver.Schedule(planID, data, step)
	}
}

// NextStep advances one step; a no-op on the final step.
func (c *Coordinator) NextStep() { c.GoToStep(c.Step() + 1) }

// PreviousStep goes back one step; a no-op on the first step.
func (c *Coordinator) PreviousStep() { c.GoToStep(c.Step() - 1) }

// StartNewPlan switches the session to a fresh plan id with the default
// document at step 1. The previous plan's cache entries and remote
// document are left in place and remain reachable by explicit id.
func (c *Coordinator) StartNewPlan() string {
	c.stopWatching()
	id := c.session.StartNewPlan()

	c.mu.Lock()
	c.planID = id
	c.data = domain.InitialWizardData()
	c.step = 1
	c.updatedAt = time.Time{}
	c.remoteUnavailable = false
	data, step := c.data, c.step
	c.mu.Unlock()

	cache.WriteJSON(c.store, session.DataKey(id), data)
	cache.WriteJSON(c.store, session.StepKey(id), step)
	c.watchKeys(id)
	return id
}

// Flush pushes any pending remote save immediately.
func (c *Coordinator) Flush(ctx context.Context) error {
	return c.saver.Flush(ctx)
}

// Close unsubscribes from cache change notifications.
func (c *Coordinator) Close() { c.stopWatching() }

// Data returns a snapshot of the current plan document.
func (c *Coordinator) Data() domain.WizardData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Step returns the current step.
func (c *Coordinator) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// PlanID returns the session's plan id ("" before Start).
func (c *Coordinator) PlanID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.planID
}

// Phase returns the lifecycle phase.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// RemoteUnavailable reports whether the initial remote load failed. The
// session still reaches Ready on cache-only data.
func (c *Coordinator) RemoteUnavailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remoteUnavailable
}

// SyncStatus returns the remote save status for the UI indicator.
func (c *Coordinator) SyncStatus() remote.Status {
	return c.saver.Status()
}

// watchKeys mirrors out-of-band cache changes (another process editing the
// same plan) into memory. Last write observed wins; no merging.
func (c *Coordinator) watchKeys(planID string) {
	stopData := c.store.OnExternalChange(session.DataKey(planID), func(raw []byte) {
		var data domain.WizardData
		if err := json.Unmarshal(raw, &data); err != nil {
			return
		}
		c.mu.Lock()
		if c.planID == planID {
			c.data = data
		}
		c.mu.Unlock()
	})
	stopStep := c.store.OnExternalChange(session.StepKey(planID), func(raw []byte) {
		var step int
		if err := json.Unmarshal(raw, &step); err != nil {
			return
		}
		c.mu.Lock()
		if c.planID == planID {
			c.step = domain.ClampStep(step)
		}
		c.mu.Unlock()
	})

	c.mu.Lock()
	c.unwatch = []func(){stopData, stopStep}
	c.mu.Unlock()
}

func (c *Coordinator) stopWatching() {
	c.mu.Lock()
	stops := c.unwatch
	c.unwatch = nil
	c.mu.Unlock()
	for _, stop := range stops {
		stop()
	}
}
