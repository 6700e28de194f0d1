package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/path2action/planwizard/internal/cache"
	"github.com/path2action/planwizard/internal/domain"
	"github.com/path2action/planwizard/internal/remote"
	"github.com/path2action/planwizard/internal/session"
	"github.com/path2action/planwizard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader serves canned snapshots per plan id.
type fakeLoader struct {
	snaps map[string]*remote.PlanSnapshot
	err   error
	calls []string
}

func (f *fakeLoader) Load(_ context.Context, planID string) (*remote.PlanSnapshot, error) {
	f.calls = append(f.calls, planID)
	if f.err != nil {
		return nil, f.err
	}
	return f.snaps[planID], nil
}

// fakeSaver records scheduled saves instead of talking to the network.
type fakeSaver struct {
	mu      sync.Mutex
	jobs    []scheduledSave
	flushes int
}

type scheduledSave struct {
	planID string
	data   domain.WizardData
	step   int
}

func (f *fakeSaver) Schedule(planID string, data domain.WizardData, step int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, scheduledSave{planID: planID, data: data, step: step})
}

func (f *fakeSaver) Flush(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

func (f *fakeSaver) Status() remote.Status { return remote.Status{Enabled: true} }

func (f *fakeSaver) scheduled() []scheduledSave {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]scheduledSave{}, f.jobs...)
}

type coordFixture struct {
	store  *cache.Store
	sess   *session.Context
	loader *fakeLoader
	saver  *fakeSaver
	coord  *Coordinator
}

func newCoordFixture(t *testing.T) *coordFixture {
	t.Helper()
	store := cache.NewStore(testutil.NewTestDB(t))
	f := &coordFixture{
		store:  store,
		sess:   session.NewContext(store),
		loader: &fakeLoader{snaps: map[string]*remote.PlanSnapshot{}},
		saver:  &fakeSaver{},
	}
	f.coord = New(f.sess, store, f.loader, f.saver)
	t.Cleanup(f.coord.Close)
	return f
}

func TestCoordinator_FreshStart(t *testing.T) {
	f := newCoordFixture(t)

	assert.Equal(t, PhaseUninitialized, f.coord.Phase())
	f.coord.Start(context.Background(), "")

	assert.Equal(t, PhaseReady, f.coord.Phase())
	assert.NotEmpty(t, f.coord.PlanID())
	assert.Equal(t, 1, f.coord.Step())
	assert.Equal(t, domain.InitialWizardData(), f.coord.Data())
	assert.False(t, f.coord.RemoteUnavailable())
}

func TestCoordinator_RemoteWinsOverCache(t *testing.T) {
	f := newCoordFixture(t)

	// Stale local copy for the plan we are about to open.
	stale := testutil.NewTestWizardData(testutil.WithCampaignName("Stale Local"))
	cache.WriteJSON(f.store, session.DataKey("plan123"), stale)
	cache.WriteJSON(f.store, session.StepKey("plan123"), 2)

	remoteData := testutil.NewTestWizardData(testutil.WithCampaignName("Fresh Remote"))
	f.loader.snaps["plan123"] = &remote.PlanSnapshot{
		WizardData:  remoteData,
		CurrentStep: 7,
		UpdatedAt:   time.Now(),
	}

	f.coord.Start(context.Background(), "plan123")

	assert.Equal(t, "Fresh Remote", f.coord.Data().GoalSetting.CampaignName)
	assert.Equal(t, 7, f.coord.Step())

	// The winning copy is written back to the cache.
	cached := cache.ReadJSON(f.store, session.DataKey("plan123"), domain.InitialWizardData())
	assert.Equal(t, "Fresh Remote", cached.GoalSetting.CampaignName)
	assert.Equal(t, 7, cache.ReadJSON(f.store, session.StepKey("plan123"), 1))
}

func TestCoordinator_CacheSurvivesMissingRemote(t *testing.T) {
	f := newCoordFixture(t)

	local := testutil.NewTestWizardData(testutil.WithCampaignName("Local Only"))
	cache.WriteJSON(f.store, session.DataKey("plan123"), local)
	cache.WriteJSON(f.store, session.StepKey("plan123"), 4)

	f.coord.Start(context.Background(), "plan123")

	assert.Equal(t, "Local Only", f.coord.Data().GoalSetting.CampaignName)
	assert.Equal(t, 4, f.coord.Step())
	assert.False(t, f.coord.RemoteUnavailable())
}

func TestCoordinator_RemoteErrorFallsBackToCache(t *testing.T) {
	f := newCoordFixture(t)
	f.loader.err = errors.New("network down")

	local := testutil.NewTestWizardData(testutil.WithCampaignName("Cached"))
	cache.WriteJSON(f.store, session.DataKey("plan123"), local)

	f.coord.Start(context.Background(), "plan123")

	assert.Equal(t, PhaseReady, f.coord.Phase(), "the session still opens on cache-only data")
	assert.True(t, f.coord.RemoteUnavailable())
	assert.Equal(t, "Cached", f.coord.Data().GoalSetting.CampaignName)
}

func TestCoordinator_NoSaveScheduledDuringInitialLoad(t *testing.T) {
	f := newCoordFixture(t)

	remoteData := testutil.NewTestWizardData(testutil.WithCampaignName("Remote"))
	f.loader.snaps["plan123"] = &remote.PlanSnapshot{WizardData: remoteData, CurrentStep: 3}

	f.coord.Start(context.Background(), "plan123")

	// Start writes the cache but must never schedule a remote save: the
	// just-loaded document would only echo back what the remote holds, and
	// before the load finishes a default document could clobber it.
	assert.Empty(t, f.saver.scheduled())
}

func TestCoordinator_UpdateDataCachesAndSchedules(t *testing.T) {
	f := newCoordFixture(t)
	f.coord.Start(context.Background(), "plan123")

	f.coord.UpdateData(func(d *domain.WizardData) {
		d.GoalSetting.CampaignName = "Edited"
	})

	assert.Equal(t, "Edited", f.coord.Data().GoalSetting.CampaignName)

	cached := cache.ReadJSON(f.store, session.DataKey("plan123"), domain.InitialWizardData())
	assert.Equal(t, "Edited", cached.GoalSetting.CampaignName)

	jobs := f.saver.scheduled()
	require.Len(t, jobs, 1)
	assert.Equal(t, "plan123", jobs[0].planID)
	assert.Equal(t, "Edited", jobs[0].data.GoalSetting.CampaignName)
	assert.Equal(t, 1, jobs[0].step)
}

func TestCoordinator_GoToStepClampsAndSkipsNoops(t *testing.T) {
	f := newCoordFixture(t)
	f.coord.Start(context.Background(), "plan123")

	f.coord.GoToStep(99)
	assert.Equal(t, domain.TotalSteps, f.coord.Step())

	f.coord.GoToStep(-5)
	assert.Equal(t, 1, f.coord.Step())

	before := len(f.saver.scheduled())
	f.coord.GoToStep(1) // already there
	assert.Len(t, f.saver.scheduled(), before, "navigating to the current step schedules nothing")
}

func TestCoordinator_StepNavigation(t *testing.T) {
	f := newCoordFixture(t)
	f.coord.Start(context.Background(), "plan123")

	f.coord.NextStep()
	f.coord.NextStep()
	assert.Equal(t, 3, f.coord.Step())

	f.coord.PreviousStep()
	assert.Equal(t, 2, f.coord.Step())
	assert.Equal(t, 2, cache.ReadJSON(f.store, session.StepKey("plan123"), 1))

	f.coord.PreviousStep()
	f.coord.PreviousStep() // clamped at 1
	assert.Equal(t, 1, f.coord.Step())
}

func TestCoordinator_StartNewPlanLeavesOldPlanIntact(t *testing.T) {
	f := newCoordFixture(t)
	f.coord.Start(context.Background(), "old-plan")

	f.coord.UpdateData(func(d *domain.WizardData) {
		d.GoalSetting.CampaignName = "Old Campaign"
	})
	f.coord.GoToStep(5)

	fresh := f.coord.StartNewPlan()
	assert.NotEqual(t, "old-plan", fresh)
	assert.Equal(t, fresh, f.coord.PlanID())
	assert.Equal(t, 1, f.coord.Step())
	assert.Equal(t, domain.InitialWizardData(), f.coord.Data())
	assert.Equal(t, fresh, f.sess.ActiveID())

	// The old plan stays cached and resumable by explicit id.
	old := cache.ReadJSON(f.store, session.DataKey("old-plan"), domain.InitialWizardData())
	assert.Equal(t, "Old Campaign", old.GoalSetting.CampaignName)
	assert.Equal(t, 5, cache.ReadJSON(f.store, session.StepKey("old-plan"), 1))
}

func TestCoordinator_ExternalCacheChangeUpdatesMemory(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := cache.NewStore(db)
	other := cache.NewStore(db) // a second process sharing the cache file

	f := &coordFixture{
		store:  store,
		sess:   session.NewContext(store),
		loader: &fakeLoader{snaps: map[string]*remote.PlanSnapshot{}},
		saver:  &fakeSaver{},
	}
	f.coord = New(f.sess, store, f.loader, f.saver)
	t.Cleanup(f.coord.Close)

	f.coord.Start(context.Background(), "plan123")

	edited := testutil.NewTestWizardData(testutil.WithCampaignName("From Another Process"))
	cache.WriteJSON(other, session.DataKey("plan123"), edited)
	cache.WriteJSON(other, session.StepKey("plan123"), 6)

	stop := store.StartWatching(5 * time.Millisecond)
	defer stop()

	require.Eventually(t, func() bool {
		return f.coord.Data().GoalSetting.CampaignName == "From Another Process"
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return f.coord.Step() == 6
	}, time.Second, 5*time.Millisecond)
}

func TestCoordinator_FlushDelegates(t *testing.T) {
	f := newCoordFixture(t)
	f.coord.Start(context.Background(), "plan123")

	require.NoError(t, f.coord.Flush(context.Background()))
	assert.Equal(t, 1, f.saver.flushes)
}
