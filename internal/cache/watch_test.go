package cache

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/path2action/planwizard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoStores returns two Stores over the same database, standing in for two
// processes sharing one cache file.
func twoStores(t *testing.T) (*Store, *Store) {
	t.Helper()
	db := testutil.NewTestDB(t)
	a, b := NewStore(db), NewStore(db)
	a.warn = func(string, ...any) {}
	b.warn = func(string, ...any) {}
	return a, b
}

func TestWatch_ReportsExternalWrite(t *testing.T) {
	a, b := twoStores(t)

	var got string
	stop := a.OnExternalChange("wizard-step-x", func(raw []byte) {
		got = string(raw)
	})
	defer stop()

	WriteJSON(b, "wizard-step-x", 4)
	a.pollOnce()

	assert.Equal(t, "4", got)
}

func TestWatch_OwnWritesNotReported(t *testing.T) {
	a, _ := twoStores(t)

	fired := false
	stop := a.OnExternalChange("key", func([]byte) { fired = true })
	defer stop()

	WriteJSON(a, "key", "mine")
	a.pollOnce()

	assert.False(t, fired, "a store must not observe its own writes")
}

func TestWatch_PreexistingValueNotReported(t *testing.T) {
	a, b := twoStores(t)

	WriteJSON(b, "key", "old")

	fired := false
	stop := a.OnExternalChange("key", func([]byte) { fired = true })
	defer stop()

	a.pollOnce()
	assert.False(t, fired, "data present before subscribing is not a change")

	WriteJSON(b, "key", "new")
	a.pollOnce()
	assert.True(t, fired)
}

func TestWatch_CoalescesToLatestRevision(t *testing.T) {
	a, b := twoStores(t)

	var calls int
	var last string
	stop := a.OnExternalChange("key", func(raw []byte) {
		calls++
		last = string(raw)
	})
	defer stop()

	WriteJSON(b, "key", "v1")
	WriteJSON(b, "key", "v2")
	WriteJSON(b, "key", "v3")
	a.pollOnce()

	assert.Equal(t, 1, calls, "one poll reports at most one change per key")
	assert.Equal(t, `"v3"`, last)
}

func TestWatch_StopRemovesSubscription(t *testing.T) {
	a, b := twoStores(t)

	fired := false
	stop := a.OnExternalChange("key", func([]byte) { fired = true })
	stop()

	WriteJSON(b, "key", "v1")
	a.pollOnce()

	assert.False(t, fired)
}

func TestWatch_StartWatchingDelivers(t *testing.T) {
	a, b := twoStores(t)

	var fired atomic.Bool
	unsubscribe := a.OnExternalChange("key", func([]byte) { fired.Store(true) })
	defer unsubscribe()

	stop := a.StartWatching(5 * time.Millisecond)
	defer stop()

	WriteJSON(b, "key", "v1")

	require.Eventually(t, fired.Load, time.Second, 5*time.Millisecond)
}

func TestWatch_NilDatabaseIdle(t *testing.T) {
	s := NewStore(nil)

	stopSub := s.OnExternalChange("key", func([]byte) { t.Fatal("must never fire") })
	defer stopSub()

	stop := s.StartWatching(time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	stop()
}
