package cache

import (
	"testing"
	"time"

	"github.com/path2action/planwizard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(testutil.NewTestDB(t))
	s.warn = func(string, ...any) {}
	return s
}

func TestStore_ReadMissingReturnsInitial(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, "fallback", ReadJSON(s, "absent", "fallback"))
	assert.Equal(t, 42, ReadJSON(s, "absent", 42))
}

func TestStore_WriteThenRead(t *testing.T) {
	s := newTestStore(t)

	type payload struct {
		Name  string   `json:"name"`
		Items []string `json:"items"`
	}
	want := payload{Name: "plan", Items: []string{"a", "b"}}

	WriteJSON(s, "wizard-data-abc", want)
	got := ReadJSON(s, "wizard-data-abc", payload{})
	assert.Equal(t, want, got)
}

func TestStore_OverwriteKeepsLatest(t *testing.T) {
	s := newTestStore(t)

	WriteJSON(s, "step", 3)
	WriteJSON(s, "step", 7)
	assert.Equal(t, 7, ReadJSON(s, "step", 1))
}

func TestStore_UnparseableValueFallsBack(t *testing.T) {
	s := newTestStore(t)

	// A stored string does not parse as the struct requested later.
	WriteJSON(s, "wizard-data-x", "not an object")

	type payload struct {
		Name string `json:"name"`
	}
	got := ReadJSON(s, "wizard-data-x", payload{Name: "initial"})
	assert.Equal(t, "initial", got.Name)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)

	WriteJSON(s, "active-plan", "abc123")
	s.Clear("active-plan")
	assert.Equal(t, "", ReadJSON(s, "active-plan", ""))
}

func TestStore_UpdateJSON(t *testing.T) {
	s := newTestStore(t)

	got := UpdateJSON(s, "counter", 0, func(n int) int { return n + 1 })
	assert.Equal(t, 1, got)

	got = UpdateJSON(s, "counter", 0, func(n int) int { return n + 1 })
	assert.Equal(t, 2, got)
	assert.Equal(t, 2, ReadJSON(s, "counter", 0))
}

func TestStore_KeysByPrefix(t *testing.T) {
	s := newTestStore(t)

	WriteJSON(s, "wizard-data-b", 1)
	WriteJSON(s, "wizard-data-a", 1)
	WriteJSON(s, "wizard-step-a", 1)
	WriteJSON(s, "active-plan", "a")

	keys := s.Keys("wizard-data-")
	require.Len(t, keys, 2)
	assert.Equal(t, []string{"wizard-data-a", "wizard-data-b"}, keys)
}

func TestStore_LastUpdated(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.LastUpdated("absent")
	assert.False(t, ok)

	before := time.Now().Add(-time.Second)
	WriteJSON(s, "key", "v")
	ts, ok := s.LastUpdated("key")
	require.True(t, ok)
	assert.True(t, ts.After(before))
	assert.True(t, ts.Before(time.Now().Add(time.Second)))
}

func TestStore_NilDatabaseDegrades(t *testing.T) {
	s := NewStore(nil)

	WriteJSON(s, "key", "value")
	assert.Equal(t, "initial", ReadJSON(s, "key", "initial"))
	assert.Empty(t, s.Keys(""))
	s.Clear("key")
}

func TestStore_EmptyKeyIgnored(t *testing.T) {
	s := newTestStore(t)

	WriteJSON(s, "", "value")
	assert.Empty(t, s.Keys(""))
}
