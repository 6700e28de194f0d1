// Package session tracks which plan is active for this client. The active
// plan pointer is a single cache entry; everything else is keyed by plan id.
package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/path2action/planwizard/internal/cache"
)

// ActivePlanKey is the singleton cache key holding the active plan id.
const ActivePlanKey = "active-plan"

const dataKeyPrefix = "wizard-data-"

// DataKey returns the cache key for a plan's wizard data aggregate.
func DataKey(planID string) string { return dataKeyPrefix + planID }

// StepKey returns the cache key for a plan's current step.
func StepKey(planID string) string { return "wizard-step-" + planID }

// NewPlanID generates a fresh unique plan identifier.
func NewPlanID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Context resolves and records the active plan for one client. It is
// constructed once and handed to the wizard coordinator; nothing reads the
// pointer ambiently.
type Context struct {
	store *cache.Store
}

// NewContext creates a session Context over the given cache.
func NewContext(store *cache.Store) *Context {
	return &Context{store: store}
}

// Resolve determines the active plan id for this session.
// An explicit id (e.g. from the command line) is adopted as-is; otherwise
// the cached active pointer is resumed; otherwise a fresh id is generated.
// Adopting an id always updates the active pointer, so the next entry
// without an explicit id resumes the same plan.
func (c *Context) Resolve(explicitID string) (planID string, isNew bool) {
	if explicitID != "" {
		c.setActive(explicitID)
		return explicitID, false
	}
	if saved := cache.ReadJSON(c.store, ActivePlanKey, ""); saved != "" {
		return saved, false
	}
	id := NewPlanID()
	c.setActive(id)
	return id, true
}

// StartNewPlan generates a new plan id and makes it active. The previous
// plan's cache entries and remote document are deliberately left in place.
func (c *Context) StartNewPlan() string {
	id := NewPlanID()
	c.setActive(id)
	return id
}

// ActiveID returns the currently recorded active plan id, or "".
func (c *Context) ActiveID() string {
	return cache.ReadJSON(c.store, ActivePlanKey, "")
}

// CachedPlanIDs returns the ids of all plans with locally cached data.
func (c *Context) CachedPlanIDs() []string {
	keys := c.store.Keys(dataKeyPrefix)
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, dataKeyPrefix))
	}
	return ids
}

func (c *Context) setActive(id string) {
	cache.WriteJSON(c.store, ActivePlanKey, id)
}
