// Package cache is the durable local key-value store backing the wizard.
// Values are JSON-serialized into a SQLite table; every write bumps a
// per-key revision so concurrent processes on the same cache file can
// observe each other's changes (see watch.go).
//
// All operations are synchronous and never fail from the caller's point of
// view: a missing table, a corrupt value, or an absent database degrades to
// "value not present" with a logged warning.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"
)

// Store is a typed key-value cache over a SQLite database.
// A Store with a nil database is valid and acts as an always-empty cache.
type Store struct {
	db   *sql.DB
	warn func(format string, args ...any)

	mu   sync.Mutex
	revs map[string]int64 // last revision seen by this process, per key
	subs map[string][]subscriber
}

// NewStore creates a Store over db. db may be nil, in which case reads
// return the initial value and writes are no-ops.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:   db,
		warn: log.Printf,
		revs: make(map[string]int64),
		subs: make(map[string][]subscriber),
	}
}

// ReadJSON returns the value stored under key, or initial when the key is
// absent, the store is unavailable, or the stored text does not parse.
func ReadJSON[T any](s *Store, key string, initial T) T {
	raw, rev, ok := s.readRaw(key)
	if !ok {
		return initial
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.warn("cache: discarding unparseable value for %q: %v", key, err)
		return initial
	}
	s.recordRev(key, rev)
	return v
}

// WriteJSON serializes value and stores it under key. Errors are logged
// and swallowed; the caller's in-memory state is authoritative regardless.
func WriteJSON[T any](s *Store, key string, value T) {
	if s.db == nil || key == "" {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.warn("cache: cannot serialize value for %q: %v", key, err)
		return
	}
	s.writeRaw(key, string(raw))
}

// UpdateJSON applies fn to the current value (or initial when absent) and
// stores the result, mirroring a functional state update.
func UpdateJSON[T any](s *Store, key string, initial T, fn func(T) T) T {
	next := fn(ReadJSON(s, key, initial))
	WriteJSON(s, key, next)
	return next
}

// Clear removes key from the store. Best-effort.
func (s *Store) Clear(key string) {
	if s.db == nil || key == "" {
		return
	}
	if _, err := s.db.Exec(`DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		s.warn("cache: clearing %q: %v", key, err)
		return
	}
	s.mu.Lock()
	delete(s.revs, key)
	s.mu.Unlock()
}

// Keys returns all stored keys with the given prefix, ordered by key.
func (s *Store) Keys(prefix string) []string {
	if s.db == nil {
		return nil
	}
	rows, err := s.db.Query(`SELECT key FROM kv_entries WHERE key LIKE ? ORDER BY key`, prefix+"%")
	if err != nil {
		s.warn("cache: listing keys %q*: %v", prefix, err)
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			s.warn("cache: scanning key: %v", err)
			return keys
		}
		keys = append(keys, k)
	}
	return keys
}

// LastUpdated returns when key was last written, or false when the key is
// absent or the stored timestamp does not parse.
func (s *Store) LastUpdated(key string) (time.Time, bool) {
	if s.db == nil || key == "" {
		return time.Time{}, false
	}
	var raw string
	err := s.db.QueryRow(`SELECT updated_at FROM kv_entries WHERE key = ?`, key).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return time.Time{}, false
	case err != nil:
		s.warn("cache: reading updated_at for %q: %v", key, err)
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *Store) readRaw(key string) (raw string, rev int64, ok bool) {
	if s.db == nil || key == "" {
		return "", 0, false
	}
	err := s.db.QueryRow(`SELECT value, rev FROM kv_entries WHERE key = ?`, key).Scan(&raw, &rev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", 0, false
	case err != nil:
		s.warn("cache: reading %q: %v", key, err)
		return "", 0, false
	}
	return raw, rev, true
}

func (s *Store) writeRaw(key, raw string) {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT INTO kv_entries (key, value, rev, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, rev = kv_entries.rev + 1, updated_at = excluded.updated_at`,
		key, raw, now)
	if err != nil {
		s.warn("cache: writing %q: %v", key, err)
		return
	}

	// Record the revision we just produced so the watcher does not report
	// our own write as an external change.
	var rev int64
	if err := s.db.QueryRow(`SELECT rev FROM kv_entries WHERE key = ?`, key).Scan(&rev); err == nil {
		s.recordRev(key, rev)
	}
}

func (s *Store) recordRev(key string, rev int64) {
	s.mu.Lock()
	if rev > s.revs[key] {
		s.revs[key] = rev
	}
	s.mu.Unlock()
}
