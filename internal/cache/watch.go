package cache

import "time"

// subscriber receives the raw serialized value after an external change.
type subscriber func(raw []byte)

// OnExternalChange registers fn to be called whenever key is modified by
// another process sharing the same cache file. Changes made through this
// Store are not reported. The returned stop function removes the
// subscription.
func (s *Store) OnExternalChange(key string, fn func(raw []byte)) (stop func()) {
	// Snapshot the current revision so pre-existing data is not reported
	// as a change on the first poll.
	if _, rev, ok := s.readRaw(key); ok {
		s.recordRev(key, rev)
	}

	s.mu.Lock()
	s.subs[key] = append(s.subs[key], fn)
	idx := len(s.subs[key]) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		subs := s.subs[key]
		if idx < len(subs) {
			subs[idx] = nil
		}
		s.mu.Unlock()
	}
}

// StartWatching polls subscribed keys every interval and dispatches
// external changes. It returns a stop function. With a nil database or no
// subscriptions the poller is idle but still stoppable.
func (s *Store) StartWatching(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.pollOnce()
			}
		}
	}()
	return func() { close(done) }
}

func (s *Store) pollOnce() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.subs))
	for k, subs := range s.subs {
		if len(subs) > 0 {
			keys = append(keys, k)
		}
	}
	s.mu.Unlock()

	for _, key := range keys {
		raw, rev, ok := s.readRaw(key)
		if !ok {
			continue
		}

		s.mu.Lock()
		known := s.revs[key]
		var fns []subscriber
		if rev > known {
			s.revs[key] = rev
			for _, fn := range s.subs[key] {
				if fn != nil {
					fns = append(fns, fn)
				}
			}
		}
		s.mu.Unlock()

		for _, fn := range fns {
			fn([]byte(raw))
		}
	}
}
