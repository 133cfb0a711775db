package store

import (
	"sync"
	"time"
)

type windowEntry struct {
	count       int64
	windowStart time.Time
}

// LocalStore is the single-process fallback counter. Entries are created lazily on
// first hit, reset on read once their window has elapsed, and purged by the sweeper
// when stale. All map access is serialized by one mutex; critical sections are a few
// map operations, so a single lock is cheaper than striping.
type LocalStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

// NewLocalStore constructs a LocalStore with empty state.
func NewLocalStore() *LocalStore {
	return &LocalStore{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// SetClock replaces the time source. Test hook; not safe to call concurrently with
// evaluation.
func (s *LocalStore) SetClock(now func() time.Time) {
	s.now = now
}

// Incr increments the counter for key within its fixed window and returns the
// post-increment count and the time left in the window. An absent or aged-out entry
// is replaced by a fresh window before the increment, so a window's count never
// carries over past its own expiry.
func (s *LocalStore) Incr(key string, window time.Duration) (int64, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.Sub(e.windowStart) >= window {
		e = &windowEntry{windowStart: now}
		s.entries[key] = e
	}
	e.count++

	return e.count, e.windowStart.Add(window).Sub(now)
}

// Len reports the number of live entries.
func (s *LocalStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep removes entries whose window started more than staleAfter ago and returns how
// many were removed. The scan snapshots candidate keys under the lock, then each
// removal re-acquires it and re-checks staleness, so concurrent evaluations are never
// stalled for longer than a single key removal.
func (s *LocalStore) Sweep(staleAfter time.Duration) int {
	s.mu.Lock()
	now := s.now()
	var candidates []string
	for key, e := range s.entries {
		if now.Sub(e.windowStart) >= staleAfter {
			candidates = append(candidates, key)
		}
	}
	s.mu.Unlock()

	removed := 0
	for _, key := range candidates {
		s.mu.Lock()
		if e, ok := s.entries[key]; ok && s.now().Sub(e.windowStart) >= staleAfter {
			delete(s.entries, key)
			removed++
		}
		s.mu.Unlock()
	}

	return removed
}
