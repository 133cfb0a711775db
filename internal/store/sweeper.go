package store

import (
	"sync"
	"sync/atomic"
	"time"
)

// Sweeper periodically purges stale LocalStore entries to bound memory growth under
// high key cardinality when the shared store is absent for extended periods. It is
// advisory hygiene: an un-swept stale entry is still evaluated correctly by the
// reset-on-read logic in LocalStore.Incr.
type Sweeper struct {
	local      *LocalStore
	interval   time.Duration
	staleAfter time.Duration
	onEvict    func(removed int)

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

// NewSweeper constructs a sweeper for the given local store. onEvict may be nil; when
// set it is invoked after every sweep that removed at least one entry.
func NewSweeper(local *LocalStore, interval, staleAfter time.Duration, onEvict func(removed int)) *Sweeper {
	return &Sweeper{
		local:      local,
		interval:   interval,
		staleAfter: staleAfter,
		onEvict:    onEvict,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the sweep loop on its own goroutine, fully decoupled from
// request-handling.
func (s *Sweeper) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
}

// Stop terminates the sweep loop and waits for it to exit. Safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	if s.started.Load() {
		<-s.done
	}
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.local.Sweep(s.staleAfter); removed > 0 && s.onEvict != nil {
				s.onEvict(removed)
			}
		case <-s.stop:
			return
		}
	}
}
