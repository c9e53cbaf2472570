package dailylaw

import (
	"sync"

	"nyayasetu/models"
)

// flight is one in-progress generation computation. Joiners block on done
// and then read rec/err; both are written exactly once, before done closes.
type flight struct {
	done chan struct{}
	rec  *models.DailyLaw
	err  error
}

// generationLock coalesces concurrent generation requests into a single
// computation. States: Idle (inflight == nil) and InFlight; nothing else.
// It is process-local by design — concurrent server instances may each
// generate once, and the date-keyed upsert makes that harmless.
type generationLock struct {
	mu       sync.Mutex
	inflight *flight
}

// acquireOrJoin returns the current flight and whether the caller started
// it. A caller that did not start the flight must only wait on done; the
// starter must eventually call release exactly once.
func (l *generationLock) acquireOrJoin() (*flight, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inflight != nil {
		return l.inflight, false
	}
	l.inflight = &flight{done: make(chan struct{})}
	return l.inflight, true
}

// release publishes the flight's outcome, wakes all joiners and returns the
// lock to Idle. It must run on a deferred path so a failed computation can
// never leave the lock stuck InFlight.
func (l *generationLock) release(fl *flight, rec *models.DailyLaw, err error) {
	l.mu.Lock()
	if l.inflight == fl {
		l.inflight = nil
	}
	l.mu.Unlock()

	fl.rec = rec
	fl.err = err
	close(fl.done)
}
