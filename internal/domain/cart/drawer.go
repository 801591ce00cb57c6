// internal/domain/cart/drawer.go
package cart

import (
	"sync"
	"time"
)

// drawerFlags remembers which sessions have the cart drawer open. Only open
// drawers are kept, and an entry lapses once its session has been idle for
// ttl, the same lifetime the session cookie and stored state have.
type drawerFlags struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	open      map[string]time.Time
	lastSweep time.Time
}

func newDrawerFlags(ttl time.Duration) *drawerFlags {
	return &drawerFlags{
		ttl:  ttl,
		now:  time.Now,
		open: make(map[string]time.Time),
	}
}

// IsOpen reports the drawer flag of a session
func (d *drawerFlags) IsOpen(sessionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	touched, ok := d.open[sessionID]
	if !ok {
		return false
	}
	if d.expired(touched, d.now()) {
		delete(d.open, sessionID)
		return false
	}
	return true
}

// Set records the drawer flag and sweeps lapsed entries at most once per ttl
func (d *drawerFlags) Set(sessionID string, open bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if open {
		d.open[sessionID] = now
	} else {
		delete(d.open, sessionID)
	}

	if d.ttl > 0 && now.Sub(d.lastSweep) >= d.ttl {
		for id, touched := range d.open {
			if d.expired(touched, now) {
				delete(d.open, id)
			}
		}
		d.lastSweep = now
	}
}

// Len returns how many sessions have the drawer open
func (d *drawerFlags) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.open)
}

func (d *drawerFlags) expired(touched, now time.Time) bool {
	return d.ttl > 0 && now.Sub(touched) >= d.ttl
}
