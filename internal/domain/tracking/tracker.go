// internal/domain/tracking/tracker.go
package tracking

import (
	"context"
	"sync"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
)

// Tracker holds the polled order and the latest accepted push, and hands
// out their merge
type Tracker struct {
	mu     sync.Mutex
	polled order.Order
	push   *order.StatusUpdate
}

// NewTracker starts tracking from a polled order
func NewTracker(polled order.Order) *Tracker {
	return &Tracker{polled: polled}
}

// Current returns the merged order
func (t *Tracker) Current() order.Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	return order.Merge(t.polled, t.push)
}

// Apply records a push and returns the merged order. Pushes with an unknown
// status are dropped, and once the order is cancelled no later push is kept.
// changed is false when the merged status and time did not move.
func (t *Tracker) Apply(upd order.StatusUpdate) (merged order.Order, changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := order.Merge(t.polled, t.push)
	if !upd.Status.IsValid() || before.Status == order.OrderStatusCancelled {
		return before, false
	}

	t.push = &upd
	after := order.Merge(t.polled, t.push)

	return after, before.Status != after.Status || !before.UpdatedAt.Equal(after.UpdatedAt)
}

// Follow feeds subscription events into the tracker and reports each one,
// with the merged order, to fn. It returns when the subscription ends, ctx
// ends or fn fails.
func (t *Tracker) Follow(ctx context.Context, sub *Subscription, fn func(Event, order.Order) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}

			current := t.Current()
			if ev.Update != nil {
				var changed bool
				current, changed = t.Apply(*ev.Update)
				if !changed {
					continue
				}
			}

			if err := fn(ev, current); err != nil {
				return err
			}
		}
	}
}
