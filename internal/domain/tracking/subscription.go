// internal/domain/tracking/subscription.go
package tracking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/sirupsen/logrus"
)

// Health is the connection state of a subscription
type Health string

const (
	HealthConnecting   Health = "connecting"
	HealthLive         Health = "live"
	HealthReconnecting Health = "reconnecting"
	HealthStopped      Health = "stopped"
)

// ErrFeedClosed is reported when a feed ends without giving a reason
var ErrFeedClosed = errors.New("status feed closed")

// Key identifies the status document of one order
type Key struct {
	ShopID  string
	OrderID string
}

// Feed is one established connection to the status feed. Updates is closed
// when the connection ends; Err then tells why.
type Feed interface {
	Updates() <-chan order.StatusUpdate
	Err() error
	Close() error
}

// Source opens feeds. The first update delivered is the current status, if
// the order has one.
type Source interface {
	Subscribe(ctx context.Context, key Key) (Feed, error)
}

// Event is either a status push or a health change
type Event struct {
	Update *order.StatusUpdate
	Health Health
	Err    error
}

// Options controls reconnection
type Options struct {
	Reconnect       bool
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Subscription follows one order's status until stopped. It reconnects with
// exponential backoff when the feed fails, unless Reconnect is off.
type Subscription struct {
	source Source
	key    Key
	opts   Options
	logger *logrus.Logger

	events chan Event
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.RWMutex
	health  Health
	lastErr error
}

// Subscribe starts following key. Stop must be called to release it.
func Subscribe(ctx context.Context, source Source, key Key, opts Options, logger *logrus.Logger) *Subscription {
	ctx, cancel := context.WithCancel(ctx)

	s := &Subscription{
		source: source,
		key:    key,
		opts:   opts,
		logger: logger,
		events: make(chan Event, 16),
		cancel: cancel,
		done:   make(chan struct{}),
		health: HealthConnecting,
	}

	go s.run(ctx)
	return s
}

// Events delivers pushes and health changes; closed once the subscription stops
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Health returns the current connection state
func (s *Subscription) Health() Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.health
}

// LastError returns the most recent transport failure, if any
func (s *Subscription) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Done is closed when the subscription has stopped
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Stop tears the subscription down and waits for it to finish
func (s *Subscription) Stop() {
	s.cancel()
	<-s.done
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	b := backoff.NewExponentialBackOff()
	if s.opts.InitialInterval > 0 {
		b.InitialInterval = s.opts.InitialInterval
	}
	if s.opts.MaxInterval > 0 {
		b.MaxInterval = s.opts.MaxInterval
	}

	s.setHealth(ctx, HealthConnecting, nil)

	for {
		err := s.consume(ctx, b)
		if ctx.Err() != nil {
			break
		}

		s.logger.WithFields(logrus.Fields{
			"shop_id":  s.key.ShopID,
			"order_id": s.key.OrderID,
			"error":    err.Error(),
		}).Warn("Order status feed failed")

		if !s.opts.Reconnect {
			s.setHealth(ctx, HealthStopped, err)
			return
		}

		s.setHealth(ctx, HealthReconnecting, err)

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			s.setHealth(ctx, HealthStopped, err)
			return
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
		if ctx.Err() != nil {
			break
		}
	}

	s.mu.Lock()
	s.health = HealthStopped
	s.mu.Unlock()
}

// consume runs one feed connection. It returns nil only when ctx ends.
func (s *Subscription) consume(ctx context.Context, b *backoff.ExponentialBackOff) error {
	feed, err := s.source.Subscribe(ctx, s.key)
	if err != nil {
		return err
	}
	defer feed.Close()

	b.Reset()
	s.setHealth(ctx, HealthLive, nil)

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-feed.Updates():
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				if err := feed.Err(); err != nil {
					return err
				}
				return ErrFeedClosed
			}
			s.emit(ctx, Event{Update: &upd})
		}
	}
}

func (s *Subscription) setHealth(ctx context.Context, h Health, err error) {
	s.mu.Lock()
	s.health = h
	if err != nil {
		s.lastErr = err
	}
	s.mu.Unlock()

	s.emit(ctx, Event{Health: h, Err: err})
}

func (s *Subscription) emit(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}
