// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/state"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidQuantity is returned when a line would be added with quantity below 1
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrProductNotInCart is returned when decrementing a product with no lines
	ErrProductNotInCart = errors.New("product not in cart")
)

// Service loads, mutates and saves the cart of one session at a time
type Service struct {
	store    state.Store
	locks    *state.SessionLocks
	identity Identity
	logger   *logrus.Logger

	// drawer flags per session; never persisted
	drawers *drawerFlags
}

// NewService creates a new cart service. sessionTTL bounds how long an idle
// session's drawer flag is remembered.
func NewService(store state.Store, locks *state.SessionLocks, identity Identity, sessionTTL time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		store:    store,
		locks:    locks,
		identity: identity,
		logger:   logger,
		drawers:  newDrawerFlags(sessionTTL),
	}
}

// Get loads the cart of a session. A missing or unreadable cart is empty.
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	return s.load(ctx, sessionID)
}

// Mutate applies fn to the session's cart and saves the result. Calls for the
// same session run one at a time, in arrival order.
func (s *Service) Mutate(ctx context.Context, sessionID string, fn func(*Cart) error) (*Cart, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem merges the line into the cart
func (s *Service) AddItem(ctx context.Context, sessionID string, line Line) (*Cart, error) {
	if line.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.Mutate(ctx, sessionID, func(c *Cart) error {
		c.Add(line)
		return nil
	})
}

// RemoveLine deletes the line addressed by product and option ids
func (s *Service) RemoveLine(ctx context.Context, sessionID, productID string, optionIDs []string) (*Cart, error) {
	return s.Mutate(ctx, sessionID, func(c *Cart) error {
		line, ok := c.LineByOptionIDs(productID, optionIDs)
		if !ok {
			return ErrProductNotInCart
		}
		c.Remove(line.ProductID, line.SelectedOptions)
		return nil
	})
}

// SetLineQuantity sets the quantity of the line addressed by product and
// option ids. A quantity below 1 removes the line.
func (s *Service) SetLineQuantity(ctx context.Context, sessionID, productID string, optionIDs []string, quantity int) (*Cart, error) {
	return s.Mutate(ctx, sessionID, func(c *Cart) error {
		line, ok := c.LineByOptionIDs(productID, optionIDs)
		if !ok {
			return ErrProductNotInCart
		}
		if quantity < 1 {
			c.Remove(line.ProductID, line.SelectedOptions)
			return nil
		}
		c.UpdateQuantity(line.ProductID, line.SelectedOptions, quantity)
		return nil
	})
}

// DecrementProduct lowers the most recently added line of a product
func (s *Service) DecrementProduct(ctx context.Context, sessionID, productID string) (*Cart, error) {
	return s.Mutate(ctx, sessionID, func(c *Cart) error {
		if !c.DecrementLatest(productID) {
			return ErrProductNotInCart
		}
		return nil
	})
}

// ClearCart empties the cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.Mutate(ctx, sessionID, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

// Toggle flips the drawer flag without touching persisted lines
func (s *Service) Toggle(ctx context.Context, sessionID string) (*Cart, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Toggle()
	s.drawers.Set(sessionID, c.Open)
	return c, nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Cart, error) {
	c := New(s.identity)
	c.Open = s.drawers.IsOpen(sessionID)

	data, found, err := s.store.Get(ctx, sessionID, state.KindCart)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		return c, nil
	}

	if err := json.Unmarshal(data, c); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Discarding unreadable cart")
		c.Items = []Line{}
	}
	if c.Items == nil {
		c.Items = []Line{}
	}

	return c, nil
}

func (s *Service) save(ctx context.Context, sessionID string, c *Cart) error {
	s.drawers.Set(sessionID, c.Open)

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.store.Put(ctx, sessionID, state.KindCart, data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
