// internal/domain/order/service.go
package order

import (
	"context"
	"errors"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyCart is returned when checking out with nothing in the cart
	ErrEmptyCart = errors.New("your cart is empty")
	// ErrNotAuthenticated is returned when an order call has no access token
	ErrNotAuthenticated = errors.New("authentication required")
)

// Gateway talks to the commerce API's order endpoints on behalf of a user
type Gateway interface {
	CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*Order, error)
	MyOrders(ctx context.Context, token string) ([]Order, error)
	GetOrder(ctx context.Context, token, orderID string) (*Order, error)
}

// Service handles order placement and lookup
type Service struct {
	gateway Gateway
	carts   *cart.Service
	shopID  string
	logger  *logrus.Logger
}

// NewService creates a new order service
func NewService(gateway Gateway, carts *cart.Service, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		gateway: gateway,
		carts:   carts,
		shopID:  cfg.Shop.ID,
		logger:  logger,
	}
}

// Checkout places an order for the session's cart. On success the cart is
// cleared; on failure it is left exactly as it was. Once sent, the request
// is not cancelled when the caller goes away. A placed order is never
// reported as a failure, even when clearing the cart afterwards fails.
func (s *Service) Checkout(ctx context.Context, sessionID, token string) (*Order, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	ctx = context.WithoutCancel(ctx)

	var placed *Order
	_, err := s.carts.Mutate(ctx, sessionID, func(c *cart.Cart) error {
		if c.IsEmpty() {
			return ErrEmptyCart
		}

		req := NewCreateOrderRequest(s.shopID, c.Items)
		created, err := s.gateway.CreateOrder(ctx, token, req)
		if err != nil {
			return err
		}

		placed = created
		c.Clear()
		return nil
	})
	if err != nil && placed == nil {
		if !errors.Is(err, ErrEmptyCart) {
			s.logger.WithFields(logrus.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			}).Error("Failed to place order")
		}
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"order_id":   placed.ID,
		"short_id":   placed.ShortID,
		"status":     placed.Status,
	})

	if err != nil {
		log.WithError(err).Warn("Order placed but cart was not cleared, retrying")
		if _, err := s.carts.ClearCart(ctx, sessionID); err != nil {
			log.WithError(err).Error("Failed to clear cart after placing order")
		}
	}

	log.Info("Order placed")

	return placed, nil
}

// MyOrders returns the caller's order history in server order
func (s *Service) MyOrders(ctx context.Context, token string) ([]Order, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	orders, err := s.gateway.MyOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// Get returns full order detail
func (s *Service) Get(ctx context.Context, token, orderID string) (*Order, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return s.gateway.GetOrder(ctx, token, orderID)
}
