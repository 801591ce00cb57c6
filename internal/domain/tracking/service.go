// internal/domain/tracking/service.go
package tracking

import (
	"context"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/sirupsen/logrus"
)

// Service opens status subscriptions for orders of the configured shop
type Service struct {
	source Source
	shopID string
	opts   Options
	logger *logrus.Logger
}

// NewService creates a new tracking service
func NewService(source Source, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		source: source,
		shopID: cfg.Shop.ID,
		opts: Options{
			Reconnect:       cfg.Feed.Reconnect,
			InitialInterval: cfg.Feed.InitialInterval,
			MaxInterval:     cfg.Feed.MaxInterval,
		},
		logger: logger,
	}
}

// KeyFor returns the feed key of an order: its owning shop, falling back to
// the configured shop when the order does not say
func (s *Service) KeyFor(o order.Order) Key {
	shopID := o.ShopID
	if shopID == "" {
		shopID = s.shopID
	}
	return Key{ShopID: shopID, OrderID: o.ID}
}

// Watch subscribes to one order. The caller stops the subscription when it
// no longer needs updates.
func (s *Service) Watch(ctx context.Context, o order.Order) *Subscription {
	return Subscribe(ctx, s.source, s.KeyFor(o), s.opts, s.logger)
}
