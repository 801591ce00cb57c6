// internal/domain/menu/service.go
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Source fetches the nested menu of a shop
type Source interface {
	FetchMenu(ctx context.Context, shopID string) ([]RawCategory, error)
}

// cacheEntry is what the service keeps in redis
type cacheEntry struct {
	FetchedAt time.Time `json:"fetched_at"`
	Catalog   *Catalog  `json:"catalog"`
}

// Service retrieves the shop catalog through a redis cache
type Service struct {
	source      Source
	redisClient *redis.Client
	shopID      string
	freshFor    time.Duration
	retainFor   time.Duration
	cachePrefix string
	logger      *logrus.Logger
	now         func() time.Time
}

// NewService creates a new menu service
func NewService(source Source, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		source:      source,
		redisClient: redisClient,
		shopID:      cfg.Shop.ID,
		freshFor:    cfg.Menu.FreshFor,
		retainFor:   cfg.Menu.RetainFor,
		cachePrefix: cfg.Menu.CachePrefix,
		logger:      logger,
		now:         time.Now,
	}
}

// GetMenu returns the catalog. It never fails: a stale cached catalog is
// served when a refresh fails, and the empty catalog when nothing is cached.
func (s *Service) GetMenu(ctx context.Context) *Catalog {
	cached, err := s.readCache(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Menu cache unavailable")
	}
	if cached != nil && s.now().Sub(cached.FetchedAt) < s.freshFor {
		return cached.Catalog
	}

	catalog, err := s.Refresh(ctx)
	if err == nil {
		return catalog
	}

	if cached != nil {
		s.logger.WithFields(logrus.Fields{
			"shop_id":    s.shopID,
			"fetched_at": cached.FetchedAt,
			"error":      err.Error(),
		}).Warn("Serving stale menu")
		return cached.Catalog
	}

	s.logger.WithFields(logrus.Fields{
		"shop_id": s.shopID,
		"error":   err.Error(),
	}).Error("Error fetching menu")
	return Empty()
}

// Refresh fetches the menu from the source and caches it
func (s *Service) Refresh(ctx context.Context) (*Catalog, error) {
	raw, err := s.source.FetchMenu(ctx, s.shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu: %w", err)
	}

	catalog := Normalize(raw)

	if err := s.writeCache(ctx, cacheEntry{FetchedAt: s.now().UTC(), Catalog: catalog}); err != nil {
		s.logger.WithError(err).Warn("Failed to cache menu")
	}

	s.logger.WithFields(logrus.Fields{
		"shop_id":    s.shopID,
		"categories": len(catalog.Categories),
		"products":   len(catalog.Products),
	}).Debug("Menu refreshed")

	return catalog, nil
}

func (s *Service) cacheKey() string {
	return fmt.Sprintf("%s:%s", s.cachePrefix, s.shopID)
}

func (s *Service) readCache(ctx context.Context) (*cacheEntry, error) {
	data, err := s.redisClient.Get(ctx, s.cacheKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cached menu: %w", err)
	}
	if entry.Catalog == nil {
		return nil, nil
	}
	return &entry, nil
}

func (s *Service) writeCache(ctx context.Context, entry cacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}
	return s.redisClient.Set(ctx, s.cacheKey(), data, s.retainFor).Err()
}
