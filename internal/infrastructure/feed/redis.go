// internal/infrastructure/feed/redis.go
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/tracking"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisSource reads order status from redis. Each order has a hash holding
// its latest {status, updatedAt} and a pub/sub channel of the same name that
// carries every change as JSON.
type RedisSource struct {
	client *redis.Client
	prefix string
	logger *logrus.Logger
}

// NewRedisSource creates a redis status source
func NewRedisSource(client *redis.Client, prefix string, logger *logrus.Logger) *RedisSource {
	return &RedisSource{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

// Name returns the document key and channel name, e.g. order-status:shop:order
func (s *RedisSource) Name(key tracking.Key) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, key.ShopID, key.OrderID)
}

// Subscribe implements tracking.Source
func (s *RedisSource) Subscribe(ctx context.Context, key tracking.Key) (tracking.Feed, error) {
	name := s.Name(key)

	pubsub := s.client.Subscribe(ctx, name)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", name, err)
	}

	snapshot, err := s.Snapshot(ctx, key)
	if err != nil {
		pubsub.Close()
		return nil, err
	}

	f := &redisFeed{
		pubsub:  pubsub,
		updates: make(chan order.StatusUpdate, 8),
		closed:  make(chan struct{}),
		logger:  s.logger,
		name:    name,
	}
	if snapshot != nil {
		f.updates <- *snapshot
	}

	go f.receive(ctx)
	return f, nil
}

// Snapshot reads the current status document; nil when the order has none
func (s *RedisSource) Snapshot(ctx context.Context, key tracking.Key) (*order.StatusUpdate, error) {
	fields, err := s.client.HGetAll(ctx, s.Name(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read order status: %w", err)
	}

	status, ok := fields["status"]
	if !ok {
		return nil, nil
	}

	upd := &order.StatusUpdate{Status: order.OrderStatus(status)}
	if raw := fields["updatedAt"]; raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			upd.UpdatedAt = ts
		}
	}
	return upd, nil
}

// Publish writes the status document and announces the change
func (s *RedisSource) Publish(ctx context.Context, key tracking.Key, upd order.StatusUpdate) error {
	name := s.Name(key)
	if upd.UpdatedAt.IsZero() {
		upd.UpdatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(upd)
	if err != nil {
		return fmt.Errorf("failed to encode status update: %w", err)
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, name, "status", string(upd.Status), "updatedAt", upd.UpdatedAt.Format(time.RFC3339Nano))
		pipe.Publish(ctx, name, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish order status: %w", err)
	}
	return nil
}

type redisFeed struct {
	pubsub  *redis.PubSub
	updates chan order.StatusUpdate
	closed  chan struct{}
	once    sync.Once
	logger  *logrus.Logger
	name    string

	mu  sync.Mutex
	err error
}

func (f *redisFeed) Updates() <-chan order.StatusUpdate {
	return f.updates
}

func (f *redisFeed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *redisFeed) Close() error {
	var err error
	f.once.Do(func() {
		close(f.closed)
		err = f.pubsub.Close()
	})
	return err
}

func (f *redisFeed) receive(ctx context.Context) {
	defer close(f.updates)

	for {
		msg, err := f.pubsub.ReceiveMessage(ctx)
		if err != nil {
			select {
			case <-f.closed:
			default:
				f.mu.Lock()
				f.err = err
				f.mu.Unlock()
			}
			return
		}

		var upd order.StatusUpdate
		if err := json.Unmarshal([]byte(msg.Payload), &upd); err != nil {
			f.logger.WithFields(logrus.Fields{
				"channel": f.name,
				"error":   err.Error(),
			}).Warn("Ignoring malformed status update")
			continue
		}

		select {
		case f.updates <- upd:
		case <-f.closed:
			return
		case <-ctx.Done():
			return
		}
	}
}
