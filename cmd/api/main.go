// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/cart"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/identity"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/menu"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/tracking"
	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/commerce"
	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/database/postgres"
	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/database/redis"
	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/feed"
	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/state"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http/routes"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/logger"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/pdf"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/telemetry"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting storefront")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Session state store
	var (
		store state.Store
		db    *gorm.DB
	)
	switch cfg.State.Driver {
	case "postgres":
		db, err = postgres.NewConnection(cfg, log)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer postgres.Close(db)

		if err := postgres.NewMigration(db, log).Run(); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}

		pgStore := state.NewPostgresStore(db, cfg.State.TTL)
		go pruneExpiredStates(ctx, pgStore, log)
		store = pgStore
	default:
		store = state.NewRedisStore(redisClient.GetClient(), cfg.State.KeyPrefix, cfg.State.TTL)
	}

	// Domain services
	locks := state.NewSessionLocks()
	api := commerce.NewClient(cfg, log)

	carts := cart.NewService(store, locks, cart.ParseIdentity(cfg.Cart.LineIdentity), cfg.State.TTL, log)
	services := &routes.Services{
		Menu:     menu.NewService(api, redisClient.GetClient(), cfg, log),
		Cart:     carts,
		Identity: identity.NewService(store, locks, api, cfg.Auth.CountryCode, log),
		Order:    order.NewService(api, carts, cfg, log),
		Tracking: tracking.NewService(feed.NewRedisSource(redisClient.GetClient(), cfg.Feed.ChannelPrefix, log), cfg, log),
		Receipts: pdf.NewService(cfg),
	}

	// Warm the menu cache so the first visitor does not wait on the API
	go services.Menu.GetMenu(ctx)

	log.Info("All systems operational")

	// Create and start HTTP server
	server := http.NewServer(cfg, services, redisClient.GetClient(), db, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()
	log.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Errorf("Failed to flush traces: %v", err)
	}

	log.Info("Server shutdown completed")
}

// pruneExpiredStates deletes expired session rows once an hour
func pruneExpiredStates(ctx context.Context, store *state.PostgresStore, log *logrus.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.PruneExpired(ctx)
			if err != nil {
				log.WithError(err).Warn("Failed to prune expired session state")
				continue
			}
			if removed > 0 {
				log.WithField("removed", removed).Info("Pruned expired session state")
			}
		}
	}
}
