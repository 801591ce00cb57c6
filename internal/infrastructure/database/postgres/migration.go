// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/cryai2821/pizza-wale-fe/internal/infrastructure/state"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// Run migrates every model and creates the extra indexes
func (m *Migration) Run() error {
	if err := m.RunAutoMigrations(); err != nil {
		return err
	}
	return m.CreateIndexes()
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	models := []interface{}{
		&state.Record{},
	}

	for _, model := range models {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_storefront_states_kind_expires ON storefront_states(kind, expires_at)",
		"CREATE INDEX IF NOT EXISTS idx_storefront_states_updated_at ON storefront_states(updated_at DESC)",
	}

	failCount := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
			failCount++
		}
	}

	m.logger.WithFields(logrus.Fields{
		"created": len(indexes) - failCount,
		"failed":  failCount,
	}).Info("Database indexes created")
	return nil
}
