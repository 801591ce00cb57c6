// internal/infrastructure/state/postgres_store.go
package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one persisted state document
type Record struct {
	SessionID string    `gorm:"primaryKey;size:64" json:"session_id"`
	Kind      string    `gorm:"primaryKey;size:32" json:"kind"`
	Payload   []byte    `gorm:"not null" json:"payload"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Record) TableName() string {
	return "storefront_states"
}

// PostgresStore keeps session state in a gorm managed table
type PostgresStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore creates a gorm backed store
func NewPostgresStore(db *gorm.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{
		db:  db,
		ttl: ttl,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Get implements Store
func (s *PostgresStore) Get(ctx context.Context, sessionID, kind string) ([]byte, bool, error) {
	if sessionID == "" {
		return nil, false, ErrNoSession
	}

	var rec Record
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND kind = ? AND expires_at > ?", sessionID, kind, s.now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s state: %w", kind, err)
	}

	return rec.Payload, true, nil
}

// Put implements Store
func (s *PostgresStore) Put(ctx context.Context, sessionID, kind string, payload []byte) error {
	if sessionID == "" {
		return ErrNoSession
	}

	rec := Record{
		SessionID: sessionID,
		Kind:      kind,
		Payload:   payload,
		ExpiresAt: s.now().Add(s.ttl),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save %s state: %w", kind, err)
	}
	return nil
}

// Delete implements Store
func (s *PostgresStore) Delete(ctx context.Context, sessionID, kind string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	err := s.db.WithContext(ctx).
		Where("session_id = ? AND kind = ?", sessionID, kind).
		Delete(&Record{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s state: %w", kind, err)
	}
	return nil
}

// PruneExpired removes expired documents and returns how many were deleted
func (s *PostgresStore) PruneExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&Record{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune expired state: %w", result.Error)
	}
	return result.RowsAffected, nil
}
