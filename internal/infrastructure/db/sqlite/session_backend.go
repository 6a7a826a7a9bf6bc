package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matchme/matchme-web/internal/core/ports"
)

// sessionRecord is one stored client-context value.
type sessionRecord struct {
	Key       string    `gorm:"column:session_key;primaryKey;size:191"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (sessionRecord) TableName() string { return "sessions" }

// SessionBackend stores client-context values in a SQLite table.
type SessionBackend struct {
	db *gorm.DB
}

var _ ports.SessionBackend = (*SessionBackend)(nil)

func NewSessionBackend(db *gorm.DB) *SessionBackend {
	return &SessionBackend{db: db}
}

func (b *SessionBackend) Load(ctx context.Context, key string) (string, bool, error) {
	var rec sessionRecord
	err := b.db.WithContext(ctx).Where("session_key = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite load: %w", err)
	}
	return rec.Value, true, nil
}

// Save inserts the value or overwrites the existing row for key.
func (b *SessionBackend) Save(ctx context.Context, key, value string) error {
	rec := sessionRecord{Key: key, Value: value}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("sqlite save: %w", err)
	}
	return nil
}

func (b *SessionBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
