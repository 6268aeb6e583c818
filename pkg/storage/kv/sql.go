package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Chinmay1145/velocity-speed-emporium/pkg/db/models"
)

// SQL stores slots as rows of the cart_slots table. The schema comes from the
// goose migrations.
type SQL struct {
	conn *gorm.DB
	now  func() time.Time
}

// NewSQL wraps an open gorm connection. The caller keeps ownership of the connection.
func NewSQL(conn *gorm.DB) (*SQL, error) {
	if conn == nil {
		return nil, errors.New("gorm connection is required")
	}
	return &SQL{conn: conn, now: time.Now}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var slot models.CartSlot
	err := s.conn.WithContext(ctx).Where("slot_key = ?", key).Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", key, err)
	}
	return []byte(slot.Payload), nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	slot := models.CartSlot{Key: key, Payload: string(value), UpdatedAt: s.now().UTC()}
	err := s.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if err := s.conn.WithContext(ctx).Where("slot_key = ?", key).Delete(&models.CartSlot{}).Error; err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQL) Close() error { return nil }
