package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Snapshot is one persisted key-value record.
type Snapshot struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"type:blob;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (Snapshot) TableName() string {
	return "snapshots"
}

// SQLite is a Store backed by a single-table SQLite database.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and migrates the
// snapshot table. Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// NewSQLite wraps an already-open gorm DB; the caller has run migrations.
func NewSQLite(db *gorm.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).First(&snap, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap.Value, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	snap := Snapshot{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&snap).Error
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Snapshot{}, "key = ?", key).Error
}

// Close closes the underlying sql.DB.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
