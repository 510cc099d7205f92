// internal/infrastructure/storage/gorm.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/your-org/foodorder-backend/internal/config"
)

// Record is one key-value row. The value is the whole serialized aggregate.
type Record struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Record) TableName() string {
	return "kv_records"
}

// GormStore persists key-value records through GORM, backed by either an
// on-device SQLite file (the default) or a Postgres database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the configured dialect and migrates the record table.
func NewGormStore(cfg *config.Config) (*GormStore, error) {
	var dialector gorm.Dialector
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		dialector = postgres.Open(cfg.GetPostgresDSN())
	default:
		if dir := filepath.Dir(cfg.Storage.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create storage directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Storage.SQLitePath)
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.IsDevelopment() {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage schema: %w", err)
	}

	return &GormStore{db: db}, nil
}

// Get retrieves a value by key
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record Record
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.Value, nil
}

// Set writes the whole value for a key, inserting or replacing it.
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	record := Record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Save(&record).Error
}

// Delete removes a key; deleting an absent key is not an error.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&Record{}).Error
}

// Health checks the underlying connection
func (s *GormStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
