// internal/infrastructure/storage/store.go
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/foodorder-backend/internal/config"
)

// Well-known keys used by the aggregates. Each key's value is serialized as a
// whole on every write; no cross-key transactionality is provided.
const (
	KeyCart      = "cart"
	KeyOrders    = "orders"
	KeyUser      = "user"
	KeyDirectory = "users"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is the durable local key-value store shared by the cart, the order
// ledger and the user directory.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Health(ctx context.Context) error
	Close() error
}

// Open constructs the store selected by STORAGE_DRIVER.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return NewMemoryStore(), nil
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		return NewGormStore(cfg)
	case config.StorageDriverRedis:
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
