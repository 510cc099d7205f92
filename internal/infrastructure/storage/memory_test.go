package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/infrastructure/storage"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyCart, []byte(`[]`)))

	got, err := store.Get(ctx, storage.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestMemoryStoreGetMissingKey(t *testing.T) {
	store := storage.NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, storage.KeyUser, []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, storage.KeyUser))

	_, err := store.Get(ctx, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete(ctx, storage.KeyUser))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	// Mutating the returned slice must not touch the stored value.
	got[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryStoreHealthAndClose(t *testing.T) {
	store := storage.NewMemoryStore()
	assert.NoError(t, store.Health(context.Background()))
	assert.NoError(t, store.Close())
}

func TestOpenMemoryDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageDriverMemory

	store, err := storage.Open(cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Health(context.Background()))
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = "cassandra"

	_, err := storage.Open(cfg)
	require.Error(t, err)
}
