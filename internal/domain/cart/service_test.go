package cart_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/catalog"
	"github.com/your-org/foodorder-backend/internal/infrastructure/storage"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage.WriteTimeout = time.Second
	return cfg
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newCartService(t *testing.T, store storage.Store) *cart.Service {
	t.Helper()
	svc := cart.NewService(store, testLogger(), testConfig())
	select {
	case <-svc.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("cart service never finished loading")
	}
	return svc
}

func burger() *catalog.Offering {
	return &catalog.Offering{
		ID:        "1",
		Title:     "SUMMER COMBO",
		BasePrice: 12.99,
		Toppings: []catalog.Modifier{
			{Name: "Extra Cheese", Price: 1.5},
			{Name: "Bacon", Price: 2.0},
		},
		Sides: []catalog.Modifier{
			{Name: "Fries", Price: 3.5},
		},
	}
}

func TestLineKeyOrderInsensitive(t *testing.T) {
	a := cart.LineKey("1", []string{"Bacon", "Extra Cheese"}, []string{"Fries"})
	b := cart.LineKey("1", []string{"Extra Cheese", "Bacon"}, []string{"Fries"})
	assert.Equal(t, a, b)

	c := cart.LineKey("1", []string{"Bacon"}, []string{"Fries"})
	assert.NotEqual(t, a, c)
}

func TestAddToCartMergesSameSelection(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	svc.AddToCart(ctx, burger(), []string{"Bacon", "Extra Cheese"}, []string{"Fries"})
	svc.AddToCart(ctx, burger(), []string{"Extra Cheese", "Bacon"}, []string{"Fries"})

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartDistinctSelectionsStaySeparate(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	svc.AddToCart(ctx, burger(), []string{"Bacon"}, nil)
	svc.AddToCart(ctx, burger(), []string{"Extra Cheese"}, nil)
	svc.AddToCart(ctx, burger(), nil, nil)

	assert.Len(t, svc.Items(), 3)
	assert.Equal(t, 3, svc.GetTotalItems())
}

func TestAddToCartCachesUnitPrice(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())

	item := svc.AddToCart(context.Background(), burger(), []string{"Bacon"}, []string{"Fries"})
	assert.InDelta(t, 12.99+2.0+3.5, item.UnitPrice, 1e-9)
}

func TestUpdateQuantity(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	item := svc.AddToCart(ctx, burger(), nil, nil)
	svc.UpdateQuantity(ctx, item.LineID, 5)

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	item := svc.AddToCart(ctx, burger(), nil, nil)
	svc.UpdateQuantity(ctx, item.LineID, 0)
	assert.Empty(t, svc.Items())

	item = svc.AddToCart(ctx, burger(), nil, nil)
	svc.UpdateQuantity(ctx, item.LineID, -3)
	assert.Empty(t, svc.Items())
}

func TestUpdateQuantityUnknownLineNoOp(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	svc.AddToCart(ctx, burger(), nil, nil)
	svc.UpdateQuantity(ctx, "no-such-line", 7)

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveFromCartUnknownLineNoOp(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	svc.AddToCart(ctx, burger(), nil, nil)
	svc.RemoveFromCart(ctx, "no-such-line")
	assert.Len(t, svc.Items(), 1)
}

func TestClearCart(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	svc.AddToCart(ctx, burger(), nil, nil)
	svc.AddToCart(ctx, burger(), []string{"Bacon"}, nil)
	svc.ClearCart(ctx)

	assert.Empty(t, svc.Items())
	assert.Equal(t, 0, svc.GetTotalItems())
	assert.Equal(t, 0.0, svc.GetTotalPrice())
}

func TestTotals(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	// 3 x 12.99 plus one line at 14.99.
	plain := svc.AddToCart(ctx, burger(), nil, nil)
	svc.AddToCart(ctx, burger(), []string{"Bacon"}, nil)
	svc.UpdateQuantity(ctx, plain.LineID, 3)

	totals := svc.GetTotals()
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 4, totals.TotalQuantity)
	assert.InDelta(t, 3*12.99+14.99, totals.Subtotal, 1e-9)
	assert.InDelta(t, totals.Subtotal, svc.GetTotalPrice(), 1e-9)
}

func TestCartSurvivesRestart(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	first := newCartService(t, store)
	first.AddToCart(ctx, burger(), []string{"Bacon"}, []string{"Fries"})
	first.AddToCart(ctx, burger(), []string{"Bacon"}, []string{"Fries"})

	second := newCartService(t, store)
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 12.99+2.0+3.5, items[0].UnitPrice, 1e-9)
}

func TestCorruptStoredCartStartsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), storage.KeyCart, []byte("{not json")))

	svc := newCartService(t, store)
	assert.Empty(t, svc.Items())

	// The cart stays usable and overwrites the bad payload.
	svc.AddToCart(context.Background(), burger(), nil, nil)
	assert.Len(t, svc.Items(), 1)
}

func TestItemsReturnsCopies(t *testing.T) {
	svc := newCartService(t, storage.NewMemoryStore())
	ctx := context.Background()

	svc.AddToCart(ctx, burger(), []string{"Bacon"}, nil)

	items := svc.Items()
	items[0].Quantity = 99
	items[0].SelectedToppings[0] = "mutated"

	fresh := svc.Items()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, "Bacon", fresh[0].SelectedToppings[0])
}
