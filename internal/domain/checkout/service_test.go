package checkout_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/catalog"
	"github.com/your-org/foodorder-backend/internal/domain/checkout"
	"github.com/your-org/foodorder-backend/internal/domain/order"
	"github.com/your-org/foodorder-backend/internal/domain/user"
	"github.com/your-org/foodorder-backend/internal/infrastructure/storage"
)

type failingStore struct {
	*storage.MemoryStore
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

type fixture struct {
	cfg      *config.Config
	cart     *cart.Service
	orders   *order.Service
	users    *user.Service
	checkout *checkout.Service
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage.WriteTimeout = time.Second
	cfg.Checkout.DeliveryFee = 5.0
	cfg.Checkout.TaxRate = 0.10
	cfg.Checkout.EstimatedDelivery = 45 * time.Minute
	cfg.Security.BcryptCost = bcrypt.MinCost
	return cfg
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func waitReady(t *testing.T, ready ...<-chan struct{}) {
	t.Helper()
	for _, ch := range ready {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("service never finished loading")
		}
	}
}

// newFixture wires a full checkout stack against in-memory stores. orderStore
// lets a test inject a failing backend for the ledger alone.
func newFixture(t *testing.T, orderStore storage.Store) *fixture {
	t.Helper()

	cfg := testConfig()
	logger := testLogger()
	if orderStore == nil {
		orderStore = storage.NewMemoryStore()
	}

	cartSvc := cart.NewService(storage.NewMemoryStore(), logger, cfg)
	orderSvc := order.NewService(orderStore, logger, cfg)
	userSvc := user.NewService(storage.NewMemoryStore(), logger, cfg, nil)
	waitReady(t, cartSvc.Ready(), orderSvc.Ready(), userSvc.Ready())

	return &fixture{
		cfg:      cfg,
		cart:     cartSvc,
		orders:   orderSvc,
		users:    userSvc,
		checkout: checkout.NewService(cfg, cartSvc, orderSvc, userSvc),
	}
}

func (f *fixture) signInDemo(t *testing.T) {
	t.Helper()
	_, err := f.users.SignIn(context.Background(), "demo@food.com", "demo123")
	require.NoError(t, err)
}

func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	off := &catalog.Offering{
		ID:        "1",
		Title:     "SUMMER COMBO",
		BasePrice: 12.99,
		Toppings:  []catalog.Modifier{{Name: "Bacon", Price: 2.0}},
		Sides:     []catalog.Modifier{{Name: "Fries", Price: 3.5}},
	}
	ctx := context.Background()
	f.cart.AddToCart(ctx, off, []string{"Bacon"}, []string{"Fries"})
	f.cart.AddToCart(ctx, off, []string{"Bacon"}, []string{"Fries"})
}

func validRequest() *checkout.PlaceOrderRequest {
	return &checkout.PlaceOrderRequest{
		DeliveryAddress: "1 Main St",
		PhoneNumber:     "5551234",
		PaymentMethod:   order.PaymentMethodCard,
	}
}

func TestGetSummaryMath(t *testing.T) {
	f := newFixture(t, nil)
	f.fillCart(t)

	// 2 x (12.99 + 2.0 + 3.5) = 36.98
	summary := f.checkout.GetSummary()
	assert.InDelta(t, 36.98, summary.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, summary.DeliveryFee, 1e-9)
	assert.InDelta(t, 3.70, summary.Tax, 1e-9)
	assert.InDelta(t, 45.68, summary.TotalAmount, 1e-9)
	assert.Len(t, summary.Items, 1)
}

func TestGetSummaryEmptyCart(t *testing.T) {
	f := newFixture(t, nil)

	summary := f.checkout.GetSummary()
	assert.Zero(t, summary.Subtotal)
	assert.InDelta(t, 5.0, summary.DeliveryFee, 1e-9)
	assert.InDelta(t, 5.0, summary.TotalAmount, 1e-9)
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixture(t, nil)
	f.signInDemo(t)
	f.fillCart(t)
	ctx := context.Background()

	req := validRequest()
	req.PhoneNumber = ""
	_, err := f.checkout.PlaceOrder(ctx, req)
	require.EqualError(t, err, "please enter your phone number")

	req = validRequest()
	req.DeliveryAddress = ""
	_, err = f.checkout.PlaceOrder(ctx, req)
	require.EqualError(t, err, "please enter your delivery address")

	req = validRequest()
	req.PaymentMethod = "barter"
	_, err = f.checkout.PlaceOrder(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment method")

	// Validation failures must leave the cart untouched.
	assert.Len(t, f.cart.Items(), 1)
}

func TestPlaceOrderRequiresSignIn(t *testing.T) {
	f := newFixture(t, nil)
	f.fillCart(t)

	_, err := f.checkout.PlaceOrder(context.Background(), validRequest())
	require.EqualError(t, err, "please sign in to place an order")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t, nil)
	f.signInDemo(t)

	_, err := f.checkout.PlaceOrder(context.Background(), validRequest())
	require.EqualError(t, err, "cart is empty")
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newFixture(t, nil)
	f.signInDemo(t)
	f.fillCart(t)

	placed, err := f.checkout.PlaceOrder(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, placed)

	assert.Equal(t, order.StatusPending, placed.Status)
	assert.InDelta(t, 36.98, placed.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, placed.DeliveryFee, 1e-9)
	assert.InDelta(t, 36.98*0.10, placed.Tax, 1e-9)
	assert.InDelta(t, 36.98+5.0+36.98*0.10, placed.TotalAmount, 1e-9)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, 2, placed.Items[0].Quantity)

	// The cart is cleared and the ledger holds the order.
	assert.Empty(t, f.cart.Items())
	assert.NotNil(t, f.orders.GetOrderByID(placed.ID))
}

func TestPlaceOrderPersistFailureKeepsCart(t *testing.T) {
	f := newFixture(t, &failingStore{storage.NewMemoryStore()})
	f.signInDemo(t)
	f.fillCart(t)

	placed, err := f.checkout.PlaceOrder(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, order.ErrNotPersisted))

	// The order lives in memory but the cart must not be cleared.
	require.NotNil(t, placed)
	assert.NotNil(t, f.orders.GetOrderByID(placed.ID))
	assert.Len(t, f.cart.Items(), 1)
}

func TestPlaceOrderCarriesDraftFields(t *testing.T) {
	f := newFixture(t, nil)
	f.signInDemo(t)
	f.fillCart(t)

	req := validRequest()
	req.SpecialInstructions = "ring twice"
	req.PaymentMethod = order.PaymentMethodCash

	placed, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ring twice", placed.SpecialInstructions)
	assert.Equal(t, order.PaymentMethodCash, placed.PaymentMethod)
	assert.Equal(t, "1 Main St", placed.DeliveryAddress)
	assert.Equal(t, "5551234", placed.PhoneNumber)
	assert.NotEmpty(t, placed.UserID)
}
