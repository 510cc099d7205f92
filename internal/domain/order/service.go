// internal/domain/order/service.go
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/infrastructure/storage"
)

// ErrNotPersisted marks an order that was placed in memory but could not be
// written to storage.
var ErrNotPersisted = errors.New("order not durably saved")

// Service owns the order ledger: an append-only collection of placed orders
// with in-place status updates, persisted whole under one storage key.
type Service struct {
	store        storage.Store
	logger       *logrus.Logger
	deliveryETA  time.Duration
	writeTimeout time.Duration

	mu      sync.Mutex
	orders  []Order
	loading bool
	ready   chan struct{}
}

// NewService creates the order ledger and starts the initial load from
// storage.
func NewService(store storage.Store, logger *logrus.Logger, cfg *config.Config) *Service {
	s := &Service{
		store:        store,
		logger:       logger,
		deliveryETA:  cfg.Checkout.EstimatedDelivery,
		writeTimeout: cfg.Storage.WriteTimeout,
		loading:      true,
		ready:        make(chan struct{}),
	}

	go s.loadFromStorage(context.Background())

	return s
}

// Ready is closed once the initial load from storage has completed.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// IsLoading reports whether the initial load is still in flight.
func (s *Service) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// AddOrder places a new order from the draft: it assigns a fresh id, stamps
// the order date, starts the lifecycle at pending and computes the estimated
// delivery time. The new order is prepended so the ledger stays newest-first.
//
// Unlike cart writes, a persistence failure here is returned to the caller:
// losing an order silently is the most damaging failure in this system, so
// the caller must be able to tell "placed and saved" from "placed in memory
// only". The in-memory ledger keeps the order either way.
func (s *Service) AddOrder(ctx context.Context, draft Draft) (*Order, error) {
	now := time.Now().UTC()
	eta := now.Add(s.deliveryETA)

	newOrder := Order{
		ID:                  fmt.Sprintf("order-%s", uuid.New().String()),
		UserID:              draft.UserID,
		Items:               cart.CloneLines(draft.Items),
		DeliveryAddress:     draft.DeliveryAddress,
		PhoneNumber:         draft.PhoneNumber,
		SpecialInstructions: draft.SpecialInstructions,
		PaymentMethod:       draft.PaymentMethod,
		Subtotal:            draft.Subtotal,
		DeliveryFee:         draft.DeliveryFee,
		Tax:                 draft.Tax,
		TotalAmount:         draft.TotalAmount,
		Status:              StatusPending,
		OrderDate:           now,
		EstimatedDelivery:   &eta,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append([]Order{newOrder}, s.orders...)

	if err := s.persistLocked(ctx); err != nil {
		s.logger.WithError(err).WithField("order_id", newOrder.ID).
			Error("Failed to save orders to storage")
		result := newOrder.clone()
		return &result, fmt.Errorf("order %s: %w: %v", newOrder.ID, ErrNotPersisted, err)
	}

	result := newOrder.clone()
	return &result, nil
}

// GetOrderByID returns a copy of the order with the given id, or nil if no
// such order exists.
func (s *Service) GetOrderByID(orderID string) *Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == orderID {
			copied := s.orders[i].clone()
			return &copied
		}
	}
	return nil
}

// GetUserOrders returns the user's orders, newest first.
func (s *Service) GetUserOrders(userID string) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Order, 0)
	for i := range s.orders {
		if s.orders[i].UserID == userID {
			result = append(result, s.orders[i].clone())
		}
	}
	return result
}

// Orders returns a copy of the whole ledger, newest first.
func (s *Service) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Order, len(s.orders))
	for i := range s.orders {
		result[i] = s.orders[i].clone()
	}
	return result
}

// UpdateOrderStatus overwrites the status of an order. Transitions are
// deliberately permissive: any defined status can replace any other, so an
// operator can correct mistakes. Out-of-sequence transitions are logged.
// An unknown order id leaves the ledger unchanged.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != orderID {
			continue
		}

		previous := s.orders[i].Status
		if previous.IsTerminal() && status != previous {
			s.logger.WithFields(logrus.Fields{
				"order_id": orderID,
				"from":     previous,
				"to":       status,
			}).Warn("Order status changed out of terminal state")
		}

		s.orders[i].Status = status
		if err := s.persistLocked(ctx); err != nil {
			s.logger.WithError(err).WithField("order_id", orderID).
				Error("Failed to save orders to storage")
		}
		return
	}
}

func (s *Service) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.orders)
	if err != nil {
		return fmt.Errorf("failed to serialize orders: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	return s.store.Set(ctx, storage.KeyOrders, data)
}

func (s *Service) loadFromStorage(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
	}()

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	data, err := s.store.Get(ctx, storage.KeyOrders)
	if err == storage.ErrNotFound {
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to load orders from storage")
		return
	}

	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		// Corrupt payload: start from an empty ledger rather than failing.
		s.logger.WithError(err).Error("Malformed order data in storage, starting empty")
		return
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
}
