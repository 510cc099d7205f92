// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/catalog"
	"github.com/your-org/foodorder-backend/internal/domain/pricing"
	"github.com/your-org/foodorder-backend/internal/infrastructure/storage"
)

// Service owns the cart: the mapping from composed line identity to quantity
// and cached unit price. Every mutation writes the whole cart through to
// durable storage; the in-memory state stays the source of truth when a
// write fails.
type Service struct {
	store        storage.Store
	logger       *logrus.Logger
	writeTimeout time.Duration

	mu      sync.Mutex
	lines   []LineItem
	loading bool
	ready   chan struct{}
}

// NewService creates the cart service and starts the initial load from
// storage. Callers that need the persisted cart should wait on Ready first.
func NewService(store storage.Store, logger *logrus.Logger, cfg *config.Config) *Service {
	s := &Service{
		store:        store,
		logger:       logger,
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

// AddToCart adds one unit of the offering with the given modifier selection.
// Adding the same offering with the same modifier set again, in any selection
// order, increments the existing line instead of creating a duplicate.
func (s *Service) AddToCart(ctx context.Context, offering *catalog.Offering, selectedToppings, selectedSides []string) LineItem {
	lineID := LineKey(offering.ID, selectedToppings, selectedSides)
	unitPrice := pricing.UnitPrice(offering, selectedToppings, selectedSides)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines[i].Quantity++
			s.persistLocked(ctx)
			return s.lines[i].clone()
		}
	}

	line := LineItem{
		LineID:           lineID,
		OfferingID:       offering.ID,
		Title:            offering.Title,
		SelectedToppings: append([]string(nil), selectedToppings...),
		SelectedSides:    append([]string(nil), selectedSides...),
		Quantity:         1,
		UnitPrice:        unitPrice,
		AddedAt:          time.Now().UTC(),
	}
	s.lines = append(s.lines, line)
	s.persistLocked(ctx)
	return line.clone()
}

// UpdateQuantity sets the absolute quantity of a line. A quantity of zero or
// less removes the line. Unknown line ids are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, lineID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, lineID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines[i].Quantity = quantity
			s.persistLocked(ctx)
			return
		}
	}
}

// RemoveFromCart deletes a line if present; unknown line ids are a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked(ctx)
			return
		}
	}
}

// ClearCart empties the cart and persists the empty state.
func (s *Service) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persistLocked(ctx)
}

// Items returns a deep copy of the cart lines in insertion order.
func (s *Service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CloneLines(s.lines)
}

// GetTotalItems returns the sum of quantities over all lines.
func (s *Service) GetTotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for i := range s.lines {
		total += s.lines[i].Quantity
	}
	return total
}

// GetTotalPrice returns the sum of unit price times quantity over all lines.
// The sum is unrounded; round at presentation time only.
func (s *Service) GetTotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for i := range s.lines {
		total += s.lines[i].LineTotal()
	}
	return total
}

// GetTotals returns the cart totals in one pass.
func (s *Service) GetTotals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := Totals{ItemCount: len(s.lines)}
	for i := range s.lines {
		totals.TotalQuantity += s.lines[i].Quantity
		totals.Subtotal += s.lines[i].LineTotal()
	}
	return totals
}

// persistLocked writes the whole cart through to storage. Write failures are
// logged and swallowed: the in-memory cart remains authoritative for the
// lifetime of the process. Callers must hold s.mu.
func (s *Service) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.WithError(err).Error("Failed to serialize cart")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.store.Set(ctx, storage.KeyCart, data); err != nil {
		s.logger.WithError(err).Error("Failed to save cart to storage")
	}
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

	data, err := s.store.Get(ctx, storage.KeyCart)
	if err == storage.ErrNotFound {
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to load cart from storage")
		return
	}

	var lines []LineItem
	if err := json.Unmarshal(data, &lines); err != nil {
		// Corrupt payload: start from an empty cart rather than failing.
		s.logger.WithError(err).Error("Malformed cart data in storage, starting empty")
		return
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}
