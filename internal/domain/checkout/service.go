// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/order"
	"github.com/your-org/foodorder-backend/internal/domain/pricing"
	"github.com/your-org/foodorder-backend/internal/domain/user"
)

// Service orchestrates checkout: it reads the cart and the active session,
// applies the delivery fee and tax rules, places the order on the ledger and
// clears the cart. It holds no state of its own.
type Service struct {
	config      *config.Config
	cartService *cart.Service
	orders      *order.Service
	users       *user.Service
}

// NewService creates a new checkout service
func NewService(cfg *config.Config, cartService *cart.Service, orders *order.Service, users *user.Service) *Service {
	return &Service{
		config:      cfg,
		cartService: cartService,
		orders:      orders,
		users:       users,
	}
}

// PlaceOrderRequest represents the checkout form. Card fields are captured
// for the order record but never charged or validated against a processor.
type PlaceOrderRequest struct {
	DeliveryAddress     string              `json:"delivery_address"`
	PhoneNumber         string              `json:"phone_number"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
	PaymentMethod       order.PaymentMethod `json:"payment_method"`
	CardNumber          string              `json:"card_number,omitempty"`
	CardHolder          string              `json:"card_holder,omitempty"`
	CardExpiry          string              `json:"card_expiry,omitempty"`
}

// Summary represents the checkout pricing breakdown, rounded for display.
type Summary struct {
	Items       []cart.LineItem `json:"items"`
	Subtotal    float64         `json:"subtotal"`
	DeliveryFee float64         `json:"delivery_fee"`
	Tax         float64         `json:"tax"`
	TotalAmount float64         `json:"total_amount"`
}

// GetSummary computes the current checkout totals from the live cart.
func (s *Service) GetSummary() Summary {
	subtotal := s.cartService.GetTotalPrice()
	fee := s.config.Checkout.DeliveryFee
	tax := subtotal * s.config.Checkout.TaxRate

	return Summary{
		Items:       s.cartService.Items(),
		Subtotal:    pricing.Round2(subtotal),
		DeliveryFee: pricing.Round2(fee),
		Tax:         pricing.Round2(tax),
		TotalAmount: pricing.Round2(subtotal + fee + tax),
	}
}

// PlaceOrder validates the checkout form, snapshots the cart into a new
// order and clears the cart. The cart is cleared only after the ledger has
// accepted and durably saved the order, so a failed placement never loses
// the cart contents.
func (s *Service) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*order.Order, error) {
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("please enter your phone number")
	}
	if req.DeliveryAddress == "" {
		return nil, fmt.Errorf("please enter your delivery address")
	}

	currentUser := s.users.CurrentUser()
	if currentUser == nil {
		return nil, fmt.Errorf("please sign in to place an order")
	}

	if !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("unsupported payment method %q", req.PaymentMethod)
	}

	items := s.cartService.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	subtotal := s.cartService.GetTotalPrice()
	fee := s.config.Checkout.DeliveryFee
	tax := subtotal * s.config.Checkout.TaxRate

	placed, err := s.orders.AddOrder(ctx, order.Draft{
		UserID:              currentUser.ID,
		Items:               items,
		DeliveryAddress:     req.DeliveryAddress,
		PhoneNumber:         req.PhoneNumber,
		SpecialInstructions: req.SpecialInstructions,
		PaymentMethod:       req.PaymentMethod,
		Subtotal:            subtotal,
		DeliveryFee:         fee,
		Tax:                 tax,
		TotalAmount:         subtotal + fee + tax,
	})
	if err != nil {
		// The ledger keeps the order in memory even when the save failed;
		// hand it back alongside the error so the caller can surface it.
		return placed, err
	}

	// Clear only after the snapshot is safely on the ledger.
	s.cartService.ClearCart(ctx)

	return placed, nil
}
