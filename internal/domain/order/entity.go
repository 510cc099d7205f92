// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/foodorder-backend/internal/domain/cart"
)

// Status represents the order lifecycle status
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusOnTheWay  Status = "on-the-way"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentMethod represents how the order is paid
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// Order is an immutable snapshot taken at placement time: the cart lines,
// delivery and payment metadata, the computed amounts and the lifecycle
// status. Orders are never deleted; cancellation is a status, not a removal.
type Order struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	Items               []cart.LineItem `json:"items"`
	DeliveryAddress     string          `json:"delivery_address"`
	PhoneNumber         string          `json:"phone_number"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	PaymentMethod       PaymentMethod   `json:"payment_method"`
	Subtotal            float64         `json:"subtotal"`
	DeliveryFee         float64         `json:"delivery_fee"`
	Tax                 float64         `json:"tax"`
	TotalAmount         float64         `json:"total_amount"`
	Status              Status          `json:"status"`
	OrderDate           time.Time       `json:"order_date"`
	EstimatedDelivery   *time.Time      `json:"estimated_delivery,omitempty"`
}

// Draft carries the caller-supplied fields of a new order. The ledger stamps
// id, date, status and estimated delivery on placement.
type Draft struct {
	UserID              string
	Items               []cart.LineItem
	DeliveryAddress     string
	PhoneNumber         string
	SpecialInstructions string
	PaymentMethod       PaymentMethod
	Subtotal            float64
	DeliveryFee         float64
	Tax                 float64
	TotalAmount         float64
}

// IsValid reports whether the status is one of the defined lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOnTheWay, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Progress maps a status to its display progress percentage. Unrecognized
// statuses map to 0.
func (s Status) Progress() int {
	switch s {
	case StatusPending:
		return 0
	case StatusConfirmed:
		return 25
	case StatusPreparing:
		return 50
	case StatusOnTheWay:
		return 75
	case StatusDelivered:
		return 100
	case StatusCancelled:
		return 0
	default:
		return 0
	}
}

// IsTerminal reports whether the status is terminal by convention. Terminality
// is not enforced on transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsValid reports whether the payment method is supported.
func (p PaymentMethod) IsValid() bool {
	return p == PaymentMethodCard || p == PaymentMethodCash
}

func (o *Order) clone() Order {
	copied := *o
	copied.Items = cart.CloneLines(o.Items)
	if o.EstimatedDelivery != nil {
		eta := *o.EstimatedDelivery
		copied.EstimatedDelivery = &eta
	}
	return copied
}
