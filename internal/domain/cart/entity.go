// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// LineItem is one cart row representing a unique (offering, modifier-set)
// combination and its quantity. UnitPrice is cached at add time and never
// recomputed from the catalog afterwards.
type LineItem struct {
	LineID           string    `json:"line_id"`
	OfferingID       string    `json:"offering_id"`
	Title            string    `json:"title"`
	SelectedToppings []string  `json:"selected_toppings"`
	SelectedSides    []string  `json:"selected_sides"`
	Quantity         int       `json:"quantity"`
	UnitPrice        float64   `json:"unit_price"`
	AddedAt          time.Time `json:"added_at"`
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int     `json:"item_count"`     // Number of unique lines
	TotalQuantity int     `json:"total_quantity"` // Sum of all quantities
	Subtotal      float64 `json:"subtotal"`       // Sum of unit price * quantity
}

// LineKey derives the deterministic line identity for an offering and its
// modifier selection. Selection order is irrelevant: the names are sorted
// before joining, so adding {cheese, bacon} and {bacon, cheese} collapses
// into the same line.
func LineKey(offeringID string, selectedToppings, selectedSides []string) string {
	return fmt.Sprintf("%s-%s-%s",
		offeringID,
		strings.Join(sortedCopy(selectedToppings), "-"),
		strings.Join(sortedCopy(selectedSides), "-"),
	)
}

// LineTotal returns the extended price of the line.
func (l *LineItem) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

func (l *LineItem) clone() LineItem {
	copied := *l
	copied.SelectedToppings = append([]string(nil), l.SelectedToppings...)
	copied.SelectedSides = append([]string(nil), l.SelectedSides...)
	return copied
}

// CloneLines deep-copies a line item slice. Order snapshots rely on this to
// stay frozen while the live cart keeps mutating.
func CloneLines(lines []LineItem) []LineItem {
	copied := make([]LineItem, len(lines))
	for i := range lines {
		copied[i] = lines[i].clone()
	}
	return copied
}

func sortedCopy(names []string) []string {
	copied := append([]string(nil), names...)
	sort.Strings(copied)
	return copied
}
