// internal/domain/pricing/engine.go
package pricing

import (
	"math"

	"github.com/your-org/foodorder-backend/internal/domain/catalog"
)

// UnitPrice computes the price of one unit of an offering with the selected
// toppings and sides. Selections that no longer exist on the offering
// contribute zero, which tolerates stale cart selections after a menu change.
// Accumulation is unrounded; round only at presentation time with Round2.
func UnitPrice(offering *catalog.Offering, selectedToppings, selectedSides []string) float64 {
	price := offering.BasePrice

	for _, name := range selectedToppings {
		if p, ok := offering.ToppingPrice(name); ok {
			price += p
		}
	}
	for _, name := range selectedSides {
		if p, ok := offering.SidePrice(name); ok {
			price += p
		}
	}

	return price
}

// Round2 rounds an amount to two decimals for display and serialization.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
