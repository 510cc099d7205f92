// internal/domain/catalog/entity.go
package catalog

// Modifier is a named, independently priced add-on attachable to an offering.
type Modifier struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Offering represents a purchasable menu item with a base price and optional
// modifiers. Offerings are read-only once loaded.
type Offering struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	BasePrice     float64    `json:"base_price"`
	OriginalPrice float64    `json:"original_price,omitempty"`
	Rating        float64    `json:"rating,omitempty"`
	Calories      int        `json:"calories,omitempty"`
	Toppings      []Modifier `json:"toppings"`
	Sides         []Modifier `json:"sides"`
}

// Category represents a browse category shown on the home feed.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToppingPrice returns the price of the named topping and whether it exists.
func (o *Offering) ToppingPrice(name string) (float64, bool) {
	return modifierPrice(o.Toppings, name)
}

// SidePrice returns the price of the named side and whether it exists.
func (o *Offering) SidePrice(name string) (float64, bool) {
	return modifierPrice(o.Sides, name)
}

func modifierPrice(modifiers []Modifier, name string) (float64, bool) {
	for _, m := range modifiers {
		if m.Name == name {
			return m.Price, true
		}
	}
	return 0, false
}
