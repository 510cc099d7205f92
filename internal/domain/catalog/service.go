// internal/domain/catalog/service.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/your-org/foodorder-backend/internal/config"
)

// Service supplies the read-only menu catalog. The menu comes from the
// built-in seed data unless a JSON file is configured.
type Service struct {
	offerings  []Offering
	categories []Category
	byID       map[string]*Offering
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Category string `form:"category"`
	Query    string `form:"q"`
}

// NewService creates a catalog service, loading the menu file when configured.
func NewService(cfg *config.Config) (*Service, error) {
	offerings := defaultMenu()
	if cfg.Catalog.MenuFile != "" {
		loaded, err := loadMenuFile(cfg.Catalog.MenuFile)
		if err != nil {
			return nil, err
		}
		offerings = loaded
	}

	byID := make(map[string]*Offering, len(offerings))
	for i := range offerings {
		if _, exists := byID[offerings[i].ID]; exists {
			return nil, fmt.Errorf("duplicate offering id %q in catalog", offerings[i].ID)
		}
		byID[offerings[i].ID] = &offerings[i]
	}

	return &Service{
		offerings:  offerings,
		categories: defaultCategories(),
		byID:       byID,
	}, nil
}

// ByID returns the offering with the given id, or nil if it does not exist.
func (s *Service) ByID(id string) *Offering {
	if off, ok := s.byID[id]; ok {
		copied := *off
		return &copied
	}
	return nil
}

// List returns the offerings matching the request filters. An empty or "All"
// category matches everything; the query matches title substrings.
func (s *Service) List(req ListRequest) []Offering {
	result := make([]Offering, 0, len(s.offerings))
	query := strings.ToLower(strings.TrimSpace(req.Query))

	for _, off := range s.offerings {
		if req.Category != "" && req.Category != "All" && off.Category != req.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(off.Title), query) {
			continue
		}
		result = append(result, off)
	}
	return result
}

// Categories returns the browse categories.
func (s *Service) Categories() []Category {
	return s.categories
}

func loadMenuFile(path string) ([]Offering, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}

	var offerings []Offering
	if err := json.Unmarshal(data, &offerings); err != nil {
		return nil, fmt.Errorf("failed to parse menu file: %w", err)
	}
	if len(offerings) == 0 {
		return nil, fmt.Errorf("menu file %s contains no offerings", path)
	}
	return offerings, nil
}

func defaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "All"},
		{ID: "2", Name: "Burger"},
		{ID: "3", Name: "Pizza"},
		{ID: "4", Name: "Wrap"},
		{ID: "5", Name: "Burrito"},
	}
}

func defaultMenu() []Offering {
	return []Offering{
		{
			ID:            "1",
			Title:         "SUMMER COMBO",
			Category:      "Burger",
			Description:   "Juicy beef patty with fresh lettuce, tomatoes, onions, and our signature sauce. Perfect for summer days!",
			BasePrice:     12.99,
			OriginalPrice: 15.99,
			Rating:        4.8,
			Calories:      850,
			Toppings: []Modifier{
				{Name: "Extra Cheese", Price: 1.5},
				{Name: "Bacon", Price: 2.0},
				{Name: "Avocado", Price: 1.5},
				{Name: "Mushrooms", Price: 1.2},
			},
			Sides: []Modifier{
				{Name: "Fries", Price: 3.5},
				{Name: "Onion Rings", Price: 4.0},
				{Name: "Coleslaw", Price: 2.5},
			},
		},
		{
			ID:            "2",
			Title:         "BURGER BASH",
			Category:      "Burger",
			Description:   "Double beef patty with crispy bacon, melted cheese, and our special BBQ sauce. A burger lover's dream!",
			BasePrice:     14.99,
			OriginalPrice: 18.99,
			Rating:        4.9,
			Calories:      920,
			Toppings: []Modifier{
				{Name: "Extra Patty", Price: 3.0},
				{Name: "Bacon", Price: 2.0},
				{Name: "Cheese", Price: 1.0},
				{Name: "Onions", Price: 0.5},
			},
			Sides: []Modifier{
				{Name: "Fries", Price: 3.5},
				{Name: "Onion Rings", Price: 4.0},
				{Name: "Mozarella Sticks", Price: 5.0},
			},
		},
		{
			ID:            "3",
			Title:         "PIZZA PARTY",
			Category:      "Pizza",
			Description:   "Large pepperoni pizza with extra cheese, mushrooms, and bell peppers. Perfect for sharing with friends!",
			BasePrice:     16.99,
			OriginalPrice: 21.99,
			Rating:        4.7,
			Calories:      1200,
			Toppings: []Modifier{
				{Name: "Extra Cheese", Price: 2.0},
				{Name: "Pepperoni", Price: 2.5},
				{Name: "Mushrooms", Price: 1.2},
				{Name: "Bell Peppers", Price: 1.0},
			},
			Sides: []Modifier{
				{Name: "Garlic Bread", Price: 4.0},
				{Name: "Salad", Price: 4.5},
				{Name: "Onion Rings", Price: 4.0},
			},
		},
		{
			ID:            "4",
			Title:         "BURRITO DELIGHT",
			Category:      "Burrito",
			Description:   "Grilled chicken burrito with rice, beans, cheese, and salsa. Wrapped in a warm flour tortilla!",
			BasePrice:     11.99,
			OriginalPrice: 14.99,
			Rating:        4.6,
			Calories:      780,
			Toppings: []Modifier{
				{Name: "Extra Chicken", Price: 2.5},
				{Name: "Cheese", Price: 1.0},
				{Name: "Sour Cream", Price: 0.8},
				{Name: "Guacamole", Price: 1.5},
			},
			Sides: []Modifier{
				{Name: "Chips & Salsa", Price: 3.0},
				{Name: "Fries", Price: 3.5},
				{Name: "Coleslaw", Price: 2.5},
			},
		},
		{
			ID:            "5",
			Title:         "CHICKEN WINGS",
			Category:      "Wings",
			Description:   "Crispy chicken wings tossed in your choice of sauce. Served with celery and ranch!",
			BasePrice:     13.99,
			OriginalPrice: 16.99,
			Rating:        4.5,
			Calories:      650,
			Toppings: []Modifier{
				{Name: "Extra Sauce", Price: 1.0},
				{Name: "Blue Cheese", Price: 0.5},
				{Name: "Hot Sauce", Price: 0.75},
			},
			Sides: []Modifier{
				{Name: "Fries", Price: 3.5},
				{Name: "Celery", Price: 1.0},
				{Name: "Ranch", Price: 0.5},
			},
		},
		{
			ID:            "6",
			Title:         "PASTA PRIMAVERA",
			Category:      "Pasta",
			Description:   "Fresh pasta with seasonal vegetables in a light cream sauce. A vegetarian favorite!",
			BasePrice:     15.99,
			Rating:        4.4,
			Calories:      720,
			Toppings: []Modifier{
				{Name: "Extra Parmesan", Price: 1.5},
				{Name: "Chicken", Price: 3.0},
				{Name: "Shrimp", Price: 4.0},
			},
			Sides: []Modifier{
				{Name: "Garlic Bread", Price: 4.0},
				{Name: "Salad", Price: 4.5},
				{Name: "Soup", Price: 3.0},
			},
		},
	}
}
