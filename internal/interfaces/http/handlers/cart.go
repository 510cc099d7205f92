// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/catalog"
	"github.com/your-org/foodorder-backend/internal/pkg/metrics"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService    *cart.Service
	catalogService *catalog.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, catalogService *catalog.Service) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

// AddToCartRequest represents a request to add an offering to the cart
type AddToCartRequest struct {
	OfferingID       string   `json:"offering_id" binding:"required"`
	SelectedToppings []string `json:"selected_toppings"`
	SelectedSides    []string `json:"selected_sides"`
}

// UpdateQuantityRequest represents a quantity change for a cart line. The
// quantity is a pointer so an explicit zero, which removes the line, can be
// told apart from a missing field.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	totals := h.cartService.GetTotals()

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items":       h.cartService.Items(),
			"totals":      totals,
			"total_price": h.cartService.GetTotalPrice(),
			"is_loading":  h.cartService.IsLoading(),
		},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	offering := h.catalogService.ByID(req.OfferingID)
	if offering == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Offering not found",
		})
		return
	}

	item := h.cartService.AddToCart(c.Request.Context(), offering, req.SelectedToppings, req.SelectedSides)
	metrics.CartMutations.WithLabelValues("add").Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    item,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.cartService.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	metrics.CartMutations.WithLabelValues("update").Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data":    h.cartService.GetTotals(),
	})
}

// RemoveCartItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	h.cartService.RemoveFromCart(c.Request.Context(), c.Param("id"))
	metrics.CartMutations.WithLabelValues("remove").Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    h.cartService.GetTotals(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.cartService.ClearCart(c.Request.Context())
	metrics.CartMutations.WithLabelValues("clear").Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
