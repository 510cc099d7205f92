// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/domain/order"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/middleware"
	"github.com/your-org/foodorder-backend/internal/pkg/pdf"
)

// OrderHandler handles order history and lifecycle endpoints
type OrderHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, pdfService *pdf.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		pdfService:   pdfService,
	}
}

// UpdateStatusRequest represents a lifecycle transition for an order
type UpdateStatusRequest struct {
	Status order.Status `json:"status" binding:"required"`
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	orders := h.orderService.GetUserOrders(userID)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"orders": orders,
			"total":  len(orders),
		},
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	found := h.orderService.GetOrderByID(c.Param("id"))
	if found == nil || found.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"order":    found,
			"progress": found.Status.Progress(),
		},
	})
}

// UpdateOrderStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("unknown order status %q", req.Status),
		})
		return
	}

	orderID := c.Param("id")
	if h.orderService.GetOrderByID(orderID) == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)

	updated := h.orderService.GetOrderByID(orderID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"data": gin.H{
			"order":    updated,
			"progress": updated.Status.Progress(),
		},
	})
}

// GetReceipt handles GET /orders/:id/receipt
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	found := h.orderService.GetOrderByID(c.Param("id"))
	if found == nil || found.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	receipt, err := h.pdfService.GenerateReceipt(found)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", found.ID))
	c.Data(http.StatusOK, "application/pdf", receipt.Bytes())
}
