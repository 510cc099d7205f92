// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/domain/catalog"
)

// CatalogHandler handles menu browsing endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GetOfferings handles GET /catalog/offerings
func (h *CatalogHandler) GetOfferings(c *gin.Context) {
	req := catalog.ListRequest{
		Category: c.DefaultQuery("category", "All"),
		Query:    c.Query("search"),
	}

	offerings := h.catalogService.List(req)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"offerings": offerings,
			"total":     len(offerings),
		},
	})
}

// GetOffering handles GET /catalog/offerings/:id
func (h *CatalogHandler) GetOffering(c *gin.Context) {
	offering := h.catalogService.ByID(c.Param("id"))
	if offering == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Offering not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": offering,
	})
}

// GetCategories handles GET /catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.catalogService.Categories(),
	})
}
