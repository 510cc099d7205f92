// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/catalog"
	"github.com/your-org/foodorder-backend/internal/domain/checkout"
	"github.com/your-org/foodorder-backend/internal/domain/order"
	"github.com/your-org/foodorder-backend/internal/domain/user"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/handlers"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/middleware"
	"github.com/your-org/foodorder-backend/internal/pkg/pdf"
)

// Services bundles the singleton domain services the handlers work against.
type Services struct {
	Catalog  *catalog.Service
	Cart     *cart.Service
	Orders   *order.Service
	Checkout *checkout.Service
	Users    *user.Service
	PDF      *pdf.Service
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(svc.Users, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/biometric", authHandler.BiometricLogin)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.DELETE("/profile", authHandler.DeleteAccount)
		}
	}
}

// SetupCatalogRoutes sets up menu browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)

	cat := rg.Group("/catalog")
	cat.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cat.GET("/offerings", catalogHandler.GetOfferings)
		cat.GET("/offerings/:id", catalogHandler.GetOffering)
		cat.GET("/categories", catalogHandler.GetCategories)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(svc.Cart, svc.Catalog)

	// Cart routes work for guests too; the cart is device-scoped.
	c := rg.Group("/cart")
	c.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		c.GET("", cartHandler.GetCart)
		c.POST("/items", cartHandler.AddToCart)
		c.PUT("/items/:id", cartHandler.UpdateCartItem)
		c.DELETE("/items/:id", cartHandler.RemoveCartItem)
		c.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout)

	co := rg.Group("/checkout")
	co.Use(middleware.AuthMiddleware(cfg))
	{
		co.GET("/summary", checkoutHandler.GetSummary)
		co.POST("", checkoutHandler.PlaceOrder)
	}
}

// SetupOrderRoutes sets up order history and lifecycle routes
func SetupOrderRoutes(rg *gin.RouterGroup, svc *Services, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(svc.Orders, svc.PDF)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)
	}
}
