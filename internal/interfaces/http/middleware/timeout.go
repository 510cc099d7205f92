// internal/interfaces/http/middleware/timeout.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/config"
)

// Timeout bounds every request by the configured server budget. The deadline
// rides on the request context, so storage writes started by a handler give
// up together with the response.
func Timeout(cfg *config.Config) gin.HandlerFunc {
	budget := cfg.Server.RequestTimeout

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), budget)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		finished := make(chan struct{})
		go func() {
			c.Next()
			close(finished)
		}()

		select {
		case <-finished:
		case <-ctx.Done():
			c.Abort()
			c.JSON(http.StatusRequestTimeout, gin.H{
				"error": "Request timeout",
			})
		}
	}
}
