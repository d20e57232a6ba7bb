package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/response"
)

// AdminMiddleware checks if user has admin role.
// Phải đứng sau AuthMiddleware trong chain.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminInterface, exists := c.Get("is_admin")
		if !exists {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: admin role required")
			c.Abort()
			return
		}

		isAdmin, ok := adminInterface.(bool)
		if !ok || !isAdmin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
