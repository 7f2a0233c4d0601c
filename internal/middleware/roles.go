package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

// RequireRole gates a route to the given roles. The role string from the
// context goes through ParseRole, so anything outside the closed enum fails
// closed instead of silently matching nothing.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetString("role")
		role, err := models.ParseRole(raw)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "unrecognized role"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}

// RequireAdmin restricts a route to admin accounts.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// RequireShopkeeper restricts a route to shopkeeper accounts.
func RequireShopkeeper() gin.HandlerFunc {
	return RequireRole(models.RoleShopkeeper)
}
