package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartbooking/models"
)

// RequireAdmin aborts requests whose token does not carry the ADMIN role.
// Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
