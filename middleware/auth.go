package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zaylux/zaylux-store-api/utils"
)

// RequireAdmin is a middleware that validates the admin bearer token on
// /admin routes. On success the admin's id and username are stored in the
// Gin context.
func RequireAdmin(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing or malformed authorization header",
				},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseAdminToken(jwtSecret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_username", claims.Username)
		c.Next()
	}
}

// GetAdminID extracts the authenticated admin's id from the Gin context
func GetAdminID(c *gin.Context) (string, bool) {
	id, ok := c.Get("admin_id")
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
