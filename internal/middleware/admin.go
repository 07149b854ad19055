package middleware

import (
	"net/http" // HTTP status codes

	"estate_invest/internal/domain" // Role constants

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnly requires the identity installed by JWTAuth to hold the admin
// role. The role comes from the verified token claims, so no database
// round trip is needed per request.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := CurrentUser(c) // Get identity from context
		if !exists {
			// JWTAuth did not run or rejected the request
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check if user role is admin
		if user.Role != domain.RoleAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
