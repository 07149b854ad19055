package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"estate_invest/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// CookieName is the session cookie carrying the signed token
const CookieName = "token"

// Context key under which the authenticated identity is stored
const authUserKey = "authUser"

// AuthUser is the authenticated identity installed in the request context by
// JWTAuth. Handlers read it through CurrentUser instead of loosely typed
// context values.
type AuthUser struct {
	UserID uint   // Authenticated user's ID
	Role   string // Role claim from the verified token
}

// CurrentUser returns the identity installed by JWTAuth, if any
func CurrentUser(c *gin.Context) (AuthUser, bool) {
	v, exists := c.Get(authUserKey)
	if !exists {
		return AuthUser{}, false // No authenticated identity on this request
	}
	user, ok := v.(AuthUser)
	return user, ok
}

// JWTAuth validates the session token and installs the acting identity.
// The token is read from the session cookie; an Authorization bearer header
// is accepted as a fallback for non-browser clients.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(CookieName) // Read the session cookie
		if err != nil || tokenStr == "" {
			// Fall back to the Authorization header
			authHeader := c.GetHeader("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				// No token at all: unauthenticated
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			// Token present but invalid, expired or tampered
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}
		// Install the typed identity for downstream handlers
		c.Set(authUserKey, AuthUser{UserID: claims.UserID, Role: claims.Role})
		c.Next() // Proceed to the next handler
	}
}
