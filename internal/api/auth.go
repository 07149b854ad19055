package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Token TTL

	"estate_invest/internal/config" // Application configuration
	"estate_invest/internal/domain" // Importing domain models
	"estate_invest/internal/middleware"
	"estate_invest/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`           // Display name must be provided
	Email    string `json:"email" binding:"required,email"`    // Valid email must be provided
	Password string `json:"password" binding:"required,min=6"` // Password of at least 6 characters
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// setAuthCookie installs the session token as an httpOnly cookie. In
// production the frontend lives on another origin, so the cookie needs
// SameSite=None (with Secure) to travel on credentialed cross-site requests;
// outside production the browser's Lax default applies and same-site access
// (e.g. a dev proxy) is assumed.
func setAuthCookie(c *gin.Context, cfg *config.Config, token string) {
	if cfg.IsProd {
		c.SetSameSite(http.SameSiteNoneMode) // Cross-site XHR from the allow-listed origin
	}
	maxAge := cfg.JWTTTLHours * 3600                                             // Cookie lifetime matches token TTL
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", cfg.IsProd, true) // Secure in production, always httpOnly
}

// RegisterHandler creates a new user account and starts a session
func RegisterHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		email := strings.ToLower(req.Email) // Emails are stored lowercase
		// Check if user already exists
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			// Duplicate email, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		// Hash the password and create the user
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Name: req.Name, Email: email, PasswordHash: hash, Role: domain.RoleUser}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Unique index race: a concurrent registration won
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		// Issue a session token and set it as a cookie
		token, err := utils.GenerateJWT(user.ID, user.Role, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		setAuthCookie(c, cfg, token) // Session starts at registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Registered email
		}).Info("User registered")
		// Return the new user without the credential
		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful",
			"user":    gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(req.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		setAuthCookie(c, cfg, token) // Set the session cookie
		// Return the token in the response as well, for non-browser clients
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
	}
}

// LogoutHandler clears the session cookie
func LogoutHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.IsProd {
			c.SetSameSite(http.SameSiteNoneMode) // Match the attributes the cookie was set with
		}
		// Expire the cookie immediately
		c.SetCookie(middleware.CookieName, "", -1, "/", "", cfg.IsProd, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}
