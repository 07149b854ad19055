package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"estate_invest/internal/domain" // Importing domain models
	"estate_invest/internal/middleware"
	"estate_invest/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// UpdateUserRequest is the profile update payload, all fields optional
type UpdateUserRequest struct {
	Name     string `json:"name"`                            // New display name
	Email    string `json:"email" binding:"omitempty,email"` // New email, validated when present
	Password string `json:"password" binding:"omitempty,min=6"` // New password, rehashed when present
}

// GetUsersHandler returns all users (admin only)
func GetUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User // Slice to hold users
		if err := db.Find(&users).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users) // Return all users, hashes omitted by the model
	}
}

// GetUserByIDHandler returns a single user by id
func GetUserByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // Fetch user from database
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user) // Return the user
	}
}

// UpdateUserHandler updates a user's profile fields. Only the account owner
// or an admin may touch a given account; anyone else gets 403 no matter how
// valid the payload is.
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := middleware.CurrentUser(c) // Identity from the auth gate
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Find the existing user
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// A regular user may only update their own account
		if actor.Role != domain.RoleAdmin && actor.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot update another user's account"})
			return
		}
		// Check if the new email is already in use
		if req.Email != "" {
			email := strings.ToLower(req.Email)
			if email != user.Email {
				var existing domain.User
				if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
					// If taken, return bad request
					c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already in use"})
					return
				}
			}
			user.Email = email // Apply the new email
		}
		if req.Name != "" {
			user.Name = req.Name // Apply the new name
		}
		// Rehash when a new password is provided
		if req.Password != "" {
			hash, err := utils.HashPassword(req.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			user.PasswordHash = hash
		}
		// Persist the update
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "updatedUser": user})
	}
}

// DeleteUserHandler removes a user. Their investments keep the referential
// link and are not cascaded.
func DeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // Find the existing user
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Delete the user row
		if err := db.Delete(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// AssignAdminHandler promotes a user to the admin role (admin only)
func AssignAdminHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User // Find the existing user
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		user.Role = domain.RoleAdmin // Promote to admin
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign admin role"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // Promoted user
			"email":   user.Email, // Their email
		}).Info("Admin role assigned")
		c.JSON(http.StatusOK, gin.H{"message": "User " + user.Name + " is now an admin", "user": user})
	}
}

// ProfileHandler returns the authenticated caller's record with investments
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := middleware.CurrentUser(c) // Identity from the auth gate
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Load the caller with their investments
		if err := db.Preload("Investments").First(&user, actor.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user) // Return the profile
	}
}
