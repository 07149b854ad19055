package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"estate_invest/internal/domain" // Importing domain models
	"estate_invest/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache key for the unpaginated property list
const propertyListCacheKey = "properties:all"

// CreatePropertyRequest is the listing creation payload
type CreatePropertyRequest struct {
	Name             string  `json:"name" binding:"required"`                 // Unique listing name
	Description      string  `json:"description"`                             // Listing description
	Location         string  `json:"location"`                                // Physical location
	TargetInvestment float64 `json:"targetInvestment" binding:"required,gt=0"` // Funding target, must be positive
	CurrentValue     float64 `json:"currentValue" binding:"omitempty,gte=0"`   // Optional appraised value
}

// UpdatePropertyRequest is the listing update payload, all fields optional
type UpdatePropertyRequest struct {
	Name             *string  `json:"name"`                                  // New name
	Description      *string  `json:"description"`                           // New description
	Location         *string  `json:"location"`                              // New location
	TargetInvestment *float64 `json:"targetInvestment" binding:"omitempty,gt=0"` // New target, still positive
	CurrentValue     *float64 `json:"currentValue" binding:"omitempty,gte=0"`    // New appraised value
}

// invalidatePropertyCache drops the cached property list after a mutation
func invalidatePropertyCache(rdb *redis.Client) {
	_ = utils.DeleteCache(context.Background(), rdb, propertyListCacheKey)
}

// CreatePropertyHandler creates a new property listing (admin only)
func CreatePropertyHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePropertyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Missing name or non-positive target
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Check if property already exists
		var existing domain.Property
		if err := db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
			// Duplicate name, return conflict
			c.JSON(http.StatusConflict, gin.H{"error": "Property already exists"})
			return
		}
		property := domain.Property{
			Name:             req.Name,             // Listing name
			Description:      req.Description,      // Description
			Location:         req.Location,         // Location
			TargetInvestment: req.TargetInvestment, // Funding target
			CurrentValue:     req.CurrentValue,     // Appraised value
		}
		// Persist the new listing
		if err := db.Create(&property).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  req.Name,    // Listing name
				"error": err.Error(), // Error message
			}).Error("Failed to create property")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
			return
		}
		invalidatePropertyCache(rdb) // List changed
		c.JSON(http.StatusCreated, gin.H{"message": "Property created successfully", "property": property})
	}
}

// GetPropertiesHandler returns all property listings, unpaginated
func GetPropertiesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []domain.Property
		// Try to get cached list
		found, err := utils.GetCache(ctx, rdb, propertyListCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"properties": cached, "cached": true})
			return
		}
		var properties []domain.Property // Slice to hold listings
		if err := db.Find(&properties).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
			return
		}
		// Cache the list for future requests
		_ = utils.SetCache(ctx, rdb, propertyListCacheKey, properties, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"properties": properties, "cached": false})
	}
}

// GetPropertyByIDHandler returns a single property listing
func GetPropertyByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var property domain.Property // Fetch listing from database
		if err := db.First(&property, c.Param("id")).Error; err != nil {
			// If listing not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"property": property}) // Return the listing
	}
}

// UpdatePropertyHandler updates a property listing (admin only)
func UpdatePropertyHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePropertyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Invalid payload (e.g. non-positive target)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var property domain.Property // Find the existing listing
		if err := db.First(&property, c.Param("id")).Error; err != nil {
			// If listing not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		// Renaming must not collide with another listing
		if req.Name != nil && *req.Name != property.Name {
			var existing domain.Property
			if err := db.Where("name = ?", *req.Name).First(&existing).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Property already exists"})
				return
			}
			property.Name = *req.Name
		}
		if req.Description != nil {
			property.Description = *req.Description // Apply new description
		}
		if req.Location != nil {
			property.Location = *req.Location // Apply new location
		}
		if req.TargetInvestment != nil {
			property.TargetInvestment = *req.TargetInvestment // Apply new target
		}
		if req.CurrentValue != nil {
			property.CurrentValue = *req.CurrentValue // Apply new appraised value
		}
		// Persist the update
		if err := db.Save(&property).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
			return
		}
		invalidatePropertyCache(rdb) // List changed
		c.JSON(http.StatusOK, gin.H{"message": "Property updated successfully", "property": property})
	}
}

// DeletePropertyHandler removes a property listing (admin only). Existing
// investments keep the referential link and are not cascaded.
func DeletePropertyHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var property domain.Property // Find the existing listing
		if err := db.First(&property, c.Param("id")).Error; err != nil {
			// If listing not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		// Delete the listing row
		if err := db.Delete(&property).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
			return
		}
		invalidatePropertyCache(rdb) // List changed
		c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
	}
}
