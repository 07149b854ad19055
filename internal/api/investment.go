package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Percentage formatting
	"time"     // Log timestamps

	"estate_invest/internal/domain" // Importing domain models
	"estate_invest/internal/middleware"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateInvestmentRequest is the investment creation payload
type CreateInvestmentRequest struct {
	PropertyID uint    `json:"propertyId" binding:"required"`  // Target property
	Amount     float64 `json:"amount" binding:"required,gt=0"` // Invested amount, must be positive
}

// UpdateInvestmentRequest is the admin correction payload
type UpdateInvestmentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"` // Corrected amount, must be positive
}

// InvestmentView is one row of the caller's investment list, joined with the
// property so the client can display the ownership share.
type InvestmentView struct {
	InvestmentID        uint      `json:"investmentId"`        // Investment ID
	PropertyID          uint      `json:"propertyId"`          // Target property
	PropertyName        string    `json:"propertyName"`        // Property name
	Amount              float64   `json:"amount"`              // Invested amount
	TargetInvestment    float64   `json:"targetInvestment"`    // Property funding target
	OwnershipPercentage string    `json:"ownershipPercentage"` // amount/target*100, two decimals
	CreatedAt           time.Time `json:"createdAt"`           // Creation time
}

// CreateInvestmentHandler records an investment for the authenticated user.
// The investment row and its side-effect transaction record are written
// atomically. Nothing reserves remaining capacity: two concurrent
// investments into the same property both succeed, and the target can be
// over-subscribed.
func CreateInvestmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c) // Identity from the auth gate
		if !exists {
			// Auth gate did not run
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateInvestmentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Missing property or non-positive amount
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Ensure the property exists
		var property domain.Property
		if err := db.First(&property, req.PropertyID).Error; err != nil {
			// If property not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		investment := domain.Investment{
			UserID:     user.UserID,    // Owning user
			PropertyID: property.ID,    // Target property
			Amount:     req.Amount,     // Invested amount
		}
		// Atomic create: investment row plus its transaction record
		err := db.Transaction(func(tx *gorm.DB) error {
			// Save the investment
			if err := tx.Create(&investment).Error; err != nil {
				return err // Return error to rollback
			}
			// Log the transaction for this investment
			t := domain.Transaction{
				UserID: user.UserID,         // Acting user
				Type:   domain.TxInvestment, // Transaction type
				Amount: req.Amount,          // Invested amount
			}
			// Save transaction
			if err := tx.Create(&t).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":     user.UserID, // Investing user
				"property_id": property.ID, // Target property
				"amount":      req.Amount,  // Invested amount
				"error":       err.Error(), // Error message
			}).Error("Investment failed") // Log investment failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating investment"})
			return
		}
		// Log successful investment
		logrus.WithFields(logrus.Fields{
			"user_id":     user.UserID,                     // Investing user
			"property_id": property.ID,                     // Target property
			"amount":      req.Amount,                      // Invested amount
			"type":        domain.TxInvestment,             // Transaction type
			"timestamp":   time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Investment transaction")
		c.JSON(http.StatusCreated, gin.H{"message": "Investment created successfully", "investment": investment})
	}
}

// formatPercentage renders a percentage with two decimal places
func formatPercentage(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// GetUserInvestmentsHandler returns the caller's investments joined with
// their properties, each carrying the derived ownership percentage.
func GetUserInvestmentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c) // Identity from the auth gate
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var investments []domain.Investment // Slice to hold investments
		// Fetch the caller's investments with property details
		if err := db.Preload("Property").Where("user_id = ?", user.UserID).Find(&investments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching investments"})
			return
		}
		// Map to the joined view with the derived ownership share
		views := make([]InvestmentView, 0, len(investments))
		for _, inv := range investments {
			view := InvestmentView{
				InvestmentID: inv.ID,         // Investment ID
				PropertyID:   inv.PropertyID, // Target property
				Amount:       inv.Amount,     // Invested amount
				CreatedAt:    inv.CreatedAt,  // Creation time
			}
			// Property may be gone if an admin deleted the listing
			if inv.Property != nil {
				view.PropertyName = inv.Property.Name
				view.TargetInvestment = inv.Property.TargetInvestment
			}
			view.OwnershipPercentage = formatPercentage(inv.OwnershipPercentage(view.TargetInvestment))
			views = append(views, view)
		}
		c.JSON(http.StatusOK, views) // Return the investment list
	}
}

// GetAllInvestmentsHandler returns every investment joined with its user and
// property (admin only)
func GetAllInvestmentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var investments []domain.Investment // Slice to hold investments
		// Fetch all investments with user and property details
		if err := db.Preload("User").Preload("Property").Find(&investments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching investments"})
			return
		}
		c.JSON(http.StatusOK, investments) // Return all investments
	}
}

// UpdateInvestmentHandler corrects an investment amount (admin only)
func UpdateInvestmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateInvestmentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Non-positive or missing amount
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var investment domain.Investment // Find the existing investment
		if err := db.First(&investment, c.Param("id")).Error; err != nil {
			// If investment not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
			return
		}
		investment.Amount = req.Amount // Apply the correction
		if err := db.Save(&investment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating investment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Investment updated successfully", "investment": investment})
	}
}

// DeleteInvestmentHandler removes an investment (admin only)
func DeleteInvestmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var investment domain.Investment // Check if the investment exists
		if err := db.First(&investment, c.Param("id")).Error; err != nil {
			// If investment not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
			return
		}
		// Delete the investment row
		if err := db.Delete(&investment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting investment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
	}
}
