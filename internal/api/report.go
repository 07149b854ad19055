package api

import (
	"context"  // Context for Redis operations
	"math"     // NaN/Inf guards
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"estate_invest/internal/domain" // Importing domain models
	"estate_invest/internal/middleware"
	"estate_invest/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache key for the admin performance report
const performanceCacheKey = "report:performance"

// PerformanceRow is one property's aggregate on the admin dashboard
type PerformanceRow struct {
	PropertyID          uint    `json:"propertyId"`          // Property ID
	PropertyName        string  `json:"propertyName"`        // Property name
	TotalInvestment     float64 `json:"totalInvestment"`     // Sum of investment amounts
	NumberOfInvestments int     `json:"numberOfInvestments"` // Count of investments
	AverageInvestment   float64 `json:"averageInvestment"`   // Average amount, 0 when none
}

// finiteOr returns v unless it is NaN or infinite, in which case fallback
func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// PropertyPerformanceHandler aggregates every property's investments for the
// admin dashboard. Recomputed from the ledger on each request, with a short
// cache in front.
func PropertyPerformanceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []PerformanceRow
		// Try to get cached report
		found, err := utils.GetCache(ctx, rdb, performanceCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var properties []domain.Property // All listings with their investments
		if err := db.Preload("Investments").Find(&properties).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching property performance data"})
			return
		}
		// Calculate performance metrics for each property
		rows := make([]PerformanceRow, 0, len(properties))
		for _, p := range properties {
			var total float64
			for _, inv := range p.Investments {
				total += inv.Amount // Sum invested amounts
			}
			count := len(p.Investments) // Number of investments
			var avg float64
			if count > 0 {
				avg = total / float64(count) // Average investment
			}
			rows = append(rows, PerformanceRow{
				PropertyID:          p.ID,   // Property ID
				PropertyName:        p.Name, // Property name
				TotalInvestment:     total,  // Total invested
				NumberOfInvestments: count,  // Investment count
				AverageInvestment:   avg,    // Average amount
			})
		}
		// Cache the report for future requests
		_ = utils.SetCache(ctx, rdb, performanceCacheKey, rows, 60*time.Second)
		c.JSON(http.StatusOK, rows)
	}
}

// PublicInvestmentRow is one entry of a property's public investment
// history: amount and timing only, never the investor's identity.
type PublicInvestmentRow struct {
	ID        uint      `json:"id"`        // Investment ID
	Amount    float64   `json:"amount"`    // Invested amount
	CreatedAt time.Time `json:"createdAt"` // Creation time
}

// PropertyDetailsHandler returns a property with its total invested amount,
// ROI against the funding target and investment history. The route is
// public, so the history is anonymized; investor identities are only
// visible through the admin-gated investment listing.
func PropertyDetailsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var property domain.Property // Fetch the property with related investments
		if err := db.Preload("Investments").First(&property, c.Param("id")).Error; err != nil {
			// If property not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		// Calculate total investments and anonymize the history
		var total float64
		history := make([]PublicInvestmentRow, 0, len(property.Investments))
		for _, inv := range property.Investments {
			total += inv.Amount
			history = append(history, PublicInvestmentRow{
				ID:        inv.ID,        // Investment ID
				Amount:    inv.Amount,    // Invested amount
				CreatedAt: inv.CreatedAt, // Creation time
			})
		}
		// ROI here is total invested over the funding target, not a
		// financial return; share-of-target like the ownership percentage
		var roi float64
		if property.TargetInvestment > 0 {
			roi = total / property.TargetInvestment * 100
		}
		c.JSON(http.StatusOK, gin.H{
			"property": gin.H{
				"id":               property.ID,               // Property ID
				"name":             property.Name,             // Property name
				"description":      property.Description,      // Description
				"location":         property.Location,         // Location
				"targetInvestment": property.TargetInvestment, // Funding target
				"currentValue":     property.CurrentValue,     // Appraised value
				"createdAt":        property.CreatedAt,        // Listing time
				"totalInvestments": total,                     // Total invested
				"roi":              formatPercentage(roi),     // Share of target, two decimals
				"investments":      history,                   // Anonymized investment history
			},
		})
	}
}

// PortfolioSummaryHandler aggregates the caller's investments across
// properties. Portfolio value is each property's appraised value scaled by
// the caller's share of its target; properties without an appraised value
// contribute 0. ROI is guarded against NaN and infinities.
func PortfolioSummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c) // Identity from the auth gate
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var investments []domain.Investment // Caller's investments
		if err := db.Preload("Property").Where("user_id = ?", user.UserID).Find(&investments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching investments"})
			return
		}
		var totalInvested, totalValue float64
		propertySet := make(map[uint]struct{}) // Distinct properties invested in
		for _, inv := range investments {
			totalInvested += inv.Amount
			propertySet[inv.PropertyID] = struct{}{}
			// A deleted or unappraised property contributes nothing
			if inv.Property == nil || inv.Property.CurrentValue <= 0 || inv.Property.TargetInvestment <= 0 {
				continue
			}
			share := inv.Amount / inv.Property.TargetInvestment // Caller's share of the target
			totalValue += inv.Property.CurrentValue * share     // Share of the appraised value
		}
		// Overall ROI, 0 when nothing is invested or the math degenerates
		var roi float64
		if totalInvested > 0 {
			roi = finiteOr((totalValue-totalInvested)/totalInvested*100, 0)
		}
		c.JSON(http.StatusOK, gin.H{
			"totalInvested": totalInvested,         // Sum of the caller's investments
			"propertyCount": len(propertySet),      // Distinct properties
			"currentValue":  finiteOr(totalValue, 0), // Derived portfolio value
			"roi":           formatPercentage(roi), // Two decimals
		})
	}
}
