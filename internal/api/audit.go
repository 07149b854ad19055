package api

import (
	"net/http" // HTTP status codes

	"estate_invest/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// GetAuditLogsHandler returns all audit records, newest first, joined with
// the acting user where one exists (admin only)
func GetAuditLogsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var logs []domain.AuditLog // Slice to hold audit records
		// Fetch records with the actor joined, most recent first
		if err := db.Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email") // Only the actor's identity fields
		}).Order("created_at desc").Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching audit logs"})
			return
		}
		c.JSON(http.StatusOK, logs) // Return the audit trail
	}
}
