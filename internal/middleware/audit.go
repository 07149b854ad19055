package middleware

import (
	"strconv" // Parse the :id route param
	"strings" // Path segment extraction

	"estate_invest/internal/domain" // AuditLog model

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// AuditLogger appends an audit record for the request before the handler
// runs. A failed write is logged and swallowed: audit durability never
// decides the outcome of the primary operation.
func AuditLogger(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := CurrentUser(c) // Zero UserID when unauthenticated

		// Resource id from the route, 0 when the route has none
		var targetID uint
		if idStr := c.Param("id"); idStr != "" {
			if v, err := strconv.Atoi(idStr); err == nil && v > 0 {
				targetID = uint(v)
			}
		}

		entry := domain.AuditLog{
			UserID:   user.UserID,           // Acting user, 0 if unauthenticated
			Action:   c.Request.Method,      // HTTP verb
			Target:   targetSegment(c),      // Resource segment from the path
			TargetID: targetID,              // Resource id if present
		}
		if err := db.Create(&entry).Error; err != nil {
			// Swallow the failure, the primary operation proceeds
			logrus.WithFields(logrus.Fields{
				"action": entry.Action,
				"target": entry.Target,
				"error":  err.Error(),
			}).Error("Failed to write audit log")
		}
		c.Next() // Proceed with the request
	}
}

// targetSegment extracts the resource name from the request path, the first
// segment after the API prefix (e.g. "createProperty" in
// /api/v1/createProperty).
func targetSegment(c *gin.Context) string {
	path := strings.TrimPrefix(c.Request.URL.Path, "/api/v1")
	path = strings.TrimPrefix(path, "/")
	if idx := strings.Index(path, "/"); idx != -1 {
		path = path[:idx]
	}
	return path
}
