package domain

import "time"

// AuditLog Model
//
// Append-only record of state-changing requests. Written as a side effect by
// the audit middleware, never read by business logic, only by the admin view.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`              // Primary key
	UserID    uint      `gorm:"index" json:"userId"`               // Acting user, 0 if unauthenticated
	Action    string    `gorm:"not null" json:"action"`            // HTTP verb
	Target    string    `gorm:"not null" json:"target"`            // Resource segment from the route
	TargetID  uint      `json:"targetId"`                          // Resource id, 0 if the route has none
	CreatedAt time.Time `json:"createdAt"`                         // Timestamp of the action
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"` // Joined actor for the admin view
}
