package domain

import "time"

// Investment Model
//
// Investments reference their user and property but do not cascade with
// them: foreign key constraints are disabled at migration time, so deleting
// either side leaves the row in place as a plain referential link.
type Investment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                        // Primary key
	UserID     uint      `gorm:"not null;index" json:"userId"`                // Owning user
	PropertyID uint      `gorm:"not null;index" json:"propertyId"`            // Target property
	Amount     float64   `gorm:"type:decimal(15,2);not null" json:"amount"`   // Invested amount, must be > 0
	CreatedAt  time.Time `json:"createdAt"`                                   // Creation time
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`     // Joined for admin views
	Property   *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"` // Joined for ownership math
}

// OwnershipPercentage is the investment's share of the property's funding
// target, as a percentage. The denominator is the fixed target, not the
// cumulative raised amount, so the value is independent of other investors.
// Derived at read time, never stored.
func (i *Investment) OwnershipPercentage(target float64) float64 {
	if target <= 0 {
		return 0
	}
	return i.Amount / target * 100
}
