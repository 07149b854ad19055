package domain

import "time"

// Property Model
type Property struct {
	ID               uint         `gorm:"primaryKey" json:"id"`                          // Primary key
	Name             string       `gorm:"unique;not null" json:"name"`                   // Unique listing name
	Description      string       `json:"description"`                                   // Listing description
	Location         string       `json:"location"`                                      // Physical location
	TargetInvestment float64      `gorm:"type:decimal(15,2);not null" json:"targetInvestment"` // Funding target, must be > 0
	CurrentValue     float64      `gorm:"type:decimal(15,2);default:0" json:"currentValue"`    // Appraised value, 0 when unset
	CreatedAt        time.Time    `json:"createdAt"`                                     // Listing time
	Investments      []Investment `json:"investments,omitempty"`                         // Investments placed against this property
}
