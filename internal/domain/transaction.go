package domain

import "time"

// Transaction types
const (
	TxDeposit    = "Deposit"    // Funds added to the account
	TxWithdrawal = "Withdrawal" // Funds taken out of the account
	TxInvestment = "Investment" // Side effect of creating an investment
)

// Transaction Model
//
// An append-only log entry, not a mutable balance ledger: the account
// balance is derived by summing rows, never stored.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID    uint      `gorm:"not null;index" json:"userId"`              // Acting user
	Type      string    `gorm:"not null" json:"type"`                      // Deposit, Withdrawal or Investment
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"` // Transaction amount
	CreatedAt time.Time `json:"createdAt"`                                 // Timestamp of creation
}
