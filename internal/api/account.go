package api

import (
	"net/http" // HTTP status codes
	"time"     // Log timestamps

	"estate_invest/internal/domain" // Importing domain models
	"estate_invest/internal/middleware"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// AmountRequest is the deposit/withdrawal payload
type AmountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"` // Amount, must be positive
}

// accountBalance derives a user's balance from the transaction log:
// deposits minus withdrawals minus investments. No stored balance exists.
func accountBalance(db *gorm.DB, userID uint) (float64, error) {
	type row struct {
		Type  string  // Transaction type
		Total float64 // Summed amount for the type
	}
	var rows []row
	// Sum amounts per transaction type
	err := db.Model(&domain.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}
	var balance float64
	for _, r := range rows {
		switch r.Type {
		case domain.TxDeposit:
			balance += r.Total // Deposits add
		case domain.TxWithdrawal, domain.TxInvestment:
			balance -= r.Total // Withdrawals and investments subtract
		}
	}
	return balance, nil
}

// GetAccountHandler returns the caller's derived balance and full
// transaction history, newest first
func GetAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c) // Identity from the auth gate
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		balance, err := accountBalance(db, user.UserID) // Derive the balance
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch account"})
			return
		}
		var transactions []domain.Transaction // Full history
		if err := db.Where("user_id = ?", user.UserID).Order("created_at desc").Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"balance": balance, "transactions": transactions})
	}
}

// DepositHandler records a deposit transaction for the caller
func DepositHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c) // Identity from the auth gate
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AmountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		t := domain.Transaction{
			UserID: user.UserID,      // Acting user
			Type:   domain.TxDeposit, // Transaction type
			Amount: req.Amount,       // Deposit amount
		}
		// Append the log entry
		if err := db.Create(&t).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.UserID, // User ID
				"amount":  req.Amount,  // Deposit amount
				"error":   err.Error(), // Error message
			}).Error("Deposit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Deposit failed"})
			return
		}
		// Log successful deposit
		logrus.WithFields(logrus.Fields{
			"user_id":   user.UserID,                     // User ID
			"amount":    req.Amount,                      // Deposit amount
			"type":      domain.TxDeposit,                // Transaction type
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Deposit transaction")
		c.JSON(http.StatusCreated, gin.H{"message": "Deposit successful", "transaction": t})
	}
}

// WithdrawHandler records a withdrawal after checking the derived balance.
// The check and the append are not serialized against concurrent requests;
// isolation is left to the store, matching the rest of the system.
func WithdrawHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := middleware.CurrentUser(c) // Identity from the auth gate
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AmountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		balance, err := accountBalance(db, user.UserID) // Derive current balance
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Withdrawal failed"})
			return
		}
		// Check sufficient funds
		if balance < req.Amount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
			return
		}
		t := domain.Transaction{
			UserID: user.UserID,         // Acting user
			Type:   domain.TxWithdrawal, // Transaction type
			Amount: req.Amount,          // Withdrawal amount
		}
		// Append the log entry
		if err := db.Create(&t).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.UserID, // User ID
				"amount":  req.Amount,  // Withdrawal amount
				"error":   err.Error(), // Error message
			}).Error("Withdrawal failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Withdrawal failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Withdrawal successful", "transaction": t})
	}
}
