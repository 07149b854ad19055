package api

import (
	"time" // CORS preflight cache

	"estate_invest/internal/config" // Application configuration
	"estate_invest/internal/middleware"

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// SetupRouter builds the full route table. Shared between cmd/server and the
// handler tests so both exercise identical middleware chains.
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.New()                       // Gin router instance
	r.Use(gin.Logger(), gin.Recovery())  // Standard access log and panic recovery

	// Credentialed cross-origin requests from the allow-listed frontend
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true, // Session cookie travels cross-origin
		MaxAge:           12 * time.Hour,
	}))

	auth := middleware.JWTAuth(cfg.JWTSecret) // Authorization gate
	admin := middleware.AdminOnly()           // Role gate
	audit := middleware.AuditLogger(db)       // Audit recorder for mutations

	v1 := r.Group("/api/v1") // Common path prefix

	// Public auth routes
	v1.POST("/register", RegisterHandler(db, cfg)) // Registration endpoint
	v1.POST("/login", LoginHandler(db, cfg))       // Login endpoint
	v1.POST("/logout", LogoutHandler(cfg))         // Logout endpoint

	// Public property reads
	v1.GET("/getProperties", GetPropertiesHandler(db, rdb))    // All listings
	v1.GET("/getPropertyById/:id", GetPropertyByIDHandler(db)) // Single listing
	v1.GET("/getPropertyDetails/:id", PropertyDetailsHandler(db)) // Listing with ROI and history

	// User routes (authenticated)
	v1.GET("/profile", auth, ProfileHandler(db))                       // Caller's profile
	v1.PATCH("/updateUser/:id", auth, audit, UpdateUserHandler(db))    // Profile update
	v1.GET("/getUserById/:id", auth, GetUserByIDHandler(db))           // Single user
	v1.GET("/getUsers", auth, admin, GetUsersHandler(db))              // All users, admin gated
	v1.DELETE("/deleteUser/:id", auth, admin, audit, DeleteUserHandler(db)) // Remove a user
	v1.POST("/assignAdmin/:id", auth, admin, audit, AssignAdminHandler(db)) // Promote to admin

	// Property mutations (admin only, audited)
	v1.POST("/createProperty", auth, admin, audit, CreatePropertyHandler(db, rdb))
	v1.PATCH("/updateProperty/:id", auth, admin, audit, UpdatePropertyHandler(db, rdb))
	v1.DELETE("/deleteProperty/:id", auth, admin, audit, DeletePropertyHandler(db, rdb))

	// Investment routes
	v1.POST("/createInvestment", auth, audit, CreateInvestmentHandler(db))    // Place an investment
	v1.GET("/investments/user", auth, GetUserInvestmentsHandler(db))          // Caller's investments
	v1.GET("/getAllInvestments", auth, admin, GetAllInvestmentsHandler(db))   // All investments
	v1.PATCH("/updateInvestment/:id", auth, admin, audit, UpdateInvestmentHandler(db)) // Admin correction
	v1.DELETE("/deleteInvestment/:id", auth, admin, audit, DeleteInvestmentHandler(db))

	// Account ledger routes (authenticated)
	v1.GET("/account", auth, GetAccountHandler(db))               // Balance and history
	v1.POST("/account/deposit", auth, audit, DepositHandler(db))  // Deposit funds
	v1.POST("/account/withdraw", auth, audit, WithdrawHandler(db)) // Withdraw funds

	// Reporting routes
	v1.GET("/portfolio/summary", auth, PortfolioSummaryHandler(db)) // Caller's portfolio
	v1.GET("/admin/properties/performance", auth, admin, PropertyPerformanceHandler(db, rdb))
	v1.GET("/admin/auditLogs", auth, admin, GetAuditLogsHandler(db)) // Audit trail view

	return r
}
