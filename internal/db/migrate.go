package db

import (
	"estate_invest/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema.
// Foreign key constraints are disabled: investments and audit logs keep
// referential links to users and properties but never cascade with them.
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Property{},
		&domain.Investment{},
		&domain.Transaction{},
		&domain.AuditLog{},
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
