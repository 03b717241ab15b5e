package db

import (
	"ecorewards/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to MySQL with error translation enabled, so duplicate-key
// violations surface as gorm.ErrDuplicatedKey for the store layer.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate creates the four collections plus their indexes: unique user
// email, unique external bin id, and the (user, created_at desc) path the
// ledger history query uses.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Bin{}, &domain.Transaction{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
