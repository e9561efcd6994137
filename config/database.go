package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the store database. PostgreSQL URLs use the postgres
// driver, anything else is treated as a SQLite file path.
func ConnectDatabase(databaseURL string) error {
	if databaseURL == "" {
		databaseURL = "laundry.db"
		log.Warn().Str("database", databaseURL).Msg("DATABASE_URL not set, using default")
	}

	var err error
	DB, err = gorm.Open(Dialector(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("dialect", DB.Dialector.Name()).Msg("Database connection established successfully")
	return nil
}

// Dialector picks the gorm driver for a database URL
func Dialector(databaseURL string) gorm.Dialector {
	if IsPostgresURL(databaseURL) {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(databaseURL)
}

// IsPostgresURL reports whether the URL targets PostgreSQL
func IsPostgresURL(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") ||
		strings.HasPrefix(databaseURL, "postgresql://") ||
		strings.Contains(databaseURL, "host=")
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
