package config

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabaseClient opens PostgreSQL for postgres:// DSNs and SQLite for
// anything else, which is treated as a file path.
func NewDatabaseClient(dsn string) (*gorm.DB, error) {
	return gorm.Open(Dialector(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func Dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") {
		dsn = "postgresql://" + strings.TrimPrefix(dsn, "postgres://")
	}
	if strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}
