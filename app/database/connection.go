package database

import (
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mburu1/ReceiptReprintApplication/app/config"
	"github.com/mburu1/ReceiptReprintApplication/app/logging"
)

// Connect opens the store database. The postgres driver serves the shared
// store database; the CGO-free sqlite driver serves local and offline use.
func Connect(cfg config.DatabaseConfig, log logging.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	switch cfg.Driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to local database: %w", err)
		}
		log.Info("Connected to local database", cfg.Path)
		return db, nil
	case "postgres", "":
		dsn := buildDSN(cfg)
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Connected to database", fmt.Sprintf("host=%s dbname=%s", cfg.Host, cfg.Name))
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// buildDSN constructs the postgres connection string.
// Priority: DATABASE_URL > configured values.
func buildDSN(cfg config.DatabaseConfig) string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}
