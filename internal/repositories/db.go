package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rohits-web03/robofriends/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

var ErrNoDatabaseURL = errors.New("database url is empty")

// Dialector picks the gorm driver for a connection string. "sqlite:<path>"
// opens SQLite, anything else is handed to the postgres driver.
func Dialector(dsn string) (gorm.Dialector, error) {
	switch {
	case dsn == "":
		return nil, ErrNoDatabaseURL
	case strings.HasPrefix(dsn, sqlitePrefix):
		return sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix)), nil
	default:
		return postgres.Open(dsn), nil
	}
}

// ConnectDatabase opens the store and migrates the robots table.
func ConnectDatabase(dsn string, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer; a single connection also keeps in-memory databases alive.
		sqlDB.SetMaxOpenConns(1)
	}

	// Run migrations
	if err := db.AutoMigrate(&models.Robot{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Info("Successfully connected to database", zap.String("driver", dialector.Name()))
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
