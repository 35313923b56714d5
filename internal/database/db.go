package database

import (
	"errors"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Edustart-Tech/App-Release-Manager/internal/models"
)

// Open connects to the record store. A postgres:// DSN selects the
// Postgres driver; anything else is treated as a SQLite file path.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty DSN")
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(60 * time.Minute)

	return db, nil
}

// Migrate creates the releases table and seeds demo rows when the
// table is empty.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Release{}); err != nil {
		return err
	}
	return seedReleases(db)
}

func seedReleases(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Release{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := []models.Release{
		{
			AppName: "classprime", Target: "darwin", Arch: "aarch64", Version: "1.0.1",
			URL:       "https://github.com/user/repo/releases/download/v1.0.1/app-aarch64.app.tar.gz",
			Signature: "sig123", PubDate: "2024-01-01T12:00:00Z", Notes: "Initial release",
		},
		{
			AppName: "classprime", Target: "darwin", Arch: "x86_64", Version: "1.0.1",
			URL:       "https://github.com/user/repo/releases/download/v1.0.1/app-x64.app.tar.gz",
			Signature: "sig123", PubDate: "2024-01-01T12:00:00Z", Notes: "Initial release",
		},
		{
			AppName: "classfi", Target: "windows", Arch: "x86_64", Version: "1.0.1",
			URL:       "https://github.com/user/repo/releases/download/v1.0.1/app-setup.exe",
			Signature: "sig123", PubDate: "2024-01-01T12:00:00Z", Notes: "Initial release",
		},
	}
	return db.Create(&seed).Error
}
