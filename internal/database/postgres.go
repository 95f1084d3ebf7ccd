package database

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/vladimiradmaev/diary-helper/internal/config"
	"github.com/vladimiradmaev/diary-helper/internal/database/migrations"
	"github.com/vladimiradmaev/diary-helper/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// User is a telegram user. Created on first interaction, never deleted here.
type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
	Settings   Settings
	Entries    []Entry
}

// Settings holds per-user reminder and timezone configuration.
// Exactly one row per user, created together with the user.
type Settings struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex"`
	Timezone         string `gorm:"default:UTC"`
	RemindersEnabled bool   `gorm:"default:true"`
	ReminderHour     int    `gorm:"default:21"`
	ReminderMinute   int    `gorm:"default:0"`
}

// Entry is one diary entry. EntryDate is the date key: midnight UTC of the
// user's local calendar day. The composite unique index is what enforces
// one-entry-per-user-per-day; writers go through an atomic upsert against it.
type Entry struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_entries_user_date"`
	User      User
	EntryDate time.Time `gorm:"not null;uniqueIndex:idx_entries_user_date"`
	Text      string    `gorm:"not null"`
	Rating    *int
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get the directory of the current file
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("failed to get current file path")
	}
	migrationsDir := filepath.Join(filepath.Dir(filename), "migrations")

	if err := migrations.LoadSQLMigrations(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Auto-migrate the schema for models that don't have explicit migrations
	if err := db.AutoMigrate(&User{}, &Settings{}, &Entry{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}
