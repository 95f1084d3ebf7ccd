package interfaces

import (
	"context"

	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/export"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
	"github.com/vladimiradmaev/diary-helper/internal/services"
)

// UserServiceInterface defines the contract for user and settings operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error)
	SetTimezone(ctx context.Context, userID uint, timezone string) error
	SetRemindersEnabled(ctx context.Context, userID uint, enabled bool) error
	SetReminderTime(ctx context.Context, userID uint, hour, minute int) error
}

// DiaryServiceInterface defines the contract for entry lifecycle operations
type DiaryServiceInterface interface {
	AddEntry(ctx context.Context, user *database.User, text string, rating *int) (*database.Entry, bool, error)
	TodayEntry(ctx context.Context, user *database.User) (*database.Entry, error)
	EntriesForMonth(ctx context.Context, user *database.User, year, month, page int) (*repository.PagedEntries, error)
	EntriesForYear(ctx context.Context, user *database.User, year int) ([]database.Entry, error)
	Export(ctx context.Context, user *database.User, format export.Format, year int) (content, filename string, err error)
}

// StatsServiceInterface defines the contract for statistics operations
type StatsServiceInterface interface {
	ForYear(ctx context.Context, user *database.User, year int) (*services.Stats, error)
}
