package repository

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	apperrors "github.com/vladimiradmaev/diary-helper/internal/errors"
	"gorm.io/gorm"
)

// UserRepository handles user and settings data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Register gets or creates a user by telegram id, creating default settings
// alongside a new user. Settings are guaranteed present on the returned user.
func (r *UserRepository) Register(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error) {
	user := &database.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}

	if err := r.db.WithContext(ctx).
		FirstOrCreate(user, database.User{TelegramID: telegramID}).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	settings := &database.Settings{
		UserID:           user.ID,
		Timezone:         dateutil.DefaultTimezone,
		RemindersEnabled: true,
		ReminderHour:     21,
		ReminderMinute:   0,
	}
	if err := r.db.WithContext(ctx).
		FirstOrCreate(settings, database.Settings{UserID: user.ID}).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	user.Settings = *settings
	return user, nil
}

// GetByTelegramID gets a user with settings preloaded.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*database.User, error) {
	var user database.User
	err := r.db.WithContext(ctx).
		Preload("Settings").
		Where("telegram_id = ?", telegramID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &user, nil
}

// UpdateTimezone sets the IANA timezone for a user's settings.
func (r *UserRepository) UpdateTimezone(ctx context.Context, userID uint, timezone string) error {
	if err := r.db.WithContext(ctx).
		Model(&database.Settings{}).
		Where("user_id = ?", userID).
		Update("timezone", timezone).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// UpdateRemindersEnabled toggles daily reminders for a user.
func (r *UserRepository) UpdateRemindersEnabled(ctx context.Context, userID uint, enabled bool) error {
	if err := r.db.WithContext(ctx).
		Model(&database.Settings{}).
		Where("user_id = ?", userID).
		Update("reminders_enabled", enabled).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// UpdateReminderTime sets the local wall-clock reminder time for a user.
func (r *UserRepository) UpdateReminderTime(ctx context.Context, userID uint, hour, minute int) error {
	if err := r.db.WithContext(ctx).
		Model(&database.Settings{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"reminder_hour":   hour,
			"reminder_minute": minute,
		}).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}
