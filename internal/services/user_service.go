package services

import (
	"context"

	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	apperrors "github.com/vladimiradmaev/diary-helper/internal/errors"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
)

// UserService handles user registration and settings mutations.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// RegisterUser gets or creates the user and their default settings.
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error) {
	return s.users.Register(ctx, telegramID, username, firstName, lastName)
}

// SetTimezone validates and persists a user's IANA timezone. Existing entry
// date keys are not re-derived when the timezone changes.
func (s *UserService) SetTimezone(ctx context.Context, userID uint, timezone string) error {
	if !dateutil.ValidateTimezone(timezone) {
		return apperrors.NewValidationError("Неверный часовой пояс. Используйте IANA формат (например, Europe/Warsaw)")
	}
	return s.users.UpdateTimezone(ctx, userID, timezone)
}

// SetRemindersEnabled toggles the daily reminder for a user.
func (s *UserService) SetRemindersEnabled(ctx context.Context, userID uint, enabled bool) error {
	return s.users.UpdateRemindersEnabled(ctx, userID, enabled)
}

// SetReminderTime persists the local wall-clock reminder time.
func (s *UserService) SetReminderTime(ctx context.Context, userID uint, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return apperrors.NewValidationError("Неверный формат времени. Используйте: HH:MM (например, 21:00)")
	}
	return s.users.UpdateReminderTime(ctx, userID, hour, minute)
}
