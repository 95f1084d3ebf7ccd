package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vladimiradmaev/diary-helper/internal/errors"
)

func TestRegister_CreatesUserWithDefaultSettings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.Register(context.Background(), 100, "alice", "Алиса", "Иванова")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.EqualValues(t, 100, user.TelegramID)
	assert.Equal(t, "UTC", user.Settings.Timezone)
	assert.True(t, user.Settings.RemindersEnabled)
	assert.Equal(t, 21, user.Settings.ReminderHour)
	assert.Equal(t, 0, user.Settings.ReminderMinute)
}

func TestRegister_IsIdempotentAndKeepsSettings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.Register(ctx, 100, "alice", "Алиса", "")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateTimezone(ctx, first.ID, "Asia/Tokyo"))

	second, err := repo.Register(ctx, 100, "alice", "Алиса", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asia/Tokyo", second.Settings.Timezone, "re-registration must not reset settings")
}

func TestGetByTelegramID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Register(ctx, 100, "alice", "Алиса", "")
	require.NoError(t, err)

	user, err := repo.GetByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "UTC", user.Settings.Timezone, "settings come preloaded")

	_, err = repo.GetByTelegramID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSettingsUpdates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.Register(ctx, 100, "alice", "Алиса", "")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTimezone(ctx, user.ID, "Europe/Warsaw"))
	require.NoError(t, repo.UpdateRemindersEnabled(ctx, user.ID, false))
	require.NoError(t, repo.UpdateReminderTime(ctx, user.ID, 8, 45))

	got, err := repo.GetByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Warsaw", got.Settings.Timezone)
	assert.False(t, got.Settings.RemindersEnabled)
	assert.Equal(t, 8, got.Settings.ReminderHour)
	assert.Equal(t, 45, got.Settings.ReminderMinute)
}
