package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	apperrors "github.com/vladimiradmaev/diary-helper/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultPageSize = 10

// PagedEntries is one page of a date-descending entry listing.
type PagedEntries struct {
	Entries     []database.Entry
	TotalCount  int64
	CurrentPage int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// ReminderCandidate is a user whose reminders are enabled, joined with the
// settings the scheduler needs to evaluate them.
type ReminderCandidate struct {
	UserID         uint
	TelegramID     int64
	Timezone       string
	ReminderHour   int
	ReminderMinute int
}

// EntryRepository owns the one-entry-per-user-per-day invariant.
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Upsert atomically creates or updates the entry for (userID, dateKey) and
// reports whether a prior row existed. Uniqueness is enforced by the write
// itself (INSERT ... ON CONFLICT on the composite index); the preceding read
// only drives created-vs-updated messaging.
func (r *EntryRepository) Upsert(ctx context.Context, userID uint, dateKey time.Time, text string, rating *int) (*database.Entry, bool, error) {
	var existing database.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, dateKey).
		First(&existing).Error
	wasUpdate := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.NewDatabaseError(err)
	}

	entry := database.Entry{
		UserID:    userID,
		EntryDate: dateKey,
		Text:      text,
		Rating:    rating,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"text":       text,
			"rating":     rating,
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error; err != nil {
		return nil, false, apperrors.NewDatabaseError(err)
	}

	// Re-read for authoritative timestamps when the insert hit the conflict path.
	var saved database.Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, dateKey).
		First(&saved).Error; err != nil {
		return nil, false, apperrors.NewDatabaseError(err)
	}

	return &saved, wasUpdate, nil
}

// GetByDate returns the entry for (userID, dateKey), or nil when none exists.
func (r *EntryRepository) GetByDate(ctx context.Context, userID uint, dateKey time.Time) (*database.Entry, error) {
	var entry database.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, dateKey).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &entry, nil
}

// HasEntryForDate reports whether an entry exists for (userID, dateKey).
func (r *EntryRepository) HasEntryForDate(ctx context.Context, userID uint, dateKey time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&database.Entry{}).
		Where("user_id = ? AND entry_date = ?", userID, dateKey).
		Count(&count).Error; err != nil {
		return false, apperrors.NewDatabaseError(err)
	}
	return count > 0, nil
}

// ListByRange returns one page of a user's entries within the range, newest
// first. A page outside [1, totalPages] yields an empty page, not an error.
func (r *EntryRepository) ListByRange(ctx context.Context, userID uint, rng dateutil.DateRange, page, pageSize int) (*PagedEntries, error) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	scope := r.db.WithContext(ctx).
		Model(&database.Entry{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, rng.Start, rng.End)

	var totalCount int64
	if err := scope.Count(&totalCount).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))

	result := &PagedEntries{
		TotalCount:  totalCount,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1 && totalPages > 0,
	}

	if page < 1 || page > totalPages {
		return result, nil
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, rng.Start, rng.End).
		Order("entry_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result.Entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return result, nil
}

// ListAllInRange returns all of a user's entries within the range, newest first.
func (r *EntryRepository) ListAllInRange(ctx context.Context, userID uint, rng dateutil.DateRange) ([]database.Entry, error) {
	var entries []database.Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, rng.Start, rng.End).
		Order("entry_date DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return entries, nil
}

// ReminderCandidates returns every user with reminders enabled. "Has today's
// entry" is timezone-dependent per user, so the scheduler refines each
// candidate at its own reminder minute instead of filtering here.
func (r *EntryRepository) ReminderCandidates(ctx context.Context) ([]ReminderCandidate, error) {
	var candidates []ReminderCandidate
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.telegram_id, settings.timezone, settings.reminder_hour, settings.reminder_minute").
		Joins("JOIN settings ON settings.user_id = users.id").
		Where("settings.reminders_enabled = ?", true).
		Where("users.deleted_at IS NULL AND settings.deleted_at IS NULL").
		Scan(&candidates).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return candidates, nil
}
