package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	apperrors "github.com/vladimiradmaev/diary-helper/internal/errors"
	"github.com/vladimiradmaev/diary-helper/internal/export"
	"github.com/vladimiradmaev/diary-helper/internal/logger"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
)

const (
	// MaxEntryTextLength caps entry text in runes.
	MaxEntryTextLength = 4000

	minYear = 1970
	maxYear = 2100
)

// DiaryService implements the entry lifecycle over the entry store.
type DiaryService struct {
	entries *repository.EntryRepository
}

// NewDiaryService creates a new diary service
func NewDiaryService(entries *repository.EntryRepository) *DiaryService {
	return &DiaryService{entries: entries}
}

func timezoneOf(user *database.User) string {
	if user.Settings.Timezone == "" {
		return dateutil.DefaultTimezone
	}
	return user.Settings.Timezone
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return apperrors.NewValidationError("Неверный формат года. Используйте: YYYY")
	}
	return nil
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return apperrors.NewValidationError("Неверный формат месяца. Используйте: YYYY-MM")
	}
	return nil
}

// AddEntry creates or updates today's entry for the user's timezone and
// reports whether an existing entry was updated.
func (s *DiaryService) AddEntry(ctx context.Context, user *database.User, text string, rating *int) (*database.Entry, bool, error) {
	if text == "" {
		return nil, false, apperrors.NewValidationError("Текст записи не может быть пустым")
	}
	if utf8.RuneCountInString(text) > MaxEntryTextLength {
		return nil, false, apperrors.NewValidationError(
			fmt.Sprintf("Текст записи не может быть длиннее %d символов", MaxEntryTextLength))
	}
	if rating != nil && (*rating < 1 || *rating > 10) {
		return nil, false, apperrors.NewValidationError("Оценка должна быть от 1 до 10")
	}

	today := dateutil.Today(timezoneOf(user))
	entry, wasUpdate, err := s.entries.Upsert(ctx, user.ID, today, text, rating)
	if err != nil {
		return nil, false, err
	}

	if wasUpdate {
		logger.Infof("Updated entry for user %d", user.TelegramID)
	} else {
		logger.Infof("Created entry for user %d", user.TelegramID)
	}
	return entry, wasUpdate, nil
}

// TodayEntry returns today's entry in the user's timezone, or nil.
func (s *DiaryService) TodayEntry(ctx context.Context, user *database.User) (*database.Entry, error) {
	return s.entries.GetByDate(ctx, user.ID, dateutil.Today(timezoneOf(user)))
}

// EntriesForMonth returns one page of a month's entries, newest first.
func (s *DiaryService) EntriesForMonth(ctx context.Context, user *database.User, year, month, page int) (*repository.PagedEntries, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	return s.entries.ListByRange(ctx, user.ID, dateutil.MonthRange(year, month), page, repository.DefaultPageSize)
}

// EntriesForYear returns all of a year's entries, newest first.
func (s *DiaryService) EntriesForYear(ctx context.Context, user *database.User, year int) ([]database.Entry, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	return s.entries.ListAllInRange(ctx, user.ID, dateutil.YearRange(year))
}

// Export serializes a year's entries and derives the attachment file name.
func (s *DiaryService) Export(ctx context.Context, user *database.User, format export.Format, year int) (content, filename string, err error) {
	entries, err := s.EntriesForYear(ctx, user, year)
	if err != nil {
		return "", "", err
	}
	if len(entries) == 0 {
		return "", "", apperrors.New(apperrors.ErrorTypeNotFound, "NO_ENTRIES",
			fmt.Sprintf("Записей за %d год не найдено", year))
	}

	tz := timezoneOf(user)
	switch format {
	case export.FormatCSV:
		content, err = export.CSV(entries, tz)
	case export.FormatJSON:
		content, err = export.JSON(entries, tz)
	default:
		return "", "", apperrors.NewValidationError("Неверный формат. Используйте: csv или json")
	}
	if err != nil {
		return "", "", err
	}

	logger.Infof("Exported %d entries for user %d in %s format", len(entries), user.TelegramID, format)
	return content, export.FileName(format, year, time.Now()), nil
}
