package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
	"github.com/vladimiradmaev/diary-helper/internal/services"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

func TestRatingEmoji(t *testing.T) {
	assert.Equal(t, "😢", ratingEmoji(intPtr(2)))
	assert.Equal(t, "😐", ratingEmoji(intPtr(5)))
	assert.Equal(t, "😊", ratingEmoji(intPtr(9)))
	assert.Equal(t, "📝", ratingEmoji(nil))
}

func TestRelativeDateLabel(t *testing.T) {
	today := dateutil.Today("UTC")

	tests := []struct {
		name string
		key  time.Time
		want string
	}{
		{"today", today, "Сегодня"},
		{"yesterday", today.AddDate(0, 0, -1), "Вчера"},
		{"tomorrow", today.AddDate(0, 0, 1), "Завтра"},
		{"three days ago", today.AddDate(0, 0, -3), "3 дней назад"},
		{"in five days", today.AddDate(0, 0, 5), "Через 5 дней"},
		{"distant past", today.AddDate(0, 0, -30), dateutil.FormatFullDate(today.AddDate(0, 0, -30))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeDateLabel(tt.key, "UTC"))
		})
	}
}

func TestFormatEntryMessage(t *testing.T) {
	createdAt := time.Date(2024, 6, 15, 20, 30, 0, 0, time.UTC)
	entry := &database.Entry{
		Model:     gorm.Model{CreatedAt: createdAt, UpdatedAt: createdAt},
		EntryDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Text:      "отличный день",
		Rating:    intPtr(8),
	}

	msg := formatEntryMessage(entry, "UTC")

	assert.Contains(t, msg, "😊")
	assert.Contains(t, msg, "(8/10)")
	assert.Contains(t, msg, "отличный день")
	assert.Contains(t, msg, "📅 Создано: 2024-06-15 20:30:00")
	assert.NotContains(t, msg, "✏️ Изменено", "unedited entry shows no edit timestamp")
}

func TestFormatEntryMessage_ShowsEditTime(t *testing.T) {
	createdAt := time.Date(2024, 6, 15, 20, 30, 0, 0, time.UTC)
	entry := &database.Entry{
		Model:     gorm.Model{CreatedAt: createdAt, UpdatedAt: createdAt.Add(time.Hour)},
		EntryDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Text:      "поправил запись",
	}

	msg := formatEntryMessage(entry, "UTC")
	assert.Contains(t, msg, "✏️ Изменено: 2024-06-15 21:30:00")
}

func TestFormatEntriesList(t *testing.T) {
	page := &repository.PagedEntries{
		TotalCount:  25,
		CurrentPage: 2,
		TotalPages:  3,
		HasNext:     true,
		HasPrevious: true,
		Entries: []database.Entry{
			{
				EntryDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
				Text:      strings.Repeat("д", 80),
				Rating:    intPtr(7),
			},
			{
				EntryDate: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
				Text:      "короткая запись",
			},
		},
	}

	msg := formatEntriesList(page)

	assert.Contains(t, msg, "📋 Записи (2/3, всего: 25)")
	assert.Contains(t, msg, "(7)")
	assert.Contains(t, msg, strings.Repeat("д", listPreviewLength)+"...", "long text is truncated to a preview")
	assert.Contains(t, msg, "короткая запись")
	assert.Contains(t, msg, "Используйте кнопки для навигации")
}

func TestFormatEntriesList_Empty(t *testing.T) {
	msg := formatEntriesList(&repository.PagedEntries{})
	assert.Equal(t, "Записей за указанный период не найдено.", msg)
}

func TestFormatStatsMessage(t *testing.T) {
	avg := 6.5
	monthlyAvg := 7.0
	stats := &services.Stats{
		TotalEntries:  10,
		AverageRating: &avg,
		GoodDays:      4,
		AverageDays:   3,
		BadDays:       2,
		UnratedDays:   1,
		Monthly: []services.MonthlyStats{
			{Month: 6, Entries: 10, AverageRating: &monthlyAvg},
		},
	}

	msg := formatStatsMessage(stats, 2024)

	assert.Contains(t, msg, "📊 Статистика за 2024 год")
	assert.Contains(t, msg, "📝 Всего записей: 10")
	assert.Contains(t, msg, "⭐ Средняя оценка: 6.5")
	assert.Contains(t, msg, "😊 Хорошие дни (7-10): 4 (40.0%)")
	assert.Contains(t, msg, "😐 Средние дни (4-6): 3 (30.0%)")
	assert.Contains(t, msg, "😢 Плохие дни (1-3): 2 (20.0%)")
	assert.Contains(t, msg, "📝 Без оценки: 1 (10.0%)")
	assert.Contains(t, msg, "• Июнь: 10 (средняя 7.0)")
}

func TestFormatStatsMessage_NoEntries(t *testing.T) {
	msg := formatStatsMessage(&services.Stats{}, 2024)
	require.Contains(t, msg, "Записей пока нет")
	assert.NotContains(t, msg, "%")
}

func TestFormatStatsMessage_AllUnratedOmitsAverage(t *testing.T) {
	stats := &services.Stats{TotalEntries: 3, UnratedDays: 3}

	msg := formatStatsMessage(stats, 2024)
	assert.NotContains(t, msg, "Средняя оценка")
	assert.Contains(t, msg, "📝 Без оценки: 3 (100.0%)")
}
