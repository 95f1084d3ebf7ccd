package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
	"github.com/vladimiradmaev/diary-helper/internal/services"
)

const listPreviewLength = 50

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

func ratingEmoji(rating *int) string {
	switch services.CategoryOf(rating) {
	case services.CategoryBad:
		return "😢"
	case services.CategoryAverage:
		return "😐"
	case services.CategoryGood:
		return "😊"
	default:
		return "📝"
	}
}

func relativeDateLabel(dateKey time.Time, timezone string) string {
	diff := dateutil.DaysBetween(dateutil.Today(timezone), dateKey)

	switch {
	case diff == 0:
		return "Сегодня"
	case diff == -1:
		return "Вчера"
	case diff == 1:
		return "Завтра"
	case diff > 1 && diff <= 7:
		return fmt.Sprintf("Через %d дней", diff)
	case diff < -1 && diff >= -7:
		return fmt.Sprintf("%d дней назад", -diff)
	}
	return dateutil.FormatFullDate(dateKey)
}

func formatEntryMessage(entry *database.Entry, timezone string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s", ratingEmoji(entry.Rating), relativeDateLabel(entry.EntryDate, timezone)))
	if entry.Rating != nil {
		sb.WriteString(fmt.Sprintf(" (%d/10)", *entry.Rating))
	}

	sb.WriteString("\n\n")
	sb.WriteString(entry.Text)
	sb.WriteString(fmt.Sprintf("\n\n📅 Создано: %s", dateutil.FormatDateTime(entry.CreatedAt, timezone)))

	if !entry.CreatedAt.Equal(entry.UpdatedAt) {
		sb.WriteString(fmt.Sprintf("\n✏️ Изменено: %s", dateutil.FormatDateTime(entry.UpdatedAt, timezone)))
	}

	return sb.String()
}

func formatEntriesList(page *repository.PagedEntries) string {
	if page.TotalCount == 0 {
		return "Записей за указанный период не найдено."
	}

	lines := []string{
		fmt.Sprintf("📋 Записи (%d/%d, всего: %d)", page.CurrentPage, page.TotalPages, page.TotalCount),
		"",
	}

	for _, entry := range page.Entries {
		rating := ""
		if entry.Rating != nil {
			rating = fmt.Sprintf(" (%d)", *entry.Rating)
		}

		preview := entry.Text
		if runes := []rune(preview); len(runes) > listPreviewLength {
			preview = string(runes[:listPreviewLength]) + "..."
		}

		lines = append(lines, fmt.Sprintf("%s %s%s: %s",
			ratingEmoji(entry.Rating), dateutil.FormatDayMonth(entry.EntryDate), rating, preview))
	}

	if page.HasNext || page.HasPrevious {
		lines = append(lines, "", "Используйте кнопки для навигации ⬇️")
	}

	return strings.Join(lines, "\n")
}

func formatStatsMessage(stats *services.Stats, year int) string {
	if stats.TotalEntries == 0 {
		return fmt.Sprintf("📊 Статистика за %d год\n\nЗаписей пока нет", year)
	}

	total := stats.TotalEntries
	percent := func(count int) float64 {
		return float64(count) / float64(total) * 100
	}

	lines := []string{
		fmt.Sprintf("📊 Статистика за %d год", year),
		"",
		fmt.Sprintf("📝 Всего записей: %d", total),
	}

	if stats.AverageRating != nil {
		lines = append(lines, fmt.Sprintf("⭐ Средняя оценка: %.1f", *stats.AverageRating))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("😊 Хорошие дни (7-10): %d (%.1f%%)", stats.GoodDays, percent(stats.GoodDays)),
		fmt.Sprintf("😐 Средние дни (4-6): %d (%.1f%%)", stats.AverageDays, percent(stats.AverageDays)),
		fmt.Sprintf("😢 Плохие дни (1-3): %d (%.1f%%)", stats.BadDays, percent(stats.BadDays)),
	)

	if stats.UnratedDays > 0 {
		lines = append(lines, fmt.Sprintf("📝 Без оценки: %d (%.1f%%)", stats.UnratedDays, percent(stats.UnratedDays)))
	}

	if len(stats.Monthly) > 0 {
		lines = append(lines, "", "📆 По месяцам:")
		for _, m := range stats.Monthly {
			line := fmt.Sprintf("• %s: %d", monthNames[m.Month-1], m.Entries)
			if m.AverageRating != nil {
				line += fmt.Sprintf(" (средняя %.1f)", *m.AverageRating)
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}
