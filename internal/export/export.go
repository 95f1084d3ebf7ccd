package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	apperrors "github.com/vladimiradmaev/diary-helper/internal/errors"
)

// Format is a supported export format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

type jsonRecord struct {
	Date      string `json:"date"`
	Text      string `json:"text"`
	Rating    *int   `json:"rating"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CSV serializes entries in their given order: entry date (yyyy-MM-dd),
// text, rating (empty when unrated) and local creation time. Quote escaping
// is the writer's concern; callers pass raw text.
func CSV(entries []database.Entry, timezone string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Дата", "Текст", "Оценка", "Создано"}); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	for _, entry := range entries {
		rating := ""
		if entry.Rating != nil {
			rating = strconv.Itoa(*entry.Rating)
		}
		row := []string{
			dateutil.FormatDateKey(entry.EntryDate),
			entry.Text,
			rating,
			dateutil.FormatDateTime(entry.CreatedAt, timezone),
		}
		if err := w.Write(row); err != nil {
			return "", apperrors.NewInternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return buf.String(), nil
}

// JSON serializes entries to an indented array with timestamps localized to
// the given timezone. Rating is null for unrated entries.
func JSON(entries []database.Entry, timezone string) (string, error) {
	records := make([]jsonRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, jsonRecord{
			Date:      dateutil.FormatDateKey(entry.EntryDate),
			Text:      entry.Text,
			Rating:    entry.Rating,
			CreatedAt: dateutil.FormatDateTime(entry.CreatedAt, timezone),
			UpdatedAt: dateutil.FormatDateTime(entry.UpdatedAt, timezone),
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return string(data), nil
}

// FileName derives diary_export[_<year>]_<YYYY-MM-DD>.<ext> from the export
// run time. A zero year omits the year suffix.
func FileName(format Format, year int, exportedAt time.Time) string {
	yearSuffix := ""
	if year > 0 {
		yearSuffix = fmt.Sprintf("_%d", year)
	}
	return fmt.Sprintf("diary_export%s_%s.%s", yearSuffix, exportedAt.UTC().Format("2006-01-02"), format)
}
