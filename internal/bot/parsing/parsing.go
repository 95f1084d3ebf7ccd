package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/vladimiradmaev/diary-helper/internal/export"
)

// AddCommand is the typed form of "/add [rating] text".
type AddCommand struct {
	Rating *int
	Text   string
}

var (
	timeRegex  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	monthRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	yearRegex  = regexp.MustCompile(`^\d{4}$`)
)

const maxTextLength = 4000

// SanitizeText trims, strips control characters and caps the text length.
func SanitizeText(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' {
			return -1
		}
		return r
	}, strings.TrimSpace(text))

	runes := []rune(cleaned)
	if len(runes) > maxTextLength {
		runes = runes[:maxTextLength]
	}
	return string(runes)
}

// ParseAddCommand splits the /add arguments into optional rating and text.
// A leading integer in 1-10 is the rating; a rating without text is invalid.
func ParseAddCommand(input string) (*AddCommand, bool) {
	input = SanitizeText(input)
	if input == "" {
		return nil, false
	}

	parts := strings.Fields(input)
	rating, err := strconv.Atoi(parts[0])
	if err == nil && rating >= 1 && rating <= 10 {
		text := strings.TrimSpace(strings.Join(parts[1:], " "))
		if text == "" {
			return nil, false
		}
		return &AddCommand{Rating: &rating, Text: text}, true
	}

	return &AddCommand{Text: input}, true
}

// ParseReminderTime parses "H:MM" or "HH:MM" within 0-23 / 0-59.
func ParseReminderTime(input string) (hour, minute int, ok bool) {
	match := timeRegex.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(match[1])
	minute, _ = strconv.Atoi(match[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// ParseMonth parses "YYYY-MM" within 1970-2100 / 1-12.
func ParseMonth(input string) (year, month int, ok bool) {
	match := monthRegex.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return 0, 0, false
	}

	year, _ = strconv.Atoi(match[1])
	month, _ = strconv.Atoi(match[2])
	if year < 1970 || year > 2100 || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// ParseYear parses "YYYY" within 1970-2100.
func ParseYear(input string) (int, bool) {
	trimmed := strings.TrimSpace(input)
	if !yearRegex.MatchString(trimmed) {
		return 0, false
	}

	year, _ := strconv.Atoi(trimmed)
	if year < 1970 || year > 2100 {
		return 0, false
	}
	return year, true
}

// ParseExportFormat parses "csv" or "json", case-insensitively.
func ParseExportFormat(input string) (export.Format, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "csv":
		return export.FormatCSV, true
	case "json":
		return export.FormatJSON, true
	}
	return "", false
}
