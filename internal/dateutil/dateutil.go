package dateutil

import (
	"time"
)

// DefaultTimezone is used until a user picks their own zone.
const DefaultTimezone = "UTC"

// DateRange is an inclusive [Start, End] range over entry date keys.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ValidateTimezone reports whether name is a known IANA timezone.
func ValidateTimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

func location(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		// Timezones are validated before they are persisted; a stale or
		// corrupt value degrades to UTC instead of failing the operation.
		return time.UTC
	}
	return loc
}

// LocalClock returns the wall-clock hour and minute of t in the given timezone.
func LocalClock(t time.Time, tz string) (hour, minute int) {
	local := t.In(location(tz))
	return local.Hour(), local.Minute()
}

// LocalNow returns the current wall-clock hour and minute in the given timezone.
func LocalNow(tz string) (hour, minute int) {
	return LocalClock(time.Now(), tz)
}

// DateKey maps an instant to the canonical key of the local calendar day
// containing it: midnight UTC of that day. The same key must be derived with
// the same timezone at write and read time; changing a user's timezone does
// not re-key existing entries.
func DateKey(t time.Time, tz string) time.Time {
	y, m, d := t.In(location(tz)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the date key of the current local day in the given timezone.
func Today(tz string) time.Time {
	return DateKey(time.Now(), tz)
}

// CurrentYear returns the current calendar year in the given timezone.
func CurrentYear(tz string) int {
	return time.Now().In(location(tz)).Year()
}

// CurrentMonth returns the current calendar year and month in the given timezone.
func CurrentMonth(tz string) (year, month int) {
	now := time.Now().In(location(tz))
	return now.Year(), int(now.Month())
}

// MonthRange returns the inclusive date-key range of a calendar month.
// Date keys encode local days as UTC midnights, so ranges over them are
// plain UTC calendar math.
func MonthRange(year, month int) DateRange {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Second),
	}
}

// YearRange returns the inclusive date-key range of a calendar year.
func YearRange(year int) DateRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{
		Start: start,
		End:   start.AddDate(1, 0, 0).Add(-time.Second),
	}
}

// FormatDateKey renders a date key as yyyy-MM-dd. Keys encode the local
// calendar day as a UTC midnight, so they are never re-localized: formatting
// a key in a western zone would shift it back a day.
func FormatDateKey(key time.Time) string {
	return key.UTC().Format("2006-01-02")
}

// FormatDayMonth renders a date key as dd.MM.
func FormatDayMonth(key time.Time) string {
	return key.UTC().Format("02.01")
}

// FormatFullDate renders a date key as dd.MM.yyyy.
func FormatFullDate(key time.Time) string {
	return key.UTC().Format("02.01.2006")
}

// FormatDateTime renders t as yyyy-MM-dd HH:mm:ss in the given timezone.
func FormatDateTime(t time.Time, tz string) string {
	return t.In(location(tz)).Format("2006-01-02 15:04:05")
}

// DaysBetween returns the whole number of days from one date key to another.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
