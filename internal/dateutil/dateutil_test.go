package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     bool
	}{
		{"utc", "UTC", true},
		{"europe", "Europe/Warsaw", true},
		{"america", "America/New_York", true},
		{"asia", "Asia/Tokyo", true},
		{"unknown zone", "Mars/Olympus", false},
		{"garbage", "not a timezone", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateTimezone(tt.timezone))
		})
	}
}

func TestDateKey_IsStable(t *testing.T) {
	instant := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	first := DateKey(instant, "Europe/Warsaw")
	second := DateKey(instant, "Europe/Warsaw")

	assert.True(t, first.Equal(second))
	assert.Equal(t, time.UTC, first.Location())
	assert.Equal(t, "2024-06-15", FormatDateKey(first))
}

func TestDateKey_SameLocalDaySameKey(t *testing.T) {
	// 2024-03-10 is the US spring-forward day: EST (-5) before 02:00,
	// EDT (-4) after. Both instants fall on the same local calendar day.
	early := time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)  // 01:30 EST
	late := time.Date(2024, 3, 11, 3, 30, 0, 0, time.UTC)   // 23:30 EDT on 03-10

	earlyKey := DateKey(early, "America/New_York")
	lateKey := DateKey(late, "America/New_York")

	assert.True(t, earlyKey.Equal(lateKey))
	assert.Equal(t, "2024-03-10", FormatDateKey(lateKey))
}

func TestDateKey_LocalMidnightStartsNewDay(t *testing.T) {
	// 23:30 local on the DST-transition day, then 35 minutes later: the
	// second instant is past local midnight and must key to the next day.
	beforeMidnight := time.Date(2024, 3, 11, 3, 30, 0, 0, time.UTC) // 23:30 local 03-10
	afterMidnight := time.Date(2024, 3, 11, 4, 5, 0, 0, time.UTC)   // 00:05 local 03-11

	firstKey := DateKey(beforeMidnight, "America/New_York")
	secondKey := DateKey(afterMidnight, "America/New_York")

	assert.Equal(t, "2024-03-10", FormatDateKey(firstKey))
	assert.Equal(t, "2024-03-11", FormatDateKey(secondKey))
	assert.False(t, firstKey.Equal(secondKey))
}

func TestDateKey_DifferentZonesDifferentDays(t *testing.T) {
	// 23:30 UTC is already the next day in Tokyo.
	instant := time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-15", FormatDateKey(DateKey(instant, "UTC")))
	assert.Equal(t, "2024-06-16", FormatDateKey(DateKey(instant, "Asia/Tokyo")))
}

func TestLocalClock_AcrossDSTTransition(t *testing.T) {
	// Warsaw jumps from CET (+1) to CEST (+2) at 01:00 UTC on 2024-03-31.
	before := time.Date(2024, 3, 31, 0, 30, 0, 0, time.UTC)
	after := time.Date(2024, 3, 31, 1, 30, 0, 0, time.UTC)

	hour, minute := LocalClock(before, "Europe/Warsaw")
	assert.Equal(t, 1, hour)
	assert.Equal(t, 30, minute)

	hour, minute = LocalClock(after, "Europe/Warsaw")
	assert.Equal(t, 3, hour)
	assert.Equal(t, 30, minute)
}

func TestLocalClock_UnknownZoneFallsBackToUTC(t *testing.T) {
	instant := time.Date(2024, 6, 15, 12, 45, 0, 0, time.UTC)

	hour, minute := LocalClock(instant, "Mars/Olympus")
	assert.Equal(t, 12, hour)
	assert.Equal(t, 45, minute)
}

func TestMonthRange(t *testing.T) {
	rng := MonthRange(2024, 2)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	// 2024 is a leap year.
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), rng.End)

	firstKey := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	lastKey := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	outsideKey := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, firstKey.Before(rng.Start))
	assert.False(t, lastKey.After(rng.End))
	assert.True(t, outsideKey.After(rng.End))
}

func TestYearRange(t *testing.T) {
	rng := YearRange(2023)

	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), rng.End)
}

func TestFormatDateTime_Localizes(t *testing.T) {
	instant := time.Date(2024, 6, 15, 22, 30, 0, 0, time.UTC)

	// CEST is UTC+2 in June.
	assert.Equal(t, "2024-06-16 00:30:00", FormatDateTime(instant, "Europe/Warsaw"))
	assert.Equal(t, "2024-06-15 22:30:00", FormatDateTime(instant, "UTC"))
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	require.Equal(t, 0, DaysBetween(today, today))
	assert.Equal(t, 1, DaysBetween(today, today.AddDate(0, 0, 1)))
	assert.Equal(t, -3, DaysBetween(today, today.AddDate(0, 0, -3)))
}
