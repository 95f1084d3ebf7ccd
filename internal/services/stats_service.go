package services

import (
	"context"

	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
)

// Rating categories
const (
	CategoryBad     = "bad"     // 1-3
	CategoryAverage = "average" // 4-6
	CategoryGood    = "good"    // 7-10
	CategoryUnrated = "unrated"
)

// CategoryOf buckets a rating into bad/average/good/unrated.
func CategoryOf(rating *int) string {
	switch {
	case rating == nil:
		return CategoryUnrated
	case *rating <= 3:
		return CategoryBad
	case *rating <= 6:
		return CategoryAverage
	default:
		return CategoryGood
	}
}

// MonthlyStats is the per-month slice of a year's statistics.
type MonthlyStats struct {
	Month         int
	Entries       int
	AverageRating *float64
}

// Stats aggregates one user's entries for a period. AverageRating is nil
// when no entry carries a rating.
type Stats struct {
	TotalEntries  int
	AverageRating *float64
	GoodDays      int
	AverageDays   int
	BadDays       int
	UnratedDays   int
	Monthly       []MonthlyStats
}

// ComputeStats aggregates entries in a single pass. The monthly breakdown is
// grouped in memory from the same sequence; months without entries are
// omitted.
func ComputeStats(entries []database.Entry) Stats {
	stats := Stats{TotalEntries: len(entries)}

	ratingSum := 0
	ratedCount := 0
	monthSums := make(map[int]int)
	monthRated := make(map[int]int)
	monthEntries := make(map[int]int)

	for _, entry := range entries {
		month := int(entry.EntryDate.UTC().Month())
		monthEntries[month]++

		switch CategoryOf(entry.Rating) {
		case CategoryBad:
			stats.BadDays++
		case CategoryAverage:
			stats.AverageDays++
		case CategoryGood:
			stats.GoodDays++
		default:
			stats.UnratedDays++
		}

		if entry.Rating != nil {
			ratingSum += *entry.Rating
			ratedCount++
			monthSums[month] += *entry.Rating
			monthRated[month]++
		}
	}

	if ratedCount > 0 {
		avg := float64(ratingSum) / float64(ratedCount)
		stats.AverageRating = &avg
	}

	for month := 1; month <= 12; month++ {
		count := monthEntries[month]
		if count == 0 {
			continue
		}
		monthly := MonthlyStats{Month: month, Entries: count}
		if rated := monthRated[month]; rated > 0 {
			avg := float64(monthSums[month]) / float64(rated)
			monthly.AverageRating = &avg
		}
		stats.Monthly = append(stats.Monthly, monthly)
	}

	return stats
}

// StatsService computes yearly statistics over the entry store.
type StatsService struct {
	entries *repository.EntryRepository
}

// NewStatsService creates a new stats service
func NewStatsService(entries *repository.EntryRepository) *StatsService {
	return &StatsService{entries: entries}
}

// ForYear aggregates a user's entries for one calendar year.
func (s *StatsService) ForYear(ctx context.Context, user *database.User, year int) (*Stats, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListAllInRange(ctx, user.ID, dateutil.YearRange(year))
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(entries)
	return &stats, nil
}
