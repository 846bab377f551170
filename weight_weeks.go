package main

import (
	"math"
	"sort"
	"time"
)

// Weekly weight grouping: entries are partitioned into fixed 7-day blocks
// anchored at a start date (week 1 = days 0-6, week 2 = days 7-13, …). The
// block averages feed the check-in engine's trend input.
//
// The "previous" week is the nearest earlier block with data; empty weeks
// are skipped, not treated as zeros. Averages divide by entry count, not 7.

// weightMetrics is the full result of one grouping pass.
type weightMetrics struct {
	WeeklyAverage           float64                `json:"weekly_average"`
	PreviousWeeklyAverage   float64                `json:"previous_weekly_average"`
	WeeklyAverageDifference float64                `json:"weekly_average_difference"`
	TotalDifference         float64                `json:"total_difference"`
	CurrentWeekNum          int                    `json:"current_week_num"`
	PreviousWeekNum         int                    `json:"previous_week_num"`
	WeekGroups              map[int][]weightEntry  `json:"-"`
	FirstEntry              *weightEntry           `json:"first_entry,omitempty"`
	LastEntry               *weightEntry           `json:"last_entry,omitempty"`
	IsUsingAutoStartDate    bool                   `json:"is_using_auto_start_date"`
	EffectiveStartDate      *time.Time             `json:"effective_start_date,omitempty"`
}

// weekNumberFor returns the 1-based week number a date falls into relative to
// the start date, or 0 for dates before the start.
func weekNumberFor(entryDate, startDate time.Time) int {
	entry := localMidnight(entryDate)
	start := localMidnight(startDate)
	daysSinceStart := int(math.Floor(entry.Sub(start).Hours() / 24))
	if daysSinceStart < 0 {
		return 0
	}
	return daysSinceStart/7 + 1
}

// groupEntriesByWeek buckets entries into week numbers, dropping any entry
// before the start date.
func groupEntriesByWeek(entries []weightEntry, startDate time.Time) map[int][]weightEntry {
	groups := make(map[int][]weightEntry)
	for _, e := range entries {
		if weekNum := weekNumberFor(e.Date.Time, startDate); weekNum > 0 {
			groups[weekNum] = append(groups[weekNum], e)
		}
	}
	return groups
}

// round1 rounds to one decimal place, matching how averages are stored.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// weekAverage is the arithmetic mean of a block's entries, one decimal.
// Empty blocks average to 0.
func weekAverage(weekEntries []weightEntry) float64 {
	if len(weekEntries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range weekEntries {
		sum += e.WeightKg
	}
	return round1(sum / float64(len(weekEntries)))
}

// currentWeekNumber is the week of the most recent entry at/after the start
// date, or 0 when none qualifies.
func currentWeekNumber(sorted []weightEntry, startDate time.Time) int {
	for i := len(sorted) - 1; i >= 0; i-- {
		if weekNum := weekNumberFor(sorted[i].Date.Time, startDate); weekNum > 0 {
			return weekNum
		}
	}
	return 0
}

// previousWeekNumber walks backwards from the current week to the nearest
// week that has entries, skipping empty gaps. 0 when no earlier data exists.
func previousWeekNumber(currentWeekNum int, groups map[int][]weightEntry) int {
	for weekNum := currentWeekNum - 1; weekNum >= 1; weekNum-- {
		if len(groups[weekNum]) > 0 {
			return weekNum
		}
	}
	return 0
}

// calculateWeightMetrics computes the weekly averages and differences for a
// user's weight history. startDate may be nil: the first entry's date then
// becomes the implicit start (auto-start-date mode), which is surfaced in
// the result so callers can tell the fallback occurred.
func calculateWeightMetrics(entries []weightEntry, startDate *time.Time) weightMetrics {
	metrics := weightMetrics{WeekGroups: map[int][]weightEntry{}}
	if len(entries) == 0 {
		return metrics
	}

	sorted := make([]weightEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Time.Before(sorted[j].Date.Time)
	})

	effectiveStart := startDate
	if effectiveStart == nil {
		first := sorted[0].Date.Time
		effectiveStart = &first
		metrics.IsUsingAutoStartDate = true
	}
	metrics.EffectiveStartDate = effectiveStart

	groups := groupEntriesByWeek(sorted, *effectiveStart)
	metrics.WeekGroups = groups

	currentWeek := currentWeekNumber(sorted, *effectiveStart)
	if currentWeek == 0 || len(groups[currentWeek]) == 0 {
		return metrics
	}
	metrics.CurrentWeekNum = currentWeek
	metrics.WeeklyAverage = weekAverage(groups[currentWeek])

	previousWeek := previousWeekNumber(currentWeek, groups)
	metrics.PreviousWeekNum = previousWeek
	if previousWeek > 0 {
		metrics.PreviousWeeklyAverage = weekAverage(groups[previousWeek])
	}
	metrics.WeeklyAverageDifference = round1(metrics.WeeklyAverage - metrics.PreviousWeeklyAverage)

	// Total change from the first to the last entry after the start date.
	var afterStart []weightEntry
	for _, e := range sorted {
		if weekNumberFor(e.Date.Time, *effectiveStart) > 0 {
			afterStart = append(afterStart, e)
		}
	}
	if len(afterStart) > 0 {
		first := afterStart[0]
		last := afterStart[len(afterStart)-1]
		metrics.FirstEntry = &first
		metrics.LastEntry = &last
		metrics.TotalDifference = round1(last.WeightKg - first.WeightKg)
	}

	return metrics
}
