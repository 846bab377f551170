package main

import (
	"testing"
	"time"
)

func we(day string, kg float64) weightEntry {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return weightEntry{Date: DateOnly{d}, WeightKg: kg}
}

func startOn(day string) *time.Time {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestWeekNumberFor(t *testing.T) {
	start := *startOn("2026-08-01")
	cases := []struct {
		day  string
		want int
	}{
		{"2026-07-31", 0}, // before start
		{"2026-08-01", 1},
		{"2026-08-07", 1},
		{"2026-08-08", 2},
		{"2026-08-14", 2},
		{"2026-08-15", 3},
	}
	for _, tc := range cases {
		d, _ := time.Parse("2006-01-02", tc.day)
		if got := weekNumberFor(d, start); got != tc.want {
			t.Errorf("weekNumberFor(%s) = %d, want %d", tc.day, got, tc.want)
		}
	}
}

func TestCalculateWeightMetricsTwoWeeks(t *testing.T) {
	entries := []weightEntry{
		we("2026-08-02", 80),
		we("2026-08-04", 80.5),
		we("2026-08-06", 79.8),
		we("2026-08-09", 79.5),
		we("2026-08-12", 79.9),
	}
	m := calculateWeightMetrics(entries, startOn("2026-08-01"))

	if m.CurrentWeekNum != 2 || m.PreviousWeekNum != 1 {
		t.Fatalf("weeks = %d/%d, want 2/1", m.CurrentWeekNum, m.PreviousWeekNum)
	}
	if m.WeeklyAverage != 79.7 {
		t.Errorf("weekly average = %v, want 79.7", m.WeeklyAverage)
	}
	if m.PreviousWeeklyAverage != 80.1 {
		t.Errorf("previous average = %v, want 80.1", m.PreviousWeeklyAverage)
	}
	if m.WeeklyAverageDifference != -0.4 {
		t.Errorf("difference = %v, want -0.4", m.WeeklyAverageDifference)
	}
	if m.TotalDifference != -0.1 {
		t.Errorf("total difference = %v, want -0.1", m.TotalDifference)
	}
	if m.IsUsingAutoStartDate {
		t.Error("explicit start date flagged as auto")
	}
}

func TestCalculateWeightMetricsSkipsEmptyWeeks(t *testing.T) {
	// Week 2 has no entries; the previous week for week 3 is week 1.
	entries := []weightEntry{
		we("2026-08-02", 80),
		we("2026-08-05", 80.4),
		we("2026-08-16", 78.9),
	}
	m := calculateWeightMetrics(entries, startOn("2026-08-01"))

	if m.CurrentWeekNum != 3 || m.PreviousWeekNum != 1 {
		t.Fatalf("weeks = %d/%d, want 3/1", m.CurrentWeekNum, m.PreviousWeekNum)
	}
	if m.PreviousWeeklyAverage != 80.2 {
		t.Errorf("previous average = %v, want 80.2", m.PreviousWeeklyAverage)
	}
}

func TestCalculateWeightMetricsAutoStartDate(t *testing.T) {
	entries := []weightEntry{
		we("2026-08-10", 80),
		we("2026-08-18", 79.2),
	}
	m := calculateWeightMetrics(entries, nil)

	if !m.IsUsingAutoStartDate {
		t.Fatal("auto start date not flagged")
	}
	if m.EffectiveStartDate == nil || !m.EffectiveStartDate.Equal(entries[0].Date.Time) {
		t.Errorf("effective start = %v, want first entry date", m.EffectiveStartDate)
	}
	if m.CurrentWeekNum != 2 || m.PreviousWeekNum != 1 {
		t.Errorf("weeks = %d/%d, want 2/1", m.CurrentWeekNum, m.PreviousWeekNum)
	}
}

func TestCalculateWeightMetricsDropsPreStartEntries(t *testing.T) {
	entries := []weightEntry{
		we("2026-07-20", 82), // before tracking started
		we("2026-08-03", 80),
	}
	m := calculateWeightMetrics(entries, startOn("2026-08-01"))

	if m.CurrentWeekNum != 1 || m.PreviousWeekNum != 0 {
		t.Fatalf("weeks = %d/%d, want 1/0", m.CurrentWeekNum, m.PreviousWeekNum)
	}
	if m.WeeklyAverage != 80 {
		t.Errorf("weekly average = %v, want 80", m.WeeklyAverage)
	}
	if m.PreviousWeeklyAverage != 0 {
		t.Errorf("previous average = %v, want 0", m.PreviousWeeklyAverage)
	}
	if m.TotalDifference != 0 {
		t.Errorf("total difference = %v, want 0", m.TotalDifference)
	}
}

func TestCalculateWeightMetricsUnsortedInput(t *testing.T) {
	entries := []weightEntry{
		we("2026-08-12", 79.9),
		we("2026-08-02", 80),
		we("2026-08-09", 79.5),
	}
	m := calculateWeightMetrics(entries, startOn("2026-08-01"))

	if m.FirstEntry == nil || m.FirstEntry.WeightKg != 80 {
		t.Errorf("first entry = %+v, want the Aug 2 one", m.FirstEntry)
	}
	if m.LastEntry == nil || m.LastEntry.WeightKg != 79.9 {
		t.Errorf("last entry = %+v, want the Aug 12 one", m.LastEntry)
	}
}

func TestCalculateWeightMetricsEmpty(t *testing.T) {
	m := calculateWeightMetrics(nil, startOn("2026-08-01"))
	if m.WeeklyAverage != 0 || m.CurrentWeekNum != 0 {
		t.Errorf("empty metrics = %+v", m)
	}
}
