package main

import (
	"testing"
	"time"
)

func dmt(day string, p, c, f float64) dailyMacroTotal {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return dailyMacroTotal{EatenDate: DateOnly{d}, ProteinG: p, CarbsG: c, FatG: f}
}

func TestCoachWeekWindow(t *testing.T) {
	started := ts(2026, 8, 1, 9, 0)

	// Mid first week: window runs from the start date up to (excluding) today.
	s, e := coachWeekWindow(started, ts(2026, 8, 5, 12, 0))
	if !s.Equal(ts(2026, 8, 1, 0, 0)) || !e.Equal(ts(2026, 8, 5, 0, 0)) {
		t.Errorf("window = [%v, %v)", s, e)
	}

	// Past the first week the window trails: 7 full days ending yesterday.
	s, e = coachWeekWindow(started, ts(2026, 8, 12, 8, 0))
	if !s.Equal(ts(2026, 8, 5, 0, 0)) || !e.Equal(ts(2026, 8, 12, 0, 0)) {
		t.Errorf("window = [%v, %v)", s, e)
	}

	// Day one: today is excluded, leaving an empty window.
	s, e = coachWeekWindow(started, ts(2026, 8, 1, 15, 0))
	if e.After(s) {
		t.Errorf("window = [%v, %v), want empty", s, e)
	}
}

func TestAdherenceCoversCompletedWeekAtUnlock(t *testing.T) {
	// The check-in unlocks at day 7 00:01. The scoring window at that moment
	// must be the seven completed days, so a perfectly adherent week scores
	// 100 and sails through the engine's gate.
	started := ts(2026, 8, 1, 9, 0)
	unlock := ts(2026, 8, 8, 0, 1)

	s, e := coachWeekWindow(started, unlock)
	if !s.Equal(ts(2026, 8, 1, 0, 0)) || !e.Equal(ts(2026, 8, 8, 0, 0)) {
		t.Fatalf("window = [%v, %v), want the completed week", s, e)
	}

	target := macroSet{Protein: 150, Carbs: 200, Fat: 60}
	var totals []dailyMacroTotal
	for day := 1; day <= 7; day++ {
		totals = append(totals, dmt(ts(2026, 8, day, 0, 0).Format("2006-01-02"), 150, 200, 60))
	}
	adh := weeklyAdherencePct(totals, target, s, e)
	if adh != 100 {
		t.Fatalf("adherence = %v, want 100", adh)
	}

	in := firstCheckInFixture(goalFatLoss, speedMedium, 80, 79.6)
	in.AdherenceWeekly = adh
	if got := runCheckInEngine(in); got.ReasonCode == reasonAdherenceLow {
		t.Error("on-time check-in held at the adherence gate")
	}
}

func TestWeeklyAdherencePerfect(t *testing.T) {
	target := macroSet{Protein: 150, Carbs: 200, Fat: 60}
	totals := []dailyMacroTotal{
		dmt("2026-08-01", 150, 200, 60),
		dmt("2026-08-02", 150, 200, 60),
		dmt("2026-08-03", 150, 200, 60),
		dmt("2026-08-04", 150, 200, 60),
	}
	got := weeklyAdherencePct(totals, target, ts(2026, 8, 1, 0, 0), ts(2026, 8, 5, 0, 0))
	if got != 100 {
		t.Errorf("adherence = %v, want 100", got)
	}
}

func TestWeeklyAdherenceMissingDaysCountAsZero(t *testing.T) {
	target := macroSet{Protein: 150, Carbs: 200, Fat: 60}
	totals := []dailyMacroTotal{
		dmt("2026-08-01", 150, 200, 60),
		dmt("2026-08-02", 150, 200, 60),
	}
	got := weeklyAdherencePct(totals, target, ts(2026, 8, 1, 0, 0), ts(2026, 8, 5, 0, 0))
	if got != 50 {
		t.Errorf("adherence = %v, want 50", got)
	}
}

func TestWeeklyAdherenceIgnoresOutOfWindowDays(t *testing.T) {
	target := macroSet{Protein: 100, Carbs: 100, Fat: 100}
	totals := []dailyMacroTotal{
		dmt("2026-07-31", 500, 500, 500), // before the window
		dmt("2026-08-01", 100, 100, 100),
		dmt("2026-08-02", 500, 500, 500), // today, excluded
	}
	got := weeklyAdherencePct(totals, target, ts(2026, 8, 1, 0, 0), ts(2026, 8, 2, 0, 0))
	if got != 100 {
		t.Errorf("adherence = %v, want 100", got)
	}
}

func TestWeeklyAdherenceEmptyWindow(t *testing.T) {
	target := macroSet{Protein: 150, Carbs: 200, Fat: 60}
	got := weeklyAdherencePct(nil, target, ts(2026, 8, 1, 0, 0), ts(2026, 8, 1, 0, 0))
	if got != 0 {
		t.Errorf("adherence = %v, want 0", got)
	}
}

func TestWeeklyAdherenceZeroTargetsDegradeToZero(t *testing.T) {
	// A zero target would divide to Inf; it must coerce to 0, not poison the mean.
	totals := []dailyMacroTotal{dmt("2026-08-01", 150, 200, 60)}
	got := weeklyAdherencePct(totals, macroSet{}, ts(2026, 8, 1, 0, 0), ts(2026, 8, 2, 0, 0))
	if got != 0 {
		t.Errorf("adherence = %v, want 0", got)
	}
}

func TestWeeklyAdherenceAveragesMacros(t *testing.T) {
	// Protein on target, carbs at half, fat at zero: (100 + 50 + 0) / 3.
	target := macroSet{Protein: 100, Carbs: 200, Fat: 60}
	totals := []dailyMacroTotal{dmt("2026-08-01", 100, 100, 0)}
	got := weeklyAdherencePct(totals, target, ts(2026, 8, 1, 0, 0), ts(2026, 8, 2, 0, 0))
	if got != 50 {
		t.Errorf("adherence = %v, want 50", got)
	}
}
