package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// coachWeekWindow returns the adherence scoring window as a half-open day
// range [start, end): the last 7 full days ending yesterday, clamped to the
// coaching start date inside the first week. Today is excluded so a partial
// day never skews the averages. At the moment a check-in unlocks, this is
// exactly the completed coaching week under review.
func coachWeekWindow(coachStartedAt, now time.Time) (time.Time, time.Time) {
	anchor := localMidnight(coachStartedAt)
	today := localMidnight(now)

	start := today.AddDate(0, 0, -7)
	if start.Before(anchor) {
		start = anchor
	}
	if today.Before(start) {
		today = start
	}
	return start, today
}

// weeklyAdherencePct scores how closely logged intake tracked the targets
// over the window. Each macro contributes (achieved daily average / target)
// expressed in percent, days with no log counting as zero intake, and the
// three macro percentages are averaged. Fiber is informational and excluded.
func weeklyAdherencePct(totals []dailyMacroTotal, target macroSet, windowStart, windowEnd time.Time) float64 {
	days := int(windowEnd.Sub(windowStart).Hours() / 24)
	if days <= 0 {
		return 0
	}

	var sumProtein, sumCarbs, sumFat float64
	for _, t := range totals {
		d := localMidnight(t.EatenDate.Time)
		if d.Before(windowStart) || !d.Before(windowEnd) {
			continue
		}
		sumProtein += t.ProteinG
		sumCarbs += t.CarbsG
		sumFat += t.FatG
	}

	n := float64(days)
	pctProtein := numOrZero(sumProtein / n / target.Protein * 100)
	pctCarbs := numOrZero(sumCarbs / n / target.Carbs * 100)
	pctFat := numOrZero(sumFat / n / target.Fat * 100)

	return (pctProtein + pctCarbs + pctFat) / 3
}

// weeklyAdherence computes the adherence score for this user's current coach
// week against the given targets. Without a coaching start date there is no
// window and the score is zero, which the engine turns into a hold.
func (h *Handler) weeklyAdherence(ctx context.Context, u user, target macroSet, now time.Time) (float64, error) {
	if u.MacroCoachStartedAt == nil {
		return 0, nil
	}
	start, end := coachWeekWindow(*u.MacroCoachStartedAt, now)

	totals, err := queryMany[dailyMacroTotal](h, ctx, `
		SELECT * FROM daily_macro_totals
		WHERE user_id = @user_id
		  AND eaten_date >= @start AND eaten_date < @end`,
		pgx.NamedArgs{"user_id": u.ID, "start": start, "end": end})
	if err != nil {
		return 0, err
	}

	return weeklyAdherencePct(totals, target, start, end), nil
}
