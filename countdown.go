package main

import (
	"math"
	"time"
)

// countdownState is the check-in lock status shown to the user.
type countdownState struct {
	DaysLeft      int  `json:"days_left"`
	CanCheckInNow bool `json:"can_check_in_now"`
}

// localMidnight truncates a timestamp to 00:00 of its calendar day, keeping
// the location.
func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// eligibleAtFor returns when the next check-in unlocks for a marker: local
// midnight of the marker's day, plus 7 calendar days, plus one minute.
// This is deliberately calendar-day arithmetic, not a 168-hour duration:
// a 23:00 check-in unlocks at 00:01 seven days later (~169h), never earlier.
func eligibleAtFor(marker time.Time) time.Time {
	base := localMidnight(marker)
	return time.Date(base.Year(), base.Month(), base.Day()+7, 0, 1, 0, 0, base.Location())
}

// checkInCountdown decides whether the user may check in now and how many
// days remain. A latest snapshot flagged as initial with neither cycle marker
// set yet is the cold-start case: a full 7-day wait, locked.
//
// The marker is lastCheckInAt when present, else coachStartedAt.
func checkInCountdown(coachStartedAt, lastCheckInAt *time.Time, latestIsInitial bool, now time.Time) countdownState {
	if latestIsInitial && coachStartedAt == nil && lastCheckInAt == nil {
		return countdownState{DaysLeft: 7, CanCheckInNow: false}
	}

	marker := lastCheckInAt
	if marker == nil {
		marker = coachStartedAt
	}
	if marker == nil {
		return countdownState{DaysLeft: 0, CanCheckInNow: false}
	}

	eligibleAt := eligibleAtFor(*marker)
	raw := int(math.Ceil(float64(eligibleAt.Sub(now)) / float64(24*time.Hour)))
	daysLeft := max(0, raw)
	return countdownState{
		DaysLeft:      daysLeft,
		CanCheckInNow: !now.Before(eligibleAt),
	}
}
