package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON
// responses. The two coaching-cycle markers plus the weight-tracking start
// date drive check-in eligibility and week grouping.
type user struct {
	ID                      int        `json:"id" db:"id"`
	Username                string     `json:"username" db:"username"`
	Email                   string     `json:"email" db:"email"`
	AuthToken               string     `json:"-" db:"auth_token"`
	Password                string     `json:"-" db:"password"`
	WeightTrackingStartDate *DateOnly  `json:"weight_tracking_start_date" db:"weight_tracking_start_date"`
	MacroCoachStartedAt     *time.Time `json:"macro_coach_started_at" db:"macro_coach_started_at"`
	LastCheckInAt           *time.Time `json:"last_check_in_at" db:"last_check_in_at"`
	CreatedAt               *time.Time `json:"created_at" db:"created_at"`
}

// coachForm maps to coach_forms: one row per user with the onboarding
// profile. The current-intake block is nullable; only users who reported an
// existing plan have it.
type coachForm struct {
	UserID          int      `json:"user_id" db:"user_id"`
	Age             int      `json:"age" db:"age"`
	Gender          string   `json:"gender" db:"gender"`
	WeightKg        float64  `json:"weight_kg" db:"weight_kg"`
	HeightCm        float64  `json:"height_cm" db:"height_cm"`
	BodyFatPct      float64  `json:"body_fat_pct" db:"body_fat_pct"`
	LifestyleFactor string   `json:"lifestyle_factor" db:"lifestyle_factor"`
	ExerciseFactor  string   `json:"exercise_factor" db:"exercise_factor"`
	Goal            string   `json:"goal" db:"goal"`
	GoalSpeed       string   `json:"goal_speed" db:"goal_speed"`
	CurrentTrend    *string  `json:"current_trend" db:"current_trend"`
	WeightChangeKg  *float64 `json:"weight_change_kg" db:"weight_change_kg"`
	ProteinIntakeG  *float64 `json:"protein_intake_g" db:"protein_intake_g"`
	CarbIntakeG     *float64 `json:"carb_intake_g" db:"carb_intake_g"`
	FatIntakeG      *float64 `json:"fat_intake_g" db:"fat_intake_g"`
	AcceptedTerms   bool     `json:"accepted_terms" db:"accepted_terms"`

	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// profile converts the stored form into the calculators' input shape.
func (f coachForm) profile() coachProfile {
	p := coachProfile{
		Age:             float64(f.Age),
		Gender:          f.Gender,
		WeightKg:        f.WeightKg,
		HeightCm:        f.HeightCm,
		BodyFatPct:      f.BodyFatPct,
		LifestyleFactor: f.LifestyleFactor,
		ExerciseFactor:  f.ExerciseFactor,
		Goal:            f.Goal,
		GoalSpeed:       f.GoalSpeed,
		WeightChangeKg:  f.WeightChangeKg,
	}
	if f.CurrentTrend != nil {
		p.CurrentTrend = *f.CurrentTrend
	}
	if f.ProteinIntakeG != nil {
		p.ProteinIntake = *f.ProteinIntakeG
	}
	if f.CarbIntakeG != nil {
		p.CarbIntake = *f.CarbIntakeG
	}
	if f.FatIntakeG != nil {
		p.FatIntake = *f.FatIntakeG
	}
	return p
}

// macroSnapshot maps to macro_snapshots: a persisted, immutable record of
// macro targets plus the reasoning that produced them. Ordered per user by
// created_at; "latest" = max created_at. Snapshots are superseded, never
// mutated.
type macroSnapshot struct {
	ID     int `json:"id" db:"id"`
	UserID int `json:"user_id" db:"user_id"`

	Calories float64 `json:"calories" db:"calories"`
	ProteinG float64 `json:"protein_g" db:"protein_g"`
	CarbsG   float64 `json:"carbs_g" db:"carbs_g"`
	FatG     float64 `json:"fat_g" db:"fat_g"`
	FiberG   float64 `json:"fiber_g" db:"fiber_g"`

	Reason     string  `json:"reason" db:"reason"`
	ReasonCode *string `json:"reason_code" db:"reason_code"`
	UIMessage  *string `json:"ui_message" db:"ui_message"`

	Goal      *string `json:"goal" db:"goal"`
	GoalSpeed *string `json:"goal_speed" db:"goal_speed"`

	WeeklyAverageKg         *float64 `json:"weekly_average_kg" db:"weekly_average_kg"`
	PreviousWeeklyAverageKg *float64 `json:"previous_weekly_average_kg" db:"previous_weekly_average_kg"`

	// Idempotency token from the submitting client; unique per user so a
	// retried check-in cannot create a duplicate snapshot.
	ClientToken *string `json:"-" db:"client_token"`

	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// isInitial reports whether this snapshot starts (or restarts) a coaching
// cycle rather than recording a check-in.
func (s macroSnapshot) isInitial() bool {
	if s.Reason == "initial" || s.Reason == "goal-changed" {
		return true
	}
	return s.ReasonCode != nil && *s.ReasonCode == "initial"
}

// macros converts the snapshot's target columns into the engine's macroSet.
func (s macroSnapshot) macros() macroSet {
	return macroSet{
		Calories: s.Calories,
		Protein:  s.ProteinG,
		Carbs:    s.CarbsG,
		Fat:      s.FatG,
		Fiber:    s.FiberG,
	}
}

// weightEntry maps to weight_log: one weight measurement per user per date.
type weightEntry struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	WeightKg  float64    `json:"weight_kg" db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// dailyMacroTotal maps to daily_macro_totals: the summed intake for one user
// and calendar date, as reported by the diet tracker.
type dailyMacroTotal struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	EatenDate DateOnly   `json:"eaten_date" db:"eaten_date"`
	ProteinG  float64    `json:"protein_g" db:"protein_g"`
	CarbsG    float64    `json:"carbs_g" db:"carbs_g"`
	FatG      float64    `json:"fat_g" db:"fat_g"`
	FiberG    float64    `json:"fiber_g" db:"fiber_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// weightAverageRow maps to weight_averages: the persisted weekly-average pair
// the check-in engine reads. One row per user, upserted whenever the averages
// endpoint recomputes.
type weightAverageRow struct {
	UserID                int        `json:"user_id" db:"user_id"`
	WeeklyAverage         float64    `json:"weekly_average" db:"weekly_average"`
	PreviousWeeklyAverage float64    `json:"previous_weekly_average" db:"previous_weekly_average"`
	UpdatedAt             *time.Time `json:"updated_at" db:"updated_at"`
}

/* ─── Request types ──────────────────────────────────────────────────── */

// coachFormRequest is the request body for PUT /api/coach/form. The
// current-intake block is optional as a unit; current_trend plus
// weight_change_kg together route the computation to the current-macro
// recalculator.
type coachFormRequest struct {
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	WeightKg        float64 `json:"weight_kg"`
	HeightCm        float64 `json:"height_cm"`
	BodyFatPct      float64 `json:"body_fat_pct"`
	LifestyleFactor string  `json:"lifestyle_factor"`
	ExerciseFactor  string  `json:"exercise_factor"`
	Goal            string  `json:"goal"`
	GoalSpeed       string  `json:"goal_speed"`
	AcceptedTerms   bool    `json:"accepted_terms"`

	CurrentTrend   *string  `json:"current_trend"`
	WeightChangeKg *float64 `json:"weight_change_kg"`
	ProteinIntakeG *float64 `json:"protein_intake_g"`
	CarbIntakeG    *float64 `json:"carb_intake_g"`
	FatIntakeG     *float64 `json:"fat_intake_g"`
}

// checkInRequest is the request body for POST /api/coach/check-in.
// ClientToken is an optional uuid the client generates once per submission;
// a retry with the same token returns the snapshot already created instead
// of running the engine again.
type checkInRequest struct {
	ClientToken *string `json:"client_token"`
}

// macroTotalsRequest is the request body for POST /api/macro-totals.
type macroTotalsRequest struct {
	EatenDate string  `json:"eaten_date"`
	ProteinG  float64 `json:"protein_g"`
	CarbsG    float64 `json:"carbs_g"`
	FatG      float64 `json:"fat_g"`
	FiberG    float64 `json:"fiber_g"`
}
