package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// postCheckIn runs the weekly coaching decision for the authenticated user:
// it gathers the latest targets, weekly weight averages and adherence, feeds
// them to the engine and persists the outcome as a new snapshot. The per-user
// lock plus the client token keep retried submissions from double-writing.
func (h *Handler) postCheckIn(c *gin.Context) {
	u := currentUser(c)
	ctx := c.Request.Context()

	var req checkInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apiError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	lock := h.checkInLock(u.ID)
	lock.Lock()
	defer lock.Unlock()

	if req.ClientToken != nil {
		existing, err := h.snapshotByToken(ctx, u.ID, *req.ClientToken)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"snapshot": existing, "duplicate": true})
			return
		}
		if err != pgx.ErrNoRows {
			log.Printf("[check-in] token lookup: %v", err)
			apiError(c, http.StatusInternalServerError, "internal error")
			return
		}
	}

	latest, err := h.latestSnapshot(ctx, u.ID)
	if err == pgx.ErrNoRows {
		apiError(c, http.StatusConflict, "no macro plan yet, submit the coach form first")
		return
	}
	if err != nil {
		log.Printf("[check-in] latest snapshot: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	state := checkInCountdown(u.MacroCoachStartedAt, u.LastCheckInAt, latest.isInitial(), time.Now())
	if !state.CanCheckInNow {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "check-in window not open yet",
			"countdown": state,
		})
		return
	}

	form, err := queryOne[coachForm](h, ctx,
		`SELECT * FROM coach_forms WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": u.ID})
	if err == pgx.ErrNoRows {
		apiError(c, http.StatusConflict, "no coach form on file")
		return
	}
	if err != nil {
		log.Printf("[check-in] loading form: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	avgs, err := h.currentWeightAverages(ctx, u)
	if err != nil {
		log.Printf("[check-in] weight averages: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	adherence, err := h.weeklyAdherence(ctx, u, latest.macros(), time.Now())
	if err != nil {
		log.Printf("[check-in] adherence: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	goal, goalSpeed := form.Goal, form.GoalSpeed
	if latest.Goal != nil {
		goal = *latest.Goal
	}
	if latest.GoalSpeed != nil {
		goalSpeed = *latest.GoalSpeed
	}

	result := runCheckInEngine(checkInInput{
		Goal:            goal,
		GoalSpeed:       goalSpeed,
		AdherenceWeekly: adherence,
		WeightAverages:  avgs,
		CurrMacros:      latest.macros(),
		WeightKg:        form.WeightKg,
		CoachStartedAt:  u.MacroCoachStartedAt,
		LastCheckInAt:   u.LastCheckInAt,
	})

	snap := macroSnapshot{
		UserID:                  u.ID,
		Calories:                result.NextMacros.Calories,
		ProteinG:                result.NextMacros.Protein,
		CarbsG:                  result.NextMacros.Carbs,
		FatG:                    result.NextMacros.Fat,
		FiberG:                  result.NextMacros.Fiber,
		Reason:                  result.Reason,
		ReasonCode:              &result.ReasonCode,
		UIMessage:               &result.UIMessage,
		Goal:                    &goal,
		GoalSpeed:               &goalSpeed,
		WeeklyAverageKg:         &avgs.WeeklyAverage,
		PreviousWeeklyAverageKg: &avgs.PreviousWeeklyAverage,
	}
	saved, err := h.persistSnapshot(ctx, u.ID, snap, req.ClientToken)
	if err != nil {
		log.Printf("[check-in] saving snapshot: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot":    saved,
		"next_macros": result.NextMacros,
		"message":     result.Message,
		"reason":      result.Reason,
		"reason_code": result.ReasonCode,
		"ui_message":  result.UIMessage,
		"adherence":   adherence,
		"duplicate":   false,
	})
}

// getCountdown reports how long until the next check-in window opens.
func (h *Handler) getCountdown(c *gin.Context) {
	u := currentUser(c)

	latestIsInitial := false
	latest, err := h.latestSnapshot(c.Request.Context(), u.ID)
	if err == nil {
		latestIsInitial = latest.isInitial()
	} else if err != pgx.ErrNoRows {
		log.Printf("[check-in] latest snapshot: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, checkInCountdown(u.MacroCoachStartedAt, u.LastCheckInAt, latestIsInitial, time.Now()))
}
