package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// persistSnapshot inserts a macro snapshot and advances the user's coaching
// markers. An initial snapshot (or any snapshot landing on an empty history)
// starts a fresh cycle: the old history is wiped, macro_coach_started_at is
// set and last_check_in_at cleared. Any other snapshot records a completed
// check-in and stamps last_check_in_at.
func (h *Handler) persistSnapshot(ctx context.Context, userID int, snap macroSnapshot, clientToken *string) (macroSnapshot, error) {
	var count int
	row := h.db.QueryRow(ctx,
		`SELECT count(*) FROM macro_snapshots WHERE user_id = $1`, userID)
	if err := row.Scan(&count); err != nil {
		return macroSnapshot{}, err
	}

	startsCycle := snap.isInitial() || count == 0
	if startsCycle {
		if err := h.exec(ctx,
			`DELETE FROM macro_snapshots WHERE user_id = @user_id`,
			pgx.NamedArgs{"user_id": userID}); err != nil {
			return macroSnapshot{}, err
		}
		if err := h.exec(ctx, `
			UPDATE users SET macro_coach_started_at = now(),
			                 last_check_in_at = NULL
			WHERE id = @user_id`,
			pgx.NamedArgs{"user_id": userID}); err != nil {
			return macroSnapshot{}, err
		}
	} else {
		if err := h.exec(ctx, `
			UPDATE users SET last_check_in_at = now()
			WHERE id = @user_id`,
			pgx.NamedArgs{"user_id": userID}); err != nil {
			return macroSnapshot{}, err
		}
	}

	return queryOne[macroSnapshot](h, ctx, `
		INSERT INTO macro_snapshots
			(user_id, calories, protein_g, carbs_g, fat_g, fiber_g,
			 reason, reason_code, ui_message, goal, goal_speed,
			 weekly_average_kg, previous_weekly_average_kg, client_token)
		VALUES
			(@user_id, @calories, @protein_g, @carbs_g, @fat_g, @fiber_g,
			 @reason, @reason_code, @ui_message, @goal, @goal_speed,
			 @weekly_average_kg, @previous_weekly_average_kg, @client_token)
		RETURNING *`,
		pgx.NamedArgs{
			"user_id":  userID,
			"calories": snap.Calories, "protein_g": snap.ProteinG,
			"carbs_g": snap.CarbsG, "fat_g": snap.FatG, "fiber_g": snap.FiberG,
			"reason": snap.Reason, "reason_code": snap.ReasonCode,
			"ui_message": snap.UIMessage,
			"goal":       snap.Goal, "goal_speed": snap.GoalSpeed,
			"weekly_average_kg":          snap.WeeklyAverageKg,
			"previous_weekly_average_kg": snap.PreviousWeeklyAverageKg,
			"client_token":               clientToken,
		})
}

// snapshotByToken returns the snapshot already created for an idempotency
// token, or pgx.ErrNoRows.
func (h *Handler) snapshotByToken(ctx context.Context, userID int, token string) (macroSnapshot, error) {
	return queryOne[macroSnapshot](h, ctx, `
		SELECT * FROM macro_snapshots
		WHERE user_id = @user_id AND client_token = @token`,
		pgx.NamedArgs{"user_id": userID, "token": token})
}

func (h *Handler) latestSnapshot(ctx context.Context, userID int) (macroSnapshot, error) {
	return queryOne[macroSnapshot](h, ctx, `
		SELECT * FROM macro_snapshots
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		pgx.NamedArgs{"user_id": userID})
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

type snapshotRequest struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`

	Reason     string  `json:"reason"`
	ReasonCode *string `json:"reason_code"`
	UIMessage  *string `json:"ui_message"`
	Goal       *string `json:"goal"`
	GoalSpeed  *string `json:"goal_speed"`

	ClientToken *string `json:"client_token"`
}

// createSnapshot persists an externally supplied snapshot, e.g. a manual
// macro edit from the client. Marker handling matches check-in snapshots.
func (h *Handler) createSnapshot(c *gin.Context) {
	u := currentUser(c)

	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reason == "" {
		apiError(c, http.StatusBadRequest, "reason is required")
		return
	}

	ctx := c.Request.Context()

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
			log.Printf("[snapshots] token lookup: %v", err)
			apiError(c, http.StatusInternalServerError, "internal error")
			return
		}
	}

	snap := macroSnapshot{
		UserID:     u.ID,
		Calories:   req.Calories,
		ProteinG:   req.ProteinG,
		CarbsG:     req.CarbsG,
		FatG:       req.FatG,
		FiberG:     req.FiberG,
		Reason:     req.Reason,
		ReasonCode: req.ReasonCode,
		UIMessage:  req.UIMessage,
		Goal:       req.Goal,
		GoalSpeed:  req.GoalSpeed,
	}
	saved, err := h.persistSnapshot(ctx, u.ID, snap, req.ClientToken)
	if err != nil {
		log.Printf("[snapshots] saving: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"snapshot": saved, "duplicate": false})
}

func (h *Handler) getLatestSnapshot(c *gin.Context) {
	u := currentUser(c)

	snap, err := h.latestSnapshot(c.Request.Context(), u.ID)
	if err == pgx.ErrNoRows {
		apiError(c, http.StatusNotFound, "no snapshots yet")
		return
	}
	if err != nil {
		log.Printf("[snapshots] latest: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, snap)
}

func (h *Handler) getSnapshotHistory(c *gin.Context) {
	u := currentUser(c)

	snaps, err := queryMany[macroSnapshot](h, c.Request.Context(), `
		SELECT * FROM macro_snapshots
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id DESC`,
		pgx.NamedArgs{"user_id": u.ID})
	if err != nil {
		log.Printf("[snapshots] history: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, snaps)
}

// getCoachMarkers exposes the two cycle markers the client's countdown and
// week math depend on.
func (h *Handler) getCoachMarkers(c *gin.Context) {
	u := currentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"macro_coach_started_at": u.MacroCoachStartedAt,
		"last_check_in_at":       u.LastCheckInAt,
	})
}
