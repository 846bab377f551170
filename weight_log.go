package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type weightEntryRequest struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

func (h *Handler) listWeightEntries(c *gin.Context) {
	u := currentUser(c)

	entries, err := queryMany[weightEntry](h, c.Request.Context(), `
		SELECT * FROM weight_log
		WHERE user_id = @user_id
		ORDER BY date ASC`,
		pgx.NamedArgs{"user_id": u.ID})
	if err != nil {
		log.Printf("[weight] listing: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// upsertWeightEntry records one weight measurement. A second entry for the
// same date replaces the first. The first entry ever also stamps the user's
// weight tracking start date when none was set.
func (h *Handler) upsertWeightEntry(c *gin.Context) {
	u := currentUser(c)

	var req weightEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		apiError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if req.WeightKg <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must be positive")
		return
	}

	ctx := c.Request.Context()

	entry, err := queryOne[weightEntry](h, ctx, `
		INSERT INTO weight_log (user_id, date, weight_kg)
		VALUES (@user_id, @date, @weight_kg)
		ON CONFLICT (user_id, date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		RETURNING *`,
		pgx.NamedArgs{"user_id": u.ID, "date": date, "weight_kg": req.WeightKg})
	if err != nil {
		log.Printf("[weight] upserting: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	if u.WeightTrackingStartDate == nil {
		err = h.exec(ctx, `
			UPDATE users SET weight_tracking_start_date = (
				SELECT min(date) FROM weight_log WHERE user_id = @user_id
			)
			WHERE id = @user_id AND weight_tracking_start_date IS NULL`,
			pgx.NamedArgs{"user_id": u.ID})
		if err != nil {
			log.Printf("[weight] stamping start date: %v", err)
		}
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) updateWeightEntry(c *gin.Context) {
	u := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req weightEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.WeightKg <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must be positive")
		return
	}

	entry, err := queryOne[weightEntry](h, c.Request.Context(), `
		UPDATE weight_log SET weight_kg = @weight_kg
		WHERE id = @id AND user_id = @user_id
		RETURNING *`,
		pgx.NamedArgs{"id": id, "user_id": u.ID, "weight_kg": req.WeightKg})
	if err == pgx.ErrNoRows {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}
	if err != nil {
		log.Printf("[weight] updating: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) deleteWeightEntry(c *gin.Context) {
	u := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	tag, err := h.db.Exec(c.Request.Context(), `
		DELETE FROM weight_log WHERE id = $1 AND user_id = $2`, id, u.ID)
	if err != nil {
		log.Printf("[weight] deleting: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if tag.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}

/* ─── Weekly averages ────────────────────────────────────────────────── */

// weightMetricsFor loads the user's full weight history and runs the weekly
// grouping over it. The tracking start date anchors week one; without one the
// coaching start date stands in, and failing both the grouping falls back to
// the first entry.
func (h *Handler) weightMetricsFor(ctx context.Context, u user) (weightMetrics, error) {
	entries, err := queryMany[weightEntry](h, ctx, `
		SELECT * FROM weight_log
		WHERE user_id = @user_id
		ORDER BY date ASC`,
		pgx.NamedArgs{"user_id": u.ID})
	if err != nil {
		return weightMetrics{}, err
	}

	var start *time.Time
	if u.WeightTrackingStartDate != nil {
		t := u.WeightTrackingStartDate.Time
		start = &t
	} else if u.MacroCoachStartedAt != nil {
		start = u.MacroCoachStartedAt
	}

	return calculateWeightMetrics(entries, start), nil
}

// currentWeightAverages recomputes the weekly average pair and persists it so
// the check-in engine always reads values consistent with the weight log.
func (h *Handler) currentWeightAverages(ctx context.Context, u user) (weightAverages, error) {
	metrics, err := h.weightMetricsFor(ctx, u)
	if err != nil {
		return weightAverages{}, err
	}

	row, err := queryOne[weightAverageRow](h, ctx, `
		INSERT INTO weight_averages (user_id, weekly_average, previous_weekly_average)
		VALUES (@user_id, @weekly, @previous)
		ON CONFLICT (user_id) DO UPDATE SET
			weekly_average = EXCLUDED.weekly_average,
			previous_weekly_average = EXCLUDED.previous_weekly_average,
			updated_at = now()
		RETURNING *`,
		pgx.NamedArgs{
			"user_id":  u.ID,
			"weekly":   metrics.WeeklyAverage,
			"previous": metrics.PreviousWeeklyAverage,
		})
	if err != nil {
		return weightAverages{}, err
	}

	return weightAverages{
		WeeklyAverage:         row.WeeklyAverage,
		PreviousWeeklyAverage: row.PreviousWeeklyAverage,
	}, nil
}

func (h *Handler) getWeightAverages(c *gin.Context) {
	u := currentUser(c)

	metrics, err := h.weightMetricsFor(c.Request.Context(), u)
	if err != nil {
		log.Printf("[weight] metrics: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := h.currentWeightAverages(c.Request.Context(), u); err != nil {
		log.Printf("[weight] persisting averages: %v", err)
	}

	c.JSON(http.StatusOK, metrics)
}
