package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// upsertMacroTotals records the summed intake for one calendar day, replacing
// any earlier total for the same date. The diet tracker pushes these after
// each food log change.
func (h *Handler) upsertMacroTotals(c *gin.Context) {
	u := currentUser(c)

	var req macroTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.EatenDate)
	if err != nil {
		apiError(c, http.StatusBadRequest, "eaten_date must be YYYY-MM-DD")
		return
	}
	if req.ProteinG < 0 || req.CarbsG < 0 || req.FatG < 0 || req.FiberG < 0 {
		apiError(c, http.StatusBadRequest, "macro totals must not be negative")
		return
	}

	total, err := queryOne[dailyMacroTotal](h, c.Request.Context(), `
		INSERT INTO daily_macro_totals
			(user_id, eaten_date, protein_g, carbs_g, fat_g, fiber_g)
		VALUES (@user_id, @eaten_date, @protein_g, @carbs_g, @fat_g, @fiber_g)
		ON CONFLICT (user_id, eaten_date) DO UPDATE SET
			protein_g = EXCLUDED.protein_g,
			carbs_g = EXCLUDED.carbs_g,
			fat_g = EXCLUDED.fat_g,
			fiber_g = EXCLUDED.fiber_g
		RETURNING *`,
		pgx.NamedArgs{
			"user_id": u.ID, "eaten_date": date,
			"protein_g": req.ProteinG, "carbs_g": req.CarbsG,
			"fat_g": req.FatG, "fiber_g": req.FiberG,
		})
	if err != nil {
		log.Printf("[totals] upserting: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusCreated, total)
}

// getWeeklyMacroAverage reports the adherence score for the current scoring
// window plus the per-macro daily averages behind it.
func (h *Handler) getWeeklyMacroAverage(c *gin.Context) {
	u := currentUser(c)
	ctx := c.Request.Context()

	if u.MacroCoachStartedAt == nil {
		apiError(c, http.StatusConflict, "macro coaching has not started")
		return
	}

	latest, err := h.latestSnapshot(ctx, u.ID)
	if err == pgx.ErrNoRows {
		apiError(c, http.StatusConflict, "no macro plan yet")
		return
	}
	if err != nil {
		log.Printf("[totals] latest snapshot: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	now := time.Now()
	start, end := coachWeekWindow(*u.MacroCoachStartedAt, now)

	totals, err := queryMany[dailyMacroTotal](h, ctx, `
		SELECT * FROM daily_macro_totals
		WHERE user_id = @user_id
		  AND eaten_date >= @start AND eaten_date < @end`,
		pgx.NamedArgs{"user_id": u.ID, "start": start, "end": end})
	if err != nil {
		log.Printf("[totals] weekly window: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	days := int(end.Sub(start).Hours() / 24)
	var avgProtein, avgCarbs, avgFat, avgFiber float64
	if days > 0 {
		for _, t := range totals {
			avgProtein += t.ProteinG
			avgCarbs += t.CarbsG
			avgFat += t.FatG
			avgFiber += t.FiberG
		}
		n := float64(days)
		avgProtein /= n
		avgCarbs /= n
		avgFat /= n
		avgFiber /= n
	}

	c.JSON(http.StatusOK, gin.H{
		"window_start": start.Format("2006-01-02"),
		"window_end":   end.Format("2006-01-02"),
		"days_counted": days,
		"daily_average": gin.H{
			"protein_g": avgProtein,
			"carbs_g":   avgCarbs,
			"fat_g":     avgFat,
			"fiber_g":   avgFiber,
		},
		"adherence": weeklyAdherencePct(totals, latest.macros(), start, end),
	})
}
