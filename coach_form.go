package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

func (h *Handler) getCoachForm(c *gin.Context) {
	u := currentUser(c)

	form, err := queryOne[coachForm](h, c.Request.Context(),
		`SELECT * FROM coach_forms WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": u.ID})
	if err == pgx.ErrNoRows {
		apiError(c, http.StatusNotFound, "no coach form on file")
		return
	}
	if err != nil {
		log.Printf("[coach] loading form: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, form)
}

// putCoachForm upserts the onboarding profile, computes fresh macro targets
// from it, and persists them as an initial snapshot. Changing the goal after
// onboarding restarts the coaching cycle under reason "goal-changed".
func (h *Handler) putCoachForm(c *gin.Context) {
	u := currentUser(c)

	var req coachFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.AcceptedTerms {
		apiError(c, http.StatusBadRequest, "terms must be accepted")
		return
	}
	if req.Age <= 0 || req.WeightKg <= 0 || req.HeightCm <= 0 {
		apiError(c, http.StatusBadRequest, "age, weight_kg and height_cm must be positive")
		return
	}
	switch req.Goal {
	case goalFatLoss, goalWeightGain, goalReverseDiet, goalMaintenance:
	default:
		apiError(c, http.StatusBadRequest, "unknown goal")
		return
	}

	ctx := c.Request.Context()

	reason := "initial"
	prev, err := queryOne[coachForm](h, ctx,
		`SELECT * FROM coach_forms WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": u.ID})
	if err == nil && prev.Goal != req.Goal {
		reason = "goal-changed"
	} else if err != nil && err != pgx.ErrNoRows {
		log.Printf("[coach] loading previous form: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	form := coachForm{
		UserID:          u.ID,
		Age:             req.Age,
		Gender:          req.Gender,
		WeightKg:        req.WeightKg,
		HeightCm:        req.HeightCm,
		BodyFatPct:      req.BodyFatPct,
		LifestyleFactor: req.LifestyleFactor,
		ExerciseFactor:  req.ExerciseFactor,
		Goal:            req.Goal,
		GoalSpeed:       req.GoalSpeed,
		CurrentTrend:    req.CurrentTrend,
		WeightChangeKg:  req.WeightChangeKg,
		ProteinIntakeG:  req.ProteinIntakeG,
		CarbIntakeG:     req.CarbIntakeG,
		FatIntakeG:      req.FatIntakeG,
		AcceptedTerms:   req.AcceptedTerms,
	}

	err = h.exec(ctx, `
		INSERT INTO coach_forms
			(user_id, age, gender, weight_kg, height_cm, body_fat_pct,
			 lifestyle_factor, exercise_factor, goal, goal_speed,
			 current_trend, weight_change_kg,
			 protein_intake_g, carb_intake_g, fat_intake_g, accepted_terms)
		VALUES
			(@user_id, @age, @gender, @weight_kg, @height_cm, @body_fat_pct,
			 @lifestyle_factor, @exercise_factor, @goal, @goal_speed,
			 @current_trend, @weight_change_kg,
			 @protein_intake_g, @carb_intake_g, @fat_intake_g, @accepted_terms)
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age, gender = EXCLUDED.gender,
			weight_kg = EXCLUDED.weight_kg, height_cm = EXCLUDED.height_cm,
			body_fat_pct = EXCLUDED.body_fat_pct,
			lifestyle_factor = EXCLUDED.lifestyle_factor,
			exercise_factor = EXCLUDED.exercise_factor,
			goal = EXCLUDED.goal, goal_speed = EXCLUDED.goal_speed,
			current_trend = EXCLUDED.current_trend,
			weight_change_kg = EXCLUDED.weight_change_kg,
			protein_intake_g = EXCLUDED.protein_intake_g,
			carb_intake_g = EXCLUDED.carb_intake_g,
			fat_intake_g = EXCLUDED.fat_intake_g,
			accepted_terms = EXCLUDED.accepted_terms,
			updated_at = now()`,
		pgx.NamedArgs{
			"user_id": u.ID, "age": req.Age, "gender": req.Gender,
			"weight_kg": req.WeightKg, "height_cm": req.HeightCm,
			"body_fat_pct": req.BodyFatPct,
			"lifestyle_factor": req.LifestyleFactor,
			"exercise_factor":  req.ExerciseFactor,
			"goal":             req.Goal, "goal_speed": req.GoalSpeed,
			"current_trend":    req.CurrentTrend,
			"weight_change_kg": req.WeightChangeKg,
			"protein_intake_g": req.ProteinIntakeG,
			"carb_intake_g":    req.CarbIntakeG,
			"fat_intake_g":     req.FatIntakeG,
			"accepted_terms":   req.AcceptedTerms,
		})
	if err != nil {
		log.Printf("[coach] saving form: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	macros, notice, ok := macroResultForProfile(form.profile())
	if !ok {
		apiError(c, http.StatusBadRequest, "current intake fields are incomplete")
		return
	}

	reasonCode := "initial"
	snap := macroSnapshot{
		UserID:     u.ID,
		Calories:   macros.Calories,
		ProteinG:   macros.Protein,
		CarbsG:     macros.Carbs,
		FatG:       macros.Fat,
		FiberG:     macros.Fiber,
		Reason:     reason,
		ReasonCode: &reasonCode,
		Goal:       &form.Goal,
		GoalSpeed:  &form.GoalSpeed,
	}
	saved, err := h.persistSnapshot(ctx, u.ID, snap, nil)
	if err != nil {
		log.Printf("[coach] saving initial snapshot: %v", err)
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"macros":        macros,
		"snapshot":      saved,
		"safety_capped": notice != "",
		"safety_notice": notice,
	})
}
