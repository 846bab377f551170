package main

/* ─── Coaching profile input ─────────────────────────────────────────── */

// Goal and speed values accepted by the calculators and the check-in engine.
// These mirror the coach_forms enum columns.
const (
	goalFatLoss     = "fat-loss"
	goalWeightGain  = "weight-gain"
	goalReverseDiet = "reverse-diet"
	goalMaintenance = "maintenance"

	speedVerySlow   = "very slow"
	speedSlow       = "slow"
	speedMedium     = "medium"
	speedFast       = "fast"
	speedAggressive = "aggressive"

	trendFatLoss    = "fat-loss"
	trendWeightGain = "weight-gain"
	trendNoChange   = "no-change"
)

// coachProfile is the normalized onboarding form payload the calculators work
// on. Numeric fields are already coerced; string fields carry the raw enum
// values (unknown keys fall back to documented defaults, they never error).
type coachProfile struct {
	Age             float64
	Gender          string
	WeightKg        float64
	HeightCm        float64
	BodyFatPct      float64
	LifestyleFactor string
	ExerciseFactor  string
	Goal            string
	GoalSpeed       string

	// Current-macro recalculation fields; CurrentTrend non-empty plus a
	// present WeightChangeKg routes the form to macrosFromCurrentIntake.
	CurrentTrend   string
	WeightChangeKg *float64
	ProteinIntake  float64
	CarbIntake     float64
	FatIntake      float64
}

/* ─── BMR / TDEE ─────────────────────────────────────────────────────── */

// lifestyleFactors and exerciseFactors are the two halves of the TDEE
// multiplier. They are summed, not multiplied: TDEE = BMR * (lifestyle + exercise).
var lifestyleFactors = map[string]float64{
	"sedentary": 0.6,
	"light":     0.7,
	"moderate":  0.8,
	"high":      0.9,
	"very high": 1.0,
}

var exerciseFactors = map[string]float64{
	"noexercise": 0.55,
	"light":      0.65,
	"moderate":   0.75,
	"heavy":      0.85,
	"very-heavy": 0.95,
}

// calcBMR computes basal metabolic rate via Mifflin-St Jeor.
func calcBMR(gender string, weightKg, heightCm, age float64) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*age
	if gender == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// calcTDEE applies the summed lifestyle and exercise factors to BMR.
// Unrecognized keys silently fall back to light (0.7) / light exercise (0.65),
// matching the calibrated behavior the coach has always had.
func calcTDEE(bmr float64, lifestyleFactor, exerciseFactor string) float64 {
	lf, ok := lifestyleFactors[lifestyleFactor]
	if !ok {
		lf = 0.7
	}
	ef, ok := exerciseFactors[exerciseFactor]
	if !ok {
		ef = 0.65
	}
	return bmr * (lf + ef)
}

/* ─── Shared pieces ──────────────────────────────────────────────────── */

// proteinMultiplier returns grams of protein per kg of lean body mass, keyed
// on age bracket and whether the plan runs a caloric deficit.
func proteinMultiplier(age float64, isDeficit bool) float64 {
	switch {
	case age <= 30:
		if isDeficit {
			return 2.3
		}
		return 1.9
	case age <= 40:
		if isDeficit {
			return 2.6
		}
		return 2.15
	case age <= 50:
		if isDeficit {
			return 2.95
		}
		return 2.45
	case age <= 60:
		if isDeficit {
			return 3.3
		}
		return 2.75
	default:
		if isDeficit {
			return 3.65
		}
		return 3.05
	}
}

// leanBodyMassKg estimates LBM from total weight and body-fat percentage.
func leanBodyMassKg(weightKg, bodyFatPct float64) float64 {
	return weightKg * (1 - bodyFatPct/100)
}

// splitRemaining distributes the kcal left after protein 60/40 between carbs
// and fat and derives fiber. The remainder is clamped at zero so an oversized
// protein allotment cannot produce negative grams here.
func splitRemaining(targetCalories, proteinGrams float64) (carbs, fat, fiber float64) {
	remaining := targetCalories - proteinGrams*kcalPerGramProtein
	if remaining < 0 {
		remaining = 0
	}
	carbsKcals := remaining * 0.6
	fatKcals := remaining - carbsKcals
	return carbsKcals / kcalPerGramCarb, fatKcals / kcalPerGramFat, fiberForCalories(targetCalories)
}

// weeklyLossTargetGrams maps a fat-loss goal speed to the target weekly loss
// in grams, taken as the midpoint of a per-speed body-weight-fraction range.
func weeklyLossTargetGrams(weightKg float64, goalSpeed string) float64 {
	switch goalSpeed {
	case speedSlow:
		return ((weightKg*0.0025 + weightKg*0.005) * 1000) / 2
	case speedMedium:
		return ((weightKg*0.005 + weightKg*0.01) * 1000) / 2
	case speedFast:
		return ((weightKg*0.01 + weightKg*0.015) * 1000) / 2
	case speedAggressive:
		return ((weightKg*0.015 + weightKg*0.023) * 1000) / 2
	}
	return 0
}

// dailyDeficitForLossTarget converts a weekly loss-mass target (grams) into a
// daily kcal deficit. Loss is partitioned: 71.3% comes from fat stores at 87%
// efficiency (9 kcal/g), 28.7% from lean mass at 30% (4 kcal/g).
func dailyDeficitForLossTarget(weeklyLossGrams float64) float64 {
	kcalFromFat := weeklyLossGrams * 0.713 * 0.87 * kcalPerGramFat
	kcalFromLBM := weeklyLossGrams * 0.287 * 0.3 * kcalPerGramCarb
	return (kcalFromFat + kcalFromLBM) / 7
}

// gainSurplusPct maps a gain/reverse goal speed to the surplus fraction over
// TDEE. Unknown speeds fall back to the medium surplus.
func gainSurplusPct(goalSpeed string) float64 {
	switch goalSpeed {
	case speedVerySlow:
		return 0.025
	case speedSlow:
		return 0.05
	case speedMedium:
		return 0.10
	case speedFast:
		return 0.15
	}
	return 0.10
}

/* ─── Goal calculators ───────────────────────────────────────────────── */

// calcFatLoss derives starting macros for a fat-loss plan: TDEE minus the
// speed-derived daily deficit, protein from LBM with the deficit multiplier.
func calcFatLoss(p coachProfile) macroSet {
	bmr := calcBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	tdee := calcTDEE(bmr, p.LifestyleFactor, p.ExerciseFactor)

	targetCalories := tdee - dailyDeficitForLossTarget(weeklyLossTargetGrams(p.WeightKg, p.GoalSpeed))

	proteinGrams := leanBodyMassKg(p.WeightKg, p.BodyFatPct) * proteinMultiplier(p.Age, true)
	carbs, fat, fiber := splitRemaining(targetCalories, proteinGrams)

	return macroSet{
		Calories: targetCalories,
		Protein:  proteinGrams,
		Carbs:    carbs,
		Fat:      fat,
		Fiber:    fiber,
	}.rounded()
}

// calcGainShared covers weight-gain and reverse-diet: TDEE plus a surplus
// percentage, protein with the non-deficit multiplier.
func calcGainShared(p coachProfile) macroSet {
	bmr := calcBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	tdee := calcTDEE(bmr, p.LifestyleFactor, p.ExerciseFactor)

	targetCalories := tdee * (1 + gainSurplusPct(p.GoalSpeed))

	proteinGrams := leanBodyMassKg(p.WeightKg, p.BodyFatPct) * proteinMultiplier(p.Age, false)
	carbs, fat, fiber := splitRemaining(targetCalories, proteinGrams)

	return macroSet{
		Calories: targetCalories,
		Protein:  proteinGrams,
		Carbs:    carbs,
		Fat:      fat,
		Fiber:    fiber,
	}.rounded()
}

// calcMaintenance targets TDEE directly with the non-deficit protein multiplier.
func calcMaintenance(p coachProfile) macroSet {
	bmr := calcBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	tdee := calcTDEE(bmr, p.LifestyleFactor, p.ExerciseFactor)

	proteinGrams := leanBodyMassKg(p.WeightKg, p.BodyFatPct) * proteinMultiplier(p.Age, false)
	carbs, fat, fiber := splitRemaining(tdee, proteinGrams)

	return macroSet{
		Calories: tdee,
		Protein:  proteinGrams,
		Carbs:    carbs,
		Fat:      fat,
		Fiber:    fiber,
	}.rounded()
}

/* ─── Dispatcher ─────────────────────────────────────────────────────── */

// macrosFromProfile routes the profile to its goal calculator. Unknown goals
// get the maintenance calculator rather than an error.
func macrosFromProfile(p coachProfile) macroSet {
	switch p.Goal {
	case goalFatLoss:
		return calcFatLoss(p)
	case goalWeightGain, goalReverseDiet:
		return calcGainShared(p)
	default:
		return calcMaintenance(p)
	}
}

// macroResultForProfile is the top-level entry used on form submit: profiles
// reporting their current intake and recent weight trend go through the
// current-macro recalculator, everyone else through the BMR pipeline.
// The returned notice is non-empty only on the recalculator path (both
// safety floors hit).
func macroResultForProfile(p coachProfile) (macroSet, string, bool) {
	if p.CurrentTrend != "" && p.WeightChangeKg != nil {
		return macrosFromCurrentIntake(p)
	}
	return macrosFromProfile(p), "", true
}
