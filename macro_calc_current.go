package main

import "math"

// kcalPerKgBodyweight is the flat energy-equivalent used when converting a
// reported weekly weight change into kcal. Deliberately coarser than the
// 713/287 partition the BMR calculator uses; the two paths evolved with
// their own constants and are kept that way.
const kcalPerKgBodyweight = 846.0

// safetyFloorNotice is surfaced to the caller when a user's entered intake is
// so low that both safety floors had to be applied.
const safetyFloorNotice = "Girdiğiniz makrolar analiz edildi ve kilo vermek için çok düşük olduğu tespit edildi. Sağlığınızı korumak adına yağ ve karbonhidrat değerleri asgari miktarlara çıkarıldı. Bu seviyelerin altına inmek sağlığınız için risklidir. Bu hafta kilonuz değişmezse veya artarsa endişelenmeyin, bu normaldir. Haftaya checkinde gerekli bilgilendirme yapılıp gerekli strateji önerilecektir."

// weeklyChangeTargetGrams returns the weekly weight-change target in grams
// for the current-intake recalculator. Gain goals use a smaller range table
// than fat loss; unknown speeds target zero change.
func weeklyChangeTargetGrams(weightKg float64, goal, goalSpeed string) float64 {
	if goal == goalWeightGain || goal == goalReverseDiet {
		switch goalSpeed {
		case speedSlow:
			return ((weightKg*0 + weightKg*0.0025) * 1000) / 2
		case speedMedium:
			return ((weightKg*0.0025 + weightKg*0.005) * 1000) / 2
		case speedFast:
			return ((weightKg*0.005 + weightKg*0.008) * 1000) / 2
		}
		return 0
	}
	switch goalSpeed {
	case speedSlow:
		return ((weightKg*0.0025 + weightKg*0.005) * 1000) / 2
	case speedMedium:
		return ((weightKg*0.005 + weightKg*0.01) * 1000) / 2
	case speedFast:
		return ((weightKg*0.01 + weightKg*0.015) * 1000) / 2
	}
	return 0
}

// macrosFromCurrentIntake recalculates targets from the macros the user is
// already eating plus their self-reported recent weight trend, instead of
// from BMR. Used during onboarding for users with an existing plan, and on
// goal edits.
//
// The returned notice is non-empty when both safety floors were hit, meaning
// the entered intake was unhealthily low and was raised. ok is false when the
// profile is missing the trend fields this path requires.
func macrosFromCurrentIntake(p coachProfile) (macroSet, string, bool) {
	if p.WeightChangeKg == nil || p.GoalSpeed == "" || p.CurrentTrend == "" || p.Goal == "" {
		return macroSet{}, "", false
	}
	weightKg := numOrZero(p.WeightKg)
	weightChangeKg := numOrZero(*p.WeightChangeKg)

	targetGrams := weeklyChangeTargetGrams(weightKg, p.Goal, p.GoalSpeed)
	targetKcal := (targetGrams / 1000) * kcalPerKgBodyweight
	actualKcal := weightChangeKg * kcalPerKgBodyweight

	currentCalories := p.ProteinIntake*kcalPerGramProtein +
		p.CarbIntake*kcalPerGramCarb +
		p.FatIntake*kcalPerGramFat

	// Sign logic: moving the wrong way relative to the goal compounds the
	// target with the observed change; moving the right way nets it out;
	// no reported change (or an unrecognized trend) applies the target alone.
	var adjustment, newCalories float64
	switch p.Goal {
	case goalFatLoss:
		switch p.CurrentTrend {
		case trendWeightGain:
			adjustment = targetKcal + actualKcal
		case trendFatLoss:
			adjustment = targetKcal - actualKcal
		default:
			adjustment = targetKcal
		}
		newCalories = currentCalories - adjustment
	case goalWeightGain, goalReverseDiet:
		switch p.CurrentTrend {
		case trendWeightGain:
			adjustment = targetKcal - actualKcal
		case trendFatLoss:
			adjustment = targetKcal + actualKcal
		default:
			adjustment = targetKcal
		}
		newCalories = currentCalories + adjustment
	default:
		return macroSet{}, "", false
	}

	newCalories = math.Max(newCalories, 0)

	// Protein is always re-derived from body composition, never carried over
	// from current intake.
	proteinGrams := leanBodyMassKg(weightKg, p.BodyFatPct) * proteinMultiplier(p.Age, p.Goal == goalFatLoss)

	// Unlike the BMR pipeline, the remainder is not clamped here: an
	// oversized protein allotment yields negative carb/fat grams that the
	// floor enforcement below pulls back up.
	remainingKcals := newCalories - proteinGrams*kcalPerGramProtein
	carbs := (remainingKcals * 0.6) / kcalPerGramCarb
	fat := (remainingKcals * 0.4) / kcalPerGramFat

	result := macroSet{
		Calories: newCalories,
		Protein:  proteinGrams,
		Carbs:    carbs,
		Fat:      fat,
		Fiber:    fiberForCalories(newCalories),
	}.rounded()

	result, flags := enforceMinimums(result, weightKg)

	notice := ""
	if flags.FatCarb {
		notice = safetyFloorNotice
	}
	return result, notice, true
}
