package main

import "math"

// minFloorFatPerKg and minFloorCarbPerKg are the physiological floors in
// grams per kg of body weight. Dropping below either is treated as unsafe
// regardless of what the trend logic asked for.
const (
	minFloorFatPerKg  = 0.5
	minFloorCarbPerKg = 1.0
)

// minCapFlags reports which floors the enforcer hit. Callers use these to
// replace the trend-derived reason code with a floor-reached one.
type minCapFlags struct {
	Fat     bool // fat pinned at its floor
	Carb    bool // carbs pinned at their floor
	FatCarb bool // both pinned, no further reduction is possible
}

// minimumFloors returns the fat and carb floors for a body weight.
// Weight is coerced and clamped at zero, so invalid input yields zero floors.
func minimumFloors(weightKg float64) (minFat, minCarb float64) {
	w := math.Max(0, numOrZero(weightKg))
	return math.Ceil(minFloorFatPerKg * w), math.Ceil(minFloorCarbPerKg * w)
}

// enforceMinimums clamps fat and carb grams to their per-kg floors,
// re-balancing the removed energy into the other macro. Order matters: the
// fat floor is applied first, then the carb floor is evaluated against the
// already-adjusted values. The cascade can leave fractional grams; final
// rounding is the caller's job.
//
// The combined flag also fires when both values merely land on their floors,
// even if only one branch (or neither) executed.
func enforceMinimums(next macroSet, weightKg float64) (macroSet, minCapFlags) {
	minFat, minCarb := minimumFloors(weightKg)

	var flags minCapFlags

	if next.Fat < minFat {
		shortageFatG := minFat - next.Fat
		carbsToCutG := (shortageFatG * kcalPerGramFat) / kcalPerGramCarb
		next.Fat = minFat
		next.Carbs = math.Max(minCarb, next.Carbs-carbsToCutG)
		flags.Fat = true
	}

	if next.Carbs < minCarb {
		shortageCarbG := minCarb - next.Carbs
		fatToCutG := (shortageCarbG * kcalPerGramCarb) / kcalPerGramFat
		next.Carbs = minCarb
		next.Fat = math.Max(minFat, next.Fat-fatToCutG)
		flags.Carb = true
	}

	if next.Fat == minFat && next.Carbs == minCarb {
		flags.Fat = true
		flags.Carb = true
	}
	flags.FatCarb = flags.Fat && flags.Carb

	return next, flags
}
