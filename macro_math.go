package main

import "math"

// Energy densities used throughout the coach: protein and carbohydrate count
// 4 kcal per gram, fat counts 9 kcal per gram.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarb    = 4.0
	kcalPerGramFat     = 9.0
)

// numOrZero coerces a possibly-NaN/Inf value to a finite number, else 0.
// All engine inputs pass through this so malformed data degrades to zeros
// instead of propagating NaN through the macro math.
func numOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// round rounds half toward positive infinity (Math.round semantics), after
// coercing the input. math.Round rounds half away from zero, which differs
// for negative .5 values, so floor(x+0.5) is used instead.
func round(x float64) float64 {
	return math.Floor(numOrZero(x) + 0.5)
}

// macroSet holds one day's macro targets: kcal plus grams. Values are float64
// through the calculation pipeline; persisted snapshots carry rounded values.
type macroSet struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// kcals returns the energy implied by the gram fields (not the Calories field).
func (m macroSet) kcals() float64 {
	return m.Protein*kcalPerGramProtein + m.Carbs*kcalPerGramCarb + m.Fat*kcalPerGramFat
}

// rounded returns a copy with every field rounded to an integer value.
func (m macroSet) rounded() macroSet {
	return macroSet{
		Calories: round(m.Calories),
		Protein:  round(m.Protein),
		Carbs:    round(m.Carbs),
		Fat:      round(m.Fat),
		Fiber:    round(m.Fiber),
	}
}

// fiberForCalories derives the fiber target from a calorie target: 15 g per
// 1000 kcal.
func fiberForCalories(calories float64) float64 {
	return (calories / 1000) * 15
}

// kcalSplit6040 converts a kcal delta into carbohydrate and fat grams at a
// 60/40 energy ratio. Negative deltas are clamped to zero before splitting.
func kcalSplit6040(kcal float64) (carbsG, fatG float64) {
	k := math.Max(0, numOrZero(kcal))
	return (k * 0.60) / kcalPerGramCarb, (k * 0.40) / kcalPerGramFat
}

// kcalSplit8020 is the carb-heavy 80/20 variant of kcalSplit6040.
func kcalSplit8020(kcal float64) (carbsG, fatG float64) {
	k := math.Max(0, numOrZero(kcal))
	return (k * 0.80) / kcalPerGramCarb, (k * 0.20) / kcalPerGramFat
}
