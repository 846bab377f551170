package main

import (
	"fmt"
	"math"
	"time"
)

/* ─── Inputs / outputs ───────────────────────────────────────────────── */

// weightAverages is the pair of weekly-average body weights (kg) the engine
// derives the trend from.
type weightAverages struct {
	WeeklyAverage         float64 `json:"weeklyAverage"`
	PreviousWeeklyAverage float64 `json:"previousWeeklyAverage"`
}

// checkInInput is the full context for one weekly check-in. The engine is a
// pure decision function over this struct; persisting the outcome is the
// caller's job.
type checkInInput struct {
	Goal            string
	GoalSpeed       string
	AdherenceWeekly float64
	WeightAverages  weightAverages
	CurrMacros      macroSet
	WeightKg        float64 // form fallback weight for the g/kg floor rules
	CoachStartedAt  *time.Time
	LastCheckInAt   *time.Time
}

// isFirstCheckIn: the coaching cycle has started but no check-in has been
// recorded yet.
func (in checkInInput) isFirstCheckIn() bool {
	return in.CoachStartedAt != nil && in.LastCheckInAt == nil
}

// checkInResult is what one check-in decision produces. Reason is the
// internal rationale, ReasonCode the machine-readable tag, UIMessage the
// localized coach narrative.
type checkInResult struct {
	NextMacros macroSet
	Message    string
	Reason     string
	ReasonCode string
	UIMessage  string
}

/* ─── Adjustment bands ───────────────────────────────────────────────── */

// bandTier is one inclusive upper bound of observed |trend %| and the macro
// adjustment percentage it maps to.
type bandTier struct {
	maxPct float64
	adj    float64
}

// adjustmentBand is a goal-speed-specific piecewise table over |trend %|.
// Below underPct the adjustment is underAdj; past the last tier it is capAdj.
// The values are calibrated, not illustrative.
type adjustmentBand struct {
	name     string
	underPct float64
	underAdj float64
	tiers    []bandTier
	capAdj   float64
}

// apply resolves the adjustment percentage for an observed |trend %|.
func (b adjustmentBand) apply(absPct float64) float64 {
	if absPct < b.underPct {
		return b.underAdj
	}
	for _, t := range b.tiers {
		if absPct <= t.maxPct {
			return t.adj
		}
	}
	return b.capAdj
}

var fatLossBands = map[string]adjustmentBand{
	speedSlow: {
		name: "0.2-0.5", underPct: 0.2, underAdj: -5,
		tiers:  []bandTier{{0.65, 0}, {1.0, 5}, {1.5, 10}, {2.0, 20}},
		capAdj: 20,
	},
	speedMedium: {
		name: "0.5-1.0", underPct: 0.4, underAdj: -7.5,
		tiers:  []bandTier{{1.15, 0}, {1.5, 7.5}, {2.0, 15}, {2.5, 22.5}},
		capAdj: 22.5,
	},
	speedFast: {
		name: "1.0-1.5", underPct: 0.9, underAdj: -10,
		tiers:  []bandTier{{1.65, 0}, {2.0, 10}, {2.5, 20}, {3.0, 30}},
		capAdj: 30,
	},
}

var gainBands = map[string]adjustmentBand{
	speedSlow: {
		name: "≤0.25", underPct: 0.15, underAdj: 2,
		tiers:  []bandTier{{0.35, 0}, {0.50, -2.5}, {1.0, -5}, {1.5, -7.5}},
		capAdj: -7.5,
	},
	speedMedium: {
		name: "0.25-0.5", underPct: 0.15, underAdj: 4.5,
		tiers:  []bandTier{{0.60, 0}, {1.0, -4.5}, {1.5, -9}, {2.0, -13.5}},
		capAdj: -13.5,
	},
	speedFast: {
		name: "0.5-0.8", underPct: 0.40, underAdj: 7.5,
		tiers:  []bandTier{{0.90, 0}, {1.30, -7.5}, {1.80, -15}, {2.30, -22.5}},
		capAdj: -22.5,
	},
}

// bandForSpeed picks the band for a goal speed; unknown speeds get the
// medium band.
func bandForSpeed(bands map[string]adjustmentBand, goalSpeed string) adjustmentBand {
	if b, ok := bands[goalSpeed]; ok {
		return b
	}
	return bands[speedMedium]
}

// applyBandAdjustment scales carbs and fat by the band-resolved percentage
// and describes the move ("No change", "+7.5%", "-5%").
func applyBandAdjustment(b adjustmentBand, absPct float64, curr macroSet) (nextCarbs, nextFat, adj float64, desc string) {
	adj = b.apply(absPct)
	factor := 1 + adj/100
	nextCarbs = round(curr.Carbs * factor)
	nextFat = round(curr.Fat * factor)
	desc = "No change"
	if adj != 0 {
		desc = fmt.Sprintf("%+g%%", adj)
	}
	return nextCarbs, nextFat, adj, desc
}

/* ─── Stall / first-check-in tables ──────────────────────────────────── */

// fatLossStallAdj is the flat reduction applied when a fat-loss user gained
// or stalled past the first check-in.
func fatLossStallAdj(goalSpeed string) float64 {
	switch goalSpeed {
	case speedSlow:
		return -5
	case speedFast:
		return -10
	}
	return -7.5
}

// gainStallAdj is the flat increase applied when a gain/reverse user lost or
// stalled past the first check-in. Unmapped speeds take the fast value.
func gainStallAdj(goalSpeed string) float64 {
	switch goalSpeed {
	case speedSlow:
		return 2
	case speedMedium:
		return 4.5
	}
	return 7.5
}

// checkinSurplusPct is the engine's own surplus table for gain/reverse
// first-check-in corrections. Narrower than the onboarding table: no
// very-slow tier, unknown speeds take the medium surplus.
func checkinSurplusPct(goalSpeed string) float64 {
	switch goalSpeed {
	case speedSlow:
		return 0.05
	case speedFast:
		return 0.15
	}
	return 0.10
}

/* ─── Engine ─────────────────────────────────────────────────────────── */

// trendPct returns the weight change as a percentage of the previous weekly
// average. Invalid previous averages yield 0; the caller gates on them
// separately.
func trendPct(currW, prevW float64) float64 {
	curr := numOrZero(currW)
	prev := numOrZero(prevW)
	if prev <= 0 {
		return 0
	}
	return ((curr - prev) / prev) * 100
}

// holdResult builds an unchanged-macros result for the early-return gates.
func holdResult(curr macroSet, message, reason, reasonCode, uiMessage string) checkInResult {
	return checkInResult{
		NextMacros: curr,
		Message:    message,
		Reason:     reason,
		ReasonCode: reasonCode,
		UIMessage:  uiMessage,
	}
}

// runCheckInEngine is the weekly check-in decision function: given the prior
// targets, goal, adherence, and the observed weight trend, it decides the
// next carb/fat targets, recomputes calories and fiber, and tags the outcome
// with a reason code and coach narrative.
//
// Protein is never changed here, it is carried over from CurrMacros.
// The function never fails on malformed numeric input; everything is coerced.
func runCheckInEngine(in checkInInput) checkInResult {
	// Prefer the weekly-average weight for the g/kg floor rules; fall back
	// to the profile weight when no averages exist yet.
	weightForRules := numOrZero(in.WeightAverages.WeeklyAverage)
	if weightForRules <= 0 {
		weightForRules = numOrZero(in.WeightKg)
	}

	adh := numOrZero(in.AdherenceWeekly)
	wNow := numOrZero(in.WeightAverages.WeeklyAverage)
	wPrev := numOrZero(in.WeightAverages.PreviousWeeklyAverage)

	// 1) Adherence gate, absolute priority over everything else.
	if adh < 90 || adh > 105 {
		return holdResult(in.CurrMacros,
			"Haftalık uyum %90’ın altında ya da %105’in üzerinde — makrolarda değişiklik yok.",
			"adherence<90||>105",
			reasonAdherenceLow,
			composeUIMessage(in.Goal, reasonAdherenceLow))
	}

	// 2) Weight trend, gated on a usable previous average.
	pct := trendPct(wNow, wPrev)
	absPct := math.Abs(pct)

	if wPrev <= 0 {
		return holdResult(in.CurrMacros,
			"Kilo trendi için yeterli veri yok (haftalık ortalamalar eksik). Bu hafta hedefleri koruyalım.",
			reasonWeightDataHold,
			reasonWeightDataHold,
			"Kilo trendi verisi sınırlı, makroları koruyoruz.")
	}

	next := in.CurrMacros
	reason := ""
	reasonCode := reasonUnknown
	firstCheckIn := in.isFirstCheckIn()

	// 3) Goal branch.
	switch in.Goal {
	case goalFatLoss:
		switch {
		case pct < 0: // losing, as intended
			band := bandForSpeed(fatLossBands, in.GoalSpeed)
			nextCarbs, nextFat, adj, desc := applyBandAdjustment(band, absPct, in.CurrMacros)
			next.Carbs = nextCarbs
			next.Fat = nextFat
			reason = fmt.Sprintf("Fat loss band %s → %s", band.name, desc)
			switch {
			case adj > 0:
				reasonCode = reasonFatLossOver
			case adj < 0:
				reasonCode = reasonFatLossUnder
			default:
				reasonCode = reasonFatLossOn
			}

		case pct > 0: // gained, unexpected for a deficit
			if firstCheckIn {
				w := math.Max(0, weightForRules)
				dailyDeficit := dailyDeficitForLossTarget(weeklyLossTargetGrams(w, in.GoalSpeed))
				carbsG, fatG := kcalSplit6040(dailyDeficit)
				next.Carbs = round(in.CurrMacros.Carbs - carbsG)
				next.Fat = round(in.CurrMacros.Fat - fatG)
				reason = fmt.Sprintf(
					"İlk check-in — kilo artışı. Hedef hız '%s' için ≈%g kcal/gün kesinti (−%gg carb, −%gg fat).",
					in.GoalSpeed, round(dailyDeficit), round(carbsG), round(fatG))
				reasonCode = reasonFatLossGainedFW
			} else {
				adj := fatLossStallAdj(in.GoalSpeed)
				factor := 1 + adj/100
				next.Carbs = round(in.CurrMacros.Carbs * factor)
				next.Fat = round(in.CurrMacros.Fat * factor)
				reason = fmt.Sprintf("Ağırlık arttı — ilk check-in değil, %g%% düşüş uygulandı.", adj)
				reasonCode = reasonFatLossGainedNFW
			}

		default: // no change
			if firstCheckIn {
				w := math.Max(0, weightForRules)
				dailyDeficit := dailyDeficitForLossTarget(weeklyLossTargetGrams(w, in.GoalSpeed))
				carbsG, fatG := kcalSplit6040(dailyDeficit)
				next.Carbs = round(in.CurrMacros.Carbs - carbsG)
				next.Fat = round(in.CurrMacros.Fat - fatG)
				reason = fmt.Sprintf(
					"İlk check-in — kilo değişimi yok: hedef hız '%s' için ≈%g kcal/gün kesinti (−%gg carb, −%gg fat).",
					in.GoalSpeed, round(dailyDeficit), round(carbsG), round(fatG))
				reasonCode = reasonFatLossNoChgFW
			} else {
				adj := fatLossStallAdj(in.GoalSpeed)
				factor := 1 + adj/100
				next.Carbs = round(in.CurrMacros.Carbs * factor)
				next.Fat = round(in.CurrMacros.Fat * factor)
				reason = fmt.Sprintf("Ağırlık değişmedi — hedefe yaklaşmak için %g%% düşüş uygulandı.", adj)
				reasonCode = reasonFatLossNoChgNFW
			}
		}

		// Floors only constrain downward moves, so only the fat-loss branch
		// enforces them. A hit floor overrides the trend-derived reason.
		var flags minCapFlags
		next, flags = enforceMinimums(next, weightForRules)
		switch {
		case flags.FatCarb:
			reasonCode = reasonMinFatCarbCap
			reason = "Alt sınırlar (yağ 0.5 g/kg, karb 1 g/kg) ulaşıldı — daha fazla düşürmek sağlıksız."
		case flags.Fat:
			reasonCode = reasonMinFatCap
			reason = "Yağ alt sınırı (0.5 g/kg) ulaşıldı — yağı daha fazla düşürmek sağlıksız."
		case flags.Carb:
			reasonCode = reasonMinCarbCap
			reason = "Karb alt sınırı (1.0 g/kg) ulaşıldı — karbı daha fazla düşürmek sağlıksız."
		}

	case goalWeightGain, goalReverseDiet:
		switch {
		case pct > 0: // gaining, as intended
			band := bandForSpeed(gainBands, in.GoalSpeed)
			nextCarbs, nextFat, adj, desc := applyBandAdjustment(band, absPct, in.CurrMacros)
			next.Carbs = nextCarbs
			next.Fat = nextFat
			reason = fmt.Sprintf("Gain band %s → %s", band.name, desc)
			switch {
			case adj < 0:
				reasonCode = reasonGainOver
			case adj > 0:
				reasonCode = reasonGainUnder
			default:
				reasonCode = reasonGainOn
			}

		case pct < 0: // lost, unexpected for a surplus
			if firstCheckIn {
				// Compensate the lost mass in kcal, then apply the speed
				// surplus on top of the compensated intake.
				lostKg := numOrZero(wPrev - wNow)
				lostKcal := lostKg * 1000
				surplusPct := checkinSurplusPct(in.GoalSpeed)
				currCalories := in.CurrMacros.kcals()
				targetCalories := (currCalories + lostKcal) * (1 + surplusPct)
				deltaKcal := targetCalories - currCalories
				carbsG, fatG := kcalSplit6040(deltaKcal)
				next.Carbs = round(in.CurrMacros.Carbs + carbsG)
				next.Fat = round(in.CurrMacros.Fat + fatG)
				reason = fmt.Sprintf(
					"İlk check-in — kilo kaybı: kaybedilen ≈%g kcal telafi + '%s' hedefi için %%%g artış → ≈%g kcal artış (+%gg carb, +%gg fat).",
					round(lostKcal), in.GoalSpeed, surplusPct*100, round(deltaKcal), round(carbsG), round(fatG))
				reasonCode = reasonGainLostFW
			} else {
				adj := gainStallAdj(in.GoalSpeed)
				factor := 1 + adj/100
				next.Carbs = round(in.CurrMacros.Carbs * factor)
				next.Fat = round(in.CurrMacros.Fat * factor)
				reason = fmt.Sprintf("Ağırlık azaldı — ilk check-in değil, %g%% artış uygulandı.", adj)
				reasonCode = reasonGainLostNFW
			}

		default: // no change
			if firstCheckIn {
				surplusPct := checkinSurplusPct(in.GoalSpeed)
				currCalories := in.CurrMacros.kcals()
				deltaKcal := currCalories * surplusPct
				carbsG, fatG := kcalSplit6040(deltaKcal)
				next.Carbs = round(in.CurrMacros.Carbs + carbsG)
				next.Fat = round(in.CurrMacros.Fat + fatG)
				reason = fmt.Sprintf(
					"İlk check-in — kilo değişimi yok: hedef hız '%s' için ≈%g kcal/gün artış (+%gg carb, +%gg fat).",
					in.GoalSpeed, round(deltaKcal), round(carbsG), round(fatG))
				reasonCode = reasonGainNoChgFW
			} else {
				adj := gainStallAdj(in.GoalSpeed)
				factor := 1 + adj/100
				next.Carbs = round(in.CurrMacros.Carbs * factor)
				next.Fat = round(in.CurrMacros.Fat * factor)
				reason = fmt.Sprintf("Ağırlık değişmedi — ilk check-in değil, %g%% artış uygulandı.", adj)
				reasonCode = reasonGainNoChgNFW
			}
		}

	default:
		return holdResult(in.CurrMacros,
			"Bilinmeyen hedef — değişiklik yok.",
			"unknown-goal",
			reasonUnknown,
			"Bilinmeyen hedef — değişiklik yok.")
	}

	// 4) Finalize: recompute calories from the adjusted grams (protein
	// untouched), re-derive fiber, round everything.
	calories := next.kcals()
	final := macroSet{
		Calories: round(calories),
		Protein:  round(in.CurrMacros.Protein),
		Carbs:    round(next.Carbs),
		Fat:      round(next.Fat),
		Fiber:    round(fiberForCalories(calories)),
	}

	return checkInResult{
		NextMacros: final,
		Message:    reason,
		Reason:     reason,
		ReasonCode: reasonCode,
		UIMessage:  composeUIMessage(in.Goal, reasonCode),
	}
}
