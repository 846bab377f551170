package main

import (
	"testing"
	"time"
)

// checkInFixture builds a steady-state engine input: 150P/200C/60F targets
// (1940 kcal) on an 80 kg body, past the first check-in, full adherence.
func checkInFixture(goal, speed string, prevAvg, currAvg float64) checkInInput {
	started := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	checked := started.AddDate(0, 0, 7)
	return checkInInput{
		Goal:            goal,
		GoalSpeed:       speed,
		AdherenceWeekly: 100,
		WeightAverages:  weightAverages{WeeklyAverage: currAvg, PreviousWeeklyAverage: prevAvg},
		CurrMacros:      macroSet{Calories: 1940, Protein: 150, Carbs: 200, Fat: 60, Fiber: 29},
		WeightKg:        80,
		CoachStartedAt:  &started,
		LastCheckInAt:   &checked,
	}
}

func firstCheckInFixture(goal, speed string, prevAvg, currAvg float64) checkInInput {
	in := checkInFixture(goal, speed, prevAvg, currAvg)
	in.LastCheckInAt = nil
	return in
}

func TestCheckInAdherenceGate(t *testing.T) {
	for _, adh := range []float64{0, 89.9, 105.1, 200} {
		in := checkInFixture(goalFatLoss, speedMedium, 80, 79.6)
		in.AdherenceWeekly = adh
		got := runCheckInEngine(in)
		if got.ReasonCode != reasonAdherenceLow {
			t.Errorf("adherence %v: reason code %q, want %q", adh, got.ReasonCode, reasonAdherenceLow)
		}
		if got.NextMacros != in.CurrMacros {
			t.Errorf("adherence %v: macros changed: %+v", adh, got.NextMacros)
		}
		if got.UIMessage != adherenceLowUIMessage {
			t.Errorf("adherence %v: wrong ui message", adh)
		}
	}

	// 90 and 105 are inclusive bounds and pass through the gate.
	for _, adh := range []float64{90, 105} {
		in := checkInFixture(goalFatLoss, speedMedium, 80, 79.6)
		in.AdherenceWeekly = adh
		if got := runCheckInEngine(in); got.ReasonCode == reasonAdherenceLow {
			t.Errorf("adherence %v held at the gate", adh)
		}
	}
}

func TestCheckInGateOrder(t *testing.T) {
	// Bad adherence plus missing weight data: the adherence gate wins.
	in := checkInFixture(goalFatLoss, speedMedium, 0, 0)
	in.AdherenceWeekly = 50
	if got := runCheckInEngine(in); got.ReasonCode != reasonAdherenceLow {
		t.Errorf("reason code %q, want %q", got.ReasonCode, reasonAdherenceLow)
	}
}

func TestCheckInWeightDataHold(t *testing.T) {
	in := checkInFixture(goalFatLoss, speedMedium, 0, 79.6)
	got := runCheckInEngine(in)
	if got.ReasonCode != reasonWeightDataHold {
		t.Errorf("reason code %q, want %q", got.ReasonCode, reasonWeightDataHold)
	}
	if got.NextMacros != in.CurrMacros {
		t.Errorf("macros changed: %+v", got.NextMacros)
	}
}

func TestCheckInFatLossOnTarget(t *testing.T) {
	// -0.5%/week is inside the medium band's hold range.
	got := runCheckInEngine(checkInFixture(goalFatLoss, speedMedium, 80, 79.6))
	if got.ReasonCode != reasonFatLossOn {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonFatLossOn)
	}
	want := macroSet{Calories: 1940, Protein: 150, Carbs: 200, Fat: 60, Fiber: 29}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
	if got.UIMessage != coachNarratives[goalFatLoss][reasonFatLossOn] {
		t.Error("wrong ui message")
	}
}

func TestCheckInFatLossTooSlow(t *testing.T) {
	// -0.1%/week, below the medium band's 0.4 threshold: cut 7.5%.
	got := runCheckInEngine(checkInFixture(goalFatLoss, speedMedium, 80, 79.92))
	if got.ReasonCode != reasonFatLossUnder {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonFatLossUnder)
	}
	want := macroSet{Calories: 1844, Protein: 150, Carbs: 185, Fat: 56, Fiber: 28}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
}

func TestCheckInFatLossTooFast(t *testing.T) {
	// -1.3%/week lands in the medium band's first overshoot tier: add 7.5%.
	got := runCheckInEngine(checkInFixture(goalFatLoss, speedMedium, 80, 78.96))
	if got.ReasonCode != reasonFatLossOver {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonFatLossOver)
	}
	want := macroSet{Calories: 2045, Protein: 150, Carbs: 215, Fat: 65, Fiber: 31}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
}

func TestCheckInFatLossGainedFirstWeek(t *testing.T) {
	in := firstCheckInFixture(goalFatLoss, speedMedium, 80, 80.8)
	in.CurrMacros = macroSet{Calories: 2520, Protein: 150, Carbs: 300, Fat: 80, Fiber: 38}
	got := runCheckInEngine(in)
	if got.ReasonCode != reasonFatLossGainedFW {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonFatLossGainedFW)
	}
	// Medium target for 80.8 kg is 606 g/week ≈ 513 kcal/day, split 60/40.
	want := macroSet{Calories: 2005, Protein: 150, Carbs: 223, Fat: 57, Fiber: 30}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
}

func TestCheckInFatLossFloorOverridesReason(t *testing.T) {
	// Same first-week correction on lean targets drives fat under its floor;
	// the floor reason replaces the trend reason.
	got := runCheckInEngine(firstCheckInFixture(goalFatLoss, speedMedium, 80, 80.8))
	if got.ReasonCode != reasonMinFatCap {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonMinFatCap)
	}
	want := macroSet{Calories: 1425, Protein: 150, Carbs: 114, Fat: 41, Fiber: 21}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
	if got.UIMessage != coachNarratives[goalFatLoss][reasonMinFatCap] {
		t.Error("wrong ui message")
	}
}

func TestCheckInFatLossStallNonFirstWeek(t *testing.T) {
	got := runCheckInEngine(checkInFixture(goalFatLoss, speedMedium, 80, 80))
	if got.ReasonCode != reasonFatLossNoChgNFW {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonFatLossNoChgNFW)
	}
	// Flat -7.5% on carbs and fat.
	want := macroSet{Calories: 1844, Protein: 150, Carbs: 185, Fat: 56, Fiber: 28}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
}

func TestCheckInGainOnTarget(t *testing.T) {
	// +0.5%/week sits in the medium gain band's hold range.
	got := runCheckInEngine(checkInFixture(goalWeightGain, speedMedium, 80, 80.4))
	if got.ReasonCode != reasonGainOn {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonGainOn)
	}
	want := macroSet{Calories: 1940, Protein: 150, Carbs: 200, Fat: 60, Fiber: 29}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
}

func TestCheckInGainLostFirstWeek(t *testing.T) {
	// Lost 0.5 kg in week one: compensate ~500 kcal, then add the 10% medium
	// surplus on top of the compensated intake.
	got := runCheckInEngine(firstCheckInFixture(goalWeightGain, speedMedium, 80, 79.5))
	if got.ReasonCode != reasonGainLostFW {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonGainLostFW)
	}
	want := macroSet{Calories: 2685, Protein: 150, Carbs: 312, Fat: 93, Fiber: 40}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
}

func TestCheckInGainStallNonFirstWeek(t *testing.T) {
	got := runCheckInEngine(checkInFixture(goalReverseDiet, speedMedium, 80, 80))
	if got.ReasonCode != reasonGainNoChgNFW {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonGainNoChgNFW)
	}
	// Flat +4.5% on carbs and fat.
	want := macroSet{Calories: 2003, Protein: 150, Carbs: 209, Fat: 63, Fiber: 30}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
	if got.UIMessage != coachNarratives[goalReverseDiet][reasonGainNoChgNFW] {
		t.Error("wrong ui message")
	}
}

func TestCheckInGainStallVerySlowSpeed(t *testing.T) {
	// "very slow" has no row in the stall table; it takes the 7.5% default,
	// not medium's 4.5%.
	got := runCheckInEngine(checkInFixture(goalWeightGain, speedVerySlow, 80, 79.5))
	if got.ReasonCode != reasonGainLostNFW {
		t.Fatalf("reason code %q, want %q", got.ReasonCode, reasonGainLostNFW)
	}
	want := macroSet{Calories: 2045, Protein: 150, Carbs: 215, Fat: 65, Fiber: 31}
	if got.NextMacros != want {
		t.Errorf("macros = %+v, want %+v", got.NextMacros, want)
	}
}

func TestCheckInUnknownGoalHolds(t *testing.T) {
	got := runCheckInEngine(checkInFixture("recomp", speedMedium, 80, 79.6))
	if got.ReasonCode != reasonUnknown {
		t.Errorf("reason code %q, want %q", got.ReasonCode, reasonUnknown)
	}
	if got.NextMacros.Carbs != 200 || got.NextMacros.Fat != 60 {
		t.Errorf("macros changed: %+v", got.NextMacros)
	}
}

func TestCheckInCaloriesMatchGrams(t *testing.T) {
	// Whatever branch runs, the reported calories must equal the energy of
	// the reported grams and protein must survive untouched.
	inputs := []checkInInput{
		checkInFixture(goalFatLoss, speedSlow, 80, 79.9),
		checkInFixture(goalFatLoss, speedFast, 80, 78.0),
		firstCheckInFixture(goalFatLoss, speedMedium, 80, 80),
		checkInFixture(goalWeightGain, speedSlow, 80, 80.6),
		firstCheckInFixture(goalReverseDiet, speedFast, 80, 79.8),
	}
	for i, in := range inputs {
		got := runCheckInEngine(in)
		wantKcal := round(got.NextMacros.kcals())
		if got.NextMacros.Calories != wantKcal {
			t.Errorf("case %d: calories %v, want %v", i, got.NextMacros.Calories, wantKcal)
		}
		if got.NextMacros.Protein != in.CurrMacros.Protein {
			t.Errorf("case %d: protein changed to %v", i, got.NextMacros.Protein)
		}
	}
}

func TestCheckInBandEdges(t *testing.T) {
	b := fatLossBands[speedMedium]
	cases := []struct {
		absPct float64
		want   float64
	}{
		{0.0, -7.5},
		{0.39, -7.5},
		{0.4, 0},
		{1.15, 0},
		{1.16, 7.5},
		{1.5, 7.5},
		{2.0, 15},
		{2.5, 22.5},
		{9.9, 22.5},
	}
	for _, tc := range cases {
		if got := b.apply(tc.absPct); got != tc.want {
			t.Errorf("medium band apply(%v) = %v, want %v", tc.absPct, got, tc.want)
		}
	}

	// Unknown speeds resolve to the medium band.
	if bandForSpeed(gainBands, "unmapped").name != gainBands[speedMedium].name {
		t.Error("unknown speed did not fall back to medium")
	}
}

func TestComposeUIMessageFallback(t *testing.T) {
	if got := composeUIMessage(goalFatLoss, "no-such-code"); got != uiMessageFallback {
		t.Errorf("got %q, want fallback", got)
	}
	if got := composeUIMessage("recomp", reasonGainOn); got != uiMessageFallback {
		t.Errorf("got %q, want fallback", got)
	}
	if got := composeUIMessage("recomp", reasonAdherenceLow); got != adherenceLowUIMessage {
		t.Error("adherence message should be goal independent")
	}
}
