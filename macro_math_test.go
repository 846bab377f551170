package main

import (
	"math"
	"testing"
)

func TestRoundHalfTowardPositiveInfinity(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{2.4, 2},
		{2.5, 3},
		{2.6, 3},
		{-2.4, -2},
		{-2.5, -2}, // not -3: half rounds toward +inf
		{-2.6, -3},
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range cases {
		if got := round(tc.in); got != tc.want {
			t.Errorf("round(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNumOrZero(t *testing.T) {
	if got := numOrZero(math.NaN()); got != 0 {
		t.Errorf("numOrZero(NaN) = %v, want 0", got)
	}
	if got := numOrZero(math.Inf(-1)); got != 0 {
		t.Errorf("numOrZero(-Inf) = %v, want 0", got)
	}
	if got := numOrZero(12.5); got != 12.5 {
		t.Errorf("numOrZero(12.5) = %v, want 12.5", got)
	}
}

func TestMacroSetKcals(t *testing.T) {
	m := macroSet{Protein: 150, Carbs: 200, Fat: 60}
	want := 150*4.0 + 200*4.0 + 60*9.0
	if got := m.kcals(); got != want {
		t.Errorf("kcals() = %v, want %v", got, want)
	}
}

func TestFiberForCalories(t *testing.T) {
	if got := fiberForCalories(2000); got != 30 {
		t.Errorf("fiberForCalories(2000) = %v, want 30", got)
	}
	if got := fiberForCalories(0); got != 0 {
		t.Errorf("fiberForCalories(0) = %v, want 0", got)
	}
}

func TestKcalSplit6040(t *testing.T) {
	carbs, fat := kcalSplit6040(400)
	if carbs != 60 {
		t.Errorf("carbs = %v, want 60", carbs)
	}
	if fat != 400*0.40/9 {
		t.Errorf("fat = %v, want %v", fat, 400*0.40/9)
	}

	// Negative deltas clamp to zero.
	carbs, fat = kcalSplit6040(-300)
	if carbs != 0 || fat != 0 {
		t.Errorf("negative split = (%v, %v), want (0, 0)", carbs, fat)
	}
}

func TestKcalSplit8020(t *testing.T) {
	carbs, fat := kcalSplit8020(400)
	if carbs != 80 {
		t.Errorf("carbs = %v, want 80", carbs)
	}
	if fat != 400*0.20/9 {
		t.Errorf("fat = %v, want %v", fat, 400*0.20/9)
	}

	carbs, fat = kcalSplit8020(-100)
	if carbs != 0 || fat != 0 {
		t.Errorf("negative split = (%v, %v), want (0, 0)", carbs, fat)
	}
}

func TestMacroSetRounded(t *testing.T) {
	m := macroSet{Calories: 1999.5, Protein: 150.4, Carbs: 200.5, Fat: 59.6, Fiber: 29.9}
	got := m.rounded()
	want := macroSet{Calories: 2000, Protein: 150, Carbs: 201, Fat: 60, Fiber: 30}
	if got != want {
		t.Errorf("rounded() = %+v, want %+v", got, want)
	}
}
