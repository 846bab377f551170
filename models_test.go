package main

import (
	"encoding/json"
	"testing"
)

func TestDateOnlyJSON(t *testing.T) {
	var d DateOnly
	if err := json.Unmarshal([]byte(`"2026-08-29"`), &d); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2026-08-29"` {
		t.Errorf("marshaled %s", out)
	}

	if err := json.Unmarshal([]byte(`"29.08.2026"`), &d); err == nil {
		t.Error("accepted non-ISO date")
	}
}

func TestSnapshotIsInitial(t *testing.T) {
	code := "initial"
	other := "fatloss-on"
	cases := []struct {
		name string
		snap macroSnapshot
		want bool
	}{
		{"initial reason", macroSnapshot{Reason: "initial"}, true},
		{"goal changed", macroSnapshot{Reason: "goal-changed"}, true},
		{"initial code", macroSnapshot{Reason: "manual edit", ReasonCode: &code}, true},
		{"check-in", macroSnapshot{Reason: "Fat loss band", ReasonCode: &other}, false},
		{"no code", macroSnapshot{Reason: "weekly check-in"}, false},
	}
	for _, tc := range cases {
		if got := tc.snap.isInitial(); got != tc.want {
			t.Errorf("%s: isInitial = %v, want %v", tc.name, got, tc.want)
		}
	}
}
