package pacing

import (
	"encoding/json"
	"testing"
)

func TestWeightInUnitInterval(t *testing.T) {
	testCases := []struct {
		w    Weight
		want bool
	}{
		{W(0), true},
		{W(0.25), true},
		{W(1), true},
		{W(1.0001), false},
		{W(-0.1), false},
	}
	for _, tc := range testCases {
		if got := tc.w.InUnitInterval(); got != tc.want {
			t.Errorf("InUnitInterval(%s) = %v, want %v", tc.w, got, tc.want)
		}
	}
}

func TestWeightOf(t *testing.T) {
	// Of is exact: no rounding happens until the caller decides to.
	got := W(0.25).Of(1001)
	if got.String() != "250.25" {
		t.Errorf("0.25.Of(1001) = %s, want 250.25", got)
	}
}

func TestWeightOver(t *testing.T) {
	// Renormalizing 0.8 against a total of 1.6 gives 0.5 exactly.
	got := W(0.8).Over(W(1.6))
	if !got.Equal(W(0.5)) {
		t.Errorf("0.8.Over(1.6) = %s, want 0.5", got)
	}
}

func TestParseWeight(t *testing.T) {
	w, err := ParseWeight("0.3333334")
	if err != nil {
		t.Fatalf("ParseWeight() error = %v", err)
	}
	if w.String() != "0.3333334" {
		t.Errorf("ParseWeight(0.3333334) = %s", w)
	}
	if _, err := ParseWeight("a third"); err == nil {
		t.Error("ParseWeight() expected an error on a non-decimal string")
	}
}

func TestWeightJSON(t *testing.T) {
	b, err := json.Marshal(W(0.55))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != "0.55" {
		t.Errorf("Marshal(0.55) = %s, want 0.55", b)
	}
	var back Weight
	if err := json.Unmarshal([]byte(`"0.55"`), &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(W(0.55)) {
		t.Errorf("Unmarshal(0.55) = %s, want 0.55", back)
	}
}
