package pacing

import (
	"slices"
	"testing"

	"github.com/etnz/pacing/date"
)

// testCohort returns a cohort active over a window wide enough to cover any
// timeline used in tests.
func testCohort(name string, weight Weight) Cohort {
	return Cohort{
		Name:   name,
		Window: date.Range{From: date.New(2020, 1, 1), To: date.New(2040, 12, 31)},
		Weight: weight,
	}
}

// contribution builds a contribution event.
func contribution(on string, amount string) CashFlowEvent {
	return CashFlowEvent{Date: date.MustParse(on), Amount: MustParseAmount(amount), Kind: Contribution}
}

// distributionEvent builds a distribution event; negative amounts are recalls.
func distributionEvent(on string, amount string, recyclable bool) CashFlowEvent {
	return CashFlowEvent{Date: date.MustParse(on), Amount: MustParseAmount(amount), Kind: Distribution, RecycleEligible: recyclable}
}

func hasFlag(flags []Flag, f Flag) bool { return slices.Contains(flags, f) }

// assertAmount fails the test when got differs from the decimal literal want.
func assertAmount(t *testing.T, label string, got Amount, want string) {
	t.Helper()
	if w := MustParseAmount(want); got != w {
		t.Errorf("%s = %s (%d), want %s", label, got, got, want)
	}
}
