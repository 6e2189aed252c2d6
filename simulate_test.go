package pacing

import (
	"bytes"
	"errors"
	"testing"

	"github.com/etnz/pacing/date"
)

// simFund returns fund parameters with no reserve, suitable as a base for
// simulation tests.
func simFund(commitment string, windowMonths int) FundParameters {
	return FundParameters{
		Commitment:         MustParseAmount(commitment),
		PacingWindowMonths: windowMonths,
		Frequency:          date.Monthly,
		RebalanceFrequency: date.Monthly,
		VintageYear:        2025,
	}
}

func TestSimulateSimpleMonthlyPacing(t *testing.T) {
	// $24M over 24 months paces at $1M/month. A $2M first contribution funds
	// the first month's target in full; the excess stays in fund cash.
	in := &Input{
		Fund:     simFund("24000000", 24),
		Timeline: Timeline{Start: date.MustParse("2025-01-01"), End: date.MustParse("2026-12-31")},
		Flows:    Flows{Contributions: []CashFlowEvent{contribution("2025-01-15", "2000000")}},
		Cohorts:  []Cohort{testCohort("core", W(1))},
	}

	res, err := Simulate(in)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if len(res.Periods) != 24 {
		t.Fatalf("got %d periods, want 24", len(res.Periods))
	}

	first := res.Periods[0]
	assertAmount(t, "pacingTarget", first.PacingTarget, "1000000")
	assertAmount(t, "allocable", first.Allocable, "1000000")
	assertAmount(t, "core allocation", first.Allocations["core"], "1000000")
	assertAmount(t, "cashBalance", first.CashBalance, "1000000")
	if len(first.Flags) != 0 {
		t.Errorf("period 0 flags = %v, want none", first.Flags)
	}
	if first.ReserveUnderfunded {
		t.Error("period 0 reserve underfunded with a zero reserve")
	}

	// Later periods receive no cash: nothing is allocable.
	second := res.Periods[1]
	assertAmount(t, "period 1 allocable", second.Allocable, "0")
	assertAmount(t, "period 1 core allocation", second.Allocations["core"], "0")

	assertAmount(t, "summary core total", res.Summary.AllocationsByCohort["core"], "1000000")
	if len(res.Summary.Violations) != 0 {
		t.Errorf("violations = %v, want none", res.Summary.Violations)
	}
	if res.Summary.ReserveOverTime.Len() != 24 {
		t.Errorf("reserve series has %d samples, want 24", res.Summary.ReserveOverTime.Len())
	}
}

func TestSimulateReservePrecedence(t *testing.T) {
	// $50M fund, 25% reserve, $5M floor: effective buffer $12.5M. An $8M
	// contribution cannot fund both the buffer and a $5M target.
	scenario := func(semantics ReserveSemantics) *Input {
		fund := simFund("50000000", 10)
		fund.TargetReservePct = W(0.25)
		fund.MinCashBuffer = MustParseAmount("5000000")
		fund.ReserveSemantics = semantics
		return &Input{
			Fund:     fund,
			Timeline: Timeline{Start: date.MustParse("2025-01-01"), End: date.MustParse("2025-01-31")},
			Flows:    Flows{Contributions: []CashFlowEvent{contribution("2025-01-10", "8000000")}},
			Cohorts:  []Cohort{testCohort("core", W(1))},
		}
	}

	t.Run("capacity deploys and flags", func(t *testing.T) {
		res, err := Simulate(scenario(ReserveCapacity))
		if err != nil {
			t.Fatalf("Simulate() error = %v", err)
		}
		p := res.Periods[0]
		assertAmount(t, "reserveBalance", p.ReserveBalance, "12500000")
		assertAmount(t, "allocable", p.Allocable, "5000000")
		assertAmount(t, "core allocation", p.Allocations["core"], "5000000")
		assertAmount(t, "cashBalance", p.CashBalance, "3000000")
		if !p.ReserveUnderfunded {
			t.Error("ReserveUnderfunded = false, want true")
		}
		if !hasFlag(p.Flags, FlagReserveFloorOverridePacing) {
			t.Errorf("Flags = %v, want %s", p.Flags, FlagReserveFloorOverridePacing)
		}
	})

	t.Run("net of buffer withholds", func(t *testing.T) {
		res, err := Simulate(scenario(ReserveNetOfBuffer))
		if err != nil {
			t.Fatalf("Simulate() error = %v", err)
		}
		p := res.Periods[0]
		assertAmount(t, "allocable", p.Allocable, "0")
		assertAmount(t, "core allocation", p.Allocations["core"], "0")
		assertAmount(t, "cashBalance", p.CashBalance, "8000000")
		if !p.ReserveUnderfunded {
			t.Error("ReserveUnderfunded = false, want true")
		}
		if !hasFlag(p.Flags, FlagReserveFloorOverridePacing) {
			t.Errorf("Flags = %v, want %s", p.Flags, FlagReserveFloorOverridePacing)
		}
	})
}

func TestSimulateCapitalRecall(t *testing.T) {
	in := &Input{
		Fund:     simFund("24000000", 24),
		Timeline: Timeline{Start: date.MustParse("2025-01-01"), End: date.MustParse("2025-02-28")},
		Flows: Flows{
			Contributions: []CashFlowEvent{contribution("2025-01-10", "2000000")},
			Distributions: []CashFlowEvent{distributionEvent("2025-01-20", "-500000", false)},
		},
		Cohorts: []Cohort{testCohort("core", W(1))},
	}

	res, err := Simulate(in)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	p := res.Periods[0]
	if !hasFlag(p.Flags, FlagCapitalRecallProcessed) {
		t.Errorf("Flags = %v, want %s", p.Flags, FlagCapitalRecallProcessed)
	}
	// The recall reduces net cash, not the target.
	assertAmount(t, "netCash", p.NetCash, "1500000")
	assertAmount(t, "pacingTarget", p.PacingTarget, "1000000")
	assertAmount(t, "allocable", p.Allocable, "1000000")
	assertAmount(t, "cashBalance", p.CashBalance, "500000")
	assertAmount(t, "cumulativeRecalled", p.CumulativeRecalled, "500000")

	last := res.Periods[1]
	assertAmount(t, "final cumulativeRecalled", last.CumulativeRecalled, "500000")
	assertAmount(t, "final cumulativeAllocated", last.CumulativeAllocated, "1000000")
}

func TestSimulateRecycling(t *testing.T) {
	scenario := func(cap Weight) *Input {
		return &Input{
			Fund:     simFund("24000000", 24),
			Timeline: Timeline{Start: date.MustParse("2025-01-01"), End: date.MustParse("2025-01-31")},
			Flows: Flows{
				Contributions: []CashFlowEvent{contribution("2025-01-05", "800000")},
				Distributions: []CashFlowEvent{distributionEvent("2025-01-20", "500000", true)},
			},
			Constraints: Constraints{RecyclingCapPct: cap},
			Cohorts:     []Cohort{testCohort("core", W(1))},
		}
	}

	t.Run("uncapped", func(t *testing.T) {
		res, err := Simulate(scenario(Weight{}))
		if err != nil {
			t.Fatalf("Simulate() error = %v", err)
		}
		p := res.Periods[0]
		if !hasFlag(p.Flags, FlagRecyclingApplied) {
			t.Errorf("Flags = %v, want %s", p.Flags, FlagRecyclingApplied)
		}
		// $300k net plus the full $500k recycled proceeds, still below the
		// $1M target.
		assertAmount(t, "netCash", p.NetCash, "300000")
		assertAmount(t, "allocable", p.Allocable, "800000")
		assertAmount(t, "cumulativeRecycled", p.CumulativeRecycled, "500000")
		assertAmount(t, "cumulativeContributed", p.CumulativeContributed, "1300000")
		assertAmount(t, "cashBalance", p.CashBalance, "0")
	})

	t.Run("capped at 0.1% of commitment", func(t *testing.T) {
		res, err := Simulate(scenario(W(0.001)))
		if err != nil {
			t.Fatalf("Simulate() error = %v", err)
		}
		p := res.Periods[0]
		// Cumulative recycling room is 0.001 * $24M = $24,000.
		assertAmount(t, "cumulativeRecycled", p.CumulativeRecycled, "24000")
		assertAmount(t, "allocable", p.Allocable, "324000")
	})
}

func TestSimulateCarryoverShortfall(t *testing.T) {
	scenario := func(carryover bool) *Input {
		fund := simFund("24000000", 24)
		fund.CarryoverShortfall = carryover
		return &Input{
			Fund:     fund,
			Timeline: Timeline{Start: date.MustParse("2025-01-01"), End: date.MustParse("2025-02-28")},
			Flows:    Flows{Contributions: []CashFlowEvent{contribution("2025-02-10", "2500000")}},
			Cohorts:  []Cohort{testCohort("core", W(1))},
		}
	}

	t.Run("off by default", func(t *testing.T) {
		res, err := Simulate(scenario(false))
		if err != nil {
			t.Fatalf("Simulate() error = %v", err)
		}
		p := res.Periods[1]
		assertAmount(t, "pacingTarget", p.PacingTarget, "1000000")
		if hasFlag(p.Flags, FlagCarryoverApplied) {
			t.Errorf("Flags = %v, carryover must not apply by default", p.Flags)
		}
	})

	t.Run("rolls the unmet target forward", func(t *testing.T) {
		res, err := Simulate(scenario(true))
		if err != nil {
			t.Fatalf("Simulate() error = %v", err)
		}
		p := res.Periods[1]
		assertAmount(t, "pacingTarget", p.PacingTarget, "2000000")
		assertAmount(t, "allocable", p.Allocable, "2000000")
		assertAmount(t, "core allocation", p.Allocations["core"], "2000000")
		if !hasFlag(p.Flags, FlagCarryoverApplied) {
			t.Errorf("Flags = %v, want %s", p.Flags, FlagCarryoverApplied)
		}
	})
}

// richScenario exercises recalls, recycling, caps and two cohorts at once.
func richScenario() *Input {
	fund := simFund("24000000", 24)
	fund.TargetReservePct = W(0.02)
	return &Input{
		Fund:     fund,
		Timeline: Timeline{Start: date.MustParse("2025-01-01"), End: date.MustParse("2025-06-30")},
		Flows: Flows{
			Contributions: []CashFlowEvent{
				contribution("2025-01-10", "2000000"),
				contribution("2025-03-10", "1500000"),
				contribution("2025-05-10", "700000"),
			},
			Distributions: []CashFlowEvent{
				distributionEvent("2025-03-20", "400000", true),
				distributionEvent("2025-04-15", "-250000", false),
			},
		},
		Constraints: Constraints{
			MaxAllocationPerCohort: W(0.55),
			RecyclingCapPct:        W(0.05),
		},
		Cohorts: []Cohort{
			testCohort("buyout", W(0.7)),
			testCohort("growth", W(0.3)),
		},
	}
}

func TestSimulateConservation(t *testing.T) {
	res, err := Simulate(richScenario())
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	var prev PeriodState
	for i, p := range res.Periods {
		if p.CumulativeAllocated > p.CumulativeContributed.Sub(p.CumulativeRecalled) {
			t.Errorf("period %d: allocated %s exceeds contributed %s minus recalled %s",
				i, p.CumulativeAllocated, p.CumulativeContributed, p.CumulativeRecalled)
		}
		if i > 0 {
			if p.CumulativeAllocated < prev.CumulativeAllocated ||
				p.CumulativeContributed < prev.CumulativeContributed ||
				p.CumulativeRecalled < prev.CumulativeRecalled ||
				p.CumulativeRecycled < prev.CumulativeRecycled {
				t.Errorf("period %d: cumulative totals decreased", i)
			}
		}
		var deployed Amount
		for _, a := range p.Allocations {
			deployed = deployed.Add(a)
		}
		if deployed > p.Allocable {
			t.Errorf("period %d: deployed %s exceeds allocable %s", i, deployed, p.Allocable)
		}
		prev = p
	}
}

func TestSimulateDeterminism(t *testing.T) {
	var first, second bytes.Buffer
	for i, buf := range []*bytes.Buffer{&first, &second} {
		res, err := Simulate(richScenario())
		if err != nil {
			t.Fatalf("run %d: Simulate() error = %v", i, err)
		}
		if err := EncodeResult(buf, res); err != nil {
			t.Fatalf("run %d: EncodeResult() error = %v", i, err)
		}
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two runs on identical input produced different encodings")
	}
}

func TestSimulateValidation(t *testing.T) {
	valid := func() *Input {
		return &Input{
			Fund:     simFund("1000000", 12),
			Timeline: Timeline{Start: date.MustParse("2025-01-01"), End: date.MustParse("2025-12-31")},
			Cohorts:  []Cohort{testCohort("core", W(1))},
		}
	}
	testCases := []struct {
		name    string
		mutate  func(*Input)
		wantErr error
	}{
		{
			name:    "zero commitment",
			mutate:  func(in *Input) { in.Fund.Commitment = 0 },
			wantErr: ErrInvalidMagnitude,
		},
		{
			name:    "reserve pct above one",
			mutate:  func(in *Input) { in.Fund.TargetReservePct = W(1.5) },
			wantErr: ErrInvalidConfiguration,
		},
		{
			name:    "zero pacing window",
			mutate:  func(in *Input) { in.Fund.PacingWindowMonths = 0 },
			wantErr: ErrInvalidConfiguration,
		},
		{
			name:    "inverted timeline",
			mutate:  func(in *Input) { in.Timeline.Start, in.Timeline.End = in.Timeline.End, in.Timeline.Start },
			wantErr: ErrInvalidTimeline,
		},
		{
			name:    "cap above one",
			mutate:  func(in *Input) { in.Constraints.MaxAllocationPerCohort = W(2) },
			wantErr: ErrInvalidConfiguration,
		},
		{
			name:    "duplicate cohort",
			mutate:  func(in *Input) { in.Cohorts = append(in.Cohorts, testCohort("core", W(1))) },
			wantErr: ErrInvalidConfiguration,
		},
	}
	for _, tc := range testCases {
		in := valid()
		tc.mutate(in)
		if _, err := Simulate(in); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: Simulate() error = %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}
