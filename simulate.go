package pacing

import (
	"fmt"

	"github.com/etnz/pacing/date"
)

// Input is the immutable snapshot a run consumes: field for field the
// external input structure. Independent runs share nothing, so callers may
// simulate many inputs in parallel without locking.
type Input struct {
	Fund        FundParameters
	Timeline    Timeline
	Flows       Flows
	Constraints Constraints
	Cohorts     []Cohort
}

// Validate fails fast on any configuration error, before simulation.
func (in *Input) Validate() error {
	if err := in.Fund.Validate(); err != nil {
		return err
	}
	if err := in.Timeline.Validate(); err != nil {
		return err
	}
	if err := in.Constraints.Validate(); err != nil {
		return err
	}
	if err := in.Flows.Validate(); err != nil {
		return err
	}
	_, err := NewRegistry(in.Cohorts)
	return err
}

// PeriodState is the recorded outcome of one period. States are appended in
// strict chronological order and never mutated once recorded.
type PeriodState struct {
	Index int
	Range date.Range

	// CashIn is the sum of contributions in the period.
	CashIn Amount
	// NetCash is contributions minus distributions; a capital recall
	// directly reduces it.
	NetCash Amount
	// ReserveBalance is the effective buffer as of this period. Constant
	// under the static_pct policy.
	ReserveBalance Amount
	// ReserveUnderfunded reports that retained cash sits below the
	// effective buffer at period close.
	ReserveUnderfunded bool
	// CashBalance is the fund cash retained after allocation.
	CashBalance Amount

	PacingTarget Amount
	Allocable    Amount
	// Allocations maps cohort name to its period allocation. Only cohorts
	// active in the period appear.
	Allocations map[string]Amount
	Flags       []Flag

	CumulativeContributed Amount
	CumulativeAllocated   Amount
	CumulativeRecalled    Amount
	CumulativeRecycled    Amount
}

// Simulate runs the engine over the whole timeline and returns the
// append-only period history plus summary aggregates.
//
// The fold is strictly sequential: reserve balance, cumulative totals and
// recycling state carry forward, so there is no valid reordering within a
// run. The engine performs no I/O and no floating-point arithmetic; two runs
// on identical input produce byte-identical output.
func Simulate(in *Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	registry, err := NewRegistry(in.Cohorts)
	if err != nil {
		return nil, err
	}
	reserve, err := EffectiveReserve(in.Fund)
	if err != nil {
		return nil, err
	}

	var recyclingRoom Amount = -1 // -1: uncapped
	if !in.Constraints.RecyclingCapPct.IsZero() {
		recyclingRoom = Amount(in.Constraints.RecyclingCapPct.Of(in.Fund.Commitment).Floor().IntPart())
	}

	var (
		periods      []PeriodState
		cash         Amount
		shortfall    Amount
		cumContrib   Amount
		cumAllocated Amount
		cumRecalled  Amount
		cumRecycled  Amount
	)

	for p := range Schedule(in.Timeline, in.Fund.Frequency) {
		pf := in.Flows.fold(p.Range)
		var flags []Flag
		if pf.hasRecall {
			flags = append(flags, FlagCapitalRecallProcessed)
		}

		target := PacingTarget(in.Fund, p.Months)
		if in.Fund.CarryoverShortfall && shortfall.IsPositive() {
			target = target.Add(shortfall)
			flags = append(flags, FlagCarryoverApplied)
		}

		net := pf.net()
		base := MaxAmount(0, net)

		// Recycling applies within the period only, never retroactively: a
		// recycle-eligible distribution landing in the same period as an
		// investment need raises the deployable net cash, up to the cap.
		var credit Amount
		if pf.recyclable.IsPositive() && target > base {
			credit = MinAmount(pf.recyclable, target.Sub(base))
			if recyclingRoom >= 0 {
				credit = MinAmount(credit, MaxAmount(0, recyclingRoom.Sub(cumRecycled)))
			}
			if credit.IsPositive() {
				flags = append(flags, FlagRecyclingApplied)
			}
		}
		avail := base.Add(credit)

		// Recycled proceeds stay in the fund instead of being paid out.
		cashBefore := cash.Add(net).Add(credit)

		// The capacity constraint: pacing never deploys more than the net
		// cash received in-period, and never more than its target even when
		// far more cash sits idle.
		allocable := MinAmount(target, avail)

		if in.Fund.ReserveSemantics == ReserveNetOfBuffer {
			headroom := MaxAmount(0, cashBefore.Sub(reserve))
			if headroom < allocable {
				allocable = headroom
				flags = append(flags, FlagReserveFloorOverridePacing)
			}
		}

		active := registry.Active(p.Range)
		weights := WeightsFor(active)
		allocation, err := Allocate(allocable, active, weights, in.Constraints.MaxAllocationPerCohort)
		if err != nil {
			return nil, err
		}
		flags = append(flags, allocation.Flags...)

		var deployed Amount
		allocations := make(map[string]Amount, len(active))
		for i, c := range active {
			allocations[c.Name] = allocation.Amounts[i]
			deployed = deployed.Add(allocation.Amounts[i])
		}
		if !deployed.Add(allocation.Undeployed).Sub(allocable).IsZero() {
			return nil, fmt.Errorf("%w: period %d deployed %s + undeployed %s != allocable %s",
				ErrInvariantViolation, p.Index, deployed, allocation.Undeployed, allocable)
		}

		cash = cashBefore.Sub(deployed)
		underfunded := cash < reserve
		if in.Fund.ReserveSemantics == ReserveCapacity && underfunded && deployed.IsPositive() {
			// Capacity semantics never withholds; it reports that deploying
			// to target left the reserve floor unmet.
			flags = append(flags, FlagReserveFloorOverridePacing)
		}

		cumContrib = cumContrib.Add(pf.cashIn).Add(credit)
		cumAllocated = cumAllocated.Add(deployed)
		cumRecalled = cumRecalled.Add(pf.recalled)
		cumRecycled = cumRecycled.Add(credit)
		if cumAllocated > cumContrib.Sub(cumRecalled) {
			return nil, fmt.Errorf("%w: period %d cumulative allocated %s exceeds contributed %s minus recalled %s",
				ErrInvariantViolation, p.Index, cumAllocated, cumContrib, cumRecalled)
		}

		shortfall = MaxAmount(0, target.Sub(deployed))

		periods = append(periods, PeriodState{
			Index:                 p.Index,
			Range:                 p.Range,
			CashIn:                pf.cashIn,
			NetCash:               net,
			ReserveBalance:        reserve,
			ReserveUnderfunded:    underfunded,
			CashBalance:           cash,
			PacingTarget:          target,
			Allocable:             allocable,
			Allocations:           allocations,
			Flags:                 flags,
			CumulativeContributed: cumContrib,
			CumulativeAllocated:   cumAllocated,
			CumulativeRecalled:    cumRecalled,
			CumulativeRecycled:    cumRecycled,
		})
	}

	return newResult(in, registry, periods), nil
}
