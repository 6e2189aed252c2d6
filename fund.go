package pacing

import (
	"fmt"

	"github.com/etnz/pacing/date"
)

// FundParameters are the fund-level inputs of a run. They are supplied once
// and are immutable for the whole simulation.
type FundParameters struct {
	// Commitment is the total fund commitment. Must be positive.
	Commitment Amount
	// TargetReservePct sizes the reserve under the static_pct policy, in [0,1].
	TargetReservePct Weight
	// MinCashBuffer is the floor of the effective reserve.
	MinCashBuffer Amount
	// ReservePolicy selects how the effective buffer evolves over time.
	ReservePolicy ReservePolicy
	// ReserveSemantics selects whether pacing targets are sized on gross
	// commitment (capacity) or net of the buffer. The two are never mixed
	// in one computation.
	ReserveSemantics ReserveSemantics
	// PacingWindowMonths is the number of months the commitment is paced
	// over. Must be positive.
	PacingWindowMonths int
	// Frequency is the allocation period length.
	Frequency date.Period
	// RebalanceFrequency is the cadence at which cohort weights are
	// re-normalized, independent of Frequency.
	RebalanceFrequency date.Period
	// VintageYear of the fund, informational.
	VintageYear int
	// CarryoverShortfall, when set, rolls an unmet pacing target into the
	// next period's target. Off by default: the source design explicitly
	// does not carry shortfalls forward.
	CarryoverShortfall bool
}

// Validate fails fast on configuration errors, before any period is simulated.
func (f FundParameters) Validate() error {
	if !f.Commitment.IsPositive() {
		return fmt.Errorf("%w: commitment %s must be positive", ErrInvalidMagnitude, f.Commitment)
	}
	if !f.TargetReservePct.InUnitInterval() {
		return fmt.Errorf("%w: targetReservePct %s outside [0,1]", ErrInvalidConfiguration, f.TargetReservePct)
	}
	if f.MinCashBuffer.IsNegative() {
		return fmt.Errorf("%w: minCashBuffer %s is negative", ErrInvalidMagnitude, f.MinCashBuffer)
	}
	if f.PacingWindowMonths <= 0 {
		return fmt.Errorf("%w: pacing window %d months", ErrInvalidConfiguration, f.PacingWindowMonths)
	}
	if f.ReservePolicy != StaticPct {
		return fmt.Errorf("%w: %q", ErrUnsupportedReservePolicy, f.ReservePolicy)
	}
	return nil
}

// Timeline defines the simulated horizon. Periods cover exactly
// [Start, End]; a final partial period is truncated, never extended.
type Timeline struct {
	Start date.Date
	End   date.Date
}

// Validate rejects empty or inverted timelines.
func (t Timeline) Validate() error {
	if t.Start.IsZero() || t.End.IsZero() {
		return fmt.Errorf("%w: missing start or end date", ErrInvalidTimeline)
	}
	if t.End.Before(t.Start) {
		return fmt.Errorf("%w: end %s before start %s", ErrInvalidTimeline, t.End, t.Start)
	}
	return nil
}

// Range returns the timeline as a date range.
func (t Timeline) Range() date.Range { return date.Range{From: t.Start, To: t.End} }

// Constraints bound the distributor and the recycling credit.
type Constraints struct {
	// MaxAllocationPerCohort caps one cohort's period allocation as a
	// fraction of that period's allocable capital (not of commitment).
	// Zero means uncapped.
	MaxAllocationPerCohort Weight
	// RecyclingCapPct caps the cumulative recycled total over the run as a
	// fraction of commitment. Zero means uncapped.
	RecyclingCapPct Weight
}

// Validate checks cap fractions at configuration time, not at allocation time.
func (c Constraints) Validate() error {
	if !c.MaxAllocationPerCohort.InUnitInterval() {
		return fmt.Errorf("%w: maxAllocationPerCohort %s outside [0,1]", ErrInvalidConfiguration, c.MaxAllocationPerCohort)
	}
	if !c.RecyclingCapPct.InUnitInterval() {
		return fmt.Errorf("%w: recyclingCapPct %s outside [0,1]", ErrInvalidConfiguration, c.RecyclingCapPct)
	}
	return nil
}
