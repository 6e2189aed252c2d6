package pacing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ReservePolicy defines how the effective buffer evolves over the fund life.
type ReservePolicy int

const (
	// StaticPct keeps the effective buffer constant:
	// max(minCashBuffer, commitment * targetReservePct).
	StaticPct ReservePolicy = iota
)

func (p ReservePolicy) String() string {
	switch p {
	case StaticPct:
		return "static_pct"
	default:
		return fmt.Sprintf("reserve_policy(%d)", int(p))
	}
}

// ParseReservePolicy parses a reserve policy name. Unknown policies are a
// declared extension point and fail with ErrUnsupportedReservePolicy.
func ParseReservePolicy(s string) (ReservePolicy, error) {
	switch s {
	case "", "static_pct":
		return StaticPct, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedReservePolicy, s)
	}
}

// ReserveSemantics selects how the reserve buffer interacts with deployable
// capital. The source material carries two incompatible semantics; they are
// modeled as an explicit per-fund tag, never an implicit global default.
type ReserveSemantics int

const (
	// ReserveCapacity sizes pacing targets against gross commitment; the
	// buffer is not subtracted from the target. The reserve balance is
	// tracked and reported independently, and a period whose retained cash
	// falls below the buffer is flagged, not repaired.
	ReserveCapacity ReserveSemantics = iota
	// ReserveNetOfBuffer withholds the buffer before sizing deployable
	// capital: cash below the effective buffer is never deployed.
	ReserveNetOfBuffer
)

func (s ReserveSemantics) String() string {
	switch s {
	case ReserveCapacity:
		return "capacity"
	case ReserveNetOfBuffer:
		return "net_of_buffer"
	default:
		return fmt.Sprintf("reserve_semantics(%d)", int(s))
	}
}

// ParseReserveSemantics parses a reserve semantics name.
func ParseReserveSemantics(s string) (ReserveSemantics, error) {
	switch s {
	case "", "capacity":
		return ReserveCapacity, nil
	case "net_of_buffer":
		return ReserveNetOfBuffer, nil
	default:
		return 0, fmt.Errorf("%w: reserve semantics %q", ErrInvalidConfiguration, s)
	}
}

// EffectiveReserve computes the effective buffer,
// max(minCashBuffer, commitment * targetReservePct), rounded half-even once.
// Under static_pct it is constant for the whole run.
func EffectiveReserve(f FundParameters) (Amount, error) {
	if f.ReservePolicy != StaticPct {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedReservePolicy, f.ReservePolicy)
	}
	pct := Amount(f.TargetReservePct.Of(f.Commitment).RoundBank(0).IntPart())
	return MaxAmount(f.MinCashBuffer, pct), nil
}

// PacingTarget computes the pacing target for a period covering the given
// number of grid months:
//
//	round_half_even(commitment / pacingWindowMonths * months)
//
// The per-month target is summed exactly and rounded once at the group
// level. Summing rounded per-month targets instead would drift from the
// agreed truth cases, so the order here must not change.
//
// The target is capacity-oriented (gross): the reserve buffer is not
// subtracted. Deploy capacity is sized against total commitment while the
// reserve is tracked independently; the net-of-buffer deduction belongs to
// the ReserveNetOfBuffer semantics in the simulator, never here.
func PacingTarget(f FundParameters, months int) Amount {
	exact := decimal.NewFromInt(int64(f.Commitment)).
		Mul(decimal.NewFromInt(int64(months))).
		Div(decimal.NewFromInt(int64(f.PacingWindowMonths)))
	return Amount(exact.RoundBank(0).IntPart())
}
