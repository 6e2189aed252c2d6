package pacing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Allocation is the outcome of distributing one period's allocable capital.
type Allocation struct {
	// Amounts is aligned with the active cohort slice passed to Allocate.
	Amounts []Amount
	// Undeployed is capital that could not be placed: residual spill when
	// every cohort is capped, or the whole amount on a pipeline drought.
	// It stays in fund cash; it is never lost.
	Undeployed Amount
	// Flags raised by the distribution.
	Flags []Flag
}

// Allocate splits allocable capital across the active cohorts pro rata to
// their normalized weights, reconciles rounding drift with the
// largest-remainder method, applies the per-cohort cap and redistributes
// spill deterministically.
//
// A negative allocable is a programming error, reported as an invariant
// violation and never silently clamped.
func Allocate(allocable Amount, active []Cohort, weights []Weight, maxPerCohort Weight) (Allocation, error) {
	if allocable.IsNegative() {
		return Allocation{}, fmt.Errorf("%w: negative allocable %s reached the distributor", ErrInvariantViolation, allocable)
	}
	if len(active) != len(weights) {
		return Allocation{}, fmt.Errorf("%w: %d cohorts for %d weights", ErrInvariantViolation, len(active), len(weights))
	}

	// Pipeline drought: capital with nowhere to go stays in fund cash.
	if len(active) == 0 || allWeightsZero(weights) {
		a := Allocation{Amounts: make([]Amount, len(active))}
		if allocable.IsPositive() {
			a.Undeployed = allocable
			a.Flags = append(a.Flags, FlagPacingFloorNoPipeline)
		}
		return a, nil
	}

	shares := distribute(allocable, weights)

	// No cap configured: the pro-rata split is final.
	if maxPerCohort.IsZero() {
		return Allocation{Amounts: shares}, nil
	}

	// cap[c] = floor(maxPerCohort * allocable), identical for every cohort.
	capAmount := Amount(maxPerCohort.Of(allocable).Floor().IntPart())

	capped := make([]bool, len(shares))
	var flags []Flag
	var undeployed Amount
	for {
		// Clamp over-cap cohorts and pool the excess.
		var spill Amount
		for i, s := range shares {
			if !capped[i] && s > capAmount {
				spill = spill.Add(s.Sub(capAmount))
				shares[i] = capAmount
				capped[i] = true
			}
		}
		if spill.IsZero() {
			break
		}

		// Re-apply the pro-rata + largest-remainder steps to the spill
		// pool, among the uncapped cohorts only.
		var uncapped []int
		for i := range shares {
			if !capped[i] {
				uncapped = append(uncapped, i)
			}
		}
		if len(uncapped) == 0 {
			// Everyone is capped: the spill is not deployed. It returns to
			// fund cash for the period.
			undeployed = undeployed.Add(spill)
			flags = append(flags, FlagMaxPerCohortCapBound)
			break
		}
		sub := distribute(spill, renormalize(weights, uncapped))
		for k, i := range uncapped {
			shares[i] = shares[i].Add(sub[k])
		}
		// A redistribution can push an uncapped cohort over the cap; loop
		// until no new cohort overflows. Each pass caps at least one more
		// cohort, so the loop terminates.
	}

	return Allocation{Amounts: shares, Undeployed: undeployed, Flags: flags}, nil
}

// distribute splits amount across normalized weights: each share is rounded
// half-even from its exact pro-rata value, then the integer drift is
// reconciled one minor unit at a time by largest fractional remainder,
// first-declared cohort winning ties. The result always sums exactly to
// amount.
func distribute(amount Amount, weights []Weight) []Amount {
	n := len(weights)
	shares := make([]Amount, n)
	fracs := make([]decimal.Decimal, n)
	var sum Amount
	for i, w := range weights {
		exact := w.Of(amount)
		shares[i] = Amount(exact.RoundBank(0).IntPart())
		fracs[i] = exact.Sub(exact.Floor())
		sum = sum.Add(shares[i])
	}

	diff := amount.Sub(sum)
	if diff.IsZero() {
		return shares
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if diff.IsPositive() {
		// Give missing units to the largest remainders, first declared wins.
		sort.SliceStable(order, func(a, b int) bool {
			return fracs[order[a]].GreaterThan(fracs[order[b]])
		})
		for k := 0; diff.IsPositive(); k = (k + 1) % n {
			shares[order[k]]++
			diff--
		}
	} else {
		// Half-even overshot: take units back from the smallest remainders,
		// later-declared cohorts losing first, so first-declared still wins.
		sort.SliceStable(order, func(a, b int) bool {
			if !fracs[order[a]].Equal(fracs[order[b]]) {
				return fracs[order[a]].LessThan(fracs[order[b]])
			}
			return order[a] > order[b]
		})
		for k := 0; diff.IsNegative(); k = (k + 1) % n {
			if shares[order[k]] == 0 {
				continue
			}
			shares[order[k]]--
			diff++
		}
	}
	return shares
}

// renormalize restricts weights to the given indices and rescales them to
// sum to 1.
func renormalize(weights []Weight, indices []int) []Weight {
	var total Weight
	for _, i := range indices {
		total = total.Add(weights[i])
	}
	out := make([]Weight, len(indices))
	if total.IsZero() {
		// Degenerate subset: split evenly.
		even := W(1).Over(W(len(indices)))
		for k := range out {
			out[k] = even
		}
		return out
	}
	for k, i := range indices {
		out[k] = weights[i].Over(total)
	}
	return out
}

func allWeightsZero(weights []Weight) bool {
	for _, w := range weights {
		if !w.IsZero() {
			return false
		}
	}
	return true
}
