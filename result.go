package pacing

import (
	"github.com/etnz/pacing/date"
)

// Result is the immutable output of a run: the full period history plus
// summary aggregates. Downstream engines (IRR, fees, waterfall, reporting)
// consume it read-only; this engine knows nothing about their storage.
type Result struct {
	// cohortOrder preserves declaration order for canonical encoding.
	cohortOrder []string

	Periods []PeriodState
	Summary Summary
}

// Summary aggregates the period history.
type Summary struct {
	// AllocationsByCohort totals each cohort's allocations over the run,
	// including cohorts that never received capital.
	AllocationsByCohort map[string]Amount
	// ReserveOverTime samples the reserve balance at each period end.
	ReserveOverTime date.History[int64]
	// PacingTargets lists the pacing target of each period, in order.
	PacingTargets []Amount
	// Violations is the union of all period-level flags, deduplicated, in
	// first-occurrence order.
	Violations []Flag
}

func newResult(in *Input, registry *Registry, periods []PeriodState) *Result {
	summary := Summary{
		AllocationsByCohort: make(map[string]Amount, registry.Len()),
		PacingTargets:       make([]Amount, 0, len(periods)),
	}
	order := make([]string, 0, registry.Len())
	for _, c := range registry.Cohorts() {
		order = append(order, c.Name)
		summary.AllocationsByCohort[c.Name] = 0
	}

	seen := make(map[Flag]bool)
	for _, p := range periods {
		for name, a := range p.Allocations {
			summary.AllocationsByCohort[name] = summary.AllocationsByCohort[name].Add(a)
		}
		summary.ReserveOverTime.Append(p.Range.To, int64(p.ReserveBalance))
		summary.PacingTargets = append(summary.PacingTargets, p.PacingTarget)
		for _, f := range p.Flags {
			if !seen[f] {
				seen[f] = true
				summary.Violations = append(summary.Violations, f)
			}
		}
	}

	return &Result{cohortOrder: order, Periods: periods, Summary: summary}
}

// CohortNames returns the cohort names in declaration order.
func (r *Result) CohortNames() []string { return r.cohortOrder }
