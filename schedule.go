package pacing

import (
	"iter"

	"github.com/etnz/pacing/date"
)

// Period is one simulated period: a contiguous slice of the fund timeline.
type Period struct {
	// Index is the zero-based position in the schedule.
	Index int
	// Range covers the period, boundaries included.
	Range date.Range
	// Months is the number of grid months the period covers. A truncated
	// final period covers fewer months than the frequency; pacing targets
	// sum the per-month target over exactly these months.
	Months int
}

// Schedule produces the ordered, contiguous, non-overlapping periods
// covering [timeline.Start, timeline.End] at the given frequency.
//
// The monthly grid is anchored at the timeline start; quarterly and annual
// periods group 3 and 12 consecutive grid months. The final period is
// truncated at the timeline end, never extended past it. The sequence is
// lazy, finite and restartable.
func Schedule(timeline Timeline, frequency date.Period) iter.Seq[Period] {
	return func(yield func(Period) bool) {
		total := gridMonths(timeline)
		group := frequency.Months()
		for i, m := 0, 0; m < total; i, m = i+1, m+group {
			months := min(group, total-m)
			from := timeline.Start.AddMonth(m)
			to := from.AddMonth(months).Add(-1)
			if to.After(timeline.End) {
				to = timeline.End
			}
			p := Period{Index: i, Range: date.Range{From: from, To: to}, Months: months}
			if !yield(p) {
				return
			}
		}
	}
}

// gridMonths counts the grid months needed to cover the timeline: the
// smallest n such that start+n months passes the end.
func gridMonths(timeline Timeline) int {
	n := timeline.End.MonthIndex() - timeline.Start.MonthIndex()
	if timeline.Start.AddMonth(n).After(timeline.End) {
		return n
	}
	return n + 1
}

// Periods materializes the schedule. Convenience for callers that need
// random access (the simulator itself streams).
func Periods(timeline Timeline, frequency date.Period) []Period {
	out := make([]Period, 0, 64)
	for p := range Schedule(timeline, frequency) {
		out = append(out, p)
	}
	return out
}
