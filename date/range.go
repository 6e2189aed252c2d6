package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the full calendar period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains returns true if date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Intersects returns true if the two ranges share at least one day.
func (r Range) Intersects(o Range) bool { return !r.From.After(o.To) && !r.To.Before(o.From) }

// IsValid returns true when the range covers at least one day.
func (r Range) IsValid() bool { return !r.To.Before(r.From) }

// Months returns the number of grid months the range touches. A range
// truncated mid-month still counts that month: pacing sums per-month targets
// for every month the period covers.
func (r Range) Months() int { return r.To.MonthIndex() - r.From.MonthIndex() + 1 }

// Period returns the frequency of this range if it is a standard calendar one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Monthly, false
	}
}

// Identifier computes a unique identifier for the Range.
// If the range is a standard calendar period, use a short insightful name.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}
