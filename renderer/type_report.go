package renderer

import (
	"strings"

	"github.com/etnz/pacing"
)

// Report is the view of one simulation run prepared for rendering. All
// monetary values are pre-formatted strings so templates stay dumb.
type Report struct {
	Commitment       string
	Timeline         string
	Frequency        string
	PacingWindow     int
	ReservePolicy    string
	ReserveSemantics string
	EffectiveReserve string

	Periods []PeriodRow
	Cohorts []CohortRow

	TotalContributed string
	TotalAllocated   string
	Violations       []string
}

// PeriodRow is one line of the period table.
type PeriodRow struct {
	Identifier string
	CashIn     string
	NetCash    string
	Target     string
	Allocable  string
	Cash       string
	Flags      string
}

// CohortRow is one line of the cohort totals table.
type CohortRow struct {
	Name  string
	Total string
}

// NewReport builds the report view from a run's input and result.
func NewReport(in *pacing.Input, res *pacing.Result) *Report {
	r := &Report{
		Commitment:       in.Fund.Commitment.String(),
		Timeline:         in.Timeline.Start.String() + " to " + in.Timeline.End.String(),
		Frequency:        in.Fund.Frequency.String(),
		PacingWindow:     in.Fund.PacingWindowMonths,
		ReservePolicy:    in.Fund.ReservePolicy.String(),
		ReserveSemantics: in.Fund.ReserveSemantics.String(),
	}
	if len(res.Periods) > 0 {
		r.EffectiveReserve = res.Periods[0].ReserveBalance.String()
		last := res.Periods[len(res.Periods)-1]
		r.TotalContributed = last.CumulativeContributed.String()
		r.TotalAllocated = last.CumulativeAllocated.String()
	}
	for _, p := range res.Periods {
		flags := make([]string, 0, len(p.Flags))
		for _, f := range p.Flags {
			flags = append(flags, string(f))
		}
		r.Periods = append(r.Periods, PeriodRow{
			Identifier: p.Range.Identifier(),
			CashIn:     p.CashIn.String(),
			NetCash:    p.NetCash.SignedString(),
			Target:     p.PacingTarget.String(),
			Allocable:  p.Allocable.String(),
			Cash:       p.CashBalance.String(),
			Flags:      strings.Join(flags, ", "),
		})
	}
	for _, name := range res.CohortNames() {
		r.Cohorts = append(r.Cohorts, CohortRow{
			Name:  name,
			Total: res.Summary.AllocationsByCohort[name].String(),
		})
	}
	for _, v := range res.Summary.Violations {
		r.Violations = append(r.Violations, string(v))
	}
	return r
}

// ScheduleView is the view of a generated schedule.
type ScheduleView struct {
	Frequency string
	Periods   []SchedulePeriodRow
}

type SchedulePeriodRow struct {
	Index      int
	Identifier string
	From       string
	To         string
	Months     int
}

// NewScheduleView builds the schedule view for a timeline and frequency.
func NewScheduleView(in *pacing.Input) *ScheduleView {
	v := &ScheduleView{Frequency: in.Fund.Frequency.String()}
	for _, p := range pacing.Periods(in.Timeline, in.Fund.Frequency) {
		v.Periods = append(v.Periods, SchedulePeriodRow{
			Index:      p.Index,
			Identifier: p.Range.Identifier(),
			From:       p.Range.From.String(),
			To:         p.Range.To.String(),
			Months:     p.Months,
		})
	}
	return v
}

// AllocationView is the view of a one-shot distributor run.
type AllocationView struct {
	Allocable  string
	Cap        string
	Rows       []CohortRow
	Undeployed string
	Flags      []string
}

// NewAllocationView builds the view of a standalone allocation.
func NewAllocationView(allocable pacing.Amount, active []pacing.Cohort, a pacing.Allocation, cap pacing.Weight) *AllocationView {
	v := &AllocationView{Allocable: allocable.String()}
	if !cap.IsZero() {
		v.Cap = cap.String()
	}
	for i, c := range active {
		v.Rows = append(v.Rows, CohortRow{Name: c.Name, Total: a.Amounts[i].String()})
	}
	if a.Undeployed.IsPositive() {
		v.Undeployed = a.Undeployed.String()
	}
	for _, f := range a.Flags {
		v.Flags = append(v.Flags, string(f))
	}
	return v
}
