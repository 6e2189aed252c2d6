package pacing

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Canonical JSON encoding of inputs and results. Field order is fixed so
// that audit records and truth-case fixtures compare byte for byte.

func (e CashFlowEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", e.Date)
	w.Append("amount", e.Amount)
	w.Append("kind", e.Kind.String())
	w.Optional("recycleEligible", e.RecycleEligible)
	return w.MarshalJSON()
}

func (c Cohort) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", c.Name)
	w.Append("startDate", c.Window.From)
	w.Append("endDate", c.Window.To)
	w.Append("weight", c.Weight)
	return w.MarshalJSON()
}

func (f FundParameters) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("commitment", f.Commitment)
	w.Append("targetReservePct", f.TargetReservePct)
	w.Append("minCashBuffer", f.MinCashBuffer)
	w.Append("reservePolicy", f.ReservePolicy.String())
	w.Append("reserveSemantics", f.ReserveSemantics.String())
	w.Append("pacingWindowMonths", f.PacingWindowMonths)
	w.Append("frequency", f.Frequency.String())
	w.Append("rebalanceFrequency", f.RebalanceFrequency.String())
	w.Optional("vintageYear", f.VintageYear)
	w.Optional("carryoverShortfall", f.CarryoverShortfall)
	return w.MarshalJSON()
}

func (t Timeline) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("startDate", t.Start)
	w.Append("endDate", t.End)
	return w.MarshalJSON()
}

func (c Constraints) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("maxAllocationPerCohort", c.MaxAllocationPerCohort)
	w.Optional("recyclingCapPct", c.RecyclingCapPct)
	return w.MarshalJSON()
}

func (f Flows) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("contributions", sortedEvents(f.Contributions))
	w.Append("distributions", sortedEvents(f.Distributions))
	return w.MarshalJSON()
}

func (in *Input) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("fund", in.Fund)
	w.Append("timeline", in.Timeline)
	w.Append("flows", in.Flows)
	w.Append("constraints", in.Constraints)
	w.Append("cohorts", in.Cohorts)
	return w.MarshalJSON()
}

func (p PeriodState) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("periodIndex", p.Index)
	w.Append("periodStart", p.Range.From)
	w.Append("periodEnd", p.Range.To)
	w.Append("cashIn", p.CashIn)
	w.Append("netCash", p.NetCash)
	w.Append("reserveBalance", p.ReserveBalance)
	w.Optional("reserveUnderfunded", p.ReserveUnderfunded)
	w.Append("cashBalance", p.CashBalance)
	w.Append("pacingTarget", p.PacingTarget)
	w.Append("allocable", p.Allocable)
	w.Append("allocationsByCohort", orderedAllocations(p.Allocations))
	w.Append("violations", flagsOrEmpty(p.Flags))
	w.Append("cumulativeContributed", p.CumulativeContributed)
	w.Append("cumulativeAllocated", p.CumulativeAllocated)
	w.Optional("cumulativeRecalled", p.CumulativeRecalled)
	w.Optional("cumulativeRecycled", p.CumulativeRecycled)
	return w.MarshalJSON()
}

func (r *Result) MarshalJSON() ([]byte, error) {
	var summary jsonObjectWriter
	totals := jsonObjectWriter{}
	for _, name := range r.cohortOrder {
		totals.Append(name, r.Summary.AllocationsByCohort[name])
	}
	summary.Append("allocationsByCohort", &totals)

	type sample struct {
		Date   string `json:"date"`
		Amount Amount `json:"amount"`
	}
	series := make([]sample, 0, r.Summary.ReserveOverTime.Len())
	for day, v := range r.Summary.ReserveOverTime.Values() {
		series = append(series, sample{Date: day.String(), Amount: Amount(v)})
	}
	summary.Append("reserveBalanceOverTime", series)
	summary.Append("pacingTargetsByPeriod", r.Summary.PacingTargets)
	summary.Append("violations", flagsOrEmpty(r.Summary.Violations))

	var w jsonObjectWriter
	w.Append("periods", r.Periods)
	w.Append("summary", &summary)
	return w.MarshalJSON()
}

// orderedAllocations renders the allocation map with lexically sorted cohort
// keys, so the encoding never depends on map iteration order.
func orderedAllocations(allocations map[string]Amount) *jsonObjectWriter {
	names := make([]string, 0, len(allocations))
	for name := range allocations {
		names = append(names, name)
	}
	sort.Strings(names)
	var w jsonObjectWriter
	for _, name := range names {
		w.Append(name, allocations[name])
	}
	return &w
}

// flagsOrEmpty keeps "violations" an array, never null.
func flagsOrEmpty(flags []Flag) []Flag {
	if flags == nil {
		return []Flag{}
	}
	return flags
}

// EncodeResult writes the canonical, indented JSON record of a run. The
// record is the immutable audit form persistence and reporting layers
// consume.
func EncodeResult(w io.Writer, r *Result) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode result: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// EncodeInput writes the canonical JSON form of an input scenario.
func EncodeInput(w io.Writer, in *Input) error {
	b, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode input: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
