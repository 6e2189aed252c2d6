package pacing

import (
	"fmt"
	"sort"

	"github.com/etnz/pacing/date"
)

// FlowKind distinguishes the two directions money crosses the fund boundary.
type FlowKind int

const (
	// Contribution is capital called from LPs into the fund. Always >= 0.
	Contribution FlowKind = iota
	// Distribution is capital paid out to LPs. A negative distribution is a
	// capital recall (clawback) and is never recycle-eligible.
	Distribution
)

func (k FlowKind) String() string {
	switch k {
	case Contribution:
		return "contribution"
	case Distribution:
		return "distribution"
	default:
		return fmt.Sprintf("flow_kind(%d)", int(k))
	}
}

// ParseFlowKind parses a flow kind name.
func ParseFlowKind(s string) (FlowKind, error) {
	switch s {
	case "contribution":
		return Contribution, nil
	case "distribution":
		return Distribution, nil
	default:
		return 0, fmt.Errorf("%w: flow kind %q", ErrInvalidConfiguration, s)
	}
}

// CashFlowEvent is one dated movement of capital across the fund boundary.
type CashFlowEvent struct {
	Date            date.Date
	Amount          Amount
	Kind            FlowKind
	RecycleEligible bool
}

// Validate enforces the flow invariants: contributions are non-negative and
// recalled capital is never recyclable.
func (e CashFlowEvent) Validate() error {
	if e.Kind == Contribution && e.Amount.IsNegative() {
		return fmt.Errorf("%w: negative contribution %s on %s", ErrInvalidMagnitude, e.Amount, e.Date)
	}
	if e.Kind == Distribution && e.Amount.IsNegative() && e.RecycleEligible {
		return fmt.Errorf("%w: capital recall on %s cannot be recycle-eligible", ErrInvalidConfiguration, e.Date)
	}
	return nil
}

// Flows is the cash-flow cadence of a run, split by kind as in the input
// structure. Events need not be pre-sorted; folding is by period membership.
type Flows struct {
	Contributions []CashFlowEvent
	Distributions []CashFlowEvent
}

// Validate checks every event and that kinds match their list.
func (f Flows) Validate() error {
	for _, e := range f.Contributions {
		if e.Kind != Contribution {
			return fmt.Errorf("%w: %s event in contributions list on %s", ErrInvalidConfiguration, e.Kind, e.Date)
		}
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, e := range f.Distributions {
		if e.Kind != Distribution {
			return fmt.Errorf("%w: %s event in distributions list on %s", ErrInvalidConfiguration, e.Kind, e.Date)
		}
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// periodFlows is the fold of all events falling inside one period.
type periodFlows struct {
	cashIn     Amount // sum of contributions
	paidOut    Amount // sum of positive distributions
	recalled   Amount // magnitude of negative distributions (clawbacks)
	recyclable Amount // sum of recycle-eligible positive distributions
	hasRecall  bool
}

// net is contributions minus distributions, recalls included: recalled
// capital directly reduces the period's net cash.
func (p periodFlows) net() Amount { return p.cashIn.Sub(p.paidOut).Sub(p.recalled) }

// fold sums all events whose date falls within the period.
func (f Flows) fold(period date.Range) periodFlows {
	var out periodFlows
	for _, e := range f.Contributions {
		if period.Contains(e.Date) {
			out.cashIn = out.cashIn.Add(e.Amount)
		}
	}
	for _, e := range f.Distributions {
		if !period.Contains(e.Date) {
			continue
		}
		if e.Amount.IsNegative() {
			out.recalled = out.recalled.Add(e.Amount.Abs())
			out.hasRecall = true
			continue
		}
		out.paidOut = out.paidOut.Add(e.Amount)
		if e.RecycleEligible {
			out.recyclable = out.recyclable.Add(e.Amount)
		}
	}
	return out
}

// sortedEvents returns the events in chronological order, stable within a
// day. The canonical encoding uses it so fixtures do not depend on input
// ordering. The result is never nil, so an empty list encodes as [].
func sortedEvents(events []CashFlowEvent) []CashFlowEvent {
	out := make([]CashFlowEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
