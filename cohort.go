package pacing

import (
	"fmt"

	"github.com/etnz/pacing/date"
)

// Cohort is a named sub-allocation bucket with an active time window and a
// relative weight. Weights are relative shares among the cohorts active in a
// given period; they are not required to sum to 1 across the registry.
type Cohort struct {
	Name   string
	Window date.Range // closed interval during which the cohort may receive allocations
	Weight Weight
}

// Active reports whether the cohort may receive allocations in the period:
// its window must intersect [period.From, period.To].
func (c Cohort) Active(period date.Range) bool { return c.Window.Intersects(period) }

// Registry holds the cohort definitions of a run, in declaration order.
// Declaration order is load-bearing: it is the tie-break of the
// largest-remainder reconciliation.
type Registry struct {
	cohorts []Cohort
	index   map[string]int // index cohorts by name
}

// NewRegistry builds a registry, validating names, windows and weights.
func NewRegistry(cohorts []Cohort) (*Registry, error) {
	r := &Registry{
		cohorts: make([]Cohort, 0, len(cohorts)),
		index:   make(map[string]int, len(cohorts)),
	}
	for _, c := range cohorts {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: cohort with empty name", ErrInvalidConfiguration)
		}
		if _, dup := r.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate cohort %q", ErrInvalidConfiguration, c.Name)
		}
		if !c.Window.IsValid() {
			return nil, fmt.Errorf("%w: cohort %q window ends %s before it starts %s",
				ErrInvalidConfiguration, c.Name, c.Window.To, c.Window.From)
		}
		if c.Weight.IsNegative() {
			return nil, fmt.Errorf("%w: cohort %q has negative weight %s", ErrInvalidConfiguration, c.Name, c.Weight)
		}
		r.index[c.Name] = len(r.cohorts)
		r.cohorts = append(r.cohorts, c)
	}
	return r, nil
}

// Len returns the number of declared cohorts.
func (r *Registry) Len() int { return len(r.cohorts) }

// Cohorts returns all cohorts in declaration order.
func (r *Registry) Cohorts() []Cohort { return r.cohorts }

// Cohort returns the cohort declared with this name, or nil if unknown.
func (r *Registry) Cohort(name string) *Cohort {
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	return &r.cohorts[i]
}

// Active returns the cohorts active in the period, in declaration order.
func (r *Registry) Active(period date.Range) []Cohort {
	active := make([]Cohort, 0, len(r.cohorts))
	for _, c := range r.cohorts {
		if c.Active(period) {
			active = append(active, c)
		}
	}
	return active
}

// WeightsFor renormalizes the active set's declared weights so they sum to 1
// for this period only. Declared weights are relative, not absolute, shares.
// If all active weights are zero the capital cannot be split and the active
// set is treated as empty by the caller.
func WeightsFor(active []Cohort) []Weight {
	var total Weight
	for _, c := range active {
		total = total.Add(c.Weight)
	}
	weights := make([]Weight, len(active))
	if total.IsZero() {
		return weights
	}
	for i, c := range active {
		weights[i] = c.Weight.Over(total)
	}
	return weights
}
