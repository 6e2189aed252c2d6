package pacing

import (
	"errors"
	"testing"

	"github.com/etnz/pacing/date"
)

func TestNewRegistry(t *testing.T) {
	window := date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-12-31")}
	testCases := []struct {
		name    string
		cohorts []Cohort
		wantErr bool
	}{
		{
			name:    "valid",
			cohorts: []Cohort{{Name: "a", Window: window, Weight: W(1)}, {Name: "b", Window: window, Weight: W(2)}},
		},
		{
			name:    "empty name",
			cohorts: []Cohort{{Name: "", Window: window, Weight: W(1)}},
			wantErr: true,
		},
		{
			name:    "duplicate name",
			cohorts: []Cohort{{Name: "a", Window: window, Weight: W(1)}, {Name: "a", Window: window, Weight: W(1)}},
			wantErr: true,
		},
		{
			name:    "inverted window",
			cohorts: []Cohort{{Name: "a", Window: date.Range{From: window.To, To: window.From}, Weight: W(1)}},
			wantErr: true,
		},
		{
			name:    "negative weight",
			cohorts: []Cohort{{Name: "a", Window: window, Weight: W(-0.5)}},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		_, err := NewRegistry(tc.cohorts)
		if tc.wantErr && !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: NewRegistry() error = %v, want ErrInvalidConfiguration", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: NewRegistry() error = %v", tc.name, err)
		}
	}
}

func TestRegistryActive(t *testing.T) {
	early := Cohort{Name: "early", Window: date.Range{From: date.MustParse("2025-01-01"), To: date.MustParse("2025-06-30")}, Weight: W(1)}
	late := Cohort{Name: "late", Window: date.Range{From: date.MustParse("2025-07-01"), To: date.MustParse("2025-12-31")}, Weight: W(1)}
	r, err := NewRegistry([]Cohort{early, late})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	testCases := []struct {
		name   string
		period date.Range
		want   []string
	}{
		{
			name:   "first half",
			period: date.Range{From: date.MustParse("2025-02-01"), To: date.MustParse("2025-02-28")},
			want:   []string{"early"},
		},
		{
			name:   "second half",
			period: date.Range{From: date.MustParse("2025-08-01"), To: date.MustParse("2025-08-31")},
			want:   []string{"late"},
		},
		{
			name:   "straddling both windows",
			period: date.Range{From: date.MustParse("2025-06-15"), To: date.MustParse("2025-07-15")},
			want:   []string{"early", "late"},
		},
		{
			name:   "outside all windows",
			period: date.Range{From: date.MustParse("2026-01-01"), To: date.MustParse("2026-01-31")},
			want:   nil,
		},
	}
	for _, tc := range testCases {
		active := r.Active(tc.period)
		if len(active) != len(tc.want) {
			t.Errorf("%s: got %d active cohorts, want %d", tc.name, len(active), len(tc.want))
			continue
		}
		for i, name := range tc.want {
			if active[i].Name != name {
				t.Errorf("%s: active[%d] = %q, want %q", tc.name, i, active[i].Name, name)
			}
		}
	}
}

func TestRegistryCohort(t *testing.T) {
	r, err := NewRegistry([]Cohort{testCohort("a", W(1))})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if c := r.Cohort("a"); c == nil || c.Name != "a" {
		t.Errorf("Cohort(a) = %v", c)
	}
	if c := r.Cohort("missing"); c != nil {
		t.Errorf("Cohort(missing) = %v, want nil", c)
	}
}

func TestWeightsFor(t *testing.T) {
	// Declared weights are relative shares: 1/3 renormalizes to 0.25/0.75.
	active := []Cohort{testCohort("a", W(1)), testCohort("b", W(3))}
	weights := WeightsFor(active)
	if !weights[0].Equal(W(0.25)) || !weights[1].Equal(W(0.75)) {
		t.Errorf("WeightsFor(1,3) = %s, %s, want 0.25, 0.75", weights[0], weights[1])
	}

	// An all-zero active set cannot be renormalized; weights stay zero.
	zero := WeightsFor([]Cohort{testCohort("a", W(0)), testCohort("b", W(0))})
	for i, w := range zero {
		if !w.IsZero() {
			t.Errorf("WeightsFor(all zero)[%d] = %s, want 0", i, w)
		}
	}
}
