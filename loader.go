package pacing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/pacing/date"
	"gopkg.in/yaml.v3"
)

// Scenario files describe one run. They are accepted in YAML or in the
// canonical JSON form produced by EncodeInput, detected by file extension.
// Amounts are decimal major units; dates are ISO-8601.

// UnmarshalYAML parses a YAML scalar into an Amount.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseAmount(strings.TrimSpace(node.Value))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalYAML parses a YAML scalar into a Weight.
func (w *Weight) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseWeight(strings.TrimSpace(node.Value))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

type fileFund struct {
	Commitment         Amount `json:"commitment" yaml:"commitment"`
	TargetReservePct   Weight `json:"targetReservePct" yaml:"targetReservePct"`
	MinCashBuffer      Amount `json:"minCashBuffer" yaml:"minCashBuffer"`
	ReservePolicy      string `json:"reservePolicy" yaml:"reservePolicy"`
	ReserveSemantics   string `json:"reserveSemantics" yaml:"reserveSemantics"`
	PacingWindowMonths int    `json:"pacingWindowMonths" yaml:"pacingWindowMonths"`
	Frequency          string `json:"frequency" yaml:"frequency"`
	RebalanceFrequency string `json:"rebalanceFrequency" yaml:"rebalanceFrequency"`
	VintageYear        int    `json:"vintageYear" yaml:"vintageYear"`
	CarryoverShortfall bool   `json:"carryoverShortfall" yaml:"carryoverShortfall"`
}

type fileTimeline struct {
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
}

type fileFlow struct {
	Date            string `json:"date" yaml:"date"`
	Amount          Amount `json:"amount" yaml:"amount"`
	RecycleEligible bool   `json:"recycleEligible" yaml:"recycleEligible"`
}

type fileCohort struct {
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
	Weight    Weight `json:"weight" yaml:"weight"`
}

type fileConstraints struct {
	MaxAllocationPerCohort Weight `json:"maxAllocationPerCohort" yaml:"maxAllocationPerCohort"`
	RecyclingCapPct        Weight `json:"recyclingCapPct" yaml:"recyclingCapPct"`
}

type fileInput struct {
	Fund     fileFund     `json:"fund" yaml:"fund"`
	Timeline fileTimeline `json:"timeline" yaml:"timeline"`
	Flows    struct {
		Contributions []fileFlow `json:"contributions" yaml:"contributions"`
		Distributions []fileFlow `json:"distributions" yaml:"distributions"`
	} `json:"flows" yaml:"flows"`
	Constraints fileConstraints `json:"constraints" yaml:"constraints"`
	Cohorts     []fileCohort    `json:"cohorts" yaml:"cohorts"`
}

func (f *fileInput) build() (*Input, error) {
	policy, err := ParseReservePolicy(f.Fund.ReservePolicy)
	if err != nil {
		return nil, err
	}
	semantics, err := ParseReserveSemantics(f.Fund.ReserveSemantics)
	if err != nil {
		return nil, err
	}
	frequency, err := parsePeriodDefault(f.Fund.Frequency, date.Monthly)
	if err != nil {
		return nil, err
	}
	rebalance, err := parsePeriodDefault(f.Fund.RebalanceFrequency, frequency)
	if err != nil {
		return nil, err
	}

	start, err := date.Parse(f.Timeline.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: timeline start: %v", ErrInvalidTimeline, err)
	}
	end, err := date.Parse(f.Timeline.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: timeline end: %v", ErrInvalidTimeline, err)
	}

	in := &Input{
		Fund: FundParameters{
			Commitment:         f.Fund.Commitment,
			TargetReservePct:   f.Fund.TargetReservePct,
			MinCashBuffer:      f.Fund.MinCashBuffer,
			ReservePolicy:      policy,
			ReserveSemantics:   semantics,
			PacingWindowMonths: f.Fund.PacingWindowMonths,
			Frequency:          frequency,
			RebalanceFrequency: rebalance,
			VintageYear:        f.Fund.VintageYear,
			CarryoverShortfall: f.Fund.CarryoverShortfall,
		},
		Timeline:    Timeline{Start: start, End: end},
		Constraints: Constraints(f.Constraints),
	}

	for _, e := range f.Flows.Contributions {
		ev, err := e.build(Contribution)
		if err != nil {
			return nil, err
		}
		in.Flows.Contributions = append(in.Flows.Contributions, ev)
	}
	for _, e := range f.Flows.Distributions {
		ev, err := e.build(Distribution)
		if err != nil {
			return nil, err
		}
		in.Flows.Distributions = append(in.Flows.Distributions, ev)
	}

	for _, c := range f.Cohorts {
		from, err := date.Parse(c.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: cohort %q start: %v", ErrInvalidConfiguration, c.Name, err)
		}
		to, err := date.Parse(c.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: cohort %q end: %v", ErrInvalidConfiguration, c.Name, err)
		}
		in.Cohorts = append(in.Cohorts, Cohort{
			Name:   c.Name,
			Window: date.Range{From: from, To: to},
			Weight: c.Weight,
		})
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func (e fileFlow) build(kind FlowKind) (CashFlowEvent, error) {
	on, err := date.Parse(e.Date)
	if err != nil {
		return CashFlowEvent{}, fmt.Errorf("%w: %s event: %v", ErrInvalidConfiguration, kind, err)
	}
	ev := CashFlowEvent{Date: on, Amount: e.Amount, Kind: kind, RecycleEligible: e.RecycleEligible}
	return ev, ev.Validate()
}

func parsePeriodDefault(s string, fallback date.Period) (date.Period, error) {
	if s == "" {
		return fallback, nil
	}
	p, err := date.ParsePeriod(s)
	if err != nil {
		return fallback, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return p, nil
}

// LoadInput reads a scenario file. ".yaml"/".yml" files are parsed as YAML,
// anything else as canonical JSON.
func LoadInput(path string) (*Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scenario %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeInputYAML(raw)
	default:
		return DecodeInputJSON(raw)
	}
}

// DecodeInputYAML parses a YAML scenario document.
func DecodeInputYAML(raw []byte) (*Input, error) {
	var f fileInput
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return f.build()
}

// DecodeInputJSON parses a canonical JSON scenario document.
func DecodeInputJSON(raw []byte) (*Input, error) {
	var f fileInput
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return f.build()
}
