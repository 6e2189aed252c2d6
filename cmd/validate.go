package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing"
	"github.com/google/subcommands"
)

// validateCmd holds the flags for the 'validate' subcommand.
type validateCmd struct {
	scenario string
	canonic  bool
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check a scenario file without simulating" }
func (*validateCmd) Usage() string {
	return `pce validate -s <scenario> [-fmt]

  Load the scenario and run all fail-fast configuration checks: commitment
  and buffer magnitudes, pacing window, cap fractions, timeline, cohort
  names, windows and weights. With -fmt, also print the scenario back in
  canonical JSON form.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenario, "s", "", "Scenario file (YAML or canonical JSON)")
	f.BoolVar(&c.canonic, "fmt", false, "Print the scenario in canonical JSON form")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := loadScenario(c.scenario)
	if err != nil {
		return fail(err)
	}
	if c.canonic {
		if err := pacing.EncodeInput(os.Stdout, in); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	fmt.Printf("Scenario %s is valid: %d cohorts, %d periods.\n",
		c.scenario, len(in.Cohorts), len(pacing.Periods(in.Timeline, in.Fund.Frequency)))
	return subcommands.ExitSuccess
}
