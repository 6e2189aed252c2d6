package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pacing"
	"github.com/etnz/pacing/renderer"
	"github.com/google/subcommands"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	scenario string
	json     bool
	raw      bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "simulate a fund scenario" }
func (*runCmd) Usage() string {
	return `pce run -s <scenario> [-json] [-raw]

  Simulate the scenario over its whole timeline and print the report.
  -json prints the canonical JSON record instead of the markdown report;
  -raw prints the markdown without terminal styling.

Usage Examples:
# Render the report for a scenario.
$ pce run -s fund.yaml

# Produce the canonical audit record.
$ pce run -s fund.yaml -json > record.json
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenario, "s", "", "Scenario file (YAML or canonical JSON)")
	f.BoolVar(&c.json, "json", false, "Print the canonical JSON record")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown without terminal styling")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := loadScenario(c.scenario)
	if err != nil {
		return fail(err)
	}
	result, err := pacing.Simulate(in)
	if err != nil {
		return fail(err)
	}

	if c.json {
		if err := pacing.EncodeResult(os.Stdout, result); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	md := renderer.RenderReport(renderer.NewReport(in, result))
	if c.raw {
		fmt.Println(md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
