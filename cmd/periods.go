package cmd

import (
	"context"
	"flag"

	"github.com/etnz/pacing/renderer"
	"github.com/google/subcommands"
)

// periodsCmd holds the flags for the 'periods' subcommand.
type periodsCmd struct {
	scenario string
}

func (*periodsCmd) Name() string     { return "periods" }
func (*periodsCmd) Synopsis() string { return "print the generated period schedule" }
func (*periodsCmd) Usage() string {
	return `pce periods -s <scenario>

  Print the ordered periods the simulation would cover, with the grid
  months each period spans. The final period is truncated at the
  timeline end.
`
}

func (c *periodsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenario, "s", "", "Scenario file (YAML or canonical JSON)")
}

func (c *periodsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := loadScenario(c.scenario)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderSchedule(renderer.NewScheduleView(in)))
	return subcommands.ExitSuccess
}
