// Package cmd implements the CLI application to run the pacing engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pacing"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
// A main package registers each of them and executes the user-selected one.
var Commands = []subcommands.Command{
	&runCmd{},
	&periodsCmd{},
	&allocateCmd{},
	&validateCmd{},
	&topicCmd{},
}

// loadScenario reads and validates the scenario file shared by most commands.
func loadScenario(path string) (*pacing.Input, error) {
	if path == "" {
		return nil, fmt.Errorf("missing -s scenario file")
	}
	return pacing.LoadInput(path)
}

// printMarkdown renders markdown to the terminal. If the terminal renderer
// fails, the raw markdown is printed instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Println(out)
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
