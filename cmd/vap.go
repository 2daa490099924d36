package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fifotax/renderer"
	"github.com/google/subcommands"
)

// vapCmd displays the Vorabpauschale summary.
type vapCmd struct {
	inputs
}

func (*vapCmd) Name() string     { return "vap" }
func (*vapCmd) Synopsis() string { return "display the Vorabpauschale of the remaining shares" }
func (*vapCmd) Usage() string {
	return `fifotax vap -b <transactions.csv> [-vap <etf_vorabpauschalen.csv>] [-metadata <etf_metadaten.csv>]

  Displays the Vorabpauschale accrued by the remaining shares, per fund,
  depot and year, before and after partial exemption.
`
}

func (c *vapCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		return usageError(f, err)
	}
	s, err := c.load(opts)
	if err != nil {
		return fail("Error loading inputs: %v", err)
	}
	printMarkdown(renderer.VapMarkdown(s.VapSummary()))
	return subcommands.ExitSuccess
}
