package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fifotax/renderer"
	"github.com/google/subcommands"
)

// taxesCmd displays the tax totals.
type taxesCmd struct {
	inputs
}

func (*taxesCmd) Name() string     { return "taxes" }
func (*taxesCmd) Synopsis() string { return "display the tax due per depot" }
func (*taxesCmd) Usage() string {
	return `fifotax taxes -b <transactions.csv> -w <securities.csv> [-kirche-8|-kirche-9] [-assume-gains]

  Displays the tax due per depot and in total, if every position was sold
  at its latest quote.
`
}

func (c *taxesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		return usageError(f, err)
	}
	s, err := c.load(opts)
	if err != nil {
		return fail("Error loading inputs: %v", err)
	}
	printMarkdown(renderer.TaxMarkdown(s.Report()))
	return subcommands.ExitSuccess
}
