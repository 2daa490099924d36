package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fifotax/renderer"
	"github.com/google/subcommands"
)

// lotsCmd displays the taxation of every lot.
type lotsCmd struct {
	inputs
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the remaining lots and their taxation" }
func (*lotsCmd) Usage() string {
	return `fifotax lots -b <transactions.csv> [-w <securities.csv>]

  Displays the remaining lots of every depot and security, oldest first,
  with their acquisition cost including Vorabpauschale and, when the latest
  quote is known, the tax due if they were sold.
`
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		return usageError(f, err)
	}
	s, err := c.load(opts)
	if err != nil {
		return fail("Error loading inputs: %v", err)
	}
	printMarkdown(renderer.LotsMarkdown(s.Report()))
	return subcommands.ExitSuccess
}
