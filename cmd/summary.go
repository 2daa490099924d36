package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fifotax/renderer"
	"github.com/google/subcommands"
)

// summaryCmd displays the remaining shares.
type summaryCmd struct {
	inputs
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the remaining shares per depot and security" }
func (*summaryCmd) Usage() string {
	return `fifotax summary -b <transactions.csv>

  Replays the transactions and displays the shares left in every depot.
`
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		return usageError(f, err)
	}
	s, err := c.load(opts)
	if err != nil {
		return fail("Error loading inputs: %v", err)
	}
	printMarkdown(renderer.HoldingsMarkdown(s.Ledger.Holdings()))
	return subcommands.ExitSuccess
}
