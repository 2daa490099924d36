package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fifotax"
	"github.com/etnz/fifotax/xlsx"
	"github.com/google/subcommands"
)

// reportCmd writes the Excel workbook.
type reportCmd struct {
	inputs
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "write the tax report workbook" }
func (*reportCmd) Usage() string {
	return `fifotax report -b <transactions.csv> [-w <securities.csv>] [-o <Ergebnisse.xlsx>]

  Replays the transactions and writes an Excel workbook with the
  Vorabpauschale summary and one sheet per depot and security, listing the
  remaining lots and the tax due if they were sold at the latest quote.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.inputs.SetFlags(f)
	f.StringVar(&c.output, "o", "Ergebnisse.xlsx", "Output workbook.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		return usageError(f, err)
	}
	s, err := c.load(opts)
	if err != nil {
		return fail("Error loading inputs: %v", err)
	}
	if err := xlsx.Save(c.output, s.Report(), s.VapSummary(), &fifotax.Warnings{}); err != nil {
		return fail("Error writing report: %v", err)
	}
	return subcommands.ExitSuccess
}
