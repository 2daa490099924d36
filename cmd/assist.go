package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/etnz/fifotax/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	inputs
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `fifotax assist -b <transactions.csv> [-w <securities.csv>] [<prompt>]

  Starts an interactive session with an AI assistant knowing your lots and
  taxes. It needs a Gemini API key in GEMINI_API_KEY.
`
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		return usageError(f, err)
	}
	s, err := c.load(opts)
	if err != nil {
		return fail("Error loading inputs: %v", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("Error initializing Gemini's client: %v", err)
	}

	advisor := agent.NewAdvisor(&agent.Reports{
		Holdings: s.Ledger.Holdings(),
		Report:   s.Report(),
		Vap:      s.VapSummary(),
	})
	a := agent.New(os.Stdout, os.Stdin, advisor, agent.NewResearcher())
	a.Render = renderMarkdown

	if err := a.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		return fail("Agent failed: %v", err)
	}
	return subcommands.ExitSuccess
}
