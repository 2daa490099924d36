package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fifotax/docs"
	"github.com/google/subcommands"
)

// topicCmd displays the embedded documentation.
type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `fifotax topic [<topic>...]

  Shows the documentation of the topics, or the list of topics. '*' shows
  all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return fail("Error reading doc: %v", err)
	}
	printMarkdown(doc)

	return subcommands.ExitSuccess
}
