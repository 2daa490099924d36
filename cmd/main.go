// Package cmd implements the fifotax command line subcommands.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// Commands are the fifotax subcommands, by group.
var Commands = map[string][]subcommands.Command{
	"reports": {
		&reportCmd{},
		&summaryCmd{},
		&lotsCmd{},
		&taxesCmd{},
		&vapCmd{},
	},
	"help": {
		&topicCmd{},
		&assistCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range []string{"reports", "help"} {
		for _, command := range Commands[group] {
			c.Register(command, group)
		}
	}
}

// printMarkdown renders md for the terminal, or prints it raw when it
// cannot be rendered.
func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}

func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Debug().Err(err).Msg("cannot create markdown renderer")
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		return md
	}
	return out
}

// usageError prints a flag error and the usage of the command.
func usageError(f *flag.FlagSet, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	f.Usage()
	return subcommands.ExitUsageError
}

// fail prints the error of a command and returns its failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
