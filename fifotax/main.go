// Command fifotax computes the German capital income tax of the positions
// exported from PortfolioPerformance.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fifotax/cmd"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var verbose = flag.Int("v", 0, "Verbosity: 0 for warnings, 1 for information, 2 for debug.")

func main() {
	// exits when called by the shell to complete the command line.
	cmd.Completion().Complete("fifotax")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	setupLogging(*verbose)
	os.Exit(int(commander.Execute(context.Background())))
}

func setupLogging(verbosity int) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	switch {
	case verbosity >= 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case verbosity == 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
