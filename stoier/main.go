package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stoier/cmd"
	"github.com/etnz/stoier/logger"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	// exits when invoked by the shell for completion.
	cmd.Completion().Complete(name)

	flag.Parse()
	ctx := logger.WithContext(context.Background(), cmd.NewLogger())
	os.Exit(int(commander.Execute(ctx)))
}
