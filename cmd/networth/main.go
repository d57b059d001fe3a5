// Command networth prints net worth reports and edits entries from the terminal
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range reportCommands {
		commander.Register(c, "reports")
	}
	for _, c := range entryCommands {
		commander.Register(c, "entries")
	}
	for _, c := range dataCommands {
		commander.Register(c, "data")
	}
	commander.Register(&statusCmd{}, "remote")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

var reportCommands = []subcommands.Command{
	&categoriesCmd{},
	&summaryCmd{},
	&projectionCmd{},
	&historyCmd{},
}

var entryCommands = []subcommands.Command{
	&addCmd{},
	&setRateCmd{},
}

var dataCommands = []subcommands.Command{
	&importCmd{},
	&exportCmd{},
}
