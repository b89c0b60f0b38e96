package cmd

import (
	"context"
	"flag"

	"github.com/etnz/stoier"
	"github.com/etnz/stoier/renderer"
	"github.com/google/subcommands"
)

type sumsCmd struct {
	currency string
}

func (*sumsCmd) Name() string     { return "sums" }
func (*sumsCmd) Synopsis() string { return "print the sum of every account" }
func (*sumsCmd) Usage() string {
	return `sums [<accounts>]

  Prints the sum of every account of the latest snapshot of ` + AccountsDir + `.
`
}

func (c *sumsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "EUR", "currency of the amounts")
}

func (c *sumsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dir, err := stoier.LatestSnapshot(input(f, AccountsDir), "")
	if err != nil {
		return failure("Error locating accounts", err)
	}
	accounts, err := stoier.LoadAccounts(dir)
	if err != nil {
		return failure("Error loading accounts", err)
	}
	md, err := renderer.RenderSums(renderer.NewSums(accounts, c.currency))
	if err != nil {
		return failure("Error rendering sums", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
