package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/stoier/afa"
	"github.com/google/subcommands"
)

type afaCmd struct {
	year int
}

func (*afaCmd) Name() string     { return "afa" }
func (*afaCmd) Synopsis() string { return "print the yearly depreciation of assets" }
func (*afaCmd) Usage() string {
	return `afa [-year YYYY] <assets>

  Prints the straight-line depreciation (AfA) of every asset described by a
  json file of the <assets> folder, for the given year.
`
}

func (c *afaCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", now().Year()-1, "fiscal year")
}

func (c *afaCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	assets, err := afa.LoadDir(f.Arg(0))
	if err != nil {
		return failure("Error loading assets", err)
	}
	log := logOf(ctx)
	for _, a := range assets {
		v, err := a.Value(c.year)
		if errors.Is(err, afa.ErrNotPurchased) {
			log.Info().Str("asset", a.Name).Int("year", c.year).Msg("not purchased yet")
			continue
		}
		if err != nil {
			return failure("Error computing depreciation", err)
		}
		fmt.Printf("%s %d: %s\n", a.Name, c.year, v.StringFixed(afa.Round))
	}
	return subcommands.ExitSuccess
}
