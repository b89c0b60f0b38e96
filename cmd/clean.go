package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stoier"
	"github.com/google/subcommands"
)

type cleanCmd struct {
	cfg stoier.CleanConfig
}

func (*cleanCmd) Name() string     { return "clean" }
func (*cleanCmd) Synopsis() string { return "normalize amounts and details of the latest bookings" }
func (*cleanCmd) Usage() string {
	return `clean [<bookings>]

  Converts amount and balance from the bank format ("-1.234,56 €") into
  plain decimals and strips bank boilerplate from the details. Reads the
  latest snapshot of ` + BookingsDir + ` unless a file is given, and writes a
  snapshot into ` + CleanBookingsDir + `.
`
}

func (c *cleanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cfg.AmountColumn, "amount-col", "amount", "amount column")
	f.StringVar(&c.cfg.BalanceColumn, "balance-col", "balance", "balance column")
	f.StringVar(&c.cfg.DetailsColumn, "details-col", "details", "details column")
}

func (c *cleanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file, err := stoier.LatestSnapshot(input(f, BookingsDir), ".jsonl")
	if err != nil {
		return failure("Error locating bookings", err)
	}
	logOf(ctx).Debug().Str("file", file).Msg("cleaning")
	records, err := stoier.ReadRecords(file)
	if err != nil {
		return failure("Error reading bookings", err)
	}
	for i, r := range records {
		if records[i], err = stoier.Clean(r, c.cfg); err != nil {
			return failure(fmt.Sprintf("Error cleaning record %d", i+1), err)
		}
	}
	path, err := saveRecords(CleanBookingsDir, records)
	if err != nil {
		return failure("Error saving clean bookings", err)
	}
	fmt.Fprintf(os.Stderr, "%d records written to %s\n", len(records), path)
	return subcommands.ExitSuccess
}
