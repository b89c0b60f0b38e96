package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stoier"
	"github.com/google/subcommands"
)

type validateCmd struct {
	amountCol  string
	balanceCol string
	lookup     string
	lookupPath string
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check balances and write the assignment skeleton" }
func (*validateCmd) Usage() string {
	return `validate [-lookup lookup.json] [<ledger>]

  Checks that every balance of the latest ledger in ` + UniqueBookingsDir + ` is
  the previous balance plus the amount, and writes an assignment skeleton into
  ` + ValidBookingsDir + `. Balance mismatches are reported but do not stop the
  stage.

  With -lookup, transactions of a known counterparty get its account.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amountCol, "amount-col", "amount", "amount column")
	f.StringVar(&c.balanceCol, "balance-col", "balance", "balance column")
	f.StringVar(&c.lookup, "lookup", "", "lookup table of counterparty accounts")
	f.StringVar(&c.lookupPath, "lookup-path", stoier.DefaultSenderPath, "JSONPath of the counterparty in a record")
}

func (c *validateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lookup, err := stoier.LoadLookup(c.lookup)
	if err != nil {
		return failure("Error loading lookup table", err)
	}
	if lookup != nil {
		lookup.Path = c.lookupPath
	}
	l, file, err := stoier.LoadLedger(input(f, UniqueBookingsDir))
	if err != nil {
		return failure("Error loading ledger", err)
	}
	logOf(ctx).Debug().Str("file", file).Int("records", l.Len()).Msg("validating")

	skeleton, diags, err := stoier.Validate(l, stoier.ValidateConfig{AmountColumn: c.amountCol, BalanceColumn: c.balanceCol, Lookup: lookup})
	emit(ctx, diags)
	if err != nil {
		return failure("Error validating ledger", err)
	}
	path, err := stoier.SaveSnapshot(stage(ValidBookingsDir), now(), ".json", func(w io.Writer) error {
		return stoier.EncodeAssignments(w, skeleton)
	})
	if err != nil {
		return failure("Error saving assignments", err)
	}
	if n := len(diags.Of(stoier.KindBalanceMismatch)); n > 0 {
		fmt.Fprintf(os.Stderr, "%d balance mismatches\n", n)
	}
	fmt.Fprintf(os.Stderr, "%d assignments written to %s\n", skeleton.Len(), path)
	return subcommands.ExitSuccess
}
