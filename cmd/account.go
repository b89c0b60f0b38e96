package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stoier"
	"github.com/google/subcommands"
)

// BookingsCSV is the spreadsheet export written next to the accounts.
const BookingsCSV = "bookings.csv"

type accountCmd struct {
	vat       int
	vatName   string
	amountCol string
	header    string
	noGross   bool
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "book the ledger into net, gross and VAT accounts" }
func (*accountCmd) Usage() string {
	return `account [-vat 19] [-vat-name vat]

  Books every transaction of the latest ledger of ` + UniqueBookingsDir + `
  according to the latest assignments of ` + ValidBookingsDir + `, and writes
  one file per account plus ` + BookingsCSV + ` into a new snapshot folder of
  ` + AccountsDir + `.

  Nothing is written if any transaction cannot be booked.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.vat, "vat", stoier.DefaultVatRate, "default VAT percentage")
	f.StringVar(&c.vatName, "vat-name", "vat", "name of the VAT account")
	f.StringVar(&c.amountCol, "amount-col", "amount", "amount column")
	f.StringVar(&c.header, "header", strings.Join(stoier.DefaultHeader, ":"), "colon separated columns of "+BookingsCSV)
	f.BoolVar(&c.noGross, "no-gross-csv", false, "omit gross account columns from "+BookingsCSV)
}

func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.vat < 0 || c.vat >= 100 {
		fmt.Fprintf(os.Stderr, "invalid -vat %d\n", c.vat)
		return subcommands.ExitUsageError
	}
	l, ledgerFile, err := stoier.LoadLedger(stage(UniqueBookingsDir))
	if err != nil {
		return failure("Error loading ledger", err)
	}
	as, assignmentsFile, err := stoier.LoadAssignments(input(f, ValidBookingsDir))
	if err != nil {
		return failure("Error loading assignments", err)
	}
	log := logOf(ctx)
	log.Debug().Str("ledger", ledgerFile).Str("assignments", assignmentsFile).Msg("booking")

	b := stoier.NewBooker(stoier.BookerConfig{
		VatRate:      c.vat,
		VatName:      c.vatName,
		AmountColumn: c.amountCol,
		Header:       strings.Split(c.header, ":"),
	})
	diags, err := b.Book(l, as)
	emit(ctx, diags)
	if err != nil {
		return failure("Error booking", err)
	}

	path, err := stoier.SaveSnapshotDir(stage(AccountsDir), now(), func(dir string) error {
		for _, acc := range b.Accounts() {
			err := stoier.WriteFile(filepath.Join(dir, acc.Name()+".json"), func(w io.Writer) error {
				return stoier.EncodeAccount(w, acc, b.RunID())
			})
			if err != nil {
				return err
			}
		}
		return stoier.WriteFile(filepath.Join(dir, BookingsCSV), func(w io.Writer) error {
			return stoier.WriteCSV(w, b.Columns(c.noGross), b.Rows())
		})
	})
	if err != nil {
		return failure("Error saving accounts", err)
	}
	b.Finalize()
	log.Info().Str("run", b.RunID()).Msg("booked")
	fmt.Fprintf(os.Stderr, "%d accounts written to %s\n", len(b.Accounts()), path)
	return subcommands.ExitSuccess
}
