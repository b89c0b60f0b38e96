package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/etnz/stoier"
	"github.com/etnz/stoier/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	invoices string
	currency string
	serve    bool
	port     int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render the accounts as a static HTML report" }
func (*reportCmd) Usage() string {
	return `report [-invoices DIR] [-serve] [<accounts>]

  Renders one statement page per account of the latest snapshot of
  ` + AccountsDir + ` and an index page with the sums, into a new snapshot
  folder of ` + ReportDir + `.

  With -serve, the report is then served on http://localhost:PORT.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.invoices, "invoices", "", "folder holding one sub-folder of invoices per account")
	f.StringVar(&c.currency, "currency", "EUR", "currency of the amounts")
	f.BoolVar(&c.serve, "serve", false, "serve the report once written")
	f.IntVar(&c.port, "port", 8000, "port of the report server")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dir, err := stoier.LatestSnapshot(input(f, AccountsDir), "")
	if err != nil {
		return failure("Error locating accounts", err)
	}
	accounts, err := stoier.LoadAccounts(dir)
	if err != nil {
		return failure("Error loading accounts", err)
	}
	report := &renderer.Report{Accounts: accounts, Currency: c.currency}
	if c.invoices != "" {
		if report.Invoices, err = renderer.LoadInvoices(c.invoices); err != nil {
			return failure("Error loading invoices", err)
		}
	}
	log := logOf(ctx)
	log.Debug().Str("accounts", dir).Int("count", len(accounts)).Msg("rendering")

	path, err := stoier.SaveSnapshotDir(stage(ReportDir), now(), func(tmp string) error {
		files, err := report.Write(tmp)
		log.Debug().Int("files", len(files)).Msg("rendered")
		return err
	})
	if err != nil {
		return failure("Error writing report", err)
	}
	fmt.Fprintf(os.Stderr, "report written to %s\n", filepath.Join(path, "index.html"))

	if !c.serve {
		return subcommands.ExitSuccess
	}
	addr := fmt.Sprintf("localhost:%d", c.port)
	fmt.Fprintf(os.Stderr, "serving on http://%s/\n", addr)
	if err := http.ListenAndServe(addr, http.FileServer(http.Dir(path))); err != nil {
		return failure("Error serving report", err)
	}
	return subcommands.ExitSuccess
}
