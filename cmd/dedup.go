package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/etnz/stoier"
	"github.com/etnz/stoier/date"
	"github.com/google/subcommands"
)

type dedupCmd struct {
	dateCol   string
	format    string
	senderCol string
	start     string
	end       string
	senders   string
}

func (*dedupCmd) Name() string     { return "dedup" }
func (*dedupCmd) Synopsis() string { return "merge clean bookings into a ledger without duplicates" }
func (*dedupCmd) Usage() string {
	return `dedup [-start DATE] [-end DATE] [<bookings>...]

  Reads every snapshot of ` + CleanBookingsDir + `, oldest first, or the given
  files, and writes the ledger of unique records into ` + UniqueBookingsDir + `.
  Records with the exact same content are kept once. DATE is an ISO date
  (2006-01-02).
`
}

func (c *dedupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dateCol, "date-col", "date_1", "date column")
	f.StringVar(&c.format, "format", stoier.DefaultDateFormat, "date format of the date column")
	f.StringVar(&c.senderCol, "sender-col", "sender", "sender column")
	f.StringVar(&c.start, "start", "", "first date to keep (ISO)")
	f.StringVar(&c.end, "end", "", "last date to keep (ISO)")
	f.StringVar(&c.senders, "senders", "", "also write a lookup table template with every sender to this file")
}

func (c *dedupCmd) config() (stoier.DedupConfig, error) {
	cfg := stoier.DedupConfig{DateColumn: c.dateCol, DateFormat: c.format, SenderColumn: c.senderCol}
	var err error
	if c.start != "" {
		if cfg.Window.From, err = date.Parse(c.start); err != nil {
			return cfg, &stoier.InputFormatError{Field: "start", Value: c.start, Err: err}
		}
	}
	if c.end != "" {
		if cfg.Window.To, err = date.Parse(c.end); err != nil {
			return cfg, &stoier.InputFormatError{Field: "end", Value: c.end, Err: err}
		}
	}
	return cfg, nil
}

func (c *dedupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.config()
	if err != nil {
		return failure("Error in flags", err)
	}
	files := f.Args()
	if len(files) == 0 {
		if files, err = stoier.Snapshots(stage(CleanBookingsDir), ".jsonl"); err != nil {
			return failure("Error locating clean bookings", err)
		}
		if len(files) == 0 {
			return failure("Error locating clean bookings", &stoier.NotFoundError{What: "snapshot in " + stage(CleanBookingsDir)})
		}
	}

	d := stoier.NewDeduplicator(cfg)
	for _, file := range files {
		records, err := stoier.ReadRecords(file)
		if err != nil {
			return failure("Error reading bookings", err)
		}
		if err := d.Add(slices.Values(records)); err != nil {
			emit(ctx, d.Diagnostics())
			return failure(fmt.Sprintf("Error in %q", file), err)
		}
	}
	emit(ctx, d.Diagnostics())
	l := d.Ledger()

	path, err := stoier.SaveSnapshot(stage(UniqueBookingsDir), now(), ".json", func(w io.Writer) error {
		return stoier.EncodeLedger(w, l)
	})
	if err != nil {
		return failure("Error saving ledger", err)
	}
	fmt.Fprintf(os.Stderr, "%d unique records (%d duplicates) written to %s\n", l.Len(), len(d.Diagnostics().Of(stoier.KindDuplicate)), path)

	if c.senders != "" {
		err := stoier.WriteFile(c.senders, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(stoier.LookupTemplate(l.Senders()))
		})
		if err != nil {
			return failure("Error writing senders", err)
		}
		fmt.Fprintf(os.Stderr, "%d senders written to %s\n", len(l.Senders()), c.senders)
	}
	return subcommands.ExitSuccess
}
