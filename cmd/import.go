package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stoier"
	"github.com/google/subcommands"
)

type importCmd struct {
	skip      int
	trigger   string
	header    string
	encoding  string
	delimiter string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import bank CSV exports into a bookings snapshot" }
func (*importCmd) Usage() string {
	return `import [-skip N | -trigger COL:TEXT[:OFFSET]] [-header a:b:c] <export.csv>...

  Reads every CSV export and writes their rows, in order, into a new
  snapshot of ` + BookingsDir + `.

  The header row is the first row after the skipped ones, or the row OFFSET
  rows after the first row whose column COL is TEXT. With -header, that row is
  read as data.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.skip, "skip", 0, "number of rows before the header row")
	f.StringVar(&c.trigger, "trigger", "", "locate the header row with COL:TEXT[:OFFSET]")
	f.StringVar(&c.header, "header", "", "colon separated column names, replaces the header row")
	f.StringVar(&c.encoding, "encoding", "latin1", "input encoding: latin1 or utf8")
	f.StringVar(&c.delimiter, "delimiter", ";", "field delimiter")
}

func (c *importCmd) config() (stoier.ImportConfig, error) {
	cfg := stoier.ImportConfig{Skip: c.skip}
	trigger, err := stoier.ParseTrigger(c.trigger)
	if err != nil {
		return cfg, err
	}
	cfg.Trigger = trigger
	if c.header != "" {
		cfg.Header = strings.Split(c.header, ":")
	}
	switch strings.ToLower(c.encoding) {
	case "latin1", "iso-8859-1":
		cfg.Latin1 = true
	case "utf8", "utf-8":
	default:
		return cfg, &stoier.InputFormatError{Field: "encoding", Value: c.encoding}
	}
	if r := []rune(c.delimiter); len(r) == 1 {
		cfg.Comma = r[0]
	} else {
		return cfg, &stoier.InputFormatError{Field: "delimiter", Value: c.delimiter}
	}
	return cfg, nil
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "import requires at least one CSV export")
		return subcommands.ExitUsageError
	}
	cfg, err := c.config()
	if err != nil {
		return failure("Error in flags", err)
	}
	log := logOf(ctx)

	var records []stoier.Record
	for _, name := range f.Args() {
		file, err := os.Open(name)
		if err != nil {
			return failure("Error opening export", err)
		}
		rows, err := stoier.ImportCSV(file, cfg)
		file.Close()
		if err != nil {
			return failure(fmt.Sprintf("Error importing %q", name), err)
		}
		log.Info().Str("file", name).Int("records", len(rows)).Msg("imported")
		records = append(records, rows...)
	}

	path, err := saveRecords(BookingsDir, records)
	if err != nil {
		return failure("Error saving bookings", err)
	}
	fmt.Fprintf(os.Stderr, "%d records written to %s\n", len(records), path)
	return subcommands.ExitSuccess
}
