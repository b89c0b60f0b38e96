package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stoier"
	"github.com/etnz/stoier/date"
	"github.com/etnz/stoier/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	start string
	wait  bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print the records of the ledger" }
func (*showCmd) Usage() string {
	return `show [-start DATE] [-wait] [<ledger>]

  Prints every record of the latest ledger of ` + UniqueBookingsDir + `, from
  DATE on. With -wait, Enter shows the next record.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "first date to show (ISO)")
	f.BoolVar(&c.wait, "wait", false, "wait for Enter between records")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var start date.Date
	if c.start != "" {
		var err error
		if start, err = date.Parse(c.start); err != nil {
			return failure("Error in -start", err)
		}
	}
	l, _, err := stoier.LoadLedger(input(f, UniqueBookingsDir))
	if err != nil {
		return failure("Error loading ledger", err)
	}
	in := bufio.NewScanner(os.Stdin)
	for id, r := range l.From(start) {
		md, err := renderer.RenderRecord(id, r)
		if err != nil {
			return failure("Error rendering record", err)
		}
		printMarkdown(md)
		if c.wait {
			fmt.Fprint(os.Stderr, "[Enter] next, [Ctrl-D] quit ")
			if !in.Scan() {
				break
			}
		}
	}
	return subcommands.ExitSuccess
}
