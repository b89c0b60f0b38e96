// Package cmd implements the command line of the stoier bookkeeping pipeline.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stoier"
	"github.com/etnz/stoier/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Stage folders, in pipeline order.
const (
	BookingsDir       = "01_bookings"
	CleanBookingsDir  = "02_clean_bookings"
	UniqueBookingsDir = "03_unique_bookings"
	ValidBookingsDir  = "04_valid_bookings"
	AccountsDir       = "05_accounts"
	ReportDir         = "06_report"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	rootDir = flag.String("root", ".", "Folder holding the stage folders")
	debug   = flag.Bool("debug", false, "Log all diagnostics")
	verbose = flag.Bool("verbose", false, "Log informative diagnostics")
)

// now is the time used to name new snapshots.
var now = time.Now

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// Command is a registered subcommand.
type Command struct {
	subcommands.Command
	Group string
}

// Commands lists every subcommand by group.
var Commands = []Command{
	{&importCmd{}, "pipeline"},
	{&cleanCmd{}, "pipeline"},
	{&dedupCmd{}, "pipeline"},
	{&validateCmd{}, "pipeline"},
	{&suggestCmd{}, "pipeline"},
	{&accountCmd{}, "pipeline"},
	{&reportCmd{}, "pipeline"},
	{&showCmd{}, "inspect"},
	{&sumsCmd{}, "inspect"},
	{&afaCmd{}, "inspect"},
	{&topicCmd{}, "help"},
}

// NewLogger returns the logger configured by the global flags.
func NewLogger() zerolog.Logger { return logger.New(os.Stderr, *debug, *verbose) }

// stage returns the path of a stage folder.
func stage(name string) string { return filepath.Join(*rootDir, name) }

// input returns the path of the snapshot to read: the first argument when
// given, otherwise the stage folder.
func input(f *flag.FlagSet, dir string) string {
	if f.NArg() > 0 {
		return f.Arg(0)
	}
	return stage(dir)
}

// logOf returns the logger of the context.
func logOf(ctx context.Context) *zerolog.Logger { return logger.FromContext(ctx) }

// emit forwards the diagnostics to the logger of the context.
func emit(ctx context.Context, ds stoier.Diagnostics) {
	logger.Emit(*logger.FromContext(ctx), ds)
}

// failure reports err and returns ExitFailure.
func failure(format string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+": %v\n", err)
	return subcommands.ExitFailure
}

// saveRecords writes records as a new JSONL snapshot in the stage folder.
func saveRecords(dir string, records []stoier.Record) (string, error) {
	return stoier.SaveSnapshot(stage(dir), now(), ".jsonl", func(w io.Writer) error {
		return stoier.EncodeRecords(w, records)
	})
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	// raw markdown is still readable.
	fmt.Print(md)
}
