package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/etnz/stoier"
	"github.com/etnz/stoier/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type suggestCmd struct {
	net   string
	gross string
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "ask Gemini to pre-fill the unassigned transactions" }
func (*suggestCmd) Usage() string {
	return `suggest [-net a:b] [-gross c:d]

  Sends the transactions of the latest assignments of ` + ValidBookingsDir + `
  that have no account yet to Gemini, and writes a new snapshot with the
  accounts it proposes. Only accounts already used in the assignments, or
  listed with -net and -gross, can be proposed.

  The Gemini client reads its credentials from the environment
  (GEMINI_API_KEY or GOOGLE_API_KEY).
`
}

func (c *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.net, "net", "", "colon separated net accounts to choose from")
	f.StringVar(&c.gross, "gross", "", "colon separated gross accounts to choose from")
}

// names merges a colon separated list into known names.
func names(known []string, list string) []string {
	if list != "" {
		known = append(known, strings.Split(list, ":")...)
	}
	slices.Sort(known)
	return slices.Compact(known)
}

func (c *suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, _, err := stoier.LoadLedger(stage(UniqueBookingsDir))
	if err != nil {
		return failure("Error loading ledger", err)
	}
	as, file, err := stoier.LoadAssignments(input(f, ValidBookingsDir))
	if err != nil {
		return failure("Error loading assignments", err)
	}
	net, gross := as.AccountNames()
	net, gross = names(net, c.net), names(gross, c.gross)
	if len(net)+len(gross) == 0 {
		fmt.Fprintln(os.Stderr, "no account to choose from, use -net or -gross")
		return subcommands.ExitUsageError
	}
	logOf(ctx).Debug().Str("file", file).Strs("net", net).Strs("gross", gross).Msg("suggesting")

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return failure("Error initializing Gemini's client", err)
	}
	filled, diags, err := agent.NewSuggester(client.Models, net, gross).Suggest(ctx, l, as)
	emit(ctx, diags)
	if err != nil {
		return failure("Error suggesting accounts", err)
	}
	path, err := stoier.SaveSnapshot(stage(ValidBookingsDir), now(), ".json", func(w io.Writer) error {
		return stoier.EncodeAssignments(w, as)
	})
	if err != nil {
		return failure("Error saving assignments", err)
	}
	fmt.Fprintf(os.Stderr, "%d assignments filled, written to %s\n", filled, path)
	return subcommands.ExitSuccess
}
