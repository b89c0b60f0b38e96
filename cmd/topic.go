package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/stoier/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "print documentation topics" }
func (*topicCmd) Usage() string {
	topics, _ := docs.Topics()
	return `topic [<topic>...]

  Prints the documentation of the given topics, "*" for all of them.
  Without topic, prints the introduction.

  Topics: ` + strings.Join(topics, ", ") + `
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	md, err := docs.GetTopics(topics...)
	if err != nil {
		return failure("Error reading topic", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// topicNames lists the topics, "*" included.
func topicNames() []string {
	topics, _ := docs.Topics()
	return append(topics, "*")
}
