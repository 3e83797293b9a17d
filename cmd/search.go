package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// searchCmd implements the "search" command.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "searches funds by name or code" }
func (*searchCmd) Usage() string {
	return `fw search <search term>

  Searches funds and prints ready-to-use 'fw add' commands for the results.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	searchTerm := strings.Join(f.Args(), " ")

	results, err := newSearcher().Search(ctx, searchTerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching funds: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(results) == 0 {
		fmt.Printf("No results found for '%s'.\n", searchTerm)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(results), searchTerm)
	for _, item := range results {
		fmt.Printf("➡️   Name     : %s (%s)\n", item.Name, item.Code)
		fmt.Printf("    Category : %s\n", item.Category)
		fmt.Printf("    $ fw add -s <units> %s\n\n", item.Code)
	}
	return subcommands.ExitSuccess
}
