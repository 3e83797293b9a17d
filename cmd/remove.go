package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch"
	"github.com/google/subcommands"
)

// removeCmd implements the "remove" command.
type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "removes holdings" }
func (*removeCmd) Usage() string {
	return `fw remove <code>...

  Removes the holdings of the given funds.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one fund code is required.")
		return subcommands.ExitUsageError
	}
	codes := make([]fundwatch.Code, 0, f.NArg())
	for _, arg := range f.Args() {
		code, err := fundwatch.ParseCode(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		codes = append(codes, code)
	}

	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	defer CloseStore(s)
	for _, code := range codes {
		if err := s.Remove(code); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", code, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed %s\n", code)
	}
	return subcommands.ExitSuccess
}
