package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch"
	"github.com/google/subcommands"
)

// addCmd implements the "add" command.
type addCmd struct {
	share string
	cost  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "adds or replaces a holding" }
func (*addCmd) Usage() string {
	return `fw add -s <units> [-c <cost>] <code>

  Adds a holding of <units> of the fund <code> (6 digits), optionally with its
  total cost. An existing holding of the same fund is replaced.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.share, "s", "", "number of units held")
	f.StringVar(&c.cost, "c", "", "total cost of the holding (optional)")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one fund code is required.")
		return subcommands.ExitUsageError
	}
	code, err := fundwatch.ParseCode(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	units, err := fundwatch.ParseQuantity(c.share)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -s %q: %v\n", c.share, err)
		return subcommands.ExitUsageError
	}
	h := fundwatch.Holding{Code: code, Units: units.Round(2)}
	if c.cost != "" {
		cost, err := fundwatch.ParseMoney(c.cost, fundwatch.Currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -c %q: %v\n", c.cost, err)
			return subcommands.ExitUsageError
		}
		h.Cost, h.HasCost = cost.Round(2), true
	}

	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	defer CloseStore(s)
	if err := s.Put(h); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving holding: %v\n", err)
		return subcommands.ExitFailure
	}

	// the name is only informative, a failed lookup keeps the holding.
	resolved := newResolver().Resolve(ctx, []fundwatch.Candidate{fundwatch.NewCodeCandidate("add", code)})
	if name := resolved[0].Name(); name != "" {
		fmt.Printf("Added %s %s: %s units\n", code, name, h.Units)
	} else {
		fmt.Fprintf(os.Stderr, "Warning: no valuation found for %s, added anyway\n", code)
		fmt.Printf("Added %s: %s units\n", code, h.Units)
	}
	return subcommands.ExitSuccess
}
