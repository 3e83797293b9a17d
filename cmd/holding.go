package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch"
	"github.com/etnz/fundwatch/renderer"
	"github.com/google/subcommands"
)

// holdingCmd implements the "holding" command.
type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display holdings valued with the latest estimates" }
func (*holdingCmd) Usage() string {
	return `fw holding

  Displays every holding valued with the latest intraday estimate: market
  value, gain of the day and total gain.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, status := loadPositions(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderHoldings(renderer.NewHoldings(positions)))
	return subcommands.ExitSuccess
}

// loadPositions reads the holdings store and values every holding.
func loadPositions(ctx context.Context) ([]fundwatch.Position, subcommands.ExitStatus) {
	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening holdings: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	defer CloseStore(s)
	holdings, err := s.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading holdings: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return fundwatch.Valuate(ctx, newValuer(), holdings, *concurrency), subcommands.ExitSuccess
}
