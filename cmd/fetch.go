package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch"
	"github.com/google/subcommands"
)

// fetchCmd implements the "fetch" command.
type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches the latest valuation of funds" }
func (*fetchCmd) Usage() string {
	return `fw fetch <code>...

  Prints the latest published unit price and the intraday estimate of each fund.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one fund code is required.")
		return subcommands.ExitUsageError
	}
	holdings := make([]fundwatch.Holding, 0, f.NArg())
	for _, arg := range f.Args() {
		code, err := fundwatch.ParseCode(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		holdings = append(holdings, fundwatch.Holding{Code: code})
	}

	status := subcommands.ExitSuccess
	for _, p := range fundwatch.Valuate(ctx, newValuer(), holdings, *concurrency) {
		if p.Err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", p.Code, p.Err)
			status = subcommands.ExitFailure
			continue
		}
		v := p.Valuation
		fmt.Printf("%s %s\n", v.Code, v.Name)
		fmt.Printf("    Unit price : %s on %s\n", v.ReferencePrice, v.ReferenceDate)
		fmt.Printf("    Estimate   : %s (%s%%) at %s\n", v.Estimate, v.EstimateChange, v.EstimatedAt)
	}
	return status
}
