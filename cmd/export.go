package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch"
	"github.com/google/subcommands"
)

// exportCmd implements the "export" command.
type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "exports holdings in the import format" }
func (*exportCmd) Usage() string {
	return `fw export

  Prints every holding with a cost as "code marketValue gain", the format read
  by 'fw import'. The market value uses the latest published unit price.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, status := loadPositions(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	missing, err := fundwatch.Export(os.Stdout, positions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	if missing > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d holdings could not be exported, their unit price is unavailable\n", missing)
	}
	return subcommands.ExitSuccess
}
