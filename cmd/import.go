package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fundwatch"
	"github.com/etnz/fundwatch/renderer"
	"github.com/google/subcommands"
)

// importCmd implements the "import" command.
type importCmd struct {
	yes bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "parses holding statements from text and imports them" }
func (*importCmd) Usage() string {
	return `fw import [-y] [<file>]

  Reads holding statements from <file>, or stdin if absent, one per line:

    001186 14521.97 -478.03
    002145 5000 120

  Each line is "code marketValue gain". Thousands separators and commas between
  fields are accepted. Other lines are ignored.

  Units held are estimated from the market value and the fund's latest
  published unit price, the cost from the market value and the gain. The
  result is displayed for review. With -y, matched lines are saved to the
  holdings store. Failed lines are never saved.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "save matched holdings without asking")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one file can be imported at once.")
		return subcommands.ExitUsageError
	}
	if f.NArg() == 1 {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}
	text, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}

	candidates := newResolver().Parse(ctx, string(text))
	printMarkdown(renderer.RenderPreview(renderer.NewPreview(candidates)))
	if len(candidates) == 0 {
		return subcommands.ExitFailure
	}

	if !c.yes {
		fmt.Fprintln(os.Stderr, "Nothing saved, run again with -y to import the matched holdings.")
		return subcommands.ExitSuccess
	}

	s, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	defer CloseStore(s)

	n, err := fundwatch.Import(s, candidates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	if n == 0 {
		fmt.Fprintln(os.Stderr, "No valid holding to import.")
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully imported %d holdings into %s\n", n, *holdingsFile)
	return subcommands.ExitSuccess
}
