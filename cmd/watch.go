package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundwatch/renderer"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// watchCmd implements the "watch" command.
type watchCmd struct {
	schedule string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh the holdings report periodically" }
func (*watchCmd) Usage() string {
	return `fw watch [-every <schedule>]

  Displays the holdings report, then refreshes it on schedule until
  interrupted. The schedule is a cron expression or "@every <duration>".
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "every", "@every 60s", "refresh schedule")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	refresh := func() {
		positions, status := loadPositions(ctx)
		if status != subcommands.ExitSuccess {
			return
		}
		printMarkdown(renderer.RenderHoldings(renderer.NewHoldings(positions)))
	}

	scheduler := newScheduler()
	if _, err := scheduler.AddFunc(c.schedule, refresh); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid schedule %q: %v\n", c.schedule, err)
		return subcommands.ExitUsageError
	}

	refresh()
	scheduler.Start()
	log.Info().Str("schedule", c.schedule).Msg("watching holdings")
	<-ctx.Done()
	<-scheduler.Stop().Done()
	return subcommands.ExitSuccess
}

// newScheduler returns a cron scheduler on which a slow refresh skips the next
// tick rather than printing over it.
func newScheduler() *cron.Cron {
	return cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
}
