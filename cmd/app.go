// Package cmd implements the CLI application to track fund holdings.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fundwatch"
	"github.com/etnz/fundwatch/eastmoney"
	"github.com/etnz/fundwatch/fundgz"
	"github.com/etnz/fundwatch/logger"
	"github.com/etnz/fundwatch/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "holdings")
	c.Register(&addCmd{}, "holdings")
	c.Register(&removeCmd{}, "holdings")
	c.Register(&exportCmd{}, "holdings")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&watchCmd{}, "reports")

	c.Register(&searchCmd{}, "funds")
	c.Register(&fetchCmd{}, "funds")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	holdingsFile = flag.String("holdings-file", "holdings.json", "Path to the holdings store. Use a .db extension for a SQLite database.")
	cacheDir     = flag.String("cache-dir", "", "Directory of the daily search cache (defaults to the temp dir)")
	concurrency  = flag.Int("concurrency", 8, "Maximum number of concurrent remote lookups (0 for no limit)")
	logLevel     = flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	logPretty    = flag.Bool("log-pretty", true, "Human friendly logs on stderr")
	plain        = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")
)

// Environment variables overriding global flags not set on the command line.
const (
	EnvHoldingsFile = "FW_HOLDINGS_FILE"
	EnvCacheDir     = "FW_CACHE_DIR"
	EnvConcurrency  = "FW_CONCURRENCY"
	EnvLogLevel     = "FW_LOG_LEVEL"
	EnvLogPretty    = "FW_LOG_PRETTY"
	EnvPlain        = "FW_PLAIN"
)

var envFlags = map[string]string{
	"holdings-file": EnvHoldingsFile,
	"cache-dir":     EnvCacheDir,
	"concurrency":   EnvConcurrency,
	"log-level":     EnvLogLevel,
	"log-pretty":    EnvLogPretty,
	"plain":         EnvPlain,
}

// ApplyEnv sets every global flag that was not given on the command line from
// its environment variable, if any. It must be called after f.Parse.
func ApplyEnv(f *flag.FlagSet) error {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	for name, env := range envFlags {
		if set[name] {
			continue
		}
		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		if err := f.Set(name, value); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, value, err)
		}
	}
	return nil
}

// SetupLogging configures the global logger from the global flags.
func SetupLogging() {
	logger.SetGlobalLogger(logger.New(logger.Config{Level: *logLevel, Pretty: *logPretty}))
}

// Environment returns the global flags as environment variables, for extensions.
func Environment() []string {
	return []string{
		EnvHoldingsFile + "=" + *holdingsFile,
		EnvCacheDir + "=" + *cacheDir,
		EnvConcurrency + "=" + strconv.Itoa(*concurrency),
		EnvLogLevel + "=" + *logLevel,
		EnvLogPretty + "=" + strconv.FormatBool(*logPretty),
		EnvPlain + "=" + strconv.FormatBool(*plain),
	}
}

// OpenStore opens the holdings store of the app.
func OpenStore() (fundwatch.Store, error) {
	return store.Open(*holdingsFile)
}

// CloseStore releases the store, if it needs to.
func CloseStore(s fundwatch.Store) {
	if c, ok := s.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("cannot close holdings store")
		}
	}
}

func newValuer() *fundgz.Client {
	return fundgz.New(log.Logger.With().Str("provider", "fundgz").Logger())
}

func newSearcher() *eastmoney.Client {
	return eastmoney.New(*cacheDir, log.Logger.With().Str("provider", "eastmoney").Logger())
}

// newResolver wires the resolver to the public providers.
func newResolver() *fundwatch.Resolver {
	return &fundwatch.Resolver{
		Search:      newSearcher(),
		Valuation:   newValuer(),
		Concurrency: *concurrency,
		Log:         log.Logger.With().Str("component", "resolver").Logger(),
	}
}

// printMarkdown renders md for the terminal, unless -plain is set.
func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md, *plain, log.Logger))
}

func renderMarkdown(md string, raw bool, l zerolog.Logger) string {
	if raw {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		l.Warn().Err(err).Msg("cannot create markdown renderer, printing raw markdown")
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		l.Warn().Err(err).Msg("cannot render markdown, printing raw markdown")
		return md
	}
	return out
}
