package cmd

import (
	"flag"

	"github.com/etnz/fundwatch/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of fw: global flags, and the
// subcommands with their own flags.
func Completion(global *flag.FlagSet) *complete.Command {
	flags := func(fs *flag.FlagSet) map[string]complete.Predictor {
		m := make(map[string]complete.Predictor)
		fs.VisitAll(func(f *flag.Flag) { m[f.Name] = predict.Something })
		return m
	}
	root := &complete.Command{
		Flags: flags(global),
		Sub: map[string]*complete.Command{
			"import":  {Flags: map[string]complete.Predictor{"y": predict.Nothing}, Args: predict.Files("*")},
			"add":     {Flags: map[string]complete.Predictor{"s": predict.Something, "c": predict.Something}},
			"remove":  {},
			"export":  {},
			"holding": {},
			"watch":   {Flags: map[string]complete.Predictor{"every": predict.Set{"@every 30s", "@every 60s", "@every 5m"}}},
			"search":  {},
			"fetch":   {},
			"help":    {},
			"topic":   {Args: topics()},
		},
	}
	root.Flags["holdings-file"] = predict.Files("*")
	root.Flags["cache-dir"] = predict.Dirs("*")
	root.Flags["log-level"] = predict.Set{"debug", "info", "warn", "error"}
	return root
}

func topics() predict.Set {
	names, _ := docs.List()
	return predict.Set(append(names, "*"))
}
