package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jslemi/coinledger"
)

type settingsCmd struct {
	threshold float64
	useTime   string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change user settings" }
func (*settingsCmd) Usage() string {
	return `cld settings [-threshold <pct>] [-use-time <bool>]

  Without flags, shows the current settings. With flags, updates them. The
  currency setting is not directly mutable, use "cld convert" to switch
  currencies along with the recorded history.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.threshold, "threshold", 0, "Max mean difference in percent for two plots to share y-limits")
	f.StringVar(&c.useTime, "use-time", "", "Show the current time in listings (true or false)")
}

func (c *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	settings, err := store.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	changed := false
	if c.threshold != 0 {
		settings.SameLimitsThreshold = c.threshold
		changed = true
	}
	switch c.useTime {
	case "":
	case "true":
		settings.UseTime = true
		changed = true
	case "false":
		settings.UseTime = false
		changed = true
	default:
		fmt.Fprintln(os.Stderr, "Error: -use-time must be true or false.")
		return subcommands.ExitUsageError
	}

	if changed {
		if err := store.SaveSettings(settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(coinledger.SettingsMarkdown(settings))
	return subcommands.ExitSuccess
}
