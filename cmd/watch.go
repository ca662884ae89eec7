package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/jslemi/coinledger"
)

type watchCmd struct {
	config   string
	interval time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the background price updater in the foreground" }
func (*watchCmd) Usage() string {
	return `cld watch [-interval <duration>] [-config <file>]

  Polls current quotes for every tracked asset at a fixed interval and
  appends a row to the price ledger and to the bundle ledger. Runs until
  interrupted (Ctrl-C) or until too many quote fetches fail in a row of
  ticks.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "watch.yaml", "Optional YAML config file")
	f.DurationVar(&c.interval, "interval", 0, "Pause between updates (overrides the config file)")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	explicit := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "config" {
			explicit = true
		}
	})
	cfg, err := loadWatchConfig(c.config, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

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

	currency := settings.Currency
	if cfg.Currency != "" {
		currency = cfg.Currency
	}
	interval := c.interval
	if interval == 0 {
		interval = cfg.interval()
	}
	quotes := Quotes()
	if cfg.APIKey != "" {
		quotes.APIKey = cfg.APIKey
	}

	poller, err := coinledger.NewPoller(store, quotes, interval, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching prices every %s, Ctrl-C to stop.\n", poller.Status().Interval)
	poller.Start()
	go func() {
		<-ctx.Done()
		poller.Stop()
	}()
	poller.Wait()

	printMarkdown(coinledger.StatusMarkdown(poller.Status()))
	return subcommands.ExitSuccess
}
