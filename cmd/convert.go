package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type convertCmd struct {
	currency string
	factor   float64
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert both ledgers to another fiat currency" }
func (*convertCmd) Usage() string {
	return `cld convert -currency <code> -factor <rate>

  Multiplies every recorded price and bundle valuation by the given rate and
  switches the persisted vs_currency, so future updates are fetched in the
  new currency. The rate is the price of one old currency unit in the new
  one.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Target fiat currency code, e.g. \"eur\" (required)")
	f.Float64Var(&c.factor, "factor", 0, "Conversion rate from the current currency (required, positive)")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency == "" || c.factor <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -currency and a positive -factor are required.")
		return subcommands.ExitUsageError
	}
	if !Quotes().HasCurrency(c.currency) {
		fmt.Fprintf(os.Stderr, "Error: the quote provider does not serve prices in %q.\n", c.currency)
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
	if err := store.Convert(c.factor); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	settings.Currency = c.currency
	if err := store.SaveSettings(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Ledgers converted to %s.\n", c.currency)
	return subcommands.ExitSuccess
}
