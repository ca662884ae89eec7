package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jslemi/coinledger"
)

type addAssetCmd struct {
	id    string
	force bool
}

func (*addAssetCmd) Name() string     { return "add-asset" }
func (*addAssetCmd) Synopsis() string { return "start tracking the price of an asset" }
func (*addAssetCmd) Usage() string {
	return `cld add-asset -id <asset-id>

  Adds the asset to the identifier registry and grows the price ledger with
  a new column, backfilled with zeroes ("no data"). The id must be known to
  the quote provider (e.g. "bitcoin"), checked unless -force is given.
`
}

func (c *addAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id as known to the quote provider (required)")
	f.BoolVar(&c.force, "force", false, "Skip the quote provider existence check")
}

func (c *addAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	if !c.force && !Quotes().HasAsset(c.id) {
		fmt.Fprintf(os.Stderr, "Error: the quote provider knows no asset %q.\n", c.id)
		return subcommands.ExitFailure
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.AddAsset(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Now tracking %q.\n", c.id)
	return subcommands.ExitSuccess
}

type removeAssetCmd struct {
	id string
}

func (*removeAssetCmd) Name() string     { return "remove-asset" }
func (*removeAssetCmd) Synopsis() string { return "stop tracking an asset and drop its history" }
func (*removeAssetCmd) Usage() string {
	return `cld remove-asset -id <asset-id>

  Removes the asset from the identifier registry and drops its column from
  the price ledger. Rejected while any bundle still contains the asset.
`
}

func (c *removeAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id to remove (required)")
}

func (c *removeAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.RemoveAsset(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Stopped tracking %q.\n", c.id)
	return subcommands.ExitSuccess
}

type listAssetsCmd struct{}

func (*listAssetsCmd) Name() string     { return "list-assets" }
func (*listAssetsCmd) Synopsis() string { return "list the tracked assets" }
func (*listAssetsCmd) Usage() string {
	return `cld list-assets

  Lists the tracked asset ids in ledger column order.
`
}

func (*listAssetsCmd) SetFlags(*flag.FlagSet) {}

func (*listAssetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	ids, err := store.AssetIDs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(coinledger.AssetsMarkdown(ids))
	return subcommands.ExitSuccess
}

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show min/max/mean statistics of tracked prices" }
func (*statsCmd) Usage() string {
	return `cld stats [asset-id ...]

  Shows min, max and mean of the non-zero price history, for the named
  assets or for all tracked assets.
`
}

func (*statsCmd) SetFlags(*flag.FlagSet) {}

func (*statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}

	ids := f.Args()
	if len(ids) > 0 {
		ok, err := store.HasAssets(ids...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Error: at least one requested asset is not tracked.")
			return subcommands.ExitUsageError
		}
	} else {
		if ids, err = store.AssetIDs(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	stats, err := store.Statistics(ids...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	settings, err := store.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(coinledger.StatisticsMarkdown(stats, ids, settings.Currency))
	return subcommands.ExitSuccess
}
