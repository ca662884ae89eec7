package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jslemi/coinledger"
)

type createBundleCmd struct {
	id string
}

func (*createBundleCmd) Name() string     { return "create-bundle" }
func (*createBundleCmd) Synopsis() string { return "create an empty bundle of assets" }
func (*createBundleCmd) Usage() string {
	return `cld create-bundle -id <bundle-id>

  Registers a new, empty bundle. The bundle ledger gains a column once the
  first asset is added.
`
}

func (c *createBundleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Bundle id (required)")
}

func (c *createBundleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.CreateBundle(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created bundle %q.\n", c.id)
	return subcommands.ExitSuccess
}

type deleteBundleCmd struct {
	id string
}

func (*deleteBundleCmd) Name() string     { return "delete-bundle" }
func (*deleteBundleCmd) Synopsis() string { return "delete a bundle and its valuation history" }
func (*deleteBundleCmd) Usage() string {
	return `cld delete-bundle -id <bundle-id>

  Removes the bundle from the registry and drops its column from the bundle
  ledger.
`
}

func (c *deleteBundleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Bundle id (required)")
}

func (c *deleteBundleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.DeleteBundle(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted bundle %q.\n", c.id)
	return subcommands.ExitSuccess
}

type bundleAddCmd struct {
	bundle string
	asset  string
	weight float64
}

func (*bundleAddCmd) Name() string     { return "bundle-add" }
func (*bundleAddCmd) Synopsis() string { return "add an asset to a bundle" }
func (*bundleAddCmd) Usage() string {
	return `cld bundle-add -bundle <bundle-id> -asset <asset-id> -weight <amount>

  Adds a weighted asset to the bundle and recomputes the bundle's valuation
  over the full price history, which can take a while on a long ledger.
`
}

func (c *bundleAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bundle, "bundle", "", "Bundle id (required)")
	f.StringVar(&c.asset, "asset", "", "Asset id, must be tracked (required)")
	f.Float64Var(&c.weight, "weight", 0, "Amount of the asset held in the bundle (non-negative)")
}

func (c *bundleAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.bundle == "" || c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -bundle and -asset are required.")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.BundleAdd(c.bundle, c.asset, c.weight); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %v of %q to bundle %q.\n", c.weight, c.asset, c.bundle)
	return subcommands.ExitSuccess
}

type bundleRemoveCmd struct {
	bundle string
	asset  string
}

func (*bundleRemoveCmd) Name() string     { return "bundle-remove" }
func (*bundleRemoveCmd) Synopsis() string { return "remove an asset from a bundle" }
func (*bundleRemoveCmd) Usage() string {
	return `cld bundle-remove -bundle <bundle-id> -asset <asset-id>

  Removes the asset from the bundle and recomputes the bundle's valuation
  over the full price history.
`
}

func (c *bundleRemoveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bundle, "bundle", "", "Bundle id (required)")
	f.StringVar(&c.asset, "asset", "", "Asset id (required)")
}

func (c *bundleRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.bundle == "" || c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -bundle and -asset are required.")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.BundleRemove(c.bundle, c.asset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %q from bundle %q.\n", c.asset, c.bundle)
	return subcommands.ExitSuccess
}

type listBundlesCmd struct{}

func (*listBundlesCmd) Name() string     { return "list-bundles" }
func (*listBundlesCmd) Synopsis() string { return "list bundles and their memberships" }
func (*listBundlesCmd) Usage() string {
	return `cld list-bundles

  Lists every bundle with its member assets and weights.
`
}

func (*listBundlesCmd) SetFlags(*flag.FlagSet) {}

func (*listBundlesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		return subcommands.ExitFailure
	}
	bundles, err := store.Bundles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(coinledger.BundlesMarkdown(bundles))
	return subcommands.ExitSuccess
}
