// Package cmd implements the CLI application to manage tracked assets,
// bundles and the background price updater.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/jslemi/coinledger"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addAssetCmd{}, "assets")
	c.Register(&removeAssetCmd{}, "assets")
	c.Register(&listAssetsCmd{}, "assets")
	c.Register(&statsCmd{}, "assets")

	c.Register(&createBundleCmd{}, "bundles")
	c.Register(&deleteBundleCmd{}, "bundles")
	c.Register(&bundleAddCmd{}, "bundles")
	c.Register(&bundleRemoveCmd{}, "bundles")
	c.Register(&listBundlesCmd{}, "bundles")

	c.Register(&watchCmd{}, "updater")

	c.Register(&convertCmd{}, "settings")
	c.Register(&settingsCmd{}, "settings")

	c.Register(&exportCmd{}, "data")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var dataDir = flag.String("data", "data", "Path to the data directory holding the ledgers and registries")

// OpenStore opens the data directory, creating any missing data file with
// its default state.
func OpenStore() (*coinledger.Store, error) {
	s := coinledger.NewStore(*dataDir)
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Quotes returns the configured quote source. The optional demo API key is
// read from the environment (a .env file is honored by the binary).
func Quotes() *coinledger.CoinGecko {
	return &coinledger.CoinGecko{APIKey: os.Getenv("COINGECKO_API_KEY")}
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
