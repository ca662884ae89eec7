package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/jslemi/coinledger/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. Run
// `COMP_INSTALL=1 cld` once to install it.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"add-asset":     {Flags: map[string]complete.Predictor{"id": predict.Nothing, "force": predict.Nothing}},
		"remove-asset":  {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
		"list-assets":   {},
		"stats":         {},
		"create-bundle": {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
		"delete-bundle": {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
		"bundle-add": {Flags: map[string]complete.Predictor{
			"bundle": predict.Nothing, "asset": predict.Nothing, "weight": predict.Nothing,
		}},
		"bundle-remove": {Flags: map[string]complete.Predictor{
			"bundle": predict.Nothing, "asset": predict.Nothing,
		}},
		"list-bundles": {},
		"watch": {Flags: map[string]complete.Predictor{
			"interval": predict.Nothing, "config": predict.Files("*.yaml"),
		}},
		"convert":  {Flags: map[string]complete.Predictor{"currency": predict.Nothing, "factor": predict.Nothing}},
		"settings": {Flags: map[string]complete.Predictor{"threshold": predict.Nothing, "use-time": predict.Set{"true", "false"}}},
		"export":   {Flags: map[string]complete.Predictor{"o": predict.Files("*.xlsx")}},
		"help":     {},
		"flags":    {},
	},
	Flags: map[string]complete.Predictor{
		"data": predict.Dirs("*"),
	},
}

func main() {
	completion.Complete("cld")

	// The optional .env file carries the quote provider API key.
	godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
