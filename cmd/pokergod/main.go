package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/AllenPeng0209/poker-god-sub001/internal/analysis"
	"github.com/AllenPeng0209/poker-god-sub001/internal/solver"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play training hands against the roster"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate hands with the advisor playing the hero seat"`
	Odds     OddsCmd          `cmd:"" help:"Estimate range, equity and outs for a spot"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokergod"),
		kong.Description("Hold'em trainer with opponent modelling and exploit coaching"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func setupLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}

// loadAnalyzer builds the advice generator, preferring on-disk solver
// dumps when a directory is given and falling back to the built-in
// tables for anything missing.
func loadAnalyzer(dir string, logger *log.Logger) (*analysis.Analyzer, error) {
	if dir == "" {
		return analysis.New(nil, nil), nil
	}
	set, err := solver.LoadTableDir(dir)
	if err != nil {
		return nil, err
	}
	if set.Preflop == nil {
		logger.Debug("no preflop dumps found, using built-in table", "dir", dir)
	}
	if set.Postflop == nil {
		logger.Debug("no postflop dump found, using built-in table", "dir", dir)
	}
	return analysis.New(set.Preflop, set.Postflop), nil
}
