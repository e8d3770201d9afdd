package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" help:"Path to HCL config file" default:"holdem.hcl" type:"path"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play hands between bots at a configured table"`
	Eval     EvalCmd          `cmd:"" help:"Rank five to seven card hands"`
	Odds     OddsCmd          `cmd:"" help:"Calculate equity between hole cards"`
	Simulate SimulateCmd      `cmd:"" help:"Measure a policy's win rate over many hands"`
	History  HistoryCmd       `cmd:"" help:"Render a PHH hand history file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em rules engine, evaluator and simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the config file and builds the logger it describes. Callers defer
// the returned func to close the log file.
func (g *Globals) load() (*config.Config, zerolog.Logger, func() error, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, zerolog.Nop(), nopClose, fmt.Errorf("load config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	logger, closeLog, err := newLogger(*cfg.Log)
	if err != nil {
		return nil, zerolog.Nop(), nopClose, err
	}
	return cfg, logger, closeLog, nil
}

// resolveSeed returns the flag's seed, then the configured one, then the clock.
func resolveSeed(flag *int64, configured int64) int64 {
	switch {
	case flag != nil:
		return *flag
	case configured != 0:
		return configured
	}
	return time.Now().UnixNano()
}
