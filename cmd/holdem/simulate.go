package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/lox/pokerengine/internal/simulator"
)

type SimulateCmd struct {
	Hands    int           `short:"n" help:"Number of deals; each is played twice" default:"1000"`
	Hero     string        `help:"Policy of the tracked seat" enum:"calling,folding,random,tight" default:"tight"`
	Opponent string        `short:"o" help:"Opponent policy" enum:"calling,folding,random,tight,mixed" default:"mixed"`
	Seed     *int64        `help:"Random seed (overrides config)"`
	Parallel int           `short:"p" help:"Hands in flight (0 for all CPUs)"`
	Timeout  time.Duration `help:"Per hand timeout" default:"5s"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, closeLog, err := g.load()
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	sb, bb, err := cfg.Table.Blinds()
	if err != nil {
		return err
	}
	stack, err := cfg.Table.Stack()
	if err != nil {
		return err
	}
	parallel := c.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}
	seed := resolveSeed(c.Seed, cfg.Table.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim := simulator.New(simulator.Config{
		Hands:        c.Hands,
		Hero:         c.Hero,
		OpponentType: c.Opponent,
		Seed:         seed,
		SmallBlind:   sb,
		BigBlind:     bb,
		Stack:        stack,
		Parallelism:  parallel,
		Timeout:      c.Timeout,
		Logger:       logger,
	})

	start := time.Now()
	stats, label, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info().
		Int("hands", stats.Hands).
		Int64("seed", seed).
		Dur("elapsed", time.Since(start)).
		Msg("simulation complete")

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s vs %s", c.Hero, label)))
	simulator.WriteSummary(os.Stdout, stats, label)
	return nil
}
