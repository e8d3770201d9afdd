package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/internal/bot"
	"github.com/lox/pokerengine/internal/config"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/phh"
	"github.com/lox/pokerengine/internal/randutil"
)

type PlayCmd struct {
	Hands   int    `short:"n" help:"Number of hands (overrides config)"`
	Seed    *int64 `help:"Random seed (overrides config)"`
	PHH     string `help:"Write a PHH file per hand into this directory" type:"path"`
	Quiet   bool   `short:"q" help:"Only print the final stacks"`
	Reveal  bool   `help:"Show every player's hole cards"`
	Verbose bool   `help:"Log bot reasoning at debug level"`
}

// defaultPolicies seats a mix of bots when the config names no players.
var defaultPolicies = []string{"tight", "calling", "random", "tight", "folding", "calling", "random", "tight", "calling", "random"}

type seatPlan struct {
	seat   int
	name   string
	policy string
	stack  game.Chips
}

func planSeats(cfg *config.Config) ([]seatPlan, error) {
	if len(cfg.Players) == 0 {
		stack, err := cfg.Table.Stack()
		if err != nil {
			return nil, err
		}
		plans := make([]seatPlan, cfg.Table.Seats)
		for i := range plans {
			plans[i] = seatPlan{seat: i, name: fmt.Sprintf("bot-%d", i+1), policy: defaultPolicies[i], stack: stack}
		}
		return plans, nil
	}
	plans := make([]seatPlan, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		stack, err := p.Chips()
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		plans = append(plans, seatPlan{seat: p.Seat, name: p.Name, policy: p.Policy, stack: stack})
	}
	return plans, nil
}

func (c *PlayCmd) Run(g *Globals) error {
	if c.Verbose && g.LogLevel == "" {
		g.LogLevel = "debug"
	}
	cfg, logger, closeLog, err := g.load()
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	sb, bb, err := cfg.Table.Blinds()
	if err != nil {
		return err
	}
	hands := cfg.Table.Hands
	if c.Hands > 0 {
		hands = c.Hands
	}
	seed := resolveSeed(c.Seed, cfg.Table.Seed)
	rng := randutil.New(seed)

	events := game.NewMemoryLog()
	tbl, err := game.NewTable(rng, sb, bb,
		game.WithTableLogger(logger),
		game.WithTableEventLog(events),
	)
	if err != nil {
		return err
	}

	plans, err := planSeats(cfg)
	if err != nil {
		return err
	}
	policies := make(map[int]game.Policy, len(plans))
	for i, p := range plans {
		policy, err := bot.New(p.policy, randutil.New(randutil.Derive(seed, i+1)), logger)
		if err != nil {
			return fmt.Errorf("player %s: %w", p.name, err)
		}
		if err := tbl.Sit(p.seat, p.name, p.stack); err != nil {
			return err
		}
		policies[p.seat] = policy
	}

	if c.PHH != "" {
		if err := os.MkdirAll(c.PHH, 0o755); err != nil {
			return fmt.Errorf("create phh directory: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info().
		Str("table", cfg.Table.Name).
		Int("hands", hands).
		Int64("seed", seed).
		Int("players", len(plans)).
		Msg("starting play")

	formatter := game.NewEventFormatter(game.FormattingOptions{ShowHoleCards: c.Reveal, Viewer: game.Spectator})
	played := 0
	for played < hands {
		if tbl.Funded().Len() < 2 {
			logger.Info().Int("hands", played).Msg("fewer than two players have chips")
			break
		}
		h, err := tbl.StartHand()
		if err != nil {
			return err
		}
		if _, err := game.Play(ctx, h, policies, logger); err != nil {
			return err
		}
		if err := tbl.EndHand(h); err != nil {
			return err
		}
		played++

		handEvents := events.ForHand(h.ID)
		if !c.Quiet {
			for _, e := range handEvents {
				if line := formatter.Format(e); line != "" {
					fmt.Println(line)
				}
			}
			fmt.Println()
		}
		if c.PHH != "" {
			if err := writeHistory(c.PHH, cfg.Table.Name, h, handEvents, logger); err != nil {
				return err
			}
		}
		events.Reset()
	}

	fmt.Println(renderStacks(tbl, plans, played))
	return nil
}

func writeHistory(dir, table string, h *game.Hand, events []game.Event, logger zerolog.Logger) error {
	hh, err := phh.Build(h, events, phh.Options{Table: table})
	if err != nil {
		return err
	}
	path := filepath.Join(dir, phh.FileName(h.ID))
	if err := phh.WriteFile(path, hh); err != nil {
		return err
	}
	logger.Debug().Str("hand_id", h.ID).Str("path", path).Msg("hand history written")
	return nil
}

func renderStacks(tbl *game.Table, plans []seatPlan, played int) string {
	start := make(map[int]game.Chips, len(plans))
	policy := make(map[int]string, len(plans))
	for _, p := range plans {
		start[p.seat] = p.stack
		policy[p.seat] = p.policy
	}
	t := newTable("Seat", "Player", "Policy", "Stack", "Net")
	for _, sp := range tbl.Players() {
		net := sp.Stack - start[sp.Seat]
		t.Row(
			fmt.Sprint(sp.Seat+1),
			sp.Name,
			policy[sp.Seat],
			sp.Stack.String(),
			signed(net.String(), net > 0, net < 0),
		)
	}
	return titleStyle.Render(fmt.Sprintf("After %d hands", played)) + "\n" + t.String()
}
