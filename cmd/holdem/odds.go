package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/lox/pokerengine/internal/equity"
	"github.com/lox/pokerengine/poker"
)

type OddsCmd struct {
	Hands      []string      `arg:"" help:"Hole cards for each player, e.g. AhAd KsKc"`
	Board      string        `short:"b" help:"Community cards, e.g. \"Td 7s 2h\""`
	Iterations int           `short:"i" help:"Monte Carlo samples when the board is short" default:"100000"`
	Seed       *int64        `help:"Random seed"`
	Workers    int           `short:"w" help:"Parallel workers (0 for all CPUs)"`
	Timeout    time.Duration `help:"Abort after this long" default:"1m"`
	Types      bool          `short:"t" help:"Show made hand frequencies"`
}

func (c *OddsCmd) Run(g *Globals) error {
	if len(c.Hands) < 2 {
		return fmt.Errorf("need at least 2 hands, got %d", len(c.Hands))
	}
	req := equity.Request{
		Iterations: c.Iterations,
		Seed:       resolveSeed(c.Seed, 0),
		Workers:    c.Workers,
	}
	for _, in := range c.Hands {
		cards, err := poker.ParseCards(in)
		if err != nil {
			return fmt.Errorf("parse %q: %w", in, err)
		}
		req.Hands = append(req.Hands, cards)
	}
	if c.Board != "" {
		board, err := poker.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parse board: %w", err)
		}
		req.Board = board
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	start := time.Now()
	res, err := equity.Calculate(ctx, req)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	mode := fmt.Sprintf("%d samples", res.Trials)
	if res.Exact {
		mode = fmt.Sprintf("exact, %d boards", res.Trials)
	}
	title := "Preflop"
	if len(req.Board) > 0 {
		title = "Board " + renderCards(req.Board)
	}
	fmt.Println(titleStyle.Render(title) + " " + dimStyle.Render(fmt.Sprintf("(%s in %s)", mode, elapsed.Round(time.Millisecond))))

	t := newTable("Hand", "Equity", "Win", "Tie")
	for _, p := range res.Players {
		t.Row(
			renderCards(p.Hand),
			handStyle.Render(fmt.Sprintf("%.2f%%", p.Equity*100)),
			fmt.Sprintf("%.2f%%", pct(p.Wins, res.Trials)),
			fmt.Sprintf("%.2f%%", pct(p.Ties, res.Trials)),
		)
	}
	fmt.Println(t.String())

	if c.Types {
		fmt.Println(renderTypes(res))
	}
	return nil
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// renderTypes tabulates how often each player finishes with each hand type.
func renderTypes(res *equity.Result) string {
	headers := []string{"Hand Type"}
	for _, p := range res.Players {
		headers = append(headers, poker.FormatCards(p.Hand))
	}
	t := newTable(headers...)

	types := []poker.HandType{
		poker.RoyalFlush, poker.StraightFlush, poker.FourOfAKind, poker.FullHouse, poker.Flush, poker.Straight,
		poker.ThreeOfAKind, poker.TwoPair, poker.OnePair, poker.HighCard,
	}
	for _, ht := range types {
		seen := slices.ContainsFunc(res.Players, func(p equity.PlayerResult) bool { return p.Types[ht] > 0 })
		if !seen {
			continue
		}
		row := []string{ht.String()}
		for _, p := range res.Players {
			row = append(row, fmt.Sprintf("%.2f%%", pct(p.Types[ht], res.Trials)))
		}
		t.Row(row...)
	}
	return t.String()
}
