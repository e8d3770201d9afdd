// Package simulator plays many independent hands between seat policies and
// reports the tracked seat's results in big blinds.
package simulator

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerengine/internal/bot"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/internal/statistics"
)

// TableSize is the number of seats in every simulated hand.
const TableSize = 6

// Config holds configuration for running simulations
type Config struct {
	Hands        int
	Hero         string // Policy of the tracked seat
	OpponentType string // A policy name, or "mixed"
	Seed         int64
	SmallBlind   game.Chips
	BigBlind     game.Chips
	Stack        game.Chips
	Parallelism  int           // Hands in flight; defaults to 1
	Timeout      time.Duration // Per hand; zero disables
	Logger       zerolog.Logger
}

// Simulator runs poker hand simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Hero == "" {
		config.Hero = "tight"
	}
	if config.SmallBlind == 0 {
		config.SmallBlind = 50
	}
	if config.BigBlind == 0 {
		config.BigBlind = 100
	}
	if config.Stack == 0 {
		config.Stack = 100 * config.BigBlind
	}
	if config.Parallelism <= 0 {
		config.Parallelism = 1
	}
	config.Logger = config.Logger.With().Str("component", "simulator").Logger()
	return &Simulator{config: config}
}

// mixedOpponents is a fixed opponent mix so results are comparable between runs.
var mixedOpponents = []string{"tight", "random", "tight", "calling", "folding"}

// opponents returns the policy for each non-hero seat in order.
func (s *Simulator) opponents() []string {
	if s.config.OpponentType == "mixed" {
		return mixedOpponents
	}
	out := make([]string, TableSize-1)
	for i := range out {
		out[i] = s.config.OpponentType
	}
	return out
}

// Run plays every hand twice, the second time with the hero in another seat and
// the same cards, and returns the combined statistics.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, string, error) {
	if s.config.Hands <= 0 {
		return nil, "", fmt.Errorf("hands must be positive, got %d", s.config.Hands)
	}
	opponents := s.opponents()
	info := s.config.OpponentType
	if info == "mixed" {
		info = fmt.Sprintf("mixed(%s)", strings.Join(opponents, ","))
	}

	results := make([][2]statistics.HandResult, s.config.Hands)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)
	for i := range s.config.Hands {
		g.Go(func() error {
			seed := randutil.Derive(s.config.Seed, i)
			heroSeat := i % TableSize
			swapped := (heroSeat + TableSize/2) % TableSize
			for j, seat := range []int{heroSeat, swapped} {
				r, err := s.playHand(ctx, seed, seat, opponents)
				if err != nil {
					return fmt.Errorf("hand %d (seed %d, seat %d): %w", i+1, seed, seat, err)
				}
				results[i][j] = r
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	stats := &statistics.Statistics{}
	for _, pair := range results {
		stats.Add(pair[0])
		stats.Add(pair[1])
	}
	if err := stats.Validate(); err != nil {
		return nil, "", fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, info, nil
}

// playHand plays one hand with the hero in heroSeat and the button on seat 0.
func (s *Simulator) playHand(ctx context.Context, seed int64, heroSeat int, opponents []string) (statistics.HandResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rng := randutil.New(seed)
	// Policies draw from their own stream so the deck depends only on the seed.
	policyRNG := randutil.New(randutil.Derive(seed, heroSeat+1))

	seated := make([]game.SeatedPlayer, 0, TableSize)
	policies := make(map[int]game.Policy, TableSize)
	next := 0
	for seat := range TableSize {
		name := s.config.Hero
		label := "hero"
		if seat != heroSeat {
			name = opponents[next]
			label = fmt.Sprintf("opp%d-%s", next+1, name)
			next++
		}
		p, err := bot.New(name, policyRNG, s.config.Logger)
		if err != nil {
			return statistics.HandResult{}, err
		}
		policies[seat] = p
		seated = append(seated, game.SeatedPlayer{Seat: seat, Name: label, Stack: s.config.Stack})
	}

	h, err := game.NewHand(rng, seated, 0, s.config.SmallBlind, s.config.BigBlind, game.WithLogger(s.config.Logger))
	if err != nil {
		return statistics.HandResult{}, err
	}
	settlement, err := game.Play(ctx, h, policies, s.config.Logger)
	if err != nil {
		return statistics.HandResult{}, err
	}

	var sum game.Chips
	for _, net := range settlement.Net {
		sum += net
	}
	if sum != 0 {
		return statistics.HandResult{}, fmt.Errorf("chips not conserved: net %s", sum)
	}

	bb := float64(s.config.BigBlind)
	return statistics.HandResult{
		NetBB:          float64(settlement.Net[heroSeat]) / bb,
		Seed:           seed,
		Position:       h.Positions.Label(heroSeat),
		WentToShowdown: settlement.Street == game.Showdown && !folded(h, heroSeat),
		PotBB:          float64(game.TotalPots(settlement.Pots)) / bb,
		Street:         settlement.Street,
	}, nil
}

func folded(h *game.Hand, seat int) bool {
	p, _ := h.Player(seat)
	return p.Folded
}

// WriteSummary prints a summary of simulation results
func WriteSummary(w io.Writer, stats *statistics.Statistics, opponentType string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS vs %s ===\n", opponentType)
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bb/hand\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f bb/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bb\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== PROFIT SOURCE ANALYSIS ===\n")
	if wins := stats.ShowdownWins + stats.NonShowdownWins; wins > 0 {
		fmt.Fprintf(w, "Winning hands: %d showdown (%.1f%%), %d fold equity (%.1f%%)\n",
			stats.ShowdownWins, float64(stats.ShowdownWins)/float64(wins)*100,
			stats.NonShowdownWins, float64(stats.NonShowdownWins)/float64(wins)*100)
	}
	fmt.Fprintf(w, "Non-showdown: %.2f bb/hand avg (all hands)\n", stats.NonShowdownBB/float64(stats.Hands))
	fmt.Fprintf(w, "Showdown: %.2f bb/hand avg (all hands)\n", stats.ShowdownBB/float64(stats.Hands))

	fmt.Fprintf(w, "\n=== POT SIZE ANALYSIS ===\n")
	fmt.Fprintf(w, "Max pot observed: %.1f bb\n", stats.MaxPotBB)
	fmt.Fprintf(w, "Big pots (>=%dbb): %d hands, %.2f bb total\n", statistics.BigPotBB, stats.BigPots, stats.BigPotsBB)

	fmt.Fprintf(w, "\n=== POSITION ANALYSIS ===\n")
	positions := make([]game.Position, 0, len(stats.Positions))
	for pos := range stats.Positions {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	for _, pos := range positions {
		fmt.Fprintf(w, "%-4s %d hands, %.3f bb/hand\n", pos, stats.Positions[pos].Hands, stats.PositionMean(pos))
	}
}
