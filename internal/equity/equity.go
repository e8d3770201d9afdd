// Package equity estimates how often each hand wins from a partial board, either
// by Monte Carlo sampling or, when few cards are missing, by exhaustive
// enumeration.
package equity

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/poker"
)

// ExactThreshold is the most missing board cards that are enumerated exactly.
const ExactThreshold = 2

// Request describes an equity calculation.
type Request struct {
	Hands      [][]poker.Card // Two hole cards each
	Board      []poker.Card   // Zero to five cards
	Iterations int            // Monte Carlo samples; ignored for exact runs
	Seed       int64
	Workers    int // Defaults to GOMAXPROCS
}

// PlayerResult is the outcome for one hand.
type PlayerResult struct {
	Hand   []poker.Card
	Wins   int
	Ties   int
	Equity float64 // Share of pots won, ties split evenly
	Types  map[poker.HandType]int
}

// Result is the outcome of a calculation.
type Result struct {
	Players []PlayerResult
	Trials  int
	Exact   bool
}

// tally accumulates one worker's results.
type tally struct {
	wins, ties []int
	share      []float64
	types      []map[poker.HandType]int
	trials     int
}

func newTally(n int) *tally {
	t := &tally{wins: make([]int, n), ties: make([]int, n), share: make([]float64, n), types: make([]map[poker.HandType]int, n)}
	for i := range t.types {
		t.types[i] = make(map[poker.HandType]int)
	}
	return t
}

func (t *tally) merge(o *tally) {
	for i := range t.wins {
		t.wins[i] += o.wins[i]
		t.ties[i] += o.ties[i]
		t.share[i] += o.share[i]
		for k, v := range o.types[i] {
			t.types[i][k] += v
		}
	}
	t.trials += o.trials
}

// Calculate runs the calculation described by req.
func Calculate(ctx context.Context, req Request) (*Result, error) {
	dead, err := validate(req)
	if err != nil {
		return nil, err
	}
	live := remaining(dead)
	missing := 5 - len(req.Board)

	var total *tally
	exact := missing <= ExactThreshold
	if exact {
		total = newTally(len(req.Hands))
		if err := enumerate(ctx, req, live, missing, total); err != nil {
			return nil, err
		}
	} else {
		if total, err = sample(ctx, req, live, missing); err != nil {
			return nil, err
		}
	}

	res := &Result{Trials: total.trials, Exact: exact}
	for i, hand := range req.Hands {
		pr := PlayerResult{Hand: hand, Wins: total.wins[i], Ties: total.ties[i], Types: total.types[i]}
		if total.trials > 0 {
			pr.Equity = total.share[i] / float64(total.trials)
		}
		res.Players = append(res.Players, pr)
	}
	return res, nil
}

func validate(req Request) (poker.Hand, error) {
	if len(req.Hands) < 2 {
		return 0, fmt.Errorf("need at least 2 hands, got %d", len(req.Hands))
	}
	if len(req.Board) > 5 || len(req.Board) == 1 || len(req.Board) == 2 {
		return 0, fmt.Errorf("board must have 0, 3, 4 or 5 cards, got %d", len(req.Board))
	}
	if 2*len(req.Hands)+5 > 52 {
		return 0, fmt.Errorf("too many hands: %d", len(req.Hands))
	}

	var dead poker.Hand
	add := func(c poker.Card) error {
		if !c.Valid() {
			return fmt.Errorf("invalid card %s", c)
		}
		if dead.HasCard(c) {
			return fmt.Errorf("duplicate card %s", c)
		}
		dead.AddCard(c)
		return nil
	}
	for _, c := range req.Board {
		if err := add(c); err != nil {
			return 0, err
		}
	}
	for i, hand := range req.Hands {
		if len(hand) != 2 {
			return 0, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		for _, c := range hand {
			if err := add(c); err != nil {
				return 0, fmt.Errorf("hand %d: %w", i+1, err)
			}
		}
	}
	return dead, nil
}

func remaining(dead poker.Hand) []poker.Card {
	live := make([]poker.Card, 0, 52)
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			if c := poker.NewCard(rank, suit); !dead.HasCard(c) {
				live = append(live, c)
			}
		}
	}
	return live
}

func sample(ctx context.Context, req Request, live []poker.Card, missing int) (*tally, error) {
	if req.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", req.Iterations)
	}
	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, req.Iterations)

	tallies := make([]*tally, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := req.Iterations / workers
		if w < req.Iterations%workers {
			n++
		}
		g.Go(func() error {
			rng := randutil.New(randutil.Derive(req.Seed, w))
			t := newTally(len(req.Hands))
			pool := append([]poker.Card(nil), live...)
			board := make([]poker.Card, len(req.Board), 5)
			copy(board, req.Board)
			for i := range n {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				drawn := draw(rng, pool, missing)
				t.record(req.Hands, append(board[:len(req.Board)], drawn...))
			}
			tallies[w] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTally(len(req.Hands))
	for _, t := range tallies {
		total.merge(t)
	}
	return total, nil
}

// draw moves n random cards to the front of pool with a partial Fisher-Yates
// shuffle and returns them.
func draw(rng *rand.Rand, pool []poker.Card, n int) []poker.Card {
	for i := range n {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func enumerate(ctx context.Context, req Request, live []poker.Card, missing int, t *tally) error {
	board := make([]poker.Card, len(req.Board), 5)
	copy(board, req.Board)
	switch missing {
	case 0:
		t.record(req.Hands, board)
	case 1:
		for _, c := range live {
			t.record(req.Hands, append(board, c))
		}
	case 2:
		for i := range live {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < len(live); j++ {
				t.record(req.Hands, append(board, live[i], live[j]))
			}
		}
	default:
		return fmt.Errorf("cannot enumerate %d missing cards", missing)
	}
	return nil
}

// record scores one complete board.
func (t *tally) record(hands [][]poker.Card, board []poker.Card) {
	base := poker.NewHand(board...)
	var best poker.HandRank
	ranks := make([]poker.HandRank, len(hands))
	for i, hole := range hands {
		h := base
		h.AddCard(hole[0])
		h.AddCard(hole[1])
		ranks[i] = poker.EvaluateMask(h)
		best = max(best, ranks[i])
		t.types[i][ranks[i].Type()]++
	}

	winners := 0
	for _, r := range ranks {
		if r == best {
			winners++
		}
	}
	for i, r := range ranks {
		if r != best {
			continue
		}
		if winners == 1 {
			t.wins[i]++
		} else {
			t.ties[i]++
		}
		t.share[i] += 1 / float64(winners)
	}
	t.trials++
}

// VsRandom estimates the equity of hole against opponents random hands. It runs
// on the caller's goroutine and is meant for per-decision use.
func VsRandom(hole, board []poker.Card, opponents, iterations int, rng *rand.Rand) float64 {
	if opponents < 1 || iterations < 1 || len(hole) != 2 {
		return 0
	}
	var dead poker.Hand
	for _, c := range append(hole[:2:2], board...) {
		dead.AddCard(c)
	}
	pool := remaining(dead)
	missing := 5 - len(board)
	if len(pool) < missing+2*opponents {
		return 0
	}

	var share float64
	for range iterations {
		drawn := draw(rng, pool, missing+2*opponents)
		full := poker.NewHand(board...)
		for _, c := range drawn[:missing] {
			full.AddCard(c)
		}
		mine := full
		mine.AddCard(hole[0])
		mine.AddCard(hole[1])
		hero := poker.EvaluateMask(mine)

		ties, lost := 0, false
		for o := range opponents {
			h := full
			h.AddCard(drawn[missing+2*o])
			h.AddCard(drawn[missing+2*o+1])
			switch r := poker.EvaluateMask(h); {
			case r > hero:
				lost = true
			case r == hero:
				ties++
			}
			if lost {
				break
			}
		}
		if !lost {
			share += 1 / float64(ties+1)
		}
	}
	return share / float64(iterations)
}
