// Package statistics aggregates per-hand results in big blinds.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/pokerengine/internal/game"
)

// BigPotBB is the pot size, in big blinds, counted as a big pot.
const BigPotBB = 50

// HandResult represents the outcome of a single poker hand for the tracked seat
type HandResult struct {
	NetBB          float64 // Net big blinds won or lost
	Seed           int64   // RNG seed for this hand (for replay)
	Position       game.Position
	WentToShowdown bool
	PotBB          float64 // Total pot in big blinds
	Street         game.Street
}

// PositionStats tracks statistics for a specific table position
type PositionStats struct {
	Hands int
	SumBB float64
}

// Statistics tracks simulation results. The zero value is ready to use.
type Statistics struct {
	Hands  int
	Values []float64

	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won without showdown
	ShowdownBB      float64 // Net from hands that reached showdown, wins and losses
	NonShowdownBB   float64
	AllBB           float64

	Positions map[game.Position]*PositionStats
	Showdowns int

	MaxPotBB  float64
	BigPots   int
	BigPotsBB float64
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.Values = append(s.Values, r.NetBB)
	s.AllBB += r.NetBB

	if r.WentToShowdown {
		s.Showdowns++
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}

	if s.Positions == nil {
		s.Positions = make(map[game.Position]*PositionStats)
	}
	ps := s.Positions[r.Position]
	if ps == nil {
		ps = &PositionStats{}
		s.Positions[r.Position] = ps
	}
	ps.Hands++
	ps.SumBB += r.NetBB

	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
	if r.PotBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += r.NetBB
	}
}

// Merge adds every result recorded in o.
func (s *Statistics) Merge(o *Statistics) {
	s.Hands += o.Hands
	s.Values = append(s.Values, o.Values...)
	s.ShowdownWins += o.ShowdownWins
	s.NonShowdownWins += o.NonShowdownWins
	s.ShowdownBB += o.ShowdownBB
	s.NonShowdownBB += o.NonShowdownBB
	s.AllBB += o.AllBB
	s.Showdowns += o.Showdowns
	s.MaxPotBB = max(s.MaxPotBB, o.MaxPotBB)
	s.BigPots += o.BigPots
	s.BigPotsBB += o.BigPotsBB
	for pos, ps := range o.Positions {
		if s.Positions == nil {
			s.Positions = make(map[game.Position]*PositionStats)
		}
		cur := s.Positions[pos]
		if cur == nil {
			cur = &PositionStats{}
			s.Positions[pos] = cur
		}
		cur.Hands += ps.Hands
		cur.SumBB += ps.SumBB
	}
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean using
// the t-distribution.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	if s.Hands < 2 {
		return mean, mean
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(s.Hands - 1)}
	margin := t.Quantile(0.975) * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbouring results.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result for a position.
func (s *Statistics) PositionMean(pos game.Position) float64 {
	ps := s.Positions[pos]
	if ps == nil || ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands != len(s.Values) {
		return fmt.Errorf("hand count %d does not match %d recorded values", s.Hands, len(s.Values))
	}
	var positioned int
	for _, ps := range s.Positions {
		positioned += ps.Hands
	}
	if positioned != s.Hands {
		return fmt.Errorf("position counts sum to %d, expected %d", positioned, s.Hands)
	}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d is not finite: %f", i, v)
		}
	}
	return nil
}
