package game

import (
	"maps"
	"slices"
)

// Pot represents a pot (main or side)
type Pot struct {
	ID       int
	Amount   Chips
	Eligible SeatSet // Seats that can win this pot
	Cap      Chips   // Contribution level bounding the pot
	IsMain   bool
}

// Ledger is the cumulative amount each seat committed during the hand.
type Ledger map[int]Chips

// Total returns the sum of all contributions.
func (l Ledger) Total() Chips {
	var total Chips
	for _, c := range l {
		total += c
	}
	return total
}

// AllocatePots splits the hand's contributions into a main pot and side pots.
//
// Levels are the distinct contributions of seats still in the hand. Each pot takes
// every seat's contribution between the previous level and its own, and is won
// only by live seats that reached that level. Folded chips above the top live
// level land in the last pot so the pots always sum to the ledger.
func AllocatePots(ledger Ledger, folded SeatSet) []Pot {
	var levels []Chips
	for seat, c := range ledger {
		if !folded.Has(seat) && c > 0 {
			levels = append(levels, c)
		}
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	total := ledger.Total()
	if total == 0 {
		return nil
	}
	if len(levels) == 0 {
		// Everyone folded without a live contribution; keep the chips countable.
		return []Pot{{ID: 1, Amount: total, IsMain: true}}
	}

	seats := slices.Sorted(maps.Keys(ledger))
	pots := make([]Pot, 0, len(levels))
	var prev Chips
	for i, level := range levels {
		last := i == len(levels)-1
		pot := Pot{Cap: level}
		for _, seat := range seats {
			c := ledger[seat]
			upper := min(c, level)
			if last {
				upper = c
			}
			if share := upper - min(c, prev); share > 0 {
				pot.Amount += share
			}
			if !folded.Has(seat) && c >= level {
				pot.Eligible = pot.Eligible.Add(seat)
			}
		}
		prev = level
		if pot.Amount == 0 {
			continue
		}
		pot.ID = len(pots) + 1
		pot.IsMain = len(pots) == 0
		pots = append(pots, pot)
	}
	return pots
}

// TotalPots returns the combined amount of pots.
func TotalPots(pots []Pot) Chips {
	var total Chips
	for _, p := range pots {
		total += p.Amount
	}
	return total
}
