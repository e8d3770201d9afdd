package game

import (
	"fmt"
	"slices"

	"github.com/lox/pokerengine/poker"
)

// Contender is a live seat at showdown.
type Contender struct {
	Seat      int
	HoleCards []poker.Card
}

// Award is one seat's share of one pot.
type Award struct {
	PotID  int
	Seat   int
	Amount Chips
}

// ShowdownResult is the computed distribution of every pot. Nothing is paid until
// it is applied.
type ShowdownResult struct {
	Hands    map[int]poker.HandResult // Empty when the hand was won uncontested
	Awards   []Award
	Winnings map[int]Chips
}

// ComputeShowdown decides who wins each pot. A lone contender takes everything
// without showing. Split pots are divided evenly and any indivisible remainder is
// handed out one unit at a time clockwise from the seat after the dealer.
func ComputeShowdown(contenders []Contender, community []poker.Card, pots []Pot, dealer int) (ShowdownResult, error) {
	res := ShowdownResult{
		Hands:    make(map[int]poker.HandResult),
		Winnings: make(map[int]Chips),
	}
	if len(contenders) == 0 {
		return res, poker.Contractf("ComputeShowdown", "no contenders")
	}

	if len(contenders) == 1 {
		seat := contenders[0].Seat
		for _, pot := range pots {
			res.Awards = append(res.Awards, Award{PotID: pot.ID, Seat: seat, Amount: pot.Amount})
			res.Winnings[seat] += pot.Amount
		}
		return res, nil
	}

	for _, c := range contenders {
		hr, err := poker.EvaluateHand(c.HoleCards, community)
		if err != nil {
			return ShowdownResult{}, fmt.Errorf("evaluate seat %d: %w", c.Seat, err)
		}
		res.Hands[c.Seat] = hr
	}

	for _, pot := range pots {
		var best poker.HandRank
		var winners []int
		for _, seat := range pot.Eligible.Seats() {
			hr, ok := res.Hands[seat]
			if !ok {
				continue
			}
			switch {
			case hr.Rank > best:
				best, winners = hr.Rank, []int{seat}
			case hr.Rank == best:
				winners = append(winners, seat)
			}
		}
		if len(winners) == 0 {
			return ShowdownResult{}, poker.Contractf("ComputeShowdown", "pot %d has no eligible contender", pot.ID)
		}

		slices.SortFunc(winners, func(a, b int) int {
			return seatDistance(dealer+1, a) - seatDistance(dealer+1, b)
		})
		share := pot.Amount / Chips(len(winners))
		odd := pot.Amount % Chips(len(winners))
		for i, seat := range winners {
			amount := share
			if Chips(i) < odd {
				amount++
			}
			res.Awards = append(res.Awards, Award{PotID: pot.ID, Seat: seat, Amount: amount})
			res.Winnings[seat] += amount
		}
	}
	return res, nil
}

// Apply credits the winnings to the players' stacks.
func (r ShowdownResult) Apply(players map[int]*Player) {
	for seat, amount := range r.Winnings {
		if p, ok := players[seat]; ok {
			p.Stack += amount
		}
	}
}

// Winners returns the seats that won any chips, ascending.
func (r ShowdownResult) Winners() []int {
	seats := make([]int, 0, len(r.Winnings))
	for seat, amount := range r.Winnings {
		if amount > 0 {
			seats = append(seats, seat)
		}
	}
	slices.Sort(seats)
	return seats
}
