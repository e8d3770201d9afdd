package poker

import (
	"cmp"
	"slices"
)

// HandResult is the best five-card hand found among a player's cards.
type HandResult struct {
	Rank        HandRank
	Type        HandType
	Cards       [5]Card // ordered by significance, e.g. the trips before the pair
	Description string
}

// Beats reports whether r is strictly stronger than other.
func (r HandResult) Beats(other HandResult) bool {
	return r.Rank > other.Rank
}

// EvaluateHand returns the best five-card hand from two hole cards and three to
// five community cards.
func EvaluateHand(hole, community []Card) (HandResult, error) {
	if len(hole) != 2 {
		return HandResult{}, Contractf("EvaluateHand", "need 2 hole cards, got %d", len(hole))
	}
	if len(community) < 3 || len(community) > 5 {
		return HandResult{}, Contractf("EvaluateHand", "need 3-5 community cards, got %d", len(community))
	}
	cards := make([]Card, 0, 7)
	cards = append(cards, hole...)
	cards = append(cards, community...)
	return EvaluateCards(cards)
}

// EvaluateCards returns the best five-card hand from five to seven distinct cards.
// Every five-card subset is ranked and the strongest kept.
func EvaluateCards(cards []Card) (HandResult, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandResult{}, Contractf("EvaluateCards", "need 5-7 cards, got %d", len(cards))
	}
	var seen Hand
	for _, c := range cards {
		if !c.Valid() {
			return HandResult{}, Contractf("EvaluateCards", "invalid card %v", c)
		}
		if seen.HasCard(c) {
			return HandResult{}, Contractf("EvaluateCards", "duplicate card %s", c)
		}
		seen.AddCard(c)
	}

	var (
		best     HandRank
		bestFive [5]Card
		five     [5]Card
	)
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						if r := Evaluate5(five); r > best {
							best, bestFive = r, five
						}
					}
				}
			}
		}
	}

	orderBySignificance(&bestFive, best.Type())
	return HandResult{
		Rank:        best,
		Type:        best.Type(),
		Cards:       bestFive,
		Description: best.String(),
	}, nil
}

// Evaluate5 ranks exactly five cards. The cards must be distinct.
func Evaluate5(cards [5]Card) HandRank {
	var ranks [5]Rank
	flush := true
	for i, c := range cards {
		ranks[i] = c.Rank
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	return rankTable().lookup(ranks, flush)
}

// orderBySignificance sorts cards by rank multiplicity then rank, moving the ace of
// a wheel to the end.
func orderBySignificance(cards *[5]Card, t HandType) {
	var counts [Ace + 1]int
	for _, c := range cards {
		counts[c.Rank]++
	}
	slices.SortFunc(cards[:], func(a, b Card) int {
		if c := cmp.Compare(counts[b.Rank], counts[a.Rank]); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.Suit, b.Suit)
	})
	if (t == Straight || t == StraightFlush) && cards[0].Rank == Ace && cards[1].Rank == Five {
		ace := cards[0]
		copy(cards[:4], cards[1:])
		cards[4] = ace
	}
}
