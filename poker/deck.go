package poker

import (
	"math/rand/v2"
)

// Deck is a standard 52-card deck consumed front to back.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new deck shuffled with the given RNG. A nil RNG falls back to the
// global source, which is only appropriate outside of tests and replays.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.fill()
	d.Shuffle()
	return d
}

// NewStackedDeck returns an unshuffled deck whose first cards are the given ones,
// followed by every remaining card in canonical order. Used to script deals.
func NewStackedDeck(top []Card) (*Deck, error) {
	var seen Hand
	d := &Deck{}
	i := 0
	for _, c := range top {
		if !c.Valid() {
			return nil, Contractf("NewStackedDeck", "invalid card %v", c)
		}
		if seen.HasCard(c) {
			return nil, Contractf("NewStackedDeck", "duplicate card %s", c)
		}
		seen.AddCard(c)
		d.cards[i] = c
		i++
	}
	for _, c := range canonicalOrder() {
		if !seen.HasCard(c) {
			d.cards[i] = c
			i++
		}
	}
	return d, nil
}

func canonicalOrder() []Card {
	cards := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

func (d *Deck) fill() {
	copy(d.cards[:], canonicalOrder())
	d.next = 0
}

// Shuffle restores all 52 cards and shuffles them using Fisher-Yates.
func (d *Deck) Shuffle() {
	d.fill()
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the front of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, Contractf("Deck.Deal", "cannot deal %d cards, %d remaining", n, d.CardsRemaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() (Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Burn discards the top card.
func (d *Deck) Burn() error {
	_, err := d.Deal(1)
	return err
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
