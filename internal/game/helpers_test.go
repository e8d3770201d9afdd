package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/poker"
)

func chips(t *testing.T, s string) Chips {
	t.Helper()
	c, err := ParseChips(s)
	require.NoError(t, err)
	return c
}

func stackedDeck(t *testing.T, cards string) *poker.Deck {
	t.Helper()
	d, err := poker.NewStackedDeck(poker.MustParseCards(cards))
	require.NoError(t, err)
	return d
}

func seatedPlayers(stacks map[int]Chips) []SeatedPlayer {
	var out []SeatedPlayer
	for seat := 0; seat < MaxSeats; seat++ {
		if stack, ok := stacks[seat]; ok {
			out = append(out, SeatedPlayer{Seat: seat, Name: string(rune('A' + seat)), Stack: stack})
		}
	}
	return out
}

func newTestHand(t *testing.T, stacks map[int]Chips, dealer int, opts ...HandOption) *Hand {
	t.Helper()
	h, err := NewHand(randutil.New(42), seatedPlayers(stacks), dealer, 50, 100, opts...)
	require.NoError(t, err)
	return h
}

func act(t *testing.T, h *Hand, seat int, action Action, amount ...Chips) {
	t.Helper()
	a := PlayerAction{Seat: seat, Action: action}
	if len(amount) > 0 {
		a.Amount = amount[0]
	}
	require.NoError(t, h.Apply(a), "seat %d %s", seat, action)
}
