package game

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionContext(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000, 2: 10000}, 0,
		WithDeck(stackedDeck(t, checkDownDeck)))

	dc, err := h.DecisionContext()
	require.NoError(t, err)
	assert.Equal(t, 0, dc.Seat)
	assert.Equal(t, Preflop, dc.Street)
	assert.Equal(t, Button, dc.Position)
	assert.Equal(t, Chips(100), dc.ToCall)
	assert.Equal(t, Chips(150), dc.Pot)
	assert.Equal(t, 2, dc.LiveOpponents)
	assert.Len(t, dc.HoleCards, 2)
	assert.False(t, dc.CanCheck())
	assert.True(t, dc.Allowed(Raise))

	raise, ok := dc.Bounds(Raise)
	require.True(t, ok)
	assert.Equal(t, Chips(200), raise.Min)

	// Mutating the context does not touch the hand.
	dc.HoleCards[0] = dc.HoleCards[1]
	p, _ := h.Player(0)
	assert.NotEqual(t, p.HoleCards[0], p.HoleCards[1])
}

func TestPlayReplacesInvalidDecisions(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000}, 0)

	// Raises below the minimum are rejected; the engine checks or calls instead.
	bad := PolicyFunc(func(DecisionContext) Decision { return Decision{Action: Raise, Amount: 1} })
	s, err := Play(context.Background(), h, map[int]Policy{0: bad, 1: bad}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, Showdown, s.Street, "small blind calls rather than folding")
	assert.Equal(t, Chips(0), s.Net[0]+s.Net[1])
	assert.Contains(t, []Chips{-100, 0, 100}, s.Net[0])
}

func TestPlayRejectedReraiseFallsBackToCall(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 400, 2: 10000}, 0, WithFullRaiseRule())

	// Seat 0 keeps shoving; once the short all-in leaves it closed, it must call.
	shove := PolicyFunc(func(dc DecisionContext) Decision {
		if dc.Street == Preflop {
			if dc.Allowed(Raise) && dc.CurrentBet == 0 {
				return Decision{Action: Raise, Amount: 300}
			}
			return Decision{Action: AllIn}
		}
		return Decision{Action: Check}
	})
	call := PolicyFunc(func(DecisionContext) Decision { return Decision{Action: Call} })
	s, err := Play(context.Background(), h, map[int]Policy{0: shove, 1: PolicyFunc(func(DecisionContext) Decision {
		return Decision{Action: AllIn}
	}), 2: call}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Showdown, s.Street, "seat 0 calls instead of folding")
	require.Len(t, s.Pots, 1)
	assert.Equal(t, Chips(1200), s.Pots[0].Amount)
}

func TestPlayMissingPolicy(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000}, 0)
	_, err := Play(context.Background(), h, map[int]Policy{1: PolicyFunc(func(DecisionContext) Decision {
		return Decision{Action: Fold}
	})}, zerolog.Nop())
	assert.ErrorContains(t, err, "no policy for seat 0")
}

func TestPlayHonoursCancellation(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Play(ctx, h, nil, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayCallingStationsReachShowdown(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000, 2: 10000}, 0,
		WithDeck(stackedDeck(t, checkDownDeck)))
	call := PolicyFunc(func(DecisionContext) Decision { return Decision{Action: Call} })
	s, err := Play(context.Background(), h, map[int]Policy{0: call, 1: call, 2: call}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Showdown, s.Street)
	assert.Equal(t, []int{1}, s.Showdown.Winners())
}
