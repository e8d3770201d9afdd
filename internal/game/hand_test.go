package game

import (
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerengine/poker"
)

// Dealt from the small blind: seat 1 As Ks, seat 2 2c 7d, seat 0 3h 8c.
// Board Ah 9c 6s | Jd | 2h after burns.
const checkDownDeck = "As 2c 3h Ks 7d 8c 4d Ah 9c 6s 4s Jd 4h 2h"

func TestHandCheckDownToShowdown(t *testing.T) {
	t.Parallel()
	log := NewMemoryLog()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000, 2: 10000}, 0,
		WithDeck(stackedDeck(t, checkDownDeck)), WithEventLog(log))

	assert.Equal(t, 1, h.Positions.SmallBlind)
	assert.Equal(t, 2, h.Positions.BigBlind)
	assert.Equal(t, 0, h.ToAct(), "UTG acts first preflop")
	assert.Equal(t, Chips(150), h.Pot())

	p1, _ := h.Player(1)
	assert.Equal(t, poker.MustParseCards("As Ks"), p1.HoleCards)

	act(t, h, 0, Call)
	act(t, h, 1, Call)
	assert.Equal(t, 2, h.ToAct(), "big blind keeps the option")
	act(t, h, 2, Check)

	require.Equal(t, Flop, h.Street())
	assert.Equal(t, poker.MustParseCards("Ah 9c 6s"), h.Community())
	for _, street := range []Street{Flop, Turn, River} {
		require.Equal(t, street, h.Street())
		assert.Equal(t, 1, h.ToAct(), "small blind acts first after the flop")
		act(t, h, 1, Check)
		act(t, h, 2, Check)
		act(t, h, 0, Check)
	}

	require.True(t, h.IsComplete())
	assert.Equal(t, -1, h.ToAct())
	assert.Equal(t, poker.MustParseCards("Ah 9c 6s Jd 2h"), h.Community())

	s, ok := h.Settlement()
	require.True(t, ok)
	assert.Equal(t, Showdown, s.Street)
	assert.Equal(t, map[int]Chips{0: -100, 1: 200, 2: -100}, s.Net)
	assert.Equal(t, Chips(10200), s.Stacks[1])
	assert.Equal(t, poker.OnePair, s.Showdown.Hands[1].Type)

	events := log.ForHand(h.ID)
	require.NotEmpty(t, events)
	assert.Equal(t, EventHandStarted, events[0].Type)
	assert.Equal(t, EventHandEnded, events[len(events)-1].Type)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
}

func TestHandHeadsUpOrder(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{3: 5000, 7: 5000}, 7)

	assert.Equal(t, 7, h.Positions.SmallBlind, "dealer posts the small blind heads-up")
	assert.Equal(t, 3, h.Positions.BigBlind)
	assert.Equal(t, 7, h.ToAct())

	act(t, h, 7, Call)
	assert.Equal(t, 3, h.ToAct())
	act(t, h, 3, Check)

	require.Equal(t, Flop, h.Street())
	assert.Equal(t, 7, h.ToAct(), "dealer acts first after the flop heads-up")
}

func TestHandFoldEndsHand(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000, 2: 10000}, 0)

	act(t, h, 0, Raise, 300)
	act(t, h, 1, Fold)
	act(t, h, 2, Fold)

	require.True(t, h.IsComplete())
	s, _ := h.Settlement()
	assert.Equal(t, EveryoneFolded, s.Street)
	assert.Empty(t, s.Showdown.Hands, "no cards shown when uncontested")
	assert.Equal(t, map[int]Chips{0: 150, 1: -50, 2: -100}, s.Net)
	assert.Empty(t, h.Community())
}

func TestHandAllInRunsOutBoard(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 2000}, 0,
		WithDeck(stackedDeck(t, "Ah Kh Ad Kd 2c 7s 9d Jc 3c 4h 5c 8s")))

	// Heads-up: seat 0 is dealer and small blind.
	act(t, h, 0, Raise, 500)
	act(t, h, 1, AllIn)
	act(t, h, 0, Call)

	require.True(t, h.IsComplete())
	assert.Len(t, h.Community(), 5)
	s, _ := h.Settlement()
	assert.Equal(t, Showdown, s.Street)
	assert.Equal(t, Chips(12000), s.Stacks[0])
	assert.Equal(t, Chips(0), s.Stacks[1])
	assert.Len(t, s.Pots, 1)
}

func TestHandSidePotReturnsUncalledChips(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 1000, 2: 10000}, 0)

	act(t, h, 0, Raise, 3000)
	act(t, h, 1, AllIn)
	act(t, h, 2, Fold)

	require.True(t, h.IsComplete())
	s, _ := h.Settlement()
	require.Len(t, s.Pots, 2)
	assert.Equal(t, Chips(2100), s.Pots[0].Amount)
	assert.Equal(t, Chips(2000), s.Pots[1].Amount)
	assert.Equal(t, NewSeatSet(0), s.Pots[1].Eligible)

	var total Chips
	for _, stack := range s.Stacks {
		total += stack
	}
	assert.Equal(t, Chips(21000), total)
}

func TestHandShortAllInReopensUnlessFullRaiseRule(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		opts      []HandOption
		canReopen bool
	}{
		{name: "default", canReopen: true},
		{name: "full raise rule", opts: []HandOption{WithFullRaiseRule()}, canReopen: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHand(t, map[int]Chips{0: 10000, 1: 400, 2: 10000}, 0, tt.opts...)
			assert.Equal(t, !tt.canReopen, h.Round().FullRaiseRule)

			act(t, h, 0, Raise, 300)
			act(t, h, 1, AllIn)
			act(t, h, 2, Call)
			require.Equal(t, 0, h.ToAct())

			var raise bool
			for _, va := range h.ValidActions() {
				raise = raise || va.Action == Raise || va.Action == AllIn
			}
			assert.Equal(t, tt.canReopen, raise)
		})
	}
}

func TestHandRejections(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000, 2: 10000}, 0)

	err := h.Apply(PlayerAction{Seat: 5, Action: Call})
	assert.True(t, IsRule(err, RuleInvalidSeat))

	err = h.Apply(PlayerAction{Seat: 2, Action: Check})
	assert.True(t, errors.Is(err, poker.ErrContract), "out of turn")

	err = h.Apply(PlayerAction{Seat: 0, Action: Check})
	assert.True(t, IsRule(err, RuleCannotCheck))
	assert.Equal(t, 0, h.ToAct(), "rejected action keeps the turn")
	assert.Equal(t, Chips(150), h.Pot())

	act(t, h, 0, Fold)
	err = h.Apply(PlayerAction{Seat: 0, Action: Call})
	assert.True(t, errors.Is(err, poker.ErrContract), "folded seat")

	act(t, h, 1, Fold)
	err = h.Apply(PlayerAction{Seat: 2, Action: Check})
	assert.True(t, IsRule(err, RuleHandComplete))
}

func TestNewHandValidation(t *testing.T) {
	t.Parallel()
	_, err := NewHand(nil, seatedPlayers(map[int]Chips{0: 100}), 0, 50, 100)
	assert.True(t, IsRule(err, RuleInvalidPlayerCount))

	_, err = NewHand(nil, seatedPlayers(map[int]Chips{0: 100, 1: 0}), 0, 50, 100)
	assert.True(t, IsRule(err, RuleInvalidPlayerCount), "empty stacks sit out")

	_, err = NewHand(nil, seatedPlayers(map[int]Chips{0: 100, 1: 100}), 0, 100, 50)
	assert.True(t, IsRule(err, RuleInvalidAmount))

	_, err = NewHand(nil, seatedPlayers(map[int]Chips{0: 100, 1: 100}), 4, 50, 100)
	assert.True(t, IsRule(err, RuleInvalidSeat))
}

func TestHandShortBlindsRunOut(t *testing.T) {
	t.Parallel()
	// Both players are all-in from the blinds alone.
	h := newTestHand(t, map[int]Chips{0: 50, 1: 80}, 0)
	require.True(t, h.IsComplete())
	s, _ := h.Settlement()
	assert.Equal(t, Showdown, s.Street)
	assert.Equal(t, Chips(130), s.Stacks[0]+s.Stacks[1])
}

func TestHandEventsUseClock(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	log := NewMemoryLog()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000}, 0,
		WithClock(clock), WithEventLog(log), WithHandID("hand-1"))

	act(t, h, 0, Fold)
	for _, e := range log.Events() {
		assert.Equal(t, "hand-1", e.HandID)
		assert.True(t, e.Time.Equal(clock.Now()))
	}

	var types []EventType
	for _, e := range log.Events() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []EventType{
		EventHandStarted,
		EventBlindPosted, EventBlindPosted,
		EventCardsDealt, EventCardsDealt,
		EventActionApplied,
		EventPotAwarded,
		EventHandEnded,
	}, types)
}

func TestHandView(t *testing.T) {
	t.Parallel()
	h := newTestHand(t, map[int]Chips{0: 10000, 1: 10000, 2: 10000}, 0,
		WithDeck(stackedDeck(t, checkDownDeck)))

	v := h.View(0)
	assert.Equal(t, 0, v.ToAct)
	assert.Equal(t, Chips(100), v.ToCall)
	assert.Equal(t, Chips(200), v.MinRaiseTo)
	assert.Equal(t, Chips(10000), v.MaxRaiseTo)
	for _, pv := range v.Players {
		if pv.Seat == 0 {
			assert.Len(t, pv.HoleCards, 2)
		} else {
			assert.Nil(t, pv.HoleCards)
		}
	}

	spectator := h.View(Spectator)
	assert.Empty(t, spectator.ValidActions)
	for _, pv := range spectator.Players {
		assert.Nil(t, pv.HoleCards)
	}

	other := h.View(1)
	assert.Zero(t, other.ToCall, "derived fields only on the viewer's turn")
	assert.Nil(t, other.ValidActions)

	act(t, h, 0, Fold)
	act(t, h, 1, Call)
	act(t, h, 2, Check)
	for range 3 {
		act(t, h, h.ToAct(), Check)
		act(t, h, h.ToAct(), Check)
	}
	require.Equal(t, Showdown, h.Street())
	for _, pv := range h.View(Spectator).Players {
		if pv.Seat == 0 {
			assert.Nil(t, pv.HoleCards, "folded cards stay hidden")
		} else {
			assert.Len(t, pv.HoleCards, 2)
		}
	}
}
