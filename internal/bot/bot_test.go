package bot

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/poker"
)

func preflopContext(hole string, toCall game.Chips) game.DecisionContext {
	dc := game.DecisionContext{
		Seat:      3,
		Street:    game.Preflop,
		HoleCards: poker.MustParseCards(hole),
		ToCall:    toCall,
		Stack:     10000,
		LastBet:   100,
		MinRaise:  100,
		Pot:       150,
		BigBlind:  100,
		ValidActions: []game.ValidAction{
			{Action: game.Fold},
			{Action: game.Call, Min: toCall, Max: toCall},
			{Action: game.Raise, Min: 200, Max: 10000},
			{Action: game.AllIn, Min: 10000, Max: 10000},
		},
		LiveOpponents: 2,
	}
	if toCall == 0 {
		dc.ValidActions[1] = game.ValidAction{Action: game.Check}
	}
	return dc
}

func TestNew(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"calling", "folding", "random", "tight"} {
		p, err := New(name, randutil.New(1), zerolog.Nop())
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}
	_, err := New("maniac", randutil.New(1), zerolog.Nop())
	assert.Error(t, err)
}

func TestCallBot(t *testing.T) {
	t.Parallel()
	b := NewCallBot(zerolog.Nop())
	assert.Equal(t, game.Call, b.Decide(preflopContext("7c 2d", 100)).Action)
	assert.Equal(t, game.Check, b.Decide(preflopContext("7c 2d", 0)).Action)
}

func TestFoldBot(t *testing.T) {
	t.Parallel()
	b := NewFoldBot()
	assert.Equal(t, game.Fold, b.Decide(preflopContext("As Ah", 100)).Action)
	assert.Equal(t, game.Check, b.Decide(preflopContext("As Ah", 0)).Action)
}

func TestRandBotStaysInBounds(t *testing.T) {
	t.Parallel()
	b := NewRandBot(randutil.New(5))
	dc := preflopContext("7c 2d", 100)
	seen := map[game.Action]bool{}
	for range 500 {
		d := b.Decide(dc)
		seen[d.Action] = true
		if d.Action == game.Raise {
			assert.GreaterOrEqual(t, d.Amount, game.Chips(200))
			assert.LessOrEqual(t, d.Amount, game.Chips(10000))
		}
	}
	assert.Len(t, seen, 4, "every valid action is chosen eventually")
}

func TestTAGBotPreflop(t *testing.T) {
	t.Parallel()
	b := NewTAGBot(randutil.New(9), zerolog.Nop())

	d := b.Decide(preflopContext("As Ah", 100))
	assert.Equal(t, game.Raise, d.Action)
	assert.GreaterOrEqual(t, d.Amount, game.Chips(200))

	assert.Equal(t, game.Fold, b.Decide(preflopContext("7c 2d", 100)).Action)
	assert.Equal(t, game.Check, b.Decide(preflopContext("7c 2d", 0)).Action, "free option is never folded")
}

func TestTAGBotPostflop(t *testing.T) {
	t.Parallel()
	b := NewTAGBot(randutil.New(9), zerolog.Nop())

	dc := game.DecisionContext{
		Street:        game.River,
		HoleCards:     poker.MustParseCards("As Ah"),
		Community:     poker.MustParseCards("Ad Ac 7h 2s 9d"),
		Pot:           1000,
		Stack:         5000,
		BigBlind:      100,
		MinRaise:      100,
		LiveOpponents: 1,
		ValidActions: []game.ValidAction{
			{Action: game.Fold},
			{Action: game.Check},
			{Action: game.Bet, Min: 100, Max: 5000},
			{Action: game.AllIn, Min: 5000, Max: 5000},
		},
	}
	d := b.Decide(dc)
	assert.Equal(t, game.Bet, d.Action, "quads bet for value")
	assert.Equal(t, game.Chips(660), d.Amount)

	dc.HoleCards = poker.MustParseCards("3c 4d")
	dc.Community = poker.MustParseCards("Ad Kc Qh Js 9d")
	dc.ToCall = 1000
	dc.LastBet = 1000
	dc.ValidActions = []game.ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 1000, Max: 1000},
	}
	assert.Equal(t, game.Fold, b.Decide(dc).Action)
}

func TestBotsPlayFullHands(t *testing.T) {
	t.Parallel()
	rng := randutil.New(11)
	tbl, err := game.NewTable(rng, 50, 100)
	require.NoError(t, err)

	policies := map[int]game.Policy{}
	for seat, name := range []string{"calling", "random", "tight", "folding", "tight", "random"} {
		require.NoError(t, tbl.Sit(seat, name, 10000))
		p, err := New(name, rng, zerolog.Nop())
		require.NoError(t, err)
		policies[seat] = p
	}

	for range 100 {
		if tbl.Funded().Len() < 2 {
			break
		}
		h, err := tbl.StartHand()
		require.NoError(t, err)
		_, err = game.Play(context.Background(), h, policies, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, tbl.EndHand(h))
	}

	var total game.Chips
	for _, sp := range tbl.Players() {
		total += sp.Stack
	}
	assert.Equal(t, game.Chips(60000), total)
}
