package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerengine/internal/randutil"
)

func newTestTable(t *testing.T, opts ...TableOption) *Table {
	t.Helper()
	n := 0
	ids := WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("hand-%d", n)
	})
	tbl, err := NewTable(randutil.New(7), 50, 100, append([]TableOption{ids}, opts...)...)
	require.NoError(t, err)
	return tbl
}

func TestTableSeating(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t)

	require.NoError(t, tbl.Sit(2, "alice", 10000))
	assert.True(t, IsRule(tbl.Sit(2, "bob", 10000), RuleInvalidSeat))
	assert.True(t, IsRule(tbl.Sit(10, "bob", 10000), RuleInvalidSeat))
	assert.True(t, IsRule(tbl.Sit(3, "bob", -1), RuleInvalidAmount))
	require.NoError(t, tbl.Sit(5, "bob", 0))

	assert.Equal(t, NewSeatSet(2, 5), tbl.Occupied())
	assert.Equal(t, NewSeatSet(2), tbl.Funded())

	_, err := tbl.StartHand()
	assert.True(t, IsRule(err, RuleInvalidPlayerCount))

	require.NoError(t, tbl.Leave(5))
	assert.True(t, IsRule(tbl.Leave(5), RuleInvalidSeat))
	assert.Len(t, tbl.Players(), 1)
}

func TestTableButtonMovesAndStacksCarry(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t)
	for _, seat := range []int{1, 4, 8} {
		require.NoError(t, tbl.Sit(seat, fmt.Sprintf("p%d", seat), 10000))
	}

	var dealers []int
	for i := 0; i < 4; i++ {
		h, err := tbl.StartHand()
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("hand-%d", i+1), h.ID)
		dealers = append(dealers, tbl.Dealer())

		_, err = tbl.StartHand()
		assert.True(t, IsRule(err, RuleHandComplete), "one hand at a time")

		// Everyone folds to the big blind.
		for !h.IsComplete() {
			act(t, h, h.ToAct(), Fold)
		}
		require.NoError(t, tbl.EndHand(h))
	}
	assert.Equal(t, []int{1, 4, 8, 1}, dealers)
	assert.Equal(t, 4, tbl.HandCount())

	var total Chips
	for _, sp := range tbl.Players() {
		total += sp.Stack
	}
	assert.Equal(t, Chips(30000), total)
}

func TestTableRequiresEndHandBeforeNextHand(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t)
	require.NoError(t, tbl.Sit(0, "alice", 10000))
	require.NoError(t, tbl.Sit(3, "bob", 10000))

	h, err := tbl.StartHand()
	require.NoError(t, err)
	act(t, h, h.ToAct(), Fold)
	require.True(t, h.IsComplete())

	_, err = tbl.StartHand()
	assert.True(t, IsRule(err, RuleHandComplete), "settled stacks are not written back yet")
	assert.ErrorContains(t, err, "has not been ended")
	assert.True(t, IsRule(tbl.Leave(3), RuleInvalidSeat))
	for _, sp := range tbl.Players() {
		assert.Equal(t, Chips(10000), sp.Stack)
	}

	require.NoError(t, tbl.EndHand(h))
	assert.True(t, IsRule(tbl.EndHand(h), RuleHandComplete), "a hand is ended once")

	next, err := tbl.StartHand()
	require.NoError(t, err)
	assert.Equal(t, "hand-2", next.ID)

	var total Chips
	for _, sp := range tbl.Players() {
		total += sp.Stack
	}
	assert.Equal(t, Chips(20000), total)
}

func TestTableBustedPlayerSitsOut(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t)
	require.NoError(t, tbl.Sit(0, "short", 100))
	require.NoError(t, tbl.Sit(1, "deep", 10000))
	require.NoError(t, tbl.Sit(2, "deep2", 10000))

	policies := map[int]Policy{
		0: PolicyFunc(func(DecisionContext) Decision { return Decision{Action: AllIn} }),
		1: PolicyFunc(func(dc DecisionContext) Decision { return Decision{Action: Call} }),
		2: PolicyFunc(func(dc DecisionContext) Decision { return Decision{Action: Call} }),
	}

	for tbl.Funded().Has(0) && tbl.HandCount() < 50 {
		h, err := tbl.StartHand()
		require.NoError(t, err)
		_, err = Play(context.Background(), h, policies, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, tbl.EndHand(h))
	}
	require.False(t, tbl.Funded().Has(0), "short stack should bust")

	h, err := tbl.StartHand()
	require.NoError(t, err)
	assert.NotContains(t, h.Seats(), 0)
}

func TestNewTableValidation(t *testing.T) {
	t.Parallel()
	_, err := NewTable(nil, 50, 100)
	assert.Error(t, err)
	_, err = NewTable(randutil.New(1), 100, 50)
	assert.True(t, IsRule(err, RuleInvalidAmount))
}
