package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/poker"
)

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Amount    Chips  // For bets and raises, the total bet amount
	Reasoning string // Human-readable explanation
}

// DecisionContext is the read-only betting context handed to a policy.
type DecisionContext struct {
	Seat          int
	Street        Street
	Position      Position
	HoleCards     []poker.Card
	Community     []poker.Card
	ToCall        Chips
	Stack         Chips
	CurrentBet    Chips
	LastBet       Chips
	MinRaise      Chips
	Pot           Chips
	BigBlind      Chips
	LiveOpponents int
	ValidActions  []ValidAction
}

// CanCheck reports whether checking is legal.
func (c DecisionContext) CanCheck() bool {
	return c.Allowed(Check)
}

// Allowed reports whether action appears among the valid actions.
func (c DecisionContext) Allowed(action Action) bool {
	_, ok := c.Bounds(action)
	return ok
}

// Bounds returns the valid amounts for action.
func (c DecisionContext) Bounds(action Action) (ValidAction, bool) {
	i := slices.IndexFunc(c.ValidActions, func(va ValidAction) bool { return va.Action == action })
	if i < 0 {
		return ValidAction{}, false
	}
	return c.ValidActions[i], true
}

// Policy chooses an action for the seat to act. Policies receive an immutable
// context and never touch the hand directly.
type Policy interface {
	Decide(DecisionContext) Decision
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(DecisionContext) Decision

func (f PolicyFunc) Decide(c DecisionContext) Decision { return f(c) }

// DecisionContext builds the context for the seat to act.
func (h *Hand) DecisionContext() (DecisionContext, error) {
	p, ok := h.players[h.toAct]
	if !ok {
		return DecisionContext{}, rejectf(RuleHandComplete, "no seat to act in hand %s", h.ID)
	}
	live := 0
	for _, other := range h.players {
		if other.InHand() && other.Seat != p.Seat {
			live++
		}
	}
	return DecisionContext{
		Seat:          p.Seat,
		Street:        h.street,
		Position:      h.Positions.Label(p.Seat),
		HoleCards:     slices.Clone(p.HoleCards),
		Community:     slices.Clone(h.community),
		ToCall:        h.round.ToCall(p),
		Stack:         p.Stack,
		CurrentBet:    p.CurrentBet,
		LastBet:       h.round.LastBet,
		MinRaise:      h.round.MinRaise,
		Pot:           h.ledger.Total(),
		BigBlind:      h.BigBlind,
		LiveOpponents: live,
		ValidActions:  h.round.ValidActions(p),
	}, nil
}

// Play drives h to completion by asking each seat's policy in turn. A decision
// that fails validation is replaced by a check when legal, then a call, then a
// fold.
func Play(ctx context.Context, h *Hand, policies map[int]Policy, logger zerolog.Logger) (*Settlement, error) {
	for !h.IsComplete() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dc, err := h.DecisionContext()
		if err != nil {
			return nil, err
		}
		policy, ok := policies[dc.Seat]
		if !ok {
			return nil, fmt.Errorf("no policy for seat %d", dc.Seat)
		}

		d := policy.Decide(dc)
		err = h.Apply(PlayerAction{Seat: dc.Seat, Action: d.Action, Amount: d.Amount})
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrValidation) {
			return nil, err
		}

		fallback := Fold
		switch {
		case dc.CanCheck():
			fallback = Check
		case dc.Allowed(Call):
			fallback = Call
		}
		logger.Warn().Err(err).
			Int("seat", dc.Seat).
			Stringer("wanted", d.Action).
			Stringer("fallback", fallback).
			Msg("invalid decision replaced")
		if err := h.Apply(PlayerAction{Seat: dc.Seat, Action: fallback}); err != nil {
			return nil, err
		}
	}
	s, _ := h.Settlement()
	return s, nil
}
