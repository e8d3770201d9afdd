// Package bot provides simple seat policies for driving hands without humans.
package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/internal/game"
)

// New returns the policy registered under name. The RNG is used by policies
// that randomise.
func New(name string, rng *rand.Rand, logger zerolog.Logger) (game.Policy, error) {
	logger = logger.With().Str("component", "bot").Str("policy", name).Logger()
	switch name {
	case "calling":
		return NewCallBot(logger), nil
	case "folding":
		return NewFoldBot(), nil
	case "random":
		return NewRandBot(rng), nil
	case "tight":
		return NewTAGBot(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}

// findAction returns preferred when it is valid, otherwise the first valid
// action. A call with nothing to call is a check. Amounts are the minimum the
// action allows.
func findAction(dc game.DecisionContext, preferred game.Action, reasoning string) game.Decision {
	if preferred == game.Call && dc.CanCheck() {
		preferred = game.Check
	}
	if va, ok := dc.Bounds(preferred); ok {
		return game.Decision{Action: preferred, Amount: va.Min, Reasoning: reasoning}
	}
	if len(dc.ValidActions) > 0 {
		va := dc.ValidActions[0]
		return game.Decision{Action: va.Action, Amount: va.Min, Reasoning: "fallback: " + reasoning}
	}
	return game.Decision{Action: game.Fold, Reasoning: "emergency fold"}
}

// checkOrFold checks when free, otherwise folds.
func checkOrFold(dc game.DecisionContext, reasoning string) game.Decision {
	if dc.CanCheck() {
		return game.Decision{Action: game.Check, Reasoning: reasoning}
	}
	return game.Decision{Action: game.Fold, Reasoning: reasoning}
}

// raiseTo picks a total bet of about fraction of the pot on top of the call,
// clamped to the legal range. ok is false when no raise is allowed.
func raiseTo(dc game.DecisionContext, fraction float64) (game.Decision, bool) {
	for _, a := range []game.Action{game.Bet, game.Raise} {
		va, ok := dc.Bounds(a)
		if !ok {
			continue
		}
		target := dc.LastBet + game.Chips(float64(dc.Pot+dc.ToCall)*fraction)
		return game.Decision{Action: a, Amount: min(max(target, va.Min), va.Max)}, true
	}
	return game.Decision{}, false
}
