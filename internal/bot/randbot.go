package bot

import (
	"math/rand/v2"

	"github.com/lox/pokerengine/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide(dc game.DecisionContext) game.Decision {
	if len(dc.ValidActions) == 0 {
		return game.Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	va := dc.ValidActions[r.rng.IntN(len(dc.ValidActions))]
	amount := va.Min
	if (va.Action == game.Bet || va.Action == game.Raise) && va.Max > va.Min {
		amount = va.Min + game.Chips(r.rng.Int64N(int64(va.Max-va.Min)+1))
	}
	return game.Decision{Action: va.Action, Amount: amount, Reasoning: "rand-bot random action"}
}
