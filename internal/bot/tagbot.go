package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/internal/equity"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
)

// equitySamples is the Monte Carlo budget for one postflop decision.
const equitySamples = 400

// TAGBot is a Tight Aggressive bot: it raises strong starting hands, folds weak
// ones, and after the flop bets or calls according to its equity against random
// hands and the pot odds on offer.
type TAGBot struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger zerolog.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) Decide(dc game.DecisionContext) game.Decision {
	if len(dc.HoleCards) != 2 {
		return checkOrFold(dc, "TAG no cards")
	}
	if dc.Street == game.Preflop {
		return t.preflop(dc)
	}
	return t.postflop(dc)
}

func (t *TAGBot) preflop(dc game.DecisionContext) game.Decision {
	category := poker.CategorizeHoleCards(dc.HoleCards[0], dc.HoleCards[1])
	facingRaise := dc.LastBet > dc.BigBlind

	switch category {
	case poker.CategoryPremium:
		if d, ok := raiseTo(dc, 1); ok {
			d.Reasoning = "TAG raise premium"
			return d
		}
		return findAction(dc, game.Call, "TAG call premium")
	case poker.CategoryStrong:
		if !facingRaise {
			if d, ok := raiseTo(dc, 0.75); ok {
				d.Reasoning = "TAG open strong"
				return d
			}
		}
		return findAction(dc, game.Call, "TAG call strong")
	case poker.CategoryMedium:
		if facingRaise && dc.ToCall > 3*dc.BigBlind {
			return checkOrFold(dc, "TAG fold medium to raise")
		}
		return findAction(dc, game.Call, "TAG call medium")
	}
	if dc.CanCheck() {
		return findAction(dc, game.Check, "TAG check weak")
	}
	return findAction(dc, game.Fold, fmt.Sprintf("TAG fold %s", category))
}

func (t *TAGBot) postflop(dc game.DecisionContext) game.Decision {
	eq := equity.VsRandom(dc.HoleCards, dc.Community, max(dc.LiveOpponents, 1), equitySamples, t.rng)
	var potOdds float64
	if dc.ToCall > 0 {
		potOdds = float64(dc.ToCall) / float64(dc.Pot+dc.ToCall)
	}
	t.logger.Debug().
		Int("seat", dc.Seat).
		Stringer("street", dc.Street).
		Float64("equity", eq).
		Float64("pot_odds", potOdds).
		Msg("postflop decision")

	switch {
	case eq > 0.7:
		if d, ok := raiseTo(dc, 0.66); ok {
			d.Reasoning = fmt.Sprintf("TAG value bet (equity %.2f)", eq)
			return d
		}
		return findAction(dc, game.Call, "TAG call strong")
	case dc.ToCall == 0:
		return findAction(dc, game.Check, "TAG check")
	case eq >= potOdds:
		return findAction(dc, game.Call, fmt.Sprintf("TAG call (equity %.2f >= odds %.2f)", eq, potOdds))
	}
	return findAction(dc, game.Fold, fmt.Sprintf("TAG fold (equity %.2f < odds %.2f)", eq, potOdds))
}
