package bot

import (
	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/internal/game"
)

// CallBot checks or calls every street and never raises.
type CallBot struct {
	logger zerolog.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger zerolog.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(dc game.DecisionContext) game.Decision {
	if dc.CanCheck() {
		return findAction(dc, game.Check, "call-bot checking")
	}
	c.logger.Debug().Int("seat", dc.Seat).Stringer("to_call", dc.ToCall).Msg("calling")
	return findAction(dc, game.Call, "call-bot calling")
}
