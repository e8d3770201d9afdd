package game

import (
	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/poker"
)

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

// handConfig holds the optional configuration for creating a hand.
type handConfig struct {
	deck   *poker.Deck // If provided, used instead of shuffling from the RNG
	logger zerolog.Logger
	log    EventLog
	clock  quartz.Clock
	handID string

	fullRaiseRule bool
}

func defaultHandConfig() handConfig {
	return handConfig{
		logger: zerolog.Nop(),
		log:    discardLog{},
		clock:  quartz.NewReal(),
	}
}

// WithDeck sets a specific deck, typically a stacked one in tests.
// This overrides the RNG for deck creation.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}

// WithLogger sets the logger; transitions are logged at debug level.
func WithLogger(logger zerolog.Logger) HandOption {
	return func(c *handConfig) {
		c.logger = logger
	}
}

// WithEventLog records the hand's transitions to log.
func WithEventLog(log EventLog) HandOption {
	return func(c *handConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) HandOption {
	return func(c *handConfig) {
		c.clock = clock
	}
}

// WithHandID sets the hand identifier used in logs and events.
func WithHandID(id string) HandOption {
	return func(c *handConfig) {
		c.handID = id
	}
}

// WithFullRaiseRule applies the tournament rule: an all-in raise short of a full
// raise does not reopen the betting for seats that already acted.
func WithFullRaiseRule() HandOption {
	return func(c *handConfig) {
		c.fullRaiseRule = true
	}
}
