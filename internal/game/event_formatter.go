package game

import (
	"fmt"

	"github.com/lox/pokerengine/poker"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowHoleCards bool // Include every player's hole cards (for hand history review)
	Viewer        int  // Seat whose hole cards are always shown; Spectator for none
}

// EventFormatter renders events as one line of hand-history text.
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns the text for e, or "" for events that have no line of their own.
func (ef *EventFormatter) Format(e Event) string {
	switch e.Type {
	case EventHandStarted:
		return fmt.Sprintf("*** HAND %s *** blinds %s, button seat %d", e.HandID, e.Detail, e.Seat)
	case EventBlindPosted:
		return fmt.Sprintf("%s: posts blind %s", e.Name, e.Amount)
	case EventCardsDealt:
		if ef.opts.ShowHoleCards || e.Seat == ef.opts.Viewer {
			return fmt.Sprintf("Dealt to %s [%s]", e.Name, poker.FormatCards(e.Cards))
		}
		return ""
	case EventActionApplied:
		return ef.formatAction(e)
	case EventStreetDealt:
		return fmt.Sprintf("*** %s *** [%s]", streetTitle(e.Street), poker.FormatCards(e.Cards))
	case EventPotAwarded:
		if e.Detail != "" {
			return fmt.Sprintf("%s wins %s from pot %d with %s", e.Name, e.Amount, e.PotID, e.Detail)
		}
		return fmt.Sprintf("%s wins %s from pot %d", e.Name, e.Amount, e.PotID)
	case EventHandEnded:
		return fmt.Sprintf("*** END (%s) *** board [%s]", e.Street, poker.FormatCards(e.Cards))
	}
	return ""
}

func (ef *EventFormatter) formatAction(e Event) string {
	switch e.Action {
	case Fold:
		return fmt.Sprintf("%s: folds", e.Name)
	case Check:
		return fmt.Sprintf("%s: checks", e.Name)
	case Call:
		return fmt.Sprintf("%s: calls %s", e.Name, e.Amount)
	case Bet:
		return fmt.Sprintf("%s: bets %s", e.Name, e.BetTo)
	case Raise:
		return fmt.Sprintf("%s: raises to %s", e.Name, e.BetTo)
	case AllIn:
		return fmt.Sprintf("%s: goes all-in for %s", e.Name, e.BetTo)
	default:
		return fmt.Sprintf("%s: %s %s", e.Name, e.Action, e.Amount)
	}
}

func streetTitle(s Street) string {
	switch s {
	case Flop:
		return "FLOP"
	case Turn:
		return "TURN"
	case River:
		return "RIVER"
	default:
		return s.String()
	}
}
