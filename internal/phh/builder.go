package phh

import (
	"errors"
	"fmt"
	"time"

	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
)

// ErrHandInProgress is returned when building a history for an unfinished hand.
var ErrHandInProgress = errors.New("phh: hand is not complete")

// Options sets the descriptive fields of a history.
type Options struct {
	Table    string
	Location *time.Location // Defaults to UTC
}

// Build converts a finished hand and its events into a hand history. The events
// must be the hand's own, in order, as recorded by an EventLog.
func Build(h *game.Hand, events []game.Event, opts Options) (*HandHistory, error) {
	s, ok := h.Settlement()
	if !ok {
		return nil, ErrHandInProgress
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	order := h.Positions.ActionOrder
	player := make(map[int]int, len(order))
	hh := &HandHistory{
		Variant:   "NT",
		Table:     opts.Table,
		SeatCount: game.MaxSeats,
		HandID:    h.ID,
		MinBet:    h.BigBlind.Float64(),
	}
	for i, seat := range order {
		player[seat] = i + 1
		p, _ := h.Player(seat)
		hh.Seats = append(hh.Seats, seat+1)
		hh.Players = append(hh.Players, p.Name)
		hh.Antes = append(hh.Antes, 0)
		hh.BlindsOrStraddles = append(hh.BlindsOrStraddles, 0)
		hh.StartingStacks = append(hh.StartingStacks, (s.Stacks[seat] - s.Net[seat]).Float64())
		hh.FinishingStacks = append(hh.FinishingStacks, s.Stacks[seat].Float64())
		hh.Winnings = append(hh.Winnings, s.Showdown.Winnings[seat].Float64())
	}

	var streetHigh game.Chips
	for _, e := range events {
		if e.HandID != h.ID {
			return nil, fmt.Errorf("phh: event %d belongs to hand %s, not %s", e.Seq, e.HandID, h.ID)
		}
		switch e.Type {
		case game.EventHandStarted:
			hh.setTimestamp(e.Time.In(loc))
		case game.EventBlindPosted:
			hh.BlindsOrStraddles[player[e.Seat]-1] = e.Amount.Float64()
			streetHigh = max(streetHigh, e.BetTo)
		case game.EventCardsDealt:
			hh.Actions = append(hh.Actions, fmt.Sprintf("d dh p%d %s", player[e.Seat], joinCards(e.Cards)))
		case game.EventActionApplied:
			hh.Actions = append(hh.Actions, formatAction(player[e.Seat], e, streetHigh))
			streetHigh = max(streetHigh, e.BetTo)
		case game.EventStreetDealt:
			hh.Actions = append(hh.Actions, "d db "+joinCards(e.Cards))
			for _, c := range e.Cards {
				hh.Board = append(hh.Board, c.String())
			}
			streetHigh = 0
		}
	}

	if s.Street == game.Showdown {
		for _, seat := range order {
			if _, shown := s.Showdown.Hands[seat]; !shown {
				continue
			}
			p, _ := h.Player(seat)
			hh.Actions = append(hh.Actions, fmt.Sprintf("p%d sm %s", player[seat], joinCards(p.HoleCards)))
		}
	}
	hh.Metadata = map[string]any{
		"result": s.Street.String(),
		"board":  poker.FormatCards(h.Community()),
	}
	return hh, nil
}

func (hh *HandHistory) setTimestamp(ts time.Time) {
	hh.Timestamp = ts
	hh.Time = ts.Format(time.TimeOnly)
	hh.TimeZone = ts.Location().String()
	hh.Day = ts.Day()
	hh.Month = int(ts.Month())
	hh.Year = ts.Year()
}
