package game

import (
	"slices"

	"github.com/lox/pokerengine/poker"
)

// Spectator is the viewer seat for a view that hides every hole card until showdown.
const Spectator = -1

// PlayerView is a read-only projection of one seat.
type PlayerView struct {
	Seat       int
	Name       string
	Position   Position
	Stack      Chips
	CurrentBet Chips
	Committed  Chips
	Folded     bool
	AllIn      bool
	LastAction Action
	HoleCards  []poker.Card // Nil unless visible to the viewer
}

// HandView is what a presentation layer may see of a hand from one seat.
type HandView struct {
	HandID    string
	Street    Street
	Dealer    int
	ToAct     int
	Community []poker.Card
	Pot       Chips
	LastBet   Chips
	MinRaise  Chips
	Players   []PlayerView

	// Derived for the viewer when it is their turn.
	ToCall       Chips
	MinRaiseTo   Chips
	MaxRaiseTo   Chips
	ValidActions []ValidAction
}

// View projects the hand for viewer. Hole cards are shown for the viewer's own
// seat and, once the hand reaches showdown, for every seat still in it.
func (h *Hand) View(viewer int) HandView {
	v := HandView{
		HandID:    h.ID,
		Street:    h.street,
		Dealer:    h.Positions.Dealer,
		ToAct:     h.toAct,
		Community: slices.Clone(h.community),
		Pot:       h.ledger.Total(),
		LastBet:   h.round.LastBet,
		MinRaise:  h.round.MinRaise,
	}
	for _, seat := range h.seats {
		p := h.players[seat]
		pv := PlayerView{
			Seat:       seat,
			Name:       p.Name,
			Position:   h.Positions.Label(seat),
			Stack:      p.Stack,
			CurrentBet: p.CurrentBet,
			Committed:  h.ledger[seat],
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			LastAction: p.LastAction,
		}
		if seat == viewer || (h.street == Showdown && !p.Folded) {
			pv.HoleCards = slices.Clone(p.HoleCards)
		}
		v.Players = append(v.Players, pv)
	}

	if p, ok := h.players[viewer]; ok && viewer == h.toAct {
		v.ToCall = min(h.round.ToCall(p), p.Stack)
		v.ValidActions = h.round.ValidActions(p)
		for _, va := range v.ValidActions {
			switch va.Action {
			case Bet, Raise, AllIn:
				if v.MinRaiseTo == 0 || va.Min < v.MinRaiseTo {
					v.MinRaiseTo = va.Min
				}
				v.MaxRaiseTo = max(v.MaxRaiseTo, va.Max)
			}
		}
	}
	return v
}
