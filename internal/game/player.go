package game

import (
	"github.com/lox/pokerengine/poker"
)

// Player is the engine's view of a seat during one hand.
type Player struct {
	Seat       int
	Name       string
	Stack      Chips
	CurrentBet Chips // Committed on the current street
	Folded     bool
	AllIn      bool
	HoleCards  []poker.Card
	LastAction Action
}

// CanAct reports whether the player still makes betting decisions.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// InHand reports whether the player can still win chips.
func (p *Player) InHand() bool {
	return !p.Folded
}

// commit moves up to amount from the stack into the current bet and returns what
// was actually moved. An emptied stack makes the player all-in.
func (p *Player) commit(amount Chips) Chips {
	amount = min(amount, p.Stack)
	p.Stack -= amount
	p.CurrentBet += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}
