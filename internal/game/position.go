package game

import "fmt"

// Position is a seat's role label relative to the dealer button.
type Position string

const (
	Button     Position = "BTN"
	SmallBlind Position = "SB"
	BigBlind   Position = "BB"
	UTG        Position = "UTG"
	UTG1       Position = "UTG1"
	UTG2       Position = "UTG2"
	MiddlePos  Position = "MP"
	Lojack     Position = "LJ"
	Hijack     Position = "HJ"
	Cutoff     Position = "CO"
)

// positionNames lists labels clockwise from the button for each table size.
var positionNames = map[int][]Position{
	2:  {Button, BigBlind},
	3:  {Button, SmallBlind, BigBlind},
	4:  {Button, SmallBlind, BigBlind, UTG},
	5:  {Button, SmallBlind, BigBlind, UTG, Cutoff},
	6:  {Button, SmallBlind, BigBlind, UTG, Hijack, Cutoff},
	7:  {Button, SmallBlind, BigBlind, UTG, Lojack, Hijack, Cutoff},
	8:  {Button, SmallBlind, BigBlind, UTG, UTG1, Lojack, Hijack, Cutoff},
	9:  {Button, SmallBlind, BigBlind, UTG, UTG1, MiddlePos, Lojack, Hijack, Cutoff},
	10: {Button, SmallBlind, BigBlind, UTG, UTG1, UTG2, MiddlePos, Lojack, Hijack, Cutoff},
}

// Positions is the seat assignment for one hand.
type Positions struct {
	Dealer             int
	SmallBlind         int
	BigBlind           int
	FirstToActPreflop  int
	FirstToActPostflop int
	Labels             map[int]Position
	// ActionOrder runs clockwise from the small blind and ends on the button.
	ActionOrder []int
}

// ResolvePositions assigns blinds, labels and action order for the occupied seats.
// Heads-up the dealer posts the small blind and acts first on every street.
func ResolvePositions(occupied SeatSet, dealer int) (Positions, error) {
	n := occupied.Len()
	if n < 2 {
		return Positions{}, rejectf(RuleInvalidPlayerCount, "need at least 2 seated players, have %d", n)
	}
	if !occupied.Has(dealer) {
		return Positions{}, rejectf(RuleInvalidSeat, "dealer seat %d is not occupied", dealer)
	}

	p := Positions{Dealer: dealer, Labels: make(map[int]Position, n)}
	order := occupied.ClockwiseFrom(dealer) // ends with the dealer
	names := positionNames[n]
	p.Labels[dealer] = names[0]
	for i, seat := range order[:n-1] {
		p.Labels[seat] = names[i+1]
	}

	if n == 2 {
		p.SmallBlind = dealer
		p.BigBlind = order[0]
		p.FirstToActPreflop = dealer
		p.FirstToActPostflop = dealer
		p.ActionOrder = []int{dealer, p.BigBlind}
		return p, nil
	}

	p.SmallBlind = order[0]
	p.BigBlind = order[1]
	p.FirstToActPreflop = order[2%n]
	p.FirstToActPostflop = p.SmallBlind
	p.ActionOrder = order
	return p, nil
}

// Label returns the position name for seat, or "" if the seat is not in the hand.
func (p Positions) Label(seat int) Position {
	return p.Labels[seat]
}

// FirstToActPostflop returns the first seat to act after the flop: the small blind
// when it can still act, otherwise the nearest seat clockwise from the dealer that
// can. It returns -1 when nobody can act.
func FirstToActPostflop(p Positions, canAct func(seat int) bool) int {
	if canAct(p.SmallBlind) {
		return p.SmallBlind
	}
	for _, seat := range p.ActionOrder {
		if canAct(seat) {
			return seat
		}
	}
	return -1
}

// NextDealer returns the dealer for the next hand: the nearest occupied seat
// clockwise from previous, or the lowest occupied seat when previous is negative.
func NextDealer(occupied SeatSet, previous int) (int, error) {
	if occupied == 0 {
		return -1, ErrEmptyTable
	}
	if previous < 0 {
		return occupied.Lowest(), nil
	}
	next, err := occupied.NextOccupied(previous)
	if err != nil {
		return -1, fmt.Errorf("next dealer after seat %d: %w", previous, err)
	}
	return next, nil
}
