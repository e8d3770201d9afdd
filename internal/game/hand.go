package game

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/internal/handid"
	"github.com/lox/pokerengine/poker"
)

// SeatedPlayer is a player sitting at the table between hands.
type SeatedPlayer struct {
	Seat  int
	Name  string
	Stack Chips
}

// PlayerAction is an action submitted by the seat to act.
type PlayerAction struct {
	Seat   int
	Action Action
	Amount Chips // Total bet for Bet and Raise
}

// Settlement is the outcome of a finished hand.
type Settlement struct {
	Street   Street // Showdown or EveryoneFolded
	Pots     []Pot
	Showdown ShowdownResult
	Stacks   map[int]Chips // Final stacks
	Net      map[int]Chips // Final minus starting stack
}

// Hand is the state of one hand of Texas Hold'em. It is mutated only through
// Apply and is not safe for concurrent use.
type Hand struct {
	ID         string
	SmallBlind Chips
	BigBlind   Chips
	Positions  Positions

	players   map[int]*Player
	seats     []int // Ascending
	start     map[int]Chips
	deck      *poker.Deck
	community []poker.Card
	street    Street
	round     *BettingRound
	ledger    Ledger
	toAct     int

	fullRaiseRule bool

	settlement *Settlement
	logger     zerolog.Logger
	events     *recorder
}

// NewHand deals a new hand. Players with an empty stack are skipped; at least two
// funded players are required and dealer must be one of them. The RNG shuffles the
// deck unless WithDeck is given.
func NewHand(rng *rand.Rand, seated []SeatedPlayer, dealer int, smallBlind, bigBlind Chips, opts ...HandOption) (*Hand, error) {
	cfg := defaultHandConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if smallBlind <= 0 || bigBlind <= 0 || smallBlind > bigBlind {
		return nil, rejectf(RuleInvalidAmount, "invalid blinds %s/%s", smallBlind, bigBlind)
	}

	h := &Hand{
		ID:         cfg.handID,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		players:    make(map[int]*Player, len(seated)),
		start:      make(map[int]Chips, len(seated)),
		ledger:     make(Ledger, len(seated)),
		toAct:      -1,

		fullRaiseRule: cfg.fullRaiseRule,
	}
	if h.ID == "" {
		h.ID = handid.New()
	}

	var occupied SeatSet
	for _, sp := range seated {
		if !ValidSeat(sp.Seat) || occupied.Has(sp.Seat) {
			return nil, rejectf(RuleInvalidSeat, "seat %d is invalid or taken twice", sp.Seat)
		}
		if sp.Stack <= 0 {
			continue
		}
		occupied = occupied.Add(sp.Seat)
		h.players[sp.Seat] = &Player{Seat: sp.Seat, Name: sp.Name, Stack: sp.Stack}
		h.start[sp.Seat] = sp.Stack
	}
	if occupied.Len() < 2 {
		return nil, rejectf(RuleInvalidPlayerCount, "need at least 2 players with chips, have %d", occupied.Len())
	}
	h.seats = occupied.Seats()

	pos, err := ResolvePositions(occupied, dealer)
	if err != nil {
		return nil, err
	}
	h.Positions = pos

	switch {
	case cfg.deck != nil:
		h.deck = cfg.deck
	case rng != nil:
		h.deck = poker.NewDeck(rng)
	default:
		return nil, errors.New("rng is required when no deck is supplied")
	}

	h.logger = cfg.logger.With().Str("component", "hand").Str("hand_id", h.ID).Logger()
	h.events = &recorder{log: cfg.log, clock: cfg.clock, handID: h.ID}

	if err := h.begin(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Hand) begin() error {
	h.street = Preflop
	h.round = NewBettingRound(Preflop, h.BigBlind)
	h.round.FullRaiseRule = h.fullRaiseRule

	h.events.emit(Event{Type: EventHandStarted, Seat: h.Positions.Dealer, Detail: fmt.Sprintf("%s/%s", h.SmallBlind, h.BigBlind)})
	h.logger.Debug().
		Int("dealer", h.Positions.Dealer).
		Int("players", len(h.seats)).
		Msg("hand started")

	h.postBlind(h.Positions.SmallBlind, h.SmallBlind)
	h.postBlind(h.Positions.BigBlind, h.BigBlind)
	// Posting does not count as acting, so the big blind keeps its option.
	h.round.LastBet = h.BigBlind

	if err := h.dealHoleCards(); err != nil {
		return err
	}

	h.toAct = h.nextToAct(h.Positions.FirstToActPreflop, true)
	if h.round.IsComplete(h.playerList()) {
		// Blinds alone put everyone but one player all-in.
		return h.progress()
	}
	return nil
}

func (h *Hand) postBlind(seat int, amount Chips) {
	p := h.players[seat]
	posted := p.commit(amount)
	h.ledger[seat] += posted
	h.events.emit(Event{Type: EventBlindPosted, Street: Preflop, Seat: seat, Name: p.Name, Amount: posted, BetTo: p.CurrentBet})
}

// dealHoleCards deals one card at a time in two passes starting with the small blind.
func (h *Hand) dealHoleCards() error {
	for pass := 0; pass < 2; pass++ {
		for _, seat := range h.Positions.ActionOrder {
			c, err := h.deck.DealOne()
			if err != nil {
				return err
			}
			p := h.players[seat]
			p.HoleCards = append(p.HoleCards, c)
		}
	}
	for _, seat := range h.Positions.ActionOrder {
		p := h.players[seat]
		h.events.emit(Event{Type: EventCardsDealt, Street: Preflop, Seat: seat, Name: p.Name, Cards: slices.Clone(p.HoleCards)})
	}
	return nil
}

// Apply validates and applies one action. A ValidationError leaves the hand
// unchanged and the same seat still to act; a ContractError means the caller is
// out of sync with the hand and should stop driving it.
func (h *Hand) Apply(a PlayerAction) error {
	if h.street.Terminal() {
		return rejectf(RuleHandComplete, "hand %s is complete", h.ID)
	}
	p, ok := h.players[a.Seat]
	if !ok {
		return rejectf(RuleInvalidSeat, "seat %d is not in the hand", a.Seat)
	}
	if !p.CanAct() {
		err := poker.Contractf("Hand.Apply", "seat %d cannot act (folded=%t, all-in=%t)", a.Seat, p.Folded, p.AllIn)
		h.logger.Error().Err(err).Msg("action from inactive seat")
		return err
	}
	if a.Seat != h.toAct {
		err := poker.Contractf("Hand.Apply", "seat %d acted out of turn, seat %d to act", a.Seat, h.toAct)
		h.logger.Error().Err(err).Msg("action out of turn")
		return err
	}

	res, err := h.round.Apply(p, a.Action, a.Amount)
	if err != nil {
		h.logger.Warn().Err(err).
			Int("seat", a.Seat).
			Stringer("action", a.Action).
			Stringer("amount", a.Amount).
			Msg("action rejected")
		return err
	}
	h.ledger[a.Seat] += res.Added

	h.events.emit(Event{
		Type:   EventActionApplied,
		Street: h.street,
		Seat:   a.Seat,
		Name:   p.Name,
		Action: res.Action,
		Amount: res.Added,
		BetTo:  res.BetTo,
	})
	h.logger.Debug().
		Int("seat", a.Seat).
		Stringer("street", h.street).
		Stringer("action", res.Action).
		Stringer("bet_to", res.BetTo).
		Bool("all_in", res.AllIn).
		Msg("action applied")

	return h.progress()
}

// progress moves the hand forward after a transition: fold-out first, then street
// completion, otherwise the turn passes clockwise.
func (h *Hand) progress() error {
	if h.liveCount() == 1 {
		return h.finish(EveryoneFolded)
	}
	if !h.round.IsComplete(h.playerList()) {
		h.toAct = h.nextToAct(h.toAct, false)
		return nil
	}
	if h.street == River {
		return h.finish(Showdown)
	}
	if h.ableCount() < 2 {
		return h.runOut()
	}
	if err := h.dealStreet(h.street + 1); err != nil {
		return err
	}
	h.toAct = FirstToActPostflop(h.Positions, h.canAct)
	return nil
}

// runOut deals every remaining street when betting is no longer possible.
func (h *Hand) runOut() error {
	for h.street < River {
		if err := h.dealStreet(h.street + 1); err != nil {
			return err
		}
	}
	return h.finish(Showdown)
}

func (h *Hand) dealStreet(street Street) error {
	for _, p := range h.players {
		p.CurrentBet = 0
	}
	n := 1
	if street == Flop {
		n = 3
	}
	if err := h.deck.Burn(); err != nil {
		return err
	}
	cards, err := h.deck.Deal(n)
	if err != nil {
		return err
	}
	h.community = append(h.community, cards...)
	h.street = street
	h.round.Reset(street)
	h.toAct = -1

	h.events.emit(Event{Type: EventStreetDealt, Street: street, Seat: -1, Cards: slices.Clone(cards)})
	h.logger.Debug().
		Stringer("street", street).
		Str("board", poker.FormatCards(h.community)).
		Msg("street dealt")
	return nil
}

func (h *Hand) finish(street Street) error {
	for _, p := range h.players {
		p.CurrentBet = 0
	}
	h.street = street
	h.toAct = -1

	var folded SeatSet
	var contenders []Contender
	for _, seat := range h.seats {
		p := h.players[seat]
		if p.Folded {
			folded = folded.Add(seat)
			continue
		}
		contenders = append(contenders, Contender{Seat: seat, HoleCards: p.HoleCards})
	}

	pots := AllocatePots(h.ledger, folded)
	if TotalPots(pots) != h.ledger.Total() {
		return poker.Contractf("Hand.finish", "pots total %s, contributions %s", TotalPots(pots), h.ledger.Total())
	}
	result, err := ComputeShowdown(contenders, h.community, pots, h.Positions.Dealer)
	if err != nil {
		return err
	}
	result.Apply(h.players)

	s := &Settlement{
		Street:   street,
		Pots:     pots,
		Showdown: result,
		Stacks:   make(map[int]Chips, len(h.players)),
		Net:      make(map[int]Chips, len(h.players)),
	}
	var before, after Chips
	for seat, p := range h.players {
		s.Stacks[seat] = p.Stack
		s.Net[seat] = p.Stack - h.start[seat]
		before += h.start[seat]
		after += p.Stack
	}
	if before != after {
		return poker.Contractf("Hand.finish", "chips not conserved: %s before, %s after", before, after)
	}
	h.settlement = s

	for _, award := range result.Awards {
		detail := ""
		if hr, ok := result.Hands[award.Seat]; ok {
			detail = hr.Description
		}
		h.events.emit(Event{Type: EventPotAwarded, Street: street, Seat: award.Seat, Name: h.players[award.Seat].Name, Amount: award.Amount, PotID: award.PotID, Detail: detail})
	}
	h.events.emit(Event{Type: EventHandEnded, Street: street, Seat: -1, Cards: slices.Clone(h.community)})
	h.logger.Debug().
		Stringer("street", street).
		Int("pots", len(pots)).
		Ints("winners", result.Winners()).
		Msg("hand complete")
	return nil
}

// nextToAct returns the first seat clockwise from seat (including it when
// inclusive) that can act and still owes a decision, or any seat that can act.
func (h *Hand) nextToAct(seat int, inclusive bool) int {
	order := h.clockwise(seat, inclusive)
	for _, s := range order {
		p := h.players[s]
		if p.CanAct() && (!h.round.Acted[s] || p.CurrentBet != h.round.LastBet) {
			return s
		}
	}
	for _, s := range order {
		if h.players[s].CanAct() {
			return s
		}
	}
	return -1
}

func (h *Hand) clockwise(seat int, inclusive bool) []int {
	from := seat
	if inclusive {
		from = seat - 1
	}
	var set SeatSet
	for _, s := range h.seats {
		set = set.Add(s)
	}
	return set.ClockwiseFrom(from)
}

func (h *Hand) canAct(seat int) bool {
	p, ok := h.players[seat]
	return ok && p.CanAct()
}

func (h *Hand) liveCount() int {
	n := 0
	for _, p := range h.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

func (h *Hand) ableCount() int {
	n := 0
	for _, p := range h.players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

func (h *Hand) playerList() []*Player {
	out := make([]*Player, 0, len(h.seats))
	for _, seat := range h.seats {
		out = append(out, h.players[seat])
	}
	return out
}

// Street returns the current phase of the hand.
func (h *Hand) Street() Street { return h.street }

// IsComplete reports whether the hand has reached a terminal phase.
func (h *Hand) IsComplete() bool { return h.street.Terminal() }

// ToAct returns the seat whose decision is pending, or -1 when none is.
func (h *Hand) ToAct() int { return h.toAct }

// Community returns a copy of the board.
func (h *Hand) Community() []poker.Card { return slices.Clone(h.community) }

// Pot returns all chips committed so far.
func (h *Hand) Pot() Chips { return h.ledger.Total() }

// Ledger returns a copy of each seat's contribution to the hand.
func (h *Hand) Ledger() Ledger { return maps.Clone(h.ledger) }

// Round returns a copy of the current betting round.
func (h *Hand) Round() BettingRound { return *h.round }

// Seats returns the seats dealt into the hand, ascending.
func (h *Hand) Seats() []int { return slices.Clone(h.seats) }

// Player returns a copy of the player in seat.
func (h *Hand) Player(seat int) (Player, bool) {
	p, ok := h.players[seat]
	if !ok {
		return Player{}, false
	}
	cp := *p
	cp.HoleCards = slices.Clone(p.HoleCards)
	return cp, true
}

// ValidActions returns the legal actions for the seat to act.
func (h *Hand) ValidActions() []ValidAction {
	p, ok := h.players[h.toAct]
	if !ok {
		return nil
	}
	return h.round.ValidActions(p)
}

// Settlement returns the outcome once the hand is complete.
func (h *Hand) Settlement() (*Settlement, bool) {
	return h.settlement, h.settlement != nil
}
