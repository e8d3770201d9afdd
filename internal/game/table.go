package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokerengine/internal/handid"
)

// Table is a single table of up to ten seats. It carries stacks and the dealer
// button from one hand to the next; each Hand it starts is independent.
type Table struct {
	SmallBlind Chips
	BigBlind   Chips

	seats     [MaxSeats]*SeatedPlayer
	dealer    int // -1 before the first hand
	handCount int
	current   *Hand

	rng    *rand.Rand
	logger zerolog.Logger
	log    EventLog
	clock  quartz.Clock
	newID  func() string
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithTableLogger sets the logger handed to every hand.
func WithTableLogger(logger zerolog.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// WithTableEventLog records every hand's events to log.
func WithTableEventLog(log EventLog) TableOption {
	return func(t *Table) { t.log = log }
}

// WithTableClock sets the clock used for event timestamps.
func WithTableClock(clock quartz.Clock) TableOption {
	return func(t *Table) { t.clock = clock }
}

// WithIDGenerator sets how hand identifiers are generated.
func WithIDGenerator(gen func() string) TableOption {
	return func(t *Table) { t.newID = gen }
}

// NewTable creates an empty table. The RNG shuffles every hand's deck.
func NewTable(rng *rand.Rand, smallBlind, bigBlind Chips, opts ...TableOption) (*Table, error) {
	if rng == nil {
		return nil, errors.New("rng is required")
	}
	if smallBlind <= 0 || bigBlind <= 0 || smallBlind > bigBlind {
		return nil, rejectf(RuleInvalidAmount, "invalid blinds %s/%s", smallBlind, bigBlind)
	}
	t := &Table{
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		dealer:     -1,
		rng:        rng,
		logger:     zerolog.Nop(),
		log:        discardLog{},
		clock:      quartz.NewReal(),
		newID:      handid.New,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With().Str("component", "table").Logger()
	return t, nil
}

// Sit places a player in an empty seat.
func (t *Table) Sit(seat int, name string, stack Chips) error {
	if !ValidSeat(seat) {
		return rejectf(RuleInvalidSeat, "seat %d is out of range", seat)
	}
	if t.seats[seat] != nil {
		return rejectf(RuleInvalidSeat, "seat %d is taken by %s", seat, t.seats[seat].Name)
	}
	if stack < 0 {
		return rejectf(RuleInvalidAmount, "negative stack %s", stack)
	}
	t.seats[seat] = &SeatedPlayer{Seat: seat, Name: name, Stack: stack}
	t.logger.Debug().Int("seat", seat).Str("player", name).Stringer("stack", stack).Msg("player seated")
	return nil
}

// Leave removes the player from seat between hands.
func (t *Table) Leave(seat int) error {
	if !ValidSeat(seat) || t.seats[seat] == nil {
		return rejectf(RuleInvalidSeat, "seat %d is empty", seat)
	}
	if t.current != nil {
		return rejectf(RuleInvalidSeat, "cannot leave seat %d before hand %s is ended", seat, t.current.ID)
	}
	t.seats[seat] = nil
	return nil
}

// Players returns the seated players in seat order.
func (t *Table) Players() []SeatedPlayer {
	var out []SeatedPlayer
	for _, sp := range t.seats {
		if sp != nil {
			out = append(out, *sp)
		}
	}
	return out
}

// Occupied returns the set of seats with a player.
func (t *Table) Occupied() SeatSet {
	var s SeatSet
	for seat, sp := range t.seats {
		if sp != nil {
			s = s.Add(seat)
		}
	}
	return s
}

// Funded returns the seats whose players can post chips.
func (t *Table) Funded() SeatSet {
	var s SeatSet
	for seat, sp := range t.seats {
		if sp != nil && sp.Stack > 0 {
			s = s.Add(seat)
		}
	}
	return s
}

// Dealer returns the button seat of the last hand started, or -1.
func (t *Table) Dealer() int { return t.dealer }

// HandCount returns how many hands have been started.
func (t *Table) HandCount() int { return t.handCount }

// StartHand advances the button and deals the next hand. Players without chips
// sit out. The previous hand must have been passed to EndHand.
func (t *Table) StartHand(opts ...HandOption) (*Hand, error) {
	if t.current != nil {
		if !t.current.IsComplete() {
			return nil, rejectf(RuleHandComplete, "hand %s is still in progress", t.current.ID)
		}
		return nil, rejectf(RuleHandComplete, "hand %s has not been ended", t.current.ID)
	}
	funded := t.Funded()
	if funded.Len() < 2 {
		return nil, rejectf(RuleInvalidPlayerCount, "need at least 2 players with chips, have %d", funded.Len())
	}
	dealer, err := NextDealer(funded, t.dealer)
	if err != nil {
		return nil, err
	}

	base := []HandOption{
		WithLogger(t.logger),
		WithEventLog(t.log),
		WithClock(t.clock),
		WithHandID(t.newID()),
	}
	h, err := NewHand(t.rng, t.Players(), dealer, t.SmallBlind, t.BigBlind, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("start hand %d: %w", t.handCount+1, err)
	}
	t.dealer = dealer
	t.handCount++
	t.current = h
	return h, nil
}

// EndHand writes the settled stacks of the current hand back to the seats.
func (t *Table) EndHand(h *Hand) error {
	if h != t.current {
		return rejectf(RuleHandComplete, "hand %s is not the table's current hand", h.ID)
	}
	s, ok := h.Settlement()
	if !ok {
		return rejectf(RuleHandComplete, "hand %s has not finished", h.ID)
	}
	for seat, stack := range s.Stacks {
		if sp := t.seats[seat]; sp != nil {
			sp.Stack = stack
		}
	}
	t.current = nil
	t.logger.Debug().Str("hand_id", h.ID).Stringer("street", s.Street).Msg("hand settled")
	return nil
}
