package game

import (
	"slices"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/pokerengine/poker"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for already-validated transitions of a hand.
const (
	EventHandStarted   EventType = "hand_started"
	EventBlindPosted   EventType = "blind_posted"
	EventCardsDealt    EventType = "cards_dealt"
	EventActionApplied EventType = "action_applied"
	EventStreetDealt   EventType = "street_dealt"
	EventPotAwarded    EventType = "pot_awarded"
	EventHandEnded     EventType = "hand_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is one entry in a hand's audit trail. Fields that do not apply to the
// event type are zero; Seat is -1 for table-wide events.
type Event struct {
	Seq    int
	Type   EventType
	HandID string
	Time   time.Time
	Street Street
	Seat   int
	Name   string
	Action Action
	Amount Chips // Blind posted, chips added by an action, or pot share
	BetTo  Chips
	Cards  []poker.Card
	PotID  int
	Detail string
}

// EventLog receives events as they happen. The engine only appends; it never
// reads the log back.
type EventLog interface {
	Append(Event)
}

// MemoryLog is an EventLog kept in memory. It is safe for concurrent use.
type MemoryLog struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryLog creates an empty log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

// Events returns a copy of every event appended so far.
func (l *MemoryLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

// ForHand returns the events of one hand in order.
func (l *MemoryLog) ForHand(handID string) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Event
	for _, e := range l.events {
		if e.HandID == handID {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops all events.
func (l *MemoryLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

type discardLog struct{}

func (discardLog) Append(Event) {}

// recorder stamps events for one hand before passing them on.
type recorder struct {
	log    EventLog
	clock  quartz.Clock
	handID string
	seq    int
}

func (r *recorder) emit(e Event) {
	r.seq++
	e.Seq = r.seq
	e.HandID = r.handID
	e.Time = r.clock.Now()
	r.log.Append(e)
}
