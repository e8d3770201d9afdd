package game

import (
	"fmt"
	"strings"

	"github.com/lox/pokerengine/poker"
)

// Street represents the phase of a hand. Showdown and EveryoneFolded are terminal.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	EveryoneFolded
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown", "everyone_folded"}[s]
}

// Terminal reports whether the hand is over.
func (s Street) Terminal() bool {
	return s == Showdown || s == EveryoneFolded
}

// Action represents a player action
type Action int

const (
	NoAction Action = iota
	Fold
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"none", "fold", "check", "call", "bet", "raise", "allin"}[a]
}

// ParseAction parses the lower-case action name.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(s) {
	case "fold", "f":
		return Fold, nil
	case "check", "x", "k":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "bet", "b":
		return Bet, nil
	case "raise", "r":
		return Raise, nil
	case "allin", "all-in", "a":
		return AllIn, nil
	}
	return NoAction, fmt.Errorf("unknown action %q", s)
}

// ValidAction represents an action that a player can legally take
type ValidAction struct {
	Action Action
	Min    Chips // Call: amount added. Bet/Raise/AllIn: minimum total bet
	Max    Chips // Bet/Raise/AllIn: maximum total bet (all-in)
}

// ActionResult describes an accepted action.
type ActionResult struct {
	Action   Action // As recorded; a call of zero is a check, a bet facing a bet is a raise
	Added    Chips  // Moved from stack into the pot
	BetTo    Chips  // Player's street total afterwards
	Reopened bool   // Cleared the other seats' acted flags
	AllIn    bool
}

// BettingRound encapsulates the state for a betting round
type BettingRound struct {
	Street   Street
	LastBet  Chips // Highest total bet on this street
	MinRaise Chips // Increment of the last bet or raise, the big blind to start
	BigBlind Chips
	// Acted marks seats that have acted since the action was last reopened.
	Acted [MaxSeats]bool
	// FullRaiseRule makes an all-in raise smaller than MinRaise update only
	// LastBet, leaving MinRaise and the action as they were. Off by default.
	FullRaiseRule bool
}

// NewBettingRound creates a new betting round
func NewBettingRound(street Street, bigBlind Chips) *BettingRound {
	br := &BettingRound{BigBlind: bigBlind}
	br.Reset(street)
	return br
}

// Reset starts a new street.
func (br *BettingRound) Reset(street Street) {
	br.Street = street
	br.LastBet = 0
	br.MinRaise = br.BigBlind
	br.Acted = [MaxSeats]bool{}
}

// ToCall returns the chips p needs to add to match the current bet.
func (br *BettingRound) ToCall(p *Player) Chips {
	return max(0, br.LastBet-p.CurrentBet)
}

// CanRaise reports whether p may put in a raise: the betting must be open to the
// seat and the stack must go beyond a call.
func (br *BettingRound) CanRaise(p *Player) bool {
	return p.CanAct() && !br.Acted[p.Seat] && p.Stack+p.CurrentBet > br.LastBet
}

// ValidActions returns the legal actions for p with raise-to bounds.
func (br *BettingRound) ValidActions(p *Player) []ValidAction {
	if !p.CanAct() {
		return nil
	}
	toCall := br.ToCall(p)
	actions := []ValidAction{{Action: Fold}}
	if toCall == 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else {
		call := min(toCall, p.Stack)
		actions = append(actions, ValidAction{Action: Call, Min: call, Max: call})
	}

	if br.CanRaise(p) {
		total := p.Stack + p.CurrentBet
		minTo := br.LastBet + br.MinRaise
		if total > minTo {
			tag := Raise
			if br.LastBet == 0 {
				tag = Bet
			}
			actions = append(actions, ValidAction{Action: tag, Min: minTo, Max: total})
		}
		actions = append(actions, ValidAction{Action: AllIn, Min: total, Max: total})
	}
	return actions
}

// Apply validates and applies one action for p. amount is the total bet for
// Bet and Raise and ignored otherwise. On error neither p nor the round changes.
func (br *BettingRound) Apply(p *Player, action Action, amount Chips) (ActionResult, error) {
	if !p.CanAct() {
		return ActionResult{}, poker.Contractf("BettingRound.Apply",
			"seat %d cannot act (folded=%t, all-in=%t)", p.Seat, p.Folded, p.AllIn)
	}

	var res ActionResult
	toCall := br.ToCall(p)
	switch action {
	case Fold:
		p.Folded = true
		res.Action = Fold

	case Check:
		if toCall > 0 {
			return ActionResult{}, rejectf(RuleCannotCheck, "seat %d faces %s to call", p.Seat, toCall)
		}
		res.Action = Check

	case Call:
		if toCall == 0 {
			res.Action = Check
			break
		}
		res.Action = Call
		res.Added = p.commit(toCall)

	case Bet, Raise:
		var err error
		if res, err = br.raiseTo(p, amount); err != nil {
			return ActionResult{}, err
		}

	case AllIn:
		var err error
		if res, err = br.allIn(p); err != nil {
			return ActionResult{}, err
		}

	default:
		return ActionResult{}, poker.Contractf("BettingRound.Apply", "unknown action %d", action)
	}

	br.Acted[p.Seat] = true
	p.LastAction = res.Action
	res.BetTo = p.CurrentBet
	res.AllIn = p.AllIn
	return res, nil
}

func (br *BettingRound) raiseTo(p *Player, to Chips) (ActionResult, error) {
	total := p.Stack + p.CurrentBet
	switch {
	case to <= 0:
		return ActionResult{}, rejectf(RuleInvalidAmount, "bet amount must be positive, got %s", to)
	case to > total:
		return ActionResult{}, rejectf(RuleInsufficientChips, "seat %d cannot bet %s with %s behind", p.Seat, to, total)
	case to == total:
		return br.allIn(p)
	case !br.CanRaise(p):
		return ActionResult{}, rejectf(RuleRaiseNotReopened, "seat %d cannot raise: action was not reopened", p.Seat)
	case to < br.LastBet+br.MinRaise:
		return ActionResult{}, rejectf(RuleMinRaise, "raise to %s is below minimum %s", to, br.LastBet+br.MinRaise)
	}

	tag := Raise
	if br.LastBet == 0 {
		tag = Bet
	}
	added := p.commit(to - p.CurrentBet)
	br.MinRaise = to - br.LastBet
	br.LastBet = to
	br.reopen(p.Seat)
	return ActionResult{Action: tag, Added: added, Reopened: true}, nil
}

func (br *BettingRound) allIn(p *Player) (ActionResult, error) {
	total := p.Stack + p.CurrentBet
	res := ActionResult{Action: AllIn}
	if total > br.LastBet {
		if br.Acted[p.Seat] {
			return ActionResult{}, rejectf(RuleRaiseNotReopened, "seat %d cannot raise all-in: action was not reopened", p.Seat)
		}
		// An all-in above the current bet is a raise. Below it, it is a partial call.
		increment := total - br.LastBet
		if increment >= br.MinRaise || !br.FullRaiseRule {
			br.MinRaise = increment
			br.reopen(p.Seat)
			res.Reopened = true
		}
		br.LastBet = total
	}
	res.Added = p.commit(p.Stack)
	return res, nil
}

// reopen clears the acted flags of every seat but the raiser.
func (br *BettingRound) reopen(raiser int) {
	for seat := range br.Acted {
		br.Acted[seat] = seat == raiser
	}
}

// IsComplete reports whether the street's betting is finished for the seated players.
func (br *BettingRound) IsComplete(players []*Player) bool {
	var able []*Player
	var highest Chips
	for _, p := range players {
		if p.Folded {
			continue
		}
		highest = max(highest, p.CurrentBet)
		if p.CanAct() {
			able = append(able, p)
		}
	}

	switch len(able) {
	case 0:
		return true
	case 1:
		// Nobody is left to respond, so only a pending call remains.
		return able[0].CurrentBet >= highest
	}

	for _, p := range able {
		if !br.Acted[p.Seat] || p.CurrentBet != br.LastBet {
			return false
		}
	}
	return true
}
