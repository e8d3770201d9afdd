package game

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// Rule names the table rule a rejected action or setup violated.
type Rule int

const (
	RuleMinRaise Rule = iota + 1
	RuleInsufficientChips
	RuleCannotCheck
	RuleInvalidSeat
	RuleInvalidPlayerCount
	RuleInvalidAmount
	RuleHandComplete
	RuleRaiseNotReopened
)

func (r Rule) String() string {
	switch r {
	case RuleMinRaise:
		return "min_raise"
	case RuleInsufficientChips:
		return "insufficient_chips"
	case RuleCannotCheck:
		return "cannot_check"
	case RuleInvalidSeat:
		return "invalid_seat"
	case RuleInvalidPlayerCount:
		return "invalid_player_count"
	case RuleInvalidAmount:
		return "invalid_amount"
	case RuleHandComplete:
		return "hand_complete"
	case RuleRaiseNotReopened:
		return "raise_not_reopened"
	default:
		return "unknown"
	}
}

// ValidationError rejects a user action. The state it was applied to is unchanged.
type ValidationError struct {
	Rule   Rule
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func rejectf(rule Rule, format string, args ...any) error {
	return &ValidationError{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

// IsRule reports whether err is a ValidationError for rule.
func IsRule(err error, rule Rule) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Rule == rule
}
