package poker

import (
	"errors"
	"fmt"
)

// ErrContract is the sentinel matched by every ContractError via errors.Is.
var ErrContract = errors.New("contract violation")

// ContractError reports that a caller broke an input contract: the wrong number of
// cards, duplicate cards, or acting out of turn. These are programmer errors and the
// game they occur in should not continue.
type ContractError struct {
	Op     string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: contract violation: %s", e.Op, e.Reason)
}

func (e *ContractError) Unwrap() error { return ErrContract }

// Contractf builds a ContractError for op.
func Contractf(op, format string, args ...any) error {
	return &ContractError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
