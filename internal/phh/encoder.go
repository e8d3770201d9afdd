package phh

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a hand history written by Encode.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	return &hand, nil
}

// formatAction converts an applied action to PHH notation. streetHigh is the
// highest bet on the street before the action; an all-in that does not exceed it
// is a call.
func formatAction(player int, e game.Event, streetHigh game.Chips) string {
	p := fmt.Sprintf("p%d", player)
	switch e.Action {
	case game.Fold:
		return p + " f"
	case game.Check, game.Call:
		return p + " cc"
	case game.Bet, game.Raise, game.AllIn:
		if e.BetTo <= streetHigh {
			return p + " cc"
		}
		return fmt.Sprintf("%s cbr %s", p, e.BetTo)
	default:
		return fmt.Sprintf("# %s %s %s", p, e.Action, e.BetTo)
	}
}

// joinCards renders cards without separators, e.g. "AhKh".
func joinCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}
