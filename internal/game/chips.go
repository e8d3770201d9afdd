package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Chips is an exact chip amount in hundredths of a chip, so fractional blinds such
// as 0.5/1 never accumulate rounding error.
type Chips int64

// ChipScale is the number of Chips units in one whole chip.
const ChipScale = 100

// WholeChips converts a whole number of chips.
func WholeChips(n int64) Chips {
	return Chips(n * ChipScale)
}

// ParseChips parses a decimal string such as "0.5" or "100". Amounts must be
// non-negative and have at most two decimal places.
func ParseChips(s string) (Chips, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse chips %q: %w", s, err)
	}
	return ChipsFromDecimal(d)
}

// ChipsFromDecimal converts a decimal amount into Chips.
func ChipsFromDecimal(d decimal.Decimal) (Chips, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("negative chip amount %s", d)
	}
	scaled := d.Shift(2)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("chip amount %s has more than two decimal places", d)
	}
	return Chips(scaled.IntPart()), nil
}

// Decimal returns the amount as a decimal number of chips.
func (c Chips) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Float64 returns the amount in chips for statistics and export.
func (c Chips) Float64() float64 {
	return float64(c) / ChipScale
}

// String formats the amount without trailing zeros ("0.5", "12").
func (c Chips) String() string {
	return c.Decimal().String()
}

// MarshalText implements encoding.TextMarshaler.
func (c Chips) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Chips) UnmarshalText(b []byte) error {
	v, err := ParseChips(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
