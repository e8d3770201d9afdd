package game

import (
	"errors"
	"math/bits"
	"strconv"
	"strings"
)

// MaxSeats is the number of seats at a table, numbered 0-9 clockwise.
const MaxSeats = 10

// ErrEmptyTable is returned when a seat search runs on a table with nobody seated.
var ErrEmptyTable = errors.New("no occupied seats")

// SeatSet is a set of seat numbers.
type SeatSet uint16

// NewSeatSet creates a set from seat numbers. Out of range seats are ignored.
func NewSeatSet(seats ...int) SeatSet {
	var s SeatSet
	for _, seat := range seats {
		s = s.Add(seat)
	}
	return s
}

// ValidSeat reports whether seat is on the table.
func ValidSeat(seat int) bool {
	return seat >= 0 && seat < MaxSeats
}

func (s SeatSet) Add(seat int) SeatSet {
	if !ValidSeat(seat) {
		return s
	}
	return s | 1<<seat
}

func (s SeatSet) Remove(seat int) SeatSet {
	if !ValidSeat(seat) {
		return s
	}
	return s &^ (1 << seat)
}

func (s SeatSet) Has(seat int) bool {
	return ValidSeat(seat) && s&(1<<seat) != 0
}

func (s SeatSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Seats returns the members in ascending order.
func (s SeatSet) Seats() []int {
	seats := make([]int, 0, s.Len())
	for rest := uint16(s); rest != 0; rest &= rest - 1 {
		seats = append(seats, bits.TrailingZeros16(rest))
	}
	return seats
}

// Lowest returns the lowest occupied seat, or -1 for an empty set.
func (s SeatSet) Lowest() int {
	if s == 0 {
		return -1
	}
	return bits.TrailingZeros16(uint16(s))
}

// NextOccupied returns the nearest member strictly clockwise from seat, wrapping
// past seat 9. When seat is the only member it is returned.
func (s SeatSet) NextOccupied(seat int) (int, error) {
	if s == 0 {
		return -1, ErrEmptyTable
	}
	start := ((seat % MaxSeats) + MaxSeats) % MaxSeats
	for i := 1; i <= MaxSeats; i++ {
		next := (start + i) % MaxSeats
		if s.Has(next) {
			return next, nil
		}
	}
	return -1, ErrEmptyTable
}

// ClockwiseFrom lists members starting at the first seat strictly after seat.
func (s SeatSet) ClockwiseFrom(seat int) []int {
	out := make([]int, 0, s.Len())
	start := ((seat % MaxSeats) + MaxSeats) % MaxSeats
	for i := 1; i <= MaxSeats; i++ {
		next := (start + i) % MaxSeats
		if s.Has(next) {
			out = append(out, next)
		}
	}
	return out
}

func (s SeatSet) String() string {
	parts := make([]string, 0, s.Len())
	for _, seat := range s.Seats() {
		parts = append(parts, strconv.Itoa(seat))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// seatDistance is the clockwise distance from a to b, in 0..MaxSeats-1.
func seatDistance(a, b int) int {
	return ((b-a)%MaxSeats + MaxSeats) % MaxSeats
}
