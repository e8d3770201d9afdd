package poker

import (
	"fmt"
	"sync"

	chd "github.com/opencoff/go-chd"
)

// HandRank is the absolute strength of a five-card hand, 1 (7-5-4-3-2 offsuit)
// through 7462 (royal flush). Higher values are stronger and equal values tie.
type HandRank uint16

const (
	MinHandRank HandRank = 1
	MaxHandRank HandRank = 7462
)

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// handTypeUpperBounds holds the inclusive top rank of each category.
var handTypeUpperBounds = [...]HandRank{1277, 4137, 4995, 5853, 5863, 7140, 7296, 7452, 7461, 7462}

var handTypeNames = [...]string{
	"High Card", "One Pair", "Two Pair", "Three of a Kind", "Straight",
	"Flush", "Full House", "Four of a Kind", "Straight Flush", "Royal Flush",
}

func (t HandType) String() string {
	if int(t) >= len(handTypeNames) {
		return "Unknown"
	}
	return handTypeNames[t]
}

// Bounds returns the inclusive rank band a category occupies.
func (t HandType) Bounds() (lo, hi HandRank) {
	hi = handTypeUpperBounds[t]
	if t == HighCard {
		return MinHandRank, hi
	}
	return handTypeUpperBounds[t-1] + 1, hi
}

// Type returns the category of the rank.
func (hr HandRank) Type() HandType {
	for i, hi := range handTypeUpperBounds {
		if hr <= hi {
			return HandType(i)
		}
	}
	return RoyalFlush
}

// Valid reports whether the rank is inside 1..7462.
func (hr HandRank) Valid() bool {
	return hr >= MinHandRank && hr <= MaxHandRank
}

// String returns a human-readable description such as "Full House, Kings over Tens".
func (hr HandRank) String() string {
	if !hr.Valid() {
		return "Invalid Hand"
	}
	return rankTable().classes[hr-1].describe()
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

// handClass is one equivalence class of five-card hands. ranks lists the five card
// ranks grouped by multiplicity then by rank, e.g. K K K T T or 5 4 3 2 A for the wheel.
type handClass struct {
	typ   HandType
	ranks [5]Rank
}

func (c handClass) describe() string {
	r := c.ranks
	switch c.typ {
	case HighCard:
		return fmt.Sprintf("High Card, %s", r[0].Name())
	case OnePair:
		return fmt.Sprintf("Pair of %s", r[0].Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", r[0].Plural(), r[2].Plural())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", r[0].Plural())
	case Straight:
		return fmt.Sprintf("Straight, %s High", r[0].Name())
	case Flush:
		return fmt.Sprintf("Flush, %s High", r[0].Name())
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", r[0].Plural(), r[3].Plural())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", r[0].Plural())
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s High", r[0].Name())
	default:
		return "Royal Flush"
	}
}

// rankPrimes maps Two..Ace to the first thirteen primes so that the product of five
// ranks identifies the rank multiset regardless of order.
var rankPrimes = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

const flushKeyBit = uint64(1) << 32

func classKey(ranks [5]Rank, flush bool) uint64 {
	key := uint64(1)
	for _, r := range ranks {
		key *= rankPrimes[r-Two]
	}
	if flush {
		key |= flushKeyBit
	}
	return key
}

type handRankTable struct {
	mph     *chd.Chd
	keys    []uint64   // indexed by hash slot
	ranks   []HandRank // indexed by hash slot
	classes []handClass
}

var (
	rankTableOnce sync.Once
	rankTableInst *handRankTable
)

func rankTable() *handRankTable {
	rankTableOnce.Do(func() {
		t, err := buildRankTable()
		if err != nil {
			panic(fmt.Sprintf("poker: building rank table: %v", err))
		}
		rankTableInst = t
	})
	return rankTableInst
}

func buildRankTable() (*handRankTable, error) {
	classes := enumerateClasses()
	if len(classes) != int(MaxHandRank) {
		return nil, fmt.Errorf("enumerated %d hand classes, want %d", len(classes), MaxHandRank)
	}

	keys := make([]uint64, len(classes))
	seen := make(map[uint64]struct{}, len(classes))
	for i, c := range classes {
		k := classKey(c.ranks, c.typ == Flush || c.typ == StraightFlush || c.typ == RoyalFlush)
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("duplicate class key %d for %s", k, c.describe())
		}
		seen[k] = struct{}{}
		keys[i] = k
	}

	var (
		mph *chd.Chd
		err error
	)
	for _, load := range []float64{0.9, 0.8, 0.7, 0.5} {
		mph, err = freezeKeys(keys, load)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	t := &handRankTable{
		mph:     mph,
		keys:    make([]uint64, len(keys)),
		ranks:   make([]HandRank, len(keys)),
		classes: classes,
	}
	for i, k := range keys {
		slot := mph.Find(k)
		if slot >= uint64(len(keys)) || t.keys[slot] != 0 {
			return nil, fmt.Errorf("perfect hash collision for key %d", k)
		}
		t.keys[slot] = k
		t.ranks[slot] = HandRank(i + 1)
	}
	return t, nil
}

func freezeKeys(keys []uint64, load float64) (*chd.Chd, error) {
	b, err := chd.New()
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		b.Add(k)
	}
	return b.Freeze(load)
}

func (t *handRankTable) lookup(ranks [5]Rank, flush bool) HandRank {
	key := classKey(ranks, flush)
	slot := t.mph.Find(key)
	if slot >= uint64(len(t.keys)) || t.keys[slot] != key {
		return 0
	}
	return t.ranks[slot]
}

// enumerateClasses lists all 7462 classes weakest first. Within a category the
// nested loops run ascending on the most significant rank, so the slice index is
// the rank order.
func enumerateClasses() []handClass {
	classes := make([]handClass, 0, MaxHandRank)
	add := func(t HandType, r ...Rank) {
		c := handClass{typ: t}
		copy(c.ranks[:], r)
		classes = append(classes, c)
	}

	var distinct [][5]Rank
	for a := Two; a <= Ace; a++ {
		for b := Two; b < a; b++ {
			for c := Two; c < b; c++ {
				for d := Two; d < c; d++ {
					for e := Two; e < d; e++ {
						if a-e == 4 || (a == Ace && b == Five) {
							continue
						}
						distinct = append(distinct, [5]Rank{a, b, c, d, e})
					}
				}
			}
		}
	}

	for _, r := range distinct {
		add(HighCard, r[:]...)
	}
	for p := Two; p <= Ace; p++ {
		for k1 := Two; k1 <= Ace; k1++ {
			for k2 := Two; k2 < k1; k2++ {
				for k3 := Two; k3 < k2; k3++ {
					if k1 == p || k2 == p || k3 == p {
						continue
					}
					add(OnePair, p, p, k1, k2, k3)
				}
			}
		}
	}
	for hi := Two; hi <= Ace; hi++ {
		for lo := Two; lo < hi; lo++ {
			for k := Two; k <= Ace; k++ {
				if k == hi || k == lo {
					continue
				}
				add(TwoPair, hi, hi, lo, lo, k)
			}
		}
	}
	for t := Two; t <= Ace; t++ {
		for k1 := Two; k1 <= Ace; k1++ {
			for k2 := Two; k2 < k1; k2++ {
				if k1 == t || k2 == t {
					continue
				}
				add(ThreeOfAKind, t, t, t, k1, k2)
			}
		}
	}
	for _, s := range straightRuns() {
		add(Straight, s[:]...)
	}
	for _, r := range distinct {
		add(Flush, r[:]...)
	}
	for t := Two; t <= Ace; t++ {
		for p := Two; p <= Ace; p++ {
			if p != t {
				add(FullHouse, t, t, t, p, p)
			}
		}
	}
	for q := Two; q <= Ace; q++ {
		for k := Two; k <= Ace; k++ {
			if k != q {
				add(FourOfAKind, q, q, q, q, k)
			}
		}
	}
	runs := straightRuns()
	for _, s := range runs[:len(runs)-1] {
		add(StraightFlush, s[:]...)
	}
	add(RoyalFlush, runs[len(runs)-1][:]...)

	return classes
}

// straightRuns returns the ten straights from the wheel up to ace high.
func straightRuns() [][5]Rank {
	runs := [][5]Rank{{Five, Four, Three, Two, Ace}}
	for high := Six; high <= Ace; high++ {
		runs = append(runs, [5]Rank{high, high - 1, high - 2, high - 3, high - 4})
	}
	return runs
}
