package poker

import (
	"math/bits"
)

// EvaluateMask ranks the best five-card hand in a bitset of five to seven cards
// without enumerating subsets. It returns 0 for any other card count.
func EvaluateMask(hand Hand) HandRank {
	if n := hand.CountCards(); n < 5 || n > 7 {
		return 0
	}
	return evaluateMaskUnchecked(hand)
}

// EvaluateMaskBatch evaluates multiple hands and writes results into out.
// If out is nil or smaller than hands, a new slice is allocated and returned.
// Each hand is assumed to contain five to seven cards; behavior is undefined otherwise.
func EvaluateMaskBatch(hands []Hand, out []HandRank) []HandRank {
	if len(out) < len(hands) {
		out = make([]HandRank, len(hands))
	} else {
		out = out[:len(hands)]
	}

	for i, hand := range hands {
		out[i] = evaluateMaskUnchecked(hand)
	}

	return out
}

func evaluateMaskUnchecked(hand Hand) HandRank {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := Clubs; suit <= Spades; suit++ {
		mask := hand.GetSuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}

	ranks, flush := bestFiveFromMasks(suitMasks, rankMask)
	return rankTable().lookup(ranks, flush)
}

// bestFiveFromMasks picks the five ranks of the strongest hand. Only the rank multiset
// matters to the lookup so the order of the result is not significant.
func bestFiveFromMasks(suitMasks [4]uint16, rankMask uint16) ([5]Rank, bool) {
	// At most one suit can hold five of seven cards.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) >= 5 {
			if high := straightHighMask(suitMask); high > 0 {
				return straightRanks(high), true
			}
			return topRanks(suitMask, 5), true
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highestBit(quadsMask); quad >= 0 {
		q := bitRank(quad)
		k := bitRank(highestBit(rankMask &^ (1 << quad)))
		return [5]Rank{q, q, q, q, k}, false
	}

	if trip := highestBit(tripsMask); trip >= 0 {
		pairCandidates := pairsMask | (tripsMask &^ (1 << trip))
		if pair := highestBit(pairCandidates); pair >= 0 {
			t, p := bitRank(trip), bitRank(pair)
			return [5]Rank{t, t, t, p, p}, false
		}
	}

	if high := straightHighMask(rankMask); high > 0 {
		return straightRanks(high), false
	}

	if trip := highestBit(tripsMask); trip >= 0 {
		t := bitRank(trip)
		k := topRanks(rankMask&^(1<<trip), 2)
		return [5]Rank{t, t, t, k[0], k[1]}, false
	}

	if hiPair := highestBit(pairsMask); hiPair >= 0 {
		hi := bitRank(hiPair)
		if loPair := highestBit(pairsMask &^ (1 << hiPair)); loPair >= 0 {
			lo := bitRank(loPair)
			k := bitRank(highestBit(rankMask &^ (1 << hiPair) &^ (1 << loPair)))
			return [5]Rank{hi, hi, lo, lo, k}, false
		}
		k := topRanks(rankMask&^(1<<hiPair), 3)
		return [5]Rank{hi, hi, k[0], k[1], k[2]}, false
	}

	return topRanks(rankMask, 5), false
}

// highestBit returns the highest set bit in the mask (or -1 when empty).
func highestBit(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

func bitRank(bit int) Rank {
	return Two + Rank(bit)
}

// topRanks returns the n highest ranks present in the mask, highest first.
func topRanks(mask uint16, n int) [5]Rank {
	var out [5]Rank
	for i := 0; i < n; i++ {
		top := highestBit(mask)
		out[i] = bitRank(top)
		mask &^= 1 << top
	}
	return out
}

func straightRanks(high Rank) [5]Rank {
	if high == Five {
		return [5]Rank{Five, Four, Three, Two, Ace}
	}
	return [5]Rank{high, high - 1, high - 2, high - 3, high - 4}
}

// straightHighMask returns the high card of the best straight present in the mask (0 if none).
// The mask uses rank bits 0-12 for deuce through ace.
func straightHighMask(mask uint16) Rank {
	const wheelMask = 0x100F // Ace + 2-3-4-5
	mask &= 0x1FFF

	// Bitwise cascade identifies consecutive sequences in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return bitRank(highestBit(seq) + 4)
	}
	if mask&wheelMask == wheelMask {
		return Five
	}
	return 0
}
