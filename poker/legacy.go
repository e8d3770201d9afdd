package poker

import "sync"

// LegacyRank maps a hand onto the older base-15 scheme: the distinguishing ranks of
// the hand are read as a base-15 number and rescaled linearly into the category's
// band. It preserves category order but can merge hands that differ only in deep
// kickers, so it is kept for comparing against stored results and never used to
// decide a pot.
func LegacyRank(hr HandRank) HandRank {
	if !hr.Valid() {
		return 0
	}
	c := rankTable().classes[hr-1]
	if c.typ == RoyalFlush {
		return MaxHandRank
	}
	span := legacySpans()[c.typ]
	lo, hi := c.typ.Bounds()
	if c.typ == StraightFlush {
		hi-- // the top of the band belongs to the royal flush
	}
	v := legacyValue(c)
	if span.max == span.min {
		return lo
	}
	scaled := uint64(v-span.min) * uint64(hi-lo) / uint64(span.max-span.min)
	return lo + HandRank(scaled)
}

type legacySpan struct{ min, max int }

var legacySpans = sync.OnceValue(func() [RoyalFlush + 1]legacySpan {
	var spans [RoyalFlush + 1]legacySpan
	for i := range spans {
		spans[i] = legacySpan{min: -1}
	}
	for _, c := range rankTable().classes {
		v := legacyValue(c)
		s := &spans[c.typ]
		if s.min < 0 || v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	return spans
})

// legacyValue reads the distinct ranks of a class, most significant first, as base 15.
func legacyValue(c handClass) int {
	v := 0
	prev := Rank(0)
	for _, r := range c.ranks {
		if r == prev {
			continue
		}
		if (c.typ == Straight || c.typ == StraightFlush) && prev != 0 {
			break
		}
		v = v*15 + int(r)
		prev = r
	}
	return v
}
