package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatePots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ledger Ledger
		folded SeatSet
		want   []Pot
	}{
		{
			name:   "single pot",
			ledger: Ledger{0: 100, 1: 100, 2: 100},
			want: []Pot{
				{ID: 1, Amount: 300, Eligible: NewSeatSet(0, 1, 2), Cap: 100, IsMain: true},
			},
		},
		{
			name:   "short all-in creates a side pot",
			ledger: Ledger{0: 100, 1: 50, 2: 100},
			want: []Pot{
				{ID: 1, Amount: 150, Eligible: NewSeatSet(0, 1, 2), Cap: 50, IsMain: true},
				{ID: 2, Amount: 100, Eligible: NewSeatSet(0, 2), Cap: 100},
			},
		},
		{
			name:   "folded chips are dead money",
			ledger: Ledger{0: 100, 1: 300, 2: 100},
			folded: NewSeatSet(1),
			want: []Pot{
				{ID: 1, Amount: 500, Eligible: NewSeatSet(0, 2), Cap: 100, IsMain: true},
			},
		},
		{
			name:   "folded player between levels",
			ledger: Ledger{0: 100, 1: 60, 2: 40, 3: 100},
			folded: NewSeatSet(1),
			want: []Pot{
				{ID: 1, Amount: 160, Eligible: NewSeatSet(0, 2, 3), Cap: 40, IsMain: true},
				{ID: 2, Amount: 140, Eligible: NewSeatSet(0, 3), Cap: 100},
			},
		},
		{
			name:   "uncalled excess is its own pot",
			ledger: Ledger{0: 500, 1: 200},
			want: []Pot{
				{ID: 1, Amount: 400, Eligible: NewSeatSet(0, 1), Cap: 200, IsMain: true},
				{ID: 2, Amount: 300, Eligible: NewSeatSet(0), Cap: 500},
			},
		},
		{
			name:   "three all-in levels",
			ledger: Ledger{0: 30, 1: 70, 2: 100, 3: 100},
			want: []Pot{
				{ID: 1, Amount: 120, Eligible: NewSeatSet(0, 1, 2, 3), Cap: 30, IsMain: true},
				{ID: 2, Amount: 120, Eligible: NewSeatSet(1, 2, 3), Cap: 70},
				{ID: 3, Amount: 60, Eligible: NewSeatSet(2, 3), Cap: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pots := AllocatePots(tt.ledger, tt.folded)
			assert.Equal(t, tt.want, pots)
			assert.Equal(t, tt.ledger.Total(), TotalPots(pots))
		})
	}
}

func TestAllocatePotsEligibilityShrinks(t *testing.T) {
	t.Parallel()
	pots := AllocatePots(Ledger{0: 10, 1: 20, 2: 30, 3: 40, 4: 40, 5: 5}, NewSeatSet(5))
	require.Len(t, pots, 4)
	for i := 1; i < len(pots); i++ {
		prev, cur := pots[i-1].Eligible, pots[i].Eligible
		assert.Less(t, cur.Len(), prev.Len())
		assert.Equal(t, cur, cur&prev, "later pots are a subset of earlier ones")
	}
}

func TestAllocatePotsEmpty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, AllocatePots(Ledger{}, 0))
	assert.Nil(t, AllocatePots(Ledger{0: 0, 1: 0}, 0))
}
