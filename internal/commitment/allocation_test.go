package commitment

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSequence(t *testing.T) {
	cases := []struct {
		name        string
		allocations []Allocation
		want        bool
	}{
		{"empty", nil, false},
		{"single zero", []Allocation{{Seq: 0, Amount: big.NewInt(1)}}, true},
		{"contiguous", []Allocation{
			{Seq: 0, Amount: big.NewInt(1)},
			{Seq: 1, Amount: big.NewInt(2)},
			{Seq: 2, Amount: big.NewInt(3)},
		}, true},
		{"unsorted but contiguous", []Allocation{
			{Seq: 2, Amount: big.NewInt(3)},
			{Seq: 0, Amount: big.NewInt(1)},
			{Seq: 1, Amount: big.NewInt(2)},
		}, true},
		{"missing zero", []Allocation{
			{Seq: 1, Amount: big.NewInt(1)},
			{Seq: 2, Amount: big.NewInt(2)},
		}, false},
		{"gap", []Allocation{
			{Seq: 0, Amount: big.NewInt(1)},
			{Seq: 2, Amount: big.NewInt(2)},
		}, false},
		{"duplicate", []Allocation{
			{Seq: 0, Amount: big.NewInt(1)},
			{Seq: 1, Amount: big.NewInt(2)},
			{Seq: 1, Amount: big.NewInt(3)},
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ValidateSequence(tc.allocations))
		})
	}
}

func TestValidateSequenceCap(t *testing.T) {
	full := make([]Allocation, MaxAllocations)
	for i := range full {
		full[i] = Allocation{Seq: uint8(i), Amount: big.NewInt(1)}
	}
	require.True(t, ValidateSequence(full))

	over := append(full, Allocation{Seq: 0, Amount: big.NewInt(1)})
	require.False(t, ValidateSequence(over))
}

func TestHashAllocationRejectsBadAmounts(t *testing.T) {
	_, err := HashAllocation(Allocation{Seq: 0, Amount: nil})
	require.ErrorIs(t, err, ErrOversizedAmount)

	_, err = HashAllocation(Allocation{Seq: 0, Amount: big.NewInt(-1)})
	require.ErrorIs(t, err, ErrOversizedAmount)

	over := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = HashAllocation(Allocation{Seq: 0, Amount: over})
	require.ErrorIs(t, err, ErrOversizedAmount)
}

func TestHashAllocationAcceptsMaxUint256(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	_, err := HashAllocation(Allocation{Seq: 0, Amount: max})
	require.NoError(t, err)
}

func TestHashAllocationZeroAmount(t *testing.T) {
	// Zero is a valid amount and must pad to 32 zero bytes.
	leaf, err := HashAllocation(Allocation{Seq: 5, Amount: big.NewInt(0)})
	require.NoError(t, err)

	other, err := HashAllocation(Allocation{Seq: 6, Amount: big.NewInt(0)})
	require.NoError(t, err)
	require.NotEqual(t, leaf, other, "seq byte must enter the preimage")
}
