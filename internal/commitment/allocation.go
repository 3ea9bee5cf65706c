package commitment

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// MaxAllocations is the hard cap on allocations per deposit, bounded by the
// 1-byte sequence field.
const MaxAllocations = 256

// Allocation is one (seq, amount) pair of a deposit's allocation set.
// Amount is a 256-bit unsigned integer in wei-style base units.
type Allocation struct {
	Seq    uint8
	Amount *big.Int
}

// ValidateSequence reports whether the allocation seq values form a dense,
// zero-based, consecutive set. An empty set is invalid. Insertion order does
// not matter; the check sorts a copy.
func ValidateSequence(allocations []Allocation) bool {
	if len(allocations) == 0 || len(allocations) > MaxAllocations {
		return false
	}
	sorted := sortedBySeq(allocations)
	for i, alloc := range sorted {
		if int(alloc.Seq) != i {
			return false
		}
	}
	return true
}

// sortedBySeq returns a copy of allocations sorted ascending by seq.
func sortedBySeq(allocations []Allocation) []Allocation {
	sorted := make([]Allocation, len(allocations))
	copy(sorted, allocations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Seq < sorted[j].Seq
	})
	return sorted
}

// amountBytes32 serializes an amount as a 32-byte big-endian unsigned
// integer (U256), left-padded with zeros.
func amountBytes32(amount *big.Int) ([32]byte, error) {
	var out [32]byte
	if amount == nil || amount.Sign() < 0 {
		return out, fmt.Errorf("%w: %v", ErrOversizedAmount, amount)
	}
	if amount.BitLen() > 256 {
		return out, fmt.Errorf("%w: %s", ErrOversizedAmount, amount.String())
	}
	amount.FillBytes(out[:])
	return out, nil
}

// HashAllocation computes the leaf hash of a single allocation:
// H(seq[1] || amount[32, BE]).
func (s *Scheme) HashAllocation(alloc Allocation) (common.Hash, error) {
	amount, err := amountBytes32(alloc.Amount)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(s.hash([]byte{alloc.Seq}, amount[:])), nil
}

// leafHashes computes the leaf hash of every allocation, in the order given.
// Callers pass a seq-sorted slice.
func (s *Scheme) leafHashes(sorted []Allocation) ([]common.Hash, error) {
	leaves := make([]common.Hash, len(sorted))
	for i, alloc := range sorted {
		leaf, err := s.HashAllocation(alloc)
		if err != nil {
			return nil, fmt.Errorf("allocation seq %d: %w", alloc.Seq, err)
		}
		leaves[i] = leaf
	}
	return leaves, nil
}

// HashAllocation computes an allocation leaf hash with the default scheme.
func HashAllocation(alloc Allocation) (common.Hash, error) {
	return Default.HashAllocation(alloc)
}
