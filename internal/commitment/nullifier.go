package commitment

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"zkpay-sdk/internal/types"
)

// Nullifier derives the spend nullifier of one allocation against its
// commitment: H(commitment[32] || seq[1] || amount[32, BE]). Each
// (commitment, allocation) pair has exactly one nullifier.
func (s *Scheme) Nullifier(commitment common.Hash, alloc Allocation) (common.Hash, error) {
	amount, err := amountBytes32(alloc.Amount)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(s.hash(commitment.Bytes(), []byte{alloc.Seq}, amount[:])), nil
}

// NullifierBatch computes the commitment once and derives one nullifier per
// allocation, in input order. The result is element-wise identical to
// calling Nullifier individually against the same commitment; batching only
// avoids recomputing the commitment n times.
func (s *Scheme) NullifierBatch(
	allocations []Allocation,
	owner types.UniversalAddressRequest,
	depositID common.Hash,
	chainID uint32,
	tokenKey string,
) ([]common.Hash, error) {
	c, err := s.Build(allocations, owner, depositID, chainID, tokenKey)
	if err != nil {
		return nil, err
	}
	nullifiers := make([]common.Hash, len(allocations))
	for i, alloc := range allocations {
		n, err := s.Nullifier(c, alloc)
		if err != nil {
			return nil, fmt.Errorf("allocation seq %d: %w", alloc.Seq, err)
		}
		nullifiers[i] = n
	}
	return nullifiers, nil
}

// Nullifier derives a nullifier with the default scheme.
func Nullifier(commitment common.Hash, alloc Allocation) (common.Hash, error) {
	return Default.Nullifier(commitment, alloc)
}

// NullifierBatch derives all nullifiers of a set with the default scheme.
func NullifierBatch(
	allocations []Allocation,
	owner types.UniversalAddressRequest,
	depositID common.Hash,
	chainID uint32,
	tokenKey string,
) ([]common.Hash, error) {
	return Default.NullifierBatch(allocations, owner, depositID, chainID, tokenKey)
}
