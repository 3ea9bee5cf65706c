package commitment

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"zkpay-sdk/internal/types"
)

// Credential is the compact membership proof for one allocation: the leaf
// hashes of every smaller-seq sibling, the leaf hashes of every larger-seq
// sibling, and the deposit context. A credential plus its target allocation
// fully determines the commitment and nullifier without revealing any
// sibling's amount.
//
// This is a flat sibling-hash list in strict seq order, not a Merkle tree;
// the left/self/right concatenation order is part of the hash preimage.
type Credential struct {
	LeftHashes  []common.Hash
	RightHashes []common.Hash
	DepositID   common.Hash
	ChainID     uint32
	TokenKey    string
}

// BuildCredential builds the credential for allocations[targetIndex]
// against the full set. The set must have a dense, zero-based sequence;
// it is re-sorted by seq before slicing into left and right siblings.
func (s *Scheme) BuildCredential(
	allocations []Allocation,
	targetIndex int,
	depositID common.Hash,
	chainID uint32,
	tokenKey string,
) (*Credential, error) {
	if !ValidateSequence(allocations) {
		return nil, fmt.Errorf("%w: %d allocations", ErrSequenceInvalid, len(allocations))
	}
	if targetIndex < 0 || targetIndex >= len(allocations) {
		return nil, fmt.Errorf("%w: target index %d out of range [0,%d)", ErrSequenceInvalid, targetIndex, len(allocations))
	}

	sorted := sortedBySeq(allocations)
	leaves, err := s.leafHashes(sorted)
	if err != nil {
		return nil, err
	}

	left := make([]common.Hash, targetIndex)
	copy(left, leaves[:targetIndex])
	right := make([]common.Hash, len(leaves)-targetIndex-1)
	copy(right, leaves[targetIndex+1:])

	return &Credential{
		LeftHashes:  left,
		RightHashes: right,
		DepositID:   depositID,
		ChainID:     chainID,
		TokenKey:    tokenKey,
	}, nil
}

// ReconstructCommitment recomputes the commitment from a single allocation
// and its credential. For any credential built from a valid set, the result
// equals Build over the full set; that round-trip equality is the scheme's
// central invariant.
func (s *Scheme) ReconstructCommitment(
	target Allocation,
	owner types.UniversalAddressRequest,
	cred *Credential,
) (common.Hash, error) {
	ownerBytes, err := OwnerBytes32(owner)
	if err != nil {
		return common.Hash{}, err
	}
	targetLeaf, err := s.HashAllocation(target)
	if err != nil {
		return common.Hash{}, err
	}

	// left hashes, then the target's own leaf, then right hashes: the
	// exact seq-sorted order Build would produce.
	leaves := make([]common.Hash, 0, len(cred.LeftHashes)+1+len(cred.RightHashes))
	leaves = append(leaves, cred.LeftHashes...)
	leaves = append(leaves, targetLeaf)
	leaves = append(leaves, cred.RightHashes...)

	return s.assemble(cred.DepositID, cred.ChainID, cred.TokenKey, owner.ChainID, ownerBytes, leaves), nil
}

// ReconstructNullifier reconstructs the commitment from the credential and
// derives the target allocation's nullifier from it. Used when the caller
// holds only a single allocation plus its credential rather than the set.
func (s *Scheme) ReconstructNullifier(
	target Allocation,
	owner types.UniversalAddressRequest,
	cred *Credential,
) (common.Hash, error) {
	c, err := s.ReconstructCommitment(target, owner, cred)
	if err != nil {
		return common.Hash{}, err
	}
	return s.Nullifier(c, target)
}

// BuildCredential builds a credential with the default scheme.
func BuildCredential(
	allocations []Allocation,
	targetIndex int,
	depositID common.Hash,
	chainID uint32,
	tokenKey string,
) (*Credential, error) {
	return Default.BuildCredential(allocations, targetIndex, depositID, chainID, tokenKey)
}

// ReconstructCommitment reconstructs a commitment with the default scheme.
func ReconstructCommitment(target Allocation, owner types.UniversalAddressRequest, cred *Credential) (common.Hash, error) {
	return Default.ReconstructCommitment(target, owner, cred)
}

// ReconstructNullifier reconstructs a nullifier with the default scheme.
func ReconstructNullifier(target Allocation, owner types.UniversalAddressRequest, cred *Credential) (common.Hash, error) {
	return Default.ReconstructNullifier(target, owner, cred)
}
