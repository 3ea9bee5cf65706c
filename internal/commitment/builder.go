package commitment

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"zkpay-sdk/internal/types"
)

// TokenKeyHash hashes a token key symbol (e.g. "USDT"). Binding the hash
// rather than a numeric token ID keeps asset identity in the commitment
// without a registry lookup at hash time.
func (s *Scheme) TokenKeyHash(tokenKey string) common.Hash {
	return common.BytesToHash(s.hash([]byte(tokenKey)))
}

// OwnerBytes32 canonicalizes an owner address to the 32-byte form used in
// the commitment preimage: raw address bytes right-aligned, zero
// left-padded. Accepts hex with or without the 0x prefix.
func OwnerBytes32(owner types.UniversalAddressRequest) ([32]byte, error) {
	var out [32]byte
	raw := strings.TrimPrefix(strings.ToLower(owner.Address), "0x")
	if raw == "" {
		return out, fmt.Errorf("%w: empty address", ErrMalformedAddress)
	}
	data, err := hex.DecodeString(raw)
	if err != nil {
		return out, fmt.Errorf("%w: %q", ErrMalformedAddress, owner.Address)
	}
	if len(data) > 32 {
		return out, fmt.Errorf("%w: %d bytes, max 32", ErrMalformedAddress, len(data))
	}
	copy(out[32-len(data):], data)
	return out, nil
}

// Build computes the commitment hash binding the full allocation set to its
// deposit and owner:
//
//	H(depositId[32] || chainId[4, BE] || H(tokenKey)[32] ||
//	  ownerChainId[4, BE] || owner[32] || leaf_0 .. leaf_n-1)
//
// The allocation set must have a dense, zero-based sequence; allocations are
// re-sorted by seq before hashing so insertion order never matters.
func (s *Scheme) Build(
	allocations []Allocation,
	owner types.UniversalAddressRequest,
	depositID common.Hash,
	chainID uint32,
	tokenKey string,
) (common.Hash, error) {
	if !ValidateSequence(allocations) {
		return common.Hash{}, fmt.Errorf("%w: %d allocations", ErrSequenceInvalid, len(allocations))
	}
	ownerBytes, err := OwnerBytes32(owner)
	if err != nil {
		return common.Hash{}, err
	}

	sorted := sortedBySeq(allocations)
	leaves, err := s.leafHashes(sorted)
	if err != nil {
		return common.Hash{}, err
	}

	return s.assemble(depositID, chainID, tokenKey, owner.ChainID, ownerBytes, leaves), nil
}

// assemble hashes the commitment preimage from already-canonicalized parts.
// Shared by Build and credential reconstruction so the two can never
// disagree on byte layout.
func (s *Scheme) assemble(
	depositID common.Hash,
	chainID uint32,
	tokenKey string,
	ownerChainID uint32,
	ownerBytes [32]byte,
	leaves []common.Hash,
) common.Hash {
	var chainIDBytes, ownerChainIDBytes [4]byte
	binary.BigEndian.PutUint32(chainIDBytes[:], chainID)
	binary.BigEndian.PutUint32(ownerChainIDBytes[:], ownerChainID)
	tokenKeyHash := s.TokenKeyHash(tokenKey)

	preimage := make([]byte, 0, 32+4+32+4+32+32*len(leaves))
	preimage = append(preimage, depositID.Bytes()...)
	preimage = append(preimage, chainIDBytes[:]...)
	preimage = append(preimage, tokenKeyHash.Bytes()...)
	preimage = append(preimage, ownerChainIDBytes[:]...)
	preimage = append(preimage, ownerBytes[:]...)
	for _, leaf := range leaves {
		preimage = append(preimage, leaf.Bytes()...)
	}
	return common.BytesToHash(s.hash(preimage))
}

// Build computes a commitment with the default scheme.
func Build(
	allocations []Allocation,
	owner types.UniversalAddressRequest,
	depositID common.Hash,
	chainID uint32,
	tokenKey string,
) (common.Hash, error) {
	return Default.Build(allocations, owner, depositID, chainID, tokenKey)
}

// TokenKeyHash hashes a token key with the default scheme.
func TokenKeyHash(tokenKey string) common.Hash {
	return Default.TokenKeyHash(tokenKey)
}
