package commitment

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"zkpay-sdk/internal/types"
)

// For every allocation in a valid set, reconstructing the commitment from
// that allocation's credential must equal Build over the whole set.
func TestCredentialRoundTrip(t *testing.T) {
	allocations, owner, depositID, chainID, tokenKey := ethVector()

	want, err := Build(allocations, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)

	for i, alloc := range allocations {
		cred, err := BuildCredential(allocations, i, depositID, chainID, tokenKey)
		require.NoError(t, err)
		require.Len(t, cred.LeftHashes, i)
		require.Len(t, cred.RightHashes, len(allocations)-i-1)

		got, err := ReconstructCommitment(alloc, owner, cred)
		require.NoError(t, err)
		require.Equal(t, want, got, "target index %d", i)

		wantNull, err := Nullifier(want, alloc)
		require.NoError(t, err)
		gotNull, err := ReconstructNullifier(alloc, owner, cred)
		require.NoError(t, err)
		require.Equal(t, wantNull, gotNull, "target index %d", i)
	}
}

func TestCredentialSingleAllocation(t *testing.T) {
	amount := big.NewInt(42)
	allocations := []Allocation{{Seq: 0, Amount: amount}}
	_, owner, depositID, chainID, tokenKey := ethVector()

	cred, err := BuildCredential(allocations, 0, depositID, chainID, tokenKey)
	require.NoError(t, err)
	require.Empty(t, cred.LeftHashes)
	require.Empty(t, cred.RightHashes)

	want, err := Build(allocations, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)
	got, err := ReconstructCommitment(allocations[0], owner, cred)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCredentialUnsortedInput(t *testing.T) {
	allocations, owner, depositID, chainID, tokenKey := ethVector()
	shuffled := []Allocation{allocations[2], allocations[0], allocations[1]}

	want, err := Build(allocations, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)

	// targetIndex addresses the seq-sorted set, not the input slice.
	cred, err := BuildCredential(shuffled, 1, depositID, chainID, tokenKey)
	require.NoError(t, err)

	got, err := ReconstructCommitment(allocations[1], owner, cred)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestBuildCredentialErrors(t *testing.T) {
	allocations, _, depositID, chainID, tokenKey := ethVector()

	_, err := BuildCredential(nil, 0, depositID, chainID, tokenKey)
	require.ErrorIs(t, err, ErrSequenceInvalid)

	_, err = BuildCredential(allocations, -1, depositID, chainID, tokenKey)
	require.ErrorIs(t, err, ErrSequenceInvalid)

	_, err = BuildCredential(allocations, len(allocations), depositID, chainID, tokenKey)
	require.ErrorIs(t, err, ErrSequenceInvalid)
}

func TestReconstructCommitmentMalformedOwner(t *testing.T) {
	allocations, _, depositID, chainID, tokenKey := ethVector()

	cred, err := BuildCredential(allocations, 0, depositID, chainID, tokenKey)
	require.NoError(t, err)

	bad := types.UniversalAddressRequest{ChainID: 60, Address: "bogus"}
	_, err = ReconstructCommitment(allocations[0], bad, cred)
	require.ErrorIs(t, err, ErrMalformedAddress)
}
