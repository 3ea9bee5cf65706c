package commitment

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"zkpay-sdk/internal/types"
)

// The fixed vectors below are the published conformance values. Any change
// to byte layout, padding or hash input ordering must fail these tests.

func ethVector() ([]Allocation, types.UniversalAddressRequest, common.Hash, uint32, string) {
	allocations := []Allocation{
		{Seq: 0, Amount: big.NewInt(0).SetUint64(1000000000000000000)},
		{Seq: 1, Amount: big.NewInt(0).SetUint64(500000000000000000)},
		{Seq: 2, Amount: big.NewInt(0).SetUint64(2000000000000000000)},
	}
	owner := types.UniversalAddressRequest{
		ChainID: 60,
		Address: "0x000000000000000000000000742d35cc6634c0532925a3b844bc454e4438f44e",
	}
	depositID := common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	return allocations, owner, depositID, 60, "USDT"
}

func TestBuildEthVector(t *testing.T) {
	allocations, owner, depositID, chainID, tokenKey := ethVector()

	root, err := Build(allocations, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)
	require.Equal(t,
		"0x698cb72e4febceff276b78f43c7e5bada5d1a03cc2a91185a28e0c19561199a7",
		root.Hex())
}

func TestHashAllocationEthVector(t *testing.T) {
	allocations, _, _, _, _ := ethVector()

	want := []string{
		"0xbba19f7b6bf933f6afced6fc8320b406d457245dd8d0f6132addd8b76b4e8cff",
		"0x9a142274282368aaaaac27c814c3127cbd6b5ef645e418e29b24dc55d6ded30d",
		"0xe790ea07431bb49c221f03c9813f37d49ddcd2eabd51b73d2a00f1dfcfa8f87b",
	}
	for i, alloc := range allocations {
		leaf, err := HashAllocation(alloc)
		require.NoError(t, err)
		require.Equal(t, want[i], leaf.Hex(), "leaf %d", i)
	}
}

func TestTokenKeyHashVector(t *testing.T) {
	require.Equal(t,
		"0x8b1a1d9c2b109e527c9134b25b1a1833b16b6594f92daa9f6d9b7a6024bce9d0",
		TokenKeyHash("USDT").Hex())
}

func TestNullifierEthVector(t *testing.T) {
	allocations, owner, depositID, chainID, tokenKey := ethVector()

	root, err := Build(allocations, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)

	want := []string{
		"0x571680231167f0117256c922026c2204a3b975a3a75ddd9b9a06e5e903795407",
		"0xabb939af4b6598e447c849d3a8237cd1b1575af3c422ba7c7c522fe423ea3caf",
		"0x3377a49ec7f503d1c6b078eadd1638d106db18a2f3cea33555c5482629b86eef",
	}
	for i, alloc := range allocations {
		nullifier, err := Nullifier(root, alloc)
		require.NoError(t, err)
		require.Equal(t, want[i], nullifier.Hex(), "nullifier %d", i)
	}
}

func TestBuildBscSingleAllocationVector(t *testing.T) {
	amount, ok := new(big.Int).SetString("339300000000000000", 10)
	require.True(t, ok)
	allocations := []Allocation{{Seq: 0, Amount: amount}}
	owner := types.UniversalAddressRequest{
		ChainID: 714,
		Address: "0x0000000000000000000000006f3995e2e40ca58adcbd47a2edad192e43d98638",
	}
	depositID := common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222222222")

	root, err := Build(allocations, owner, depositID, 714, "USDC")
	require.NoError(t, err)
	require.Equal(t,
		"0x5cc82ab9a74fcd341dbbae04fdc6646ea242db124c0bdc7be83b6281ca716b9a",
		root.Hex())

	nullifier, err := Nullifier(root, allocations[0])
	require.NoError(t, err)
	require.Equal(t,
		"0x826fe718a8b89031ba0ec8bd07fad03a3b0060eff09ee2aef5d3e1e5f1d2d24f",
		nullifier.Hex())
}

func TestBuildDeterministic(t *testing.T) {
	allocations, owner, depositID, chainID, tokenKey := ethVector()

	first, err := Build(allocations, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)
	second, err := Build(allocations, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBuildOrderIndependent(t *testing.T) {
	allocations, owner, depositID, chainID, tokenKey := ethVector()

	shuffled := []Allocation{allocations[2], allocations[0], allocations[1]}

	want, err := Build(allocations, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)
	got, err := Build(shuffled, owner, depositID, chainID, tokenKey)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
