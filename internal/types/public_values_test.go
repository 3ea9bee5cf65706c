package types

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// wrapTuple prepends the 32-byte struct offset word the prover emits in
// front of the packed field data.
func wrapTuple(t *testing.T, packed []byte) string {
	t.Helper()
	offset := make([]byte, 32)
	offset[31] = 32
	return "0x" + hex.EncodeToString(append(offset, packed...))
}

func TestParseCommitmentPublicValues(t *testing.T) {
	commitment := common.HexToHash("0x698cb72e4febceff276b78f43c7e5bada5d1a03cc2a91185a28e0c19561199a7")
	owner := common.HexToAddress("0x742d35cc6634c0532925a3b844bc454e4438f44e")
	depositID := common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	total, _ := new(big.Int).SetString("3500000000000000000", 10)

	packed, err := commitmentPublicValuesArgs.Pack(
		[32]byte(commitment), owner, total, [32]byte(depositID), uint32(60), "USDT")
	require.NoError(t, err)

	got, err := ParseCommitmentPublicValues(wrapTuple(t, packed))
	require.NoError(t, err)
	require.Equal(t, commitment.Hex(), got.Commitment)
	require.Equal(t, owner.Hex(), got.Owner)
	require.Equal(t, "3500000000000000000", got.TotalAmount)
	require.Equal(t, depositID.Hex(), got.DepositID)
	require.Equal(t, uint32(60), got.CoinType)
	require.Equal(t, "USDT", got.TokenKey)
}

func TestParseWithdrawPublicValues(t *testing.T) {
	root := common.HexToHash("0x698cb72e4febceff276b78f43c7e5bada5d1a03cc2a91185a28e0c19561199a7")
	nullifiers := [][32]byte{
		[32]byte(common.HexToHash("0x571680231167f0117256c922026c2204a3b975a3a75ddd9b9a06e5e903795407")),
		[32]byte(common.HexToHash("0xabb939af4b6598e447c849d3a8237cd1b1575af3c422ba7c7c522fe423ea3caf")),
	}
	beneficiary := common.HexToHash("0x000000000000000000000000742d35cc6634c0532925a3b844bc454e4438f44e")
	minOutput := common.Hash{}

	packed, err := withdrawPublicValuesArgs.Pack(
		[32]byte(root), nullifiers, big.NewInt(1500), uint8(0), uint32(60), uint32(1),
		"USDT", [32]byte(beneficiary), [32]byte(minOutput), uint32(60), "USDT")
	require.NoError(t, err)

	got, err := ParseWithdrawPublicValues(wrapTuple(t, packed))
	require.NoError(t, err)
	require.Equal(t, root.Hex(), got.CommitmentRoot)
	require.Len(t, got.Nullifiers, 2)
	require.Equal(t, "0x571680231167f0117256c922026c2204a3b975a3a75ddd9b9a06e5e903795407", got.Nullifiers[0])
	require.Equal(t, "0xabb939af4b6598e447c849d3a8237cd1b1575af3c422ba7c7c522fe423ea3caf", got.Nullifiers[1])
	require.Equal(t, "1500", got.Amount)
	require.Equal(t, uint8(0), got.IntentType)
	require.Equal(t, uint32(60), got.Slip44ChainID)
	require.Equal(t, uint32(1), got.AdapterID)
	require.Equal(t, "USDT", got.TokenKey)
	require.Equal(t, beneficiary.Hex(), got.BeneficiaryData)
	require.Equal(t, minOutput.Hex(), got.MinOutput)
	require.Equal(t, uint32(60), got.SourceChainID)
	require.Equal(t, "USDT", got.SourceTokenKey)
}

func TestTupleDataErrors(t *testing.T) {
	_, err := ParseCommitmentPublicValues("0xzznothex")
	require.Error(t, err)

	_, err = ParseCommitmentPublicValues("0x1234")
	require.Error(t, err)

	// offset outside the data
	bad := make([]byte, 64)
	bad[31] = 0xff
	_, err = ParseCommitmentPublicValues("0x" + hex.EncodeToString(bad))
	require.Error(t, err)
}
