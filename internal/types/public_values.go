package types

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// The proving service commits its outputs as ABI-encoded structs. Decoding
// them lets callers cross-check the commitment and nullifier set the
// service used against the locally computed values.

// mustNewType builds an ABI type, panicking on error. Only used with
// constant type strings.
func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("failed to create ABI type %s: %v", t, err))
	}
	return typ
}

var commitmentPublicValuesArgs = abi.Arguments{
	{Name: "commitment", Type: mustNewType("bytes32")},
	{Name: "owner", Type: mustNewType("address")},
	{Name: "totalAmount", Type: mustNewType("uint256")},
	{Name: "depositId", Type: mustNewType("bytes32")},
	{Name: "coinType", Type: mustNewType("uint32")},
	{Name: "tokenKey", Type: mustNewType("string")},
}

var withdrawPublicValuesArgs = abi.Arguments{
	{Name: "commitmentRoot", Type: mustNewType("bytes32")},
	{Name: "nullifiers", Type: mustNewType("bytes32[]")},
	{Name: "amount", Type: mustNewType("uint256")},
	{Name: "intentType", Type: mustNewType("uint8")},
	{Name: "slip44chainID", Type: mustNewType("uint32")},
	{Name: "adapterId", Type: mustNewType("uint32")},
	{Name: "tokenKey", Type: mustNewType("string")},
	{Name: "beneficiaryData", Type: mustNewType("bytes32")},
	{Name: "minOutput", Type: mustNewType("bytes32")},
	{Name: "sourceChainId", Type: mustNewType("uint32")},
	{Name: "sourceTokenKey", Type: mustNewType("string")},
}

// CommitmentPublicValues are the public outputs of a commitment proof.
type CommitmentPublicValues struct {
	Commitment  string `json:"commitment"`   // bytes32
	Owner       string `json:"owner"`        // address
	TotalAmount string `json:"total_amount"` // uint256, decimal
	DepositID   string `json:"deposit_id"`   // bytes32
	CoinType    uint32 `json:"coin_type"`    // SLIP-44 chain ID
	TokenKey    string `json:"token_key"`    // e.g. "USDT"
}

// WithdrawPublicValues are the public outputs of a withdraw proof.
type WithdrawPublicValues struct {
	CommitmentRoot  string   `json:"commitment_root"`
	Nullifiers      []string `json:"nullifiers"`
	Amount          string   `json:"amount"` // uint256, decimal
	IntentType      uint8    `json:"intent_type"`
	Slip44ChainID   uint32   `json:"slip44_chain_id"`
	AdapterID       uint32   `json:"adapter_id"`
	TokenKey        string   `json:"token_key"`
	BeneficiaryData string   `json:"beneficiary_data"`
	MinOutput       string   `json:"min_output"`
	SourceChainID   uint32   `json:"source_chain_id"`
	SourceTokenKey  string   `json:"source_token_key"`
}

// tupleData strips the leading tuple offset from ABI-encoded struct data
// and returns the bytes Unpack expects.
func tupleData(publicValuesHex string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(publicValuesHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("hex decode failed: %w", err)
	}
	if len(raw) < 32 {
		return nil, fmt.Errorf("public values too short: %d bytes", len(raw))
	}
	offset := new(big.Int).SetBytes(raw[0:32])
	if !offset.IsInt64() || offset.Int64() < 32 || offset.Int64() >= int64(len(raw)) {
		return nil, fmt.Errorf("invalid struct offset %s (data length %d)", offset, len(raw))
	}
	return raw[offset.Int64():], nil
}

// ParseCommitmentPublicValues decodes commitment proof public values from
// their ABI-encoded hex form.
func ParseCommitmentPublicValues(publicValuesHex string) (*CommitmentPublicValues, error) {
	data, err := tupleData(publicValuesHex)
	if err != nil {
		return nil, err
	}
	unpacked, err := commitmentPublicValuesArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack commitment public values: %w", err)
	}
	if len(unpacked) != len(commitmentPublicValuesArgs) {
		return nil, fmt.Errorf("unexpected field count: %d", len(unpacked))
	}

	commitment := unpacked[0].([32]byte)
	depositID := unpacked[3].([32]byte)
	return &CommitmentPublicValues{
		Commitment:  "0x" + hex.EncodeToString(commitment[:]),
		Owner:       unpacked[1].(common.Address).Hex(),
		TotalAmount: unpacked[2].(*big.Int).String(),
		DepositID:   "0x" + hex.EncodeToString(depositID[:]),
		CoinType:    toUint32(unpacked[4]),
		TokenKey:    unpacked[5].(string),
	}, nil
}

// ParseWithdrawPublicValues decodes withdraw proof public values from their
// ABI-encoded hex form.
func ParseWithdrawPublicValues(publicValuesHex string) (*WithdrawPublicValues, error) {
	data, err := tupleData(publicValuesHex)
	if err != nil {
		return nil, err
	}
	unpacked, err := withdrawPublicValuesArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack withdraw public values: %w", err)
	}
	if len(unpacked) != len(withdrawPublicValuesArgs) {
		return nil, fmt.Errorf("unexpected field count: %d", len(unpacked))
	}

	rawNullifiers := unpacked[1].([][32]byte)
	nullifiers := make([]string, len(rawNullifiers))
	for i, n := range rawNullifiers {
		nullifiers[i] = "0x" + hex.EncodeToString(n[:])
	}

	root := unpacked[0].([32]byte)
	beneficiary := unpacked[7].([32]byte)
	minOutput := unpacked[8].([32]byte)
	return &WithdrawPublicValues{
		CommitmentRoot:  "0x" + hex.EncodeToString(root[:]),
		Nullifiers:      nullifiers,
		Amount:          unpacked[2].(*big.Int).String(),
		IntentType:      toUint8(unpacked[3]),
		Slip44ChainID:   toUint32(unpacked[4]),
		AdapterID:       toUint32(unpacked[5]),
		TokenKey:        unpacked[6].(string),
		BeneficiaryData: "0x" + hex.EncodeToString(beneficiary[:]),
		MinOutput:       "0x" + hex.EncodeToString(minOutput[:]),
		SourceChainID:   toUint32(unpacked[9]),
		SourceTokenKey:  unpacked[10].(string),
	}, nil
}

// toUint32 handles ABI decoders returning either the native type or a
// *big.Int.
func toUint32(v interface{}) uint32 {
	switch val := v.(type) {
	case uint32:
		return val
	case *big.Int:
		return uint32(val.Uint64())
	default:
		return 0
	}
}

func toUint8(v interface{}) uint8 {
	switch val := v.(type) {
	case uint8:
		return val
	case *big.Int:
		return uint8(val.Uint64())
	default:
		return 0
	}
}
