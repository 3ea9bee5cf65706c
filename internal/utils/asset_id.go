package utils

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Asset IDs pack the AssetToken coordinates into a bytes32:
// slip44ChainID (4 bytes) || adapterID (4 bytes) || tokenID (2 bytes) ||
// reserved (22 zero bytes), all big-endian.

// EncodeAssetID packs chain, adapter and token IDs into a 0x-prefixed
// bytes32 hex string.
func EncodeAssetID(slip44ChainID uint32, adapterID uint32, tokenID uint16) string {
	out := make([]byte, 32)
	binary.BigEndian.PutUint32(out[0:4], slip44ChainID)
	binary.BigEndian.PutUint32(out[4:8], adapterID)
	binary.BigEndian.PutUint16(out[8:10], tokenID)
	return "0x" + hex.EncodeToString(out)
}

// DecodeAssetID unpacks a bytes32 asset ID into its components.
func DecodeAssetID(assetID string) (slip44ChainID uint32, adapterID uint32, tokenID uint16, err error) {
	raw := strings.TrimPrefix(assetID, "0x")
	if len(raw) != 64 {
		return 0, 0, 0, fmt.Errorf("invalid asset ID length: expected 64 hex chars, got %d", len(raw))
	}
	data, err := hex.DecodeString(raw)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid asset ID hex: %w", err)
	}
	return binary.BigEndian.Uint32(data[0:4]), binary.BigEndian.Uint32(data[4:8]), binary.BigEndian.Uint16(data[8:10]), nil
}

// ChainIDFromAssetID extracts the SLIP-44 chain ID from an asset ID.
func ChainIDFromAssetID(assetID string) (uint32, error) {
	slip44, _, _, err := DecodeAssetID(assetID)
	return slip44, err
}
