// Package utils provides chain-facing helpers shared across the SDK:
// address canonicalization, the SLIP-44 chain registry, and asset-id
// encoding.
package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var hexAddressPattern = regexp.MustCompile("^(0x)?[0-9a-fA-F]+$")

// IsTronAddress reports whether the string looks like a TRON base58 address.
func IsTronAddress(address string) bool {
	return strings.HasPrefix(address, "T") && len(address) == 34
}

// IsEvmAddress reports whether the string is a 20-byte hex address, with or
// without the 0x prefix.
func IsEvmAddress(address string) bool {
	raw := strings.TrimPrefix(strings.ToLower(address), "0x")
	return len(raw) == 40 && hexAddressPattern.MatchString(raw)
}

// IsUniversalAddress reports whether the string is already the 32-byte
// universal form (64 hex chars, optional 0x prefix).
func IsUniversalAddress(address string) bool {
	raw := strings.TrimPrefix(strings.ToLower(address), "0x")
	return len(raw) == 64 && hexAddressPattern.MatchString(raw)
}

// EvmToUniversalAddress converts a 20-byte EVM address to the 32-byte
// universal form: right-aligned, zero left-padded, 0x-prefixed lower hex.
func EvmToUniversalAddress(evmAddress string) (string, error) {
	if !IsEvmAddress(evmAddress) {
		return "", fmt.Errorf("invalid EVM address format: %s", evmAddress)
	}
	addr := common.HexToAddress(evmAddress)
	var universal [32]byte
	copy(universal[12:], addr.Bytes())
	return "0x" + hex.EncodeToString(universal[:]), nil
}

// TronToUniversalAddress converts a TRON base58 address to the 32-byte
// universal form. The base58 payload is 0x41 || evm20 || checksum4, where
// the checksum is the first 4 bytes of a double SHA-256.
func TronToUniversalAddress(tronAddress string) (string, error) {
	if !IsTronAddress(tronAddress) {
		return "", fmt.Errorf("invalid TRON address format: %s", tronAddress)
	}
	decoded, err := base58Decode(tronAddress)
	if err != nil {
		return "", fmt.Errorf("failed to decode TRON address: %w", err)
	}
	if len(decoded) != 25 {
		return "", fmt.Errorf("invalid TRON address length: expected 25 bytes, got %d", len(decoded))
	}

	payload, checksum := decoded[:21], decoded[21:]
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	for i := 0; i < 4; i++ {
		if checksum[i] != second[i] {
			return "", fmt.Errorf("invalid TRON address checksum")
		}
	}
	if payload[0] != 0x41 {
		return "", fmt.Errorf("invalid TRON address prefix: expected 0x41, got 0x%02x", payload[0])
	}

	var universal [32]byte
	copy(universal[12:], payload[1:])
	return "0x" + hex.EncodeToString(universal[:]), nil
}

// ToUniversalAddress canonicalizes any supported address form to the
// 32-byte universal form. Universal input passes through re-normalized;
// TRON is detected via chainID 195, everything else is treated as EVM.
func ToUniversalAddress(address string, slip44ChainID uint32) (string, error) {
	if IsUniversalAddress(address) {
		return "0x" + strings.TrimPrefix(strings.ToLower(address), "0x"), nil
	}
	if slip44ChainID == ChainTron && IsTronAddress(address) {
		return TronToUniversalAddress(address)
	}
	return EvmToUniversalAddress(address)
}

// ExtractEvmAddressFromUniversal recovers the 20-byte EVM address from the
// 32-byte universal form (last 20 bytes).
func ExtractEvmAddressFromUniversal(universalAddress string) (string, error) {
	if !IsUniversalAddress(universalAddress) {
		return "", fmt.Errorf("invalid universal address format: %s", universalAddress)
	}
	raw := strings.TrimPrefix(strings.ToLower(universalAddress), "0x")
	return "0x" + raw[24:], nil
}

// EvmToTronAddress converts a 20-byte EVM address to the TRON base58 form.
func EvmToTronAddress(evmAddress string) (string, error) {
	if !IsEvmAddress(evmAddress) {
		return "", fmt.Errorf("invalid EVM address format: %s", evmAddress)
	}
	addr := common.HexToAddress(evmAddress)

	payload := make([]byte, 21)
	payload[0] = 0x41
	copy(payload[1:], addr.Bytes())

	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	full := append(payload, second[:4]...)
	return base58Encode(full), nil
}

func base58Decode(input string) ([]byte, error) {
	num := new(big.Int)
	base := big.NewInt(58)
	for i := 0; i < len(input); i++ {
		idx := strings.IndexByte(base58Alphabet, input[i])
		if idx < 0 {
			return nil, fmt.Errorf("invalid base58 character: %c", input[i])
		}
		num.Mul(num, base)
		num.Add(num, big.NewInt(int64(idx)))
	}

	decoded := num.Bytes()
	for i := 0; i < len(input) && input[i] == '1'; i++ {
		decoded = append([]byte{0}, decoded...)
	}
	return decoded, nil
}

func base58Encode(input []byte) string {
	num := new(big.Int).SetBytes(input)
	base := big.NewInt(58)
	mod := new(big.Int)

	var out []byte
	for num.Sign() > 0 {
		num.DivMod(num, base, mod)
		out = append(out, base58Alphabet[mod.Int64()])
	}
	for _, b := range input {
		if b != 0 {
			break
		}
		out = append(out, '1')
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
