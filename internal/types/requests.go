// Package types provides common type definitions shared across the SDK
package types

// MultichainSignatureRequest represents a signature produced on a specific blockchain
type MultichainSignatureRequest struct {
	ChainID       uint32  `json:"chain_id"`
	SignatureData string  `json:"signature_data"`
	PublicKey     *string `json:"public_key,omitempty"`
}

// UniversalAddressRequest represents an address on a specific blockchain.
// Address is hex-encoded; for hashing it is canonicalized to 32 bytes
// (right-aligned, zero left-padded).
type UniversalAddressRequest struct {
	ChainID uint32 `json:"chain_id"` // SLIP-44 chain ID
	Address string `json:"address"`
}

// AllocationRequest represents a fund allocation for commitment proofs.
// Allocations only carry seq and amount; owner and token info live at the
// commitment level, not the allocation level.
type AllocationRequest struct {
	Seq    uint8  `json:"seq"`    // Allocation sequence (0-255)
	Amount string `json:"amount"` // Amount in HEX format (32 bytes, 64 hex chars, no 0x prefix)
}

// CredentialRequest represents withdrawal credential information: the
// sibling leaf hashes around one allocation plus the deposit context needed
// to reconstruct its commitment.
type CredentialRequest struct {
	LeftHashes  []string `json:"left_hashes"`
	RightHashes []string `json:"right_hashes"`
	DepositID   string   `json:"deposit_id"`
	ChainID     uint32   `json:"chain_id"`
	TokenKey    string   `json:"token_key"` // Token key (e.g., "USDT", "USDC")
}

// AllocationWithCredentialRequest pairs an allocation with its credential
type AllocationWithCredentialRequest struct {
	Allocation AllocationRequest `json:"allocation"`
	Credential CredentialRequest `json:"credential"`
}

// CommitmentGroupRequest represents a group of allocations spent from the
// same deposit commitment
type CommitmentGroupRequest struct {
	Allocations          []AllocationWithCredentialRequest `json:"allocations"`
	RootBeforeCommitment string                            `json:"root_before_commitment"`
	CommitmentsAfter     []string                          `json:"commitments_after"`
}

// Intent type discriminators
const (
	IntentTypeRawToken   = "RawToken"
	IntentTypeAssetToken = "AssetToken"
)

// IntentRequest represents the withdrawal intent (RawToken or AssetToken).
// - RawToken: { beneficiary, token_symbol }
// - AssetToken: { chain_id, adapter_id, token_id, beneficiary, asset_token_symbol }
type IntentRequest struct {
	Type string `json:"type"` // "RawToken" or "AssetToken"

	// Common fields
	Beneficiary *UniversalAddressRequest `json:"beneficiary,omitempty"`

	// RawToken fields
	TokenSymbol *string `json:"token_symbol,omitempty"` // e.g. "USDT", "USDC", "ETH"

	// AssetToken fields
	ChainID          *uint32 `json:"chain_id,omitempty"`   // Source chain ID (SLIP-44)
	AdapterID        *uint32 `json:"adapter_id,omitempty"` // Adapter ID
	TokenID          *uint16 `json:"token_id,omitempty"`   // Token ID
	AssetTokenSymbol *string `json:"asset_token_symbol,omitempty"`
}

// WithdrawProofRequest is the full withdraw proving input: the credential
// groups plus owner, intent and signature. Field naming on the wire belongs
// to the proving service; this struct only guarantees internal consistency.
type WithdrawProofRequest struct {
	CommitmentGroups  []CommitmentGroupRequest   `json:"commitment_groups"`
	OwnerAddress      UniversalAddressRequest    `json:"owner_address"`
	Intent            IntentRequest              `json:"intent"`
	Signature         MultichainSignatureRequest `json:"signature"`
	SourceTokenSymbol string                     `json:"source_token_symbol"`
	Lang              uint8                      `json:"lang"`
	SourceChainName   *string                    `json:"source_chain_name,omitempty"`
	TargetChainName   *string                    `json:"target_chain_name,omitempty"`
	MinOutput         *string                    `json:"min_output,omitempty"` // HEX, 32 bytes, defaults to 0
}
