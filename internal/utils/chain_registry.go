package utils

import "fmt"

// Well-known SLIP-44 chain IDs used by the protocol.
const (
	ChainEthereum uint32 = 60
	ChainTron     uint32 = 195
	ChainBSC      uint32 = 714
	ChainPolygon  uint32 = 966
)

// ChainInfo describes one supported chain.
type ChainInfo struct {
	SLIP44ChainID uint32 `json:"slip44_chain_id" yaml:"slip44_chain_id"` // protocol chain ID
	NativeChainID uint32 `json:"native_chain_id" yaml:"native_chain_id"` // chain-native ID (EVM chain ID for EVM chains)
	Name          string `json:"name" yaml:"name"`
	Symbol        string `json:"symbol" yaml:"symbol"` // native coin symbol
	IsEVM         bool   `json:"is_evm" yaml:"is_evm"`
}

// ChainRegistry maps between SLIP-44 and native chain IDs. A registry is
// immutable after construction, so lookups need no locking.
type ChainRegistry struct {
	bySlip44 map[uint32]*ChainInfo
	byNative map[uint32]*ChainInfo
}

// NewChainRegistry builds a registry from the given chains. Later entries
// with duplicate IDs override earlier ones.
func NewChainRegistry(chains []ChainInfo) *ChainRegistry {
	r := &ChainRegistry{
		bySlip44: make(map[uint32]*ChainInfo, len(chains)),
		byNative: make(map[uint32]*ChainInfo, len(chains)),
	}
	for i := range chains {
		chain := chains[i]
		r.bySlip44[chain.SLIP44ChainID] = &chain
		r.byNative[chain.NativeChainID] = &chain
	}
	return r
}

// DefaultChains are the chains the protocol ships with. Layer-2 chains use
// the custom convention 1000000 + native chain ID.
func DefaultChains() []ChainInfo {
	return []ChainInfo{
		{SLIP44ChainID: ChainEthereum, NativeChainID: 1, Name: "Ethereum", Symbol: "ETH", IsEVM: true},
		{SLIP44ChainID: ChainBSC, NativeChainID: 56, Name: "BSC", Symbol: "BNB", IsEVM: true},
		{SLIP44ChainID: ChainPolygon, NativeChainID: 137, Name: "Polygon", Symbol: "MATIC", IsEVM: true},
		{SLIP44ChainID: ChainTron, NativeChainID: 195, Name: "Tron", Symbol: "TRX", IsEVM: false},
		{SLIP44ChainID: 1042161, NativeChainID: 42161, Name: "Arbitrum", Symbol: "ETH", IsEVM: true},
		{SLIP44ChainID: 1000010, NativeChainID: 10, Name: "Optimism", Symbol: "ETH", IsEVM: true},
		{SLIP44ChainID: 1008453, NativeChainID: 8453, Name: "Base", Symbol: "ETH", IsEVM: true},
	}
}

// DefaultChainRegistry covers the protocol's built-in chains.
var DefaultChainRegistry = NewChainRegistry(DefaultChains())

// GetBySlip44 looks up a chain by SLIP-44 ID.
func (r *ChainRegistry) GetBySlip44(slip44 uint32) (*ChainInfo, bool) {
	info, ok := r.bySlip44[slip44]
	return info, ok
}

// GetByNative looks up a chain by native chain ID.
func (r *ChainRegistry) GetByNative(native uint32) (*ChainInfo, bool) {
	info, ok := r.byNative[native]
	return info, ok
}

// SLIP44ToNative converts a SLIP-44 chain ID to the native chain ID.
func (r *ChainRegistry) SLIP44ToNative(slip44 uint32) (uint32, error) {
	info, ok := r.GetBySlip44(slip44)
	if !ok {
		return 0, fmt.Errorf("unsupported SLIP-44 chain ID: %d", slip44)
	}
	return info.NativeChainID, nil
}

// NativeToSLIP44 converts a native chain ID to the SLIP-44 chain ID.
func (r *ChainRegistry) NativeToSLIP44(native uint32) (uint32, error) {
	info, ok := r.GetByNative(native)
	if !ok {
		return 0, fmt.Errorf("unsupported native chain ID: %d", native)
	}
	return info.SLIP44ChainID, nil
}

// IsEVMCompatible reports whether the SLIP-44 chain is EVM-compatible.
func (r *ChainRegistry) IsEVMCompatible(slip44 uint32) bool {
	info, ok := r.GetBySlip44(slip44)
	return ok && info.IsEVM
}

// ChainName returns a display name for the chain, or "Unknown(id)".
func (r *ChainRegistry) ChainName(slip44 uint32) string {
	if info, ok := r.GetBySlip44(slip44); ok {
		return info.Name
	}
	return fmt.Sprintf("Unknown(%d)", slip44)
}
