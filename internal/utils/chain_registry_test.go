package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultChainRegistryLookups(t *testing.T) {
	native, err := DefaultChainRegistry.SLIP44ToNative(ChainEthereum)
	require.NoError(t, err)
	require.Equal(t, uint32(1), native)

	slip44, err := DefaultChainRegistry.NativeToSLIP44(56)
	require.NoError(t, err)
	require.Equal(t, ChainBSC, slip44)

	_, err = DefaultChainRegistry.SLIP44ToNative(9999)
	require.Error(t, err)
	_, err = DefaultChainRegistry.NativeToSLIP44(424242)
	require.Error(t, err)
}

func TestLayer2Convention(t *testing.T) {
	// L2 chains use 1000000 + native chain ID as the SLIP-44 slot.
	for _, native := range []uint32{42161, 10, 8453} {
		slip44, err := DefaultChainRegistry.NativeToSLIP44(native)
		require.NoError(t, err)
		assert.Equal(t, 1000000+native, slip44)
	}
}

func TestIsEVMCompatible(t *testing.T) {
	assert.True(t, DefaultChainRegistry.IsEVMCompatible(ChainEthereum))
	assert.True(t, DefaultChainRegistry.IsEVMCompatible(ChainPolygon))
	assert.False(t, DefaultChainRegistry.IsEVMCompatible(ChainTron))
	assert.False(t, DefaultChainRegistry.IsEVMCompatible(9999))
}

func TestChainName(t *testing.T) {
	assert.Equal(t, "Tron", DefaultChainRegistry.ChainName(ChainTron))
	assert.Equal(t, "Unknown(9999)", DefaultChainRegistry.ChainName(9999))
}

func TestNewChainRegistryOverride(t *testing.T) {
	chains := append(DefaultChains(), ChainInfo{
		SLIP44ChainID: ChainEthereum, NativeChainID: 11155111, Name: "Sepolia", Symbol: "ETH", IsEVM: true,
	})
	r := NewChainRegistry(chains)

	info, ok := r.GetBySlip44(ChainEthereum)
	require.True(t, ok)
	assert.Equal(t, "Sepolia", info.Name)
	assert.Equal(t, uint32(11155111), info.NativeChainID)
}
