// verify-vectors is the conformance harness: it recomputes commitments,
// leaf hashes and nullifiers for fixed vectors and compares them against
// the published reference values. Extra vectors can be supplied as YAML.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"zkpay-sdk/internal/commitment"
	"zkpay-sdk/internal/types"
)

// vectorAllocation is one allocation of a conformance vector.
type vectorAllocation struct {
	Seq    uint8  `yaml:"seq"`
	Amount string `yaml:"amount"` // decimal base units
}

// vector is one published conformance case.
type vector struct {
	Name         string             `yaml:"name"`
	DepositID    string             `yaml:"deposit_id"`
	ChainID      uint32             `yaml:"chain_id"`
	TokenKey     string             `yaml:"token_key"`
	OwnerChainID uint32             `yaml:"owner_chain_id"`
	Owner        string             `yaml:"owner"` // 32-byte universal hex
	Allocations  []vectorAllocation `yaml:"allocations"`

	Commitment string   `yaml:"commitment"`
	Leaves     []string `yaml:"leaves,omitempty"`
	Nullifiers []string `yaml:"nullifiers,omitempty"`
}

type vectorFile struct {
	Vectors []vector `yaml:"vectors"`
}

// builtinVectors are the reference vectors every release must reproduce.
func builtinVectors() []vector {
	return []vector{
		{
			Name:         "eth-usdt-three-allocations",
			DepositID:    "0x1111111111111111111111111111111111111111111111111111111111111111",
			ChainID:      60,
			TokenKey:     "USDT",
			OwnerChainID: 60,
			Owner:        "0x000000000000000000000000742d35cc6634c0532925a3b844bc454e4438f44e",
			Allocations: []vectorAllocation{
				{Seq: 0, Amount: "1000000000000000000"},
				{Seq: 1, Amount: "500000000000000000"},
				{Seq: 2, Amount: "2000000000000000000"},
			},
			Commitment: "0x698cb72e4febceff276b78f43c7e5bada5d1a03cc2a91185a28e0c19561199a7",
			Leaves: []string{
				"0xbba19f7b6bf933f6afced6fc8320b406d457245dd8d0f6132addd8b76b4e8cff",
				"0x9a142274282368aaaaac27c814c3127cbd6b5ef645e418e29b24dc55d6ded30d",
				"0xe790ea07431bb49c221f03c9813f37d49ddcd2eabd51b73d2a00f1dfcfa8f87b",
			},
			Nullifiers: []string{
				"0x571680231167f0117256c922026c2204a3b975a3a75ddd9b9a06e5e903795407",
				"0xabb939af4b6598e447c849d3a8237cd1b1575af3c422ba7c7c522fe423ea3caf",
				"0x3377a49ec7f503d1c6b078eadd1638d106db18a2f3cea33555c5482629b86eef",
			},
		},
		{
			Name:         "bsc-usdc-single-allocation",
			DepositID:    "0x2222222222222222222222222222222222222222222222222222222222222222",
			ChainID:      714,
			TokenKey:     "USDC",
			OwnerChainID: 714,
			Owner:        "0x0000000000000000000000006f3995e2e40ca58adcbd47a2edad192e43d98638",
			Allocations: []vectorAllocation{
				{Seq: 0, Amount: "339300000000000000"},
			},
			Commitment: "0x5cc82ab9a74fcd341dbbae04fdc6646ea242db124c0bdc7be83b6281ca716b9a",
			Nullifiers: []string{
				"0x826fe718a8b89031ba0ec8bd07fad03a3b0060eff09ee2aef5d3e1e5f1d2d24f",
			},
		},
	}
}

func main() {
	vectorsPath := flag.String("vectors", "", "optional YAML file with extra vectors")
	flag.Parse()

	log := logrus.StandardLogger()

	vectors := builtinVectors()
	if *vectorsPath != "" {
		data, err := os.ReadFile(*vectorsPath)
		if err != nil {
			log.Fatalf("read vectors: %v", err)
		}
		var extra vectorFile
		if err := yaml.Unmarshal(data, &extra); err != nil {
			log.Fatalf("parse vectors: %v", err)
		}
		vectors = append(vectors, extra.Vectors...)
	}

	failed := 0
	for _, v := range vectors {
		if err := verify(v); err != nil {
			log.WithField("vector", v.Name).Errorf("FAIL: %v", err)
			failed++
			continue
		}
		log.WithField("vector", v.Name).Info("OK")
	}
	if failed > 0 {
		log.Fatalf("%d of %d vectors failed", failed, len(vectors))
	}
}

func verify(v vector) error {
	owner := types.UniversalAddressRequest{ChainID: v.OwnerChainID, Address: v.Owner}
	depositID := common.HexToHash(v.DepositID)

	allocations := make([]commitment.Allocation, len(v.Allocations))
	for i, a := range v.Allocations {
		amount, ok := new(big.Int).SetString(a.Amount, 10)
		if !ok {
			return fmt.Errorf("invalid amount %q", a.Amount)
		}
		allocations[i] = commitment.Allocation{Seq: a.Seq, Amount: amount}
	}

	root, err := commitment.Build(allocations, owner, depositID, v.ChainID, v.TokenKey)
	if err != nil {
		return err
	}
	if root != common.HexToHash(v.Commitment) {
		return fmt.Errorf("commitment mismatch: got %s, want %s", root.Hex(), v.Commitment)
	}

	for i, want := range v.Leaves {
		leaf, err := commitment.HashAllocation(allocations[i])
		if err != nil {
			return err
		}
		if leaf != common.HexToHash(want) {
			return fmt.Errorf("leaf %d mismatch: got %s, want %s", i, leaf.Hex(), want)
		}
	}

	for i, want := range v.Nullifiers {
		nullifier, err := commitment.Nullifier(root, allocations[i])
		if err != nil {
			return err
		}
		if nullifier != common.HexToHash(want) {
			return fmt.Errorf("nullifier %d mismatch: got %s, want %s", i, nullifier.Hex(), want)
		}
	}
	return nil
}

