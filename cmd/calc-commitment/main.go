// calc-commitment computes the commitment hash for a full allocation set,
// plus each allocation's leaf hash and nullifier.
package main

import (
	"flag"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"zkpay-sdk/internal/commitment"
	"zkpay-sdk/internal/config"
	"zkpay-sdk/internal/types"
	"zkpay-sdk/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "optional SDK config file (YAML)")
	depositIDHex := flag.String("deposit-id", "", "deposit ID (0x-prefixed, 32 bytes)")
	chainID := flag.Uint("chain-id", uint(utils.ChainEthereum), "deposit SLIP-44 chain ID")
	tokenKey := flag.String("token-key", "", "token key (defaults from config, e.g. USDT)")
	ownerAddr := flag.String("owner", "", "owner address (EVM hex or TRON base58)")
	ownerChainID := flag.Uint("owner-chain-id", 0, "owner SLIP-44 chain ID (defaults to -chain-id)")
	amountsArg := flag.String("amounts", "", "comma-separated allocation amounts in base units, seq order")
	flag.Parse()

	log := logrus.StandardLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if *depositIDHex == "" || *ownerAddr == "" || *amountsArg == "" {
		log.Fatal("-deposit-id, -owner and -amounts are required")
	}
	if *tokenKey == "" {
		*tokenKey = cfg.DefaultTokenKey
	}
	if *ownerChainID == 0 {
		*ownerChainID = *chainID
	}

	registry := cfg.ChainRegistry()
	ownerUniversal, err := utils.ToUniversalAddress(*ownerAddr, uint32(*ownerChainID))
	if err != nil {
		log.Fatalf("canonicalize owner address: %v", err)
	}
	owner := types.UniversalAddressRequest{
		ChainID: uint32(*ownerChainID),
		Address: ownerUniversal,
	}

	var allocations []commitment.Allocation
	for i, part := range strings.Split(*amountsArg, ",") {
		amount, ok := new(big.Int).SetString(strings.TrimSpace(part), 10)
		if !ok {
			log.Fatalf("invalid amount %q at position %d", part, i)
		}
		allocations = append(allocations, commitment.Allocation{Seq: uint8(i), Amount: amount})
	}

	depositID := common.HexToHash(*depositIDHex)
	root, err := commitment.Build(allocations, owner, depositID, uint32(*chainID), *tokenKey)
	if err != nil {
		log.Fatalf("build commitment: %v", err)
	}

	log.WithFields(logrus.Fields{
		"deposit_id": depositID.Hex(),
		"chain":      registry.ChainName(uint32(*chainID)),
		"token_key":  *tokenKey,
		"owner":      ownerUniversal,
	}).Info("inputs")

	for _, alloc := range allocations {
		leaf, err := commitment.HashAllocation(alloc)
		if err != nil {
			log.Fatalf("hash allocation %d: %v", alloc.Seq, err)
		}
		nullifier, err := commitment.Nullifier(root, alloc)
		if err != nil {
			log.Fatalf("nullifier %d: %v", alloc.Seq, err)
		}
		log.WithFields(logrus.Fields{
			"seq":       alloc.Seq,
			"amount":    alloc.Amount.String(),
			"leaf":      leaf.Hex(),
			"nullifier": nullifier.Hex(),
		}).Info("allocation")
	}

	log.WithField("commitment", root.Hex()).Info("commitment")
}
