// calc-nullifier derives the spend nullifier for one allocation:
// keccak256(commitment[32] || seq[1] || amount[32, BE]).
package main

import (
	"flag"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"zkpay-sdk/internal/commitment"
)

func main() {
	commitmentHex := flag.String("commitment", "", "commitment hash (0x-prefixed, 32 bytes)")
	seq := flag.Uint("seq", 0, "allocation sequence number (0-255)")
	amountStr := flag.String("amount", "", "allocation amount in base units (decimal)")
	flag.Parse()

	log := logrus.StandardLogger()
	if *commitmentHex == "" || *amountStr == "" {
		log.Fatal("both -commitment and -amount are required")
	}
	if *seq > 255 {
		log.Fatalf("seq %d out of range (0-255)", *seq)
	}

	amount, ok := new(big.Int).SetString(*amountStr, 10)
	if !ok {
		log.Fatalf("invalid amount: %s", *amountStr)
	}

	root := common.HexToHash(*commitmentHex)
	nullifier, err := commitment.Nullifier(root, commitment.Allocation{
		Seq:    uint8(*seq),
		Amount: amount,
	})
	if err != nil {
		log.Fatalf("derive nullifier: %v", err)
	}

	log.WithFields(logrus.Fields{
		"commitment": root.Hex(),
		"seq":        *seq,
		"amount":     amount.String(),
	}).Info("inputs")
	log.WithField("nullifier", nullifier.Hex()).Info("nullifier")
}
