// Package store keeps checkbook and allocation records for the SDK's
// in-process state. Backend persistence and sync are external concerns;
// these stores exist so the withdraw assembler and the CLI tools have a
// consistent source for "all allocations of a deposit".
package store

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"zkpay-sdk/internal/types"
)

// ErrNotFound is returned when a checkbook or allocation does not exist.
var ErrNotFound = errors.New("record not found")

// AllocationStatus tracks an allocation through its spend lifecycle.
type AllocationStatus string

const (
	AllocationStatusIdle    AllocationStatus = "idle"    // spendable
	AllocationStatusPending AllocationStatus = "pending" // locked by an in-flight withdraw
	AllocationStatusUsed    AllocationStatus = "used"    // nullifier published on chain
)

// Checkbook is a deposit with its allocation plan: one published commitment
// covering an ordered set of allocations.
type Checkbook struct {
	ID string // UUID

	DepositID     common.Hash // 32-byte deposit identifier
	SLIP44ChainID uint32
	TokenKey      string // e.g. "USDT"
	Owner         types.UniversalAddressRequest
	Amount        *big.Int // total deposit amount

	// Commitment is nil until the commitment for the full allocation set
	// has been computed and published.
	Commitment *common.Hash

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Allocation is one earmarked slice of a checkbook's deposit.
type Allocation struct {
	ID          string // UUID
	CheckbookID string

	Seq    uint8
	Amount *big.Int

	Status AllocationStatus
	// Nullifier is nil until the checkbook commitment is finalized.
	Nullifier *common.Hash

	CreatedAt time.Time
	UpdatedAt time.Time
}
