package store

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"zkpay-sdk/internal/commitment"
	"zkpay-sdk/internal/types"
)

// CheckbookStore supplies deposit metadata and published commitments.
type CheckbookStore interface {
	GetCheckbook(ctx context.Context, id string) (*Checkbook, error)
}

// AllocationStore supplies allocation records.
type AllocationStore interface {
	GetAllocation(ctx context.Context, id string) (*Allocation, error)
	// FindByCheckbook returns every allocation of a checkbook, ordered by
	// seq ascending.
	FindByCheckbook(ctx context.Context, checkbookID string) ([]*Allocation, error)
}

// Memory is an in-process implementation of both stores. Safe for
// concurrent use.
type Memory struct {
	mu          sync.RWMutex
	checkbooks  map[string]*Checkbook
	allocations map[string]*Allocation

	scheme *commitment.Scheme
	log    *logrus.Entry
}

// NewMemory returns an empty store using the default commitment scheme.
func NewMemory() *Memory {
	return &Memory{
		checkbooks:  make(map[string]*Checkbook),
		allocations: make(map[string]*Allocation),
		scheme:      commitment.Default,
		log:         logrus.WithField("component", "store"),
	}
}

// CreateCheckbook registers a deposit and returns its record.
func (m *Memory) CreateCheckbook(ctx context.Context, depositID common.Hash, chainID uint32, tokenKey string, owner types.UniversalAddressRequest, amount *big.Int) (*Checkbook, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("invalid deposit amount: %v", amount)
	}
	now := time.Now()
	cb := &Checkbook{
		ID:            uuid.New().String(),
		DepositID:     depositID,
		SLIP44ChainID: chainID,
		TokenKey:      tokenKey,
		Owner:         owner,
		Amount:        new(big.Int).Set(amount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	m.mu.Lock()
	m.checkbooks[cb.ID] = cb
	m.mu.Unlock()

	return cloneCheckbook(cb), nil
}

// CreateAllocations replaces a checkbook's allocation set with one
// allocation per amount, seq assigned by position. Any previously derived
// commitment and nullifiers become stale, so the checkbook commitment is
// cleared.
func (m *Memory) CreateAllocations(ctx context.Context, checkbookID string, amounts []*big.Int) ([]*Allocation, error) {
	if len(amounts) == 0 || len(amounts) > commitment.MaxAllocations {
		return nil, fmt.Errorf("allocation count %d out of range [1,%d]", len(amounts), commitment.MaxAllocations)
	}

	// Validate everything before touching existing state so a failed call
	// leaves the old set and its published commitment intact.
	for i, amount := range amounts {
		if amount == nil || amount.Sign() <= 0 {
			return nil, fmt.Errorf("allocation %d: invalid amount %v", i, amount)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cb, ok := m.checkbooks[checkbookID]
	if !ok {
		return nil, fmt.Errorf("checkbook %s: %w", checkbookID, ErrNotFound)
	}

	for id, alloc := range m.allocations {
		if alloc.CheckbookID == checkbookID {
			delete(m.allocations, id)
		}
	}
	cb.Commitment = nil
	cb.UpdatedAt = time.Now()

	out := make([]*Allocation, len(amounts))
	for i, amount := range amounts {
		now := time.Now()
		alloc := &Allocation{
			ID:          uuid.New().String(),
			CheckbookID: checkbookID,
			Seq:         uint8(i),
			Amount:      new(big.Int).Set(amount),
			Status:      AllocationStatusIdle,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		m.allocations[alloc.ID] = alloc
		out[i] = cloneAllocation(alloc)
	}
	return out, nil
}

// FinalizeCommitment computes the checkbook's commitment over its full
// allocation set, derives every allocation's nullifier from it, and records
// both. The commitment is computed once and fanned out per allocation.
func (m *Memory) FinalizeCommitment(ctx context.Context, checkbookID string) (common.Hash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cb, ok := m.checkbooks[checkbookID]
	if !ok {
		return common.Hash{}, fmt.Errorf("checkbook %s: %w", checkbookID, ErrNotFound)
	}

	records := m.allocationsOfLocked(checkbookID)
	allocs := make([]commitment.Allocation, len(records))
	for i, rec := range records {
		allocs[i] = commitment.Allocation{Seq: rec.Seq, Amount: rec.Amount}
	}

	root, err := m.scheme.Build(allocs, cb.Owner, cb.DepositID, cb.SLIP44ChainID, cb.TokenKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("build commitment for checkbook %s: %w", checkbookID, err)
	}
	for _, rec := range records {
		n, err := m.scheme.Nullifier(root, commitment.Allocation{Seq: rec.Seq, Amount: rec.Amount})
		if err != nil {
			return common.Hash{}, fmt.Errorf("nullifier for seq %d: %w", rec.Seq, err)
		}
		rec.Nullifier = &n
		rec.UpdatedAt = time.Now()
	}

	cb.Commitment = &root
	cb.UpdatedAt = time.Now()

	m.log.WithFields(logrus.Fields{
		"checkbook":   checkbookID,
		"commitment":  root.Hex(),
		"allocations": len(records),
	}).Debug("commitment finalized")
	return root, nil
}

// GetCheckbook implements CheckbookStore.
func (m *Memory) GetCheckbook(ctx context.Context, id string) (*Checkbook, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cb, ok := m.checkbooks[id]
	if !ok {
		return nil, fmt.Errorf("checkbook %s: %w", id, ErrNotFound)
	}
	return cloneCheckbook(cb), nil
}

// GetAllocation implements AllocationStore.
func (m *Memory) GetAllocation(ctx context.Context, id string) (*Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	alloc, ok := m.allocations[id]
	if !ok {
		return nil, fmt.Errorf("allocation %s: %w", id, ErrNotFound)
	}
	return cloneAllocation(alloc), nil
}

// FindByCheckbook implements AllocationStore.
func (m *Memory) FindByCheckbook(ctx context.Context, checkbookID string) ([]*Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := m.allocationsOfLocked(checkbookID)
	out := make([]*Allocation, len(records))
	for i, rec := range records {
		out[i] = cloneAllocation(rec)
	}
	return out, nil
}

// UpdateStatus moves the given allocations to a new status.
func (m *Memory) UpdateStatus(ctx context.Context, ids []string, status AllocationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		alloc, ok := m.allocations[id]
		if !ok {
			return fmt.Errorf("allocation %s: %w", id, ErrNotFound)
		}
		alloc.Status = status
		alloc.UpdatedAt = time.Now()
	}
	return nil
}

// allocationsOfLocked returns the live records of a checkbook sorted by
// seq. Caller holds the lock.
func (m *Memory) allocationsOfLocked(checkbookID string) []*Allocation {
	var records []*Allocation
	for _, alloc := range m.allocations {
		if alloc.CheckbookID == checkbookID {
			records = append(records, alloc)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })
	return records
}

func cloneCheckbook(cb *Checkbook) *Checkbook {
	out := *cb
	out.Amount = new(big.Int).Set(cb.Amount)
	if cb.Commitment != nil {
		c := *cb.Commitment
		out.Commitment = &c
	}
	return &out
}

func cloneAllocation(alloc *Allocation) *Allocation {
	out := *alloc
	out.Amount = new(big.Int).Set(alloc.Amount)
	if alloc.Nullifier != nil {
		n := *alloc.Nullifier
		out.Nullifier = &n
	}
	return &out
}
