// Package withdraw assembles withdraw proving inputs: it groups the
// allocations being spent by their originating deposit, builds a credential
// for each one, and emits the structure the external proof/signing pipeline
// consumes. It validates structure only; cryptographic interpretation of
// the intent belongs to the proving collaborator.
package withdraw

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"zkpay-sdk/internal/commitment"
	"zkpay-sdk/internal/store"
	"zkpay-sdk/internal/types"
	"zkpay-sdk/internal/utils"
)

var (
	ErrInvalidAllocations       = errors.New("invalid allocations")
	ErrAllocationsNotIdle       = errors.New("allocations must be idle")
	ErrAllocationsDifferentUser = errors.New("allocations belong to different users")
	// ErrMissingCommitment means a deposit group has no published commitment
	// to anchor its credentials against. The deposit must go through the
	// commitment-publishing flow first.
	ErrMissingCommitment = errors.New("checkbook has no published commitment")
	ErrInvalidIntent     = errors.New("invalid intent")
)

// Input selects the allocations to spend and carries the withdrawal intent.
type Input struct {
	AllocationIDs []string
	Intent        types.IntentRequest
	Signature     types.MultichainSignatureRequest

	// CommitmentsAfter is opaque chained-commitment state, keyed by the
	// anchor commitment's 0x hex. It is passed through to the output
	// untouched; interpreting it is the proving service's job.
	CommitmentsAfter map[string][]string

	Lang      uint8
	MinOutput *string
}

// Assembler builds WithdrawProofRequest structures from stored checkbooks
// and allocations. It holds no mutable state of its own.
type Assembler struct {
	checkbooks  store.CheckbookStore
	allocations store.AllocationStore
	scheme      *commitment.Scheme
	registry    *utils.ChainRegistry
	log         *logrus.Entry
}

// NewAssembler wires an assembler to its stores, using the default
// commitment scheme and the built-in chain registry.
func NewAssembler(checkbooks store.CheckbookStore, allocations store.AllocationStore) *Assembler {
	return &Assembler{
		checkbooks:  checkbooks,
		allocations: allocations,
		scheme:      commitment.Default,
		registry:    utils.DefaultChainRegistry,
		log:         logrus.WithField("component", "withdraw"),
	}
}

// Build assembles the withdraw proving input for the selected allocations.
// Allocations may span multiple deposits; one commitment group is emitted
// per checkbook, sorted by deposit ID.
func (a *Assembler) Build(ctx context.Context, input Input) (*types.WithdrawProofRequest, error) {
	if len(input.AllocationIDs) == 0 {
		return nil, ErrInvalidAllocations
	}
	if err := validateIntent(input.Intent); err != nil {
		return nil, err
	}

	allocations := make([]*store.Allocation, 0, len(input.AllocationIDs))
	for _, id := range input.AllocationIDs {
		alloc, err := a.allocations.GetAllocation(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get allocation %s: %w", id, err)
		}
		if alloc.Status != store.AllocationStatusIdle {
			return nil, fmt.Errorf("%w: allocation %s is %s", ErrAllocationsNotIdle, id, alloc.Status)
		}
		allocations = append(allocations, alloc)
	}

	// Group by checkbook, keeping first-seen order for stable iteration.
	groups := make(map[string][]*store.Allocation)
	var checkbookIDs []string
	for _, alloc := range allocations {
		if _, seen := groups[alloc.CheckbookID]; !seen {
			checkbookIDs = append(checkbookIDs, alloc.CheckbookID)
		}
		groups[alloc.CheckbookID] = append(groups[alloc.CheckbookID], alloc)
	}

	checkbooks := make([]*store.Checkbook, len(checkbookIDs))
	for i, id := range checkbookIDs {
		cb, err := a.checkbooks.GetCheckbook(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get checkbook %s: %w", id, err)
		}
		checkbooks[i] = cb
	}
	if err := requireSameOwner(checkbooks); err != nil {
		return nil, err
	}
	first := checkbooks[0]

	sourceTokenSymbol := first.TokenKey
	for _, cb := range checkbooks[1:] {
		if cb.TokenKey != sourceTokenSymbol {
			a.log.WithFields(logrus.Fields{
				"checkbook": cb.ID,
				"token":     cb.TokenKey,
				"using":     sourceTokenSymbol,
			}).Warn("checkbooks use different tokens, using first")
		}
	}

	type keyedGroup struct {
		depositID common.Hash
		group     types.CommitmentGroupRequest
	}
	keyed := make([]keyedGroup, len(checkbooks))
	for i, cb := range checkbooks {
		group, err := a.buildGroup(ctx, cb, groups[cb.ID], input.CommitmentsAfter)
		if err != nil {
			return nil, err
		}
		keyed[i] = keyedGroup{depositID: cb.DepositID, group: *group}
	}

	// Groups are ordered by deposit ID so the output is independent of
	// allocation selection order. Key and group travel together.
	sort.SliceStable(keyed, func(i, j int) bool {
		return bytes.Compare(keyed[i].depositID.Bytes(), keyed[j].depositID.Bytes()) < 0
	})
	commitmentGroups := make([]types.CommitmentGroupRequest, len(keyed))
	for i, kg := range keyed {
		commitmentGroups[i] = kg.group
	}

	ownerUniversal, err := utils.ToUniversalAddress(first.Owner.Address, first.Owner.ChainID)
	if err != nil {
		return nil, fmt.Errorf("canonicalize owner address: %w", err)
	}

	// validateIntent already guaranteed a beneficiary.
	sourceChainName := a.registry.ChainName(first.SLIP44ChainID)
	targetChainName := a.registry.ChainName(input.Intent.Beneficiary.ChainID)

	return &types.WithdrawProofRequest{
		CommitmentGroups: commitmentGroups,
		OwnerAddress: types.UniversalAddressRequest{
			ChainID: first.Owner.ChainID,
			Address: ownerUniversal,
		},
		Intent:            input.Intent,
		Signature:         input.Signature,
		SourceTokenSymbol: sourceTokenSymbol,
		Lang:              input.Lang,
		SourceChainName:   &sourceChainName,
		TargetChainName:   &targetChainName,
		MinOutput:         input.MinOutput,
	}, nil
}

// buildGroup builds the commitment group for one checkbook: a credential
// for every allocation being spent, anchored on the checkbook's published
// commitment.
func (a *Assembler) buildGroup(
	ctx context.Context,
	cb *store.Checkbook,
	spending []*store.Allocation,
	commitmentsAfter map[string][]string,
) (*types.CommitmentGroupRequest, error) {
	if cb.Commitment == nil {
		return nil, fmt.Errorf("%w: checkbook %s", ErrMissingCommitment, cb.ID)
	}
	anchor := cb.Commitment.Hex()

	all, err := a.allocations.FindByCheckbook(ctx, cb.ID)
	if err != nil {
		return nil, fmt.Errorf("find allocations of checkbook %s: %w", cb.ID, err)
	}

	set := make([]commitment.Allocation, len(all))
	indexBySeq := make(map[uint8]int, len(all))
	for i, rec := range all {
		set[i] = commitment.Allocation{Seq: rec.Seq, Amount: rec.Amount}
		indexBySeq[rec.Seq] = i
	}
	if !commitment.ValidateSequence(set) {
		return nil, fmt.Errorf("%w: checkbook %s has a gapped allocation set", commitment.ErrSequenceInvalid, cb.ID)
	}

	pairs := make([]types.AllocationWithCredentialRequest, len(spending))
	for i, alloc := range spending {
		idx, ok := indexBySeq[alloc.Seq]
		if !ok {
			return nil, fmt.Errorf("%w: allocation %s not in checkbook set", ErrInvalidAllocations, alloc.ID)
		}
		cred, err := a.scheme.BuildCredential(set, idx, cb.DepositID, cb.SLIP44ChainID, cb.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("credential for allocation %s: %w", alloc.ID, err)
		}
		amountHex, err := hexAmount(alloc.Amount)
		if err != nil {
			return nil, fmt.Errorf("allocation %s: %w", alloc.ID, err)
		}
		pairs[i] = types.AllocationWithCredentialRequest{
			Allocation: types.AllocationRequest{Seq: alloc.Seq, Amount: amountHex},
			Credential: credentialRequest(cred),
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Allocation.Seq < pairs[j].Allocation.Seq
	})

	after := commitmentsAfter[anchor]
	if after == nil {
		after = []string{}
	}
	return &types.CommitmentGroupRequest{
		Allocations:          pairs,
		RootBeforeCommitment: anchor,
		CommitmentsAfter:     after,
	}, nil
}

// requireSameOwner checks that every checkbook belongs to the same owner.
// EVM addresses compare case-insensitively.
func requireSameOwner(checkbooks []*store.Checkbook) error {
	first := checkbooks[0].Owner
	for _, cb := range checkbooks[1:] {
		if cb.Owner.ChainID != first.ChainID ||
			!strings.EqualFold(cb.Owner.Address, first.Address) {
			return fmt.Errorf("%w: %s (chain %d) vs %s (chain %d)", ErrAllocationsDifferentUser,
				first.Address, first.ChainID, cb.Owner.Address, cb.Owner.ChainID)
		}
	}
	return nil
}

// validateIntent checks structural well-formedness of the intent. It never
// reinterprets the intent cryptographically.
func validateIntent(intent types.IntentRequest) error {
	if intent.Beneficiary == nil {
		return fmt.Errorf("%w: beneficiary is required", ErrInvalidIntent)
	}
	if !utils.IsUniversalAddress(intent.Beneficiary.Address) &&
		!utils.IsEvmAddress(intent.Beneficiary.Address) &&
		!utils.IsTronAddress(intent.Beneficiary.Address) {
		return fmt.Errorf("%w: unrecognized beneficiary address %q", ErrInvalidIntent, intent.Beneficiary.Address)
	}

	switch intent.Type {
	case types.IntentTypeRawToken:
		if intent.TokenSymbol == nil || *intent.TokenSymbol == "" {
			return fmt.Errorf("%w: RawToken requires token_symbol", ErrInvalidIntent)
		}
	case types.IntentTypeAssetToken:
		if intent.ChainID == nil || intent.AdapterID == nil || intent.TokenID == nil {
			return fmt.Errorf("%w: AssetToken requires chain_id, adapter_id and token_id", ErrInvalidIntent)
		}
		if intent.AssetTokenSymbol == nil || *intent.AssetTokenSymbol == "" {
			return fmt.Errorf("%w: AssetToken requires asset_token_symbol", ErrInvalidIntent)
		}
	default:
		return fmt.Errorf("%w: unsupported intent type %q", ErrInvalidIntent, intent.Type)
	}
	return nil
}

// hexAmount serializes an amount as 64 hex chars (32 bytes, big-endian),
// the format the proving service expects.
func hexAmount(amount *big.Int) (string, error) {
	if amount == nil || amount.Sign() < 0 || amount.BitLen() > 256 {
		return "", fmt.Errorf("%w: %v", commitment.ErrOversizedAmount, amount)
	}
	return fmt.Sprintf("%064x", amount), nil
}

// credentialRequest converts a core credential to its wire form. Leaf
// hashes and the deposit ID are plain hex without the 0x prefix.
func credentialRequest(cred *commitment.Credential) types.CredentialRequest {
	return types.CredentialRequest{
		LeftHashes:  hashesToHex(cred.LeftHashes),
		RightHashes: hashesToHex(cred.RightHashes),
		DepositID:   hex.EncodeToString(cred.DepositID.Bytes()),
		ChainID:     cred.ChainID,
		TokenKey:    cred.TokenKey,
	}
}

func hashesToHex(hashes []common.Hash) []string {
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = hex.EncodeToString(h.Bytes())
	}
	return out
}
