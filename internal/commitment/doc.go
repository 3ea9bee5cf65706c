// Package commitment implements the deposit-allocation commitment scheme:
// leaf hashing for individual allocations, the commitment hash binding an
// allocation set to its deposit and owner, per-allocation nullifiers, and
// the sibling-hash credentials that reconstruct a commitment from a single
// allocation without the rest of the set.
//
// Every operation is a pure function of its inputs. The byte layouts are
// fixed by the proving service and must not drift:
//
//	leaf       = H(seq[1] || amount[32, BE])
//	commitment = H(depositId[32] || chainId[4, BE] || H(tokenKey)[32] ||
//	               ownerChainId[4, BE] || owner[32] || leaf_0 .. leaf_n-1)
//	nullifier  = H(commitment[32] || seq[1] || amount[32, BE])
//
// H is Keccak-256 by default and injectable for testing.
package commitment
