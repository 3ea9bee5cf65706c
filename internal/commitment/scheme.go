package commitment

import (
	"github.com/ethereum/go-ethereum/crypto"
)

// HashFn computes a 32-byte digest over the concatenation of its inputs.
// The production hash is Keccak-256; it is injected rather than hard-wired
// so conformance tests can cross-check against a second implementation.
type HashFn func(data ...[]byte) []byte

// Scheme binds the hash function to the commitment formulas. It carries no
// mutable state; a single Scheme may be shared by any number of goroutines.
type Scheme struct {
	hash HashFn
}

// NewScheme returns a Scheme using the given hash function.
func NewScheme(hash HashFn) *Scheme {
	return &Scheme{hash: hash}
}

// Default is the production scheme: Keccak-256 via go-ethereum.
var Default = NewScheme(crypto.Keccak256)
