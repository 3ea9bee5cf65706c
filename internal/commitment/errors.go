package commitment

import "errors"

// Validation errors. All of them are raised before any hashing happens;
// none of them is retryable.
var (
	// ErrSequenceInvalid means the allocation seq values are not a dense,
	// zero-based, consecutive set, or the set is empty.
	ErrSequenceInvalid = errors.New("allocation sequence invalid")

	// ErrMalformedAddress means an address cannot be canonicalized to the
	// required 32-byte form.
	ErrMalformedAddress = errors.New("malformed address")

	// ErrOversizedAmount means an amount cannot be serialized as a 32-byte
	// unsigned big-endian integer.
	ErrOversizedAmount = errors.New("amount does not fit in 32 bytes")
)
