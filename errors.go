package braidcrypt

import "errors"

// Sentinel errors. Failures are returned wrapped with context, test them
// with errors.Is.
var (
	// ErrValidation reports malformed construction arguments.
	ErrValidation = errors.New("braidcrypt: validation failed")

	// ErrDimensionMismatch reports operands whose shapes do not agree.
	ErrDimensionMismatch = errors.New("braidcrypt: dimension mismatch")

	// ErrIndexOutOfRange reports a braid generator or strand outside the group.
	ErrIndexOutOfRange = errors.New("braidcrypt: index out of range")

	// ErrEvaluation reports an arithmetic failure such as division by zero.
	ErrEvaluation = errors.New("braidcrypt: evaluation failed")

	// ErrExhausted reports a bounded search that ran out of attempts.
	ErrExhausted = errors.New("braidcrypt: attempt budget exhausted")

	// ErrProtocolInvariant reports an internal consistency check that failed.
	// It indicates a library bug, never bad user input.
	ErrProtocolInvariant = errors.New("braidcrypt: protocol invariant violated")

	// ErrNotPure reports an operation that needs a pure braid state.
	ErrNotPure = errors.New("braidcrypt: permutation is not trivial")

	// ErrMalformed reports bytes that do not decode.
	ErrMalformed = errors.New("braidcrypt: malformed encoding")
)
