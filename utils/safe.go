package utils

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Decoder and allocator limits. Every length read from untrusted bytes is
// checked against one of these before memory is reserved for it.
const (
	MaxBraidIndex     = 1 << 10
	MaxWordLength     = 1 << 22
	MaxMatrixElements = 1 << 24
	MaxMessageSize    = 1 << 20
	MaxPayloadLength  = 1 << 28
)

var (
	ErrOverflow      = errors.New("integer overflow")
	ErrExceedsLimit  = errors.New("value exceeds allowed limit")
	ErrInvalidLength = errors.New("invalid length")
)

// bounded reports why n is not in [0, limit], or nil.
func bounded(n, limit int) error {
	switch {
	case n < 0:
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	case n > limit:
		return fmt.Errorf("%w: %d > %d", ErrExceedsLimit, n, limit)
	}
	return nil
}

// SafeMultiply returns a*b for non-negative operands, or ErrOverflow.
func SafeMultiply(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: %d x %d", ErrInvalidLength, a, b)
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("%w: %d x %d", ErrOverflow, a, b)
	}
	return a * b, nil
}

// SafeMakeIntSlice allocates count ints once count passed CheckLength.
func SafeMakeIntSlice(count, maxAllowed int) ([]int, error) {
	if err := bounded(count, maxAllowed); err != nil {
		return nil, err
	}
	return make([]int, count), nil
}

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	return bounded(length, maxAllowed)
}

// CheckPositive names the parameter in the error.
func CheckPositive(value int, name string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, value)
	}
	return nil
}

// CheckRange validates a [lo, hi] interval of non-negative bounds.
func CheckRange(lo, hi int, name string) error {
	if lo < 0 || hi < 0 {
		return fmt.Errorf("%s bounds must be non-negative, got [%d, %d]", name, lo, hi)
	}
	if lo > hi {
		return fmt.Errorf("%s minimum %d exceeds maximum %d", name, lo, hi)
	}
	return nil
}

// SafeReadLength decodes the little-endian uint32 at data[offset:] and
// returns it with the offset just past it.
func SafeReadLength(data []byte, offset, maxAllowed int) (length int, newOffset int, err error) {
	if err := ValidateSliceAccess(data, offset, 4); err != nil {
		return 0, offset, fmt.Errorf("length field: %w", err)
	}
	raw := uint64(binary.LittleEndian.Uint32(data[offset:]))
	if maxAllowed < 0 || raw > uint64(maxAllowed) {
		return 0, offset, fmt.Errorf("%w: length %d > %d", ErrExceedsLimit, raw, maxAllowed)
	}
	return int(raw), offset + 4, nil
}

// ValidateSliceAccess checks that data[offset:offset+size] is in range.
func ValidateSliceAccess(data []byte, offset, size int) error {
	if offset < 0 || size < 0 {
		return ErrInvalidLength
	}
	end := offset + size
	if end < offset {
		return ErrOverflow
	}
	if end > len(data) {
		return fmt.Errorf("%w: need %d bytes at %d, have %d", ErrInvalidLength, size, offset, len(data))
	}
	return nil
}
