package rewrite

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// Block is a contiguous range of generators [Start, End], 1-based.
type Block struct {
	Start, End int
}

// RandomPartition splits total into sizes between minSize and maxSize.
// Each part starts at minSize and grows by one while a fair coin shows
// heads and it is below maxSize. The last part is cut to what remains.
// The distribution is not uniform over partitions.
func RandomPartition(total, minSize, maxSize int, rng *utils.Source) ([]int, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: partition of %d", braidcrypt.ErrValidation, total)
	}
	if err := utils.CheckPositive(minSize, "minimum part size"); err != nil {
		return nil, fmt.Errorf("%w: %v", braidcrypt.ErrValidation, err)
	}
	if err := utils.CheckRange(minSize, maxSize, "part size"); err != nil {
		return nil, fmt.Errorf("%w: %v", braidcrypt.ErrValidation, err)
	}
	var out []int
	for rest := total; rest > 0; {
		size := minSize
		for size < maxSize && rng.Bool() {
			size++
		}
		size = min(size, rest)
		out = append(out, size)
		rest -= size
	}
	return out, nil
}

// BlocksFromSizes lays sizes out over the generators 1..n-1.
func BlocksFromSizes(n int, sizes []int) ([]Block, error) {
	blocks := make([]Block, 0, len(sizes))
	start := 1
	for _, s := range sizes {
		if s < 1 {
			return nil, fmt.Errorf("%w: empty block", braidcrypt.ErrValidation)
		}
		blocks = append(blocks, Block{Start: start, End: start + s - 1})
		start += s
	}
	if start != n {
		return nil, fmt.Errorf("%w: blocks cover %d generators of B_%d", braidcrypt.ErrValidation, start-1, n)
	}
	return blocks, nil
}

// RandomBlocks partitions the generators of B_n into random blocks.
func RandomBlocks(n, minSize, maxSize int, rng *utils.Source) ([]Block, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: braid index %d below 2", braidcrypt.ErrValidation, n)
	}
	sizes, err := RandomPartition(n-1, minSize, maxSize, rng)
	if err != nil {
		return nil, err
	}
	return BlocksFromSizes(n, sizes)
}

func validateBlocks(n int, blocks []Block) error {
	next := 1
	for _, b := range blocks {
		if b.Start != next || b.End < b.Start {
			return fmt.Errorf("%w: block [%d,%d] does not continue at %d", braidcrypt.ErrValidation, b.Start, b.End, next)
		}
		next = b.End + 1
	}
	if next != n {
		return fmt.Errorf("%w: blocks cover %d generators of B_%d", braidcrypt.ErrValidation, next-1, n)
	}
	return nil
}
