package burau

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/matrix"
)

// checkGenerator validates a single letter of B_n.
func checkGenerator(n, g int) error {
	if g == 0 || g >= n || g <= -n {
		return fmt.Errorf("%w: generator %d outside B_%d", braidcrypt.ErrIndexOutOfRange, g, n)
	}
	return nil
}

// columnStep right-multiplies m by the colored Burau matrix of one
// generator acting on columns c-1, c and c+1. scale multiplies an entry by
// t for a positive letter and by t^-1 for a negative one.
//
//	positive: col[c-1] += t*x   col[c] = -t*x      col[c+1] += x
//	negative: col[c-1] += x     col[c] = -x/t      col[c+1] += x/t
func columnStep[R matrix.Ring[R]](m *matrix.Matrix[R], c int, positive bool, scale func(R) R) {
	for r := 0; r < m.Rows(); r++ {
		old := m.At(r, c)
		if old.IsZero() {
			continue
		}
		s := scale(old)
		left, right := s, old
		if !positive {
			left, right = old, s
		}
		if c > 0 {
			m.Set(r, c-1, m.At(r, c-1).Add(left))
		}
		m.Set(r, c, s.Neg())
		m.Set(r, c+1, m.At(r, c+1).Add(right))
	}
}
