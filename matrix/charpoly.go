package matrix

import (
	"fmt"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/field"
)

// CharPoly returns the coefficients of det(xI - A), highest degree first,
// so the result always starts with 1.
//
// It runs the Faddeev-LeVerrier recurrence
//
//	M_0 = 0, c_0 = 1
//	M_k = A (M_{k-1} + c_{k-1} I),  c_k = -tr(M_k) / k
//
// which divides by k = 1..n. When some k is zero in the field the recurrence
// is undefined and ErrEvaluation is returned.
func CharPoly[T field.Element[T]](a *Matrix[T]) ([]T, error) {
	if !a.IsSquare() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, a.rows, a.cols)
	}
	n := a.rows
	zero, one := a.zero.Zero(), a.zero.One()

	coeffs := make([]T, n+1)
	coeffs[0] = one
	m, err := New(n, n, zero)
	if err != nil {
		return nil, err
	}
	for k := 1; k <= n; k++ {
		kk := zero.FromInt(int64(k))
		if kk.IsZero() {
			return nil, fmt.Errorf("%w: characteristic of the field divides %d", braidcrypt.ErrEvaluation, k)
		}
		for i := 0; i < n; i++ {
			m.data[i*n+i] = m.data[i*n+i].Add(coeffs[k-1])
		}
		if m, err = a.Mul(m); err != nil {
			return nil, err
		}
		tr, err := m.Trace()
		if err != nil {
			return nil, err
		}
		coeffs[k] = tr.Neg().Div(kk)
	}
	return coeffs, nil
}
