// Package matrix implements dense matrices over a generic ring. The same
// code holds field values for E-multiplication and Laurent polynomials for
// the colored Burau representation.
package matrix

import (
	"fmt"
	"strings"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// Errors returned by this package. They wrap the module sentinels, so
// errors.Is matches either.
var (
	ErrBadShape  = fmt.Errorf("%w: matrix: invalid shape", braidcrypt.ErrValidation)
	ErrMismatch  = fmt.Errorf("%w: matrix: incompatible operands", braidcrypt.ErrDimensionMismatch)
	ErrNonSquare = fmt.Errorf("%w: matrix: matrix is not square", braidcrypt.ErrDimensionMismatch)
)

// Ring is the arithmetic a matrix entry needs.
type Ring[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Neg() T
	IsZero() bool
	Equal(T) bool
	String() string
}

// Matrix is a rows x cols array stored row-major.
type Matrix[T Ring[T]] struct {
	rows, cols int
	zero       T
	data       []T
}

// New returns a rows x cols matrix filled with zero.
func New[T Ring[T]](rows, cols int, zero T) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	size, err := utils.SafeMultiply(rows, cols)
	if err != nil || size > utils.MaxMatrixElements {
		return nil, fmt.Errorf("%w: %dx%d exceeds the element limit", ErrBadShape, rows, cols)
	}
	data := make([]T, size)
	for i := range data {
		data[i] = zero
	}
	return &Matrix[T]{rows: rows, cols: cols, zero: zero, data: data}, nil
}

// Identity returns the n x n identity matrix.
func Identity[T Ring[T]](n int, zero, one T) (*Matrix[T], error) {
	m, err := New(n, n, zero)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = one
	}
	return m, nil
}

// FromRows copies a rectangular slice of rows.
func FromRows[T Ring[T]](zero T, rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadShape)
	}
	m, err := New(len(rows), len(rows[0]), zero)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrBadShape, i, len(r), m.cols)
		}
		copy(m.data[i*m.cols:], r)
	}
	return m, nil
}

// Rows is the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols is the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// IsSquare reports whether Rows equals Cols.
func (m *Matrix[T]) IsSquare() bool { return m.rows == m.cols }

// At returns entry (i, j). Like slice indexing it panics out of range.
func (m *Matrix[T]) At(i, j int) T {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set stores v at (i, j). Like slice indexing it panics out of range.
func (m *Matrix[T]) Set(i, j int, v T) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix[T]) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of range %dx%d", i, j, m.rows, m.cols))
	}
}

// Clone returns a deep copy.
func (m *Matrix[T]) Clone() *Matrix[T] {
	return &Matrix[T]{rows: m.rows, cols: m.cols, zero: m.zero, data: append([]T(nil), m.data...)}
}

// Equal compares shape and entries.
func (m *Matrix[T]) Equal(o *Matrix[T]) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		if !m.data[i].Equal(o.data[i]) {
			return false
		}
	}
	return true
}

// IsZero reports whether every entry is zero.
func (m *Matrix[T]) IsZero() bool {
	for _, v := range m.data {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

// Add returns m + o.
func (m *Matrix[T]) Add(o *Matrix[T]) (*Matrix[T], error) {
	return m.zip(o, func(a, b T) T { return a.Add(b) })
}

// Sub returns m - o.
func (m *Matrix[T]) Sub(o *Matrix[T]) (*Matrix[T], error) {
	return m.zip(o, func(a, b T) T { return a.Sub(b) })
}

func (m *Matrix[T]) zip(o *Matrix[T], f func(T, T) T) (*Matrix[T], error) {
	if m.rows != o.rows || m.cols != o.cols {
		return nil, fmt.Errorf("%w: %dx%d and %dx%d", ErrMismatch, m.rows, m.cols, o.rows, o.cols)
	}
	r := m.Clone()
	for i := range r.data {
		r.data[i] = f(m.data[i], o.data[i])
	}
	return r, nil
}

// Mul returns the product m * o. Zero entries are skipped, which matters
// for sparse polynomial matrices.
func (m *Matrix[T]) Mul(o *Matrix[T]) (*Matrix[T], error) {
	if m.cols != o.rows {
		return nil, fmt.Errorf("%w: %dx%d times %dx%d", ErrMismatch, m.rows, m.cols, o.rows, o.cols)
	}
	r, err := New(m.rows, o.cols, m.zero)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			a := m.data[i*m.cols+k]
			if a.IsZero() {
				continue
			}
			for j := 0; j < o.cols; j++ {
				b := o.data[k*o.cols+j]
				if b.IsZero() {
					continue
				}
				r.data[i*r.cols+j] = r.data[i*r.cols+j].Add(a.Mul(b))
			}
		}
	}
	return r, nil
}

// Map returns the matrix of f applied to every entry.
func (m *Matrix[T]) Map(f func(T) T) *Matrix[T] {
	r := m.Clone()
	for i := range r.data {
		r.data[i] = f(r.data[i])
	}
	return r
}

// Trace returns the sum of the diagonal of a square matrix.
func (m *Matrix[T]) Trace() (T, error) {
	if !m.IsSquare() {
		return m.zero, fmt.Errorf("%w: %dx%d", ErrNonSquare, m.rows, m.cols)
	}
	t := m.zero
	for i := 0; i < m.rows; i++ {
		t = t.Add(m.data[i*m.cols+i])
	}
	return t, nil
}

// Convert maps every entry of m through f into a matrix over another ring.
func Convert[S Ring[S], T Ring[T]](m *Matrix[S], zero T, f func(S) (T, error)) (*Matrix[T], error) {
	r, err := New(m.rows, m.cols, zero)
	if err != nil {
		return nil, err
	}
	for i, v := range m.data {
		if r.data[i], err = f(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// String renders one bracketed row per line.
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.data[i*m.cols+j].String())
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
