package burau

import (
	"encoding/binary"
	"fmt"
	"strings"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/braid"
	"github.com/BackendStack21/braidcrypt-go/field"
	"github.com/BackendStack21/braidcrypt-go/matrix"
	"github.com/BackendStack21/braidcrypt-go/permutation"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

// DomainProjection separates projection hashes from other SHA3 uses.
const DomainProjection = "braidcrypt-projection-v1"

// Projection is an element of the E-multiplication structure: a matrix over
// the field, a permutation and the fixed t-values used to evaluate colored
// Burau matrices. Braid words and colored Burau elements act on it from the
// right:
//
//	(N, r) * (M, s) = (N * eval_t(r(M)), r * s)
//
// Relators act as the identity, so two words for the same braid give the
// same projection.
type Projection[T field.Element[T]] struct {
	t    []T
	mat  *matrix.Matrix[T]
	perm permutation.Permutation
}

// NewProjection returns the unit (I, id) for the given t-values.
func NewProjection[T field.Element[T]](t []T) (*Projection[T], error) {
	if len(t) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 t-values, got %d", braidcrypt.ErrValidation, len(t))
	}
	if err := utils.CheckLength(len(t), utils.MaxBraidIndex); err != nil {
		return nil, fmt.Errorf("%w: %v", braidcrypt.ErrValidation, err)
	}
	mat, err := matrix.Identity(len(t), field.Zero[T](), field.One[T]())
	if err != nil {
		return nil, err
	}
	return &Projection[T]{t: append([]T(nil), t...), mat: mat, perm: permutation.Identity(len(t))}, nil
}

// NewProjectionFrom assembles a projection from its parts, copying them.
func NewProjectionFrom[T field.Element[T]](t []T, m *matrix.Matrix[T], p permutation.Permutation) (*Projection[T], error) {
	n := len(t)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 t-values, got %d", braidcrypt.ErrValidation, n)
	}
	if m.Rows() != n || m.Cols() != n || p.Size() != n {
		return nil, fmt.Errorf("%w: %d t-values, %dx%d matrix, permutation of %d", braidcrypt.ErrDimensionMismatch, n, m.Rows(), m.Cols(), p.Size())
	}
	if _, err := permutation.New(p); err != nil {
		return nil, err
	}
	return &Projection[T]{t: append([]T(nil), t...), mat: m.Clone(), perm: p.Clone()}, nil
}

// N is the number of strands.
func (p *Projection[T]) N() int { return len(p.t) }

// TValues returns a copy of the t-values.
func (p *Projection[T]) TValues() []T { return append([]T(nil), p.t...) }

// Matrix returns a copy of the matrix.
func (p *Projection[T]) Matrix() *matrix.Matrix[T] { return p.mat.Clone() }

// Permutation returns a copy of the permutation.
func (p *Projection[T]) Permutation() permutation.Permutation { return p.perm.Clone() }

// IsPure reports whether the permutation is the identity.
func (p *Projection[T]) IsPure() bool { return p.perm.IsIdentity() }

// Clone returns a deep copy.
func (p *Projection[T]) Clone() *Projection[T] {
	return &Projection[T]{t: append([]T(nil), p.t...), mat: p.mat.Clone(), perm: p.perm.Clone()}
}

// MulGenerator applies one letter in place.
func (p *Projection[T]) MulGenerator(g int) error {
	if err := checkGenerator(len(p.t), g); err != nil {
		return err
	}
	p.step(g)
	return nil
}

func (p *Projection[T]) step(g int) {
	if g > 0 {
		c := g - 1
		t := p.t[p.perm[c]]
		columnStep(p.mat, c, true, func(x T) T { return x.Mul(t) })
		p.perm.Change(c, c+1)
		return
	}
	c := -g - 1
	t := p.t[p.perm[c+1]]
	columnStep(p.mat, c, false, func(x T) T { return x.Div(t) })
	p.perm.Change(c, c+1)
}

// MulWord applies every letter of w in place. The word is validated first,
// so p is unchanged on error.
func (p *Projection[T]) MulWord(w braid.Word) error {
	if err := w.Validate(len(p.t)); err != nil {
		return err
	}
	for _, g := range w {
		p.step(g)
	}
	return nil
}

// Apply returns a copy of p multiplied by w.
func (p *Projection[T]) Apply(w braid.Word) (*Projection[T], error) {
	r := p.Clone()
	if err := r.MulWord(w); err != nil {
		return nil, err
	}
	return r, nil
}

// MulElement multiplies by a colored Burau element in place.
func (p *Projection[T]) MulElement(e *Element[T]) error {
	if e.N() != len(p.t) {
		return fmt.Errorf("%w: projection on %d strands, element of B_%d", braidcrypt.ErrDimensionMismatch, len(p.t), e.N())
	}
	ev, err := e.Evaluate(p.t, p.perm)
	if err != nil {
		return err
	}
	mat, err := p.mat.Mul(ev)
	if err != nil {
		return err
	}
	p.mat = mat
	p.perm = p.perm.Mul(e.perm)
	return nil
}

// Compose returns p * o for a pure p: (N, id) * (M, s) = (N * M, s).
// Both projections must share their t-values.
func (p *Projection[T]) Compose(o *Projection[T]) (*Projection[T], error) {
	if !p.IsPure() {
		return nil, fmt.Errorf("%w: left operand has permutation %s", braidcrypt.ErrNotPure, p.perm)
	}
	if !sameValues(p.t, o.t) {
		return nil, fmt.Errorf("%w: projections use different t-values", braidcrypt.ErrDimensionMismatch)
	}
	mat, err := p.mat.Mul(o.mat)
	if err != nil {
		return nil, err
	}
	return &Projection[T]{t: append([]T(nil), p.t...), mat: mat, perm: o.perm.Clone()}, nil
}

// Equal compares t-values, matrix and permutation.
func (p *Projection[T]) Equal(o *Projection[T]) bool {
	return sameValues(p.t, o.t) && p.perm.Equal(o.perm) && p.mat.Equal(o.mat)
}

func sameValues[T field.Element[T]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Bytes encodes the projection: n as uint32, the t-values, the matrix row
// by row, then the permutation as uint32 values, all little-endian.
func (p *Projection[T]) Bytes() []byte {
	n := len(p.t)
	entries := make([]T, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			entries = append(entries, p.mat.At(i, j))
		}
	}
	out := make([]byte, 4, 4+8*(n+n*n)+4*n)
	binary.LittleEndian.PutUint32(out, uint32(n))
	out = append(out, field.Bytes(p.t)...)
	out = append(out, field.Bytes(entries)...)
	var buf [4]byte
	for _, v := range p.perm {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		out = append(out, buf[:]...)
	}
	return out
}

// ParseProjection decodes the output of Bytes. It returns the number of
// bytes consumed so projections can be read from a longer buffer.
func ParseProjection[T field.Element[T]](data []byte) (*Projection[T], int, error) {
	n, offset, err := utils.SafeReadLength(data, 0, utils.MaxBraidIndex)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: projection size: %v", braidcrypt.ErrMalformed, err)
	}
	if n < 2 {
		return nil, 0, fmt.Errorf("%w: projection on %d strands", braidcrypt.ErrMalformed, n)
	}
	size := 8*(n+n*n) + 4*n
	if err := utils.ValidateSliceAccess(data, offset, size); err != nil {
		return nil, 0, fmt.Errorf("%w: truncated projection: %v", braidcrypt.ErrMalformed, err)
	}

	var zero T
	next := func() (T, error) {
		x := binary.LittleEndian.Uint64(data[offset:])
		offset += 8
		return field.FromUint64[T](x)
	}

	t := make([]T, n)
	for i := range t {
		if t[i], err = next(); err != nil {
			return nil, 0, err
		}
	}
	m, err := matrix.New(n, n, zero)
	if err != nil {
		return nil, 0, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := next()
			if err != nil {
				return nil, 0, err
			}
			m.Set(i, j, v)
		}
	}
	perm := make(permutation.Permutation, n)
	for i := range perm {
		perm[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4
	}
	p, err := NewProjectionFrom(t, m, perm)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", braidcrypt.ErrMalformed, err)
	}
	return p, offset, nil
}

// Hash returns the domain separated SHA3-256 digest of Bytes.
func (p *Projection[T]) Hash() []byte {
	return utils.HashWithDomain(DomainProjection, p.Bytes())
}

// String prints the t-values, the permutation and the matrix.
func (p *Projection[T]) String() string {
	var sb strings.Builder
	sb.WriteString("t [")
	for i, v := range p.t {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("] perm ")
	sb.WriteString(p.perm.String())
	sb.WriteByte('\n')
	sb.WriteString(p.mat.String())
	return sb.String()
}
