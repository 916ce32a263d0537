// Package poly implements sparse multivariate polynomials and Laurent
// polynomials over a field, the coefficient ring of the colored Burau
// representation.
//
// Terms are stored sparsely as sorted (variable, exponent) pairs, so
// relabelling variables by a permutation costs O(k log k) for a term with
// k variables instead of O(n).
package poly

import (
	"encoding/binary"
	"sort"
	"strconv"
	"strings"

	"github.com/BackendStack21/braidcrypt-go/permutation"
)

// Power is the factor t_Var^Exp.
type Power struct {
	Var int
	Exp int
}

// Term is a product of powers sorted by variable, without zero exponents.
// The empty term is the constant 1.
type Term []Power

// NewTerm builds a term from a dense exponent vector.
func NewTerm(exps ...int) Term {
	var t Term
	for v, e := range exps {
		if e != 0 {
			t = append(t, Power{Var: v, Exp: e})
		}
	}
	return t
}

// VarTerm returns t_v^e.
func VarTerm(v, e int) Term {
	if e == 0 {
		return nil
	}
	return Term{{Var: v, Exp: e}}
}

// Exp returns the exponent of variable v.
func (t Term) Exp(v int) int {
	i := sort.Search(len(t), func(i int) bool { return t[i].Var >= v })
	if i < len(t) && t[i].Var == v {
		return t[i].Exp
	}
	return 0
}

// IsConstant reports whether t is the empty term.
func (t Term) IsConstant() bool {
	return len(t) == 0
}

// HasNegative reports whether some exponent is negative.
func (t Term) HasNegative() bool {
	for _, p := range t {
		if p.Exp < 0 {
			return true
		}
	}
	return false
}

// MaxVar returns the largest variable index, -1 for a constant.
func (t Term) MaxVar() int {
	if len(t) == 0 {
		return -1
	}
	return t[len(t)-1].Var
}

// Degree returns the sum of the exponents.
func (t Term) Degree() int {
	d := 0
	for _, p := range t {
		d += p.Exp
	}
	return d
}

// Mul adds exponent vectors.
func (t Term) Mul(o Term) Term {
	out := make(Term, 0, len(t)+len(o))
	i, j := 0, 0
	for i < len(t) || j < len(o) {
		switch {
		case j == len(o) || (i < len(t) && t[i].Var < o[j].Var):
			out = append(out, t[i])
			i++
		case i == len(t) || o[j].Var < t[i].Var:
			out = append(out, o[j])
			j++
		default:
			if e := t[i].Exp + o[j].Exp; e != 0 {
				out = append(out, Power{Var: t[i].Var, Exp: e})
			}
			i++
			j++
		}
	}
	return out
}

// Inverse negates every exponent.
func (t Term) Inverse() Term {
	out := make(Term, len(t))
	for i, p := range t {
		out[i] = Power{Var: p.Var, Exp: -p.Exp}
	}
	return out
}

// Permute relabels variable v as p[v].
func (t Term) Permute(p permutation.Permutation) Term {
	out := make(Term, len(t))
	for i, pw := range t {
		out[i] = Power{Var: p.At(pw.Var), Exp: pw.Exp}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })
	return out
}

// Compare orders terms lexicographically by their dense exponent vectors,
// variable 0 being the most significant.
func (t Term) Compare(o Term) int {
	i, j := 0, 0
	for i < len(t) || j < len(o) {
		var a, b int
		switch {
		case j == len(o) || (i < len(t) && t[i].Var < o[j].Var):
			a = t[i].Exp
			i++
		case i == len(t) || o[j].Var < t[i].Var:
			b = o[j].Exp
			j++
		default:
			a, b = t[i].Exp, o[j].Exp
			i++
			j++
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether both terms have the same exponents.
func (t Term) Equal(o Term) bool {
	return t.Compare(o) == 0
}

func (t Term) key() string {
	buf := make([]byte, 0, 4*len(t))
	for _, p := range t {
		buf = binary.AppendUvarint(buf, uint64(p.Var))
		buf = binary.AppendVarint(buf, int64(p.Exp))
	}
	return string(buf)
}

// String renders t as "t0^2*t3^-1", or "1" for the constant term.
func (t Term) String() string {
	if len(t) == 0 {
		return "1"
	}
	parts := make([]string, len(t))
	for i, p := range t {
		s := "t" + strconv.Itoa(p.Var)
		if p.Exp != 1 {
			s += "^" + strconv.Itoa(p.Exp)
		}
		parts[i] = s
	}
	return strings.Join(parts, "*")
}
