// Package braid implements words in the Artin generators of the braid group
// B_n and the operations the protocols need on them.
//
// A Word is a sequence of non-zero integers: g > 0 stands for the crossing
// b_g of strands g and g+1 (1-based) and -g for its inverse. Valid letters
// for B_n lie in ±[1, n-1].
package braid

import (
	"fmt"
	"strconv"
	"strings"

	braidcrypt "github.com/BackendStack21/braidcrypt-go"
	"github.com/BackendStack21/braidcrypt-go/permutation"
)

// Word is a braid word. Methods never modify the receiver unless stated.
type Word []int

// New copies gens into a word.
func New(gens ...int) Word {
	return append(Word(nil), gens...)
}

// Repeat returns the word g^k; negative k repeats the inverse letter.
func Repeat(g, k int) Word {
	if k < 0 {
		g, k = -g, -k
	}
	w := make(Word, k)
	for i := range w {
		w[i] = g
	}
	return w
}

// Len returns the number of letters.
func (w Word) Len() int {
	return len(w)
}

// Validate checks that every letter is a generator of B_n.
func (w Word) Validate(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: braid group rank %d below 2", braidcrypt.ErrValidation, n)
	}
	for i, g := range w {
		if g == 0 || g >= n || g <= -n {
			return fmt.Errorf("%w: letter %d at %d is not a generator of B_%d", braidcrypt.ErrIndexOutOfRange, g, i, n)
		}
	}
	return nil
}

// MaxIndex returns the largest |g| in the word, 0 for the empty word.
func (w Word) MaxIndex() int {
	m := 0
	for _, g := range w {
		if g < 0 {
			g = -g
		}
		m = max(m, g)
	}
	return m
}

// Clone returns an independent copy.
func (w Word) Clone() Word {
	return append(Word(nil), w...)
}

// Equal compares letter by letter. Use AreEqual for braid equality.
func (w Word) Equal(o Word) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if w[i] != o[i] {
			return false
		}
	}
	return true
}

// Inverse returns w^-1.
func (w Word) Inverse() Word {
	r := make(Word, len(w))
	for i, g := range w {
		r[len(w)-1-i] = -g
	}
	return r
}

// Concat returns the product of w and the given words.
func (w Word) Concat(others ...Word) Word {
	return Concat(append([]Word{w}, others...)...)
}

// Concat returns the product of the given words.
func Concat(words ...Word) Word {
	total := 0
	for _, w := range words {
		total += len(w)
	}
	out := make(Word, 0, total)
	for _, w := range words {
		out = append(out, w...)
	}
	return out
}

// Sub returns a copy of the letters in [i, j).
func (w Word) Sub(i, j int) Word {
	return w[i:j].Clone()
}

// PushFront returns g w.
func (w Word) PushFront(g int) Word {
	out := make(Word, 0, len(w)+1)
	out = append(out, g)
	return append(out, w...)
}

// PushBack returns w g.
func (w Word) PushBack(g int) Word {
	out := make(Word, 0, len(w)+1)
	out = append(out, w...)
	return append(out, g)
}

// FreeReduce cancels adjacent inverse letters until none remain.
func (w Word) FreeReduce() Word {
	out := make(Word, 0, len(w))
	for _, g := range w {
		if len(out) > 0 && out[len(out)-1] == -g {
			out = out[:len(out)-1]
			continue
		}
		out = append(out, g)
	}
	return out
}

// Permutation returns the permutation of n strands induced by w. Letters
// must be valid for B_n (see Validate); Permutation panics otherwise.
func (w Word) Permutation(n int) permutation.Permutation {
	p := permutation.Identity(n)
	for _, g := range w {
		if g < 0 {
			g = -g
		}
		p.Change(g-1, g)
	}
	return p
}

// IsPure reports whether w induces the identity permutation.
func (w Word) IsPure(n int) bool {
	return w.Permutation(n).IsIdentity()
}

// String renders w as "[1 -2 3]".
func (w Word) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, g := range w {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(g))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Parse reads a word written as "[1 -2 3]", "1,-2,3" or "1 -2 3".
func Parse(s string) (Word, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	w := make(Word, 0, len(fields))
	for _, f := range fields {
		g, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", braidcrypt.ErrValidation, err)
		}
		if g == 0 {
			return nil, fmt.Errorf("%w: 0 is not a braid generator", braidcrypt.ErrValidation)
		}
		w = append(w, g)
	}
	return w, nil
}
