package rewrite

import (
	"github.com/BackendStack21/braidcrypt-go/braid"
)

// Y-generators of a block [s, e] are the partial reversals
//
//	y_k = b_k b_{k-1} ... b_s,   s <= k <= e
//
// so that b_s = y_s and b_k = y_k y_{k-1}^-1. Both alphabets use the
// indices 1..n-1 and share the Word type.

// yInB returns y_k as a word in the braid generators, indexed by k.
func yInB(n int, blocks []Block) []braid.Word {
	out := make([]braid.Word, n)
	for _, b := range blocks {
		for k := b.Start; k <= b.End; k++ {
			w := make(braid.Word, 0, k-b.Start+1)
			for g := k; g >= b.Start; g-- {
				w = append(w, g)
			}
			out[k] = w
		}
	}
	return out
}

// bInY returns b_k as a word in the Y-generators, indexed by k.
func bInY(n int, blocks []Block) []braid.Word {
	out := make([]braid.Word, n)
	for _, b := range blocks {
		out[b.Start] = braid.Word{b.Start}
		for k := b.Start + 1; k <= b.End; k++ {
			out[k] = braid.Word{k, -(k - 1)}
		}
	}
	return out
}

// substitute replaces every letter by its image in table and free reduces.
func substitute(w braid.Word, table []braid.Word) braid.Word {
	out := make(braid.Word, 0, len(w))
	for _, g := range w {
		if g > 0 {
			out = append(out, table[g]...)
		} else {
			out = append(out, table[-g].Inverse()...)
		}
	}
	return out.FreeReduce()
}

func cyclicReduce(w braid.Word) braid.Word {
	w = w.FreeReduce()
	for len(w) > 1 && w[0] == -w[len(w)-1] {
		w = w[1 : len(w)-1]
	}
	return w
}

// braidRelators returns the defining relators of B_n.
func braidRelators(n int) []braid.Word {
	var out []braid.Word
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			if i-j >= 2 || j-i >= 2 {
				out = append(out, braid.Word{i, j, -i, -j})
			}
			if j == i+1 {
				out = append(out, braid.Word{i, j, i, -j, -i, -j})
			}
		}
	}
	return out
}

// relations returns relators of B_n written in the Y-generators: the braid
// relators transported through bInY plus, for every block [s, e] and
// s <= i < k <= e,
//
//	y_k y_{i+1} y_i^-1 = y_i y_{i-1}^-1 y_k
//
// where y_{s-1} is dropped.
func relations(n int, blocks []Block) []braid.Word {
	toY := bInY(n, blocks)
	var out []braid.Word
	for _, r := range braidRelators(n) {
		if y := cyclicReduce(substitute(r, toY)); len(y) > 0 {
			out = append(out, y)
		}
	}
	for _, b := range blocks {
		for k := b.Start; k <= b.End; k++ {
			for i := b.Start; i < k; i++ {
				lhs := braid.Word{k, i + 1, -i}
				rhs := braid.Word{i}
				if i > b.Start {
					rhs = append(rhs, -(i - 1))
				}
				rhs = append(rhs, k)
				if y := cyclicReduce(braid.Concat(lhs, rhs.Inverse())); len(y) > 0 {
					out = append(out, y)
				}
			}
		}
	}
	return out
}

type pair [2]int

// rules splits every cyclic rotation of every relator r, and of r^-1, as
// ab * rest: the pair ab can be replaced by rest^-1, and the pair
// b^-1 a^-1 by rest. Replacements longer than maxLen are dropped.
func rules(rels []braid.Word, maxLen int) map[pair][]braid.Word {
	out := make(map[pair][]braid.Word)
	add := func(k pair, w braid.Word) {
		if len(w) <= maxLen {
			out[k] = append(out[k], w)
		}
	}
	for _, r := range rels {
		for _, rr := range []braid.Word{r, r.Inverse()} {
			if len(rr) < 3 {
				continue
			}
			for c := range rr {
				rot := braid.Concat(rr[c:], rr[:c])
				rest := rot[2:]
				add(pair{rot[0], rot[1]}, rest.Inverse())
				add(pair{-rot[1], -rot[0]}, rest.Clone())
			}
		}
	}
	return out
}
