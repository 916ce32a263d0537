package braid

import (
	"github.com/BackendStack21/braidcrypt-go/permutation"
	"github.com/BackendStack21/braidcrypt-go/utils"
)

func randomSign(g int, rng *utils.Source) int {
	if rng.Bool() {
		return -g
	}
	return g
}

// RandomWord returns a word of the given length with letters drawn
// uniformly from ±[1, n-1].
func RandomWord(n, length int, rng *utils.Source) Word {
	w := make(Word, length)
	for i := range w {
		w[i] = randomSign(1+rng.Intn(n-1), rng)
	}
	return w
}

// RandomWordOn returns a word whose letters are drawn uniformly from the
// positive generators gens, each with a random sign.
func RandomWordOn(gens []int, length int, rng *utils.Source) Word {
	w := make(Word, length)
	for i := range w {
		w[i] = randomSign(gens[rng.Intn(len(gens))], rng)
	}
	return w
}

// Geodesic returns the positive permutation braid of p.
func Geodesic(p permutation.Permutation) Word {
	return Word(p.Geodesic())
}

// RandomWordFor returns a word inducing exactly p: a geodesic of p with
// every crossing sign chosen at random.
func RandomWordFor(p permutation.Permutation, rng *utils.Source) Word {
	w := Geodesic(p)
	for i := range w {
		w[i] = randomSign(w[i], rng)
	}
	return w
}

// PureGenerator returns the pure braid generator A_ij, 1 <= i < j <= n,
// which wraps strand j once around strand i:
//
//	A_ij = (b_{j-1} ... b_{i+1}) b_i^2 (b_{j-1} ... b_{i+1})^-1
func PureGenerator(i, j int) Word {
	conj := make(Word, 0, j-i-1)
	for k := j - 1; k > i; k-- {
		conj = append(conj, k)
	}
	return Concat(conj, Word{i, i}, conj.Inverse())
}

// RandomPureWord returns a product of count random pure braid generators of
// B_n, each with a random sign.
func RandomPureWord(n, count int, rng *utils.Source) Word {
	var w Word
	for c := 0; c < count; c++ {
		i := 1 + rng.Intn(n-1)
		j := i + 1 + rng.Intn(n-i)
		a := PureGenerator(i, j)
		if rng.Bool() {
			a = a.Inverse()
		}
		w = append(w, a...)
	}
	return w
}
