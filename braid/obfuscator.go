package braid

import "github.com/BackendStack21/braidcrypt-go/utils"

// Obfuscator rewrites a word of B_n into a word for the same braid.
type Obfuscator interface {
	Obfuscate(n int, w Word) (Word, error)
}

// ObfuscatorFunc adapts a function to the Obfuscator interface.
type ObfuscatorFunc func(n int, w Word) (Word, error)

// Obfuscate calls f(n, w).
func (f ObfuscatorFunc) Obfuscate(n int, w Word) (Word, error) {
	return f(n, w)
}

var (
	// Unchanged returns a validated copy of the input.
	Unchanged Obfuscator = ObfuscatorFunc(func(n int, w Word) (Word, error) {
		if err := w.Validate(n); err != nil {
			return nil, err
		}
		return w.Clone(), nil
	})

	// FreeReduction cancels adjacent inverse pairs.
	FreeReduction Obfuscator = ObfuscatorFunc(func(n int, w Word) (Word, error) {
		if err := w.Validate(n); err != nil {
			return nil, err
		}
		return w.FreeReduce(), nil
	})

	// HandleReduction rewrites the word into a handle free one.
	HandleReduction Obfuscator = ObfuscatorFunc(func(n int, w Word) (Word, error) {
		if err := w.Validate(n); err != nil {
			return nil, err
		}
		return Shorten(n, w), nil
	})
)

// RandomizedObfuscator is an Obfuscator driven by random draws. Given a
// caller's stream, ObfuscateWith draws only from it, so the output is a
// function of n, w and the stream.
type RandomizedObfuscator interface {
	Obfuscator
	ObfuscateWith(n int, w Word, rng *utils.Source) (Word, error)
}

// ObfuscateWith runs ob on w, handing rng to randomized obfuscators.
func ObfuscateWith(ob Obfuscator, n int, w Word, rng *utils.Source) (Word, error) {
	if r, ok := ob.(RandomizedObfuscator); ok && rng != nil {
		return r.ObfuscateWith(n, w, rng)
	}
	return ob.Obfuscate(n, w)
}

type chain []Obfuscator

func (c chain) Obfuscate(n int, w Word) (Word, error) {
	return c.ObfuscateWith(n, w, nil)
}

func (c chain) ObfuscateWith(n int, w Word, rng *utils.Source) (Word, error) {
	var err error
	for _, o := range c {
		if w, err = ObfuscateWith(o, n, w, rng); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Chain applies the obfuscators in order. A stream passed through
// ObfuscateWith is shared by the randomized members in that order.
func Chain(obs ...Obfuscator) Obfuscator {
	return chain(append([]Obfuscator(nil), obs...))
}
