package braid

// HandleReduce applies Dehornoy handle reduction until the word is handle
// free. The result represents the same braid, and it is empty exactly when
// the braid is trivial.
//
// A b_g handle is a subword b_g^e v b_g^-e in which v has no letter of
// index g or g-1. The handle ending first is always reduced, which keeps
// every reduction permitted.
func HandleReduce(w Word) Word {
	w = w.FreeReduce()
	start := 0
	for {
		k, j := firstHandle(w, start)
		if k < 0 {
			return w
		}
		w = reduceHandle(w, k, j)
		start = k
	}
}

// firstHandle returns the bounds of the handle with the leftmost end at or
// after start, or -1, -1.
func firstHandle(w Word, start int) (int, int) {
	for j := start; j < len(w); j++ {
		g := abs(w[j])
		for k := j - 1; k >= 0; k-- {
			h := abs(w[k])
			if h == g {
				if w[k] == -w[j] {
					return k, j
				}
				break
			}
			if h == g-1 {
				break
			}
		}
	}
	return -1, -1
}

func reduceHandle(w Word, k, j int) Word {
	g := abs(w[k])
	e := 1
	if w[k] < 0 {
		e = -1
	}
	out := make(Word, 0, len(w)+2*(j-k))
	out = append(out, w[:k]...)
	for _, x := range w[k+1 : j] {
		if abs(x) != g+1 {
			out = append(out, x)
			continue
		}
		d := 1
		if x < 0 {
			d = -1
		}
		out = append(out, -(g+1)*e, g*d, (g+1)*e)
	}
	return append(out, w[j+1:]...)
}

// IsTrivial reports whether w represents the identity braid.
func IsTrivial(w Word) bool {
	return len(HandleReduce(w)) == 0
}

// AreEqual reports whether w1 and w2 represent the same element of B_n.
func AreEqual(n int, w1, w2 Word) bool {
	return IsTrivial(Concat(w1, w2.Inverse()))
}

// Shorten returns the shorter of the free reduction and the handle
// reduction of w.
func Shorten(n int, w Word) Word {
	free := w.FreeReduce()
	reduced := HandleReduce(free)
	if len(reduced) < len(free) {
		return reduced
	}
	return free
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
