package permutation

// Permutations are partially ordered by prefix order of their positive
// braid lifts: a left-divides b when the inversion set of a is contained in
// the inversion set of b. The functions below compute meets and joins in
// that lattice and its mirror image, extending the shorter argument first.

// LeftGCD returns the largest common left divisor of a and b.
func LeftGCD(a, b Permutation) Permutation {
	n := max(len(a), len(b))
	return meet(a.Extend(n).Inverse(), b.Extend(n).Inverse())
}

// RightGCD returns the largest common right divisor of a and b.
func RightGCD(a, b Permutation) Permutation {
	n := max(len(a), len(b))
	return LeftGCD(a.Extend(n).Inverse(), b.Extend(n).Inverse()).Inverse()
}

// LeftLCM returns the smallest common left multiple of a and b.
func LeftLCM(a, b Permutation) Permutation {
	n := max(len(a), len(b))
	d := Delta(n)
	da := a.Extend(n).Inverse().Mul(d)
	db := b.Extend(n).Inverse().Mul(d)
	return d.Mul(RightGCD(da, db).Inverse())
}

// RightLCM returns the smallest common right multiple of a and b.
func RightLCM(a, b Permutation) Permutation {
	n := max(len(a), len(b))
	return LeftLCM(a.Extend(n).Inverse(), b.Extend(n).Inverse()).Inverse()
}

// meet takes the position maps ia, ib (inverses of the operands) and
// merge-sorts the identity so that a point moves ahead of another only
// when both operands invert the pair.
func meet(ia, ib Permutation) Permutation {
	n := len(ia)
	m := &meetState{
		ia: ia,
		ib: ib,
		r:  Identity(n),
		u:  make([]int, n),
		v:  make([]int, n),
		s:  make([]int, n),
	}
	m.sub(0, n-1)
	return m.r
}

type meetState struct {
	ia, ib  Permutation
	r       Permutation
	u, v, s []int
}

func (m *meetState) sub(p, q int) {
	if q <= p {
		return
	}
	mid := (p + q) / 2
	m.sub(p, mid)
	m.sub(mid+1, q)

	// Suffix minima of the left half, prefix maxima of the right half.
	m.u[mid], m.v[mid] = m.ia[m.r[mid]], m.ib[m.r[mid]]
	for i := mid - 1; i >= p; i-- {
		m.u[i] = min(m.ia[m.r[i]], m.u[i+1])
		m.v[i] = min(m.ib[m.r[i]], m.v[i+1])
	}
	m.u[mid+1], m.v[mid+1] = m.ia[m.r[mid+1]], m.ib[m.r[mid+1]]
	for i := mid + 2; i <= q; i++ {
		m.u[i] = max(m.ia[m.r[i]], m.u[i-1])
		m.v[i] = max(m.ib[m.r[i]], m.v[i-1])
	}

	left, right := p, mid+1
	for k := p; k <= q; k++ {
		if right > q || (left <= mid && (m.u[left] < m.u[right] || m.v[left] < m.v[right])) {
			m.s[k] = m.r[left]
			left++
		} else {
			m.s[k] = m.r[right]
			right++
		}
	}
	copy(m.r[p:q+1], m.s[p:q+1])
}
