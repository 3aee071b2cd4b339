package qef

import (
	"gonum.org/v1/gonum/floats"
)

// Bounded is the outcome of SolveBounded.
type Bounded struct {
	Result
	// Fixed is the number of axes the winning cascade tier fixed.
	// 0 means the unconstrained solution was already inside the box.
	// Fixed == Dims() means a box corner was chosen.
	Fixed int
	// Outside is set when no candidate, corners included, passed the
	// inclusive box check. Result then holds the minimum residual corner.
	Outside bool
}

// SolveBounded solves the QEF and, if the solution lies outside the
// axis aligned box [lo, hi], searches the box boundary in tiers of
// increasing constraint:
//  1. fix 1 axis to each of its two bounds (faces in 3D, sides in 2D)
//  2. fix every pair of axes (edges in 3D)
//  ...
//  d. evaluate the QEF at every box corner
// The first tier with a candidate inside the box wins and its minimum
// residual candidate is returned. Ties go to the candidate enumerated
// first: axis combinations in lexicographic order and, for each
// combination, bounds with the last axis varying fastest.
//
// SolveBounded panics if the receiver has fixed axes or if lo or hi are not
// of length Dims().
func (q QEF) SolveBounded(lo, hi []float64) Bounded {
	d := q.Dims()
	if len(lo) != d || len(hi) != d {
		panic("bounds dimension mismatch")
	}
	if q.cols != d {
		panic("SolveBounded on QEF with fixed axes")
	}
	inside := func(r Result) bool {
		for i, v := range r.Position {
			if !(lo[i] <= v && v <= hi[i]) {
				return false
			}
		}
		return true
	}
	r := q.Solve()
	if inside(r) {
		return Bounded{Result: r}
	}
	bounds := [2][]float64{lo, hi}
	var candidates []Result
	for k := 1; k < d; k++ {
		candidates = candidates[:0]
		combinations(d, k, func(axes []int) {
			sides(len(axes), func(side []int) {
				sub := q
				for i, axis := range axes {
					sub = sub.FixAxis(axis, bounds[side[i]][axis])
				}
				if r := sub.Solve(); inside(r) {
					candidates = append(candidates, r)
				}
			})
		})
		if len(candidates) > 0 {
			return Bounded{Result: best(candidates), Fixed: k}
		}
	}

	var corners []Result
	candidates = candidates[:0]
	sides(d, func(side []int) {
		corner := make([]float64, d)
		for axis := range corner {
			corner[axis] = bounds[side[axis]][axis]
		}
		r := q.EvaluateWithPosition(corner)
		corners = append(corners, r)
		if inside(r) {
			candidates = append(candidates, r)
		}
	})
	if len(candidates) > 0 {
		return Bounded{Result: best(candidates), Fixed: d}
	}
	// Only reachable with NaN or inverted bounds.
	return Bounded{Result: best(corners), Fixed: d, Outside: true}
}

// best returns the first minimum residual result.
func best(rs []Result) Result {
	residuals := make([]float64, len(rs))
	for i, r := range rs {
		residuals[i] = r.Residual
	}
	return rs[floats.MinIdx(residuals)]
}

// combinations calls fn with every k-subset of [0, n) in lexicographic order.
// The slice passed to fn is reused between calls.
func combinations(n, k int, fn func(axes []int)) {
	axes := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(axes)
			return
		}
		for i := start; i < n; i++ {
			axes[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}

// sides calls fn with every assignment of {0,1} to n slots, the last slot
// varying fastest. The slice passed to fn is reused between calls.
func sides(n int, fn func(side []int)) {
	side := make([]int, n)
	for m := 0; m < 1<<n; m++ {
		for i := range side {
			side[i] = (m >> (n - 1 - i)) & 1
		}
		fn(side)
	}
}
