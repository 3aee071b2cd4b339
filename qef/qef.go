// Package qef implements the quadratic error function used by dual contouring
// to place a single vertex per cell.
//
// The error minimized is
//  E(x) = Σ dot(x - p_i, n_i)²
// which is the least squares problem ||A·x - b||² with the rows of A set to
// the normals n_i and b_i = dot(p_i, n_i).
package qef

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// machEps is the float64 unit roundoff (2^-52).
const machEps = 0x1p-52

// QEF is an immutable least squares system over the free (unfixed)
// coordinate axes. The zero value is not usable, see New2 and New3.
type QEF struct {
	rows, cols int
	// a is the row major rows×cols coefficient matrix.
	a []float64
	b []float64
	// fixed has one entry per dimension. NaN marks a free axis.
	fixed []float64
}

// Result is the residual and full dimensional position of a QEF solve or evaluation.
type Result struct {
	Residual float64
	Position []float64
}

// Vec2 returns the position of a 2 dimensional result.
func (r Result) Vec2() r2.Vec {
	if len(r.Position) != 2 {
		panic("result is not 2 dimensional")
	}
	return r2.Vec{X: r.Position[0], Y: r.Position[1]}
}

// Vec3 returns the position of a 3 dimensional result.
func (r Result) Vec3() r3.Vec {
	if len(r.Position) != 3 {
		panic("result is not 3 dimensional")
	}
	return r3.Vec{X: r.Position[0], Y: r.Position[1], Z: r.Position[2]}
}

// New3 builds the QEF for the crossing points and their normals.
func New3(positions, normals []r3.Vec) QEF {
	if len(positions) != len(normals) {
		panic("positions and normals length mismatch")
	}
	q := newQEF(3, len(normals))
	for i, n := range normals {
		q.a[i*3], q.a[i*3+1], q.a[i*3+2] = n.X, n.Y, n.Z
		q.b[i] = r3.Dot(positions[i], n)
	}
	return q
}

// New2 builds the 2 dimensional QEF for the crossing points and their normals.
func New2(positions, normals []r2.Vec) QEF {
	if len(positions) != len(normals) {
		panic("positions and normals length mismatch")
	}
	q := newQEF(2, len(normals))
	for i, n := range normals {
		q.a[i*2], q.a[i*2+1] = n.X, n.Y
		q.b[i] = r2.Dot(positions[i], n)
	}
	return q
}

// New builds a QEF of arbitrary dimension. Each normal and position must have length dims.
func New(dims int, positions, normals [][]float64) QEF {
	if dims < 1 {
		panic("dimension must be positive")
	}
	if len(positions) != len(normals) {
		panic("positions and normals length mismatch")
	}
	q := newQEF(dims, len(normals))
	for i, n := range normals {
		if len(n) != dims || len(positions[i]) != dims {
			panic(fmt.Sprintf("row %d: want length %d vectors", i, dims))
		}
		copy(q.a[i*dims:], n)
		q.b[i] = floats.Dot(positions[i], n)
	}
	return q
}

func newQEF(dims, rows int) QEF {
	fixed := make([]float64, dims)
	for i := range fixed {
		fixed[i] = math.NaN()
	}
	return QEF{
		rows:  rows,
		cols:  dims,
		a:     make([]float64, rows*dims),
		b:     make([]float64, rows),
		fixed: fixed,
	}
}

// Dims returns the dimension of the positions the QEF solves for.
func (q QEF) Dims() int { return len(q.fixed) }

// Free returns the number of axes that are not fixed.
func (q QEF) Free() int { return q.cols }

// Rows returns the number of constraints in the system.
func (q QEF) Rows() int { return q.rows }

// IsFixed reports whether axis has been fixed by FixAxis.
func (q QEF) IsFixed(axis int) bool { return !math.IsNaN(q.fixed[axis]) }

// FixAxis returns a new QEF with the coordinate axis fixed to value. The
// receiver is not modified. axis is the original coordinate index, not
// the index among the remaining free axes. FixAxis panics if axis is out
// of range or already fixed.
func (q QEF) FixAxis(axis int, value float64) QEF {
	if axis < 0 || axis >= len(q.fixed) {
		panic("axis out of range")
	}
	if q.IsFixed(axis) {
		panic("axis already fixed")
	}
	col := q.column(axis)
	ncols := q.cols - 1
	fixed := append([]float64(nil), q.fixed...)
	fixed[axis] = value
	r := QEF{
		rows:  q.rows,
		cols:  ncols,
		a:     make([]float64, q.rows*ncols),
		b:     make([]float64, q.rows),
		fixed: fixed,
	}
	for i := 0; i < q.rows; i++ {
		row := q.a[i*q.cols : (i+1)*q.cols]
		r.b[i] = q.b[i] - value*row[col]
		dst := r.a[i*ncols : (i+1)*ncols]
		copy(dst, row[:col])
		copy(dst[col:], row[col+1:])
	}
	return r
}

// column returns the column of A holding the free axis.
func (q QEF) column(axis int) int {
	col := 0
	for i := 0; i < axis; i++ {
		if !q.IsFixed(i) {
			col++
		}
	}
	return col
}

// Solve returns the minimum norm least squares solution over the free axes
// with the fixed axes reinserted at their coordinate. Rank deficient systems
// are solved by truncating small singular values, so parallel or repeated
// normals are not an error.
func (q QEF) Solve() Result {
	x := make([]float64, q.cols)
	if q.rows > 0 && q.cols > 0 {
		a := mat.NewDense(q.rows, q.cols, q.a)
		var svd mat.SVD
		if svd.Factorize(a, mat.SVDThin) {
			rcond := float64(max(q.rows, q.cols)) * machEps
			if rank := svd.Rank(rcond); rank > 0 {
				var dst mat.VecDense
				svd.SolveVecTo(&dst, mat.NewVecDense(q.rows, q.b), rank)
				for i := range x {
					x[i] = dst.AtVec(i)
				}
			}
		}
	}
	return Result{Residual: q.Evaluate(x), Position: q.position(x)}
}

// Evaluate returns ||A·x - b|| where x holds the values of the free axes in
// increasing axis order.
func (q QEF) Evaluate(x []float64) float64 {
	if len(x) != q.cols {
		panic(fmt.Sprintf("want %d free coordinates, got %d", q.cols, len(x)))
	}
	if q.rows == 0 {
		return 0
	}
	res := make([]float64, q.rows)
	for i := range res {
		res[i] = floats.Dot(q.a[i*q.cols:(i+1)*q.cols], x) - q.b[i]
	}
	return floats.Norm(res, 2)
}

// EvaluateWithPosition evaluates the QEF at free coordinates x and
// returns the result in the same format as Solve.
func (q QEF) EvaluateWithPosition(x []float64) Result {
	return Result{Residual: q.Evaluate(x), Position: q.position(x)}
}

// position merges free coordinates with the fixed ones.
func (q QEF) position(x []float64) []float64 {
	pos := make([]float64, len(q.fixed))
	j := 0
	for i, v := range q.fixed {
		if math.IsNaN(v) {
			pos[i] = x[j]
			j++
		} else {
			pos[i] = v
		}
	}
	return pos
}
