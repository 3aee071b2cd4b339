package render

import (
	"github.com/soypat/isosurf"
	"github.com/soypat/isosurf/mctable"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// lattice3 caches field samples at the corners of a Grid3 so that each
// corner is evaluated at most once per run. Neighbouring cells share 4 of
// their 8 corners so most lookups are hits.
type lattice3 struct {
	grid   isosurf.Grid3
	field  isosurf.Field3
	stride isosurf.V3i // corners per axis
	values []float64
	known  []bool
	evals  int
}

func newLattice3(g isosurf.Grid3, f isosurf.Field3) *lattice3 {
	stride := g.Cells.AddScalar(1)
	n := stride[0] * stride[1] * stride[2]
	return &lattice3{
		grid:   g,
		field:  f,
		stride: stride,
		values: make([]float64, n),
		known:  make([]bool, n),
	}
}

// Evaluate returns the position of corner vi and the field value there.
func (l *lattice3) Evaluate(vi isosurf.V3i) (r3.Vec, float64) {
	v := l.grid.Corner(vi)
	idx := (vi[0]*l.stride[1]+vi[1])*l.stride[2] + vi[2]
	if l.known[idx] {
		return v, l.values[idx]
	}
	dist := l.field.Evaluate(v)
	l.values[idx] = dist
	l.known[idx] = true
	l.evals++
	return v, dist
}

// Solid reports whether the field is strictly positive at corner vi.
func (l *lattice3) Solid(vi isosurf.V3i) bool {
	_, d := l.Evaluate(vi)
	return d > 0
}

// cube returns the corner positions and values of cell ci in mctable order.
func (l *lattice3) cube(ci isosurf.V3i) (pos [8]r3.Vec, values [8]float64) {
	for c, off := range mctable.Corners3 {
		pos[c], values[c] = l.Evaluate(ci.Add(isosurf.V3i(off)))
	}
	return pos, values
}

// lattice2 is the 2D analog of lattice3.
type lattice2 struct {
	grid   isosurf.Grid2
	field  isosurf.Field2
	stride isosurf.V2i
	values []float64
	known  []bool
	evals  int
}

func newLattice2(g isosurf.Grid2, f isosurf.Field2) *lattice2 {
	stride := g.Cells.AddScalar(1)
	n := stride[0] * stride[1]
	return &lattice2{
		grid:   g,
		field:  f,
		stride: stride,
		values: make([]float64, n),
		known:  make([]bool, n),
	}
}

func (l *lattice2) Evaluate(vi isosurf.V2i) (r2.Vec, float64) {
	v := l.grid.Corner(vi)
	idx := vi[0]*l.stride[1] + vi[1]
	if l.known[idx] {
		return v, l.values[idx]
	}
	dist := l.field.Evaluate(v)
	l.values[idx] = dist
	l.known[idx] = true
	l.evals++
	return v, dist
}

func (l *lattice2) Solid(vi isosurf.V2i) bool {
	_, d := l.Evaluate(vi)
	return d > 0
}

// square returns the corner positions and values of cell ci in mctable order.
func (l *lattice2) square(ci isosurf.V2i) (pos [4]r2.Vec, values [4]float64) {
	for c, off := range mctable.Corners2 {
		pos[c], values[c] = l.Evaluate(ci.Add(isosurf.V2i(off)))
	}
	return pos, values
}
