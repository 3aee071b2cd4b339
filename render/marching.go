package render

import (
	"errors"
	"fmt"

	"github.com/soypat/isosurf"
	"github.com/soypat/isosurf/mctable"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MarchingCubes3 triangulates the zero level set of f inside bounds with
// the marching cubes case table. Every triangle carries its own three
// vertices; vertices are not shared between triangles or cells.
func MarchingCubes3(cfg isosurf.Config, f isosurf.Field3, bounds r3.Box) (Mesh, error) {
	grid, err := newGrid3(cfg, bounds)
	if err != nil {
		return Mesh{}, err
	}
	lat := newLattice3(grid, f)
	var m Mesh
	for i := 0; i < grid.Cells[0]; i++ {
		for j := 0; j < grid.Cells[1]; j++ {
			for k := 0; k < grid.Cells[2]; k++ {
				pos, values := lat.cube(isosurf.V3i{i, j, k})
				mcToTriangles(&m, cfg, pos, values)
			}
		}
	}
	return m, nil
}

// mcToTriangles appends the triangles of a single cube to m.
func mcToTriangles(m *Mesh, cfg isosurf.Config, p [8]r3.Vec, v [8]float64) {
	var index uint8
	for i := 0; i < 8; i++ {
		if v[i] > 0 {
			index |= 1 << uint(i)
		}
	}
	for _, tri := range mctable.Cases3[index] {
		var pts [3]r3.Vec
		for i, e := range tri {
			a, b := mctable.Edges3[e][0], mctable.Edges3[e][1]
			t := cfg.Interpolate(v[a], v[b]) / cfg.CellSize
			pts[i] = r3.Add(p[a], r3.Scale(t, r3.Sub(p[b], p[a])))
		}
		m.addTriangle(pts[0], pts[1], pts[2])
	}
}

// MarchingSquares2 traces the zero level set of f inside bounds with the
// marching squares table.
func MarchingSquares2(cfg isosurf.Config, f isosurf.Field2, bounds r2.Box) (Contour, error) {
	return marchingSquares(cfg, f, nil, bounds)
}

// MarchingSquaresProp2 is MarchingSquares2 with segments painted by the
// integer property prop sampled at cell corners. A segment end takes the
// property of the nearer corner of its edge, the first corner on a tie.
// Segments whose ends disagree are split at their midpoint, each half
// keeping the property of its end.
func MarchingSquaresProp2(cfg isosurf.Config, f isosurf.Field2, prop func(r2.Vec) int, bounds r2.Box) (Contour, error) {
	if prop == nil {
		return nil, errors.New("nil property function")
	}
	return marchingSquares(cfg, f, prop, bounds)
}

func marchingSquares(cfg isosurf.Config, f isosurf.Field2, prop func(r2.Vec) int, bounds r2.Box) (Contour, error) {
	grid, err := newGrid2(cfg, bounds)
	if err != nil {
		return nil, err
	}
	lat := newLattice2(grid, f)
	var c Contour
	for i := 0; i < grid.Cells[0]; i++ {
		for j := 0; j < grid.Cells[1]; j++ {
			pos, values := lat.square(isosurf.V2i{i, j})
			var props [4]int
			if prop != nil {
				for k, p := range pos {
					props[k] = prop(p)
				}
			}
			c = msToSegments(c, cfg, pos, values, props)
		}
	}
	return c, nil
}

// msToSegments appends the segments of a single square to dst.
func msToSegments(dst Contour, cfg isosurf.Config, p [4]r2.Vec, v [4]float64, props [4]int) Contour {
	var index uint8
	for i := 0; i < 4; i++ {
		if v[i] > 0 {
			index |= 1 << uint(i)
		}
	}
	crossing := func(e uint8) (r2.Vec, int) {
		a, b := mctable.Edges2[e][0], mctable.Edges2[e][1]
		t := cfg.Interpolate(v[a], v[b]) / cfg.CellSize
		pt := r2.Add(p[a], r2.Scale(t, r2.Sub(p[b], p[a])))
		if t <= 0.5 {
			return pt, props[a]
		}
		return pt, props[b]
	}
	for _, pair := range mctable.Segments2[index] {
		v0, p0 := crossing(pair[0])
		v1, p1 := crossing(pair[1])
		if p0 == p1 {
			dst = append(dst, Segment{V: [2]r2.Vec{v0, v1}, Prop: p0})
			continue
		}
		mid := r2.Scale(0.5, r2.Add(v0, v1))
		dst = append(dst,
			Segment{V: [2]r2.Vec{v0, mid}, Prop: p0},
			Segment{V: [2]r2.Vec{mid, v1}, Prop: p1},
		)
	}
	return dst
}

func newGrid3(cfg isosurf.Config, bounds r3.Box) (isosurf.Grid3, error) {
	if err := cfg.Validate(); err != nil {
		return isosurf.Grid3{}, fmt.Errorf("invalid config: %w", err)
	}
	return isosurf.NewGrid3(bounds, cfg.CellSize)
}

func newGrid2(cfg isosurf.Config, bounds r2.Box) (isosurf.Grid2, error) {
	if err := cfg.Validate(); err != nil {
		return isosurf.Grid2{}, fmt.Errorf("invalid config: %w", err)
	}
	return isosurf.NewGrid2(bounds, cfg.CellSize)
}
