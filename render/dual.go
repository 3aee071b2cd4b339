package render

import (
	"errors"
	"slices"

	"github.com/soypat/isosurf"
	"github.com/soypat/isosurf/qef"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// PlaceVertex3 returns the dual contouring vertex of the cell with minimum
// corner origin given the edge crossings of the field inside it and the
// field normals at those crossings. positions and normals must have the
// same length.
//
// With cfg.Adaptive unset the cell center is returned. Otherwise the vertex
// minimizes the QEF built from the crossings, optionally pulled towards their
// mass point (cfg.Bias), kept inside the cell by searching its faces, edges
// and corners (cfg.Boundary) and finally clamped to the cell (cfg.Clip).
func PlaceVertex3(cfg isosurf.Config, origin r3.Vec, positions, normals []r3.Vec) r3.Vec {
	cs := cfg.CellSize
	if !cfg.Adaptive {
		return r3.Add(origin, r3.Vec{X: cs / 2, Y: cs / 2, Z: cs / 2})
	}
	if cfg.Bias && len(positions) > 0 {
		var mass r3.Vec
		for _, p := range positions {
			mass = r3.Add(mass, p)
		}
		mass = r3.Scale(1/float64(len(positions)), mass)
		bs := cfg.BiasStrength
		positions = append(slices.Clip(positions), mass, mass, mass)
		normals = append(slices.Clip(normals), r3.Vec{X: bs}, r3.Vec{Y: bs}, r3.Vec{Z: bs})
	}
	q := qef.New3(positions, normals)
	var r qef.Result
	if cfg.Boundary {
		lo := []float64{origin.X, origin.Y, origin.Z}
		hi := []float64{origin.X + cs, origin.Y + cs, origin.Z + cs}
		r = q.SolveBounded(lo, hi).Result
	} else {
		r = q.Solve()
	}
	v := r.Vec3()
	if cfg.Clip {
		v.X = clamp(v.X, origin.X, origin.X+cs)
		v.Y = clamp(v.Y, origin.Y, origin.Y+cs)
		v.Z = clamp(v.Z, origin.Z, origin.Z+cs)
	}
	return v
}

// PlaceVertex2 is the 2D analog of PlaceVertex3.
func PlaceVertex2(cfg isosurf.Config, origin r2.Vec, positions, normals []r2.Vec) r2.Vec {
	cs := cfg.CellSize
	if !cfg.Adaptive {
		return r2.Add(origin, r2.Vec{X: cs / 2, Y: cs / 2})
	}
	if cfg.Bias && len(positions) > 0 {
		var mass r2.Vec
		for _, p := range positions {
			mass = r2.Add(mass, p)
		}
		mass = r2.Scale(1/float64(len(positions)), mass)
		bs := cfg.BiasStrength
		positions = append(slices.Clip(positions), mass, mass)
		normals = append(slices.Clip(normals), r2.Vec{X: bs}, r2.Vec{Y: bs})
	}
	q := qef.New2(positions, normals)
	var r qef.Result
	if cfg.Boundary {
		lo := []float64{origin.X, origin.Y}
		hi := []float64{origin.X + cs, origin.Y + cs}
		r = q.SolveBounded(lo, hi).Result
	} else {
		r = q.Solve()
	}
	v := r.Vec2()
	if cfg.Clip {
		v.X = clamp(v.X, origin.X, origin.X+cs)
		v.Y = clamp(v.Y, origin.Y, origin.Y+cs)
	}
	return v
}

// CellVertex3 evaluates f at the corners of the cell with minimum corner
// origin and returns its dual contouring vertex. ok is false when fewer than
// two cell edges change sign, in which case the cell has no vertex.
func CellVertex3(cfg isosurf.Config, f isosurf.Field3, n isosurf.Normals3, origin r3.Vec) (v r3.Vec, ok bool) {
	var values [2][2][2]float64
	cs := cfg.CellSize
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			for dz := 0; dz < 2; dz++ {
				values[dx][dy][dz] = f.Evaluate(r3.Add(origin, r3.Vec{X: float64(dx) * cs, Y: float64(dy) * cs, Z: float64(dz) * cs}))
			}
		}
	}
	return cellVertex3(cfg, n, origin, &values)
}

func cellVertex3(cfg isosurf.Config, n isosurf.Normals3, origin r3.Vec, v *[2][2][2]float64) (r3.Vec, bool) {
	cs := cfg.CellSize
	var changes []r3.Vec
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			if (v[dx][dy][0] > 0) != (v[dx][dy][1] > 0) {
				changes = append(changes, r3.Add(origin, r3.Vec{
					X: float64(dx) * cs,
					Y: float64(dy) * cs,
					Z: cfg.Interpolate(v[dx][dy][0], v[dx][dy][1]),
				}))
			}
		}
	}
	for dx := 0; dx < 2; dx++ {
		for dz := 0; dz < 2; dz++ {
			if (v[dx][0][dz] > 0) != (v[dx][1][dz] > 0) {
				changes = append(changes, r3.Add(origin, r3.Vec{
					X: float64(dx) * cs,
					Y: cfg.Interpolate(v[dx][0][dz], v[dx][1][dz]),
					Z: float64(dz) * cs,
				}))
			}
		}
	}
	for dy := 0; dy < 2; dy++ {
		for dz := 0; dz < 2; dz++ {
			if (v[0][dy][dz] > 0) != (v[1][dy][dz] > 0) {
				changes = append(changes, r3.Add(origin, r3.Vec{
					X: cfg.Interpolate(v[0][dy][dz], v[1][dy][dz]),
					Y: float64(dy) * cs,
					Z: float64(dz) * cs,
				}))
			}
		}
	}
	if len(changes) < 2 {
		return r3.Vec{}, false
	}
	if !cfg.Adaptive {
		return PlaceVertex3(cfg, origin, nil, nil), true
	}
	normals := make([]r3.Vec, len(changes))
	for i, p := range changes {
		normals[i] = n.Normal(p)
	}
	return PlaceVertex3(cfg, origin, changes, normals), true
}

// CellVertex2 is the 2D analog of CellVertex3.
func CellVertex2(cfg isosurf.Config, f isosurf.Field2, n isosurf.Normals2, origin r2.Vec) (v r2.Vec, ok bool) {
	var values [2][2]float64
	cs := cfg.CellSize
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			values[dx][dy] = f.Evaluate(r2.Add(origin, r2.Vec{X: float64(dx) * cs, Y: float64(dy) * cs}))
		}
	}
	return cellVertex2(cfg, n, origin, &values)
}

func cellVertex2(cfg isosurf.Config, n isosurf.Normals2, origin r2.Vec, v *[2][2]float64) (r2.Vec, bool) {
	cs := cfg.CellSize
	var changes []r2.Vec
	// Vertical edges first, then horizontal.
	for dx := 0; dx < 2; dx++ {
		if (v[dx][0] > 0) != (v[dx][1] > 0) {
			changes = append(changes, r2.Add(origin, r2.Vec{X: float64(dx) * cs, Y: cfg.Interpolate(v[dx][0], v[dx][1])}))
		}
	}
	for dy := 0; dy < 2; dy++ {
		if (v[0][dy] > 0) != (v[1][dy] > 0) {
			changes = append(changes, r2.Add(origin, r2.Vec{X: cfg.Interpolate(v[0][dy], v[1][dy]), Y: float64(dy) * cs}))
		}
	}
	if len(changes) < 2 {
		return r2.Vec{}, false
	}
	if !cfg.Adaptive {
		return PlaceVertex2(cfg, origin, nil, nil), true
	}
	normals := make([]r2.Vec, len(changes))
	for i, p := range changes {
		normals[i] = n.Normal(p)
	}
	return PlaceVertex2(cfg, origin, changes, normals), true
}

// DualContour3 meshes the zero level set of f inside bounds with dual
// contouring. Every cell with at least two sign changing edges contributes
// one vertex. Every grid edge with a sign change whose four surrounding
// cells all have a vertex contributes one quad facing away from the solid.
// If normals is nil they are approximated from f with central differences
// of step cfg.Step.
func DualContour3(cfg isosurf.Config, f isosurf.Field3, normals isosurf.Normals3, bounds r3.Box) (Mesh, error) {
	grid, err := newGrid3(cfg, bounds)
	if err != nil {
		return Mesh{}, err
	}
	if normals == nil {
		if cfg.Step <= 0 {
			return Mesh{}, errors.New("nil normals require a positive config step")
		}
		normals = isosurf.CentralDiff3(f, cfg.Step)
	}
	lat := newLattice3(grid, f)
	nc := grid.Cells
	var m Mesh
	vertIdx := make([]int, grid.Len())
	for i := 0; i < nc[0]; i++ {
		for j := 0; j < nc[1]; j++ {
			for k := 0; k < nc[2]; k++ {
				ci := isosurf.V3i{i, j, k}
				var values [2][2][2]float64
				for dx := 0; dx < 2; dx++ {
					for dy := 0; dy < 2; dy++ {
						for dz := 0; dz < 2; dz++ {
							_, values[dx][dy][dz] = lat.Evaluate(ci.Add(isosurf.V3i{dx, dy, dz}))
						}
					}
				}
				idx := grid.Index(ci)
				vertIdx[idx] = -1
				if v, ok := cellVertex3(cfg, normals, grid.Corner(ci), &values); ok {
					vertIdx[idx] = len(m.Vertices)
					m.Vertices = append(m.Vertices, v)
				}
			}
		}
	}

	vert := func(i, j, k int) int { return vertIdx[grid.Index(isosurf.V3i{i, j, k})] }
	addQuad := func(a, b, c, d int, swap bool) {
		if a < 0 || b < 0 || c < 0 || d < 0 {
			return
		}
		m.Faces = append(m.Faces, QuadFace(a, b, c, d).Swap(swap))
	}
	for i := 0; i < nc[0]; i++ {
		for j := 0; j < nc[1]; j++ {
			for k := 0; k < nc[2]; k++ {
				solid0 := lat.Solid(isosurf.V3i{i, j, k})
				if i > 0 && j > 0 {
					// Edge along z.
					solid1 := lat.Solid(isosurf.V3i{i, j, k + 1})
					if solid0 != solid1 {
						addQuad(vert(i-1, j-1, k), vert(i, j-1, k), vert(i, j, k), vert(i-1, j, k), solid1)
					}
				}
				if i > 0 && k > 0 {
					// Edge along y.
					solid1 := lat.Solid(isosurf.V3i{i, j + 1, k})
					if solid0 != solid1 {
						addQuad(vert(i-1, j, k-1), vert(i, j, k-1), vert(i, j, k), vert(i-1, j, k), solid0)
					}
				}
				if j > 0 && k > 0 {
					// Edge along x.
					solid1 := lat.Solid(isosurf.V3i{i + 1, j, k})
					if solid0 != solid1 {
						addQuad(vert(i, j-1, k-1), vert(i, j, k-1), vert(i, j, k), vert(i, j-1, k), solid1)
					}
				}
			}
		}
	}
	return m, nil
}

// DualContour2 traces the zero level set of f inside bounds with dual
// contouring. Each sign changing grid edge between two cells with a vertex
// gives one segment joining those vertices with the solid on its left.
// If normals is nil they are approximated from f with central differences
// of step cfg.Step.
func DualContour2(cfg isosurf.Config, f isosurf.Field2, normals isosurf.Normals2, bounds r2.Box) (Contour, error) {
	grid, err := newGrid2(cfg, bounds)
	if err != nil {
		return nil, err
	}
	if normals == nil {
		if cfg.Step <= 0 {
			return nil, errors.New("nil normals require a positive config step")
		}
		normals = isosurf.CentralDiff2(f, cfg.Step)
	}
	lat := newLattice2(grid, f)
	nc := grid.Cells
	verts := make([]r2.Vec, grid.Len())
	has := make([]bool, grid.Len())
	for i := 0; i < nc[0]; i++ {
		for j := 0; j < nc[1]; j++ {
			ci := isosurf.V2i{i, j}
			var values [2][2]float64
			for dx := 0; dx < 2; dx++ {
				for dy := 0; dy < 2; dy++ {
					_, values[dx][dy] = lat.Evaluate(ci.Add(isosurf.V2i{dx, dy}))
				}
			}
			idx := grid.Index(ci)
			verts[idx], has[idx] = cellVertex2(cfg, normals, grid.Corner(ci), &values)
		}
	}

	var c Contour
	join := func(a, b isosurf.V2i, swap bool) {
		ia, ib := grid.Index(a), grid.Index(b)
		if !has[ia] || !has[ib] {
			return
		}
		c = append(c, Segment{V: [2]r2.Vec{verts[ia], verts[ib]}}.Swap(swap))
	}
	// Vertical grid edges.
	for i := 1; i < nc[0]; i++ {
		for j := 0; j < nc[1]; j++ {
			solid0 := lat.Solid(isosurf.V2i{i, j})
			if solid0 != lat.Solid(isosurf.V2i{i, j + 1}) {
				join(isosurf.V2i{i - 1, j}, isosurf.V2i{i, j}, solid0)
			}
		}
	}
	// Horizontal grid edges.
	for j := 1; j < nc[1]; j++ {
		for i := 0; i < nc[0]; i++ {
			solid1 := lat.Solid(isosurf.V2i{i + 1, j})
			if lat.Solid(isosurf.V2i{i, j}) != solid1 {
				join(isosurf.V2i{i, j - 1}, isosurf.V2i{i, j}, solid1)
			}
		}
	}
	return c, nil
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
