package render_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/soypat/isosurf"
	"github.com/soypat/isosurf/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPlaceVertex3(t *testing.T) {
	exact := isosurf.DefaultConfig()
	exact.Bias = false
	unbounded := exact
	unbounded.Boundary = false
	clipped := unbounded
	clipped.Clip = true
	centered := exact
	centered.Adaptive = false

	axes := []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	// Three planes meeting at a point inside the unit cell.
	inside := []r3.Vec{{X: 0.3, Y: 0.1, Z: 0.9}, {X: 0.5, Y: 0.6, Z: 0.5}, {X: 0, Y: 1, Z: 0.2}}
	// Same but the x plane sits at x=2, outside the cell.
	outside := []r3.Vec{{X: 2, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}}
	for _, test := range []struct {
		name      string
		cfg       isosurf.Config
		positions []r3.Vec
		want      r3.Vec
	}{
		{name: "corner feature", cfg: exact, positions: inside, want: r3.Vec{X: 0.3, Y: 0.6, Z: 0.2}},
		{name: "boundary", cfg: exact, positions: outside, want: r3.Vec{X: 1, Y: 0.5, Z: 0.5}},
		{name: "unbounded", cfg: unbounded, positions: outside, want: r3.Vec{X: 2, Y: 0.5, Z: 0.5}},
		{name: "clipped", cfg: clipped, positions: outside, want: r3.Vec{X: 1, Y: 0.5, Z: 0.5}},
		{name: "not adaptive", cfg: centered, positions: outside, want: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
	} {
		got := render.PlaceVertex3(test.cfg, r3.Vec{}, test.positions, axes)
		if diff := cmp.Diff(test.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%s: vertex mismatch (-want +got):\n%s", test.name, diff)
		}
	}

	// The bias pulls the vertex slightly towards the crossings' mass point.
	biased := isosurf.DefaultConfig()
	got := render.PlaceVertex3(biased, r3.Vec{}, inside, axes)
	if d := r3.Norm(r3.Sub(got, r3.Vec{X: 0.3, Y: 0.6, Z: 0.2})); d == 0 || d > 1e-3 {
		t.Errorf("biased vertex %v too far from feature: %g", got, d)
	}
}

func TestPlaceVertex2(t *testing.T) {
	exact := isosurf.DefaultConfig()
	exact.Bias = false
	normals := []r2.Vec{{X: 1}, {Y: 1}}
	got := render.PlaceVertex2(exact, r2.Vec{X: 1, Y: 1}, []r2.Vec{{X: 1.25, Y: 1}, {X: 1, Y: 1.75}}, normals)
	if diff := cmp.Diff(r2.Vec{X: 1.25, Y: 1.75}, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("corner feature mismatch (-want +got):\n%s", diff)
	}
	got = render.PlaceVertex2(exact, r2.Vec{X: 1, Y: 1}, []r2.Vec{{X: -1, Y: 1}, {X: 1, Y: 1.75}}, normals)
	if diff := cmp.Diff(r2.Vec{X: 1, Y: 1.75}, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("boundary mismatch (-want +got):\n%s", diff)
	}
}

// Boundary placement keeps vertices inside the cell for any input.
func TestPlaceVertexStaysInCell(t *testing.T) {
	cfg := isosurf.DefaultConfig()
	cell := r3.Box{Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	// Simple deterministic pseudo random sequence.
	seed := uint32(1)
	rnd := func() float64 {
		seed = seed*1664525 + 1013904223
		return float64(seed>>8) / (1 << 24)
	}
	for i := 0; i < 200; i++ {
		n := 2 + i%5
		positions := make([]r3.Vec, n)
		normals := make([]r3.Vec, n)
		for j := range positions {
			positions[j] = r3.Vec{X: rnd(), Y: rnd(), Z: rnd()}
			normals[j] = r3.Unit(r3.Vec{X: rnd() - 0.5, Y: rnd() - 0.5, Z: rnd() - 0.5})
		}
		v := render.PlaceVertex3(cfg, r3.Vec{}, positions, normals)
		if !cell.Contains(v) {
			t.Fatalf("case %d: vertex %v outside cell", i, v)
		}
	}
}

func TestCellVertex(t *testing.T) {
	cfg := isosurf.DefaultConfig()
	s := testSphere(t)
	v, ok := render.CellVertex3(cfg, s, s, r3.Vec{X: 2})
	if !ok {
		t.Fatal("expected vertex in cell crossed by the sphere")
	}
	cell := r3.Box{Min: r3.Vec{X: 2}, Max: r3.Vec{X: 3, Y: 1, Z: 1}}
	if !cell.Contains(v) || math.Abs(s.Evaluate(v)) > 0.25 {
		t.Errorf("vertex %v off the surface or outside its cell", v)
	}
	if _, ok := render.CellVertex3(cfg, s, s, r3.Vec{X: -0.5, Y: -0.5, Z: -0.5}); ok {
		t.Error("unexpected vertex in solid cell")
	}

	c := testCircle(t)
	v2, ok := render.CellVertex2(cfg, c, c, r2.Vec{X: 2})
	if !ok {
		t.Fatal("expected vertex in square crossed by the circle")
	}
	square := r2.Box{Min: r2.Vec{X: 2}, Max: r2.Vec{X: 3, Y: 1}}
	if !square.Contains(v2) || math.Abs(c.Evaluate(v2)) > 0.25 {
		t.Errorf("vertex %v off the contour or outside its square", v2)
	}
	if _, ok := render.CellVertex2(cfg, c, c, r2.Vec{X: 4, Y: 4}); ok {
		t.Error("unexpected vertex in empty square")
	}
}

func TestDualContourSphere(t *testing.T) {
	s := testSphere(t)
	cfg := isosurf.DefaultConfig()
	for _, test := range []struct {
		name    string
		normals isosurf.Normals3
	}{
		{name: "analytic", normals: s},
		{name: "central difference", normals: nil},
	} {
		m, err := render.DualContour3(cfg, s, test.normals, bounds3)
		if err != nil {
			t.Fatal(err)
		}
		const wantVertices, wantQuads = 128, 126
		if len(m.Vertices) != wantVertices || len(m.Faces) != wantQuads {
			t.Errorf("%s: want %d vertices and %d quads, got %d and %d", test.name, wantVertices, wantQuads, len(m.Vertices), len(m.Faces))
		}
		for i, v := range m.Vertices {
			if r := r3.Norm(v); r < testRadius-0.25 || r > testRadius+0.2 {
				t.Errorf("%s: vertex %d %v at radius %g", test.name, i, v, r)
			}
		}
		checkClosedMesh(t, m)
		for i, f := range m.Faces {
			if f.Kind != render.Quad {
				t.Fatalf("%s: face %d is not a quad", test.name, i)
			}
			if r3.Dot(faceNormal(m, f), faceCentroid(m, f)) <= 0 {
				t.Errorf("%s: face %d faces the solid", test.name, i)
			}
		}
	}
}

func TestDualContourPlane(t *testing.T) {
	cfg := isosurf.DefaultConfig()
	cfg.Bias = false
	n := r3.Unit(r3.Vec{X: 1, Y: 0.5, Z: 0.25})
	plane := isosurf.Func3(func(p r3.Vec) float64 { return 0.3 - r3.Dot(n, p) })
	grad := isosurf.NormalFunc3(func(r3.Vec) r3.Vec { return r3.Scale(-1, n) })
	m, err := render.DualContour3(cfg, plane, grad, bounds3)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Faces) == 0 {
		t.Fatal("plane produced no faces")
	}
	for i, v := range m.Vertices {
		if f := plane(v); math.Abs(f) > 1e-9 {
			t.Errorf("vertex %d off the plane: f=%g", i, f)
		}
	}
	// Vertices pushed onto shared cell boundaries can collapse a quad to
	// zero area, so only a wrong facing normal is an error.
	facing := 0
	for i, f := range m.Faces {
		d := r3.Dot(faceNormal(m, f), n)
		if d < -1e-12 {
			t.Errorf("face %d faces the solid", i)
		}
		if d > 1e-12 {
			facing++
		}
	}
	if facing == 0 {
		t.Error("all faces collapsed")
	}
}

func TestDualContourCellCenters(t *testing.T) {
	cfg := isosurf.DefaultConfig()
	cfg.Adaptive = false
	m, err := render.DualContour3(cfg, testSphere(t), nil, bounds3)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 128 {
		t.Errorf("want 128 vertices, got %d", len(m.Vertices))
	}
	for i, v := range m.Vertices {
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if _, frac := math.Modf(math.Abs(c)); frac != 0.5 {
				t.Errorf("vertex %d %v is not a cell center", i, v)
				break
			}
		}
	}
	checkClosedMesh(t, m)
}

func TestDualContourCircle(t *testing.T) {
	c := testCircle(t)
	cfg := isosurf.DefaultConfig()
	for _, test := range []struct {
		name    string
		normals isosurf.Normals2
	}{
		{name: "analytic", normals: c},
		{name: "central difference", normals: nil},
	} {
		contour, err := render.DualContour2(cfg, c, test.normals, bounds2)
		if err != nil {
			t.Fatal(err)
		}
		const wantSegments = 20
		if len(contour) != wantSegments {
			t.Errorf("%s: want %d segments, got %d", test.name, wantSegments, len(contour))
		}
		checkClosedContour(t, contour)
		checkSolidLeft(t, c, contour)
		for i, s := range contour {
			if r := r2.Norm(s.V[0]); math.Abs(r-testRadius) > 0.25 {
				t.Errorf("%s: segment %d starts at radius %g", test.name, i, r)
			}
		}
	}
}

// checkClosedMesh checks every edge is shared by exactly two faces that
// traverse it in opposite directions.
func checkClosedMesh(t *testing.T, m render.Mesh) {
	t.Helper()
	type edge [2]int
	directed := make(map[edge]int)
	for _, f := range m.Faces {
		idx := f.Indices()
		for i := range idx {
			directed[edge{idx[i], idx[(i+1)%len(idx)]}]++
		}
	}
	for e, n := range directed {
		if n != 1 {
			t.Errorf("edge %v traversed %d times in the same direction", e, n)
		}
		if directed[edge{e[1], e[0]}] != 1 {
			t.Errorf("edge %v has no opposite", e)
		}
	}
}

// faceNormal returns the Newell normal of a face. It is not normalized.
func faceNormal(m render.Mesh, f render.Face) r3.Vec {
	var n r3.Vec
	idx := f.Indices()
	for i := range idx {
		c, d := m.Vertices[idx[i]], m.Vertices[idx[(i+1)%len(idx)]]
		n.X += (c.Y - d.Y) * (c.Z + d.Z)
		n.Y += (c.Z - d.Z) * (c.X + d.X)
		n.Z += (c.X - d.X) * (c.Y + d.Y)
	}
	return n
}

func faceCentroid(m render.Mesh, f render.Face) r3.Vec {
	var c r3.Vec
	idx := f.Indices()
	for _, i := range idx {
		c = r3.Add(c, m.Vertices[i])
	}
	return r3.Scale(1/float64(len(idx)), c)
}
