package isosurf

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestInterpolate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CellSize = 2
	for _, test := range []struct {
		v0, v1   float64
		adaptive bool
		want     float64
	}{
		{v0: -1, v1: 1, adaptive: true, want: 1},
		{v0: 1, v1: -3, adaptive: true, want: 0.5},
		{v0: -3, v1: 1, adaptive: true, want: 1.5},
		// Zero is empty, so a zero sample is the crossing itself.
		{v0: 0, v1: 2, adaptive: true, want: 0},
		{v0: -3, v1: 1, adaptive: false, want: 1},
		{v0: 5, v1: 0, adaptive: false, want: 1},
	} {
		cfg.Adaptive = test.adaptive
		got := cfg.Interpolate(test.v0, test.v1)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Interpolate(%g, %g) adaptive=%v: got %g, want %g", test.v0, test.v1, test.adaptive, got, test.want)
		}
	}
}

func TestInterpolateLinearRoot(t *testing.T) {
	// For a linear field the interpolated crossing is an exact root.
	cfg := DefaultConfig()
	cfg.CellSize = 0.25
	f := func(p r3.Vec) float64 { return 0.7 - 2*p.X + 0.3*p.Y }
	a := r3.Vec{X: 0.25, Y: 0.5}
	b := r3.Add(a, r3.Vec{X: cfg.CellSize})
	off := cfg.Interpolate(f(a), f(b))
	p := r3.Add(a, r3.Scale(off/cfg.CellSize, r3.Sub(b, a)))
	if got := f(p); math.Abs(got) > 1e-12 {
		t.Errorf("field at crossing %v = %g, want 0", p, got)
	}
}

func TestInterpolatePanics(t *testing.T) {
	cfg := DefaultConfig()
	for _, v := range [][2]float64{{1, 2}, {-1, -2}, {0, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Interpolate(%g, %g) did not panic", v[0], v[1])
				}
			}()
			cfg.Interpolate(v[0], v[1])
		}()
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "zero cell", modify: func(c *Config) { c.CellSize = 0 }},
		{name: "NaN cell", modify: func(c *Config) { c.CellSize = math.NaN() }},
		{name: "inf cell", modify: func(c *Config) { c.CellSize = math.Inf(1) }},
		{name: "zero bias", modify: func(c *Config) { c.BiasStrength = 0 }},
		{name: "negative step", modify: func(c *Config) { c.Step = -1 }},
	} {
		cfg := DefaultConfig()
		test.modify(&cfg)
		if cfg.Validate() == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
	cfg := DefaultConfig()
	cfg.Bias = false
	cfg.BiasStrength = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("bias strength checked with bias disabled: %v", err)
	}
}

func TestGrid(t *testing.T) {
	for _, test := range []struct {
		bounds r3.Box
		size   float64
		want   V3i
	}{
		{bounds: r3.Box{Max: r3.Vec{X: 1, Y: 1, Z: 1}}, size: 0.1, want: V3i{10, 10, 10}},
		{bounds: r3.Box{Min: r3.Vec{X: -2, Y: -2, Z: -2}, Max: r3.Vec{X: 2, Y: 2, Z: 2}}, size: 0.5, want: V3i{8, 8, 8}},
		{bounds: r3.Box{Max: r3.Vec{X: 1.05, Y: 0.3, Z: 3}}, size: 1, want: V3i{2, 1, 3}},
	} {
		g, err := NewGrid3(test.bounds, test.size)
		if err != nil {
			t.Fatal(err)
		}
		if g.Cells != test.want {
			t.Errorf("cells for %v size %g: got %v, want %v", test.bounds, test.size, g.Cells, test.want)
		}
		seen := make(map[int]bool)
		for i := 0; i < g.Cells[0]; i++ {
			for j := 0; j < g.Cells[1]; j++ {
				for k := 0; k < g.Cells[2]; k++ {
					idx := g.Index(V3i{i, j, k})
					if idx < 0 || idx >= g.Len() || seen[idx] {
						t.Fatalf("bad index %d for cell %v", idx, V3i{i, j, k})
					}
					seen[idx] = true
				}
			}
		}
	}
	g, _ := NewGrid3(r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}, 0.5)
	cell := g.Cell(V3i{1, 2, 3})
	want := r3.Box{Min: r3.Vec{X: -0.5, Y: 0, Z: 0.5}, Max: r3.Vec{X: 0, Y: 0.5, Z: 1}}
	if cell != want {
		t.Errorf("cell box got %v, want %v", cell, want)
	}
	if g.Contains(V3i{4, 0, 0}) || g.Contains(V3i{0, -1, 0}) || !g.Contains(V3i{3, 3, 3}) {
		t.Error("Contains mismatch")
	}

	if _, err := NewGrid3(r3.Box{Max: r3.Vec{X: 1, Y: 0, Z: 1}}, 1); err == nil {
		t.Error("expected error for flat box")
	}
	if _, err := NewGrid2(r2.Box{Max: r2.Vec{X: 1, Y: 1}}, 0); err == nil {
		t.Error("expected error for zero cell size")
	}
	g2, err := NewGrid2(r2.Box{Min: r2.Vec{X: -1.5, Y: -1.5}, Max: r2.Vec{X: 1.5, Y: 1.5}}, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if g2.Cells != (V2i{10, 10}) {
		t.Errorf("2d cells got %v, want [10 10]", g2.Cells)
	}
}

func TestCentralDiff(t *testing.T) {
	sphere := Func3(func(p r3.Vec) float64 { return 2 - r3.Norm(p) })
	n := CentralDiff3(sphere, 1e-4)
	p := r3.Vec{X: 1, Y: 1, Z: 1}
	want := r3.Scale(-1, r3.Unit(p))
	got := n.Normal(p)
	if r3.Norm(r3.Sub(got, want)) > 1e-6 {
		t.Errorf("sphere normal got %v, want %v", got, want)
	}
	flat := Func2(func(p r2.Vec) float64 { return 1 })
	if got := CentralDiff2(flat, 0.1).Normal(r2.Vec{X: 3}); got != (r2.Vec{}) {
		t.Errorf("constant field normal got %v, want zero", got)
	}
	line := Func2(func(p r2.Vec) float64 { return 3*p.X - 4*p.Y })
	if got := Normal2(line, r2.Vec{}, 0.5); r2.Norm(r2.Sub(got, r2.Vec{X: 0.6, Y: -0.8})) > 1e-12 {
		t.Errorf("linear field normal got %v", got)
	}
}
