package qef

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

var approx = cmpopts.EquateApprox(0, tol)

func TestSolvePlaneContainment(t *testing.T) {
	n := r3.Unit(r3.Vec{X: 1, Y: 2, Z: 2})
	p := r3.Vec{X: 0.3, Y: 0.4, Z: 0.5}
	r := New3([]r3.Vec{p}, []r3.Vec{n}).Solve()
	if r.Residual > tol {
		t.Errorf("residual %g, want ~0", r.Residual)
	}
	got := r3.Dot(r.Vec3(), n)
	if math.Abs(got-r3.Dot(p, n)) > tol {
		t.Errorf("solution not on plane: dot %g, want %g", got, r3.Dot(p, n))
	}
	// Minimum norm solution of a single plane is its foot from the origin.
	want := r3.Scale(r3.Dot(p, n), n)
	if diff := cmp.Diff(want, r.Vec3(), approx); diff != "" {
		t.Errorf("minimum norm solution mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveLineIntersection2D(t *testing.T) {
	positions := []r2.Vec{{X: 0.3, Y: 0.9}, {X: 0.5, Y: 0.5}}
	normals := []r2.Vec{{X: 1}, r2.Unit(r2.Vec{X: 1, Y: 1})}
	r := New2(positions, normals).Solve()
	if diff := cmp.Diff(r2.Vec{X: 0.3, Y: 0.7}, r.Vec2(), approx); diff != "" {
		t.Errorf("intersection mismatch (-want +got):\n%s", diff)
	}
	if r.Residual > tol {
		t.Errorf("residual %g, want ~0", r.Residual)
	}
}

func TestSolveRankDeficient(t *testing.T) {
	for _, test := range []struct {
		name      string
		positions []r3.Vec
		normals   []r3.Vec
		want      r3.Vec
		residual  float64
	}{
		{
			name:      "repeated normal",
			positions: []r3.Vec{{X: 2, Y: 1}, {X: 2, Y: -4, Z: 3}},
			normals:   []r3.Vec{{X: 1}, {X: 1}},
			want:      r3.Vec{X: 2},
		},
		{
			name:      "opposite normals",
			positions: []r3.Vec{{Y: 1}, {Y: 3}},
			normals:   []r3.Vec{{Y: 1}, {Y: -1}},
			want:      r3.Vec{Y: 2},
			residual:  math.Sqrt2,
		},
		{
			name: "no rows",
			want: r3.Vec{},
		},
		{
			name:      "zero normal",
			positions: []r3.Vec{{X: 1, Y: 1, Z: 1}},
			normals:   []r3.Vec{{}},
			want:      r3.Vec{},
		},
	} {
		r := New3(test.positions, test.normals).Solve()
		if diff := cmp.Diff(test.want, r.Vec3(), approx); diff != "" {
			t.Errorf("%s: solution mismatch (-want +got):\n%s", test.name, diff)
		}
		if math.Abs(r.Residual-test.residual) > tol {
			t.Errorf("%s: residual %g, want %g", test.name, r.Residual, test.residual)
		}
	}
}

func TestFixAxis(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	q := New3([]r3.Vec{p, p, p}, []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}})

	r := q.FixAxis(1, 5).Solve()
	if diff := cmp.Diff([]float64{1, 5, 3}, r.Position, approx); diff != "" {
		t.Errorf("fix y mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(r.Residual-3) > tol {
		t.Errorf("fix y residual %g, want 3", r.Residual)
	}

	// Axes are addressed by their original index regardless of fix order.
	q2 := q.FixAxis(2, 7).FixAxis(0, -1)
	if q2.Free() != 1 || q2.Dims() != 3 {
		t.Fatalf("got %d free of %d dims, want 1 of 3", q2.Free(), q2.Dims())
	}
	r = q2.Solve()
	if diff := cmp.Diff([]float64{-1, 2, 7}, r.Position, approx); diff != "" {
		t.Errorf("fix z,x mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(r.Residual-math.Sqrt(20)) > tol {
		t.Errorf("fix z,x residual %g, want sqrt(20)", r.Residual)
	}

	all := q.FixAxis(0, 0).FixAxis(1, 0).FixAxis(2, 0)
	r = all.Solve()
	if diff := cmp.Diff([]float64{0, 0, 0}, r.Position, approx); diff != "" {
		t.Errorf("all fixed mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(r.Residual-r3.Norm(p)) > tol {
		t.Errorf("all fixed residual %g, want %g", r.Residual, r3.Norm(p))
	}

	// Receiver is not modified.
	if q.Free() != 3 || q.IsFixed(1) {
		t.Error("FixAxis modified its receiver")
	}
	r = q.Solve()
	if diff := cmp.Diff([]float64{1, 2, 3}, r.Position, approx); diff != "" {
		t.Errorf("receiver solve mismatch (-want +got):\n%s", diff)
	}
}

func TestFixAxisPanics(t *testing.T) {
	q := New2([]r2.Vec{{}}, []r2.Vec{{X: 1}})
	for _, test := range []struct {
		name string
		fn   func()
	}{
		{name: "twice", fn: func() { q.FixAxis(0, 1).FixAxis(0, 2) }},
		{name: "negative", fn: func() { q.FixAxis(-1, 0) }},
		{name: "out of range", fn: func() { q.FixAxis(2, 0) }},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", test.name)
				}
			}()
			test.fn()
		}()
	}
}

func TestEvaluate(t *testing.T) {
	q := New2([]r2.Vec{{X: 1}, {Y: 1}}, []r2.Vec{{X: 1}, {Y: 1}})
	if got := q.Evaluate([]float64{1, 1}); got > tol {
		t.Errorf("evaluate at solution got %g, want 0", got)
	}
	if got := q.Evaluate([]float64{4, 5}); math.Abs(got-5) > tol {
		t.Errorf("evaluate got %g, want 5", got)
	}
	r := q.FixAxis(0, 4).EvaluateWithPosition([]float64{5})
	if diff := cmp.Diff(Result{Residual: 5, Position: []float64{4, 5}}, r, approx); diff != "" {
		t.Errorf("evaluate with position mismatch (-want +got):\n%s", diff)
	}
}

func TestNewGeneric(t *testing.T) {
	pos := [][]float64{{0.3, 0.9}, {0.5, 0.5}}
	nrm := [][]float64{{1, 0}, {math.Sqrt2 / 2, math.Sqrt2 / 2}}
	got := New(2, pos, nrm).Solve()
	want := New2([]r2.Vec{{X: 0.3, Y: 0.9}, {X: 0.5, Y: 0.5}}, []r2.Vec{{X: 1}, {X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}}).Solve()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("generic and 2D constructors disagree (-want +got):\n%s", diff)
	}
}

func TestSolveBounded(t *testing.T) {
	lo, hi := []float64{0, 0}, []float64{1, 1}
	for _, test := range []struct {
		name      string
		positions []r2.Vec
		normals   []r2.Vec
		want      Bounded
	}{
		{
			name:      "inside",
			positions: []r2.Vec{{X: 0.3, Y: 0.9}, {X: 0.5, Y: 0.5}},
			normals:   []r2.Vec{{X: 1}, r2.Unit(r2.Vec{X: 1, Y: 1})},
			want:      Bounded{Result: Result{Position: []float64{0.3, 0.7}}},
		},
		{
			name:      "side",
			positions: []r2.Vec{{X: 5}},
			normals:   []r2.Vec{{X: 1}},
			want:      Bounded{Result: Result{Residual: 4, Position: []float64{1, 0}}, Fixed: 1},
		},
		{
			name:      "corner",
			positions: []r2.Vec{{X: 5}, {Y: 5}},
			normals:   []r2.Vec{{X: 1}, {Y: 1}},
			want:      Bounded{Result: Result{Residual: math.Sqrt(32), Position: []float64{1, 1}}, Fixed: 2},
		},
	} {
		got := New2(test.positions, test.normals).SolveBounded(lo, hi)
		if diff := cmp.Diff(test.want, got, approx); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestSolveBoundedTieBreak(t *testing.T) {
	// The line x+y = 3 misses the unit square so both tiers before the
	// corners come up empty. Corners (0,1) and (1,0) tie, (1,1) is best.
	n := r2.Unit(r2.Vec{X: 1, Y: 1})
	q := New2([]r2.Vec{{X: 1.5, Y: 1.5}}, []r2.Vec{n})
	got := q.SolveBounded([]float64{0, 0}, []float64{1, 1})
	if got.Fixed != 2 {
		t.Fatalf("want corner tier, got %d fixed axes", got.Fixed)
	}
	if diff := cmp.Diff([]float64{1, 1}, got.Position, approx); diff != "" {
		t.Errorf("corner mismatch (-want +got):\n%s", diff)
	}

	// The line y = 0.5 crosses both x sides of a box shifted away from the
	// origin with zero residual. The lower x side is enumerated first.
	q = New2([]r2.Vec{{Y: 0.5}}, []r2.Vec{{Y: 1}})
	got = q.SolveBounded([]float64{2, 0}, []float64{3, 1})
	want := Bounded{Result: Result{Position: []float64{2, 0.5}}, Fixed: 1}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("side tie mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveBoundedContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lo, hi := []float64{0, 0, 0}, []float64{1, 1, 1}
	for i := 0; i < 2000; i++ {
		n := 2 + rng.Intn(3)
		positions := make([]r3.Vec, n)
		normals := make([]r3.Vec, n)
		for j := range positions {
			positions[j] = r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
			normals[j] = r3.Unit(r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()})
		}
		got := New3(positions, normals).SolveBounded(lo, hi)
		if got.Outside {
			t.Fatalf("case %d: no candidate inside unit box", i)
		}
		for axis, v := range got.Position {
			if v < lo[axis] || v > hi[axis] {
				t.Fatalf("case %d: axis %d value %g outside [0,1]", i, axis, v)
			}
		}
	}
}

func TestEnumerationOrder(t *testing.T) {
	var combos [][]int
	combinations(3, 2, func(axes []int) { combos = append(combos, append([]int(nil), axes...)) })
	if diff := cmp.Diff([][]int{{0, 1}, {0, 2}, {1, 2}}, combos); diff != "" {
		t.Errorf("combinations mismatch (-want +got):\n%s", diff)
	}
	var got [][]int
	sides(2, func(side []int) { got = append(got, append([]int(nil), side...)) })
	if diff := cmp.Diff([][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, got); diff != "" {
		t.Errorf("sides mismatch (-want +got):\n%s", diff)
	}
}
