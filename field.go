package isosurf

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Field3 is the interface to a 3d scalar field. The isosurface is the set of
// points where the field is zero.
type Field3 interface {
	// Evaluate returns the field value at p. A point is solid
	// if and only if the returned value is strictly positive.
	Evaluate(p r3.Vec) float64
}

// Field2 is the interface to a 2d scalar field. See Field3.
type Field2 interface {
	Evaluate(p r2.Vec) float64
}

// Normals3 returns the unit surface normal of a field at a point.
// Dual contouring only calls Normal on edge crossing points.
type Normals3 interface {
	Normal(p r3.Vec) r3.Vec
}

// Normals2 returns the unit contour normal of a 2d field at a point.
type Normals2 interface {
	Normal(p r2.Vec) r2.Vec
}

// Func3 adapts an ordinary function to the Field3 interface.
type Func3 func(p r3.Vec) float64

// Evaluate returns f(p).
func (f Func3) Evaluate(p r3.Vec) float64 { return f(p) }

// Func2 adapts an ordinary function to the Field2 interface.
type Func2 func(p r2.Vec) float64

// Evaluate returns f(p).
func (f Func2) Evaluate(p r2.Vec) float64 { return f(p) }

// NormalFunc3 adapts an ordinary function to the Normals3 interface.
type NormalFunc3 func(p r3.Vec) r3.Vec

func (f NormalFunc3) Normal(p r3.Vec) r3.Vec { return f(p) }

// NormalFunc2 adapts an ordinary function to the Normals2 interface.
type NormalFunc2 func(p r2.Vec) r2.Vec

func (f NormalFunc2) Normal(p r2.Vec) r2.Vec { return f(p) }

// CentralDiff3 returns the normals of f approximated by central
// differences with the given step. The returned normals point towards
// increasing field values and are unit length where the gradient is non-zero.
func CentralDiff3(f Field3, step float64) Normals3 {
	if step <= 0 {
		panic("step must be positive")
	}
	return NormalFunc3(func(p r3.Vec) r3.Vec {
		return Normal3(f, p, step)
	})
}

// CentralDiff2 is the 2d analog of CentralDiff3.
func CentralDiff2(f Field2, step float64) Normals2 {
	if step <= 0 {
		panic("step must be positive")
	}
	return NormalFunc2(func(p r2.Vec) r2.Vec {
		return Normal2(f, p, step)
	})
}

// Normal3 returns the normalized gradient of a Field3 at a point (doesn't need to be on the surface).
// Computed by sampling it several times inside a box of side 2*eps centered on p.
func Normal3(f Field3, p r3.Vec, eps float64) r3.Vec {
	g := r3.Vec{
		X: f.Evaluate(r3.Add(p, r3.Vec{X: eps})) - f.Evaluate(r3.Add(p, r3.Vec{X: -eps})),
		Y: f.Evaluate(r3.Add(p, r3.Vec{Y: eps})) - f.Evaluate(r3.Add(p, r3.Vec{Y: -eps})),
		Z: f.Evaluate(r3.Add(p, r3.Vec{Z: eps})) - f.Evaluate(r3.Add(p, r3.Vec{Z: -eps})),
	}
	if g == (r3.Vec{}) {
		return g
	}
	return r3.Unit(g)
}

// Normal2 returns the normalized gradient of a Field2 at a point.
// Computed by sampling it several times inside a box of side 2*eps centered on p.
func Normal2(f Field2, p r2.Vec, eps float64) r2.Vec {
	g := r2.Vec{
		X: f.Evaluate(r2.Add(p, r2.Vec{X: eps})) - f.Evaluate(r2.Add(p, r2.Vec{X: -eps})),
		Y: f.Evaluate(r2.Add(p, r2.Vec{Y: eps})) - f.Evaluate(r2.Add(p, r2.Vec{Y: -eps})),
	}
	if g == (r2.Vec{}) {
		return g
	}
	return r2.Unit(g)
}
