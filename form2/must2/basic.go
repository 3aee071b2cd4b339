package must2

import (
	"math"

	"github.com/soypat/isosurf"
	"gonum.org/v1/gonum/spatial/r2"
)

// Field is a 2d scalar field that is positive inside the shape, knows its
// own gradient direction and bounds.
type Field interface {
	isosurf.Field2
	isosurf.Normals2
	// Bounds returns a box containing the zero contour.
	Bounds() r2.Box
}

// circle is positive inside a circle centered at the origin.
type circle struct {
	radius float64
}

// Circle returns a circle of the given radius centered at the origin.
func Circle(radius float64) Field {
	if !(radius > 0) {
		panic("radius must be positive")
	}
	return &circle{radius: radius}
}

// Evaluate returns the distance to the circle, positive inside.
func (c *circle) Evaluate(p r2.Vec) float64 {
	return c.radius - r2.Norm(p)
}

// Normal points towards the center.
func (c *circle) Normal(p r2.Vec) r2.Vec {
	if p == (r2.Vec{}) {
		return r2.Vec{}
	}
	return r2.Scale(-1, r2.Unit(p))
}

func (c *circle) Bounds() r2.Box {
	return r2.Box{Min: r2.Vec{X: -c.radius, Y: -c.radius}, Max: r2.Vec{X: c.radius, Y: c.radius}}
}

// square is positive inside an axis aligned square centered at the origin.
type square struct {
	half float64
}

// Square returns a square with side 2*half centered at the origin.
func Square(half float64) Field {
	if !(half > 0) {
		panic("half side must be positive")
	}
	return &square{half: half}
}

func (s *square) Evaluate(p r2.Vec) float64 {
	return s.half - math.Max(math.Abs(p.X), math.Abs(p.Y))
}

// Normal points towards the center, perpendicular to the nearest side.
func (s *square) Normal(p r2.Vec) r2.Vec {
	if math.Abs(p.X) > math.Abs(p.Y) {
		return r2.Vec{X: -math.Copysign(1, p.X)}
	}
	return r2.Vec{Y: -math.Copysign(1, p.Y)}
}

func (s *square) Bounds() r2.Box {
	return r2.Box{Min: r2.Vec{X: -s.half, Y: -s.half}, Max: r2.Vec{X: s.half, Y: s.half}}
}

// tshape is solid only at four lattice points.
type tshape struct{}

var tshapePoints = [4]r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}}

// TShape returns a field that is 1 at the lattice points (0,0), (0,1),
// (0,-1) and (1,0) and -1 everywhere else. Sampled with unit cells aligned
// to the integers it draws a T.
func TShape() Field { return tshape{} }

func (tshape) Evaluate(p r2.Vec) float64 {
	for _, v := range tshapePoints {
		if p == v {
			return 1
		}
	}
	return -1
}

// Normal returns the zero vector since the field is flat between samples.
func (tshape) Normal(p r2.Vec) r2.Vec { return r2.Vec{} }

func (tshape) Bounds() r2.Box {
	return r2.Box{Min: r2.Vec{X: -1, Y: -2}, Max: r2.Vec{X: 2, Y: 2}}
}

// Union of two fields. Solid where either is solid.
func Union(a, b Field) Field {
	if a == nil || b == nil {
		panic("nil field")
	}
	return &union{a: a, b: b}
}

type union struct {
	a, b Field
}

func (u *union) Evaluate(p r2.Vec) float64 {
	return math.Max(u.a.Evaluate(p), u.b.Evaluate(p))
}

func (u *union) Normal(p r2.Vec) r2.Vec {
	if u.a.Evaluate(p) >= u.b.Evaluate(p) {
		return u.a.Normal(p)
	}
	return u.b.Normal(p)
}

func (u *union) Bounds() r2.Box {
	ba, bb := u.a.Bounds(), u.b.Bounds()
	return r2.Box{
		Min: r2.Vec{X: math.Min(ba.Min.X, bb.Min.X), Y: math.Min(ba.Min.Y, bb.Min.Y)},
		Max: r2.Vec{X: math.Max(ba.Max.X, bb.Max.X), Y: math.Max(ba.Max.Y, bb.Max.Y)},
	}
}

// Intersect of two fields. Solid where both are solid.
func Intersect(a, b Field) Field {
	if a == nil || b == nil {
		panic("nil field")
	}
	return &intersect{a: a, b: b}
}

type intersect struct {
	a, b Field
}

func (s *intersect) Evaluate(p r2.Vec) float64 {
	return math.Min(s.a.Evaluate(p), s.b.Evaluate(p))
}

func (s *intersect) Normal(p r2.Vec) r2.Vec {
	if s.a.Evaluate(p) <= s.b.Evaluate(p) {
		return s.a.Normal(p)
	}
	return s.b.Normal(p)
}

// Bounds returns the overlap of both bounds. The result is empty
// if they do not overlap.
func (s *intersect) Bounds() r2.Box {
	ba, bb := s.a.Bounds(), s.b.Bounds()
	return r2.Box{
		Min: r2.Vec{X: math.Max(ba.Min.X, bb.Min.X), Y: math.Max(ba.Min.Y, bb.Min.Y)},
		Max: r2.Vec{X: math.Min(ba.Max.X, bb.Max.X), Y: math.Min(ba.Max.Y, bb.Max.Y)},
	}
}

// Translate moves a field by v.
func Translate(f Field, v r2.Vec) Field {
	if f == nil {
		panic("nil field")
	}
	return &translate{f: f, v: v}
}

type translate struct {
	f Field
	v r2.Vec
}

func (t *translate) Evaluate(p r2.Vec) float64 { return t.f.Evaluate(r2.Sub(p, t.v)) }

func (t *translate) Normal(p r2.Vec) r2.Vec { return t.f.Normal(r2.Sub(p, t.v)) }

func (t *translate) Bounds() r2.Box {
	b := t.f.Bounds()
	return r2.Box{Min: r2.Add(b.Min, t.v), Max: r2.Add(b.Max, t.v)}
}
