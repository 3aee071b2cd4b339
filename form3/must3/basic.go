package must3

import (
	"math"

	"github.com/soypat/isosurf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Field is a 3d scalar field that is positive inside the shape, knows its
// own gradient direction and bounds.
type Field interface {
	isosurf.Field3
	isosurf.Normals3
	// Bounds returns a box containing the isosurface.
	Bounds() r3.Box
}

type sphere struct {
	radius float64
}

// Sphere returns a sphere of the given radius centered at the origin.
func Sphere(radius float64) Field {
	if !(radius > 0) {
		panic("radius must be positive")
	}
	return &sphere{radius: radius}
}

func (s *sphere) Evaluate(p r3.Vec) float64 {
	return s.radius - r3.Norm(p)
}

// Normal points towards the center.
func (s *sphere) Normal(p r3.Vec) r3.Vec {
	if p == (r3.Vec{}) {
		return r3.Vec{}
	}
	return r3.Scale(-1, r3.Unit(p))
}

func (s *sphere) Bounds() r3.Box {
	r := s.radius
	return r3.Box{Min: r3.Vec{X: -r, Y: -r, Z: -r}, Max: r3.Vec{X: r, Y: r, Z: r}}
}

type box struct {
	half r3.Vec
}

// Box returns an axis aligned box centered at the origin spanning
// -half to half.
func Box(half r3.Vec) Field {
	if !(half.X > 0 && half.Y > 0 && half.Z > 0) {
		panic("box half size must be positive")
	}
	return &box{half: half}
}

// Evaluate returns the exact distance to the box surface, positive inside.
func (b *box) Evaluate(p r3.Vec) float64 {
	q := r3.Sub(absElem(p), b.half)
	outside := r3.Norm(maxElem(q, r3.Vec{}))
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return -(outside + inside)
}

// Normal points into the box.
func (b *box) Normal(p r3.Vec) r3.Vec {
	q := r3.Sub(absElem(p), b.half)
	sign := r3.Vec{X: math.Copysign(1, p.X), Y: math.Copysign(1, p.Y), Z: math.Copysign(1, p.Z)}
	out := maxElem(q, r3.Vec{})
	if out != (r3.Vec{}) {
		n := r3.Unit(out)
		return r3.Vec{X: -n.X * sign.X, Y: -n.Y * sign.Y, Z: -n.Z * sign.Z}
	}
	switch {
	case q.X >= q.Y && q.X >= q.Z:
		return r3.Vec{X: -sign.X}
	case q.Y >= q.Z:
		return r3.Vec{Y: -sign.Y}
	}
	return r3.Vec{Z: -sign.Z}
}

func (b *box) Bounds() r3.Box {
	return r3.Box{Min: r3.Scale(-1, b.half), Max: b.half}
}

// Union of two fields.
func Union(a, b Field) Field {
	if a == nil || b == nil {
		panic("nil field")
	}
	return &union{a: a, b: b}
}

type union struct {
	a, b Field
}

func (u *union) Evaluate(p r3.Vec) float64 {
	return math.Max(u.a.Evaluate(p), u.b.Evaluate(p))
}

func (u *union) Normal(p r3.Vec) r3.Vec {
	if u.a.Evaluate(p) >= u.b.Evaluate(p) {
		return u.a.Normal(p)
	}
	return u.b.Normal(p)
}

func (u *union) Bounds() r3.Box {
	ba, bb := u.a.Bounds(), u.b.Bounds()
	return r3.Box{Min: minElem(ba.Min, bb.Min), Max: maxElem(ba.Max, bb.Max)}
}

// Intersect of two fields.
func Intersect(a, b Field) Field {
	if a == nil || b == nil {
		panic("nil field")
	}
	return &intersect{a: a, b: b}
}

type intersect struct {
	a, b Field
}

func (s *intersect) Evaluate(p r3.Vec) float64 {
	return math.Min(s.a.Evaluate(p), s.b.Evaluate(p))
}

func (s *intersect) Normal(p r3.Vec) r3.Vec {
	if s.a.Evaluate(p) <= s.b.Evaluate(p) {
		return s.a.Normal(p)
	}
	return s.b.Normal(p)
}

func (s *intersect) Bounds() r3.Box {
	ba, bb := s.a.Bounds(), s.b.Bounds()
	return r3.Box{Min: maxElem(ba.Min, bb.Min), Max: minElem(ba.Max, bb.Max)}
}

// Translate moves a field by v.
func Translate(f Field, v r3.Vec) Field {
	if f == nil {
		panic("nil field")
	}
	return &translate{f: f, v: v}
}

type translate struct {
	f Field
	v r3.Vec
}

func (t *translate) Evaluate(p r3.Vec) float64 { return t.f.Evaluate(r3.Sub(p, t.v)) }

func (t *translate) Normal(p r3.Vec) r3.Vec { return t.f.Normal(r3.Sub(p, t.v)) }

func (t *translate) Bounds() r3.Box {
	b := t.f.Bounds()
	return r3.Box{Min: r3.Add(b.Min, t.v), Max: r3.Add(b.Max, t.v)}
}

func absElem(a r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(a.X), Y: math.Abs(a.Y), Z: math.Abs(a.Z)}
}

func maxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

func minElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}
