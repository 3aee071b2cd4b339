package render

import "gonum.org/v1/gonum/spatial/r2"

// Segment is a directed piece of a 2D contour. The solid region lies on
// the left of V[0]→V[1]. Prop is the material id painted on the segment
// by MarchingSquaresProp2 and is zero otherwise.
type Segment struct {
	V    [2]r2.Vec
	Prop int
}

// Swap returns the segment reversed if swap is true.
func (s Segment) Swap(swap bool) Segment {
	if swap {
		s.V[0], s.V[1] = s.V[1], s.V[0]
	}
	return s
}

// Contour is an unordered list of segments.
type Contour []Segment

// Translate returns a copy of c with every segment moved by v.
func (c Contour) Translate(v r2.Vec) Contour {
	out := make(Contour, len(c))
	for i, s := range c {
		s.V[0] = r2.Add(s.V[0], v)
		s.V[1] = r2.Add(s.V[1], v)
		out[i] = s
	}
	return out
}

// Bounds returns the smallest box containing every segment end.
func (c Contour) Bounds() r2.Box {
	if len(c) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: c[0].V[0], Max: c[0].V[0]}
	for _, s := range c {
		for _, p := range s.V {
			b.Min.X = min(b.Min.X, p.X)
			b.Min.Y = min(b.Min.Y, p.Y)
			b.Max.X = max(b.Max.X, p.X)
			b.Max.Y = max(b.Max.Y, p.Y)
		}
	}
	return b
}
