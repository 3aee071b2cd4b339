package mctable

import (
	"fmt"
)

// Validate checks a 3D case table. It returns an error describing the first
// violation of the following:
//   - every triangle edge joins a solid and an empty corner
//   - every triangle edge touches a solid corner
//   - every triangle faces the empty side of the cube
//   - two cells sharing a face whose corner signs agree produce the same
//     segments on that face, traversed in opposite directions
//   - the empty and full cases have no triangles
func Validate(cases [256]Case) error {
	if len(cases[0]) != 0 || len(cases[255]) != 0 {
		return fmt.Errorf("empty and full cases must have no triangles")
	}
	for b, c := range cases {
		bits := uint8(b)
		for it, t := range c {
			for _, e := range t {
				if int(e) >= len(Edges3) {
					return fmt.Errorf("case %08b triangle %d: edge %d out of range", b, it, e)
				}
				if !separates(bits, e) {
					return fmt.Errorf("case %08b triangle %d: edge %d does not separate solid and empty corners", b, it, e)
				}
				ends := Edges3[e]
				if !solid(bits, ends[0]) && !solid(bits, ends[1]) {
					return fmt.Errorf("case %08b triangle %d: edge %d touches no solid corner", b, it, e)
				}
			}
			if !facesEmpty(bits, t) {
				return fmt.Errorf("case %08b triangle %d: winding faces solid side", b, it)
			}
		}
	}
	return validateFaces(cases)
}

// validateFaces checks that for every axis, a low cell's high face carries
// the reverse of the segments on the adjacent high cell's low face.
func validateFaces(cases [256]Case) error {
	for axis := 0; axis < 3; axis++ {
		loEdges, hiEdges := faceEdges(axis, 0), faceEdges(axis, 1)
		var loCorners []uint8
		for c := range Corners3 {
			if Corners3[c][axis] == 0 {
				loCorners = append(loCorners, uint8(c))
			}
		}
		var hiSegs, loSegs [256][]segment
		for b := range cases {
			hiSegs[b] = faceSegments(cases[b], hiEdges)
			// Express the low face segments in high face edges, reversed.
			segs := faceSegments(cases[b], loEdges)
			moved := make([]segment, len(segs))
			for i, s := range segs {
				moved[i] = segment{translateEdge(s[1], axis), translateEdge(s[0], axis)}
			}
			loSegs[b] = sortSegments(moved)
		}
		for a := 0; a < 256; a++ {
			for b := 0; b < 256; b++ {
				if !sharesFace(uint8(a), uint8(b), loCorners, axis) {
					continue
				}
				if !equalSegments(hiSegs[a], loSegs[b]) {
					return fmt.Errorf("axis %d: case %08b and case %08b disagree on their shared face", axis, a, b)
				}
			}
		}
	}
	return nil
}

// sharesFace reports whether the high face of cell a along axis has the same
// corner signs as the low face of cell b.
func sharesFace(a, b uint8, loCorners []uint8, axis int) bool {
	for _, c := range loCorners {
		if solid(a, translateCorner(c, axis)) != solid(b, c) {
			return false
		}
	}
	return true
}

// facesEmpty reports whether the triangle built on the midpoints of its edges
// has a right handed normal pointing against the gradient of the trilinear
// interpolation of the corner signs.
func facesEmpty(bits uint8, t Triangle) bool {
	var p [3][3]float64
	for i, e := range t {
		a, b := Corners3[Edges3[e][0]], Corners3[Edges3[e][1]]
		for k := 0; k < 3; k++ {
			p[i][k] = float64(a[k]+b[k]) / 2
		}
	}
	u := sub3(p[1], p[0])
	v := sub3(p[2], p[0])
	n := [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	var centroid [3]float64
	for k := range centroid {
		centroid[k] = (p[0][k] + p[1][k] + p[2][k]) / 3
	}
	g := signGradient(bits, centroid)
	return n[0]*g[0]+n[1]*g[1]+n[2]*g[2] < 0
}

// signGradient is the gradient at p of the trilinear interpolation of +1 at
// solid corners and -1 at empty corners.
func signGradient(bits uint8, p [3]float64) (g [3]float64) {
	for c, pos := range Corners3 {
		s := -1.0
		if solid(bits, uint8(c)) {
			s = 1
		}
		var w, dw [3]float64
		for k := 0; k < 3; k++ {
			if pos[k] == 1 {
				w[k], dw[k] = p[k], 1
			} else {
				w[k], dw[k] = 1-p[k], -1
			}
		}
		g[0] += s * dw[0] * w[1] * w[2]
		g[1] += s * w[0] * dw[1] * w[2]
		g[2] += s * w[0] * w[1] * dw[2]
	}
	return g
}

func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}
