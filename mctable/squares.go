package mctable

import "fmt"

// Square corner numbering. Bit i of a 2D case bitmask is set when corner i
// is solid.
//
//	1 ___e2___ 3
//	 |        |
//	e3        e1
//	 |________|
//	0    e0    2
//
// X points from 0 to 2 and Y from 0 to 1.
var Corners2 = [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// Edges2 lists the corners joined by each square edge. Crossing offsets are
// measured from the first corner.
var Edges2 = [4][2]uint8{{0, 2}, {2, 3}, {1, 3}, {0, 1}}

// Edge2Pair is a directed segment from a crossing on edge [0] to a crossing
// on edge [1].
type Edge2Pair [2]uint8

// Segments2 is the marching squares table. Solid lies on the left of every
// segment. The saddle masks 6 and 9 keep the two solid corners apart.
var Segments2 = [16][]Edge2Pair{
	0:  nil,
	1:  {{0, 3}},
	2:  {{3, 2}},
	3:  {{0, 2}},
	4:  {{1, 0}},
	5:  {{1, 3}},
	6:  {{1, 0}, {3, 2}},
	7:  {{1, 2}},
	8:  {{2, 1}},
	9:  {{0, 3}, {2, 1}},
	10: {{3, 1}},
	11: {{0, 1}},
	12: {{2, 0}},
	13: {{2, 3}},
	14: {{3, 0}},
	15: nil,
}

// Validate2 checks a 2D case table: every segment end lies on an edge
// separating a solid and an empty corner, and the solid region lies on the
// left of each segment.
func Validate2(table [16][]Edge2Pair) error {
	for b, segs := range table {
		bits := uint8(b)
		for is, s := range segs {
			var mid [2][2]float64
			for i, e := range s {
				if int(e) >= len(Edges2) {
					return fmt.Errorf("case %04b segment %d: edge %d out of range", b, is, e)
				}
				c := Edges2[e]
				if solid(bits, c[0]) == solid(bits, c[1]) {
					return fmt.Errorf("case %04b segment %d: edge %d does not separate solid and empty corners", b, is, e)
				}
				p, q := Corners2[c[0]], Corners2[c[1]]
				mid[i] = [2]float64{float64(p[0]+q[0]) / 2, float64(p[1]+q[1]) / 2}
			}
			dx, dy := mid[1][0]-mid[0][0], mid[1][1]-mid[0][1]
			center := [2]float64{(mid[0][0] + mid[1][0]) / 2, (mid[0][1] + mid[1][1]) / 2}
			g := signGradient2(bits, center)
			// Left normal of the segment is (-dy, dx).
			if -dy*g[0]+dx*g[1] <= 0 {
				return fmt.Errorf("case %04b segment %d: solid side is not on the left", b, is)
			}
		}
	}
	return nil
}

// signGradient2 is the bilinear analog of signGradient.
func signGradient2(bits uint8, p [2]float64) (g [2]float64) {
	for c, pos := range Corners2 {
		s := -1.0
		if solid(bits, uint8(c)) {
			s = 1
		}
		var w, dw [2]float64
		for k := 0; k < 2; k++ {
			if pos[k] == 1 {
				w[k], dw[k] = p[k], 1
			} else {
				w[k], dw[k] = 1-p[k], -1
			}
		}
		g[0] += s * dw[0] * w[1]
		g[1] += s * w[0] * dw[1]
	}
	return g
}
