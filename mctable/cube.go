package mctable

import "slices"

// Cube corner numbering. Bit i of a case bitmask is set when corner i is solid.
//
//	    7 ________ 6
//	     /|      /|
//	   4/_|____5/ |
//	    | |_____|_|
//	    | /3    | /2
//	    |/______|/
//	    0       1
//
// X points from 0 to 1, Y from 0 to 3 and Z from 0 to 4.
var Corners3 = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// Edges3 lists the corners joined by each of the 12 cube edges. Crossing
// offsets along an edge are measured from its first corner.
var Edges3 = [12][2]uint8{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// MaxTriangles is the largest number of triangles in any case of Cases3.
const MaxTriangles = 5

// Triangle names the three cube edges holding its vertices.
type Triangle [3]uint8

// Case is the ordered triangle list for a single bitmask.
type Case []Triangle

// Reversed returns a copy of the case with the winding of every triangle reversed.
func (c Case) Reversed() Case {
	r := make(Case, len(c))
	for i, t := range c {
		r[i] = Triangle{t[2], t[1], t[0]}
	}
	return r
}

// edgeByCorners maps an unordered corner pair to its edge id. Pairs that are
// not cube edges map to noEdge.
var edgeByCorners [8][8]uint8

const noEdge = 0xff

func init() {
	for i := range edgeByCorners {
		for j := range edgeByCorners[i] {
			edgeByCorners[i][j] = noEdge
		}
	}
	for e, c := range Edges3 {
		edgeByCorners[c[0]][c[1]] = uint8(e)
		edgeByCorners[c[1]][c[0]] = uint8(e)
	}
}

// separates reports whether edge e joins a solid and an empty corner under bits.
func separates(bits uint8, e uint8) bool {
	c := Edges3[e]
	return solid(bits, c[0]) != solid(bits, c[1])
}

func solid(bits uint8, corner uint8) bool { return bits>>corner&1 == 1 }

// faceEdges returns the 4 edges lying on the cube face perpendicular to axis
// at coordinate side (0 or 1).
func faceEdges(axis, side int) (edges []uint8) {
	for e, c := range Edges3 {
		if Corners3[c[0]][axis] == side && Corners3[c[1]][axis] == side {
			edges = append(edges, uint8(e))
		}
	}
	return edges
}

// translateCorner maps a corner on the low face of axis to the corner at the
// same position on the high face.
func translateCorner(c uint8, axis int) uint8 {
	p := Corners3[c]
	p[axis] = 1
	for i, q := range Corners3 {
		if q == p {
			return uint8(i)
		}
	}
	panic("unreachable")
}

func translateEdge(e uint8, axis int) uint8 {
	c := Edges3[e]
	return edgeByCorners[translateCorner(c[0], axis)][translateCorner(c[1], axis)]
}

// segment is a directed triangle side with both ends on the same cube face.
type segment [2]uint8

// faceSegments returns the sorted set of directed triangle sides of c that
// lie on the face made of edges fe.
func faceSegments(c Case, fe []uint8) []segment {
	onFace := func(e uint8) bool {
		for _, f := range fe {
			if f == e {
				return true
			}
		}
		return false
	}
	var segs []segment
	for _, t := range c {
		for i := 0; i < 3; i++ {
			a, b := t[i], t[(i+1)%3]
			if onFace(a) && onFace(b) {
				segs = append(segs, segment{a, b})
			}
		}
	}
	return sortSegments(segs)
}

// sortSegments sorts and deduplicates segs in place.
func sortSegments(segs []segment) []segment {
	slices.SortFunc(segs, func(a, b segment) int {
		if a[0] != b[0] {
			return int(a[0]) - int(b[0])
		}
		return int(a[1]) - int(b[1])
	})
	return slices.Compact(segs)
}

func equalSegments(a, b []segment) bool { return slices.Equal(a, b) }
