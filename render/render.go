// Package render extracts meshes and contours from scalar fields sampled on
// a regular grid and writes them out to common file formats.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles into dst. ReadTriangles returns io.EOF once
// all triangles have been read.
type Renderer interface {
	ReadTriangles(dst []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. Its right handed normal points out of the solid.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle.
func (t Triangle3) Normal() r3.Vec {
	return r3.Unit(r3.Triangle(t.V).Normal())
}

// Degenerate returns true if every vertex lies within tol of the triangle's
// longest side.
func (t Triangle3) Degenerate(tol float64) bool {
	return r3.Triangle(t.V).IsDegenerate(tol)
}
