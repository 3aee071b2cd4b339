package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdVertices{}
	_ kdtree.Bounder    = kdVertices{}
	_ kdtree.Comparable = kdVertex{}
)

// DuplicateVertices returns the number of vertices of m that lie within tol
// of another vertex of m. Marching cubes output is not welded so every
// interior crossing shows up here once per triangle using it.
func DuplicateVertices(m Mesh, tol float64) int {
	if len(m.Vertices) < 2 {
		return 0
	}
	verts := make(kdVertices, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = kdVertex(v)
	}
	tree := kdtree.New(verts, true)
	dups := 0
	for _, v := range m.Vertices {
		// Distances are squared. The query vertex always finds itself.
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, kdVertex(v))
		if keep.Len() > 1 {
			dups++
		}
	}
	return dups
}

type kdVertices []kdVertex

type kdVertex r3.Vec

func (k kdVertices) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdVertices) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdVertices) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), vertices: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdVertices) Slice(start, end int) kdtree.Interface { return k[start:end] }

func (k kdVertices) Bounds() *kdtree.Bounding {
	min := kdVertex{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	max := kdVertex{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
	for _, v := range k {
		min = kdVertex{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y), Z: math.Min(min.Z, v.Z)}
		max = kdVertex{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y), Z: math.Max(max.Z, v.Z)}
	}
	return &kdtree.Bounding{Min: min, Max: max}
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//
//	c = a_d - b_d
func (a kdVertex) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdVertex), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdVertex) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdVertex) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(r3.Vec(a), r3.Vec(b.(kdVertex))))
}

// c = a.dim - b.dim
func kdComp(a, b kdVertex, dim int) float64 {
	switch dim {
	case 0:
		return a.X - b.X
	case 1:
		return a.Y - b.Y
	}
	return a.Z - b.Z
}

type kdPlane struct {
	dim      int
	vertices kdVertices
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.vertices[i], p.vertices[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p kdPlane) Len() int {
	return len(p.vertices)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
