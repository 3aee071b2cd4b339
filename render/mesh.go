package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// FaceKind is the number of vertices of a face.
type FaceKind uint8

const (
	Tri  FaceKind = 3
	Quad FaceKind = 4
)

// Face indexes Mesh vertices. Only the first Kind entries of V are used.
// Vertices wind counter clockwise seen from outside the solid.
type Face struct {
	Kind FaceKind
	V    [4]int
}

// TriFace returns a triangle face.
func TriFace(a, b, c int) Face { return Face{Kind: Tri, V: [4]int{a, b, c}} }

// QuadFace returns a quadrilateral face.
func QuadFace(a, b, c, d int) Face { return Face{Kind: Quad, V: [4]int{a, b, c, d}} }

// Indices returns the vertex indices of the face.
func (f Face) Indices() []int { return f.V[:f.Kind] }

// Swap returns the face with its winding reversed if swap is true.
func (f Face) Swap(swap bool) Face {
	if !swap {
		return f
	}
	n := int(f.Kind)
	r := Face{Kind: f.Kind}
	for i := 0; i < n; i++ {
		r.V[i] = f.V[n-1-i]
	}
	return r
}

func (f Face) offset(n int) Face {
	for i := 0; i < int(f.Kind); i++ {
		f.V[i] += n
	}
	return f
}

// Mesh is a polygon mesh made of triangles and quads. The zero value is an
// empty mesh ready to use.
type Mesh struct {
	Vertices []r3.Vec
	Faces    []Face
}

// Extend appends the vertices and faces of other to m. Face indices of other
// are shifted by the number of vertices m had before the call.
func (m *Mesh) Extend(other Mesh) {
	n := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, f.offset(n))
	}
}

// Translate returns a copy of m with every vertex moved by v.
func (m Mesh) Translate(v r3.Vec) Mesh {
	out := Mesh{
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    append([]Face(nil), m.Faces...),
	}
	for i, p := range m.Vertices {
		out.Vertices[i] = r3.Add(p, v)
	}
	return out
}

// Triangles returns the faces of m as triangles. A quad a,b,c,d is split
// into a,b,c and a,c,d.
func (m Mesh) Triangles() []Triangle3 {
	tris := make([]Triangle3, 0, len(m.Faces))
	for _, f := range m.Faces {
		v := f.V
		tris = append(tris, Triangle3{V: [3]r3.Vec{m.Vertices[v[0]], m.Vertices[v[1]], m.Vertices[v[2]]}})
		if f.Kind == Quad {
			tris = append(tris, Triangle3{V: [3]r3.Vec{m.Vertices[v[0]], m.Vertices[v[2]], m.Vertices[v[3]]}})
		}
	}
	return tris
}

// addTriangle appends a triangle with its own three vertices.
func (m *Mesh) addTriangle(a, b, c r3.Vec) {
	n := len(m.Vertices)
	m.Vertices = append(m.Vertices, a, b, c)
	m.Faces = append(m.Faces, TriFace(n, n+1, n+2))
}
