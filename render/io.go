package render

import "io"

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// NewMeshRenderer returns a Renderer that streams the triangles of m.
// Quads are split in two triangles.
func NewMeshRenderer(m Mesh) Renderer {
	return &meshRenderer{unread: triangle3Buffer{buf: m.Triangles()}}
}

type meshRenderer struct {
	unread triangle3Buffer
}

func (mr *meshRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if mr.unread.Len() == 0 {
		return 0, io.EOF
	}
	return mr.unread.Read(dst), nil
}

type triangle3Buffer struct {
	buf []Triangle3
}

// Read reads from this buffer.
func (b *triangle3Buffer) Read(t []Triangle3) int {
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }
