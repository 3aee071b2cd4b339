package render

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes m in Wavefront OBJ format: one "v x y z" line per vertex
// followed by one "f" line per face with 1-based vertex indices.
func WriteOBJ(w io.Writer, m Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		bw.WriteByte('f')
		for _, idx := range f.Indices() {
			fmt.Fprintf(bw, " %d", idx+1)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
