// Package form2 provides 2d example fields with analytic normals for
// contouring. Constructors return an error instead of panicking on bad
// input; see package must2 for the panicking versions.
package form2

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/isosurf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Field is a 2d field with a gradient and bounds.
type Field = must2.Field

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Circle returns a circle of the given radius centered at the origin.
func Circle(radius float64) (f Field, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.Circle(radius), err
}

// Square returns a square of side 2*half centered at the origin.
func Square(half float64) (f Field, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.Square(half), err
}

// TShape returns a field solid only at the integer points (0,0), (0,1),
// (0,-1) and (1,0).
func TShape() Field { return must2.TShape() }

// Union returns the union of a and b.
func Union(a, b Field) (f Field, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &shapeErr{
				panicObj: r,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.Union(a, b), err
}

// Intersect returns the intersection of a and b.
func Intersect(a, b Field) (f Field, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &shapeErr{
				panicObj: r,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must2.Intersect(a, b), err
}

// Translate moves f by v.
func Translate(f Field, v r2.Vec) (Field, error) {
	if f == nil {
		return nil, &shapeErr{panicObj: "nil field"}
	}
	return must2.Translate(f, v), nil
}
