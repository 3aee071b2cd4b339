// Package form3 provides 3d example fields for meshing: primitives with
// analytic normals, boolean combinations and an adapter for sdfx solids.
package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/isosurf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Field is a 3d field with a gradient and bounds.
type Field = must3.Field

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Sphere returns a sphere of the given radius centered at the origin.
func Sphere(radius float64) (f Field, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Sphere(radius), err
}

// Box returns an axis aligned box centered at the origin spanning -half to half.
func Box(half r3.Vec) (f Field, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Box(half), err
}

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
	return must3.Union(a, b), err
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
	return must3.Intersect(a, b), err
}

// Translate moves f by v.
func Translate(f Field, v r3.Vec) (Field, error) {
	if f == nil {
		return nil, &shapeErr{panicObj: "nil field"}
	}
	return must3.Translate(f, v), nil
}
