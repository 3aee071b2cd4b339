package form3

import (
	"errors"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/isosurf"
	"gonum.org/v1/gonum/spatial/r3"
)

// normalStepRatio is the central difference step of sdfx normals relative
// to the bounding box diagonal.
const normalStepRatio = 1e-5

// FromSDFX adapts an sdfx solid. sdfx distances are negative inside so the
// sign is flipped. Normals are central differences.
func FromSDFX(s sdf.SDF3) (Field, error) {
	if s == nil {
		return nil, errors.New("nil sdfx solid")
	}
	bb := s.BoundingBox()
	bounds := r3.Box{Min: fromV3(bb.Min), Max: fromV3(bb.Max)}
	step := normalStepRatio * r3.Norm(bounds.Size())
	if !(step > 0) {
		return nil, errors.New("sdfx solid has empty bounding box")
	}
	return &sdfxField{s: s, bounds: bounds, step: step}, nil
}

type sdfxField struct {
	s      sdf.SDF3
	bounds r3.Box
	step   float64
}

func (f *sdfxField) Evaluate(p r3.Vec) float64 {
	return -f.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (f *sdfxField) Normal(p r3.Vec) r3.Vec {
	return isosurf.Normal3(f, p, f.step)
}

func (f *sdfxField) Bounds() r3.Box { return f.bounds }

func fromV3(v v3.Vec) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
