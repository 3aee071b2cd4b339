package isosurf

import (
	"errors"
	"fmt"
	"math"
)

// Config holds the meshing parameters. It is passed by value to every
// traversal so several configurations can be used side by side.
type Config struct {
	// CellSize is the side length of a grid cell.
	CellSize float64
	// Adaptive places edge crossings at the linear interpolation root of the
	// two samples. When false crossings sit at edge midpoints and dual
	// contouring places cell vertices at cell centers.
	Adaptive bool
	// Boundary enables the dual contouring fallback cascade that keeps
	// cell vertices inside their cell.
	Boundary bool
	// Clip clamps every dual contouring vertex into its cell after solving.
	Clip bool
	// Bias adds weak normals pulling dual contouring vertices towards
	// the mass point of the cell's edge crossings.
	Bias         bool
	BiasStrength float64
	// Step is the central difference step used when normals are
	// approximated from the field.
	Step float64
}

// DefaultConfig returns the configuration used throughout the package examples.
func DefaultConfig() Config {
	return Config{
		CellSize:     1,
		Adaptive:     true,
		Boundary:     true,
		Clip:         false,
		Bias:         true,
		BiasStrength: 0.01,
		Step:         0.01,
	}
}

// Validate returns a non-nil error if the configuration can not be used for meshing.
func (c Config) Validate() error {
	switch {
	case !(c.CellSize > 0) || math.IsInf(c.CellSize, 0):
		return fmt.Errorf("cell size must be positive and finite, got %g", c.CellSize)
	case c.Bias && !(c.BiasStrength > 0):
		return fmt.Errorf("bias strength must be positive when bias enabled, got %g", c.BiasStrength)
	case c.Step < 0 || math.IsNaN(c.Step):
		return errors.New("negative or NaN normal step")
	}
	return nil
}

// Interpolate returns the offset from the first sample's corner at which
// the field crosses zero along an edge of length CellSize. v0 and v1 must
// have different signs.
func (c Config) Interpolate(v0, v1 float64) float64 {
	if (v0 > 0) == (v1 > 0) {
		panic("interpolate called on edge without sign change")
	}
	if !c.Adaptive {
		return 0.5 * c.CellSize
	}
	return (0 - v0) / (v1 - v0) * c.CellSize
}
