// Package mctable holds the marching cubes and marching squares case tables
// together with the symmetry procedure that derives the 3D table from a
// handful of hand triangulated cases.
//
// Cases3 is checked in as generated data. Run go generate after changing
// the base cases.
package mctable

//go:generate go run ./internal/mcgen -o cases3.go
