package mctable

import (
	"errors"
	"fmt"
	"slices"
)

// baseCases are the hand triangulated cases from which every other
// case follows by symmetry or complement.
var baseCases = map[uint8]Case{
	0b00000000: {},
	0b00000001: {{8, 0, 3}},
	0b00000011: {{8, 1, 3}, {8, 9, 1}},
	0b00000101: {{8, 0, 3}, {1, 10, 2}},
	0b01000001: {{8, 0, 3}, {10, 5, 6}},
	0b00110010: {{8, 7, 0}, {0, 7, 1}, {1, 7, 5}},
	0b01000011: {{8, 1, 3}, {8, 9, 1}, {10, 5, 6}},
	0b01001010: {{3, 2, 11}, {0, 9, 1}, {10, 5, 6}},
	0b00110011: {{7, 5, 3}, {3, 5, 1}},
	0b10110001: {{11, 6, 3}, {3, 6, 0}, {0, 6, 5}, {0, 5, 9}},
	0b01101001: {{11, 8, 2}, {2, 8, 0}, {6, 10, 4}, {4, 10, 9}},
	0b01110001: {{3, 7, 0}, {0, 7, 10}, {7, 6, 10}, {0, 10, 9}},
	0b00111010: {{3, 2, 11}, {8, 7, 0}, {0, 7, 1}, {1, 7, 5}},
	0b10100101: {{8, 0, 3}, {4, 5, 9}, {10, 2, 1}, {11, 6, 7}},
	0b10110010: {{8, 11, 0}, {0, 11, 5}, {5, 11, 6}, {0, 5, 1}},
}

// BaseCases returns the corner bitmasks of the hand triangulated cases in
// increasing order. Every entry of Cases3 is one of them under a cube
// symmetry, complement or both.
func BaseCases() []uint8 {
	keys := make([]uint8, 0, len(baseCases))
	for b := range baseCases {
		keys = append(keys, b)
	}
	slices.Sort(keys)
	return keys
}

// inverseCases are complements of ambiguous base cases. Reversing the
// base case winding would join the wrong pair of diagonal corners on a
// saddle face and leave cracks against neighbouring cells.
var inverseCases = map[uint8]Case{
	255 - 0b00000101: {{3, 2, 8}, {8, 2, 10}, {8, 10, 1}, {8, 1, 0}},
	255 - 0b01000011: {{6, 8, 3}, {6, 9, 8}, {6, 5, 9}, {6, 3, 1}, {6, 1, 10}},
	255 - 0b01001010: {{3, 11, 0}, {0, 11, 6}, {0, 6, 9}, {9, 6, 5}, {1, 10, 2}},
}

// symmetry is a cube symmetry expressed as the corner permutation
// corner i -> perm[i]. Reflections reverse triangle winding.
type symmetry struct {
	perm    [8]uint8
	reflect bool
}

var symmetries = [...]symmetry{
	{perm: [8]uint8{1, 2, 3, 0, 5, 6, 7, 4}},                // 90° about Z
	{perm: [8]uint8{3, 2, 6, 7, 0, 1, 5, 4}},                // 90° about X
	{perm: [8]uint8{1, 5, 6, 2, 0, 4, 7, 3}},                // 90° about Y
	{perm: [8]uint8{1, 0, 3, 2, 5, 4, 7, 6}, reflect: true}, // mirror X
}

func (s symmetry) bits(b uint8) (r uint8) {
	for c := uint8(0); c < 8; c++ {
		if solid(b, c) {
			r |= 1 << s.perm[c]
		}
	}
	return r
}

func (s symmetry) apply(c Case) Case {
	r := make(Case, len(c))
	for i, t := range c {
		var nt Triangle
		for j, e := range t {
			ends := Edges3[e]
			nt[j] = edgeByCorners[s.perm[ends[0]]][s.perm[ends[1]]]
		}
		if s.reflect {
			nt[0], nt[2] = nt[2], nt[0]
		}
		r[i] = nt
	}
	return r
}

// faceSignature is the directed segment set of a case on each of the 6
// cube faces in the order x-lo, x-hi, y-lo, y-hi, z-lo, z-hi.
type faceSignature [6][]segment

var cubeFaceEdges [6][]uint8

func init() {
	for axis := 0; axis < 3; axis++ {
		for side := 0; side < 2; side++ {
			cubeFaceEdges[2*axis+side] = faceEdges(axis, side)
		}
	}
}

func signature(c Case) (sig faceSignature) {
	for i, fe := range cubeFaceEdges {
		sig[i] = faceSegments(c, fe)
	}
	return sig
}

func (a faceSignature) equal(b faceSignature) bool {
	for i := range a {
		if !equalSegments(a[i], b[i]) {
			return false
		}
	}
	return true
}

// generator accumulates cases as they are derived.
type generator struct {
	cases [256]Case
	known [256]bool
}

func (g *generator) set(bits uint8, c Case) {
	g.cases[bits] = c
	g.known[bits] = true
}

// expand applies every symmetry to every known case until no new case
// appears. Cases derived during a pass are themselves expanded in the
// same pass once the loop reaches them. A derivation landing on a known
// case must agree with it on every cube face.
func (g *generator) expand() error {
	for changed := true; changed; {
		changed = false
		for b := 0; b < 256; b++ {
			if !g.known[b] {
				continue
			}
			for _, s := range symmetries {
				nb := s.bits(uint8(b))
				nc := s.apply(g.cases[b])
				if !g.known[nb] {
					g.set(nb, nc)
					changed = true
				} else if !signature(g.cases[nb]).equal(signature(nc)) {
					return fmt.Errorf("case %08b derived from %08b disagrees with existing triangulation on a cube face", nb, b)
				}
			}
		}
	}
	return nil
}

// complement fills each missing case with the reversed triangulation of its
// complement, reading only cases known before the pass began.
func (g *generator) complement() {
	snap := *g
	for b := 0; b < 256; b++ {
		if !snap.known[b] && snap.known[255-b] {
			g.set(uint8(b), snap.cases[255-b].Reversed())
		}
	}
}

// Generate derives the full 256 case table from the base and inverse
// cases and checks it with Validate.
func Generate() ([256]Case, error) {
	var g generator
	for b, c := range baseCases {
		g.set(b, append(Case{}, c...))
	}
	for b, c := range inverseCases {
		if g.known[b] {
			return g.cases, fmt.Errorf("inverse case %08b duplicates a base case", b)
		}
		g.set(b, append(Case{}, c...))
	}
	if err := g.expand(); err != nil {
		return g.cases, err
	}
	g.complement()
	if err := g.expand(); err != nil {
		return g.cases, err
	}
	for b, ok := range g.known {
		if !ok {
			return g.cases, fmt.Errorf("case %08b not derived", b)
		}
	}
	if err := Validate(g.cases); err != nil {
		return g.cases, errors.New("generated table invalid: " + err.Error())
	}
	return g.cases, nil
}
