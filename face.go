// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package gridcube

import (
	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/mesh"
)

// FaceEpsilon is the distance by which grid planes are
// pushed outward from the cube's surface.
const FaceEpsilon = 0.001

// Face is one side of the cube.
type Face struct {
	Name string

	// Center of the face, including the outward
	// FaceEpsilon offset.
	Offset linear.V3

	// Orthonormal basis of the face plane.
	// U × V points outward.
	U, V linear.V3
}

// Normal returns the outward unit normal of f.
func (f *Face) Normal() (n linear.V3) {
	n.Cross(&f.U, &f.V)
	return
}

// Face indices.
const (
	PosX = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Outward normal and basis of each face.
var faceBasis = [6]struct {
	name    string
	n, u, v linear.V3
}{
	PosX: {"+x", linear.V3{1, 0, 0}, linear.V3{0, 0, -1}, linear.V3{0, 1, 0}},
	NegX: {"-x", linear.V3{-1, 0, 0}, linear.V3{0, 0, 1}, linear.V3{0, 1, 0}},
	PosY: {"+y", linear.V3{0, 1, 0}, linear.V3{1, 0, 0}, linear.V3{0, 0, -1}},
	NegY: {"-y", linear.V3{0, -1, 0}, linear.V3{1, 0, 0}, linear.V3{0, 0, 1}},
	PosZ: {"+z", linear.V3{0, 0, 1}, linear.V3{1, 0, 0}, linear.V3{0, 1, 0}},
	NegZ: {"-z", linear.V3{0, 0, -1}, linear.V3{-1, 0, 0}, linear.V3{0, 1, 0}},
}

// Faces returns the six faces of a cube with the
// given spec.
func Faces(spec GridSpec) (faces [6]Face) {
	d := spec.size/2 + FaceEpsilon
	for i, b := range faceBasis {
		faces[i].Name = b.name
		faces[i].Offset.Scale(d, &b.n)
		faces[i].U = b.u
		faces[i].V = b.v
	}
	return
}

// GridLines returns the interior grid lines of face f.
// For each interior index it emits a line parallel to
// U followed by a line parallel to V, so the result has
// 2⋅(n-1) segments.
func GridLines(f *Face, spec GridSpec) []mesh.Segment {
	n := spec.Interior()
	if n <= 0 {
		return nil
	}
	half := spec.size / 2
	step := spec.Step()
	segs := make([]mesh.Segment, 0, 2*n)
	var hu, hv linear.V3
	hu.Scale(half, &f.U)
	hv.Scale(half, &f.V)
	for i := 1; i <= n; i++ {
		t := -half + float32(i)*step
		var p linear.V3

		// Fixed t along V, spanning the face width.
		p.Scale(t, &f.V)
		p.Add(&p, &f.Offset)
		var a, b linear.V3
		a.Sub(&p, &hu)
		b.Add(&p, &hu)
		segs = append(segs, mesh.Segment{a, b})

		// Fixed t along U, spanning the face height.
		p.Scale(t, &f.U)
		p.Add(&p, &f.Offset)
		a.Sub(&p, &hv)
		b.Add(&p, &hv)
		segs = append(segs, mesh.Segment{a, b})
	}
	return segs
}
