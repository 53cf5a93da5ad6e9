// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"github.com/gviegas/gridcube/linear"
)

// boxCorners returns the corners of an axis-aligned box
// centered at the origin.
// Bit 0 of the index selects +X, bit 1 +Y and bit 2 +Z.
func boxCorners(size float32) (c [8]linear.V3) {
	h := size / 2
	for i := range c {
		c[i] = linear.V3{-h, -h, -h}
		if i&1 != 0 {
			c[i][0] = h
		}
		if i&2 != 0 {
			c[i][1] = h
		}
		if i&4 != 0 {
			c[i][2] = h
		}
	}
	return
}

// Corner indices of each box side, counter-clockwise
// when seen from outside.
var boxSides = [6][4]int{
	{1, 3, 7, 5}, // +X
	{0, 4, 6, 2}, // -X
	{2, 6, 7, 3}, // +Y
	{0, 1, 5, 4}, // -Y
	{4, 5, 7, 6}, // +Z
	{0, 2, 3, 1}, // -Z
}

// Box returns the 12 triangles of a cube with edge
// length size, centered at the origin.
func Box(size float32) []Triangle {
	c := boxCorners(size)
	tris := make([]Triangle, 0, 12)
	for _, s := range boxSides {
		tris = append(tris,
			Triangle{c[s[0]], c[s[1]], c[s[2]]},
			Triangle{c[s[0]], c[s[2]], c[s[3]]})
	}
	return tris
}

// BoxEdges returns the 12 edges of a cube with edge
// length size, centered at the origin.
func BoxEdges(size float32) []Segment {
	c := boxCorners(size)
	segs := make([]Segment, 0, 12)
	for i := range c {
		for _, b := range [3]int{1, 2, 4} {
			// Each edge joins corners that differ in one bit.
			if i&b == 0 {
				segs = append(segs, Segment{c[i], c[i|b]})
			}
		}
	}
	return segs
}

// Plane returns the 2 triangles of a square in the
// XZ plane at height y, facing +Y.
func Plane(size, y float32) []Triangle {
	h := size / 2
	a := linear.V3{-h, y, -h}
	b := linear.V3{-h, y, h}
	c := linear.V3{h, y, h}
	d := linear.V3{h, y, -h}
	return []Triangle{{a, b, c}, {a, c, d}}
}
