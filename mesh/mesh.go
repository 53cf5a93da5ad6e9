// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package mesh defines geometric primitives that can be
// attached to scene nodes.
package mesh

import (
	"github.com/gviegas/gridcube/linear"
)

// Material describes the appearance of a primitive.
type Material struct {
	// Linear RGB color in the range [0, 1].
	Color linear.V3

	// Opacity in the range [0, 1].
	// 1 is fully opaque.
	Opacity float32

	// Whether back faces should be drawn.
	// Only applies to triangles.
	DoubleSided bool

	// Whether the primitive is affected by lights.
	// Unlit primitives are drawn with their color
	// as is.
	Lit bool

	// Stroke width in pixels.
	// Only applies to lines.
	Width float32
}

// Primitive is the interface that geometric primitives
// implement.
type Primitive interface {
	// Material returns the primitive's material.
	// It must not return nil.
	Material() *Material

	// Len returns the number of elements (triangles
	// or segments) in the primitive.
	Len() int
}

// Triangle is a triangle in counter-clockwise order.
type Triangle [3]linear.V3

// Normal returns the unit normal of t.
// t must not be degenerate.
func (t *Triangle) Normal() (n linear.V3) {
	var e0, e1 linear.V3
	e0.Sub(&t[1], &t[0])
	e1.Sub(&t[2], &t[0])
	n.Cross(&e0, &e1)
	n.Norm(&n)
	return
}

// Triangles is a triangle list.
type Triangles struct {
	Tris []Triangle
	Mat  Material
}

// Material implements Primitive.
func (t *Triangles) Material() *Material { return &t.Mat }

// Len implements Primitive.
func (t *Triangles) Len() int { return len(t.Tris) }

// Segment is a line segment.
type Segment [2]linear.V3

// Lines is a line list.
type Lines struct {
	Segs []Segment
	Mat  Material
}

// Material implements Primitive.
func (l *Lines) Material() *Material { return &l.Mat }

// Len implements Primitive.
func (l *Lines) Len() int { return len(l.Segs) }
