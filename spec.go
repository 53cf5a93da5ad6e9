// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package gridcube builds a cube whose six faces are
// overlaid with an n×n reference grid.
package gridcube

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec means that a GridSpec was requested with
// a subdivision count less than 1 or a non-positive size.
var ErrInvalidSpec = errors.New("gridcube: invalid grid spec")

// Default grid parameters.
const (
	DefaultN    = 3
	DefaultSize = 2.4
)

// GridSpec describes the grid of a cube.
// The zero value is not valid; use NewGridSpec or
// DefaultGridSpec.
type GridSpec struct {
	n    int
	size float32
}

// NewGridSpec creates a GridSpec with n cells per face
// edge and edge length size.
func NewGridSpec(n int, size float32) (GridSpec, error) {
	// NaN fails the comparison too.
	if n < 1 || !(size > 0) {
		return GridSpec{}, fmt.Errorf("%w: n=%d size=%v", ErrInvalidSpec, n, size)
	}
	return GridSpec{n, size}, nil
}

// DefaultGridSpec returns the spec with DefaultN cells
// and DefaultSize edge length.
func DefaultGridSpec() GridSpec { return GridSpec{DefaultN, DefaultSize} }

// N returns the number of cells per face edge.
func (s GridSpec) N() int { return s.n }

// Size returns the cube's edge length.
func (s GridSpec) Size() float32 { return s.size }

// Valid returns whether s was created by NewGridSpec
// or DefaultGridSpec.
func (s GridSpec) Valid() bool { return s.n >= 1 && s.size > 0 }

// Step returns the distance between adjacent grid lines.
func (s GridSpec) Step() float32 { return s.size / float32(s.n) }

// Interior returns the number of interior lines along
// each face axis.
func (s GridSpec) Interior() int { return s.n - 1 }

func (s GridSpec) String() string { return fmt.Sprintf("%d×%d/%v", s.n, s.n, s.size) }
