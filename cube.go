// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package gridcube

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/mesh"
	"github.com/gviegas/gridcube/node"
)

// Initial orientation of a built cube, in radians.
const (
	InitialYaw   = -0.4
	InitialPitch = 0.15
)

// Materials used by Build.
var (
	VolumeMaterial = mesh.Material{
		Color:       linear.V3{0.35, 0.55, 0.95},
		Opacity:     0.18,
		DoubleSided: true,
		Lit:         true,
	}
	EdgeMaterial = mesh.Material{
		Color:   linear.V3{0.95, 0.97, 1},
		Opacity: 1,
		Width:   2,
	}
	GridMaterial = mesh.Material{
		Color:   linear.V3{0.7, 0.8, 1},
		Opacity: 0.85,
		Width:   1,
	}
)

// Cube is the renderable grid cube.
type Cube struct {
	spec   GridSpec
	root   *node.Node
	volume *mesh.Triangles
	edges  *mesh.Lines
	grids  [6]*mesh.Lines
}

// Build creates the grid cube described by spec.
// It panics if spec is not valid.
func Build(spec GridSpec) *Cube {
	if !spec.Valid() {
		panic("gridcube: Build called with an invalid GridSpec")
	}
	c := &Cube{spec: spec, root: node.New()}
	c.root.Name = "cube"

	c.volume = &mesh.Triangles{Tris: mesh.Box(spec.size), Mat: VolumeMaterial}
	vol := node.New()
	vol.Name = "volume"
	vol.Prims = []mesh.Primitive{c.volume}

	c.edges = &mesh.Lines{Segs: mesh.BoxEdges(spec.size), Mat: EdgeMaterial}
	edg := node.New()
	edg.Name = "edges"
	edg.Prims = []mesh.Primitive{c.edges}

	faces := Faces(spec)
	for i := len(faces) - 1; i >= 0; i-- {
		c.grids[i] = &mesh.Lines{Segs: GridLines(&faces[i], spec), Mat: GridMaterial}
		g := node.New()
		g.Name = "grid:" + faces[i].Name
		g.Prims = []mesh.Primitive{c.grids[i]}
		c.root.Insert(g)
	}
	c.root.Insert(edg)
	c.root.Insert(vol)

	var q linear.Q
	q.Euler(InitialYaw, InitialPitch)
	c.root.Local.RotateQ(&q)
	return c
}

// Node returns the root node of c.
func (c *Cube) Node() *node.Node { return c.root }

// Spec returns the spec used to build c.
func (c *Cube) Spec() GridSpec { return c.spec }

// Volume returns the solid volume of c.
func (c *Cube) Volume() *mesh.Triangles { return c.volume }

// Edges returns the 12 outer edges of c.
func (c *Cube) Edges() *mesh.Lines { return c.edges }

// Grid returns the grid lines of the given face.
// face must be one of PosX, NegX, PosY, NegY, PosZ
// or NegZ.
func (c *Cube) Grid(face int) *mesh.Lines { return c.grids[face] }

// LineCount returns the total number of line segments
// in c, edges included.
func (c *Cube) LineCount() int {
	cnt := c.edges.Len()
	for _, g := range c.grids {
		cnt += g.Len()
	}
	return cnt
}

// BoundingRadius returns the radius of the sphere that
// encloses c, centered at its origin.
func (c *Cube) BoundingRadius() float32 { return c.spec.size * math32.Sqrt(3) / 2 }
