// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating and
// rendering scene graphs.
package scene

import (
	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/mesh"
	"github.com/gviegas/gridcube/node"
)

// Scene defines a scene graph.
// Nodes are inserted under an implicit root whose
// transform is the identity.
type Scene struct {
	root node.Node

	// Linear RGB color used to clear the target.
	Background linear.V3
}

// New creates an initialized scene.
func New() *Scene { return new(Scene).Init() }

// Init initializes a scene.
func (s *Scene) Init() *Scene {
	s.root.Init()
	s.root.Name = "root"
	return s
}

// Insert inserts n as an immediate descendant of the
// scene's root.
func (s *Scene) Insert(n *node.Node) { s.root.Insert(n) }

// Remove removes n from the scene.
// n must be an immediate descendant of the root.
func (s *Scene) Remove(n *node.Node) {
	if n.Parent() == &s.root {
		n.Remove()
	}
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int { return s.root.Len() }

// ForEachPrim calls f for every primitive in the scene,
// passing the world transform of the node that holds it.
func (s *Scene) ForEachPrim(f func(world *linear.M4, p mesh.Primitive)) {
	s.root.Walk(nil, func(n *node.Node, w *linear.M4) {
		for _, p := range n.Prims {
			f(w, p)
		}
	})
}

// Count returns the number of primitives in the scene
// whose material satisfies pred, and the sum of their
// lengths. A nil pred matches every primitive.
func (s *Scene) Count(pred func(mesh.Primitive) bool) (prims, elems int) {
	s.ForEachPrim(func(_ *linear.M4, p mesh.Primitive) {
		if pred == nil || pred(p) {
			prims++
			elems += p.Len()
		}
	})
	return
}
