// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package node provides the elements of the scene graph.
package node

import (
	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/mesh"
)

// Node represents a single node in a scene graph.
// Nodes have at most one immediate ancestor and
// an arbitrary number of immediate descendants.
type Node struct {
	next *Node
	prev *Node
	sub  *Node

	// Name for the node.
	// It is not used by node code.
	Name string

	// Local transform, relative to the immediate
	// ancestor.
	Local linear.M4

	// Primitives drawn with the node's world
	// transform.
	Prims []mesh.Primitive
}

// New creates an initialized node.
func New() *Node { return new(Node).Init() }

// Init initializes node n.
// It sets the local transform to identity.
func (n *Node) Init() *Node {
	n.Local.I()
	return n
}

// Insert inserts node sub as immediate descendant
// of node n.
// sub must be either a descendant of n or part of
// an unrelated graph - it must not be an ancestor
// of node n.
func (n *Node) Insert(sub *Node) {
	sub.Remove()
	sub.next = n.sub
	sub.prev = n
	if n.sub != nil {
		n.sub.prev = sub
	}
	n.sub = sub
}

// Remove removes node n from its immediate ancestor.
func (n *Node) Remove() {
	// prev is only nil when the node has no ancestor,
	// since the first descendant's prev refers to the
	// ancestor itself.
	if n.prev != nil {
		if n.prev.sub == n {
			n.prev.sub = n.next
		} else {
			n.prev.next = n.next
		}
		if n.next != nil {
			n.next.prev = n.prev
		}
		n.prev = nil
		n.next = nil
	}
}

// Parent returns the immediate ancestor of n, or nil
// if n has none.
func (n *Node) Parent() *Node {
	cur := n
	for p := n.prev; p != nil; cur, p = p, p.prev {
		if p.sub == cur {
			return p
		}
	}
	return nil
}

// ForEach calls f for each descendant of node n.
// Ancestors are processed first.
// The scene graph must not be changed until this
// method returns.
func (n *Node) ForEach(f func(*Node)) {
	n.Until(func(nd *Node) bool {
		f(nd)
		return true
	})
}

// Until calls f for each descendant of node n.
// Ancestors are processed first. If f returns false,
// Until returns immediately.
// The scene graph must not be changed until this
// method returns.
func (n *Node) Until(f func(*Node) bool) {
	if n.sub == nil {
		return
	}
	que := []*Node{n.sub}
	for len(que) > 0 {
		for nd := que[0]; nd != nil; nd = nd.next {
			if !f(nd) {
				return
			}
			if sub := nd.sub; sub != nil {
				que = append(que, sub)
			}
		}
		que = que[1:]
	}
}

// Walk calls f for n and each of its descendants,
// passing the node's world transform.
// world is the transform of n's ancestor; nil means
// identity.
// The scene graph must not be changed until this
// method returns.
func (n *Node) Walk(world *linear.M4, f func(nd *Node, world *linear.M4)) {
	var w linear.M4
	if world != nil {
		w.Mul(world, &n.Local)
	} else {
		w = n.Local
	}
	f(n, &w)
	for sub := n.sub; sub != nil; sub = sub.next {
		sub.Walk(&w, f)
	}
}

// Len returns the number of descendants of n.
func (n *Node) Len() (cnt int) {
	n.ForEach(func(*Node) { cnt++ })
	return
}
