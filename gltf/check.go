// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

// Check checks that f is valid glTF, as far as the
// subset of glTF that this package describes goes.
func (f *GLTF) Check() error {
	if f.Asset.Version != "2.0" {
		return newErr("invalid GLTF.Asset.Version value")
	}
	if s := f.Scene; s != nil && (*s < 0 || *s >= int64(len(f.Scenes))) {
		return newErr("invalid GLTF.Scene index")
	}
	for _, s := range f.Scenes {
		for _, i := range s.Nodes {
			if i < 0 || i >= int64(len(f.Nodes)) {
				return newErr("invalid Scene.Nodes index")
			}
		}
	}
	for _, n := range f.Nodes {
		if err := n.Check(f); err != nil {
			return err
		}
	}
	for _, m := range f.Meshes {
		if err := m.Check(f); err != nil {
			return err
		}
	}
	for _, v := range f.BufferViews {
		if err := v.Check(f); err != nil {
			return err
		}
	}
	for _, a := range f.Accessors {
		if err := a.Check(f); err != nil {
			return err
		}
	}
	return nil
}

// Check checks that n is valid glTF.nodes' element.
func (n *Node) Check(gltf *GLTF) error {
	for _, i := range n.Children {
		if i < 0 || i >= int64(len(gltf.Nodes)) {
			return newErr("invalid Node.Children index")
		}
	}
	if m := n.Mesh; m != nil && (*m < 0 || *m >= int64(len(gltf.Meshes))) {
		return newErr("invalid Node.Mesh index")
	}
	return nil
}

// Check checks that m is valid glTF.meshes' element.
func (m *Mesh) Check(gltf *GLTF) error {
	if len(m.Primitives) == 0 {
		return newErr("invalid Mesh.Primitives length")
	}
	for _, p := range m.Primitives {
		pos, ok := p.Attributes[POSITION]
		if !ok || pos < 0 || pos >= int64(len(gltf.Accessors)) {
			return newErr("invalid Primitive.Attributes.POSITION index")
		}
		if i := p.Indices; i != nil && (*i < 0 || *i >= int64(len(gltf.Accessors))) {
			return newErr("invalid Primitive.Indices index")
		}
		if i := p.Material; i != nil && (*i < 0 || *i >= int64(len(gltf.Materials))) {
			return newErr("invalid Primitive.Material index")
		}
		if x := p.Mode; x != nil && (*x < POINTS || *x > TRIANGLE_FAN) {
			return newErr("invalid Primitive.Mode value")
		}
	}
	return nil
}

// Check checks that v is valid glTF.bufferViews' element.
func (v *BufferView) Check(gltf *GLTF) error {
	if v.Buffer < 0 || v.Buffer >= int64(len(gltf.Buffers)) {
		return newErr("invalid BufferView.Buffer index")
	}
	if v.ByteOffset < 0 || v.ByteLength < 1 ||
		v.ByteOffset+v.ByteLength > gltf.Buffers[v.Buffer].ByteLength {
		return newErr("invalid BufferView range")
	}
	if v.ByteStride != 0 && (v.ByteStride < 4 || v.ByteStride > 252 || v.ByteStride%4 != 0) {
		return newErr("invalid BufferView.ByteStride value")
	}
	return nil
}

// Check checks that a is valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	if a.BufferView != nil {
		idx := *a.BufferView
		if idx < 0 || idx >= int64(len(gltf.BufferViews)) {
			return newErr("invalid Accessor.BufferView index")
		}
	}
	if a.ByteOffset < 0 {
		return newErr("invalid Accessor.ByteOffset value")
	}
	var csize int64
	switch a.ComponentType {
	case UNSIGNED_SHORT:
		csize = 2
	case UNSIGNED_INT, FLOAT:
		csize = 4
	default:
		return newErr("invalid Accessor.ComponentType value")
	}
	if a.Count < 1 {
		return newErr("invalid Accessor.Count value")
	}
	var ncomp int64
	switch a.Type {
	case SCALAR:
		ncomp = 1
	case VEC3:
		ncomp = 3
	default:
		return newErr("invalid Accessor.Type value")
	}
	if a.BufferView != nil {
		v := &gltf.BufferViews[*a.BufferView]
		stride := v.ByteStride
		if stride == 0 {
			stride = csize * ncomp
		}
		if a.ByteOffset+stride*(a.Count-1)+csize*ncomp > v.ByteLength {
			return newErr("Accessor exceeds BufferView range")
		}
	}
	if len(a.Max) != 0 && len(a.Max) != int(ncomp) || len(a.Min) != 0 && len(a.Min) != int(ncomp) {
		return newErr("invalid Accessor.Max/Min length")
	}
	return nil
}
