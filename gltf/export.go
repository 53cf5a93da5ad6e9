// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"encoding/base64"
	"encoding/binary"
	"io"
	"math"

	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/mesh"
	"github.com/gviegas/gridcube/node"
)

// Generator is set as GLTF.Asset.Generator by Export.
const Generator = "gridcube"

// exporter accumulates the glTF objects and the binary
// buffer of one export.
type exporter struct {
	gltf GLTF
	bin  []byte
	mats map[mesh.Material]int64
}

// Export converts the scene graph rooted at root into
// glTF. Every primitive becomes one non-indexed mesh
// primitive whose positions are stored in the returned
// buffer, which is the first and only GLTF.Buffers entry.
// The buffer has no URI; see Embed and WriteGLB.
func Export(root *node.Node) (*GLTF, []byte, error) {
	if root == nil {
		return nil, nil, newErr("nil root node")
	}
	e := exporter{mats: make(map[mesh.Material]int64)}
	e.gltf.Asset.Version = "2.0"
	e.gltf.Asset.Generator = Generator

	idx := map[*node.Node]int64{root: 0}
	e.gltf.Nodes = append(e.gltf.Nodes, e.node(root))
	root.ForEach(func(nd *node.Node) {
		i := int64(len(e.gltf.Nodes))
		idx[nd] = i
		e.gltf.Nodes = append(e.gltf.Nodes, e.node(nd))
		p := idx[nd.Parent()]
		e.gltf.Nodes[p].Children = append(e.gltf.Nodes[p].Children, i)
	})
	e.gltf.Scenes = []Scene{{Nodes: []int64{0}}}
	e.gltf.Scene = new(int64)
	if len(e.bin) > 0 {
		e.gltf.Buffers = []Buffer{{ByteLength: int64(len(e.bin))}}
	}
	if err := e.gltf.Check(); err != nil {
		return nil, nil, err
	}
	return &e.gltf, e.bin, nil
}

// node converts nd, but not its descendants.
func (e *exporter) node(nd *node.Node) Node {
	n := Node{Name: nd.Name}
	var id linear.M4
	id.I()
	if nd.Local != id {
		var m [16]float32
		for i := range nd.Local {
			copy(m[i*4:], nd.Local[i][:])
		}
		n.Matrix = &m
	}
	var prims []Primitive
	for _, p := range nd.Prims {
		if pr, ok := e.primitive(p); ok {
			prims = append(prims, pr)
		}
	}
	if len(prims) > 0 {
		i := int64(len(e.gltf.Meshes))
		e.gltf.Meshes = append(e.gltf.Meshes, Mesh{Primitives: prims, Name: nd.Name})
		n.Mesh = &i
	}
	return n
}

// primitive converts p. Empty primitives are skipped.
func (e *exporter) primitive(p mesh.Primitive) (Primitive, bool) {
	var pos []linear.V3
	var mode int64
	switch p := p.(type) {
	case *mesh.Triangles:
		for _, t := range p.Tris {
			pos = append(pos, t[:]...)
		}
		mode = TRIANGLES
	case *mesh.Lines:
		for _, s := range p.Segs {
			pos = append(pos, s[:]...)
		}
		mode = LINES
	}
	if len(pos) == 0 {
		return Primitive{}, false
	}
	acc := e.positions(pos)
	mat := e.material(p.Material(), mode == LINES)
	return Primitive{
		Attributes: map[string]int64{POSITION: acc},
		Material:   &mat,
		Mode:       &mode,
	}, true
}

// positions appends pos to the buffer and returns the
// index of a new accessor referring to it.
func (e *exporter) positions(pos []linear.V3) int64 {
	lo := pos[0]
	hi := pos[0]
	off := len(e.bin)
	for _, v := range pos {
		for i, x := range v {
			e.bin = binary.LittleEndian.AppendUint32(e.bin, math.Float32bits(x))
			lo[i] = min(lo[i], x)
			hi[i] = max(hi[i], x)
		}
	}
	view := int64(len(e.gltf.BufferViews))
	e.gltf.BufferViews = append(e.gltf.BufferViews, BufferView{
		ByteOffset: int64(off),
		ByteLength: int64(len(e.bin) - off),
		Target:     ARRAY_BUFFER,
	})
	acc := int64(len(e.gltf.Accessors))
	e.gltf.Accessors = append(e.gltf.Accessors, Accessor{
		BufferView:    &view,
		ComponentType: FLOAT,
		Count:         int64(len(pos)),
		Type:          VEC3,
		Max:           hi[:],
		Min:           lo[:],
	})
	return acc
}

// material returns the index of the glTF material
// matching mat, adding one if needed.
func (e *exporter) material(mat *mesh.Material, line bool) int64 {
	if i, ok := e.mats[*mat]; ok {
		return i
	}
	metal, rough := float32(0), float32(1)
	m := Material{
		PBRMetallicRoughness: &PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{mat.Color[0], mat.Color[1], mat.Color[2], mat.Opacity},
			MetallicFactor:  &metal,
			RoughnessFactor: &rough,
		},
		DoubleSided: mat.DoubleSided,
	}
	if mat.Opacity < 1 {
		m.AlphaMode = BLEND
	}
	if !mat.Lit {
		m.Extensions = map[string]any{KHRMaterialsUnlit: struct{}{}}
		e.used(KHRMaterialsUnlit)
	}
	if line && mat.Width > 0 {
		m.Extras = map[string]any{"lineWidth": mat.Width}
	}
	i := int64(len(e.gltf.Materials))
	e.gltf.Materials = append(e.gltf.Materials, m)
	e.mats[*mat] = i
	return i
}

func (e *exporter) used(ext string) {
	for _, s := range e.gltf.ExtensionsUsed {
		if s == ext {
			return
		}
	}
	e.gltf.ExtensionsUsed = append(e.gltf.ExtensionsUsed, ext)
}

// Embed stores bin in gltf.Buffers[0] as a base64 data
// URI, so that gltf can be encoded as a single .gltf file.
func Embed(gltf *GLTF, bin []byte) error {
	if len(bin) == 0 {
		return nil
	}
	if len(gltf.Buffers) == 0 || gltf.Buffers[0].ByteLength != int64(len(bin)) {
		return newErr("buffer length mismatch")
	}
	gltf.Buffers[0].URI = "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(bin)
	return nil
}

// Write exports root and writes it to w, as a GLB blob if
// glb is set or as embedded glTF JSON otherwise.
func Write(w io.Writer, root *node.Node, glb bool) error {
	gltf, bin, err := Export(root)
	if err != nil {
		return err
	}
	if glb {
		return WriteGLB(w, gltf, bin)
	}
	if err := Embed(gltf, bin); err != nil {
		return err
	}
	return Encode(w, gltf)
}
