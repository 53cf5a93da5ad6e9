// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/gviegas/gridcube"
	"github.com/gviegas/gridcube/linear"
	"github.com/gviegas/gridcube/node"
)

func exportCube(t *testing.T, n int) (*gridcube.Cube, *GLTF, []byte) {
	spec, err := gridcube.NewGridSpec(n, 2.4)
	if err != nil {
		t.Fatal(err)
	}
	cube := gridcube.Build(spec)
	gltf, bin, err := Export(cube.Node())
	if err != nil {
		t.Fatalf("Export failed:\n%v", err)
	}
	return cube, gltf, bin
}

func findNode(gltf *GLTF, name string) *Node {
	for i := range gltf.Nodes {
		if gltf.Nodes[i].Name == name {
			return &gltf.Nodes[i]
		}
	}
	return nil
}

// positions reads the POSITION data of the first primitive
// of the mesh of nd.
func positions(gltf *GLTF, bin []byte, nd *Node) []linear.V3 {
	prim := gltf.Meshes[*nd.Mesh].Primitives[0]
	acc := gltf.Accessors[prim.Attributes[POSITION]]
	view := gltf.BufferViews[*acc.BufferView]
	b := bin[view.ByteOffset+acc.ByteOffset:]
	pos := make([]linear.V3, acc.Count)
	for i := range pos {
		for j := range pos[i] {
			pos[i][j] = math.Float32frombits(binary.LittleEndian.Uint32(b))
			b = b[4:]
		}
	}
	return pos
}

func TestExport(t *testing.T) {
	cube, gltf, bin := exportCube(t, 3)
	if n := len(gltf.Nodes); n != 9 {
		t.Fatalf("Export: len(Nodes)\nhave %d\nwant 9", n)
	}
	root := &gltf.Nodes[0]
	if root.Name != "cube" || len(root.Children) != 8 || root.Mesh != nil {
		t.Fatalf("Export: root node\nhave %+v\nwant cube with 8 children and no mesh", root)
	}
	if root.Matrix == nil {
		t.Fatal("Export: root node should have a matrix")
	}
	for i := range 4 {
		for j := range 4 {
			if root.Matrix[i*4+j] != cube.Node().Local[i][j] {
				t.Fatalf("Export: root matrix[%d]\nhave %v\nwant %v", i*4+j, root.Matrix[i*4+j], cube.Node().Local[i][j])
			}
		}
	}
	if len(gltf.Meshes) != 8 || len(gltf.Accessors) != 8 || len(gltf.BufferViews) != 8 {
		t.Fatal("Export: want one mesh, accessor and view per primitive")
	}
	if n := len(gltf.Materials); n != 3 {
		t.Fatalf("Export: len(Materials)\nhave %d\nwant 3", n)
	}
	// 36 volume vertices, 24 edge vertices and 8 per grid.
	if n := len(bin); n != (36+24+6*8)*12 {
		t.Fatalf("Export: len(bin)\nhave %d\nwant %d", n, (36+24+6*8)*12)
	}
	if len(gltf.Buffers) != 1 || gltf.Buffers[0].ByteLength != int64(len(bin)) || gltf.Buffers[0].URI != "" {
		t.Fatalf("Export: Buffers\nhave %+v", gltf.Buffers)
	}

	vol := findNode(gltf, "volume")
	prim := gltf.Meshes[*vol.Mesh].Primitives[0]
	if *prim.Mode != TRIANGLES {
		t.Fatalf("Export: volume mode\nhave %d\nwant %d", *prim.Mode, TRIANGLES)
	}
	mat := gltf.Materials[*prim.Material]
	if mat.AlphaMode != BLEND || !mat.DoubleSided || mat.Extensions != nil {
		t.Fatalf("Export: volume material\nhave %+v", mat)
	}
	if a := mat.PBRMetallicRoughness.BaseColorFactor[3]; a != gridcube.VolumeMaterial.Opacity {
		t.Fatalf("Export: volume alpha\nhave %v\nwant %v", a, gridcube.VolumeMaterial.Opacity)
	}
	acc := gltf.Accessors[prim.Attributes[POSITION]]
	h := float32(1.2)
	for i := range 3 {
		if acc.Min[i] != -h || acc.Max[i] != h {
			t.Fatalf("Export: volume bounds\nhave %v %v\nwant ±%v", acc.Min, acc.Max, h)
		}
	}

	edges := findNode(gltf, "edges")
	prim = gltf.Meshes[*edges.Mesh].Primitives[0]
	if *prim.Mode != LINES {
		t.Fatalf("Export: edges mode\nhave %d\nwant %d", *prim.Mode, LINES)
	}
	if mat := gltf.Materials[*prim.Material]; mat.AlphaMode != "" || mat.Extensions == nil {
		t.Fatalf("Export: edges material\nhave %+v", mat)
	}
	if len(gltf.ExtensionsUsed) != 1 || gltf.ExtensionsUsed[0] != KHRMaterialsUnlit {
		t.Fatalf("Export: ExtensionsUsed\nhave %v\nwant [%s]", gltf.ExtensionsUsed, KHRMaterialsUnlit)
	}

	faces := gridcube.Faces(cube.Spec())
	for i := range faces {
		nd := findNode(gltf, "grid:"+faces[i].Name)
		if nd == nil {
			t.Fatalf("Export: no node for face %s", faces[i].Name)
		}
		pos := positions(gltf, bin, nd)
		segs := cube.Grid(i).Segs
		if len(pos) != 2*len(segs) {
			t.Fatalf("Export: grid:%s positions\nhave %d\nwant %d", faces[i].Name, len(pos), 2*len(segs))
		}
		for j := range segs {
			if pos[2*j] != segs[j][0] || pos[2*j+1] != segs[j][1] {
				t.Fatalf("Export: grid:%s segment %d\nhave %v %v\nwant %v", faces[i].Name, j, pos[2*j], pos[2*j+1], segs[j])
			}
		}
	}
}

func TestExportSingleCell(t *testing.T) {
	_, gltf, bin := exportCube(t, 1)
	if len(gltf.Nodes) != 9 || len(gltf.Meshes) != 2 {
		t.Fatalf("Export: n=1\nhave %d nodes and %d meshes\nwant 9 and 2", len(gltf.Nodes), len(gltf.Meshes))
	}
	for _, nd := range gltf.Nodes {
		if strings.HasPrefix(nd.Name, "grid:") && nd.Mesh != nil {
			t.Fatalf("Export: n=1: %s should have no mesh", nd.Name)
		}
	}
	if n := len(bin); n != (36+24)*12 {
		t.Fatalf("Export: n=1: len(bin)\nhave %d\nwant %d", n, (36+24)*12)
	}

	if _, _, err := Export(nil); err == nil {
		t.Fatal("Export(nil): should fail")
	}
	empty, bin, err := Export(node.New())
	if err != nil || len(bin) != 0 || len(empty.Buffers) != 0 || len(empty.Nodes) != 1 {
		t.Fatalf("Export: empty node\nhave %+v, %d, %v", empty, len(bin), err)
	}
}

func TestEncode(t *testing.T) {
	_, gltf, bin := exportCube(t, 3)
	want, err := json.Marshal(gltf)
	if err != nil {
		t.Fatal(err)
	}
	if err := Embed(gltf, bin); err != nil {
		t.Fatalf("Embed failed:\n%v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, gltf); err != nil {
		t.Fatalf("Encode failed:\n%v", err)
	}
	dec, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed:\n%v", err)
	}
	if err := dec.Check(); err != nil {
		t.Fatalf("GLTF.Check failed:\n%v", err)
	}
	uri, ok := strings.CutPrefix(dec.Buffers[0].URI, "data:application/octet-stream;base64,")
	if !ok {
		t.Fatalf("Embed: URI\nhave %.40s...\nwant data URI", dec.Buffers[0].URI)
	}
	b, err := base64.StdEncoding.DecodeString(uri)
	if err != nil || !bytes.Equal(b, bin) {
		t.Fatal("Embed: buffer data mismatch")
	}
	dec.Buffers[0].URI = ""
	have, err := json.Marshal(dec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(have, want) {
		t.Fatalf("Decode(Encode(gltf))\nhave %s\nwant %s", have, want)
	}

	if err := Embed(gltf, bin[:12]); err == nil {
		t.Fatal("Embed: length mismatch should fail")
	}
}

func TestGLB(t *testing.T) {
	_, gltf, bin := exportCube(t, 4)
	var buf bytes.Buffer
	if err := WriteGLB(&buf, gltf, bin); err != nil {
		t.Fatalf("WriteGLB failed:\n%v", err)
	}
	if buf.Len()%4 != 0 {
		t.Fatalf("WriteGLB: length\nhave %d\nwant multiple of 4", buf.Len())
	}
	if n := binary.LittleEndian.Uint32(buf.Bytes()[8:]); int(n) != buf.Len() {
		t.Fatalf("WriteGLB: header length\nhave %d\nwant %d", n, buf.Len())
	}
	if !IsGLB(bytes.NewReader(buf.Bytes())) {
		t.Fatal("IsGLB:\nhave false\nwant true")
	}
	r := bytes.NewReader([]byte(`{"asset":{"version":"2.0"}}`))
	if IsGLB(r) {
		t.Fatal("IsGLB:\nhave true\nwant false")
	}

	dec, b, err := ReadGLB(&buf)
	if err != nil {
		t.Fatalf("ReadGLB failed:\n%v", err)
	}
	if !bytes.Equal(b[:len(bin)], bin) {
		t.Fatal("ReadGLB: BIN chunk mismatch")
	}
	if err := dec.Check(); err != nil {
		t.Fatalf("GLTF.Check failed:\n%v", err)
	}
	if len(dec.Nodes) != len(gltf.Nodes) || len(dec.Accessors) != len(gltf.Accessors) {
		t.Fatal("ReadGLB: JSON chunk mismatch")
	}

	gltf.Buffers[0].URI = "x.bin"
	if err := WriteGLB(new(bytes.Buffer), gltf, bin); err == nil {
		t.Fatal("WriteGLB: buffer with URI should fail")
	}
}

func TestWrite(t *testing.T) {
	cube := gridcube.Build(gridcube.DefaultGridSpec())
	var js, glb bytes.Buffer
	if err := Write(&js, cube.Node(), false); err != nil {
		t.Fatalf("Write failed:\n%v", err)
	}
	if err := Write(&glb, cube.Node(), true); err != nil {
		t.Fatalf("Write failed:\n%v", err)
	}
	if !json.Valid(js.Bytes()) || IsGLB(bytes.NewReader(js.Bytes())) {
		t.Fatal("Write: want JSON")
	}
	if !IsGLB(bytes.NewReader(glb.Bytes())) {
		t.Fatal("Write: want GLB")
	}
}

func TestCheck(t *testing.T) {
	_, gltf, _ := exportCube(t, 2)
	if err := gltf.Check(); err != nil {
		t.Fatalf("GLTF.Check failed:\n%v", err)
	}
	bad := int64(99)
	for _, x := range [...]struct {
		name string
		f    func(g *GLTF)
	}{
		{"version", func(g *GLTF) { g.Asset.Version = "1.0" }},
		{"scene", func(g *GLTF) { g.Scene = &bad }},
		{"child", func(g *GLTF) { g.Nodes[0].Children[0] = bad }},
		{"mesh", func(g *GLTF) { g.Nodes[1].Mesh = &bad }},
		{"material", func(g *GLTF) { g.Meshes[0].Primitives[0].Material = &bad }},
		{"mode", func(g *GLTF) { g.Meshes[0].Primitives[0].Mode = &bad }},
		{"view", func(g *GLTF) { g.BufferViews[0].ByteLength += 4096 }},
		{"count", func(g *GLTF) { g.Accessors[0].Count++ }},
		{"type", func(g *GLTF) { g.Accessors[0].Type = "VEC5" }},
	} {
		_, g, _ := exportCube(t, 2)
		x.f(g)
		if err := g.Check(); err == nil {
			t.Fatalf("GLTF.Check: %s: should fail", x.name)
		}
	}
}
