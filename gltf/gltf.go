// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package gltf implements glTF 2.0 serialization of
// scene graphs.
package gltf

import (
	"encoding/json"
	"io"
)

// Root glTF object.
type GLTF struct {
	ExtensionsUsed []string   `json:"extensionsUsed,omitempty"`
	Accessors      []Accessor `json:"accessors,omitempty"`
	Asset          struct {
		Copyright string `json:"copyright,omitempty"`
		Generator string `json:"generator,omitempty"`
		Version   string `json:"version"`
	} `json:"asset"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Materials   []Material   `json:"materials,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Scene       *int64       `json:"scene,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`
	Extras      any          `json:"extras,omitempty"`
}

// glTF.accessors' element.
type Accessor struct {
	BufferView    *int64    `json:"bufferView,omitempty"`
	ByteOffset    int64     `json:"byteOffset,omitempty"` // Default is 0.
	ComponentType int64     `json:"componentType"`
	Count         int64     `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
	Name          string    `json:"name,omitempty"`
}

// accessor.componentType values.
const (
	UNSIGNED_SHORT = 5123
	UNSIGNED_INT   = 5125
	FLOAT          = 5126
)

// accessor.type values.
const (
	SCALAR = "SCALAR"
	VEC3   = "VEC3"
)

// glTF.buffers' element.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int64  `json:"byteLength"`
	Name       string `json:"name,omitempty"`
}

// glTF.bufferViews' element.
type BufferView struct {
	Buffer     int64  `json:"buffer"`
	ByteOffset int64  `json:"byteOffset,omitempty"` // Default is 0.
	ByteLength int64  `json:"byteLength"`
	ByteStride int64  `json:"byteStride,omitempty"` // 0 for tightly packed.
	Target     int64  `json:"target,omitempty"`     // 0 for no hint.
	Name       string `json:"name,omitempty"`
}

// bufferView.target values.
const (
	ARRAY_BUFFER = iota + 34962
	ELEMENT_ARRAY_BUFFER
)

// glTF.materials' element.
type Material struct {
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	AlphaMode            string                `json:"alphaMode,omitempty"`   // Default is "OPAQUE".
	DoubleSided          bool                  `json:"doubleSided,omitempty"` // Default is false.
	Name                 string                `json:"name,omitempty"`
	Extensions           map[string]any        `json:"extensions,omitempty"`
	Extras               any                   `json:"extras,omitempty"`
}

// material.pbrMetallicRoughness.
type PBRMetallicRoughness struct {
	BaseColorFactor *[4]float32 `json:"baseColorFactor,omitempty"` // Default is [1, 1, 1, 1].
	MetallicFactor  *float32    `json:"metallicFactor,omitempty"`  // Default is 1.
	RoughnessFactor *float32    `json:"roughnessFactor,omitempty"` // Default is 1.
}

// material.alphaMode values.
const (
	OPAQUE = "OPAQUE"
	BLEND  = "BLEND"
)

// KHR_materials_unlit extension name.
const KHRMaterialsUnlit = "KHR_materials_unlit"

// glTF.meshes' element.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Name       string      `json:"name,omitempty"`
}

// mesh.primitives' element.
type Primitive struct {
	Attributes map[string]int64 `json:"attributes"`
	Indices    *int64           `json:"indices,omitempty"`
	Material   *int64           `json:"material,omitempty"`
	Mode       *int64           `json:"mode,omitempty"` // Default is 4.
}

// mesh.primitive.mode values.
const (
	POINTS = iota
	LINES
	LINE_LOOP
	LINE_STRIP
	TRIANGLES
	TRIANGLE_STRIP
	TRIANGLE_FAN
)

// mesh.primitive.attributes keys.
const POSITION = "POSITION"

// glTF.nodes' element.
type Node struct {
	Children []int64      `json:"children,omitempty"`
	Matrix   *[16]float32 `json:"matrix,omitempty"` // Default is identity.
	Mesh     *int64       `json:"mesh,omitempty"`
	Name     string       `json:"name,omitempty"`
}

// glTF.scenes' element.
type Scene struct {
	Nodes []int64 `json:"nodes,omitempty"`
	Name  string  `json:"name,omitempty"`
}

// Encode encodes gltf into w.
func Encode(w io.Writer, gltf *GLTF) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(gltf)
}

// Decode decodes r into a new GLTF instance.
func Decode(r io.Reader) (*GLTF, error) {
	var gltf GLTF
	dec := json.NewDecoder(r)
	err := dec.Decode(&gltf)
	if err != nil {
		return nil, err
	}
	return &gltf, nil
}
