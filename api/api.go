package api

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/SwiftGuides/HexColorCode-Extension/hexcolor"
)

// ColorFromHex returns the color as glTF-style float RGBA, or false for invalid input.
func ColorFromHex(hex string, alpha float64) ([4]float32, bool) {
	c, ok := hexcolor.FromHexAlpha(hex, alpha)
	if !ok {
		return [4]float32{}, false
	}
	return c.Float32(), true
}

// TextToHXPLBytes converts a text palette to .hxpl file bytes.
func TextToHXPLBytes(text string, alpha float64) ([]byte, error) {
	p, err := hexcolor.ParsePalette(text, alpha)
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	return hexcolor.SavePaletteToBytes(p)
}

// HXPLToText renders .hxpl bytes in the text palette format.
func HXPLToText(data []byte) (string, error) {
	p, err := hexcolor.LoadPaletteFromBytes(data)
	if err != nil {
		return "", err
	}
	return p.Text(), nil
}

// HXPLToGLB takes .hxpl bytes and returns a .glb with one swatch quad per color.
func HXPLToGLB(data []byte, columns int) ([]byte, error) {
	p, err := hexcolor.LoadPaletteFromBytes(data)
	if err != nil {
		return nil, err
	}
	doc := PaletteDocument(p, columns)
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// PaletteDocument builds a glTF scene holding the swatch mesh of p with colors
// in COLOR_0.
func PaletteDocument(p hexcolor.Palette, columns int) *gltf.Document {
	mesh := hexcolor.GenerateSwatch(p, columns)

	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		normals[i] = [3]float32{0, 0, 1}
		colors[i] = p[v.Color].Float32()
	}
	indices := make([]uint32, len(mesh.Indices))
	copy(indices, mesh.Indices)

	doc := gltf.NewDocument()
	doc.Asset.Generator = "hexcolortool palette -> GLB"
	if len(positions) == 0 {
		return doc
	}
	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	material := &gltf.Material{Name: "Swatch", PBRMetallicRoughness: pbr, DoubleSided: true}
	if p.HasAlpha() {
		material.AlphaMode = gltf.AlphaBlend
	} else {
		material.AlphaMode = gltf.AlphaOpaque
	}
	doc.Materials = []*gltf.Material{material}
	doc.Meshes = []*gltf.Mesh{{Name: "PaletteSwatch", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "Palette", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// PackHXPLs builds a .hxpack from named .hxpl blobs. Entries are stored in name order.
func PackHXPLs(files map[string][]byte, comp hexcolor.PackCompression) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files")
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	pack := &hexcolor.Pack{Entries: make([]hexcolor.PackEntry, 0, len(names))}
	for _, name := range names {
		e, err := hexcolor.EntryFromFile(name, files[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		pack.Entries = append(pack.Entries, e)
	}
	return pack.Marshal(comp)
}

// UnpackHXPACKToMemory returns a map of entry name -> .hxpl bytes.
func UnpackHXPACKToMemory(packBytes []byte) (map[string][]byte, error) {
	pack, _, err := hexcolor.UnmarshalPack(packBytes)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(pack.Entries))
	for _, e := range pack.Entries {
		out[e.Name] = e.File()
	}
	return out, nil
}
