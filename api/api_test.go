package api

import (
	"bytes"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SwiftGuides/HexColorCode-Extension/hexcolor"
)

func TestColorFromHex(t *testing.T) {
	rgba, ok := ColorFromHex("#FFFFFF", 1)
	require.True(t, ok)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, rgba)

	rgba, ok = ColorFromHex("000", 2)
	require.True(t, ok)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, rgba)

	_, ok = ColorFromHex("ZZZ", 1)
	assert.False(t, ok)
	_, ok = ColorFromHex("12345", 1)
	assert.False(t, ok)
}

func TestTextToHXPL_ThenBack(t *testing.T) {
	data, err := TextToHXPLBytes("#ff0000\n0f0 0.2\n#1a2b3c\n", 1)
	require.NoError(t, err)
	text, err := HXPLToText(data)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000\n#00ff00 0.2\n#1a2b3c\n", text)

	_, err = TextToHXPLBytes("; only a comment\n", 1)
	assert.Error(t, err)
	_, err = TextToHXPLBytes("#12345\n", 1)
	assert.ErrorIs(t, err, hexcolor.ErrInvalidHex)
}

func decodeGLB(t *testing.T, data []byte) *gltf.Document {
	t.Helper()
	doc := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(data)).Decode(doc))
	return doc
}

func TestHXPLToGLB(t *testing.T) {
	data, err := TextToHXPLBytes("#ff0000\n#00ff00\n#0000ff\n", 1)
	require.NoError(t, err)
	glb, err := HXPLToGLB(data, 2)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(glb, []byte("glTF")))

	doc := decodeGLB(t, glb)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Materials, 1)
	assert.Equal(t, gltf.AlphaOpaque, doc.Materials[0].AlphaMode)
	prim := doc.Meshes[0].Primitives[0]
	assert.Contains(t, prim.Attributes, gltf.COLOR_0)
	assert.Equal(t, 12, int(doc.Accessors[prim.Attributes[gltf.POSITION]].Count))
	assert.Equal(t, 12, int(doc.Accessors[prim.Attributes[gltf.COLOR_0]].Count))
	require.NotNil(t, prim.Indices)
	assert.Equal(t, 18, int(doc.Accessors[*prim.Indices].Count))
	assert.Equal(t, &[4]float64{1, 1, 1, 1}, doc.Materials[0].PBRMetallicRoughness.BaseColorFactor)
}

func TestHXPLToGLB_Alpha(t *testing.T) {
	data, err := TextToHXPLBytes("#ff0000 0.5\n", 1)
	require.NoError(t, err)
	glb, err := HXPLToGLB(data, 0)
	require.NoError(t, err)
	doc := decodeGLB(t, glb)
	assert.Equal(t, gltf.AlphaBlend, doc.Materials[0].AlphaMode)
}

func TestPaletteDocument_Empty(t *testing.T) {
	doc := PaletteDocument(nil, 4)
	assert.Empty(t, doc.Meshes)
}

func TestPackUnpack(t *testing.T) {
	a, err := TextToHXPLBytes("#fff\n#000\n", 1)
	require.NoError(t, err)
	b, err := TextToHXPLBytes("#1a2b3c\n", 0.5)
	require.NoError(t, err)
	files := map[string][]byte{"b.hxpl": b, "a.hxpl": a}

	for _, comp := range []hexcolor.PackCompression{hexcolor.PackCompNone, hexcolor.PackCompZlib, hexcolor.PackCompZstd} {
		packed, err := PackHXPLs(files, comp)
		require.NoError(t, err)
		out, err := UnpackHXPACKToMemory(packed)
		require.NoError(t, err)
		assert.Equal(t, files, out)
	}

	_, err = PackHXPLs(nil, hexcolor.PackCompZlib)
	assert.Error(t, err)
	_, err = PackHXPLs(map[string][]byte{"bad": []byte("xx")}, hexcolor.PackCompZlib)
	assert.ErrorIs(t, err, hexcolor.ErrInvalidFormat)
}
