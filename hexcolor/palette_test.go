package hexcolor

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePalette = `; base colors
#ff0000
0f0 0.5

// blues
#1A2B3C 2
`

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette(samplePalette, 1)
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, Color{R: 1, A: 1}, p[0])
	assert.Equal(t, Color{G: 1, A: 0.5}, p[1])
	assert.Equal(t, 1.0, p[2].A, "per-line alpha is clamped")
	assert.True(t, p.HasAlpha())
}

func TestParsePalette_DefaultAlpha(t *testing.T) {
	p, err := ParsePalette("fff\n000\n", -3)
	require.NoError(t, err)
	for _, c := range p {
		assert.Equal(t, 0.0, c.A)
	}
}

func TestParsePalette_Errors(t *testing.T) {
	cases := map[string]string{
		"fff\nnothex\n":   "line 2",
		"fff 0.5 extra\n": "line 1",
		"\n\nabc x\n":     "line 3",
	}
	for text, want := range cases {
		_, err := ParsePalette(text, 1)
		require.Error(t, err, text)
		assert.Contains(t, err.Error(), want)
	}
	_, err := ParsePalette("#12345", 1)
	assert.True(t, errors.Is(err, ErrInvalidHex))
}

func TestParsePaletteEntries(t *testing.T) {
	p, err := ParsePaletteEntries([]string{"#000", " fff "}, 0.25)
	require.NoError(t, err)
	assert.Equal(t, Palette{{A: 0.25}, {R: 1, G: 1, B: 1, A: 0.25}}, p)

	_, err = ParsePaletteEntries([]string{"#000", "#0000"}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
}

func TestPalette_TextRoundtrip(t *testing.T) {
	p, err := ParsePalette(samplePalette, 1)
	require.NoError(t, err)
	text := p.Text()
	assert.Equal(t, "#ff0000\n#00ff00 0.5\n#1a2b3c\n", text)
	back, err := ParsePalette(text, 1)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestPalette_TextAfterQuantizing(t *testing.T) {
	p, err := ParsePalette("#ff0000 0.5\n0f0 0.3\n#00f 0\n#1a2b3c 0.999\n", 1)
	require.NoError(t, err)
	data, err := SavePaletteToBytes(p)
	require.NoError(t, err)
	loaded, err := LoadPaletteFromBytes(data)
	require.NoError(t, err)

	text := loaded.Text()
	assert.Equal(t, "#ff0000 0.5\n#00ff00 0.3\n#0000ff 0\n#1a2b3c\n", text)
	again, err := ParsePalette(text, 1)
	require.NoError(t, err)
	againData, err := SavePaletteToBytes(again)
	require.NoError(t, err)
	assert.Equal(t, data, againData)
}

func TestFormatAlpha_EveryByte(t *testing.T) {
	for a := 0; a < 255; a++ {
		s := formatAlpha(uint8(a))
		v, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err, s)
		assert.Equal(t, uint8(a), to8(v), s)
		assert.LessOrEqual(t, len(s), 5, s)
	}
}
