package hexcolor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestPack(t *testing.T) *Pack {
	t.Helper()
	palettes := []Palette{
		mustPalette(t, 1, "#1a2b3c", "#ffffff"),
		mustPalette(t, 1, "f0a", "000", "fff"),
		mustPalette(t, 1, "#1a2b3c", "#ffffff"), // same payload as the first
	}
	pack := &Pack{}
	for i, p := range palettes {
		data, err := SavePaletteToBytes(p)
		require.NoError(t, err)
		e, err := EntryFromFile(fmt.Sprintf("p%d.hxpl", i), data)
		require.NoError(t, err)
		pack.Entries = append(pack.Entries, e)
	}
	return pack
}

func TestPack_Roundtrip(t *testing.T) {
	for _, comp := range []PackCompression{PackCompNone, PackCompZlib, PackCompZstd} {
		t.Run(comp.String(), func(t *testing.T) {
			pack := makeTestPack(t)
			data, err := pack.Marshal(comp)
			require.NoError(t, err)

			got, gotComp, err := UnmarshalPack(data)
			require.NoError(t, err)
			assert.Equal(t, comp, gotComp)
			require.Len(t, got.Entries, len(pack.Entries))
			for i, e := range got.Entries {
				assert.Equal(t, pack.Entries[i].Name, e.Name)
				assert.Equal(t, pack.Entries[i].Enc, e.Enc)
				assert.Equal(t, pack.Entries[i].Count, e.Count)
				assert.Equal(t, pack.Entries[i].Payload, e.Payload)

				p, err := LoadPaletteFromBytes(e.File())
				require.NoError(t, err)
				assert.Len(t, p, int(e.Count))
			}
		})
	}
}

func TestPack_DedupsIdenticalPayloads(t *testing.T) {
	pack := makeTestPack(t)
	blocks, refs := dedupBlocks(pack.Entries)
	assert.Len(t, blocks, 2)
	assert.Equal(t, []int{0, 1, 0}, refs)

	uncompressed, err := pack.Marshal(PackCompNone)
	require.NoError(t, err)
	single := &Pack{Entries: pack.Entries[:2]}
	smaller, err := single.Marshal(PackCompNone)
	require.NoError(t, err)
	// the third entry only costs its name and index, not its payload
	assert.Equal(t, len(smaller)+2+len("p2.hxpl")+1+2+4, len(uncompressed))
}

func TestPack_Invalid(t *testing.T) {
	_, _, err := UnmarshalPack([]byte("HXPL"))
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	data, err := makeTestPack(t).Marshal(PackCompNone)
	require.NoError(t, err)

	badComp := append([]byte(nil), data...)
	badComp[9] = 7
	_, _, err = UnmarshalPack(badComp)
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	badVer := append([]byte(nil), data...)
	badVer[8] = 2
	_, _, err = UnmarshalPack(badVer)
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	_, _, err = UnmarshalPack(data[:len(data)-3])
	assert.Error(t, err)
}

func TestParsePackCompression(t *testing.T) {
	for _, s := range []string{"none", "zlib", "zstd"} {
		c, err := ParsePackCompression(s)
		require.NoError(t, err)
		assert.Equal(t, s, c.String())
	}
	_, err := ParsePackCompression("lz4")
	assert.Error(t, err)
}
