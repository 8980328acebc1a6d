package hexcolor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidFormat marks .hxpl and .hxpack data that cannot be decoded.
var ErrInvalidFormat = errors.New("invalid palette data")

// MaxColors is the largest palette a .hxpl file can hold.
const MaxColors = math.MaxUint16

func SavePalette(p Palette, filename string) error {
	data, err := SavePaletteToBytes(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// SavePaletteToBytes encodes p with whichever encoding is smallest and returns
// a complete .hxpl file.
func SavePaletteToBytes(p Palette) ([]byte, error) {
	if len(p) > MaxColors {
		return nil, fmt.Errorf("palette has %d colors, max is %d", len(p), MaxColors)
	}
	enc := bestEncoding(p)
	hdr := Header{Ver: fileVersion, Enc: uint8(enc.encoding), Count: uint16(len(p))}
	return BuildFromHeaderAndPayload(hdr, enc.payload), nil
}

// BuildFromHeaderAndPayload reconstructs a full .hxpl file. PLen is taken from payload.
func BuildFromHeaderAndPayload(h Header, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(payload))
	buf.WriteString(fileMagic)
	_ = binary.Write(&buf, binary.LittleEndian, uint8(fileVersion))
	_ = binary.Write(&buf, binary.LittleEndian, h.Enc)
	_ = binary.Write(&buf, binary.LittleEndian, h.Count)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(payload)))
	_, _ = buf.Write(payload)
	return buf.Bytes()
}

// ParseHeaderFromBytes validates the fixed header of a .hxpl file and returns it
// with the payload slice.
func ParseHeaderFromBytes(data []byte) (Header, []byte, error) {
	var hdr Header
	if len(data) < headerSize || string(data[:4]) != fileMagic {
		return hdr, nil, fmt.Errorf("%w: not a .hxpl file", ErrInvalidFormat)
	}
	r := bytes.NewReader(data[4:headerSize])
	_ = binary.Read(r, binary.LittleEndian, &hdr.Ver)
	_ = binary.Read(r, binary.LittleEndian, &hdr.Enc)
	_ = binary.Read(r, binary.LittleEndian, &hdr.Count)
	_ = binary.Read(r, binary.LittleEndian, &hdr.PLen)
	if hdr.Ver != fileVersion {
		return hdr, nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, hdr.Ver)
	}
	if uint32(len(data)-headerSize) != hdr.PLen {
		return hdr, nil, fmt.Errorf("%w: payload length %d, header says %d", ErrInvalidFormat, len(data)-headerSize, hdr.PLen)
	}
	return hdr, data[headerSize:], nil
}

func LoadPalette(filename string) (Palette, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadPaletteFromBytes(data)
}

// LoadPaletteFromBytes parses a .hxpl file from memory.
func LoadPaletteFromBytes(data []byte) (Palette, error) {
	hdr, payload, err := ParseHeaderFromBytes(data)
	if err != nil {
		return nil, err
	}
	return decodePayload(hdr.Enc, int(hdr.Count), payload)
}
