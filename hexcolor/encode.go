package hexcolor

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

const (
	encRGBA8 = 0
	encShort = 1 // 4 bits per channel plus 8 bit alpha, for shorthand-expressible palettes

	encZlibFlag = 0x80
)

type encoded struct {
	encoding int
	payload  []byte
}

func encodeRGBA8(p Palette) []byte {
	out := make([]byte, 0, len(p)*4)
	for _, c := range p {
		r, g, b, a := c.Bytes()
		out = append(out, r, g, b, a)
	}
	return out
}

// shortSize is the payload length of count colors in the short encoding.
func shortSize(count int) int {
	return (count*20 + 7) / 8
}

// encodeShort fails when any channel is not a doubled hex digit (n*17).
func encodeShort(p Palette) ([]byte, bool) {
	bw := newBitWriter(shortSize(len(p)))
	for _, c := range p {
		r, g, b, a := c.Bytes()
		if r%17 != 0 || g%17 != 0 || b%17 != 0 {
			return nil, false
		}
		bw.writeBits(r/17, 4)
		bw.writeBits(g/17, 4)
		bw.writeBits(b/17, 4)
		bw.writeBits(a, 8)
	}
	return bw.bytes(), true
}

func fromBytes(r, g, b, a uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: float64(a) / 255}
}

func decodePayload(encByte uint8, count int, payload []byte) (Palette, error) {
	if encByte&encZlibFlag != 0 {
		var err error
		// no encoding is larger than rgba8
		payload, err = inflate(payload, count*4)
		if err != nil {
			return nil, err
		}
	}
	p := make(Palette, count)
	switch enc := int(encByte &^ encZlibFlag); enc {
	case encRGBA8:
		if len(payload) != count*4 {
			return nil, fmt.Errorf("%w: rgba8 payload is %d bytes for %d colors", ErrInvalidFormat, len(payload), count)
		}
		for i := range p {
			o := i * 4
			p[i] = fromBytes(payload[o], payload[o+1], payload[o+2], payload[o+3])
		}
	case encShort:
		if len(payload) != shortSize(count) {
			return nil, fmt.Errorf("%w: short payload is %d bytes for %d colors", ErrInvalidFormat, len(payload), count)
		}
		br := newBitReader(payload)
		for i := range p {
			var v [4]uint8
			for j, bits := range [4]uint8{4, 4, 4, 8} {
				x, err := br.readBits(bits)
				if err != nil {
					return nil, err
				}
				v[j] = x
			}
			p[i] = fromBytes(v[0]*17, v[1]*17, v[2]*17, v[3])
		}
	default:
		return nil, fmt.Errorf("%w: unknown encoding %d", ErrInvalidFormat, enc)
	}
	return p, nil
}

func deflate(b []byte) []byte {
	var buf bytes.Buffer
	zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	_, _ = zw.Write(b)
	_ = zw.Close()
	return buf.Bytes()
}

// inflate fails when the stream expands past limit bytes.
func inflate(b []byte, limit int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, fmt.Errorf("%w: compressed payload inflates past %d bytes", ErrInvalidFormat, limit)
	}
	return out, nil
}

// bestEncoding returns the smallest of each candidate encoding, raw or deflated.
func bestEncoding(p Palette) encoded {
	raw := []encoded{{encoding: encRGBA8, payload: encodeRGBA8(p)}}
	if short, ok := encodeShort(p); ok {
		raw = append(raw, encoded{encoding: encShort, payload: short})
	}
	best := raw[0]
	for _, c := range raw {
		for _, cand := range []encoded{c, {encoding: c.encoding | encZlibFlag, payload: deflate(c.payload)}} {
			if len(cand.payload) < len(best.payload) {
				best = cand
			}
		}
	}
	return best
}
