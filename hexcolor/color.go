// Package hexcolor parses #RGB and #RRGGBB colors and stores palettes of them.
package hexcolor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultAlpha is the opacity used by FromHex.
const DefaultAlpha = 1.0

// ErrInvalidHex is returned by ParseHex for any input FromHexAlpha rejects.
var ErrInvalidHex = errors.New("invalid hex color")

// Color is a non-premultiplied RGBA color with every channel in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Black       = Color{A: 1}
	Transparent = Color{}
)

// FromHex parses "#RGB", "#RRGGBB" or the same without '#', fully opaque.
func FromHex(hexString string) (Color, bool) {
	return FromHexAlpha(hexString, DefaultAlpha)
}

// FromHexAlpha parses a 3 or 6 digit hex color with an optional leading '#'.
// Alpha is clamped to [0, 1]. Any malformed input returns false and no color.
func FromHexAlpha(hexString string, alpha float64) (Color, bool) {
	h, ok := Expand(hexString)
	if !ok {
		return Color{}, false
	}
	var ch [3]uint64
	for i := range ch {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, false
		}
		ch[i] = v
	}
	return Color{
		R: float64(ch[0]) / 255,
		G: float64(ch[1]) / 255,
		B: float64(ch[2]) / 255,
		A: ClampAlpha(alpha),
	}, true
}

// ParseHex is FromHexAlpha with an error instead of a flag.
func ParseHex(hexString string, alpha float64) (Color, error) {
	c, ok := FromHexAlpha(hexString, alpha)
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, hexString)
	}
	return c, nil
}

// Expand returns the lower-case six digit form of hexString without '#'.
func Expand(hexString string) (string, bool) {
	h := strings.TrimPrefix(hexString, "#")
	if !isHexDigits(h) {
		return "", false
	}
	switch len(h) {
	case 6:
		return strings.ToLower(h), true
	case 3:
		var b strings.Builder
		b.Grow(6)
		for i := 0; i < 3; i++ {
			b.WriteByte(h[i])
			b.WriteByte(h[i])
		}
		return strings.ToLower(b.String()), true
	default:
		return "", false
	}
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ClampAlpha limits a to [0, 1]; NaN becomes 0.
func ClampAlpha(a float64) float64 {
	switch {
	case math.IsNaN(a), a < 0:
		return 0
	case a > 1:
		return 1
	}
	return a
}

func to8(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Bytes returns the channels quantized to 8 bits.
func (c Color) Bytes() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// Hex returns the color as "#rrggbb". Alpha is not encoded.
func (c Color) Hex() string {
	r, g, b, _ := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Float32 is the layout glTF COLOR_0 accessors expect.
func (c Color) Float32() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(math.Round(ClampAlpha(c.A) * 0xffff))
	r = uint32(math.Round(ClampAlpha(c.R)*0xffff)) * a / 0xffff
	g = uint32(math.Round(ClampAlpha(c.G)*0xffff)) * a / 0xffff
	b = uint32(math.Round(ClampAlpha(c.B)*0xffff)) * a / 0xffff
	return
}

func (c Color) String() string {
	return fmt.Sprintf("%s a=%.3g", c.Hex(), c.A)
}
