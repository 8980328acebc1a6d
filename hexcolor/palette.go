package hexcolor

import (
	"fmt"
	"strconv"
	"strings"
)

// Palette is an ordered list of colors. Index 0 is the first entry.
type Palette []Color

// ParsePalette reads one color per line in the form "<hex> [alpha]".
// Blank lines and lines starting with ";" or "//" are skipped.
func ParsePalette(text string, alpha float64) (Palette, error) {
	var p Palette
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected \"<hex> [alpha]\", got %q", i+1, line)
		}
		a := alpha
		if len(fields) == 2 {
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad alpha %q: %w", i+1, fields[1], err)
			}
			a = v
		}
		c, err := ParseHex(fields[0], a)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// ParsePaletteEntries parses each entry as a hex color with the given alpha.
func ParsePaletteEntries(entries []string, alpha float64) (Palette, error) {
	p := make(Palette, 0, len(entries))
	for i, e := range entries {
		c, err := ParseHex(strings.TrimSpace(e), alpha)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// HasAlpha reports whether any entry is not fully opaque.
func (p Palette) HasAlpha() bool {
	for _, c := range p {
		if c.A < 1.0 {
			return true
		}
	}
	return false
}

// Text renders p in the format ParsePalette reads. Alpha is written only when it
// quantizes below 255, as the shortest decimal that quantizes to the same byte.
func (p Palette) Text() string {
	var b strings.Builder
	for _, c := range p {
		b.WriteString(c.Hex())
		if a := to8(c.A); a < 255 {
			b.WriteByte(' ')
			b.WriteString(formatAlpha(a))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatAlpha needs at most three decimals: steps of 1/255 are wider than 0.001.
func formatAlpha(a uint8) string {
	if a == 0 {
		return "0"
	}
	v := float64(a) / 255
	for prec := 1; prec < 3; prec++ {
		s := strconv.FormatFloat(v, 'f', prec, 64)
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && to8(parsed) == a {
			return s
		}
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
