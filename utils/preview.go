package utils

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/SwiftGuides/HexColorCode-Extension/hexcolor"
)

// RenderPreview prints one line per color: a background swatch, the hex code and alpha.
func RenderPreview(w io.Writer, p hexcolor.Palette) error {
	for i, c := range p {
		r, g, b, _ := c.Bytes()
		swatch := color.BgRGB(int(r), int(g), int(b)).Sprint("      ")
		if _, err := fmt.Fprintf(w, "%3d %s %s %.3f\n", i, swatch, c.Hex(), c.A); err != nil {
			return err
		}
	}
	return nil
}

func RunPreview(w io.Writer, path string, alpha float64) error {
	p, err := LoadAny(path, alpha)
	if err != nil {
		return err
	}
	return RenderPreview(w, p)
}
