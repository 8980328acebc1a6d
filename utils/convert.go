package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/SwiftGuides/HexColorCode-Extension/api"
	"github.com/SwiftGuides/HexColorCode-Extension/hexcolor"
	"github.com/SwiftGuides/HexColorCode-Extension/internal/logging"
)

var logger = logging.Named("utils")

// RunParse prints the normalized RGBA of a single hex color.
func RunParse(w io.Writer, hex string, alpha float64) error {
	c, err := hexcolor.ParseHex(hex, alpha)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s r=%.6f g=%.6f b=%.6f a=%.6f\n", c.Hex(), c.R, c.G, c.B, c.A)
	return err
}

// RunExpand prints the canonical six digit form of hex.
func RunExpand(w io.Writer, hex string) error {
	full, ok := hexcolor.Expand(hex)
	if !ok {
		return fmt.Errorf("%w: %q", hexcolor.ErrInvalidHex, hex)
	}
	_, err := fmt.Fprintf(w, "#%s\n", full)
	return err
}

// LoadAny reads a palette from .hxpl or, for any other extension, from text.
func LoadAny(path string, alpha float64) (hexcolor.Palette, error) {
	if strings.EqualFold(filepath.Ext(path), ".hxpl") {
		return hexcolor.LoadPalette(path)
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return hexcolor.ParsePalette(string(text), alpha)
}

func RunText2HXPL(inPath, outPath string, alpha float64) error {
	text, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	data, err := api.TextToHXPLBytes(string(text), alpha)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to save palette: %w", err)
	}
	logger.Infof(".hxpl saved (%d bytes)", len(data))
	return nil
}

func RunHXPL2Text(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	text, err := api.HXPLToText(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	return os.WriteFile(outPath, []byte(text), 0o644)
}

func RunHXPL2GLB(inPath, outPath string, columns int) error {
	p, err := hexcolor.LoadPalette(inPath)
	if err != nil {
		return err
	}
	doc := api.PaletteDocument(p, columns)
	if err := gltf.SaveBinary(doc, outPath); err != nil {
		return err
	}
	logger.WithField("colors", len(p)).Info("swatch exported")
	return nil
}
