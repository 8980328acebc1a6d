//go:build !(js && wasm)

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/SwiftGuides/HexColorCode-Extension/internal/config"
	"github.com/SwiftGuides/HexColorCode-Extension/internal/logging"
	"github.com/SwiftGuides/HexColorCode-Extension/utils"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hexcolortool <command> [args]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  parse <hex> [alpha]                       (print normalized RGBA of a #RGB / #RRGGBB color)")
	fmt.Fprintln(w, "  expand <hex>                              (print the canonical #rrggbb form)")
	fmt.Fprintln(w, "  txt2hxpl input.txt output.hxpl            (encode a text palette)")
	fmt.Fprintln(w, "  hxpl2txt input.hxpl output.txt            (decode a palette to text)")
	fmt.Fprintln(w, "  hxpl2glb input.hxpl output.glb            (export palette swatches as .glb)")
	fmt.Fprintln(w, "  pack output.hxpack input1.hxpl [...]      (bundle palettes into a .hxpack)")
	fmt.Fprintln(w, "  unpack input.hxpack output_dir            (extract .hxpl files from a .hxpack)")
	fmt.Fprintln(w, "  preview input.(txt|hxpl)                  (print swatches to the terminal)")
	fmt.Fprintln(w, "Settings are read from ./hexcolor.yaml and HEXCOLOR_* variables.")
}

var arity = map[string][2]int{
	"parse":    {2, 3},
	"expand":   {2, 2},
	"txt2hxpl": {3, 3},
	"hxpl2txt": {3, 3},
	"hxpl2glb": {3, 3},
	"pack":     {3, -1},
	"unpack":   {3, 3},
	"preview":  {2, 2},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one command and returns the process exit code. Deferred cleanup,
// including the log file, completes before it returns.
func run(args []string, stdout io.Writer) int {
	if len(args) < 1 {
		usage(stdout)
		return 1
	}
	bounds, ok := arity[args[0]]
	if !ok || len(args) < bounds[0] || (bounds[1] >= 0 && len(args) > bounds[1]) {
		usage(stdout)
		return 1
	}

	conf, err := config.Load(".")
	if err != nil {
		fmt.Fprintln(stdout, "Error:", err)
		return 1
	}
	if err := logging.SetLevel(conf.Log.Level); err != nil {
		fmt.Fprintln(stdout, "Error:", err)
		return 1
	}
	if conf.Log.File != "" {
		closer := logging.AttachFile(conf.Log.File)
		defer closer.Close()
	}

	if err := dispatch(args, conf, stdout); err != nil {
		logging.Named("main").WithField("command", args[0]).Error(err)
		fmt.Fprintln(stdout, "Error:", err)
		return 1
	}
	return 0
}

func dispatch(args []string, conf *config.Configuration, stdout io.Writer) error {
	switch args[0] {
	case "parse":
		alpha := conf.DefaultAlpha
		if len(args) == 3 {
			var err error
			alpha, err = strconv.ParseFloat(args[2], 64)
			if err != nil {
				return err
			}
		}
		return utils.RunParse(stdout, args[1], alpha)
	case "expand":
		return utils.RunExpand(stdout, args[1])
	case "txt2hxpl":
		return utils.RunText2HXPL(args[1], args[2], conf.DefaultAlpha)
	case "hxpl2txt":
		return utils.RunHXPL2Text(args[1], args[2])
	case "hxpl2glb":
		return utils.RunHXPL2GLB(args[1], args[2], conf.Swatch.Columns)
	case "pack":
		return utils.CreatePack(args[2:], args[1], conf.Compression())
	case "unpack":
		return utils.UnpackToDir(args[1], args[2])
	case "preview":
		return utils.RunPreview(stdout, args[1], conf.DefaultAlpha)
	}
	return fmt.Errorf("unknown command %q", args[0])
}
