//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/SwiftGuides/HexColorCode-Extension/api"
	"github.com/SwiftGuides/HexColorCode-Extension/hexcolor"
)

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func fromUint8Array(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func optionalNumber(args []js.Value, i int, def float64) float64 {
	if len(args) > i && args[i].Type() == js.TypeNumber {
		return args[i].Float()
	}
	return def
}

// colorFromHex(hex, alpha?) -> [r, g, b, a] | null
func colorFromHex(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return js.Null()
	}
	rgba, ok := api.ColorFromHex(args[0].String(), optionalNumber(args, 1, hexcolor.DefaultAlpha))
	if !ok {
		return js.Null()
	}
	return js.ValueOf([]any{float64(rgba[0]), float64(rgba[1]), float64(rgba[2]), float64(rgba[3])})
}

func txt2hxpl(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing palette text")
	}
	out, err := api.TextToHXPLBytes(args[0].String(), optionalNumber(args, 1, hexcolor.DefaultAlpha))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func hxpl2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing hxpl bytes")
	}
	out, err := api.HXPLToGLB(fromUint8Array(args[0]), int(optionalNumber(args, 1, 8)))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func packPalettes(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing files object")
	}
	filesObj := args[0]
	files := map[string][]byte{}
	keys := js.Global().Get("Object").Call("keys", filesObj)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		files[k] = fromUint8Array(filesObj.Get(k))
	}
	out, err := api.PackHXPLs(files, hexcolor.PackCompZstd)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func unpackPalettePack(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	files, err := api.UnpackHXPACKToMemory(fromUint8Array(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	// object mapping names -> Uint8Array
	result := js.Global().Get("Object").New()
	for name, b := range files {
		result.Set(name, toUint8Array(b))
	}
	return result
}

func main() {
	js.Global().Set("colorFromHex", js.FuncOf(colorFromHex))
	js.Global().Set("txt2hxpl", js.FuncOf(txt2hxpl))
	js.Global().Set("hxpl2glb", js.FuncOf(hxpl2glb))
	js.Global().Set("packPalettes", js.FuncOf(packPalettes))
	js.Global().Set("unpackPalettePack", js.FuncOf(unpackPalettePack))
	select {}
}
