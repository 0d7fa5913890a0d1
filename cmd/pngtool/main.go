// Command pngtool inspects and re-encodes images with the gogpu bitmap
// codecs.
//
// With -in it decodes any format known to format.Default, prints what it
// found and writes the image back out. Without -in it renders a small demo
// bitmap instead.
//
//	pngtool -in photo.bmp -out photo.png -filter adaptive -level best
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/color"
	"github.com/gogpu/bitmap/deflate"
	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/png"
)

func main() {
	var (
		input   = flag.String("in", "", "input file; empty renders a demo image")
		output  = flag.String("out", "out.png", "output file; empty skips writing")
		outFmt  = flag.String("format", "png", "output format: png, bmp or tiff")
		filter  = flag.String("filter", "adaptive", "png filter: none, sub, up, average, paeth or adaptive")
		level   = flag.String("level", "default", "png compression: none, speed, default, best or 1-9")
		lenient = flag.Bool("lenient", false, "ignore png chunk checksum mismatches")
		compact = flag.Bool("compact", false, "write fully opaque truecolor png as RGB")
		verbose = flag.Bool("v", false, "log codec activity")
	)
	flag.Parse()

	if *verbose {
		bitmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	strategy, err := png.ParseFilterStrategy(*filter)
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := deflate.ParseLevel(*level)
	if err != nil {
		log.Fatal(err)
	}

	reg := format.Default()
	reg.Register(format.PNG{
		Decoder: png.NewDecoder(png.DecoderOptions{SkipChecksum: *lenient}),
		Encoder: png.NewEncoder(png.EncoderOptions{
			Filter:        strategy,
			CompactOpaque: *compact,
			Compressor:    deflate.Zlib{Level: lvl},
		}),
	}, 100)

	var b bitmap.Bitmap
	if *input == "" {
		b = demo()
		log.Printf("Rendered demo image (%dx%d)", b.Width(), b.Height())
	} else {
		data, err := os.ReadFile(*input)
		if err != nil {
			log.Fatalf("Failed to read: %v", err)
		}
		var name string
		b, name, err = reg.Decode(data)
		if err != nil {
			log.Fatalf("Failed to decode %s: %v", *input, err)
		}
		describe(*input, name, data, b)
	}

	if *output == "" {
		return
	}
	out, err := reg.Encode(*outFmt, b)
	if err != nil {
		log.Fatalf("Failed to encode: %v", err)
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Saved %s (%s, %d bytes)", *output, *outFmt, len(out))
}

func describe(path, name string, data []byte, b bitmap.Bitmap) {
	log.Printf("%s: %s, %dx%d, %d bytes", path, name, b.Width(), b.Height(), len(data))

	if name == "png" {
		if h, err := png.DecodeHeader(data); err == nil {
			log.Printf("  IHDR: %s, %d-bit, %d bytes per row", h.ColorType, h.BitDepth, h.RowBytes())
		}
	}

	switch v := b.(type) {
	case *bitmap.Indexed:
		log.Printf("  indexed: %d bpp, %d of %d palette entries used", v.BPP(), v.PaletteSize(), len(v.Palette()))
	case *bitmap.Bitmap32:
		log.Printf("  truecolor: opaque=%v, top-left %s", v.IsOpaque(), v.Get32(0, 0))
	}
}

// demo draws translucent squares over a gradient and returns both as a
// truecolor bitmap.
func demo() bitmap.Bitmap {
	const size = 256
	bg, _ := bitmap.NewBitmap32(size, size)
	for y := range size {
		for x := range size {
			bg.SetRGBA(x, y, color.Pack(x/2+40, y/2+60, 160, 255))
		}
	}

	for i, c := range []string{"#ff4040c0", "#40ff40c0", "#4040ffc0"} {
		sq, _ := bitmap.NewBitmap32(96, 96)
		sq.Fill(color.MustParseHex(c))
		bg.DrawOver(sq, 40+i*48, 40+i*48)
	}
	return bg
}
