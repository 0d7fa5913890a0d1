package png

import (
	"bytes"
	"image"
	stdcolor "image/color"
	stdpng "image/png"
	"testing"

	"github.com/gogpu/bitmap/deflate"
)

const fixtureSize = 190

// stdEncode encodes img with the standard library as an independent
// reference encoder.
func stdEncode(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := stdpng.Encode(&buf, img); err != nil {
		t.Fatalf("image/png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func stdDecode(t testing.TB, data []byte) image.Image {
	t.Helper()
	img, err := stdpng.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("image/png.Decode() error = %v", err)
	}
	return img
}

// fixturePalette returns 32 distinct opaque colors.
func fixturePalette() stdcolor.Palette {
	pal := make(stdcolor.Palette, 32)
	for i := range pal {
		pal[i] = stdcolor.RGBA{R: uint8(i * 8), G: uint8(255 - i*8), B: uint8(i * 3), A: 255}
	}
	return pal
}

func fixtureIndex(x, y int) uint8 { return uint8((x/6 + y/6) % 32) }

func indexedFixture() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, fixtureSize, fixtureSize), fixturePalette())
	for y := range fixtureSize {
		for x := range fixtureSize {
			img.SetColorIndex(x, y, fixtureIndex(x, y))
		}
	}
	return img
}

func rgbFixture() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fixtureSize, fixtureSize))
	for y := range fixtureSize {
		for x := range fixtureSize {
			img.SetNRGBA(x, y, stdcolor.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

// rgbaFixture has red, green and blue quadrants and a transparent one.
func rgbaFixture() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fixtureSize, fixtureSize))
	half := fixtureSize / 2
	for y := range fixtureSize {
		for x := range fixtureSize {
			var c stdcolor.NRGBA
			switch {
			case x < half && y < half:
				c = stdcolor.NRGBA{R: 255, A: 255}
			case y < half:
				c = stdcolor.NRGBA{G: 255, A: 255}
			case x < half:
				c = stdcolor.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// testChunk is one chunk for buildPNG.
type testChunk struct {
	typ  string
	data []byte
}

// buildPNG frames chunks after the signature without validation, for
// crafting inputs the encoder would never produce.
func buildPNG(chunks ...testChunk) []byte {
	out := []byte(signature)
	for _, c := range chunks {
		out = appendChunk(out, c.typ, c.data)
	}
	return out
}

func ihdr(h Header) testChunk { return testChunk{chunkIHDR, h.marshal()} }

// idat compresses filter-prefixed rows.
func idat(t testing.TB, raw []byte) testChunk {
	t.Helper()
	packed, err := deflate.Zlib{}.Compress(raw)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	return testChunk{chunkIDAT, packed}
}

var iend = testChunk{chunkIEND, nil}

// chunkOffset returns the offset of the first chunk of type typ.
func chunkOffset(t testing.TB, data []byte, typ string) int {
	t.Helper()
	i := bytes.Index(data, []byte(typ))
	if i < 4 {
		t.Fatalf("chunk %s not found", typ)
	}
	return i - 4
}
