// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/png"
)

// PNG is the codec from this module's png package.
type PNG struct {
	// Decoder and Encoder override the default png options when set.
	Decoder *png.Decoder
	Encoder *png.Encoder
}

var _ Encoder = PNG{}

func (PNG) Name() string { return "png" }

func (PNG) Probe(data []byte) bool { return png.Probe(data) }

func (c PNG) Decode(data []byte) (bitmap.Bitmap, error) {
	if c.Decoder != nil {
		return c.Decoder.Decode(data)
	}
	return png.Decode(data)
}

func (c PNG) Encode(b bitmap.Bitmap) ([]byte, error) {
	if c.Encoder != nil {
		return c.Encoder.Encode(b)
	}
	return png.Encode(b)
}

// BMP reads and writes Windows bitmaps through golang.org/x/image/bmp.
type BMP struct{}

var _ Encoder = BMP{}

func (BMP) Name() string { return "bmp" }

func (BMP) Probe(data []byte) bool { return bytes.HasPrefix(data, []byte("BM")) }

func (BMP) Decode(data []byte) (bitmap.Bitmap, error) {
	return decodeStd("bmp", data, bmp.Decode)
}

func (BMP) Encode(b bitmap.Bitmap) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, bitmap.ToImage(b)); err != nil {
		return nil, fmt.Errorf("format: bmp: %w", err)
	}
	return buf.Bytes(), nil
}

// TIFF reads and writes TIFF through golang.org/x/image/tiff.
type TIFF struct {
	// Deflate compresses written strips with zlib. Otherwise they are
	// stored uncompressed.
	Deflate bool
}

var _ Encoder = TIFF{}

func (TIFF) Name() string { return "tiff" }

func (TIFF) Probe(data []byte) bool {
	return bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*"))
}

func (TIFF) Decode(data []byte) (bitmap.Bitmap, error) {
	return decodeStd("tiff", data, tiff.Decode)
}

func (c TIFF) Encode(b bitmap.Bitmap) ([]byte, error) {
	opts := &tiff.Options{Compression: tiff.Uncompressed}
	if c.Deflate {
		opts.Compression = tiff.Deflate
	}
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, bitmap.ToImage(b), opts); err != nil {
		return nil, fmt.Errorf("format: tiff: %w", err)
	}
	return buf.Bytes(), nil
}

// JPEG decodes baseline and progressive JPEG through image/jpeg. It does
// not encode.
type JPEG struct{}

func (JPEG) Name() string { return "jpeg" }

func (JPEG) Probe(data []byte) bool { return bytes.HasPrefix(data, []byte("\xff\xd8\xff")) }

func (JPEG) Decode(data []byte) (bitmap.Bitmap, error) {
	return decodeStd("jpeg", data, jpeg.Decode)
}

// GIF decodes the first frame of a GIF through image/gif into a
// *bitmap.Indexed. It does not encode.
type GIF struct{}

func (GIF) Name() string { return "gif" }

func (GIF) Probe(data []byte) bool { return bytes.HasPrefix(data, []byte("GIF8")) }

func (GIF) Decode(data []byte) (bitmap.Bitmap, error) {
	return decodeStd("gif", data, gif.Decode)
}

// decodeStd runs a std style decoder and converts its result.
func decodeStd(name string, data []byte, decode func(r io.Reader) (image.Image, error)) (bitmap.Bitmap, error) {
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("format: %s: %w", name, err)
	}
	return bitmap.FromImage(img), nil
}
