// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package png

import (
	"encoding/binary"
	"fmt"
)

// ColorType is the IHDR color type.
type ColorType uint8

const (
	Grayscale      ColorType = 0
	RGB            ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	RGBA           ColorType = 6
)

// colorTypeInfo holds per color type metadata. Depths lists the legal bit
// depths this codec accepts; 16 is legal PNG but unsupported here.
type colorTypeInfo struct {
	name     string
	channels int
	depths   []uint8
}

var colorTypes = map[ColorType]colorTypeInfo{
	Grayscale:      {"grayscale", 1, []uint8{1, 2, 4, 8}},
	RGB:            {"rgb", 3, []uint8{8}},
	Indexed:        {"indexed", 1, []uint8{1, 2, 4, 8}},
	GrayscaleAlpha: {"grayscale-alpha", 2, []uint8{8}},
	RGBA:           {"rgba", 4, []uint8{8}},
}

// String returns the color type name.
func (c ColorType) String() string {
	if info, ok := colorTypes[c]; ok {
		return info.name
	}
	return fmt.Sprintf("ColorType(%d)", uint8(c))
}

// Channels returns the samples per pixel, or 0 for an unknown color type.
func (c ColorType) Channels() int {
	return colorTypes[c].channels
}

const headerLen = 13

// Header is the decoded IHDR chunk.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// Channels returns the samples per pixel.
func (h Header) Channels() int { return h.ColorType.Channels() }

// BitsPerPixel returns channels times bit depth.
func (h Header) BitsPerPixel() int { return h.Channels() * int(h.BitDepth) }

// BytesPerPixel returns the whole bytes per pixel, rounding sub-byte pixels
// up to one.
func (h Header) BytesPerPixel() int { return max(1, h.BitsPerPixel()/8) }

// RowBytes returns the length of one unfiltered scanline without its
// filter type byte.
func (h Header) RowBytes() int {
	return (int(h.Width)*h.BitsPerPixel() + 7) / 8
}

// FilterStride is the byte distance to the corresponding byte of the
// previous pixel used by the Sub, Average and Paeth filters.
func (h Header) FilterStride() int { return h.BytesPerPixel() }

// validate reports header values the decoder cannot handle. Zero
// dimensions are malformed; everything else it rejects is legal PNG that
// this codec does not implement.
func (h Header) validate() error {
	if h.Width == 0 || h.Height == 0 {
		return FormatError(fmt.Sprintf("zero dimension %dx%d", h.Width, h.Height))
	}
	if h.Width > 1<<31-1 || h.Height > 1<<31-1 {
		return FormatError(fmt.Sprintf("dimension %dx%d out of range", h.Width, h.Height))
	}
	info, ok := colorTypes[h.ColorType]
	if !ok {
		return UnsupportedFeatureError(fmt.Sprintf("color type %d", h.ColorType))
	}
	if h.BitDepth == 16 {
		return UnsupportedFeatureError("16-bit samples")
	}
	legal := false
	for _, d := range info.depths {
		if d == h.BitDepth {
			legal = true
			break
		}
	}
	if !legal {
		return UnsupportedFeatureError(fmt.Sprintf("bit depth %d with color type %s", h.BitDepth, h.ColorType))
	}
	if h.CompressionMethod != 0 {
		return UnsupportedFeatureError(fmt.Sprintf("compression method %d", h.CompressionMethod))
	}
	if h.FilterMethod != 0 {
		return UnsupportedFeatureError(fmt.Sprintf("filter method %d", h.FilterMethod))
	}
	if h.InterlaceMethod != 0 {
		return UnsupportedFeatureError("interlaced image")
	}
	return nil
}

func parseHeader(data []byte) (Header, error) {
	if len(data) != headerLen {
		return Header{}, FormatError(fmt.Sprintf("IHDR length %d", len(data)))
	}
	h := Header{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         ColorType(data[9]),
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}
	return h, h.validate()
}

func (h Header) marshal() []byte {
	b := make([]byte, headerLen)
	binary.BigEndian.PutUint32(b[0:4], h.Width)
	binary.BigEndian.PutUint32(b[4:8], h.Height)
	b[8] = h.BitDepth
	b[9] = uint8(h.ColorType)
	b[10] = h.CompressionMethod
	b[11] = h.FilterMethod
	b[12] = h.InterlaceMethod
	return b
}
