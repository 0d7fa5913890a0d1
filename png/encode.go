// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package png

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/deflate"
	"github.com/gogpu/bitmap/internal/bitpack"
)

// EncoderOptions configures an Encoder. The zero value writes unfiltered
// rows compressed at the default zlib level.
type EncoderOptions struct {
	// Filter selects the scanline filters.
	Filter FilterStrategy

	// CompactOpaque writes a *bitmap.Bitmap32 as RGB when every pixel is
	// opaque. Otherwise truecolor is always written as RGBA.
	CompactOpaque bool

	// Compressor produces the IDAT payload. Nil uses deflate.Zlib.
	Compressor deflate.Codec
}

// Encoder encodes bitmaps as PNG. It is safe for concurrent use.
type Encoder struct {
	opts EncoderOptions
}

// NewEncoder creates an encoder with the given options.
func NewEncoder(opts EncoderOptions) *Encoder {
	return &Encoder{opts: opts}
}

var defaultEncoder = NewEncoder(EncoderOptions{})

// Encode encodes b as PNG with default options.
//
// *bitmap.Bitmap32 is written as 8-bit RGBA. *bitmap.Indexed is written as
// an indexed image at its own depth with PLTE and tRNS chunks.
func Encode(b bitmap.Bitmap) ([]byte, error) {
	return defaultEncoder.Encode(b)
}

// rowSource fills dst with the unfiltered bytes of row y.
type rowSource func(y int, dst []byte)

// Encode encodes b as a complete PNG file.
func (e *Encoder) Encode(b bitmap.Bitmap) ([]byte, error) {
	if b.Width() == 0 || b.Height() == 0 {
		return nil, ErrEmptyImage
	}

	h := Header{Width: uint32(b.Width()), Height: uint32(b.Height()), BitDepth: 8}
	var (
		src       rowSource
		plte, trns []byte
	)

	switch v := b.(type) {
	case *bitmap.Bitmap32:
		h.ColorType, src = e.truecolorSource(v)
	case *bitmap.Indexed:
		h.ColorType = Indexed
		h.BitDepth = uint8(v.BPP())
		src = indexedSource(v)
		plte, trns = paletteChunks(v)
	default:
		return nil, fmt.Errorf("png: unsupported bitmap type %T", b)
	}

	raw, counts := e.filterRows(h, src)

	codec := e.opts.Compressor
	if codec == nil {
		codec = deflate.Zlib{}
	}
	idat, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("png: compress: %w", err)
	}

	bitmap.ComponentLogger("png").Debug("encoded",
		slog.Int("width", int(h.Width)),
		slog.Int("height", int(h.Height)),
		slog.String("color_type", h.ColorType.String()),
		slog.String("filter", e.opts.Filter.String()),
		slog.Any("filter_counts", counts),
		slog.Int("raw", len(raw)),
		slog.Int("idat", len(idat)))

	out := make([]byte, 0, len(signature)+len(idat)+len(plte)+len(trns)+5*12+headerLen)
	out = append(out, signature...)
	out = appendChunk(out, chunkIHDR, h.marshal())
	if plte != nil {
		out = appendChunk(out, chunkPLTE, plte)
		out = appendChunk(out, chunkTRNS, trns)
	}
	out = appendChunk(out, chunkIDAT, idat)
	out = appendChunk(out, chunkIEND, nil)
	return out, nil
}

func (e *Encoder) truecolorSource(b *bitmap.Bitmap32) (ColorType, rowSource) {
	if e.opts.CompactOpaque && b.IsOpaque() {
		return RGB, func(y int, dst []byte) {
			for x, c := range b.Row(y) {
				dst[3*x], dst[3*x+1], dst[3*x+2] = c.R(), c.G(), c.B()
			}
		}
	}
	return RGBA, func(y int, dst []byte) {
		for x, c := range b.Row(y) {
			dst[4*x], dst[4*x+1], dst[4*x+2], dst[4*x+3] = c.Unpack()
		}
	}
}

func indexedSource(b *bitmap.Indexed) rowSource {
	indices := make([]uint8, b.Width())
	return func(y int, dst []byte) {
		bitpack.PackRowMSB(dst, b.RowIndices(y, indices), b.BPP())
	}
}

// paletteChunks returns the PLTE and tRNS payloads for b. PaletteSize
// entries are written, or the full 2^bpp palette when none is recorded.
// The count grows to cover the largest index any pixel uses.
func paletteChunks(b *bitmap.Indexed) (plte, trns []byte) {
	n := b.PaletteSize()
	if n == 0 {
		n = len(b.Palette())
	}
	if n < len(b.Palette()) {
		row := make([]uint8, b.Width())
		for y := range b.Height() {
			for _, v := range b.RowIndices(y, row) {
				n = max(n, int(v)+1)
			}
		}
	}
	plte = make([]byte, 0, 3*n)
	trns = make([]byte, 0, n)
	for _, c := range b.Palette()[:n] {
		plte = append(plte, c.R(), c.G(), c.B())
		trns = append(trns, c.A())
	}
	return plte, trns
}

// filterRows produces the filter-prefixed scanlines for the IDAT payload
// and reports how often each filter type was used.
func (e *Encoder) filterRows(h Header, src rowSource) ([]byte, [numFilters]int) {
	rowBytes := h.RowBytes()
	bpp := h.FilterStride()
	height := int(h.Height)

	raw := make([]byte, height*(1+rowBytes))
	cur := make([]byte, rowBytes)
	prev := make([]byte, rowBytes)

	var scratch [numFilters][]byte
	if e.opts.Filter == FilterAdaptive {
		for i := range scratch {
			scratch[i] = make([]byte, rowBytes)
		}
	}

	var counts [numFilters]int
	for y := range height {
		src(y, cur)
		line := raw[y*(1+rowBytes) : (y+1)*(1+rowBytes)]

		var ft filterType
		if e.opts.Filter == FilterAdaptive {
			ft = chooseFilter(&scratch, cur, prev, bpp)
			copy(line[1:], scratch[ft])
		} else {
			ft = filterType(e.opts.Filter)
			if ft >= numFilters {
				ft = ftNone
			}
			applyFilter(ft, line[1:], cur, prev, bpp)
		}
		line[0] = byte(ft)
		counts[ft]++
		cur, prev = prev, cur
	}
	return raw, counts
}
