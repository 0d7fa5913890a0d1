// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package bitmap

import (
	"slices"

	"github.com/gogpu/bitmap/color"
	"github.com/gogpu/bitmap/internal/bitpack"
)

// Indexed is a palette bitmap storing 1, 2, 4 or 8 bits per pixel.
//
// Pixels are packed continuously across rows, low bits first: pixel i lives
// in byte i/(8/bpp) at bit offset (i%(8/bpp))*bpp. The palette always has
// 2^bpp entries so every storable index resolves to a color; PaletteSize
// reports how many of them are in use.
type Indexed struct {
	dims
	bpp         int
	data        []byte
	palette     []color.RGBA
	paletteSize int
}

// NewIndexed creates an indexed bitmap with every pixel set to index 0.
// palette is copied; entries beyond len(palette) are transparent black.
func NewIndexed(width, height, bpp int, palette []color.RGBA) (*Indexed, error) {
	d, err := newDims(width, height)
	if err != nil {
		return nil, err
	}
	if !bitpack.ValidDepth(bpp) {
		return nil, ErrInvalidDepth
	}
	if len(palette) > 1<<bpp {
		return nil, ErrPaletteTooLarge
	}

	pal := make([]color.RGBA, 1<<bpp)
	copy(pal, palette)

	return &Indexed{
		dims:        d,
		bpp:         bpp,
		data:        make([]byte, bitpack.PackedLen(d.Area(), bpp)),
		palette:     pal,
		paletteSize: len(palette),
	}, nil
}

func (*Indexed) sealed() {}

// BPP returns the number of bits per pixel.
func (b *Indexed) BPP() int { return b.bpp }

// Data returns the packed index bytes. Modifying it modifies the bitmap.
func (b *Indexed) Data() []byte { return b.data }

// Palette returns the full 2^bpp entry palette. Modifying it modifies the
// bitmap.
func (b *Indexed) Palette() []color.RGBA { return b.palette }

// PaletteSize returns the number of palette entries in use.
func (b *Indexed) PaletteSize() int { return b.paletteSize }

// SetPaletteSize records how many palette entries are in use. n is clamped
// to [0, 2^bpp].
func (b *Indexed) SetPaletteSize(n int) {
	b.paletteSize = max(0, min(n, len(b.palette)))
}

// SetPalette stores c as entry i, growing PaletteSize to cover it. Indices
// outside [0, 2^bpp) are ignored.
func (b *Indexed) SetPalette(i int, c color.RGBA) {
	if i < 0 || i >= len(b.palette) {
		return
	}
	b.palette[i] = c
	if i >= b.paletteSize {
		b.paletteSize = i + 1
	}
}

// Get returns the palette index at (x, y).
func (b *Indexed) Get(x, y int) uint32 {
	if !b.inside(x, y) {
		return 0
	}
	return uint32(bitpack.Extract(b.data, b.Index(x, y), b.bpp))
}

// Set stores palette index v at (x, y). v is masked to bpp bits.
func (b *Indexed) Set(x, y int, v uint32) {
	if !b.inside(x, y) {
		return
	}
	bitpack.Insert(b.data, b.Index(x, y), b.bpp, uint8(v))
}

// Get32 returns the palette color at (x, y).
func (b *Indexed) Get32(x, y int) color.RGBA {
	if !b.inside(x, y) {
		return color.Transparent
	}
	return b.palette[bitpack.Extract(b.data, b.Index(x, y), b.bpp)]
}

// Clone returns a deep copy.
func (b *Indexed) Clone() *Indexed {
	return &Indexed{
		dims:        b.dims,
		bpp:         b.bpp,
		data:        slices.Clone(b.data),
		palette:     slices.Clone(b.palette),
		paletteSize: b.paletteSize,
	}
}

// ToTruecolor resolves every pixel through the palette into a new *Bitmap32.
func (b *Indexed) ToTruecolor() *Bitmap32 {
	return ToTruecolor(b)
}

// SetRow stores one row of indices, one per byte. It is the fast path used
// by decoders; values are masked to bpp bits and extra input is ignored.
func (b *Indexed) SetRow(y int, indices []uint8) {
	if y < 0 || y >= b.height {
		return
	}
	base := y * b.width
	n := min(len(indices), b.width)
	if b.bpp == 8 {
		copy(b.data[base:base+n], indices[:n])
		return
	}
	for x := range n {
		bitpack.Insert(b.data, base+x, b.bpp, indices[x])
	}
}

// RowIndices writes the indices of row y into dst, one per byte, and
// returns the filled prefix of dst.
func (b *Indexed) RowIndices(y int, dst []uint8) []uint8 {
	if y < 0 || y >= b.height {
		return dst[:0]
	}
	base := y * b.width
	n := min(len(dst), b.width)
	if b.bpp == 8 {
		copy(dst[:n], b.data[base:base+n])
		return dst[:n]
	}
	for x := range n {
		dst[x] = bitpack.Extract(b.data, base+x, b.bpp)
	}
	return dst[:n]
}
