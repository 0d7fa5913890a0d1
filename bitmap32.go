// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package bitmap

import (
	"slices"

	"github.com/gogpu/bitmap/color"
)

// Bitmap32 is a truecolor bitmap storing one packed color.RGBA per pixel in
// row-major order.
//
// Thread safety: concurrent reads are safe; writes require external
// synchronization.
type Bitmap32 struct {
	dims
	pix []color.RGBA
}

// NewBitmap32 creates a transparent bitmap of the given size.
func NewBitmap32(width, height int) (*Bitmap32, error) {
	d, err := newDims(width, height)
	if err != nil {
		return nil, err
	}
	return &Bitmap32{dims: d, pix: make([]color.RGBA, d.Area())}, nil
}

// NewBitmap32FromPixels wraps pix without copying. pix must hold at least
// width*height values; any excess is ignored.
func NewBitmap32FromPixels(width, height int, pix []color.RGBA) (*Bitmap32, error) {
	d, err := newDims(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) < d.Area() {
		return nil, ErrDataTooSmall
	}
	return &Bitmap32{dims: d, pix: pix[:d.Area()]}, nil
}

func (*Bitmap32) sealed() {}

// Pixels returns the backing slice. Modifying it modifies the bitmap.
func (b *Bitmap32) Pixels() []color.RGBA {
	return b.pix
}

// Row returns the pixels of row y, or nil when y is out of range.
func (b *Bitmap32) Row(y int) []color.RGBA {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.pix[y*b.width : (y+1)*b.width]
}

// Get returns the packed color at (x, y) as a raw value.
func (b *Bitmap32) Get(x, y int) uint32 {
	return uint32(b.Get32(x, y))
}

// Set stores a packed color at (x, y).
func (b *Bitmap32) Set(x, y int, v uint32) {
	b.SetRGBA(x, y, color.RGBA(v))
}

// Get32 returns the color at (x, y).
func (b *Bitmap32) Get32(x, y int) color.RGBA {
	if !b.inside(x, y) {
		return color.Transparent
	}
	return b.pix[b.Index(x, y)]
}

// SetRGBA stores c at (x, y).
func (b *Bitmap32) SetRGBA(x, y int, c color.RGBA) {
	if !b.inside(x, y) {
		return
	}
	b.pix[b.Index(x, y)] = c
}

// Fill sets every pixel to c.
func (b *Bitmap32) Fill(c color.RGBA) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

// Clone returns a deep copy.
func (b *Bitmap32) Clone() *Bitmap32 {
	return &Bitmap32{dims: b.dims, pix: slices.Clone(b.pix)}
}

// Equal reports whether o has the same size and pixels.
func (b *Bitmap32) Equal(o *Bitmap32) bool {
	if o == nil {
		return false
	}
	return b.dims == o.dims && slices.Equal(b.pix, o.pix)
}

// IsOpaque reports whether every pixel has alpha 255.
func (b *Bitmap32) IsOpaque() bool {
	for _, c := range b.pix {
		if !c.IsOpaque() {
			return false
		}
	}
	return true
}

// ToTruecolor returns b itself.
func (b *Bitmap32) ToTruecolor() *Bitmap32 {
	return b
}

// Premultiply returns a new bitmap whose pixels hold premultiplied values
// computed with precision p. The result reuses the RGBA layout; read it back
// with color.Premultiplied(b.Get(x, y)).
func (b *Bitmap32) Premultiply(p color.Precision) *Bitmap32 {
	out := &Bitmap32{dims: b.dims, pix: make([]color.RGBA, len(b.pix))}
	for i, c := range b.pix {
		out.pix[i] = color.RGBA(color.PremultiplyWith(c, p))
	}
	return out
}

// Depremultiply reverses Premultiply, returning a new straight-alpha bitmap.
func (b *Bitmap32) Depremultiply() *Bitmap32 {
	out := &Bitmap32{dims: b.dims, pix: make([]color.RGBA, len(b.pix))}
	for i, c := range b.pix {
		out.pix[i] = color.Depremultiply(color.Premultiplied(c))
	}
	return out
}

// DrawOver composites src onto b with its top-left corner at (dx, dy) using
// color.Mix. Parts of src falling outside b are clipped.
func (b *Bitmap32) DrawOver(src *Bitmap32, dx, dy int) {
	x0, y0 := max(dx, 0), max(dy, 0)
	x1, y1 := min(dx+src.width, b.width), min(dy+src.height, b.height)
	for y := y0; y < y1; y++ {
		dst := b.pix[y*b.width:]
		row := src.pix[(y-dy)*src.width:]
		for x := x0; x < x1; x++ {
			dst[x] = color.Mix(dst[x], row[x-dx])
		}
	}
}
