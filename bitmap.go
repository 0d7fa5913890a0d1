// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package bitmap

import (
	"errors"

	"github.com/gogpu/bitmap/color"
)

// Common errors for bitmap construction.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrInvalidDepth is returned for an indexed depth other than 1, 2, 4 or 8.
	ErrInvalidDepth = errors.New("bitmap: invalid bits per pixel")

	// ErrPaletteTooLarge is returned when a palette has more than 2^bpp entries.
	ErrPaletteTooLarge = errors.New("bitmap: palette larger than depth allows")

	// ErrDataTooSmall is returned when provided pixel data is smaller than
	// width*height requires.
	ErrDataTooSmall = errors.New("bitmap: data buffer too small")
)

// Bitmap is a rectangular pixel buffer of any supported depth.
//
// The set of implementations is closed: *Bitmap32 and *Indexed. Code that
// needs the concrete storage switches over those two types; see ToTruecolor.
//
// Raw values are depth specific. For *Bitmap32 Get and Set exchange packed
// color.RGBA values; for *Indexed they exchange palette indices. Get32
// always returns the canonical color.
//
// Coordinates outside the bitmap read as zero and writes to them are
// ignored.
type Bitmap interface {
	// Width returns the width in pixels.
	Width() int

	// Height returns the height in pixels.
	Height() int

	// Area returns Width()*Height().
	Area() int

	// Index returns the linear pixel index y*Width()+x.
	Index(x, y int) int

	// Get returns the raw stored value at (x, y).
	Get(x, y int) uint32

	// Set stores a raw value at (x, y).
	Set(x, y int, v uint32)

	// Get32 returns the canonical color at (x, y).
	Get32(x, y int) color.RGBA

	// ToTruecolor returns the bitmap as a *Bitmap32.
	ToTruecolor() *Bitmap32

	sealed()
}

// dims holds the geometry shared by every bitmap variant.
type dims struct {
	width  int
	height int
}

func newDims(width, height int) (dims, error) {
	if width < 0 || height < 0 {
		return dims{}, ErrInvalidDimensions
	}
	return dims{width: width, height: height}, nil
}

// Width returns the width in pixels.
func (d dims) Width() int { return d.width }

// Height returns the height in pixels.
func (d dims) Height() int { return d.height }

// Area returns the number of pixels.
func (d dims) Area() int { return d.width * d.height }

// Bounds returns the dimensions as (width, height).
func (d dims) Bounds() (int, int) { return d.width, d.height }

// Index returns the linear index of (x, y).
func (d dims) Index(x, y int) int { return y*d.width + x }

// IsEmpty reports whether the bitmap has no pixels.
func (d dims) IsEmpty() bool { return d.width == 0 || d.height == 0 }

func (d dims) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.width && y < d.height
}

// ToTruecolor converts any bitmap to canonical 32-bit storage. A *Bitmap32
// is returned as is; every other variant produces a new buffer that shares
// nothing with b.
func ToTruecolor(b Bitmap) *Bitmap32 {
	switch v := b.(type) {
	case *Bitmap32:
		return v
	case *Indexed:
		out, _ := NewBitmap32(v.width, v.height)
		for y := range v.height {
			for x := range v.width {
				out.pix[out.Index(x, y)] = v.Get32(x, y)
			}
		}
		return out
	default:
		panic("bitmap: unknown Bitmap implementation")
	}
}
