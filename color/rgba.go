// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package color defines the canonical packed RGBA value used by every bitmap
// in this module, plus channel-order conversions, alpha compositing and
// premultiplication.
//
// The canonical layout stores red in bits 0-7, green in 8-15, blue in 16-23
// and alpha in 24-31. On a little-endian machine the bytes of a []RGBA are
// therefore laid out R, G, B, A, the same order as image.NRGBA.Pix.
package color

import (
	stdcolor "image/color"
	"strconv"
)

// RGBA is a straight-alpha color packed into 32 bits.
type RGBA uint32

// Common colors.
const (
	Transparent RGBA = 0x00000000
	Black       RGBA = 0xff000000
	White       RGBA = 0xffffffff
	Red         RGBA = 0xff0000ff
	Green       RGBA = 0xff00ff00
	Blue        RGBA = 0xffff0000
)

// Pack builds an RGBA from four channel values. Each channel is clamped to
// [0, 255] first, so out-of-range input never wraps into a neighbour.
func Pack(r, g, b, a int) RGBA {
	return PackBytes(clampByte(r), clampByte(g), clampByte(b), clampByte(a))
}

// PackBytes builds an RGBA from four bytes.
func PackBytes(r, g, b, a uint8) RGBA {
	return RGBA(uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24)
}

// R returns the red channel.
func (c RGBA) R() uint8 { return uint8(c) }

// G returns the green channel.
func (c RGBA) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c RGBA) B() uint8 { return uint8(c >> 16) }

// A returns the alpha channel.
func (c RGBA) A() uint8 { return uint8(c >> 24) }

// Unpack returns all four channels.
func (c RGBA) Unpack() (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// RGB returns the color with the alpha bits cleared.
func (c RGBA) RGB() uint32 { return uint32(c) & 0x00ffffff }

// WithAlpha returns c with its alpha channel replaced.
func (c RGBA) WithAlpha(a uint8) RGBA {
	return RGBA(uint32(c)&0x00ffffff | uint32(a)<<24)
}

// IsOpaque reports whether alpha is 255.
func (c RGBA) IsOpaque() bool { return c.A() == 0xff }

// String formats the color as #rrggbbaa.
func (c RGBA) String() string {
	const digits = "0123456789abcdef"
	buf := [9]byte{'#'}
	r, g, b, a := c.Unpack()
	for i, v := range [4]uint8{r, g, b, a} {
		buf[1+i*2] = digits[v>>4]
		buf[2+i*2] = digits[v&0x0f]
	}
	return string(buf[:])
}

// GoString makes %#v print the hex form, which is easier to read in test
// failures than the raw integer.
func (c RGBA) GoString() string {
	return "color.RGBA(0x" + strconv.FormatUint(uint64(c), 16) + ")"
}

// Std converts c to a standard library non-premultiplied color.
func (c RGBA) Std() stdcolor.NRGBA {
	r, g, b, a := c.Unpack()
	return stdcolor.NRGBA{R: r, G: g, B: b, A: a}
}

// RGBA implements image/color.Color so an RGBA can be handed to any std API.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.Std().RGBA()
}

// FromStd converts any standard library color to canonical RGBA.
func FromStd(c stdcolor.Color) RGBA {
	switch v := c.(type) {
	case RGBA:
		return v
	case stdcolor.NRGBA:
		return PackBytes(v.R, v.G, v.B, v.A)
	}
	n := stdcolor.NRGBAModel.Convert(c).(stdcolor.NRGBA)
	return PackBytes(n.R, n.G, n.B, n.A)
}

// Model converts arbitrary colors to RGBA.
var Model = stdcolor.ModelFunc(func(c stdcolor.Color) stdcolor.Color { return FromStd(c) })

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
