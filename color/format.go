// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package color

// Channel locates one color channel inside a packed pixel word.
type Channel struct {
	// Shift is the bit position of the channel's least significant bit.
	Shift uint8

	// Bits is the channel width. Zero means the channel is absent.
	Bits uint8
}

func (c Channel) mask() uint32 {
	return (1 << c.Bits) - 1
}

// extract reads the channel from v and widens it to 8 bits by replicating
// its high bits into the low ones, so full scale maps to 255. An absent
// channel reads as 0.
func (c Channel) extract(v uint32) uint8 {
	if c.Bits == 0 {
		return 0
	}
	x := (v >> c.Shift) & c.mask()
	if c.Bits >= 8 {
		return uint8(x >> (c.Bits - 8))
	}
	w := x << (8 - c.Bits)
	for s := c.Bits; s < 8; s += c.Bits {
		w |= w >> s
	}
	return uint8(w)
}

// insert narrows an 8-bit value to the channel width and positions it.
func (c Channel) insert(v uint8) uint32 {
	if c.Bits == 0 {
		return 0
	}
	if c.Bits >= 8 {
		return uint32(v) << (c.Bits - 8) << c.Shift
	}
	return uint32(v>>(8-c.Bits)) << c.Shift
}

// Format describes how the four color channels are laid out in a packed
// integer pixel.
type Format struct {
	// Name is a short human readable identifier.
	Name string

	// BitsPerPixel is the width of one packed pixel.
	BitsPerPixel int

	R, G, B, A Channel
}

// Predefined formats. RGBA8888 is the canonical layout of RGBA.
var (
	RGBA8888 = Format{Name: "RGBA8888", BitsPerPixel: 32, R: Channel{0, 8}, G: Channel{8, 8}, B: Channel{16, 8}, A: Channel{24, 8}}
	BGRA8888 = Format{Name: "BGRA8888", BitsPerPixel: 32, B: Channel{0, 8}, G: Channel{8, 8}, R: Channel{16, 8}, A: Channel{24, 8}}
	ARGB8888 = Format{Name: "ARGB8888", BitsPerPixel: 32, A: Channel{0, 8}, R: Channel{8, 8}, G: Channel{16, 8}, B: Channel{24, 8}}
	ABGR8888 = Format{Name: "ABGR8888", BitsPerPixel: 32, A: Channel{0, 8}, B: Channel{8, 8}, G: Channel{16, 8}, R: Channel{24, 8}}

	RGB888 = Format{Name: "RGB888", BitsPerPixel: 24, R: Channel{0, 8}, G: Channel{8, 8}, B: Channel{16, 8}}
	BGR888 = Format{Name: "BGR888", BitsPerPixel: 24, B: Channel{0, 8}, G: Channel{8, 8}, R: Channel{16, 8}}

	RGB565   = Format{Name: "RGB565", BitsPerPixel: 16, R: Channel{11, 5}, G: Channel{5, 6}, B: Channel{0, 5}}
	RGBA4444 = Format{Name: "RGBA4444", BitsPerPixel: 16, R: Channel{12, 4}, G: Channel{8, 4}, B: Channel{4, 4}, A: Channel{0, 4}}
	RGBA5551 = Format{Name: "RGBA5551", BitsPerPixel: 16, R: Channel{11, 5}, G: Channel{6, 5}, B: Channel{1, 5}, A: Channel{0, 1}}
)

// HasAlpha reports whether the format stores an alpha channel.
func (f Format) HasAlpha() bool { return f.A.Bits > 0 }

// BytesPerPixel returns the packed pixel size rounded up to whole bytes.
func (f Format) BytesPerPixel() int { return (f.BitsPerPixel + 7) / 8 }

// String returns the format name.
func (f Format) String() string { return f.Name }

// Pack builds a packed pixel from 8-bit channels, dropping low bits for
// narrower channels.
func (f Format) Pack(r, g, b, a uint8) uint32 {
	return f.R.insert(r) | f.G.insert(g) | f.B.insert(b) | f.A.insert(a)
}

// Unpack splits a packed pixel into 8-bit channels. A format without alpha
// reports 255.
func (f Format) Unpack(v uint32) (r, g, b, a uint8) {
	r = f.R.extract(v)
	g = f.G.extract(v)
	b = f.B.extract(v)
	if f.A.Bits == 0 {
		a = 0xff
	} else {
		a = f.A.extract(v)
	}
	return r, g, b, a
}

// Decode converts a packed pixel in this format to canonical RGBA.
func (f Format) Decode(v uint32) RGBA {
	return PackBytes(f.Unpack(v))
}

// Encode converts a canonical RGBA to this format.
func (f Format) Encode(c RGBA) uint32 {
	return f.Pack(c.Unpack())
}

// Convert re-derives the channels of v as stored in src and packs them in
// dst. It is the bridge between any two channel orders or widths.
func Convert(v uint32, src, dst Format) uint32 {
	return dst.Pack(src.Unpack(v))
}

// ConvertSlice converts every element of src into dst. It converts
// min(len(dst), len(src)) pixels and returns that count.
func ConvertSlice(dst, src []uint32, from, to Format) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Convert(src[i], from, to)
	}
	return n
}
