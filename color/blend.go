// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package color

// Lane masks for processing two 8-bit channels at once inside one uint32.
// Each channel lives in the low byte of a 16-bit lane, leaving room for the
// product of two bytes without spilling into the neighbouring lane.
const (
	laneMask = 0x00ff00ff
	laneOne  = 0x00010001
)

// div255Lanes divides both 16-bit lanes of x by 255, rounding down.
//
// Per lane this is Alvy Ray Smith's ((x+1) + ((x+1) >> 8)) >> 8, which is
// exact floor division for every x in [0, 65025]. The inner shift is masked
// so the upper lane cannot leak into the lower one.
func div255Lanes(x uint32) uint32 {
	t := x + laneOne
	return ((t + ((t >> 8) & laneMask)) >> 8) & laneMask
}

// div255 divides x by 255 exactly for x in [0, 65025].
func div255(x uint32) uint32 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// Mix composites src over dst using straight alpha.
//
// A fully transparent src leaves dst untouched and an opaque src replaces it.
// Otherwise each color channel becomes (d*(255-a) + s*a) / 255 with a = src
// alpha, computed for red+blue and green in two lanes, and the result alpha
// is min(dst.a + src.a, 255).
func Mix(dst, src RGBA) RGBA {
	a := uint32(src.A())
	switch a {
	case 0:
		return dst
	case 0xff:
		return src
	}
	ia := 0xff - a

	d, s := uint32(dst), uint32(src)
	rb := div255Lanes((d&laneMask)*ia + (s&laneMask)*a)
	g := div255Lanes(((d>>8)&0xff)*ia + ((s>>8)&0xff)*a)

	outA := uint32(dst.A()) + a
	if outA > 0xff {
		outA = 0xff
	}
	return RGBA(rb | g<<8 | outA<<24)
}

// Premultiplied is a color whose RGB channels have been scaled by alpha. It
// shares the bit layout of RGBA.
type Premultiplied uint32

// Unpack returns all four channels.
func (p Premultiplied) Unpack() (r, g, b, a uint8) {
	return uint8(p), uint8(p >> 8), uint8(p >> 16), uint8(p >> 24)
}

// A returns the alpha channel.
func (p Premultiplied) A() uint8 { return uint8(p >> 24) }

// String formats the color as #rrggbbaa.
func (p Premultiplied) String() string { return RGBA(p).String() }

// Precision selects a premultiplication tier. Every tier is deterministic;
// the cheaper ones may differ from Accurate in the low bits.
type Precision uint8

const (
	// Accurate multiplies in floating point and truncates. It is the
	// reference the other tiers are measured against.
	Accurate Precision = iota

	// Fast computes c*(a+1) >> 8 on two lanes at once.
	Fast

	// Faster computes c*a >> 8 on two lanes at once.
	Faster

	// Fastest computes c*(a>>1) >> 7, using only seven bits of alpha.
	Fastest
)

// String returns the tier name.
func (p Precision) String() string {
	switch p {
	case Accurate:
		return "Accurate"
	case Fast:
		return "Fast"
	case Faster:
		return "Faster"
	case Fastest:
		return "Fastest"
	default:
		return "Unknown"
	}
}

// Premultiply scales the color channels of c by its alpha using the Fast
// tier.
func Premultiply(c RGBA) Premultiplied {
	return PremultiplyFast(c)
}

// PremultiplyWith premultiplies c with the requested tier. Unknown tiers
// fall back to Accurate.
func PremultiplyWith(c RGBA, p Precision) Premultiplied {
	switch p {
	case Fast:
		return PremultiplyFast(c)
	case Faster:
		return PremultiplyFaster(c)
	case Fastest:
		return PremultiplyFastest(c)
	default:
		return PremultiplyAccurate(c)
	}
}

// PremultiplyAccurate computes c*a/255 per channel in float64, truncating.
// Multiplying before dividing keeps the result equal to integer floor
// division for every input.
func PremultiplyAccurate(c RGBA) Premultiplied {
	r, g, b, a := c.Unpack()
	fa := float64(a)
	return Premultiplied(PackBytes(
		uint8(float64(r)*fa/255),
		uint8(float64(g)*fa/255),
		uint8(float64(b)*fa/255),
		a,
	))
}

// PremultiplyFast computes (c * (a+1)) >> 8 per channel. Opaque colors are
// returned unchanged because 255*256 >> 8 == 255.
func PremultiplyFast(c RGBA) Premultiplied {
	v := uint32(c)
	a := v>>24 + 1
	rb := ((v & laneMask) * a >> 8) & laneMask
	g := ((v & 0x0000ff00) * a >> 8) & 0x0000ff00
	return Premultiplied(v&0xff000000 | rb | g)
}

// PremultiplyFaster computes (c * a) >> 8 per channel.
func PremultiplyFaster(c RGBA) Premultiplied {
	v := uint32(c)
	a := v >> 24
	switch a {
	case 0:
		return 0
	case 0xff:
		return Premultiplied(v)
	}
	rb := ((v & laneMask) * a >> 8) & laneMask
	g := ((v & 0x0000ff00) * a >> 8) & 0x0000ff00
	return Premultiplied(v&0xff000000 | rb | g)
}

// PremultiplyFastest computes (c * (a>>1)) >> 7 per channel.
func PremultiplyFastest(c RGBA) Premultiplied {
	r, g, b, a := c.Unpack()
	switch a {
	case 0:
		return 0
	case 0xff:
		return Premultiplied(c)
	}
	h := uint16(a >> 1)
	return Premultiplied(PackBytes(
		uint8(uint16(r)*h>>7),
		uint8(uint16(g)*h>>7),
		uint8(uint16(b)*h>>7),
		a,
	))
}

// Depremultiply recovers straight color from a premultiplied one. A zero
// alpha yields transparent black, since the original color is lost.
func Depremultiply(p Premultiplied) RGBA {
	r, g, b, a := p.Unpack()
	switch a {
	case 0:
		return Transparent
	case 0xff:
		return RGBA(p)
	}
	fa := float64(a)
	return Pack(
		int(float64(r)*255/fa),
		int(float64(g)*255/fa),
		int(float64(b)*255/fa),
		int(a),
	)
}

// MulDiv255 returns x*y/255 rounded down, for callers that scale a single
// channel by an alpha value.
func MulDiv255(x, y uint8) uint8 {
	return uint8(div255(uint32(x) * uint32(y)))
}
