// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package bitpack packs small integers (1, 2, 4 or 8 bits wide) into byte
// slices.
//
// Two bit orders are used. Bitmap storage is LSB-first: pixel i of a byte
// sits at bit offset (i % (8/bpp)) * bpp. PNG scanlines are MSB-first: the
// leftmost pixel occupies the high bits. The Row helpers convert between a
// PNG scanline and one unpacked value per byte.
//
// None of the functions allocate or check bounds beyond what the slice
// indexing does; callers guarantee that bpp is valid and indices are in
// range.
package bitpack

// ValidDepth reports whether bpp is one of 1, 2, 4 or 8.
func ValidDepth(bpp int) bool {
	return bpp == 1 || bpp == 2 || bpp == 4 || bpp == 8
}

// PackedLen returns the number of bytes needed to hold n values of bpp bits.
func PackedLen(n, bpp int) int {
	return (n*bpp + 7) / 8
}

// Mask returns the largest value representable in bpp bits.
func Mask(bpp int) uint8 {
	return 0xff >> (8 - bpp)
}

// Extract returns value i from LSB-first packed data.
func Extract(data []byte, i, bpp int) uint8 {
	perByte := 8 / bpp
	shift := (i % perByte) * bpp
	return (data[i/perByte] >> shift) & Mask(bpp)
}

// Insert stores v as value i of LSB-first packed data, leaving the other
// values that share the byte untouched. v is masked to bpp bits.
func Insert(data []byte, i, bpp int, v uint8) {
	perByte := 8 / bpp
	shift := (i % perByte) * bpp
	m := Mask(bpp) << shift
	b := &data[i/perByte]
	*b = *b&^m | (v<<shift)&m
}

// UnpackRowMSB expands len(dst) values from an MSB-first scanline.
func UnpackRowMSB(dst []uint8, row []byte, bpp int) {
	if bpp == 8 {
		copy(dst, row)
		return
	}
	perByte := 8 / bpp
	m := Mask(bpp)
	for i := range dst {
		shift := 8 - bpp - (i%perByte)*bpp
		dst[i] = (row[i/perByte] >> shift) & m
	}
}

// PackRowMSB writes src as an MSB-first scanline into dst. Unused low bits
// of the final byte are zeroed, as PNG requires.
func PackRowMSB(dst []byte, src []uint8, bpp int) {
	if bpp == 8 {
		copy(dst, src)
		return
	}
	n := PackedLen(len(src), bpp)
	clear(dst[:n])
	perByte := 8 / bpp
	m := Mask(bpp)
	for i, v := range src {
		shift := 8 - bpp - (i%perByte)*bpp
		dst[i/perByte] |= (v & m) << shift
	}
}
