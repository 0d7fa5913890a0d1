// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package bitmap

import (
	"image"
	stdcolor "image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/bitmap/color"
)

// FromImage converts a standard library image into a Bitmap.
//
// *image.Paletted sources become *Indexed at the smallest depth that holds
// their palette. Everything else becomes a *Bitmap32 with straight alpha.
// The result never aliases img.
func FromImage(img image.Image) Bitmap {
	if p, ok := img.(*image.Paletted); ok && len(p.Palette) <= 256 {
		return fromPaletted(p)
	}
	return fromRGBA(img)
}

func fromPaletted(p *image.Paletted) *Indexed {
	bounds := p.Bounds()
	bpp := 8
	switch n := len(p.Palette); {
	case n <= 2:
		bpp = 1
	case n <= 4:
		bpp = 2
	case n <= 16:
		bpp = 4
	}

	pal := make([]color.RGBA, len(p.Palette))
	for i, c := range p.Palette {
		pal[i] = color.FromStd(c)
	}
	out, _ := NewIndexed(bounds.Dx(), bounds.Dy(), bpp, pal)

	for y := range bounds.Dy() {
		start := p.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		out.SetRow(y, p.Pix[start:start+bounds.Dx()])
	}
	return out
}

func fromRGBA(img image.Image) *Bitmap32 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out, _ := NewBitmap32(width, height)

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		// Let x/image/draw pick the fastest conversion path for the source
		// type, then copy from the normalized buffer.
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
		bounds = nrgba.Bounds()
	}

	for y := range height {
		start := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		src := nrgba.Pix[start : start+width*4]
		row := out.Row(y)
		for x := range row {
			row[x] = color.PackBytes(src[x*4], src[x*4+1], src[x*4+2], src[x*4+3])
		}
	}
	return out
}

// ToImage converts b to a standard library image.
func (b *Bitmap32) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, c := range b.pix {
		r, g, bl, a := c.Unpack()
		img.Pix[i*4] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = bl
		img.Pix[i*4+3] = a
	}
	return img
}

// ToImage converts b to a standard library paletted image. The palette
// covers PaletteSize entries, extended if any pixel refers past it.
func (b *Indexed) ToImage() *image.Paletted {
	rect := image.Rect(0, 0, b.width, b.height)
	img := image.NewPaletted(rect, nil)

	used := b.paletteSize
	for y := range b.height {
		row := img.Pix[y*img.Stride : y*img.Stride+b.width]
		for _, v := range b.RowIndices(y, row) {
			used = max(used, int(v)+1)
		}
	}

	img.Palette = make(stdcolor.Palette, used)
	for i := range used {
		img.Palette[i] = b.palette[i].Std()
	}
	return img
}

// ToImage converts any bitmap to a standard library image.
func ToImage(b Bitmap) image.Image {
	switch v := b.(type) {
	case *Bitmap32:
		return v.ToImage()
	case *Indexed:
		return v.ToImage()
	default:
		panic("bitmap: unknown Bitmap implementation")
	}
}
