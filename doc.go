// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package bitmap provides raster pixel buffers for the gogpu image codecs.
//
// # Overview
//
// A Bitmap is one of two concrete types:
//
//   - *Bitmap32 stores one color.RGBA per pixel (straight alpha).
//   - *Indexed stores 1, 2, 4 or 8 bit palette indices with a palette of
//     2^bpp colors.
//
// Both expose the same geometry and a canonical Get32 view, so code that
// only reads colors can ignore the depth. ToTruecolor turns any bitmap into
// a *Bitmap32.
//
// # Quick Start
//
//	b, _ := bitmap.NewBitmap32(64, 64)
//	b.Fill(color.MustParseHex("#336699"))
//
//	overlay, _ := bitmap.NewBitmap32(16, 16)
//	overlay.Fill(color.Pack(255, 0, 0, 128))
//	b.DrawOver(overlay, 8, 8)
//
//	data, err := png.Encode(b)
//
// # Packages
//
//   - color: packed RGBA, channel layouts, blending and premultiplication.
//   - png: PNG decoder and encoder.
//   - deflate: zlib adapter used by png.
//   - format: probing registry over PNG, GIF, BMP, TIFF and JPEG.
//
// # Standard Library Interop
//
// FromImage and ToImage convert to and from image.Image. Paletted images
// map to *Indexed; everything else maps to *Bitmap32.
//
// # Logging
//
// Logging is off by default. SetLogger installs a *slog.Logger used by
// every package in this module.
package bitmap
