// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package png reads and writes PNG images as gogpu bitmaps.
//
// Decoding supports non-interlaced images with 8-bit truecolor (RGB and
// RGBA), indexed color at 1, 2, 4 and 8 bits, and grayscale as a
// best-effort fallback into truecolor. Chunks other than IHDR, PLTE, tRNS,
// IDAT and IEND are skipped.
//
// Errors match one of ErrFormat, ErrTruncated, ErrUnsupported or
// ErrChecksum under errors.Is, and carry details through FormatError,
// TruncatedDataError, UnsupportedFeatureError and ChecksumError.
//
// Basic usage:
//
//	b, err := png.Decode(data)
//	if err != nil {
//	    return err
//	}
//	out, err := png.Encode(b)
//
// Encoder and Decoder values carry options such as the filter strategy, the
// checksum policy and the compression codec:
//
//	enc := png.NewEncoder(png.EncoderOptions{
//	    Filter:     png.FilterAdaptive,
//	    Compressor: deflate.Zlib{Level: deflate.BestCompression},
//	})
package png
