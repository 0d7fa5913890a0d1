// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package deflate adapts zlib (RFC 1950 over RFC 1951) streams for the PNG
// codec.
//
// The codec only needs whole-buffer compression, so the contract is the
// small Codec interface. Zlib is the default implementation, built on
// github.com/klauspost/compress/zlib with pooled writers that are reset
// before every use.
//
//	z := deflate.Zlib{Level: deflate.BestSpeed, Limit: 64 << 20}
//	packed, err := z.Compress(raw)
//	...
//	raw, err = z.Decompress(packed)
package deflate
