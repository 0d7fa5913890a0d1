// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// signature is the 8-byte PNG file header.
const signature = "\x89PNG\r\n\x1a\n"

// Chunk type names.
const (
	chunkIHDR = "IHDR"
	chunkPLTE = "PLTE"
	chunkTRNS = "tRNS"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"
)

// Probe reports whether data starts with the PNG signature.
func Probe(data []byte) bool {
	return len(data) >= len(signature) && string(data[:len(signature)]) == signature
}

// chunk is a view into the input; data aliases the caller's buffer.
type chunk struct {
	typ  string
	data []byte
	crc  uint32
}

// checksum computes CRC32 over the type and data, which is what PNG stores.
func (c chunk) checksum() uint32 {
	h := crc32.NewIEEE()
	h.Write([]byte(c.typ))
	h.Write(c.data)
	return h.Sum32()
}

// chunkReader walks the chunk sequence following the signature.
type chunkReader struct {
	data []byte
	pos  int
}

// remaining reports how many input bytes are left.
func (r *chunkReader) remaining() int { return len(r.data) - r.pos }

// advance consumes n bytes, failing with TruncatedDataError when fewer
// remain.
func (r *chunkReader) advance(what string, n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, &TruncatedDataError{What: what, Want: n, Have: r.remaining()}
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// next reads the following chunk. The CRC is read but not verified.
func (r *chunkReader) next() (chunk, error) {
	head, err := r.advance("chunk header", 8)
	if err != nil {
		return chunk{}, err
	}
	length := binary.BigEndian.Uint32(head[:4])
	typ := string(head[4:8])
	if length > 1<<31-1 {
		return chunk{}, FormatError("chunk length overflows")
	}
	for i := range 4 {
		c := typ[i] | 0x20
		if c < 'a' || c > 'z' {
			return chunk{}, FormatError(fmt.Sprintf("bad chunk type %q", head[4:8]))
		}
	}

	data, err := r.advance(typ+" data", int(length))
	if err != nil {
		return chunk{}, err
	}
	tail, err := r.advance(typ+" checksum", 4)
	if err != nil {
		return chunk{}, err
	}
	return chunk{typ: typ, data: data, crc: binary.BigEndian.Uint32(tail)}, nil
}

// appendChunk appends one framed chunk to dst.
func appendChunk(dst []byte, typ string, data []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(data)))
	start := len(dst)
	dst = append(dst, typ...)
	dst = append(dst, data...)
	return binary.BigEndian.AppendUint32(dst, crc32.ChecksumIEEE(dst[start:]))
}
