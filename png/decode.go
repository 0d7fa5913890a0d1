// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package png

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/color"
	"github.com/gogpu/bitmap/deflate"
	"github.com/gogpu/bitmap/internal/bitpack"
)

// DefaultMaxPixels is the pixel count limit applied when
// DecoderOptions.MaxPixels is zero.
const DefaultMaxPixels = 1 << 28

// DecoderOptions configures a Decoder. The zero value is ready to use.
type DecoderOptions struct {
	// SkipChecksum logs CRC mismatches at Warn level instead of failing.
	SkipChecksum bool

	// Decompressor inflates the concatenated IDAT payload. Nil uses
	// deflate.Zlib limited to the exact size the header implies.
	Decompressor deflate.Codec

	// MaxPixels rejects images with more pixels before any allocation.
	// Zero means DefaultMaxPixels; negative disables the check.
	MaxPixels int
}

// Decoder decodes PNG data. It holds no per-call state and is safe for
// concurrent use. The zero value decodes with default options.
type Decoder struct {
	opts DecoderOptions
}

// NewDecoder creates a decoder with the given options.
func NewDecoder(opts DecoderOptions) *Decoder {
	if opts.MaxPixels == 0 {
		opts.MaxPixels = DefaultMaxPixels
	}
	return &Decoder{opts: opts}
}

var defaultDecoder = NewDecoder(DecoderOptions{})

// Decode decodes a PNG image with default options.
//
// Indexed images become *bitmap.Indexed with the PLTE colors and tRNS
// alpha. Every other supported color type becomes *bitmap.Bitmap32.
func Decode(data []byte) (bitmap.Bitmap, error) {
	return defaultDecoder.Decode(data)
}

// DecodeHeader returns the IHDR of a PNG image without decoding pixels.
func DecodeHeader(data []byte) (Header, error) {
	return defaultDecoder.DecodeHeader(data)
}

// decodeState accumulates chunk contents until pixel decoding starts.
type decodeState struct {
	header     Header
	haveHeader bool
	palette    []color.RGBA
	idat       bytes.Buffer
	idatChunks int
}

// DecodeHeader returns the IHDR of a PNG image. Only the signature and the
// first chunk are read.
func (d *Decoder) DecodeHeader(data []byte) (Header, error) {
	if !Probe(data) {
		return Header{}, FormatError("not a PNG file")
	}
	r := chunkReader{data: data, pos: len(signature)}
	c, err := r.next()
	if err != nil {
		return Header{}, err
	}
	if err := d.verify(c, bitmap.ComponentLogger("png")); err != nil {
		return Header{}, err
	}
	if c.typ != chunkIHDR {
		return Header{}, FormatError("first chunk is " + c.typ + ", not IHDR")
	}
	return parseHeader(c.data)
}

// Decode decodes a complete PNG image. On error no partial image is
// returned.
func (d *Decoder) Decode(data []byte) (bitmap.Bitmap, error) {
	log := bitmap.ComponentLogger("png")

	if !Probe(data) {
		return nil, FormatError("not a PNG file")
	}

	var st decodeState
	r := chunkReader{data: data, pos: len(signature)}
	for done := false; !done && r.remaining() > 0; {
		c, err := r.next()
		if err != nil {
			return nil, err
		}
		if err := d.verify(c, log); err != nil {
			return nil, err
		}
		done, err = d.dispatch(&st, c, log)
		if err != nil {
			return nil, err
		}
	}

	if !st.haveHeader {
		return nil, FormatError("missing IHDR")
	}
	h := st.header
	if h.ColorType == Indexed && st.palette == nil {
		return nil, FormatError("missing PLTE")
	}
	if st.idatChunks == 0 {
		return nil, FormatError("missing IDAT")
	}

	raw, err := d.inflate(h, st.idat.Bytes())
	if err != nil {
		return nil, err
	}

	log.Debug("decoding pixels",
		slog.Int("width", int(h.Width)),
		slog.Int("height", int(h.Height)),
		slog.String("color_type", h.ColorType.String()),
		slog.Int("bit_depth", int(h.BitDepth)),
		slog.Int("idat_chunks", st.idatChunks))

	return decodePixels(h, st.palette, raw)
}

// verify checks the chunk CRC according to the checksum policy.
func (d *Decoder) verify(c chunk, log *slog.Logger) error {
	got := c.checksum()
	if got == c.crc {
		return nil
	}
	if !d.opts.SkipChecksum {
		return &ChecksumError{Chunk: c.typ, Want: c.crc, Got: got}
	}
	log.Warn("ignoring chunk checksum mismatch",
		slog.String("chunk", c.typ),
		slog.String("stored", fmt.Sprintf("%08x", c.crc)),
		slog.String("computed", fmt.Sprintf("%08x", got)))
	return nil
}

// dispatch folds one chunk into st and reports whether IEND was reached.
func (d *Decoder) dispatch(st *decodeState, c chunk, log *slog.Logger) (bool, error) {
	log.Debug("chunk", slog.String("type", c.typ), slog.Int("length", len(c.data)))

	if c.typ == chunkIHDR {
		if st.haveHeader {
			return false, FormatError("duplicate IHDR")
		}
		h, err := parseHeader(c.data)
		if err != nil {
			return false, err
		}
		limit := d.opts.MaxPixels
		if limit == 0 {
			limit = DefaultMaxPixels
		}
		if limit > 0 && uint64(h.Width)*uint64(h.Height) > uint64(limit) {
			return false, UnsupportedFeatureError(fmt.Sprintf("%dx%d image exceeds %d pixel limit",
				h.Width, h.Height, limit))
		}
		st.header, st.haveHeader = h, true
		return false, nil
	}
	if !st.haveHeader {
		return false, FormatError(c.typ + " before IHDR")
	}

	switch c.typ {
	case chunkPLTE:
		return false, parsePalette(st, c.data, log)
	case chunkTRNS:
		return false, parseTransparency(st, c.data, log)
	case chunkIDAT:
		st.idat.Write(c.data)
		st.idatChunks++
	case chunkIEND:
		return true, nil
	default:
		log.Debug("skipping chunk", slog.String("type", c.typ))
	}
	return false, nil
}

func parsePalette(st *decodeState, data []byte, log *slog.Logger) error {
	if st.palette != nil {
		return FormatError("duplicate PLTE")
	}
	if st.idatChunks > 0 {
		return FormatError("PLTE after IDAT")
	}
	n := len(data) / 3
	if len(data)%3 != 0 || n == 0 || n > 256 {
		return FormatError(fmt.Sprintf("PLTE length %d", len(data)))
	}

	h := st.header
	switch h.ColorType {
	case Indexed:
		if n > 1<<h.BitDepth {
			return FormatError(fmt.Sprintf("%d palette entries at bit depth %d", n, h.BitDepth))
		}
	case Grayscale, GrayscaleAlpha:
		return FormatError("PLTE in grayscale image")
	default:
		// A suggested palette for truecolor images; not needed to decode.
		log.Debug("ignoring suggested palette", slog.Int("entries", n))
		return nil
	}

	st.palette = make([]color.RGBA, n)
	for i := range st.palette {
		st.palette[i] = color.PackBytes(data[3*i], data[3*i+1], data[3*i+2], 0xff)
	}
	return nil
}

func parseTransparency(st *decodeState, data []byte, log *slog.Logger) error {
	if st.header.ColorType != Indexed {
		log.Debug("ignoring tRNS", slog.String("color_type", st.header.ColorType.String()))
		return nil
	}
	if st.palette == nil {
		return FormatError("tRNS before PLTE")
	}
	if st.idatChunks > 0 {
		return FormatError("tRNS after IDAT")
	}
	for i, a := range data[:min(len(data), len(st.palette))] {
		st.palette[i] = st.palette[i].WithAlpha(a)
	}
	return nil
}

// inflate decompresses the IDAT payload and checks it holds exactly the
// rows the header describes.
func (d *Decoder) inflate(h Header, idat []byte) ([]byte, error) {
	expected := int(h.Height) * (1 + h.RowBytes())

	codec := d.opts.Decompressor
	if codec == nil {
		codec = deflate.Zlib{Limit: int64(expected)}
	}

	raw, err := codec.Decompress(idat)
	switch {
	case err == nil:
	case errors.Is(err, deflate.ErrLimitExceeded):
		return nil, FormatError("too much pixel data")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, &TruncatedDataError{What: "compressed pixel data", Have: len(idat)}
	default:
		return nil, fmt.Errorf("%w: %w", FormatError("bad compressed pixel data"), err)
	}

	if len(raw) < expected {
		return nil, &TruncatedDataError{What: "pixel data", Want: expected, Have: len(raw)}
	}
	if len(raw) > expected {
		return nil, FormatError("too much pixel data")
	}
	return raw, nil
}

// rowSink stores one reconstructed scanline into the output bitmap.
type rowSink func(y int, row []byte)

// decodePixels unfilters raw row by row into a new bitmap.
func decodePixels(h Header, palette []color.RGBA, raw []byte) (bitmap.Bitmap, error) {
	out, sink, err := newSink(h, palette)
	if err != nil {
		return nil, err
	}

	rowBytes := h.RowBytes()
	bpp := h.FilterStride()

	// Two scratch rows, swapped after every line; prev starts zeroed.
	cur := make([]byte, rowBytes)
	prev := make([]byte, rowBytes)

	for y := range int(h.Height) {
		line := raw[y*(1+rowBytes) : (y+1)*(1+rowBytes)]
		copy(cur, line[1:])
		if err := unfilter(filterType(line[0]), cur, prev, bpp); err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		sink(y, cur)
		cur, prev = prev, cur
	}
	return out, nil
}

// newSink allocates the output bitmap for h and returns the row writer
// matching its color type and depth.
func newSink(h Header, palette []color.RGBA) (bitmap.Bitmap, rowSink, error) {
	width, height := int(h.Width), int(h.Height)
	depth := int(h.BitDepth)

	if h.ColorType == Indexed {
		ix, err := bitmap.NewIndexed(width, height, depth, palette)
		if err != nil {
			return nil, nil, FormatError(err.Error())
		}
		indices := make([]uint8, width)
		return ix, func(y int, row []byte) {
			bitpack.UnpackRowMSB(indices, row, depth)
			ix.SetRow(y, indices)
		}, nil
	}

	b32, err := bitmap.NewBitmap32(width, height)
	if err != nil {
		return nil, nil, FormatError(err.Error())
	}

	var sink rowSink
	switch h.ColorType {
	case RGBA:
		sink = func(y int, row []byte) {
			dst := b32.Row(y)
			for x := range dst {
				p := row[4*x : 4*x+4]
				dst[x] = color.PackBytes(p[0], p[1], p[2], p[3])
			}
		}
	case RGB:
		sink = func(y int, row []byte) {
			dst := b32.Row(y)
			for x := range dst {
				p := row[3*x : 3*x+3]
				dst[x] = color.PackBytes(p[0], p[1], p[2], 0xff)
			}
		}
	case GrayscaleAlpha:
		sink = func(y int, row []byte) {
			dst := b32.Row(y)
			for x := range dst {
				g, a := row[2*x], row[2*x+1]
				dst[x] = color.PackBytes(g, g, g, a)
			}
		}
	case Grayscale:
		// Scale sub-byte samples to 8 bits by bit replication.
		scale := uint8(0xff / bitpack.Mask(depth))
		samples := make([]uint8, width)
		sink = func(y int, row []byte) {
			bitpack.UnpackRowMSB(samples, row, depth)
			dst := b32.Row(y)
			for x, s := range samples {
				g := s * scale
				dst[x] = color.PackBytes(g, g, g, 0xff)
			}
		}
	default:
		return nil, nil, UnsupportedFeatureError(fmt.Sprintf("color type %d", h.ColorType))
	}
	return b32, sink, nil
}
