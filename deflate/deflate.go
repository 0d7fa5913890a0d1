// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package deflate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/klauspost/compress/zlib"

	"github.com/gogpu/bitmap"
)

// ErrLimitExceeded is returned by Decompress when the inflated stream is
// larger than the configured limit.
var ErrLimitExceeded = errors.New("deflate: decompressed size exceeds limit")

// Codec compresses and decompresses complete zlib streams.
//
// Implementations must be safe for concurrent use.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Level selects the compression effort. The zero value is the default level
// so an unset option behaves sensibly. Values 1 through 9 are passed to zlib
// unchanged.
type Level int

const (
	DefaultCompression Level = 0
	NoCompression      Level = -1
	BestSpeed          Level = -2
	BestCompression    Level = -3
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case DefaultCompression:
		return "default"
	case NoCompression:
		return "none"
	case BestSpeed:
		return "speed"
	case BestCompression:
		return "best"
	}
	if l >= 1 && l <= 9 {
		return strconv.Itoa(int(l))
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel parses the names returned by String as well as "0" through "9".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "default", "":
		return DefaultCompression, nil
	case "none", "0":
		return NoCompression, nil
	case "speed":
		return BestSpeed, nil
	case "best":
		return BestCompression, nil
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return Level(s[0] - '0'), nil
	}
	return DefaultCompression, fmt.Errorf("deflate: unknown level %q", s)
}

// zlibLevel maps l onto the values understood by the zlib package. Unknown
// levels fall back to the default.
func (l Level) zlibLevel() int {
	switch l {
	case NoCompression:
		return zlib.NoCompression
	case BestSpeed:
		return zlib.BestSpeed
	case BestCompression:
		return zlib.BestCompression
	}
	if l >= 1 && l <= 9 {
		return int(l)
	}
	return zlib.DefaultCompression
}

// Zlib is the default Codec. The zero value compresses at the default level
// and inflates without a size limit.
type Zlib struct {
	// Level is the compression level used by Compress.
	Level Level

	// Limit caps the decompressed size in bytes. Zero or negative means
	// unlimited.
	Limit int64

	// Pool supplies writers. Nil uses a shared package pool.
	Pool *Pool
}

var _ Codec = Zlib{}

func (z Zlib) pool() *Pool {
	if z.Pool != nil {
		return z.Pool
	}
	return defaultPool
}

// Compress returns data as a single zlib stream.
func (z Zlib) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	pool := z.pool()
	zw, err := pool.Get(&buf, z.Level)
	if err != nil {
		return nil, fmt.Errorf("deflate: new writer: %w", err)
	}
	defer pool.Put(zw, z.Level)

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deflate: close: %w", err)
	}

	bitmap.ComponentLogger("deflate").Debug("compressed",
		slog.String("level", z.Level.String()),
		slog.Int("in", len(data)),
		slog.Int("out", buf.Len()))
	return buf.Bytes(), nil
}

// Decompress inflates a complete zlib stream. A stream that ends early
// reports io.ErrUnexpectedEOF through the returned error chain.
func (z Zlib) Decompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	defer zr.Close()

	var r io.Reader = zr
	if z.Limit > 0 {
		r = io.LimitReader(zr, z.Limit+1)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if z.Limit > 0 && int64(buf.Len()) > z.Limit {
		return nil, ErrLimitExceeded
	}
	return buf.Bytes(), nil
}
