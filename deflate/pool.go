// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package deflate

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// Pool is a thread-safe pool of zlib writers grouped by compression level.
//
// Writers hold large internal tables, so reusing them removes most of the
// allocation cost of Compress. A writer is reset onto the caller's
// destination in Get and detached onto io.Discard in Put, so a pooled
// writer never keeps a reference to caller memory.
//
// The zero value is an empty pool with no size limit.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[Level][]*zlib.Writer
	maxSize int // max writers per level
}

// NewPool creates a writer pool retaining at most maxPerBucket writers per
// level. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[Level][]*zlib.Writer),
		maxSize: maxPerBucket,
	}
}

// Get returns a writer compressing into w at the given level, reusing a
// pooled one when available.
func (p *Pool) Get(w io.Writer, level Level) (*zlib.Writer, error) {
	p.mu.Lock()
	bucket := p.buckets[level]
	if n := len(bucket); n > 0 {
		zw := bucket[n-1]
		p.buckets[level] = bucket[:n-1]
		p.mu.Unlock()

		zw.Reset(w)
		return zw, nil
	}
	p.mu.Unlock()

	return zlib.NewWriterLevel(w, level.zlibLevel())
}

// Put returns zw to the pool. level must be the level zw was obtained with.
// If zw is nil or the bucket is full, the writer is discarded.
func (p *Pool) Put(zw *zlib.Writer, level Level) {
	if zw == nil {
		return
	}
	zw.Reset(io.Discard)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.buckets == nil {
		p.buckets = make(map[Level][]*zlib.Writer)
	}
	bucket := p.buckets[level]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[level] = append(bucket, zw)
}

// Len reports how many writers are pooled for level.
func (p *Pool) Len(level Level) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[level])
}

var defaultPool = NewPool(8)
