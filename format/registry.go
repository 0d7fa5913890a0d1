// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package format dispatches image bytes to the first codec that can decode
// them.
//
// There is no global registry. Callers build one with NewRegistry and
// Register, or start from Default, which knows PNG, GIF, BMP, TIFF and
// JPEG:
//
//	reg := format.Default()
//	b, name, err := reg.Decode(data)
//	...
//	out, err := reg.Encode("bmp", b)
package format

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/bitmap"
)

// Errors returned by Registry.
var (
	// ErrNoFormat is returned when no registered codec decodes the data.
	ErrNoFormat = errors.New("format: no codec recognized the data")

	// ErrUnknownFormat is returned for a codec name that is not registered.
	ErrUnknownFormat = errors.New("format: unknown format")

	// ErrNotEncoder is returned when the named codec cannot encode.
	ErrNotEncoder = errors.New("format: codec does not encode")
)

// Codec decodes one image format.
//
// Probe must be cheap and must not fail; it usually checks a magic number.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Name is the unique, lower case format name.
	Name() string

	// Probe reports whether data looks like this format.
	Probe(data []byte) bool

	// Decode decodes a complete image.
	Decode(data []byte) (bitmap.Bitmap, error)
}

// Encoder is implemented by codecs that can also write their format.
type Encoder interface {
	Codec
	Encode(b bitmap.Bitmap) ([]byte, error)
}

type entry struct {
	codec    Codec
	priority int
	seq      int
}

// Registry holds codecs ordered by priority, highest first, and by
// registration order among equal priorities.
//
// Thread safety: All methods are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	seq     int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds c with the given priority. Registering a name that already
// exists replaces the previous codec.
func (r *Registry) Register(c Codec, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = slices.DeleteFunc(r.entries, func(e entry) bool {
		return e.codec.Name() == c.Name()
	})
	r.seq++
	r.entries = append(r.entries, entry{codec: c, priority: priority, seq: r.seq})
	slices.SortStableFunc(r.entries, func(a, b entry) int {
		if a.priority != b.priority {
			return b.priority - a.priority
		}
		return a.seq - b.seq
	})
}

// Unregister removes the named codec.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = slices.DeleteFunc(r.entries, func(e entry) bool {
		return e.codec.Name() == name
	})
}

// Names returns the registered codec names in trial order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.codec.Name()
	}
	return names
}

// Lookup returns the named codec.
func (r *Registry) Lookup(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.codec.Name() == name {
			return e.codec, true
		}
	}
	return nil, false
}

// Probe returns the name of the first codec whose Probe accepts data.
func (r *Registry) Probe(data []byte) (string, bool) {
	for _, c := range r.snapshot() {
		if c.Probe(data) {
			return c.Name(), true
		}
	}
	return "", false
}

// snapshot copies the codecs so decoding runs without holding the lock.
func (r *Registry) snapshot() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codecs := make([]Codec, len(r.entries))
	for i, e := range r.entries {
		codecs[i] = e.codec
	}
	return codecs
}

// Decode tries every codec whose Probe accepts data, in order, and returns
// the first success together with the codec name. When all of them fail,
// the error matches ErrNoFormat and each codec error under errors.Is.
func (r *Registry) Decode(data []byte) (bitmap.Bitmap, string, error) {
	log := bitmap.ComponentLogger("format")

	errs := []error{ErrNoFormat}
	for _, c := range r.snapshot() {
		if !c.Probe(data) {
			continue
		}
		b, err := c.Decode(data)
		if err == nil {
			log.Debug("decoded", slog.String("format", c.Name()),
				slog.Int("width", b.Width()), slog.Int("height", b.Height()))
			return b, c.Name(), nil
		}
		log.Warn("codec failed, trying next",
			slog.String("format", c.Name()),
			slog.String("error", err.Error()))
		errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
	}
	return nil, "", errors.Join(errs...)
}

// Encode writes b with the named codec.
func (r *Registry) Encode(name string, b bitmap.Bitmap) ([]byte, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	enc, ok := c.(Encoder)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotEncoder, name)
	}
	return enc.Encode(b)
}

// Default returns a new registry holding the built-in codecs: PNG, GIF,
// BMP, TIFF and JPEG, in that order.
func Default() *Registry {
	r := NewRegistry()
	r.Register(PNG{}, 100)
	r.Register(GIF{}, 50)
	r.Register(BMP{}, 40)
	r.Register(TIFF{Deflate: true}, 30)
	r.Register(JPEG{}, 20)
	return r
}
