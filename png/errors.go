// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package png

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by Decode matches exactly one of
// these under errors.Is.
var (
	// ErrFormat reports malformed PNG data.
	ErrFormat = errors.New("png: invalid format")

	// ErrTruncated reports input that ends before a declared length.
	ErrTruncated = errors.New("png: truncated data")

	// ErrUnsupported reports valid PNG data using a feature this codec
	// does not implement.
	ErrUnsupported = errors.New("png: unsupported feature")

	// ErrChecksum reports a chunk whose CRC does not match its contents.
	ErrChecksum = errors.New("png: checksum mismatch")

	// ErrEmptyImage is returned by Encode for a bitmap with zero width or
	// height.
	ErrEmptyImage = errors.New("png: empty image")
)

// FormatError describes malformed input.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// Is reports whether target is ErrFormat.
func (e FormatError) Is(target error) bool { return target == ErrFormat }

// UnsupportedFeatureError names a feature the decoder does not handle.
type UnsupportedFeatureError string

func (e UnsupportedFeatureError) Error() string { return "png: unsupported feature: " + string(e) }

// Is reports whether target is ErrUnsupported.
func (e UnsupportedFeatureError) Is(target error) bool { return target == ErrUnsupported }

// TruncatedDataError reports that What needed Want bytes but only Have
// were available. Want is zero when the required size is unknown, as for
// a compressed stream that ends early.
type TruncatedDataError struct {
	What string
	Want int
	Have int
}

func (e *TruncatedDataError) Error() string {
	if e.Want == 0 {
		return fmt.Sprintf("png: truncated %s: ends after %d bytes", e.What, e.Have)
	}
	return fmt.Sprintf("png: truncated %s: need %d bytes, have %d", e.What, e.Want, e.Have)
}

// Is reports whether target is ErrTruncated.
func (e *TruncatedDataError) Is(target error) bool { return target == ErrTruncated }

// ChecksumError reports a CRC mismatch on a chunk.
type ChecksumError struct {
	Chunk string
	Want  uint32
	Got   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("png: %s chunk checksum mismatch: stored %08x, computed %08x", e.Chunk, e.Want, e.Got)
}

// Is reports whether target is ErrChecksum.
func (e *ChecksumError) Is(target error) bool { return target == ErrChecksum }
