// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package color

import (
	"errors"
	"fmt"
)

// ErrInvalidHex is returned by ParseHex for malformed input.
var ErrInvalidHex = errors.New("color: invalid hex color")

// ParseHex parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", each with an
// optional leading '#'. Alpha defaults to ff when omitted.
func ParseHex(s string) (RGBA, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var ch [4]uint8
	ch[3] = 0xff

	switch len(hex) {
	case 3, 4: // RGB, RGBA
		for i := range len(hex) {
			v, ok := hexDigit(hex[i])
			if !ok {
				return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			ch[i] = v * 17
		}
	case 6, 8: // RRGGBB, RRGGBBAA
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			ch[i/2] = hi<<4 | lo
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	return PackBytes(ch[0], ch[1], ch[2], ch[3]), nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// Intended for package-level color tables.
func MustParseHex(s string) RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
