// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package png

import (
	"fmt"
	"math"
)

// filterType is the per-scanline filter byte.
type filterType uint8

const (
	ftNone filterType = iota
	ftSub
	ftUp
	ftAverage
	ftPaeth
	numFilters
)

var filterNames = [numFilters]string{"none", "sub", "up", "average", "paeth"}

func (ft filterType) String() string {
	if ft < numFilters {
		return filterNames[ft]
	}
	return fmt.Sprintf("filter(%d)", uint8(ft))
}

// FilterStrategy selects the scanline filters written by the encoder.
// The first five values apply the same filter to every row.
type FilterStrategy uint8

const (
	FilterNone FilterStrategy = iota
	FilterSub
	FilterUp
	FilterAverage
	FilterPaeth

	// FilterAdaptive picks, for each row, the filter whose output has the
	// smallest sum of absolute signed bytes.
	FilterAdaptive
)

// String returns the strategy name.
func (s FilterStrategy) String() string {
	if s == FilterAdaptive {
		return "adaptive"
	}
	return filterType(s).String()
}

// ParseFilterStrategy parses the names returned by String.
func ParseFilterStrategy(s string) (FilterStrategy, error) {
	if s == "adaptive" {
		return FilterAdaptive, nil
	}
	for i, name := range filterNames {
		if s == name {
			return FilterStrategy(i), nil
		}
	}
	return FilterNone, fmt.Errorf("png: unknown filter strategy %q", s)
}

// paeth returns whichever of a (left), b (up) or c (upper left) is closest
// to a+b-c. Ties prefer a, then b.
func paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := absInt(p - int(a))
	pb := absInt(p - int(b))
	pc := absInt(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// abs8 is the magnitude of a byte read as int8.
func abs8(d uint8) int {
	if d < 128 {
		return int(d)
	}
	return 256 - int(d)
}

// unfilter reverses ft on cur in place. prev is the reconstructed previous
// row, all zero for the first row. Arithmetic wraps modulo 256.
func unfilter(ft filterType, cur, prev []byte, bpp int) error {
	switch ft {
	case ftNone:
	case ftSub:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}
	case ftUp:
		for i, p := range prev[:len(cur)] {
			cur[i] += p
		}
	case ftAverage:
		for i := 0; i < bpp && i < len(cur); i++ {
			cur[i] += prev[i] / 2
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += uint8((int(cur[i-bpp]) + int(prev[i])) / 2)
		}
	case ftPaeth:
		for i := 0; i < bpp && i < len(cur); i++ {
			cur[i] += prev[i]
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += paeth(cur[i-bpp], prev[i], prev[i-bpp])
		}
	default:
		return FormatError(fmt.Sprintf("bad filter type %d", uint8(ft)))
	}
	return nil
}

// applyFilter writes ft applied to cur into dst, which must be as long as
// cur. It is the exact inverse of unfilter.
func applyFilter(ft filterType, dst, cur, prev []byte, bpp int) {
	n := len(cur)
	switch ft {
	case ftNone:
		copy(dst, cur)
	case ftSub:
		copy(dst[:min(bpp, n)], cur)
		for i := bpp; i < n; i++ {
			dst[i] = cur[i] - cur[i-bpp]
		}
	case ftUp:
		for i := range n {
			dst[i] = cur[i] - prev[i]
		}
	case ftAverage:
		for i := 0; i < bpp && i < n; i++ {
			dst[i] = cur[i] - prev[i]/2
		}
		for i := bpp; i < n; i++ {
			dst[i] = cur[i] - uint8((int(cur[i-bpp])+int(prev[i]))/2)
		}
	case ftPaeth:
		for i := 0; i < bpp && i < n; i++ {
			dst[i] = cur[i] - prev[i]
		}
		for i := bpp; i < n; i++ {
			dst[i] = cur[i] - paeth(cur[i-bpp], prev[i], prev[i-bpp])
		}
	}
}

// adaptiveOrder tries the filters most likely to win first so that the
// early exit in chooseFilter triggers sooner.
var adaptiveOrder = [numFilters]filterType{ftUp, ftPaeth, ftNone, ftSub, ftAverage}

// chooseFilter applies every filter to cur into scratch and returns the one
// with the smallest sum of absolute residuals, the heuristic libpng uses.
func chooseFilter(scratch *[numFilters][]byte, cur, prev []byte, bpp int) filterType {
	best, bestSum := ftNone, math.MaxInt
	for _, ft := range adaptiveOrder {
		out := scratch[ft]
		applyFilter(ft, out, cur, prev, bpp)
		sum := 0
		for _, v := range out {
			sum += abs8(v)
			if sum >= bestSum {
				break
			}
		}
		if sum < bestSum {
			best, bestSum = ft, sum
		}
	}
	return best
}
