package png

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"
)

func TestPaeth(t *testing.T) {
	tests := []struct {
		a, b, c uint8
		want    uint8
	}{
		{10, 10, 0, 10},   // tie between a and b takes a
		{0, 0, 0, 0},      // all equal
		{5, 20, 20, 5},    // p = 5, exact match on a
		{20, 5, 20, 5},    // p = 5, exact match on b
		{10, 20, 15, 15},  // p = 15, c is exact
		{100, 50, 50, 100},
		{50, 100, 100, 50},
		{1, 255, 128, 128}, // p = 128, c is exact
		{255, 255, 0, 255},
		{3, 7, 5, 5}, // p = 5, pa = 2, pb = 2, pc = 0
	}
	for _, tt := range tests {
		if got := paeth(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("paeth(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}

func randomRow(r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.IntN(256))
	}
	return b
}

func TestFilterRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for _, bpp := range []int{1, 2, 3, 4} {
		for ft := ftNone; ft < numFilters; ft++ {
			t.Run(ft.String(), func(t *testing.T) {
				for _, n := range []int{1, bpp, 3 * bpp, 97} {
					cur := randomRow(r, n)
					prev := randomRow(r, n)

					filtered := make([]byte, n)
					applyFilter(ft, filtered, cur, prev, bpp)
					if err := unfilter(ft, filtered, prev, bpp); err != nil {
						t.Fatalf("unfilter() error = %v", err)
					}
					if !bytes.Equal(filtered, cur) {
						t.Errorf("bpp=%d n=%d: unfilter(filter(row)) = %v, want %v", bpp, n, filtered, cur)
					}
				}
			})
		}
	}
}

func TestUnfilterKnownRows(t *testing.T) {
	prev := []byte{10, 20, 30, 40}
	tests := []struct {
		ft   filterType
		in   []byte
		want []byte
	}{
		{ftNone, []byte{1, 2, 3, 4}, []byte{1, 2, 3, 4}},
		{ftSub, []byte{1, 2, 3, 4}, []byte{1, 2, 4, 6}},
		{ftUp, []byte{1, 2, 3, 4}, []byte{11, 22, 33, 44}},
		{ftUp, []byte{250, 0, 0, 0}, []byte{4, 20, 30, 40}}, // wraps
		{ftAverage, []byte{1, 2, 3, 4}, []byte{6, 12, 3 + (6+30)/2, 4 + (12+40)/2}},
		{ftPaeth, []byte{0, 0, 0, 0}, []byte{10, 20, 30, 40}},
	}
	for _, tt := range tests {
		cur := bytes.Clone(tt.in)
		if err := unfilter(tt.ft, cur, prev, 2); err != nil {
			t.Fatalf("unfilter(%v) error = %v", tt.ft, err)
		}
		if !bytes.Equal(cur, tt.want) {
			t.Errorf("unfilter(%v, %v) = %v, want %v", tt.ft, tt.in, cur, tt.want)
		}
	}
}

func TestUnfilterBadType(t *testing.T) {
	err := unfilter(5, make([]byte, 4), make([]byte, 4), 1)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("unfilter(5) error = %v, want ErrFormat", err)
	}
}

func residualSum(b []byte) int {
	sum := 0
	for _, v := range b {
		sum += abs8(v)
	}
	return sum
}

func TestChooseFilterIsMinimal(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	const n = 64

	rows := map[string][2][]byte{
		"noise":    {randomRow(r, n), randomRow(r, n)},
		"zeros":    {make([]byte, n), make([]byte, n)},
		"gradient": {bytes.Repeat([]byte{1, 2, 3, 4}, n/4), make([]byte, n)},
		"repeat":   {bytes.Repeat([]byte{9}, n), bytes.Repeat([]byte{9}, n)},
	}
	for name, rw := range rows {
		t.Run(name, func(t *testing.T) {
			var scratch [numFilters][]byte
			for i := range scratch {
				scratch[i] = make([]byte, n)
			}
			cur, prev := rw[0], rw[1]
			best := chooseFilter(&scratch, cur, prev, 4)

			want := make([]byte, n)
			applyFilter(best, want, cur, prev, 4)
			if !bytes.Equal(scratch[best], want) {
				t.Fatalf("scratch[%v] does not hold the filtered row", best)
			}
			bestSum := residualSum(want)
			for ft := ftNone; ft < numFilters; ft++ {
				out := make([]byte, n)
				applyFilter(ft, out, cur, prev, 4)
				if s := residualSum(out); s < bestSum {
					t.Errorf("chooseFilter() = %v (sum %d), but %v has sum %d", best, bestSum, ft, s)
				}
			}
		})
	}
}

func TestParseFilterStrategy(t *testing.T) {
	for s := FilterNone; s <= FilterAdaptive; s++ {
		got, err := ParseFilterStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseFilterStrategy(%q) = %v, %v; want %v", s.String(), got, err, s)
		}
	}
	if _, err := ParseFilterStrategy("bogus"); err == nil {
		t.Error("ParseFilterStrategy(bogus) error = nil")
	}
}

func BenchmarkChooseFilter(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 2))
	cur, prev := randomRow(r, 4*1024), randomRow(r, 4*1024)
	var scratch [numFilters][]byte
	for i := range scratch {
		scratch[i] = make([]byte, len(cur))
	}
	b.SetBytes(int64(len(cur)))
	for b.Loop() {
		chooseFilter(&scratch, cur, prev, 4)
	}
}
