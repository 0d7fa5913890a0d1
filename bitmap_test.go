package bitmap

import (
	"errors"
	"testing"

	"github.com/gogpu/bitmap/color"
)

func TestNewBitmap32(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr error
	}{
		{"valid", 100, 50, nil},
		{"empty", 0, 0, nil},
		{"zero height", 10, 0, nil},
		{"negative width", -1, 10, ErrInvalidDimensions},
		{"negative height", 10, -1, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBitmap32(tt.width, tt.height)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBitmap32() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if b.Width() != tt.width || b.Height() != tt.height {
				t.Errorf("size = (%d, %d), want (%d, %d)", b.Width(), b.Height(), tt.width, tt.height)
			}
			if len(b.Pixels()) != tt.width*tt.height || b.Area() != tt.width*tt.height {
				t.Errorf("len(Pixels()) = %d, Area() = %d, want %d", len(b.Pixels()), b.Area(), tt.width*tt.height)
			}
		})
	}
}

func TestNewBitmap32FromPixels(t *testing.T) {
	pix := make([]color.RGBA, 6)
	pix[4] = color.Red
	b, err := NewBitmap32FromPixels(3, 2, pix)
	if err != nil {
		t.Fatalf("NewBitmap32FromPixels() error = %v", err)
	}
	if got := b.Get32(1, 1); got != color.Red {
		t.Errorf("Get32(1, 1) = %v, want %v", got, color.Red)
	}
	if _, err := NewBitmap32FromPixels(3, 3, pix); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("short pixels error = %v, want ErrDataTooSmall", err)
	}
}

func TestBitmap32GetSet(t *testing.T) {
	b, _ := NewBitmap32(4, 3)
	c := color.PackBytes(1, 2, 3, 4)
	b.Set(2, 1, uint32(c))

	if got := b.Get32(2, 1); got != c {
		t.Errorf("Get32() = %v, want %v", got, c)
	}
	if got := b.Get(2, 1); got != uint32(c) {
		t.Errorf("Get() = %#x, want %#x", got, uint32(c))
	}
	if got := b.Index(2, 1); got != 6 {
		t.Errorf("Index(2, 1) = %d, want 6", got)
	}

	// Out of bounds is silent.
	b.SetRGBA(4, 0, color.White)
	b.SetRGBA(-1, 0, color.White)
	if got := b.Get32(4, 0); got != color.Transparent {
		t.Errorf("Get32(out of bounds) = %v, want transparent", got)
	}
	for i, p := range b.Pixels() {
		if i != 6 && p != 0 {
			t.Errorf("pixel %d = %v, want untouched", i, p)
		}
	}
}

func TestBitmap32CloneEqual(t *testing.T) {
	b, _ := NewBitmap32(3, 3)
	b.Fill(color.Green)
	c := b.Clone()
	if !b.Equal(c) {
		t.Fatal("Clone() not Equal to original")
	}
	c.SetRGBA(0, 0, color.Blue)
	if b.Get32(0, 0) != color.Green {
		t.Error("Clone() shares pixels with original")
	}
	if b.Equal(c) {
		t.Error("Equal() = true after modification")
	}
	if b.Equal(nil) {
		t.Error("Equal(nil) = true")
	}
}

func TestBitmap32IsOpaque(t *testing.T) {
	b, _ := NewBitmap32(2, 2)
	b.Fill(color.White)
	if !b.IsOpaque() {
		t.Error("IsOpaque() = false for white fill")
	}
	b.SetRGBA(1, 1, color.White.WithAlpha(254))
	if b.IsOpaque() {
		t.Error("IsOpaque() = true with a translucent pixel")
	}
}

func TestBitmap32Premultiply(t *testing.T) {
	b, _ := NewBitmap32(1, 1)
	b.SetRGBA(0, 0, color.Pack(255, 255, 255, 0x7f))

	p := b.Premultiply(color.Accurate)
	if got := p.Get32(0, 0).String(); got != "#7f7f7f7f" {
		t.Errorf("Premultiply() pixel = %s, want #7f7f7f7f", got)
	}
	if b.Get32(0, 0) != color.Pack(255, 255, 255, 0x7f) {
		t.Error("Premultiply() modified the source")
	}
	if got := p.Depremultiply().Get32(0, 0); got != color.Pack(255, 255, 255, 0x7f) {
		t.Errorf("Depremultiply() pixel = %v, want #ffffff7f", got)
	}
}

func TestBitmap32DrawOver(t *testing.T) {
	dst, _ := NewBitmap32(4, 4)
	dst.Fill(color.Black)

	src, _ := NewBitmap32(3, 3)
	src.Fill(color.Pack(255, 0, 0, 128))
	src.SetRGBA(0, 0, color.Transparent)

	dst.DrawOver(src, 2, -1)

	want := color.Mix(color.Black, color.Pack(255, 0, 0, 128))
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.Black},
		{1, 0, color.Black},
		{2, 0, want},
		{3, 0, want},
		{2, 1, want},
		{3, 2, color.Black},
		{2, 2, color.Black},
	}
	for _, tt := range tests {
		if got := dst.Get32(tt.x, tt.y); got != tt.want {
			t.Errorf("Get32(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNewIndexed(t *testing.T) {
	tests := []struct {
		name    string
		bpp     int
		palette int
		wantErr error
	}{
		{"1bpp", 1, 2, nil},
		{"2bpp", 2, 3, nil},
		{"4bpp", 4, 16, nil},
		{"8bpp", 8, 32, nil},
		{"3bpp", 3, 2, ErrInvalidDepth},
		{"16bpp", 16, 2, ErrInvalidDepth},
		{"palette too large", 2, 5, ErrPaletteTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewIndexed(13, 7, tt.bpp, make([]color.RGBA, tt.palette))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewIndexed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got, want := len(b.Data()), (13*7*tt.bpp+7)/8; got != want {
				t.Errorf("len(Data()) = %d, want %d", got, want)
			}
			if got := len(b.Palette()); got != 1<<tt.bpp {
				t.Errorf("len(Palette()) = %d, want %d", got, 1<<tt.bpp)
			}
			if b.PaletteSize() != tt.palette {
				t.Errorf("PaletteSize() = %d, want %d", b.PaletteSize(), tt.palette)
			}
		})
	}
}

func TestIndexedGetSet(t *testing.T) {
	for _, bpp := range []int{1, 2, 4, 8} {
		pal := make([]color.RGBA, 1<<bpp)
		for i := range pal {
			pal[i] = color.Pack(i, 255-i, i*3, 255)
		}
		b, err := NewIndexed(7, 5, bpp, pal)
		if err != nil {
			t.Fatalf("NewIndexed(bpp=%d) error = %v", bpp, err)
		}

		mask := uint32(1<<bpp - 1)
		for y := range 5 {
			for x := range 7 {
				b.Set(x, y, uint32(x*5+y*3)&mask)
			}
		}
		for y := range 5 {
			for x := range 7 {
				want := uint32(x*5+y*3) & mask
				if got := b.Get(x, y); got != want {
					t.Fatalf("bpp=%d Get(%d, %d) = %d, want %d", bpp, x, y, got, want)
				}
				if got := b.Get32(x, y); got != pal[want] {
					t.Fatalf("bpp=%d Get32(%d, %d) = %v, want %v", bpp, x, y, got, pal[want])
				}
			}
		}
	}
}

func TestIndexedSetMasks(t *testing.T) {
	b, _ := NewIndexed(4, 1, 2, nil)
	b.Set(1, 0, 0xff)
	if got := b.Get(1, 0); got != 3 {
		t.Errorf("Get() = %d, want 3", got)
	}
	if b.Get(0, 0) != 0 || b.Get(2, 0) != 0 {
		t.Error("Set() disturbed neighbouring pixels")
	}
}

func TestIndexedPalette(t *testing.T) {
	b, _ := NewIndexed(2, 2, 4, []color.RGBA{color.Red})
	b.SetPalette(5, color.Blue)
	if b.PaletteSize() != 6 {
		t.Errorf("PaletteSize() = %d, want 6", b.PaletteSize())
	}
	b.SetPalette(16, color.Green)
	if b.PaletteSize() != 6 {
		t.Errorf("SetPalette(out of range) changed PaletteSize to %d", b.PaletteSize())
	}
	b.SetPaletteSize(100)
	if b.PaletteSize() != 16 {
		t.Errorf("SetPaletteSize(100) = %d, want 16", b.PaletteSize())
	}
}

func TestIndexedRows(t *testing.T) {
	b, _ := NewIndexed(5, 2, 4, nil)
	b.SetRow(1, []uint8{1, 2, 3, 4, 5, 6})
	got := b.RowIndices(1, make([]uint8, 8))
	want := []uint8{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("RowIndices() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RowIndices()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if b.Get(0, 0) != 0 {
		t.Error("SetRow(1) wrote into row 0")
	}
}

func TestToTruecolor(t *testing.T) {
	pal := []color.RGBA{color.Red, color.Green, color.Blue, color.Transparent}
	ix, _ := NewIndexed(3, 2, 2, pal)
	for i := range 6 {
		ix.Set(i%3, i/3, uint32(i%4))
	}

	tc := ToTruecolor(ix)
	if tc.Width() != 3 || tc.Height() != 2 {
		t.Fatalf("ToTruecolor() size = (%d, %d), want (3, 2)", tc.Width(), tc.Height())
	}
	for y := range 2 {
		for x := range 3 {
			if got, want := tc.Get32(x, y), ix.Get32(x, y); got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	// No aliasing: changing the palette must not affect the converted copy.
	ix.Palette()[0] = color.White
	if tc.Get32(0, 0) != color.Red {
		t.Error("ToTruecolor() result aliases the indexed palette")
	}

	if same := ToTruecolor(tc); same != tc {
		t.Error("ToTruecolor(*Bitmap32) should return its argument")
	}
	if ix.ToTruecolor().Get32(0, 0) != color.White {
		t.Error("Indexed.ToTruecolor() did not resolve through the palette")
	}
}

func BenchmarkIndexedToTruecolor(b *testing.B) {
	ix, _ := NewIndexed(256, 256, 4, make([]color.RGBA, 16))
	for b.Loop() {
		_ = ix.ToTruecolor()
	}
}
