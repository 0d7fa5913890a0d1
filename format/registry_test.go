package format

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/color"
)

// fakeCodec accepts data starting with magic and fails with err if set.
type fakeCodec struct {
	name  string
	magic string
	err   error
}

func (f fakeCodec) Name() string { return f.name }

func (f fakeCodec) Probe(data []byte) bool { return bytes.HasPrefix(data, []byte(f.magic)) }

func (f fakeCodec) Decode([]byte) (bitmap.Bitmap, error) {
	if f.err != nil {
		return nil, f.err
	}
	return bitmap.NewBitmap32(1, 1)
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeCodec{name: "low"}, 10)
	r.Register(fakeCodec{name: "high"}, 100)
	r.Register(fakeCodec{name: "mid-a"}, 50)
	r.Register(fakeCodec{name: "mid-b"}, 50)

	want := []string{"high", "mid-a", "mid-b", "low"}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	// Re-registering replaces and moves the codec.
	r.Register(fakeCodec{name: "mid-a"}, 1)
	want = []string{"high", "mid-b", "low", "mid-a"}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() after replace = %v, want %v", got, want)
	}

	r.Unregister("high")
	if _, ok := r.Lookup("high"); ok {
		t.Error("Lookup() found an unregistered codec")
	}
	if got := len(r.Names()); got != 3 {
		t.Errorf("len(Names()) = %d, want 3", got)
	}
}

func TestRegistryDecodeFallback(t *testing.T) {
	errBroken := errors.New("broken stream")
	r := NewRegistry()
	r.Register(fakeCodec{name: "first", magic: "X", err: errBroken}, 100)
	r.Register(fakeCodec{name: "second", magic: "X"}, 50)
	r.Register(fakeCodec{name: "other", magic: "Y"}, 75)

	var logs bytes.Buffer
	old := bitmap.Logger()
	bitmap.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn})))
	defer bitmap.SetLogger(old)

	b, name, err := r.Decode([]byte("X..."))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if name != "second" || b == nil {
		t.Errorf("Decode() = %v, %q; want a bitmap from \"second\"", b, name)
	}
	if !strings.Contains(logs.String(), "format=first") {
		t.Errorf("fallback not logged at Warn: %q", logs.String())
	}
}

func TestRegistryDecodeNoFormat(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	r := NewRegistry()
	r.Register(fakeCodec{name: "a", magic: "Z", err: errA}, 2)
	r.Register(fakeCodec{name: "b", magic: "Z", err: errB}, 1)

	_, _, err := r.Decode([]byte("Z"))
	for _, want := range []error{ErrNoFormat, errA, errB} {
		if !errors.Is(err, want) {
			t.Errorf("Decode() error = %v, want it to match %v", err, want)
		}
	}

	_, _, err = r.Decode([]byte("nothing probes this"))
	if !errors.Is(err, ErrNoFormat) {
		t.Errorf("Decode(unknown) error = %v, want ErrNoFormat", err)
	}
	if _, _, err := NewRegistry().Decode(nil); !errors.Is(err, ErrNoFormat) {
		t.Errorf("empty registry Decode() error = %v, want ErrNoFormat", err)
	}
}

func TestRegistryEncodeErrors(t *testing.T) {
	r := Default()
	b, _ := bitmap.NewBitmap32(1, 1)

	if _, err := r.Encode("webp", b); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode(webp) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := r.Encode("jpeg", b); !errors.Is(err, ErrNotEncoder) {
		t.Errorf("Encode(jpeg) error = %v, want ErrNotEncoder", err)
	}
	if _, err := r.Encode("gif", b); !errors.Is(err, ErrNotEncoder) {
		t.Errorf("Encode(gif) error = %v, want ErrNotEncoder", err)
	}
}

func TestDefaultNames(t *testing.T) {
	want := []string{"png", "gif", "bmp", "tiff", "jpeg"}
	if got := Default().Names(); !slices.Equal(got, want) {
		t.Errorf("Default().Names() = %v, want %v", got, want)
	}
	if Default() == Default() {
		t.Error("Default() returned a shared registry")
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := Default()
	src, _ := bitmap.NewBitmap32(4, 4)
	src.Fill(color.Red)
	data, err := r.Encode("png", src)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				r.Register(fakeCodec{name: "noise", magic: "\x00"}, i)
				return
			}
			if _, name, err := r.Decode(data); err != nil || name != "png" {
				t.Errorf("Decode() = %q, %v", name, err)
			}
		}()
	}
	wg.Wait()
}
