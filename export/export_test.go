package export

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/phosphor/render"
)

var green = render.RGB{R: 0, G: 255, B: 0}

func testFrames(n int) []*render.Frame {
	frames := make([]*render.Frame, n)
	for i := range frames {
		c := render.NewCanvas(16, 8)
		for x := 0; x <= i && x < 16; x++ {
			c.SetRGB(x, 3, green)
		}
		c.SetRGB(0, 0, render.RGB{R: 90, G: 90, B: 90})
		frames[i] = c.Freeze()
	}
	return frames
}

func TestPhosphorPalette(t *testing.T) {
	pal := PhosphorPalette(green, 50)
	if len(pal) == 0 || len(pal) > 256 {
		t.Fatalf("Expected 1-256 colors, got %d", len(pal))
	}
	has := func(c color.RGBA) bool {
		for _, p := range pal {
			if p == c {
				return true
			}
		}
		return false
	}
	if !has(color.RGBA{A: 0xff}) {
		t.Error("Expected black in palette")
	}
	if !has(color.RGBA{G: 255, A: 0xff}) {
		t.Error("Expected glow color in palette")
	}
	if !has(color.RGBA{R: 255, G: 255, B: 255, A: 0xff}) {
		t.Error("Expected white in palette")
	}

	low, high := PhosphorPalette(green, 1), PhosphorPalette(green, 100)
	if len(low) >= len(high) {
		t.Errorf("Expected higher quality to add colors, got %d vs %d", len(low), len(high))
	}
	if len(high) > 256 {
		t.Errorf("Expected at most 256 colors at max quality, got %d", len(high))
	}
}

func TestDelayCentiseconds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{time.Second / 30, 3},
		{100 * time.Millisecond, 10},
		{time.Second / 100, 1},
		{time.Millisecond, 1},
	}
	for _, tt := range tests {
		if got := DelayCentiseconds(tt.d); got != tt.want {
			t.Errorf("DelayCentiseconds(%v): expected %d, got %d", tt.d, tt.want, got)
		}
	}
}

func TestEncodeGIF(t *testing.T) {
	var buf bytes.Buffer
	frames := testFrames(5)
	if err := EncodeGIF(context.Background(), &buf, frames, 100*time.Millisecond, PhosphorPalette(green, 50)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(anim.Image) != 5 {
		t.Fatalf("Expected 5 frames, got %d", len(anim.Image))
	}
	if anim.LoopCount != 0 {
		t.Errorf("Expected infinite loop, got %d", anim.LoopCount)
	}
	for i, d := range anim.Delay {
		if d != 10 {
			t.Errorf("Frame %d: expected delay 10cs, got %d", i, d)
		}
	}
	b := anim.Image[0].Bounds()
	if b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("Expected 16x8 frames, got %v", b)
	}

	// Palette colors survive quantization exactly
	r, g, bl, _ := anim.Image[4].At(2, 3).RGBA()
	if r != 0 || g>>8 != 255 || bl != 0 {
		t.Errorf("Expected pure glow pixel, got %d %d %d", r>>8, g>>8, bl>>8)
	}
}

func TestEncodeGIFNoFrames(t *testing.T) {
	err := EncodeGIF(context.Background(), io.Discard, nil, time.Second, PhosphorPalette(green, 50))
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("Expected ErrNoFrames, got %v", err)
	}
}

func TestEncodeGIFCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := EncodeGIF(ctx, io.Discard, testFrames(3), time.Second, PhosphorPalette(green, 50))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")

	payload := func(s string) func(context.Context, io.WriteSeeker) error {
		return func(_ context.Context, w io.WriteSeeker) error {
			_, err := io.WriteString(w, s)
			return err
		}
	}
	err := WriteAll(context.Background(),
		Job{Path: a, Write: payload("alpha")},
		Job{Path: b, Write: payload("beta")},
		Job{Path: "", Write: payload("skipped")},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for path, want := range map[string]string{a: "alpha", b: "beta"} {
		got, err := os.ReadFile(path)
		if err != nil || string(got) != want {
			t.Errorf("%s: expected %q, got %q (%v)", path, want, got, err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("Expected only the two artifacts, got %d entries", len(entries))
	}
}

func TestWriteAllFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "broken.gif")
	boom := errors.New("boom")

	err := WriteAll(context.Background(), Job{Path: target, Write: func(_ context.Context, w io.WriteSeeker) error {
		io.WriteString(w, "partial")
		return boom
	}})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped write error, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected no files after failure, got %d", len(entries))
	}
}

func TestWriteFileIsWorldReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boot.gif")
	err := WriteFile(context.Background(), path, func(_ context.Context, w io.WriteSeeker) error {
		_, err := io.WriteString(w, "GIF89a")
		return err
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("Expected mode 0644, got %o", perm)
	}
}
