package effects

import (
	"math/rand/v2"
	"testing"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/phosphor/render"
)

func testParams() *render.EffectParameters {
	return &render.EffectParameters{
		Width:       120,
		Height:      80,
		NoiseScale:  2,
		NoiseMode:   render.NoiseMonochrome,
		Face:        basicfont.Face7x13,
		GlowColor:   glowGreen,
		BlurRadius:  2,
		LineSpacing: 16,
		TopOffset:   10,
		CursorRune:  '_',
		FrameTime:   100 * time.Millisecond,
	}
}

func litRows(c *render.Canvas) []bool {
	rows := make([]bool, c.Height())
	for y := range rows {
		for x := 0; x < c.Width(); x++ {
			if c.RGBAt(x, y) != render.RGBBlack {
				rows[y] = true
				break
			}
		}
	}
	return rows
}

func TestTextStageSharedOrigin(t *testing.T) {
	p := testParams()
	s := NewTextStage(p, "AB\nCCCCCCCC")
	// "AB" is 13px wide in the 7x13 face
	if got := s.OriginX(); got != 53 {
		t.Errorf("Expected origin 53, got %d", got)
	}

	wide := NewTextStage(p, "THIS LINE IS FAR TOO WIDE FOR THE CANVAS")
	if wide.OriginX() >= 0 {
		t.Errorf("Expected negative origin for overflowing first line, got %d", wide.OriginX())
	}
}

func TestTextStageLineLayout(t *testing.T) {
	p := testParams()
	s := NewTextStage(p, "A\n\nB")
	c := render.NewCanvas(p.Width, p.Height)
	s.Apply(render.StageContext{State: render.TextState{Text: "A\n\nB"}, Params: p}, c)

	rows := litRows(c)
	band := func(line int) bool {
		top := p.TopOffset + line*p.LineSpacing
		for y := top; y < top+13; y++ {
			if rows[y] {
				return true
			}
		}
		return false
	}
	if !band(0) || !band(2) {
		t.Error("Expected glyphs on lines 0 and 2")
	}
	if band(1) {
		t.Error("Expected empty line 1 to stay blank")
	}
	for y := 0; y < p.TopOffset; y++ {
		if rows[y] {
			t.Errorf("Expected nothing above top offset, row %d lit", y)
		}
	}
}

func TestTextStageCursor(t *testing.T) {
	p := testParams()
	s := NewTextStage(p, "OK")

	render1 := func(visible bool) *render.Frame {
		c := render.NewCanvas(p.Width, p.Height)
		s.Apply(render.StageContext{State: render.TextState{Text: "OK", CursorVisible: visible}, Params: p}, c)
		return c.Freeze()
	}
	if render1(true).Equal(render1(false)) {
		t.Error("Expected cursor to change the frame")
	}

	// Empty text with cursor still draws the cursor
	c := render.NewCanvas(p.Width, p.Height)
	s.Apply(render.StageContext{State: render.TextState{CursorVisible: true}, Params: p}, c)
	if len(litPixels(c)) == 0 {
		t.Error("Expected cursor glyph on empty text")
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestFadeStage(t *testing.T) {
	p := testParams()
	off := NewFadeStage(p)
	if off.IsVisible() {
		t.Error("Expected fade disabled without power-on duration")
	}

	p.PowerOn = time.Second
	s := NewFadeStage(p)
	if !s.IsVisible() {
		t.Fatal("Expected fade enabled")
	}
	if l := s.Level(0, p); l != 0 {
		t.Errorf("Expected black first frame, got level %v", l)
	}
	if l := s.Level(5, p); l < 0.74 || l > 0.76 {
		t.Errorf("Expected out-quad level 0.75 at half time, got %v", l)
	}
	if l := s.Level(20, p); l != 1 {
		t.Errorf("Expected full level after duration, got %v", l)
	}

	prev := -1.0
	for i := 0; i <= 10; i++ {
		l := s.Level(i, p)
		if l < prev {
			t.Errorf("Expected monotonic ramp, frame %d dropped to %v", i, l)
		}
		prev = l
	}

	c := greyCanvas(4, 4, 200)
	s.Apply(render.StageContext{Index: 0, Params: p}, c)
	if got := c.RGBAt(1, 1); got != render.RGBBlack {
		t.Errorf("Expected black at frame 0, got %v", got)
	}
}

func TestStandardBuilder(t *testing.T) {
	p := testParams()
	p.Distortion = 0.1
	p.ScanlineIntensity = 0.3
	p.NoiseIntensity = 0.05

	build := func(seed uint64) *render.Frame {
		b, err := NewStandardBuilder(p, "HELLO", rand.New(rand.NewPCG(seed, 1)))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if b.StageCount() != 4 {
			t.Errorf("Expected 4 stages, got %d", b.StageCount())
		}
		return b.Build(0, render.TextState{Text: "HEL", CursorVisible: true})
	}

	a := build(3)
	if a.Width() != p.Width || a.Height() != p.Height {
		t.Errorf("Expected %dx%d frame, got %dx%d", p.Width, p.Height, a.Width(), a.Height())
	}
	if !a.Equal(build(3)) {
		t.Error("Expected identical frames for identical seeds")
	}
	if a.Equal(build(4)) {
		t.Error("Expected different noise for different seeds")
	}

	p.NoiseMode = render.NoiseMode(42)
	if _, err := NewStandardBuilder(p, "X", rand.New(rand.NewPCG(1, 1))); err == nil {
		t.Error("Expected unknown noise mode to fail before any frame")
	}
}
