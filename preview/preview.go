// Package preview shows frames live in the terminal while the sequence renders
package preview

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/phosphor/parameter"
	"github.com/lixenwraith/phosphor/parameter/visual"
	"github.com/lixenwraith/phosphor/render"
	"github.com/lixenwraith/phosphor/sequence"
)

// Preview renders frames as half-block cells: one cell is two vertical pixels
// ESC, q and Ctrl-C cancel the run through the supplied cancel func
type Preview struct {
	screen tcell.Screen
	cancel context.CancelFunc
	pace   bool

	scaled *image.RGBA
	last   time.Time

	shown     *render.Frame
	shownSize image.Point

	quit      chan struct{}
	stopped   chan struct{}
	events    sync.WaitGroup
	closeOnce sync.Once
	stopOnce  sync.Once
}

// Open initializes the real terminal screen
func Open(cancel context.CancelFunc, pace bool) (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen, cancel, pace), nil
}

// New wraps an initialized screen and starts the event loop
func New(screen tcell.Screen, cancel context.CancelFunc, pace bool) *Preview {
	p := &Preview{
		screen:  screen,
		cancel:  cancel,
		pace:    pace,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	screen.HideCursor()
	screen.Clear()

	ch := make(chan tcell.Event, parameter.PreviewEventBuffer)
	go screen.ChannelEvents(ch, p.quit)

	p.events.Add(1)
	go p.handleEvents(ch)
	return p
}

func (p *Preview) handleEvents(ch <-chan tcell.Event) {
	defer p.events.Done()
	for ev := range ch {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if isQuitKey(ev) {
				log.Printf("Preview cancelled by key")
				p.interrupt()
			}
		case *tcell.EventResize:
			p.screen.Sync()
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// interrupt cancels the run and wakes a pacing sleep
func (p *Preview) interrupt() {
	p.stopOnce.Do(func() {
		close(p.stopped)
		p.cancel()
	})
}

// OnFrame implements sequence.Observer
func (p *Preview) OnFrame(ev sequence.FrameEvent) {
	// Held frames repeat the previous image; skip the resample and flush
	size := image.Pt(p.screen.Size())
	if p.shown == nil || size != p.shownSize || !ev.Frame.Equal(p.shown) {
		p.Draw(ev.Frame)
		p.screen.Show()
		p.shown, p.shownSize = ev.Frame, size
	}

	if p.pace {
		p.wait(ev.Delay)
	}
}

// wait sleeps out the remainder of the frame delay
func (p *Preview) wait(delay time.Duration) {
	now := time.Now()
	if !p.last.IsZero() {
		if remaining := delay - now.Sub(p.last); remaining >= parameter.PreviewMinFrameTime {
			timer := time.NewTimer(remaining)
			select {
			case <-timer.C:
			case <-p.stopped:
				timer.Stop()
			}
		}
	}
	p.last = time.Now()
}

// Draw fits the frame into the terminal preserving aspect ratio, letterboxed on black
func (p *Preview) Draw(frame *render.Frame) {
	cols, rows := p.screen.Size()
	black := tcell.StyleDefault.Background(tcell.ColorBlack)
	p.screen.Fill(' ', black)
	if cols <= 0 || rows <= 0 {
		return
	}

	src := fitRect(frame.Width(), frame.Height(), cols, rows*2)
	if src.Empty() {
		return
	}
	img := p.scale(frame, src.Dx(), src.Dy())

	offX := (cols - src.Dx()) / 2
	offY := (rows*2 - src.Dy()) / 2 / 2

	for cy := 0; cy*2 < src.Dy(); cy++ {
		for x := 0; x < src.Dx(); x++ {
			top := pixel(img, x, cy*2)
			bottom := render.RGBBlack
			if cy*2+1 < src.Dy() {
				bottom = pixel(img, x, cy*2+1)
			}
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			p.screen.SetContent(offX+x, offY+cy, visual.HalfBlockUpper, nil, style)
		}
	}
}

// scale resamples the frame to w x h pixels, reusing the scratch image
func (p *Preview) scale(frame *render.Frame, w, h int) *image.RGBA {
	r := image.Rect(0, 0, w, h)
	if p.scaled == nil || p.scaled.Rect != r {
		p.scaled = image.NewRGBA(r)
	}
	if w == frame.Width() && h == frame.Height() {
		draw.Draw(p.scaled, r, frame, image.Point{}, draw.Src)
		return p.scaled
	}
	draw.ApproxBiLinear.Scale(p.scaled, r, frame, frame.Bounds(), draw.Src, nil)
	return p.scaled
}

// fitRect returns the largest w x h box with the source aspect that fits the target
func fitRect(srcW, srcH, maxW, maxH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return image.Rectangle{}
	}
	w, h := maxW, srcH*maxW/srcW
	if h > maxH {
		w, h = srcW*maxH/srcH, maxH
	}
	return image.Rect(0, 0, max(1, w), max(1, h))
}

func pixel(img *image.RGBA, x, y int) render.RGB {
	i := img.PixOffset(x, y)
	return render.RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

func tcellColor(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Close stops the event loop and restores the terminal
func (p *Preview) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		p.events.Wait()
		p.screen.Fini()
	})
}
