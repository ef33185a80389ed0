// Package export encodes rendered sequences and writes artifacts to disk
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"runtime"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/phosphor/render"
)

// Sentinel errors
var (
	ErrNoFrames = errors.New("no frames to encode")
)

// DelayCentiseconds converts a frame delay to GIF units, at least 1
func DelayCentiseconds(d time.Duration) int {
	return max(1, int(math.Round(d.Seconds()*100)))
}

// Quantize maps every frame onto pal with Floyd-Steinberg dithering
// Frames are independent so they are quantized concurrently
func Quantize(ctx context.Context, frames []*render.Frame, pal color.Palette) ([]*image.Paletted, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	out := make([]*image.Paletted, len(frames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := image.NewPaletted(f.Bounds(), pal)
			draw.FloydSteinberg.Draw(p, p.Rect, f, image.Point{})
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeGIF writes frames as an infinitely looping GIF with a uniform delay
func EncodeGIF(ctx context.Context, w io.Writer, frames []*render.Frame, delay time.Duration, pal color.Palette) error {
	images, err := Quantize(ctx, frames, pal)
	if err != nil {
		return err
	}

	cs := DelayCentiseconds(delay)
	anim := &gif.GIF{
		Image:     images,
		Delay:     make([]int, len(images)),
		LoopCount: 0,
	}
	for i := range anim.Delay {
		anim.Delay[i] = cs
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("failed to encode gif: %w", err)
	}
	return nil
}
