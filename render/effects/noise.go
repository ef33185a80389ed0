package effects

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/phosphor/render"
)

// NoiseField is a low-resolution gaussian noise grid upsampled with nearest neighbour
// Monochrome fields hold one value per cell, color fields hold three
type NoiseField struct {
	Cols, Rows int
	Mode       render.NoiseMode
	values     []float32
}

// NoiseGridSize returns the reduced grid size for a full-res dimension and particle scale
func NoiseGridSize(full int, scale float64) int {
	if scale <= 0 {
		return max(1, full)
	}
	return max(1, int(math.Round(float64(full)/scale)))
}

// NewNoiseField allocates a field for the given full-res size
func NewNoiseField(width, height int, scale float64, mode render.NoiseMode) *NoiseField {
	cols := NoiseGridSize(width, scale)
	rows := NoiseGridSize(height, scale)
	return &NoiseField{
		Cols:   cols,
		Rows:   rows,
		Mode:   mode,
		values: make([]float32, cols*rows*noiseChannels(mode)),
	}
}

// noiseChannels returns stored values per cell for a mode
func noiseChannels(mode render.NoiseMode) int {
	if mode == render.NoiseColor {
		return 3
	}
	return 1
}

// Resample draws fresh N(0, stddev) values for every cell
func (f *NoiseField) Resample(rng *rand.Rand, stddev float64) {
	if stddev == 0 {
		clear(f.values)
		return
	}
	for i := range f.values {
		f.values[i] = float32(rng.NormFloat64() * stddev)
	}
}

// Cell returns the per-channel noise of a grid cell
func (f *NoiseField) Cell(col, row int) (r, g, b float32) {
	if f.Mode == render.NoiseColor {
		i := (row*f.Cols + col) * 3
		return f.values[i], f.values[i+1], f.values[i+2]
	}
	v := f.values[row*f.Cols+col]
	return v, v, v
}

// At returns the upsampled noise for a full-res pixel
func (f *NoiseField) At(x, y, width, height int) (r, g, b float32) {
	return f.Cell(f.colFor(x, width), f.rowFor(y, height))
}

// colFor maps a full-res column to its grid column (nearest neighbour)
func (f *NoiseField) colFor(x, width int) int {
	return min(f.Cols-1, x*f.Cols/width)
}

// rowFor maps a full-res row to its grid row (nearest neighbour)
func (f *NoiseField) rowFor(y, height int) int {
	return min(f.Rows-1, y*f.Rows/height)
}
