package elemental

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// Wind is the per-cell wind vector. DX and DY are unit steps in -1..1.
type Wind struct {
	DX, DY   int8
	Strength uint8
}

// Calm reports whether the vector moves nothing.
func (w Wind) Calm() bool { return w.Strength == 0 || (w.DX == 0 && w.DY == 0) }

// WindNoise configures a noise-driven wind field.
type WindNoise struct {
	Seed int64
	// Strength is the mean wind strength.
	Strength uint8
	// Variance is how far strength swings around the mean.
	Variance uint8
	// Scale converts cell coordinates to noise space; small values give
	// broad, coherent currents.
	Scale float64
}

// DefaultWindNoise returns a moderate breeze.
func DefaultWindNoise(seed int64) WindNoise {
	return WindNoise{Seed: seed, Strength: 96, Variance: 96, Scale: 0.04}
}

// WindGrid holds one wind vector per cell. It has the same shape as the
// cell grid and is read by the wind pass only.
type WindGrid struct {
	w, h  int
	cells []Wind

	noise *perlin.Perlin
	cfg   WindNoise
}

// NewWindGrid returns a still wind field.
func NewWindGrid(w, h int) (*WindGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: wind %dx%d", ErrInvalidSize, w, h)
	}
	return &WindGrid{w: w, h: h, cells: make([]Wind, w*h)}, nil
}

// NewNoiseWind returns a wind field driven by Perlin noise. The engine
// regenerates it on its slow wind cadence.
func NewNoiseWind(w, h int, cfg WindNoise) (*WindGrid, error) {
	wg, err := NewWindGrid(w, h)
	if err != nil {
		return nil, err
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultWindNoise(cfg.Seed).Scale
	}
	wg.cfg = cfg
	wg.noise = perlin.NewPerlin(2, 2, 3, cfg.Seed)
	wg.Regenerate(0)
	return wg, nil
}

// Width returns the number of columns.
func (wg *WindGrid) Width() int { return wg.w }

// Height returns the number of rows.
func (wg *WindGrid) Height() int { return wg.h }

// At returns the wind at (x, y), or still air outside the field.
func (wg *WindGrid) At(x, y int) Wind {
	if x < 0 || y < 0 || x >= wg.w || y >= wg.h {
		return Wind{}
	}
	return wg.cells[y*wg.w+x]
}

// Set overrides the wind at (x, y).
func (wg *WindGrid) Set(x, y int, v Wind) error {
	if x < 0 || y < 0 || x >= wg.w || y >= wg.h {
		return fmt.Errorf("%w: wind (%d,%d)", ErrOutOfBounds, x, y)
	}
	wg.cells[y*wg.w+x] = clampWind(v)
	return nil
}

// Fill sets the same wind everywhere.
func (wg *WindGrid) Fill(v Wind) {
	v = clampWind(v)
	for i := range wg.cells {
		wg.cells[i] = v
	}
}

func clampWind(v Wind) Wind {
	v.DX = max(-1, min(1, v.DX))
	v.DY = max(-1, min(1, v.DY))
	return v
}

// Regenerate recomputes a noise-driven field for the given tick. It reports
// false for fields without a noise source.
func (wg *WindGrid) Regenerate(tick uint64) bool {
	if wg.noise == nil {
		return false
	}
	z := float64(tick) / 256
	s := wg.cfg.Scale
	for y := 0; y < wg.h; y++ {
		for x := 0; x < wg.w; x++ {
			fx, fy := float64(x)*s, float64(y)*s
			angle := (wg.noise.Noise3D(fx, fy, z) + 1) * math.Pi
			swing := wg.noise.Noise3D(fx+97.3, fy+41.9, z)
			strength := float64(wg.cfg.Strength) + swing*float64(wg.cfg.Variance)
			wg.cells[y*wg.w+x] = Wind{
				DX:       int8(math.Round(math.Cos(angle))),
				DY:       int8(math.Round(math.Sin(angle))),
				Strength: clampU8(int(math.Round(strength))),
			}
		}
	}
	return true
}

// Prevailing returns the sign of the strength-weighted mean direction.
func (wg *WindGrid) Prevailing() (int, int) {
	var sx, sy int
	for _, v := range wg.cells {
		sx += int(v.DX) * int(v.Strength)
		sy += int(v.DY) * int(v.Strength)
	}
	return sign(sx), sign(sy)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// advect runs one wind pass over buf in place. Cells are visited against the
// prevailing direction and moved marks destinations already filled this pass,
// so nothing travels more than one cell. It returns the number of moves.
func (t Tuning) advect(buf []Cell, w, h int, wind *WindGrid, moved []bool) int {
	clear(moved)
	px, py := wind.Prevailing()
	x0, x1, dx := 0, w, 1
	if px > 0 {
		x0, x1, dx = w-1, -1, -1
	}
	y0, y1, dy := 0, h, 1
	if py > 0 {
		y0, y1, dy = h-1, -1, -1
	}

	moves := 0
	for y := y0; y != y1; y += dy {
		for x := x0; x != x1; x += dx {
			i := y*w + x
			if moved[i] {
				continue
			}
			v := wind.cells[i]
			if v.Calm() || v.Strength < t.WindMoveAbove {
				continue
			}
			src := &buf[i]
			gust := v.Strength > t.GustAbove
			if gust {
				src.Pressure = subSat(src.Pressure, t.GustBleed)
			}

			tx, ty := x+int(v.DX), y+int(v.DY)
			if tx < 0 || ty < 0 || tx >= w || ty >= h {
				if gust && src.Gas == GasSmoke {
					src.Gas = GasNone
				}
				continue
			}
			j := ty*w + tx
			dst := &buf[j]

			if carried := uint8(int(src.Heat) * int(v.Strength) / 1024); carried > 0 {
				src.Heat -= carried
				dst.Heat = addSat(dst.Heat, carried)
			}

			switch {
			case (src.Gas == GasSmoke || src.Gas == GasSteam) && dst.Gas == GasNone && !moved[j]:
				dst.Gas = src.Gas
				half := src.Pressure / 2
				dst.Pressure = addSat(dst.Pressure, half)
				src.Pressure -= half
				if src.Gas == GasSteam {
					dst.Heat = max(dst.Heat, src.Heat)
					src.Heat /= 2
				}
				src.Gas = GasNone
				moved[j] = true
				moves++
			case src.Gas == GasSmoke && gust:
				src.Gas = GasNone
			}

			if src.Solid == SolidAsh && v.Strength >= t.AshLiftAbove &&
				dst.Solid == SolidNone && dst.Liquid == LiquidNone && !moved[j] {
				dst.Solid = SolidAsh
				dst.Calm = 0
				src.Solid = SolidNone
				moved[j] = true
				moves++
			}
		}
	}
	return moves
}
