package elements

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"elemental-ca/internal/core"
	"elemental-ca/internal/vibe"
	pcore "elemental-ca/pkg/core"
	"elemental-ca/pkg/elemental"
)

// Stimulus strengths used by the pointer and cursor tools.
const (
	torchHeat      = 64
	blastIntensity = 220
	blastRadius    = 4
	douseRadius    = 2
)

// World hosts an elemental engine as a core.Sim: it owns the grid and wind
// field, generates terrain and keeps a palette-indexed display buffer.
// Step, Reset, the stimuli and the snapshot readers serialise on a mutex.
// Grid, Wind and Engine hand out live state and must be used from the
// goroutine that calls Step.
type World struct {
	mu sync.Mutex

	cfg    Config
	w, h   int
	grid   *elemental.Grid
	wind   *elemental.WindGrid
	engine *elemental.Engine

	display *core.ByteGrid
	heat    []float32
	wet     []float32

	rng      *pcore.RNG
	log      *slog.Logger
	observer elemental.Observer
	rejected int
}

// Option customises a World.
type Option func(*World)

// WithLogger routes engine and host logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithObserver forwards engine telemetry to o.
func WithObserver(o elemental.Observer) Option {
	return func(w *World) { w.observer = o }
}

// New returns an elements world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns an elements world configured from cfg. Invalid
// dimensions are clamped to one cell and an invalid rule set falls back to
// the defaults. The world is empty until Reset.
func NewWithConfig(cfg Config, opts ...Option) *World {
	cfg.Width = max(cfg.Width, 1)
	cfg.Height = max(cfg.Height, 1)
	w := &World{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		display: core.NewByteGrid(cfg.Width, cfg.Height),
		heat:    make([]float32, cfg.Width*cfg.Height),
		wet:     make([]float32, cfg.Width*cfg.Height),
		rng:     pcore.NewRNG(cfg.Seed),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := cfg.Tuning.Validate(); err != nil {
		w.log.Warn("invalid tuning, using defaults", "error", err)
		w.cfg.Tuning = elemental.DefaultTuning()
	}
	w.grid, _ = elemental.NewGrid(w.w, w.h)
	w.wind, _ = elemental.NewWindGrid(w.w, w.h)
	w.engine = w.newEngine()
	return w
}

func (w *World) newEngine() *elemental.Engine {
	e, err := elemental.NewEngine(elemental.Options{
		Tuning:   w.cfg.Tuning,
		Workers:  w.cfg.Workers,
		Strict:   w.cfg.Strict,
		Logger:   w.log,
		Observer: w.observer,
	})
	if err != nil {
		// Tuning was validated in NewWithConfig and by SetIntParameter.
		panic(fmt.Sprintf("elements: engine: %v", err))
	}
	return e
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "elements" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells returns a copy of the current display buffer.
func (w *World) Cells() []uint8 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.display.Cells())
}

// Config returns the active configuration.
func (w *World) Config() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// Grid exposes the live cell grid.
func (w *World) Grid() *elemental.Grid { return w.grid }

// Wind exposes the wind field.
func (w *World) Wind() *elemental.WindGrid { return w.wind }

// Engine exposes the rule engine.
func (w *World) Engine() *elemental.Engine { return w.engine }

// Rejected returns how many ticks were refused since the last reset.
func (w *World) Rejected() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rejected
}

// Reset regenerates the terrain and wind field using deterministic
// randomness. A zero seed reuses the configured seed.
func (w *World) Reset(seed int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = pcore.NewRNG(effective)
	w.engine = w.newEngine()
	w.rejected = 0

	p := w.cfg.Params
	wind, err := elemental.NewNoiseWind(w.w, w.h, elemental.WindNoise{
		Seed:     effective,
		Strength: uint8(min(max(p.WindStrength, 0), 255)),
		Variance: uint8(min(max(p.WindVariance, 0), 255)),
		Scale:    p.WindNoiseScale,
	})
	if err == nil {
		w.wind = wind
	}

	grid, _ := elemental.NewGrid(w.w, w.h)
	w.grid = grid
	w.display.Clear()
	w.generate()
	w.rebuildDisplay()
}

// Step advances the engine by one tick. A rejected tick leaves the previous
// state visible and is reported to the caller.
func (w *World) Step() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.engine.AdvanceTick(w.grid, w.wind); err != nil {
		w.rejected++
		w.log.Warn("tick rejected", "tick", w.engine.Tick()+1, "error", err)
		return err
	}
	w.rebuildDisplay()
	return nil
}

// CellAt returns the visible cell at (x, y).
func (w *World) CellAt(x, y int) (elemental.Cell, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.grid.Get(x, y)
}

// DescribeCell renders a one-line description of the cell at (x, y).
func (w *World) DescribeCell(x, y int) string {
	c, err := w.CellAt(x, y)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("(%d,%d) %s", x, y, vibe.Line(c))
}

// Torch warms a cell gradually; it ignites only once its flash point is reached.
func (w *World) Torch(x, y int) error {
	return w.stimulate(func() error {
		return w.engine.InjectHeat(w.grid, x, y, torchHeat, false)
	})
}

// Fireball ignites a cell outright.
func (w *World) Fireball(x, y int) error {
	return w.stimulate(func() error {
		return w.engine.InjectHeat(w.grid, x, y, 255, true)
	})
}

// Blast detonates an explosion centred on (x, y).
func (w *World) Blast(x, y int) error {
	return w.stimulate(func() error {
		_, err := w.engine.TriggerExplosion(w.grid, elemental.Point{X: x, Y: y}, blastIntensity, blastRadius)
		return err
	})
}

// Douse pours water on a small disc around (x, y). Cells whose liquid layer
// is taken, and fires, are soaked instead.
func (w *World) Douse(x, y int) error {
	return w.stimulate(func() error {
		if !w.grid.InBounds(x, y) {
			_, err := w.grid.Get(x, y)
			return err
		}
		r2 := douseRadius * douseRadius
		for dy := -douseRadius; dy <= douseRadius; dy++ {
			for dx := -douseRadius; dx <= douseRadius; dx++ {
				if dx*dx+dy*dy > r2 || !w.grid.InBounds(x+dx, y+dy) {
					continue
				}
				c := w.grid.At(x+dx, y+dy)
				if c.Liquid == elemental.LiquidNone && !c.IsBurning() {
					c.Liquid = elemental.LiquidWater
				}
				c.Wet = 255
				c.Calm = 0
				if c.IsBurning() {
					c.Gas = elemental.GasSteam
					c.Fuel = 0
				}
				if err := w.grid.Put(x+dx, y+dy, c); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (w *World) stimulate(fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	w.rebuildDisplay()
	return nil
}

// HeatMask returns a copy of heat normalised to 0..1 for overlays.
func (w *World) HeatMask() []float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.heat)
}

// WetMask returns a copy of moisture normalised to 0..1 for overlays.
func (w *World) WetMask() []float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.wet)
}

// WindVectorAt returns the wind at a cell position in cells per pass,
// scaled by strength.
func (w *World) WindVectorAt(x, y float64) (float64, float64) {
	w.mu.Lock()
	v := w.wind.At(int(x), int(y))
	w.mu.Unlock()
	s := float64(v.Strength) / 255
	return float64(v.DX) * s, float64(v.DY) * s
}

func (w *World) generate() {
	r := w.rng
	p := w.cfg.Params
	earth := elemental.Cell{Solid: elemental.SolidEarth}
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			c := earth
			if r.Chance(p.StoneChance) {
				c.Solid = elemental.SolidStone
			}
			w.grid.Put(x, y, c)
		}
	}

	w.scatterDiscs(r, p.GrassPatchCount, p.GrassPatchRadiusMin, p.GrassPatchRadiusMax, p.GrassPatchDensity,
		func(c elemental.Cell) elemental.Cell {
			if c.Solid == elemental.SolidEarth {
				c.Solid = elemental.SolidGrass
			}
			return c
		})
	w.scatterDiscs(r, p.WoodGroveCount, 1, p.WoodGroveRadius, 0.6,
		func(c elemental.Cell) elemental.Cell {
			if c.Solid == elemental.SolidEarth || c.Solid == elemental.SolidGrass {
				c.Solid = elemental.SolidWood
			}
			return c
		})
	w.scatterDiscs(r, p.PondCount, p.PondRadiusMin, p.PondRadiusMax, 1,
		func(c elemental.Cell) elemental.Cell {
			if c.Solid != elemental.SolidStone {
				c.Solid = elemental.SolidEarth
				c.Liquid = elemental.LiquidWater
				c.Wet = 255
			}
			return c
		})
	w.scatterDiscs(r, p.OilSlickCount, 1, p.OilSlickRadius, 0.9,
		func(c elemental.Cell) elemental.Cell {
			if c.Liquid == elemental.LiquidNone {
				c.Liquid = elemental.LiquidOil
			}
			return c
		})
}

// scatterDiscs applies paint to count random discs of cells.
func (w *World) scatterDiscs(r *pcore.RNG, count, minR, maxR int, density float64, paint func(elemental.Cell) elemental.Cell) {
	if count <= 0 {
		return
	}
	minR = max(minR, 0)
	maxR = max(maxR, minR)
	if density <= 0 {
		density = 1
	}
	for i := 0; i < count; i++ {
		cx, cy := r.IntN(w.w), r.IntN(w.h)
		radius := r.Between(minR, maxR)
		r2 := radius * radius
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				x, y := cx+dx, cy+dy
				if dx*dx+dy*dy > r2 || !w.grid.InBounds(x, y) {
					continue
				}
				if !r.Chance(density) {
					continue
				}
				w.grid.Put(x, y, paint(w.grid.At(x, y)))
			}
		}
	}
}

func init() {
	core.Register("elements", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
