package elemental

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrInvariant is returned when a tick produced a state that breaks the
// engine's invariants. The tick is discarded and the grid left unswapped.
var ErrInvariant = errors.New("elemental: invariant violated")

// TickStats describes a completed tick.
type TickStats struct {
	Tick     uint64
	Duration time.Duration

	Burning     int
	Steam       int
	Waterlogged int
	Reclaimed   int

	WindPass  bool
	WindMoves int
	SlowPass  bool
	Blasts    int
}

// Observer receives engine telemetry. Calls happen synchronously at the end
// of AdvanceTick and stimulus calls.
type Observer interface {
	TickCompleted(TickStats)
	TickRejected(tick uint64, err error)
	BlastApplied(BlastReport)
}

type nopObserver struct{}

func (nopObserver) TickCompleted(TickStats)    {}
func (nopObserver) TickRejected(uint64, error) {}
func (nopObserver) BlastApplied(BlastReport)   {}

// Options configures an Engine.
type Options struct {
	// Tuning replaces DefaultTuning when non-zero.
	Tuning Tuning
	// Workers is the number of row bands processed in parallel.
	Workers int
	// Strict rejects ticks that violate invariants instead of repairing them.
	Strict   bool
	Logger   *slog.Logger
	Observer Observer
}

// Engine owns the rules and the tick counter. It holds no cells: the grid
// is passed to every call. An Engine is not safe for concurrent use.
type Engine struct {
	tuning  Tuning
	workers int
	strict  bool
	log     *slog.Logger
	obs     Observer

	tick    uint64
	pending []Blast
	visited []bool
	moved   []bool
}

// NewEngine validates opts and returns an engine at tick zero.
func NewEngine(opts Options) (*Engine, error) {
	t := opts.Tuning
	if t == (Tuning{}) {
		t = DefaultTuning()
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		tuning:  t,
		workers: max(1, opts.Workers),
		strict:  opts.Strict,
		log:     opts.Logger,
		obs:     opts.Observer,
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	if e.obs == nil {
		e.obs = nopObserver{}
	}
	return e, nil
}

// Tick returns the number of completed ticks.
func (e *Engine) Tick() uint64 { return e.tick }

// Tuning returns the active rule set.
func (e *Engine) Tuning() Tuning { return e.tuning }

// SetTuning swaps the rule set after validating it.
func (e *Engine) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.tuning = t
	return nil
}

// Pending returns the number of queued blasts.
func (e *Engine) Pending() int { return len(e.pending) }

// Enqueue schedules a blast for the displacement pass of the next tick.
func (e *Engine) Enqueue(g *Grid, b Blast) error {
	if err := g.checkBlast(b); err != nil {
		return err
	}
	e.pending = append(e.pending, b)
	return nil
}

func (e *Engine) scratch(n int) {
	if len(e.visited) != n {
		e.visited = make([]bool, n)
		e.moved = make([]bool, n)
	}
}

// AdvanceTick computes the next state of g. The per-cell pipeline
// (reaction, transition, decay) reads the front buffer and writes the back
// buffer; the wind pass and queued explosions then run over the back buffer
// in that order. The buffers are swapped only when every stage succeeds.
func (e *Engine) AdvanceTick(g *Grid, wind *WindGrid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidSize)
	}
	if wind != nil && (wind.w != g.w || wind.h != g.h) {
		return fmt.Errorf("%w: grid %dx%d, wind %dx%d", ErrShapeMismatch, g.w, g.h, wind.w, wind.h)
	}
	start := time.Now()
	t := e.tuning
	next := e.tick + 1
	e.scratch(len(g.front))

	queued := len(e.pending)
	for _, b := range t.detectBlasts(g.front, g.w) {
		e.log.Debug("blast detected", "x", b.Origin.X, "y", b.Origin.Y, "intensity", b.Intensity)
		e.pending = append(e.pending, b)
	}

	stats := TickStats{Tick: next, SlowPass: next%t.ReclaimCadence == 0}
	if err := e.pipeline(g, stats.SlowPass, &stats); err != nil {
		return e.reject(next, queued, err)
	}

	if wind != nil && next%t.WindRegenCadence == 0 && wind.Regenerate(next) {
		e.log.Debug("wind regenerated", "tick", next)
	}
	if wind != nil && next%t.WindCadence == 0 {
		stats.WindPass = true
		stats.WindMoves = t.advect(g.back, g.w, g.h, wind, e.moved)
	}

	reports := make([]BlastReport, 0, len(e.pending))
	for _, b := range e.pending {
		reports = append(reports, t.displace(g.back, g.w, g.h, b, e.visited))
	}
	stats.Blasts = len(reports)

	for i := range reports {
		for _, d := range reports[i].Deposits {
			if err := e.check(g.back, d.Y*g.w+d.X); err != nil {
				return e.reject(next, queued, err)
			}
		}
	}

	g.Swap()
	e.tick = next
	e.pending = e.pending[:0]
	stats.Duration = time.Since(start)
	for _, r := range reports {
		e.obs.BlastApplied(r)
	}
	e.obs.TickCompleted(stats)
	return nil
}

func (e *Engine) reject(tick uint64, queued int, err error) error {
	e.pending = e.pending[:queued]
	e.obs.TickRejected(tick, err)
	return err
}

// pipeline runs reaction, transition and decay for every cell. Rows are
// split into bands that run in parallel; each band writes only its own back
// cells and reads only the front buffer.
func (e *Engine) pipeline(g *Grid, slow bool, stats *TickStats) error {
	bands := min(e.workers, g.h)
	if bands <= 1 {
		return e.band(g, 0, g.h, slow, stats)
	}
	partial := make([]TickStats, bands)
	var eg errgroup.Group
	rows := (g.h + bands - 1) / bands
	for b := 0; b < bands; b++ {
		y0, y1 := b*rows, min(g.h, (b+1)*rows)
		if y0 >= y1 {
			break
		}
		eg.Go(func() error {
			return e.band(g, y0, y1, slow, &partial[b])
		})
	}
	err := eg.Wait()
	for _, p := range partial {
		stats.Burning += p.Burning
		stats.Steam += p.Steam
		stats.Waterlogged += p.Waterlogged
		stats.Reclaimed += p.Reclaimed
	}
	return err
}

func (e *Engine) band(g *Grid, y0, y1 int, slow bool, stats *TickStats) error {
	t := e.tuning
	for y := y0; y < y1; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			front := g.front[i]
			c := t.React(front, NeighborsMoore(g, x, y))
			c = t.Transition(front, c)
			before := c.Solid
			c = t.ApplyFullDecayCycle(c, slow)
			g.back[i] = c
			if err := e.check(g.back, i); err != nil {
				return err
			}
			c = g.back[i]
			if c.IsBurning() {
				stats.Burning++
			}
			if c.Gas == GasSteam {
				stats.Steam++
			}
			if c.IsWaterlogged() {
				stats.Waterlogged++
			}
			if before != c.Solid {
				stats.Reclaimed++
			}
		}
	}
	return nil
}

// check enforces the cell invariants on buf[i]: known layer kinds and no
// fire in a waterlogged cell. Outside strict mode the cell is repaired.
func (e *Engine) check(buf []Cell, i int) error {
	c := buf[i]
	if c.Valid() && !(c.IsBurning() && c.IsWaterlogged()) {
		return nil
	}
	if e.strict {
		return fmt.Errorf("%w: cell %d holds %s/%s/%s wet=%d", ErrInvariant, i, c.Solid, c.Liquid, c.Gas, c.Wet)
	}
	if !c.Solid.Valid() {
		c.Solid = SolidNone
	}
	if !c.Liquid.Valid() {
		c.Liquid = LiquidNone
	}
	if !c.Gas.Valid() || c.IsBurning() {
		c.Gas = GasNone
		c.Fuel = 0
	}
	e.log.Debug("cell repaired", "index", i)
	buf[i] = c
	return nil
}

// InjectHeat adds heat to the visible cell at (x, y). A violent injection
// ignites the cell outright when it can ignite; a gradual one ignites it
// only once its flash point is reached.
func (e *Engine) InjectHeat(g *Grid, x, y int, amount uint8, violent bool) error {
	c, err := g.Get(x, y)
	if err != nil {
		return err
	}
	c.Heat = addSat(c.Heat, amount)
	c.Calm = 0
	if violent {
		c, _ = e.tuning.Ignite(c)
	} else {
		c = e.tuning.gradualIgnition(c, c)
	}
	return g.Put(x, y, c)
}

// TriggerExplosion applies a blast to the visible state immediately and
// returns what it touched.
func (e *Engine) TriggerExplosion(g *Grid, origin Point, intensity uint8, maxRadius int) (BlastReport, error) {
	b := Blast{Origin: origin, Intensity: intensity, Radius: maxRadius}
	if err := g.checkBlast(b); err != nil {
		return BlastReport{}, err
	}
	e.scratch(len(g.front))
	r := e.tuning.displace(g.front, g.w, g.h, b, e.visited)
	for _, d := range r.Deposits {
		i := d.Y*g.w + d.X
		g.back[i] = g.front[i]
	}
	e.obs.BlastApplied(r)
	return r, nil
}
