package elemental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	ticks    []TickStats
	rejected []error
	blasts   []BlastReport
}

func (r *recorder) TickCompleted(s TickStats) { r.ticks = append(r.ticks, s) }

func (r *recorder) TickRejected(_ uint64, err error) { r.rejected = append(r.rejected, err) }

func (r *recorder) BlastApplied(b BlastReport) { r.blasts = append(r.blasts, b) }

func mustGet(t *testing.T, g *Grid, x, y int) Cell {
	t.Helper()
	c, err := g.Get(x, y)
	require.NoError(t, err)
	return c
}

func mixedGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(16, 16)
	require.NoError(t, err)
	solids := []SolidKind{SolidEarth, SolidGrass, SolidWood, SolidStone, SolidNone}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := Cell{Solid: solids[(x*7+y*3)%len(solids)], Heat: uint8(x * y)}
			switch {
			case x == 3 && y > 2 && y < 12:
				c.Liquid = LiquidWater
				c.Wet = 255
			case (x+y)%11 == 0:
				c.Gas = GasFire
				c.Fuel = 30
				c.Heat = 240
			case x > 10 && y > 10:
				c.Liquid = LiquidOil
			}
			require.NoError(t, g.Put(x, y, c))
		}
	}
	return g
}

func TestAdvanceTickIndependentOfWorkers(t *testing.T) {
	serial, parallel := mixedGrid(t), mixedGrid(t)
	e1 := newTestEngine(t, Options{Workers: 1, Strict: true})
	e4 := newTestEngine(t, Options{Workers: 4, Strict: true})

	for i := 0; i < 40; i++ {
		require.NoError(t, e1.AdvanceTick(serial, nil))
		require.NoError(t, e4.AdvanceTick(parallel, nil))
	}
	assert.Equal(t, serial.Snapshot(), parallel.Snapshot())
	assert.Equal(t, uint64(40), e4.Tick())
}

func TestAdvanceTickReadsStartOfTickState(t *testing.T) {
	g := filledGrid(t, 3, 3, Cell{Solid: SolidGrass})
	require.NoError(t, g.Put(1, 1, Cell{Solid: SolidGrass, Gas: GasFire, Heat: 255, Fuel: 10}))
	e := newTestEngine(t, Options{})

	require.NoError(t, e.AdvanceTick(g, nil))
	// Every corner sees the same start-of-tick fire, whatever the scan order.
	for _, p := range []Point{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
		c := mustGet(t, g, p.X, p.Y)
		assert.Equal(t, uint8(18), c.Heat, "corner %v", p)
		assert.False(t, c.IsBurning())
	}
}

func TestFireNextToWaterBecomesSteam(t *testing.T) {
	g := filledGrid(t, 2, 1, Cell{})
	require.NoError(t, g.Put(0, 0, Cell{Solid: SolidGrass, Gas: GasFire, Heat: 255, Fuel: 10}))
	require.NoError(t, g.Put(1, 0, Cell{Liquid: LiquidWater, Wet: 255}))
	e := newTestEngine(t, Options{Strict: true})

	require.NoError(t, e.AdvanceTick(g, nil))
	fire := mustGet(t, g, 0, 0)
	assert.Equal(t, GasSteam, fire.Gas)
	assert.NotZero(t, fire.Heat)
	assert.Equal(t, LiquidWater, mustGet(t, g, 1, 0).Liquid)
}

func TestEvaporationThenCondensation(t *testing.T) {
	g := filledGrid(t, 1, 1, Cell{Liquid: LiquidWater, Wet: 255, Heat: 210})
	e := newTestEngine(t, Options{})

	require.NoError(t, e.AdvanceTick(g, nil))
	c := mustGet(t, g, 0, 0)
	assert.Equal(t, GasSteam, c.Gas)
	assert.Equal(t, LiquidNone, c.Liquid)

	require.NoError(t, e.AdvanceTick(g, nil))
	c = mustGet(t, g, 0, 0)
	assert.Equal(t, LiquidWater, c.Liquid, "cooled steam condenses")
	assert.Equal(t, GasNone, c.Gas)
}

func TestInjectHeat(t *testing.T) {
	e := newTestEngine(t, Options{})

	t.Run("gradual below flash point", func(t *testing.T) {
		g := filledGrid(t, 3, 3, Cell{Solid: SolidGrass})
		require.NoError(t, e.InjectHeat(g, 1, 1, 50, false))
		c := mustGet(t, g, 1, 1)
		assert.Equal(t, uint8(50), c.Heat)
		assert.False(t, c.IsBurning())
	})
	t.Run("gradual reaching flash point", func(t *testing.T) {
		g := filledGrid(t, 3, 3, Cell{Solid: SolidGrass})
		require.NoError(t, e.InjectHeat(g, 1, 1, 130, false))
		assert.True(t, mustGet(t, g, 1, 1).IsBurning())
	})
	t.Run("violent", func(t *testing.T) {
		g := filledGrid(t, 3, 3, Cell{Solid: SolidGrass})
		require.NoError(t, e.InjectHeat(g, 1, 1, 0, true))
		c := mustGet(t, g, 1, 1)
		assert.True(t, c.IsBurning())
		assert.Equal(t, uint8(255), c.Heat)
	})
	t.Run("waterlogged is immune", func(t *testing.T) {
		g := filledGrid(t, 3, 3, Cell{Solid: SolidGrass, Wet: 255})
		require.NoError(t, e.InjectHeat(g, 1, 1, 250, true))
		c := mustGet(t, g, 1, 1)
		assert.False(t, c.IsBurning())
		assert.Equal(t, uint8(250), c.Heat)
	})
	t.Run("out of bounds", func(t *testing.T) {
		g := filledGrid(t, 3, 3, Cell{})
		assert.ErrorIs(t, e.InjectHeat(g, 3, 0, 10, false), ErrOutOfBounds)
	})
}

func TestWaterloggedNeighbourNeverIgnites(t *testing.T) {
	g := filledGrid(t, 3, 1, Cell{})
	require.NoError(t, g.Put(0, 0, Cell{Solid: SolidGrass, Gas: GasFire, Heat: 255, Fuel: 40}))
	require.NoError(t, g.Put(1, 0, Cell{Solid: SolidGrass, Liquid: LiquidWater, Wet: 255}))
	e := newTestEngine(t, Options{Strict: true})

	for i := 0; i < 10; i++ {
		require.NoError(t, e.AdvanceTick(g, nil))
		assert.False(t, mustGet(t, g, 1, 0).IsBurning(), "tick %d", i)
	}
}

func TestStrictModeRejectsTick(t *testing.T) {
	g := filledGrid(t, 3, 3, Cell{Solid: SolidEarth})
	g.front[4].Solid = SolidKind(99)
	rec := &recorder{}
	e := newTestEngine(t, Options{Strict: true, Observer: rec})

	err := e.AdvanceTick(g, nil)
	require.ErrorIs(t, err, ErrInvariant)
	assert.Equal(t, uint64(0), e.Tick())
	assert.Equal(t, SolidKind(99), mustGet(t, g, 1, 1).Solid, "front left unswapped")
	assert.Len(t, rec.rejected, 1)
	assert.Empty(t, rec.ticks)

	lenient := newTestEngine(t, Options{})
	require.NoError(t, lenient.AdvanceTick(g, nil))
	assert.Equal(t, SolidNone, mustGet(t, g, 1, 1).Solid)
}

func TestAdvanceTickRejectsMismatchedWind(t *testing.T) {
	g := filledGrid(t, 3, 3, Cell{})
	w, err := NewWindGrid(2, 2)
	require.NoError(t, err)
	e := newTestEngine(t, Options{})
	assert.ErrorIs(t, e.AdvanceTick(g, w), ErrShapeMismatch)
	assert.Equal(t, uint64(0), e.Tick())
}

func TestCombustionPressureExplodes(t *testing.T) {
	g := filledGrid(t, 9, 9, Cell{Solid: SolidGrass})
	require.NoError(t, g.Put(4, 4, Cell{Solid: SolidGrass, Gas: GasFire, Heat: 255, Fuel: 50, Pressure: 240}))
	rec := &recorder{}
	e := newTestEngine(t, Options{Observer: rec})

	require.NoError(t, e.AdvanceTick(g, nil))
	require.Len(t, rec.ticks, 1)
	assert.Equal(t, 1, rec.ticks[0].Blasts)
	require.Len(t, rec.blasts, 1)
	assert.Equal(t, 81, rec.blasts[0].Cells())
	assert.Equal(t, uint8(0), mustGet(t, g, 4, 4).Pressure)
	assert.Equal(t, 0, e.Pending())
}

func TestEnqueuedBlastAppliesOnNextTick(t *testing.T) {
	g := filledGrid(t, 5, 5, Cell{Solid: SolidEarth})
	e := newTestEngine(t, Options{})
	require.NoError(t, e.Enqueue(g, Blast{Origin: Point{2, 2}, Intensity: 100, Radius: 1}))
	assert.Equal(t, GasNone, mustGet(t, g, 2, 2).Gas)

	require.NoError(t, e.AdvanceTick(g, nil))
	assert.Equal(t, GasSmoke, mustGet(t, g, 1, 1).Gas)
	corner := mustGet(t, g, 0, 0)
	assert.Equal(t, SolidEarth, corner.Solid)
	assert.Equal(t, GasNone, corner.Gas, "outside the blast radius")
}

func TestWindMovesLooseMatterOnly(t *testing.T) {
	g := filledGrid(t, 6, 1, Cell{})
	require.NoError(t, g.Put(0, 0, Cell{Solid: SolidStone}))
	require.NoError(t, g.Put(1, 0, Cell{Solid: SolidAsh}))
	require.NoError(t, g.Put(4, 0, Cell{Gas: GasSmoke, Pressure: 100}))
	w, err := NewWindGrid(6, 1)
	require.NoError(t, err)
	w.Fill(Wind{DX: 1, Strength: 150})

	tu := DefaultTuning()
	tu.WindCadence = 1
	e := newTestEngine(t, Options{Tuning: tu})
	require.NoError(t, e.AdvanceTick(g, w))

	assert.Equal(t, SolidStone, mustGet(t, g, 0, 0).Solid, "stone is anchored")
	assert.Equal(t, SolidNone, mustGet(t, g, 1, 0).Solid)
	assert.Equal(t, SolidAsh, mustGet(t, g, 2, 0).Solid, "ash moves one cell")
	assert.Equal(t, GasNone, mustGet(t, g, 4, 0).Gas)
	assert.Equal(t, GasSmoke, mustGet(t, g, 5, 0).Gas)
}

func TestWindNeverCarriesFire(t *testing.T) {
	g := filledGrid(t, 2, 1, Cell{})
	require.NoError(t, g.Put(0, 0, Cell{Solid: SolidGrass, Gas: GasFire, Heat: 100, Fuel: 50}))
	w, err := NewWindGrid(2, 1)
	require.NoError(t, err)
	w.Fill(Wind{DX: 1, Strength: 150})

	tu := DefaultTuning()
	tu.WindCadence = 1
	e := newTestEngine(t, Options{Tuning: tu})
	require.NoError(t, e.AdvanceTick(g, w))

	assert.Equal(t, GasFire, mustGet(t, g, 0, 0).Gas)
	dst := mustGet(t, g, 1, 0)
	assert.Equal(t, GasNone, dst.Gas)
	assert.NotZero(t, dst.Heat, "heat is carried downwind")
}

func TestGustBleedsPressureAndScattersSmoke(t *testing.T) {
	tu := DefaultTuning()
	tu.WindCadence = 1
	strong := Wind{DX: 1, Strength: tu.GustAbove + 50}
	after := 100 - tu.PressureDecay - tu.GustBleed

	t.Run("smoke at the downwind edge", func(t *testing.T) {
		g := filledGrid(t, 3, 1, Cell{})
		require.NoError(t, g.Put(2, 0, Cell{Gas: GasSmoke, Pressure: 100}))
		w, err := NewWindGrid(3, 1)
		require.NoError(t, err)
		w.Fill(strong)

		e := newTestEngine(t, Options{Tuning: tu})
		require.NoError(t, e.AdvanceTick(g, w))

		c := mustGet(t, g, 2, 0)
		assert.Equal(t, GasNone, c.Gas, "smoke that cannot move is scattered")
		assert.Equal(t, after, c.Pressure)
	})

	t.Run("moving smoke", func(t *testing.T) {
		g := filledGrid(t, 3, 1, Cell{})
		require.NoError(t, g.Put(0, 0, Cell{Gas: GasSmoke, Pressure: 100}))
		w, err := NewWindGrid(3, 1)
		require.NoError(t, err)
		w.Fill(strong)

		e := newTestEngine(t, Options{Tuning: tu})
		require.NoError(t, e.AdvanceTick(g, w))

		src, dst := mustGet(t, g, 0, 0), mustGet(t, g, 1, 0)
		assert.Equal(t, GasNone, src.Gas)
		assert.Equal(t, GasSmoke, dst.Gas)
		assert.Equal(t, after/2, dst.Pressure, "gust bleed applies before the split")
		assert.Equal(t, after-after/2, src.Pressure)
		assert.Equal(t, GasNone, mustGet(t, g, 2, 0).Gas, "one cell per pass")
	})
}

func TestWindAgainstScanOrderMovesTrailingMatter(t *testing.T) {
	g := filledGrid(t, 8, 1, Cell{})
	require.NoError(t, g.Put(2, 0, Cell{Gas: GasSmoke, Pressure: 100}))
	require.NoError(t, g.Put(3, 0, Cell{Gas: GasSmoke, Pressure: 100}))
	require.NoError(t, g.Put(5, 0, Cell{Solid: SolidAsh}))
	require.NoError(t, g.Put(6, 0, Cell{Solid: SolidAsh}))
	w, err := NewWindGrid(8, 1)
	require.NoError(t, err)
	w.Fill(Wind{DX: -1, Strength: 150})

	tu := DefaultTuning()
	tu.WindCadence = 1
	e := newTestEngine(t, Options{Tuning: tu})
	require.NoError(t, e.AdvanceTick(g, w))

	// Scanning from the upwind side lets each cell follow its neighbour into
	// the slot it just vacated.
	gas := make([]GasKind, 8)
	solid := make([]SolidKind, 8)
	for x := range 8 {
		c := mustGet(t, g, x, 0)
		gas[x], solid[x] = c.Gas, c.Solid
	}
	assert.Equal(t, []GasKind{GasNone, GasSmoke, GasSmoke, GasNone, GasNone, GasNone, GasNone, GasNone}, gas)
	assert.Equal(t, []SolidKind{SolidNone, SolidNone, SolidNone, SolidNone, SolidAsh, SolidAsh, SolidNone, SolidNone}, solid)
}

func TestReclaimRunsOnCadence(t *testing.T) {
	tu := DefaultTuning()
	tu.ReclaimCadence = 1
	tu.ReclaimAfter = 3
	rec := &recorder{}
	e := newTestEngine(t, Options{Tuning: tu, Observer: rec})
	g := filledGrid(t, 1, 1, Cell{Solid: SolidAsh})

	require.NoError(t, e.AdvanceTick(g, nil))
	require.NoError(t, e.AdvanceTick(g, nil))
	assert.Equal(t, SolidAsh, mustGet(t, g, 0, 0).Solid)
	require.NoError(t, e.AdvanceTick(g, nil))
	assert.Equal(t, SolidEarth, mustGet(t, g, 0, 0).Solid)
	assert.Equal(t, 1, rec.ticks[2].Reclaimed)
}

func TestNoiseWind(t *testing.T) {
	a, err := NewNoiseWind(8, 8, DefaultWindNoise(7))
	require.NoError(t, err)
	b, err := NewNoiseWind(8, 8, DefaultWindNoise(7))
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := a.At(x, y)
			assert.Equal(t, v, b.At(x, y))
			assert.True(t, v.DX >= -1 && v.DX <= 1 && v.DY >= -1 && v.DY <= 1)
		}
	}
	assert.True(t, a.Regenerate(256))

	still, err := NewWindGrid(4, 4)
	require.NoError(t, err)
	assert.False(t, still.Regenerate(1))
	still.Fill(Wind{DX: -1, DY: 1, Strength: 10})
	px, py := still.Prevailing()
	assert.Equal(t, -1, px)
	assert.Equal(t, 1, py)
	assert.ErrorIs(t, still.Set(4, 0, Wind{}), ErrOutOfBounds)
}
