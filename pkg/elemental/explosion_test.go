package elemental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledGrid(t *testing.T, w, h int, c Cell) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			require.NoError(t, g.Put(x, y, c))
		}
	}
	return g
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(opts)
	require.NoError(t, err)
	return e
}

func chebyshev(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

func TestExplosionIsBounded(t *testing.T) {
	g := filledGrid(t, 21, 21, Cell{Solid: SolidEarth})
	e := newTestEngine(t, Options{})
	origin := Point{10, 10}

	r, err := e.TriggerExplosion(g, origin, 200, 3)
	require.NoError(t, err)
	assert.Equal(t, 49, r.Cells())
	assert.Equal(t, 3, r.MaxHop)

	seen := map[Point]bool{}
	byHop := map[int]uint8{}
	for _, d := range r.Deposits {
		assert.False(t, seen[d.Point], "cell %v visited twice", d.Point)
		seen[d.Point] = true
		assert.Equal(t, chebyshev(origin, d.Point), d.Hop)
		byHop[d.Hop] = d.Intensity
	}
	assert.Equal(t, map[int]uint8{0: 200, 1: 160, 2: 128, 3: 102}, byHop)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c, err := g.Get(x, y)
			require.NoError(t, err)
			assert.Equal(t, SolidEarth, c.Solid, "earth must not move at (%d,%d)", x, y)
			if chebyshev(origin, Point{x, y}) > 3 {
				assert.Equal(t, Cell{Solid: SolidEarth}, c, "cell (%d,%d) beyond radius touched", x, y)
			}
		}
	}

	c, _ := g.Get(10, 10)
	assert.Equal(t, uint8(0), c.Pressure, "origin pressure released")
	c, _ = g.Get(11, 10)
	assert.Equal(t, GasFire, c.Gas, "first ring ignites")
	c, _ = g.Get(12, 12)
	assert.Equal(t, GasSmoke, c.Gas)
	assert.Equal(t, uint8(128), c.Heat)
	assert.Equal(t, uint8(64), c.Pressure)
}

func TestExplosionStopsAtFloor(t *testing.T) {
	g := filledGrid(t, 30, 30, Cell{})
	e := newTestEngine(t, Options{})

	r, err := e.TriggerExplosion(g, Point{15, 15}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, r.MaxHop)
	assert.Equal(t, 9, r.Cells())
}

func TestExplosionAtEdge(t *testing.T) {
	g := filledGrid(t, 5, 5, Cell{})
	e := newTestEngine(t, Options{})

	r, err := e.TriggerExplosion(g, Point{0, 0}, 100, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Cells())
}

func TestExplosionShattersStoneInPlace(t *testing.T) {
	g := filledGrid(t, 3, 3, Cell{Solid: SolidStone})
	e := newTestEngine(t, Options{})

	_, err := e.TriggerExplosion(g, Point{1, 1}, 255, 0)
	require.NoError(t, err)
	c, _ := g.Get(1, 1)
	assert.Equal(t, SolidRubble, c.Solid)
	c, _ = g.Get(0, 0)
	assert.Equal(t, SolidStone, c.Solid, "radius zero touches the origin only")
}

func TestExplosionScattersAsh(t *testing.T) {
	g := filledGrid(t, 3, 3, Cell{Solid: SolidAsh})
	e := newTestEngine(t, Options{})

	_, err := e.TriggerExplosion(g, Point{1, 1}, 110, 1)
	require.NoError(t, err)
	c, _ := g.Get(1, 1)
	assert.Equal(t, SolidNone, c.Solid)
	c, _ = g.Get(0, 1)
	assert.Equal(t, SolidAsh, c.Solid, "second hop below scatter intensity")
}

func TestScatteredAshIsRemovedNotDisplaced(t *testing.T) {
	g := filledGrid(t, 5, 5, Cell{})
	require.NoError(t, g.Put(2, 2, Cell{Solid: SolidAsh}))
	e := newTestEngine(t, Options{})

	_, err := e.TriggerExplosion(g, Point{2, 2}, 200, 2)
	require.NoError(t, err)
	ash := g.Count(func(c Cell) bool { return c.Solid == SolidAsh })
	assert.Zero(t, ash, "no neighbour receives the blown ash")
}

func TestExplosionRejectsBadArguments(t *testing.T) {
	g := filledGrid(t, 3, 3, Cell{})
	e := newTestEngine(t, Options{})

	_, err := e.TriggerExplosion(g, Point{3, 0}, 100, 2)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = e.TriggerExplosion(g, Point{1, 1}, 100, -1)
	assert.ErrorIs(t, err, ErrInvalidBlast)
	assert.ErrorIs(t, e.Enqueue(g, Blast{Origin: Point{-1, 0}}), ErrOutOfBounds)
}

func TestHopIntensitiesStrictlyDecrease(t *testing.T) {
	tu := DefaultTuning()
	levels := tu.hopIntensities(255, 50)
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i], levels[i-1])
		assert.GreaterOrEqual(t, levels[i], tu.IntensityFloor)
	}
}
