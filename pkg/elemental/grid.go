package elemental

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a grid is requested with non-positive dimensions.
	ErrInvalidSize = errors.New("elemental: invalid grid size")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("elemental: coordinates out of bounds")
	// ErrInvalidCell is returned when a cell holds an unknown layer kind.
	ErrInvalidCell = errors.New("elemental: invalid cell")
	// ErrShapeMismatch is returned when a wind grid does not match the cell grid.
	ErrShapeMismatch = errors.New("elemental: grid shape mismatch")
)

// Grid is a double-buffered rectangle of cells. Reads see the front buffer
// (the state at the start of the tick); writes go to the back buffer and
// only become visible after Swap.
type Grid struct {
	w, h  int
	front []Cell
	back  []Cell
}

// NewGrid allocates a grid of air cells.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	n := w * h
	return &Grid{w: w, h: h, front: make([]Cell, n), back: make([]Cell, n)}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *Grid) index(x, y int) int { return y*g.w + x }

func (g *Grid) checkBounds(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.w, g.h)
	}
	return nil
}

// Get returns the visible cell at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	if err := g.checkBounds(x, y); err != nil {
		return Cell{}, err
	}
	return g.front[g.index(x, y)], nil
}

// At returns the visible cell at (x, y), or air when outside the grid.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.front[g.index(x, y)]
}

// Set writes the next-state cell at (x, y). The write is invisible to Get
// until Swap.
func (g *Grid) Set(x, y int, c Cell) error {
	if err := g.checkBounds(x, y); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("%w at (%d,%d)", ErrInvalidCell, x, y)
	}
	g.back[g.index(x, y)] = c
	return nil
}

// Put writes c into both buffers. It is meant for authoring a world and for
// stimuli applied between ticks, where the change must be visible at once.
func (g *Grid) Put(x, y int, c Cell) error {
	if err := g.checkBounds(x, y); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("%w at (%d,%d)", ErrInvalidCell, x, y)
	}
	i := g.index(x, y)
	g.front[i] = c
	g.back[i] = c
	return nil
}

// Swap makes the back buffer visible.
func (g *Grid) Swap() {
	g.front, g.back = g.back, g.front
}

// Snapshot copies the visible cells in row-major order.
func (g *Grid) Snapshot() []Cell {
	out := make([]Cell, len(g.front))
	copy(out, g.front)
	return out
}

// Count returns how many visible cells satisfy pred.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, c := range g.front {
		if pred(c) {
			n++
		}
	}
	return n
}
