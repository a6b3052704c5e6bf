package elemental

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// MooreOffsets lists the eight surrounding offsets, row by row.
var MooreOffsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// VonNeumannOffsets lists the four orthogonal offsets.
var VonNeumannOffsets = [4]Point{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// NeighborsMoore returns the eight visible neighbours of (x, y). Positions
// outside the grid read as air.
func NeighborsMoore(g *Grid, x, y int) [8]Cell {
	var n [8]Cell
	for i, o := range MooreOffsets {
		n[i] = g.At(x+o.X, y+o.Y)
	}
	return n
}

// NeighborsVonNeumann returns the four orthogonal neighbours of (x, y).
func NeighborsVonNeumann(g *Grid, x, y int) [4]Cell {
	var n [4]Cell
	for i, o := range VonNeumannOffsets {
		n[i] = g.At(x+o.X, y+o.Y)
	}
	return n
}
