package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract a host drives: reset, step and a palette-indexed
// display buffer. Step reports a rejected tick as an error; the previous
// state stays visible in that case.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() error
	Cells() []uint8
}

// Stimulator is implemented by sims that accept point stimuli from a
// pointer or cursor.
type Stimulator interface {
	Torch(x, y int) error
	Fireball(x, y int) error
	Blast(x, y int) error
	Douse(x, y int) error
}

// CellDescriber is implemented by sims that can describe a cell in words.
type CellDescriber interface {
	DescribeCell(x, y int) string
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
