// Package elemental implements a layered elemental cellular automaton.
//
// Each cell carries up to one solid, one liquid and one gas occupant plus
// saturating heat, moisture and pressure scalars. An Engine advances a
// double-buffered Grid one tick at a time: every cell runs reaction,
// transition and decay against the start-of-tick state, then the wind pass
// and any queued explosions operate on the next state before the buffers
// swap. Hosts drive the engine, query cells and inject stimuli such as heat
// or explosions between ticks.
package elemental
