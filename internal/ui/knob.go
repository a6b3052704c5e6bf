package ui

import (
	"image"
	"math"

	"elemental-ca/internal/core"
)

// knob is one integer rule knob with its -/+ buttons.
type knob struct {
	control core.ParameterControl
	value   int
	known   bool

	top         int
	minus, plus image.Rectangle
}

// step returns the knob's increment, at least one.
func (k *knob) step() int {
	return max(int(math.Round(k.control.Step)), 1)
}

// target returns the clamped value one step in direction.
func (k *knob) target(direction int) int {
	return int(math.Round(k.control.Clamp(float64(k.value + direction*k.step()))))
}
