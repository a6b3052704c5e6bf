package vibe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"elemental-ca/pkg/elemental"
)

func TestBands(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ambient heat", Heat(0), "Cool"},
		{"heat edge", Heat(170), "Scorching"},
		{"max heat", Heat(255), "Blazing"},
		{"damp", Wet(60), "Damp"},
		{"waterlogged", Wet(255), "Saturated with moisture"},
		{"almost waterlogged", Wet(254), "Soaked"},
		{"pressure", Pressure(200), "Volatile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestDescribeOrdersByUrgency(t *testing.T) {
	c := elemental.Cell{Solid: elemental.SolidGrass, Gas: elemental.GasFire, Heat: 240, Pressure: 70}
	assert.Equal(t, []string{"Burning", "Blazing", "Pressing"}, Describe(c))
	assert.Equal(t, "Burning", Primary(c))
	assert.Equal(t, "Fire · Burning · Blazing · Pressing", Line(c))
}

func TestQuietCell(t *testing.T) {
	c := elemental.Cell{Solid: elemental.SolidEarth}
	assert.Empty(t, Describe(c))
	assert.Equal(t, "Calm", Primary(c))
	assert.Equal(t, "Earth", Line(c))

	water := elemental.Cell{Liquid: elemental.LiquidWater, Wet: 255}
	assert.Equal(t, "Saturated with moisture", Primary(water))
}
