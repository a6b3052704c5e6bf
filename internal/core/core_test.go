package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedStepReleasesOneTickPerInterval(t *testing.T) {
	clock := time.Unix(100, 0)
	fs := newFixedStep(10, func() time.Time { return clock })

	assert.True(t, fs.ShouldStep(), "first poll releases the primed tick")
	assert.False(t, fs.ShouldStep())

	clock = clock.Add(50 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	clock = clock.Add(60 * time.Millisecond)
	assert.True(t, fs.ShouldStep())
	assert.False(t, fs.ShouldStep())

	clock = clock.Add(300 * time.Millisecond)
	assert.True(t, fs.ShouldStep())
	assert.True(t, fs.ShouldStep(), "backlog drains one tick per poll")
	assert.Equal(t, 100*time.Millisecond, fs.Interval())
}

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(3, 2)
	g.Set(2, 1, 7)
	g.Set(3, 0, 9)
	assert.Equal(t, uint8(7), g.At(2, 1))
	assert.Equal(t, uint8(0), g.At(-1, 0))
	assert.Equal(t, 5, g.Index(2, 1))
	g.Clear()
	assert.Equal(t, uint8(0), g.At(2, 1))
}

func TestParameterSnapshotFind(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "World", Params: []Parameter{IntParam("w", "Width", 64)}},
		{Name: "Fire", Params: []Parameter{FloatParam("spread", "Spread", 0.5), BoolParam("strict", "Strict", true)}},
	}}
	p, ok := s.Find("spread")
	assert.True(t, ok)
	assert.Equal(t, "0.500", p.Value)
	assert.Equal(t, ParamTypeFloat, p.Type)

	p, ok = s.Find("strict")
	assert.True(t, ok)
	assert.Equal(t, "true", p.Value)

	_, ok = s.Find("missing")
	assert.False(t, ok)
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 1, Max: 10, HasMin: true, HasMax: true}
	assert.Equal(t, 1.0, c.Clamp(-3))
	assert.Equal(t, 10.0, c.Clamp(30))
	assert.Equal(t, 4.0, c.Clamp(4))
	assert.Equal(t, 99.0, ParameterControl{}.Clamp(99))
}

func TestRegisterIgnoresEmpty(t *testing.T) {
	before := len(Sims())
	Register("", func(map[string]string) Sim { return nil })
	Register("nil-factory", nil)
	assert.Len(t, Sims(), before)
}
