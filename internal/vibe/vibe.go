// Package vibe turns raw cell scalars into short qualitative descriptions
// for status lines and tooltips.
package vibe

import (
	"strings"

	"elemental-ca/pkg/elemental"
)

// band maps a scalar range starting at min to a descriptor. Tables are
// ordered by ascending min.
type band struct {
	min  uint8
	word string
}

var heatBands = []band{
	{0, "Cool"},
	{40, "Warm"},
	{100, "Hot"},
	{170, "Scorching"},
	{230, "Blazing"},
}

var wetBands = []band{
	{0, "Dry"},
	{40, "Damp"},
	{130, "Soaked"},
	{255, "Saturated with moisture"},
}

var pressureBands = []band{
	{0, "Still air"},
	{60, "Pressing"},
	{160, "Volatile"},
}

func lookup(bands []band, v uint8) string {
	word := bands[0].word
	for _, b := range bands {
		if v < b.min {
			break
		}
		word = b.word
	}
	return word
}

// Heat describes a heat value.
func Heat(v uint8) string { return lookup(heatBands, v) }

// Wet describes a moisture value.
func Wet(v uint8) string { return lookup(wetBands, v) }

// Pressure describes a pressure value.
func Pressure(v uint8) string { return lookup(pressureBands, v) }

// Describe lists the notable descriptors for a cell, most urgent first.
// Unremarkable readings (cool, dry, still) are left out.
func Describe(c elemental.Cell) []string {
	var out []string
	switch c.Gas {
	case elemental.GasFire:
		out = append(out, "Burning")
	case elemental.GasSmoke:
		out = append(out, "Shrouded in smoke")
	case elemental.GasSteam:
		out = append(out, "Steaming")
	}
	if c.Heat >= heatBands[1].min {
		out = append(out, Heat(c.Heat))
	}
	if c.Wet >= wetBands[1].min {
		out = append(out, Wet(c.Wet))
	}
	if c.Pressure >= pressureBands[1].min {
		out = append(out, Pressure(c.Pressure))
	}
	return out
}

// Primary returns the single most urgent descriptor, or "Calm".
func Primary(c elemental.Cell) string {
	if d := Describe(c); len(d) > 0 {
		return d[0]
	}
	return "Calm"
}

// Line renders the material and its descriptors as one status line.
func Line(c elemental.Cell) string {
	parts := append([]string{title(c.VisibleMaterial().String())}, Describe(c)...)
	return strings.Join(parts, " · ")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
