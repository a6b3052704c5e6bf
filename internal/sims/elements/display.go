package elements

import (
	"image/color"

	"elemental-ca/pkg/elemental"
)

// Display values pack the visible material with a coarse heat level so the
// palette can tint hot cells.
const (
	heatLevels     = 4
	heatLevelShift = 6
)

var elementsPalette = buildPalette()

// Palette exposes the color palette used for rendering the world.
func (w *World) Palette() []color.RGBA {
	return elementsPalette
}

var materialColors = [elemental.MaterialCount]color.NRGBA{
	elemental.MaterialNone:   {R: 18, G: 18, B: 24, A: 255},
	elemental.MaterialEarth:  {R: 92, G: 68, B: 44, A: 255},
	elemental.MaterialStone:  {R: 128, G: 128, B: 136, A: 255},
	elemental.MaterialMud:    {R: 70, G: 52, B: 36, A: 255},
	elemental.MaterialAsh:    {R: 170, G: 166, B: 160, A: 255},
	elemental.MaterialRubble: {R: 104, G: 98, B: 96, A: 255},
	elemental.MaterialGrass:  {R: 74, G: 158, B: 70, A: 255},
	elemental.MaterialWood:   {R: 40, G: 100, B: 55, A: 255},
	elemental.MaterialWater:  {R: 48, G: 110, B: 210, A: 255},
	elemental.MaterialOil:    {R: 42, G: 30, B: 44, A: 255},
	elemental.MaterialSteam:  {R: 210, G: 220, B: 230, A: 255},
	elemental.MaterialSmoke:  {R: 84, G: 84, B: 90, A: 255},
	elemental.MaterialFire:   {R: 255, G: 130, B: 40, A: 255},
}

var hotTint = color.NRGBA{R: 255, G: 70, B: 20, A: 255}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, int(elemental.MaterialCount)*heatLevels)
	for m := range int(elemental.MaterialCount) {
		for lvl := range heatLevels {
			base := materialColors[m]
			if elemental.Material(m) == elemental.MaterialFire {
				base = blendColors(base, color.NRGBA{R: 255, G: 230, B: 120, A: 255}, float64(lvl)/float64(heatLevels*2))
			} else {
				base = blendColors(base, hotTint, float64(lvl)*0.18)
			}
			palette[m*heatLevels+lvl] = toRGBA(base)
		}
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	w := overlayWeight
	inv := 1 - w
	mix := func(a, b uint8) uint8 { return uint8(float64(a)*inv + float64(b)*w + 0.5) }
	return color.NRGBA{R: mix(base.R, overlay.R), G: mix(base.G, overlay.G), B: mix(base.B, overlay.B), A: mix(base.A, overlay.A)}
}

func encodeDisplayValue(c elemental.Cell) uint8 {
	return uint8(c.VisibleMaterial())*heatLevels + c.Heat>>heatLevelShift
}

func (w *World) rebuildDisplay() {
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := w.display.Index(x, y)
			c := w.grid.At(x, y)
			w.display.Set(x, y, encodeDisplayValue(c))
			w.heat[i] = float32(c.Heat) / 255
			w.wet[i] = float32(c.Wet) / 255
		}
	}
}

// DecodeDisplay splits a display value into the visible material and its
// heat level (0 coolest to 3 hottest).
func DecodeDisplay(v uint8) (elemental.Material, int) {
	return elemental.Material(v / heatLevels), int(v % heatLevels)
}
