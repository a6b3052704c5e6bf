package render

import (
	"image/color"
	"math"
)

// FillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Mask glow shaping shared by the overlays.
const (
	maskMaxAlpha      = 140.0
	maskGlowBase      = 0.35
	maskGlowRange     = 0.65
	maskIntensityBias = 0.75
)

// FillMaskRGBA tints a 0..1 intensity mask. Stronger cells are more opaque
// and brighter; zero cells stay transparent.
func FillMaskRGBA(buf []byte, mask []float32, tint color.RGBA) {
	for i, v := range mask {
		base := i * 4
		intensity := min(max(float64(v), 0), 1)
		if intensity == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}

		alpha := uint8(math.Round(maskMaxAlpha * math.Pow(intensity, maskIntensityBias)))
		glow := maskGlowBase + maskGlowRange*math.Sqrt(intensity)

		buf[base+0] = scaleComponent(tint.R, glow)
		buf[base+1] = scaleComponent(tint.G, glow)
		buf[base+2] = scaleComponent(tint.B, glow)
		buf[base+3] = alpha
	}
}

func scaleComponent(value uint8, factor float64) uint8 {
	return uint8(min(max(math.Round(float64(value)*factor), 0), 255))
}
