package render

import (
	"image/color"
	"math"
)

// Segment is a line in screen pixels.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Arrow is a wind glyph: a shaft and two head barbs tinted by strength.
type Arrow struct {
	Shaft, Left, Right Segment
	Color              color.NRGBA
}

// calmBelow is the vector length under which a sample draws no arrow.
const calmBelow = 0.05

// WindArrow builds the arrow for a wind vector (vx, vy) sampled at pixel
// (cx, cy). span is the pixel distance between samples; a full-strength
// diagonal reaches about 0.8 of it. It reports false for calm samples.
func WindArrow(cx, cy, vx, vy, span float64) (Arrow, bool) {
	speed := math.Hypot(vx, vy)
	if speed < calmBelow || span <= 0 {
		return Arrow{}, false
	}
	strength := min(speed/math.Sqrt2, 1)
	length := span * (0.3 + 0.5*math.Sqrt(strength))
	nx, ny := vx/speed, vy/speed

	// Centre the shaft on the sample.
	tipX, tipY := cx+nx*length/2, cy+ny*length/2
	tailX, tailY := cx-nx*length/2, cy-ny*length/2
	head := length * 0.35
	barb := func(angle float64) Segment {
		s, c := math.Sincos(angle)
		// Rotate the reversed direction by angle.
		bx := -nx*c + ny*s
		by := -ny*c - nx*s
		return Segment{X1: tipX, Y1: tipY, X2: tipX + bx*head, Y2: tipY + by*head}
	}

	return Arrow{
		Shaft: Segment{X1: tailX, Y1: tailY, X2: tipX, Y2: tipY},
		Left:  barb(math.Pi / 6),
		Right: barb(-math.Pi / 6),
		Color: color.NRGBA{
			R: uint8(80 + 120*strength),
			G: uint8(170 + 70*strength),
			B: 240,
			A: uint8(120 + 120*strength),
		},
	}, true
}
