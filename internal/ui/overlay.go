//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"elemental-ca/internal/core"
	"elemental-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	HeatMask() []float32
	WetMask() []float32
}

type windFieldProvider interface {
	WindVectorAt(x, y float64) (float64, float64)
}

var (
	heatTint = color.RGBA{R: 255, G: 120, B: 40}
	wetTint  = color.RGBA{R: 64, G: 164, B: 223}
)

// windSpacing is the distance in cells between wind arrows.
const windSpacing = 8

// Overlay draws the heat, moisture and wind layers on top of the cells.
// Keys 1, 2 and 3 toggle them.
type Overlay struct {
	sim   core.Sim
	scale int

	showHeat, showWet, showWind bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showWet = !o.showWet
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showWind = !o.showWind
	}
}

// Draw renders the enabled layers onto screen. Masks go under the wind arrows.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if masks, ok := o.sim.(maskProvider); ok && (o.showHeat || o.showWet) {
		if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
			o.maskImg = ebiten.NewImage(size.W, size.H)
			o.maskBuf = make([]byte, 4*size.W*size.H)
		}
		if o.showHeat {
			o.drawMask(screen, masks.HeatMask(), heatTint)
		}
		if o.showWet {
			o.drawMask(screen, masks.WetMask(), wetTint)
		}
	}
	if wind, ok := o.sim.(windFieldProvider); ok && o.showWind {
		o.drawWind(screen, wind, size)
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	size := o.sim.Size()
	if len(mask) != size.W*size.H {
		return
	}
	render.FillMaskRGBA(o.maskBuf, mask, tint)
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

// drawWind samples the field every windSpacing cells, centred in each block.
func (o *Overlay) drawWind(screen *ebiten.Image, wind windFieldProvider, size core.Size) {
	span := float64(windSpacing * o.scale)
	thickness := max(float64(o.scale)*0.8, 1)
	for y := windSpacing / 2; y < size.H; y += windSpacing {
		for x := windSpacing / 2; x < size.W; x += windSpacing {
			vx, vy := wind.WindVectorAt(float64(x), float64(y))
			cx := (float64(x) + 0.5) * float64(o.scale)
			cy := (float64(y) + 0.5) * float64(o.scale)
			arrow, ok := render.WindArrow(cx, cy, vx, vy, span)
			if !ok {
				continue
			}
			for _, seg := range []render.Segment{arrow.Shaft, arrow.Left, arrow.Right} {
				o.drawSegment(screen, seg, thickness, arrow.Color)
			}
		}
	}
}

func (o *Overlay) drawSegment(screen *ebiten.Image, s render.Segment, thickness float64, col color.Color) {
	dx, dy := s.X2-s.X1, s.Y2-s.Y1
	length := math.Hypot(dx, dy)
	if length < 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(s.X1, s.Y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
