//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"elemental-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	infoColor   = color.RGBA{R: 240, G: 210, B: 150, A: 255}
	buttonOn    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonLabel = color.RGBA{R: 230, G: 230, B: 240, A: 255}
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the rule knobs to the right of the simulation view, followed by
// the read-only world settings and an info line.
type HUD struct {
	sim    core.Sim
	setter core.IntParameterSetter
	width  int
	title  string
	info   string

	knobs    []knob
	readOnly []string
	offsetX  int

	panel      *ebiten.Image
	pixel      *ebiten.Image
	lastHeight int
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: buildTitle(sim)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.setter, _ = sim.(core.IntParameterSetter)
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			if ctrl.Type != core.ParamTypeInt {
				continue
			}
			top := controlsTop + len(h.knobs)*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.knobs = append(h.knobs, knob{control: ctrl, top: top, minus: minus, plus: plus})
		}
	}
	return h
}

// Update refreshes knob values from the simulation and applies clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.offsetX = panelOffsetX
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		return
	}
	h.refresh(provider.Parameters())
	h.handleClick()
}

// SetInfo sets the line shown at the bottom of the panel, typically a
// description of the cell under the pointer.
func (h *HUD) SetInfo(info string) {
	if h == nil {
		return
	}
	h.info = info
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	if len(h.knobs) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y+infoSpacing, mutedColor)
	}
	for i := range h.knobs {
		h.drawKnob(&h.knobs[i])
	}

	y = controlsTop + len(h.knobs)*lineHeight + infoLineHeight
	for _, line := range h.readOnly {
		if y > height-infoSpacing {
			break
		}
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
		y += infoLineHeight
	}
	h.drawInfo(height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return fmt.Sprintf("%s Controls", strings.ToUpper(name[:1])+name[1:])
}

// refresh copies knob values out of snapshot and lists every parameter that
// has no knob as a read-only "Label: value" line.
func (h *HUD) refresh(snapshot core.ParameterSnapshot) {
	hasKnob := make(map[string]bool, len(h.knobs))
	for i := range h.knobs {
		k := &h.knobs[i]
		hasKnob[k.control.Key] = true
		p, ok := snapshot.Find(k.control.Key)
		if !ok {
			k.known = false
			continue
		}
		v, err := strconv.Atoi(p.Value)
		k.value, k.known = v, err == nil
	}

	h.readOnly = h.readOnly[:0]
	for _, g := range snapshot.Groups {
		for _, p := range g.Params {
			if !hasKnob[p.Key] {
				h.readOnly = append(h.readOnly, p.Label+": "+p.Value)
			}
		}
	}
}

func (h *HUD) handleClick() {
	if h.setter == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.knobs {
		k := &h.knobs[i]
		if !k.known {
			continue
		}
		direction := 0
		switch {
		case pt.In(k.minus):
			direction = -1
		case pt.In(k.plus):
			direction = 1
		default:
			continue
		}
		// The world refuses values that would break the rule set.
		if next := k.target(direction); next != k.value && h.setter.SetIntParameter(k.control.Key, next) {
			k.value = next
		}
		return
	}
}

func (h *HUD) drawKnob(k *knob) {
	face := basicfont.Face7x13
	baseline := k.top + labelBaseline
	text.Draw(h.panel, k.control.Label, face, panelPadding, baseline, labelColor)

	value, col := "--", mutedColor
	if k.known {
		value, col = strconv.Itoa(k.value), labelColor
	}
	valueX := k.minus.Min.X - buttonGap - text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, valueX, baseline, col)

	enabled := k.known && h.setter != nil
	h.drawButton(k.minus, "-", enabled && k.target(-1) != k.value)
	h.drawButton(k.plus, "+", enabled && k.target(1) != k.value)
}

// drawInfo wraps the info line on " · " separators so it fits the panel.
func (h *HUD) drawInfo(height int) {
	if h.info == "" {
		return
	}
	face := basicfont.Face7x13
	maxWidth := h.width - 2*panelPadding
	var lines []string
	current := ""
	for _, part := range strings.Split(h.info, " · ") {
		candidate := part
		if current != "" {
			candidate = current + " · " + part
		}
		if current != "" && text.BoundString(face, candidate).Dx() > maxWidth {
			lines = append(lines, current)
			candidate = part
		}
		current = candidate
	}
	lines = append(lines, current)

	y := height - panelPadding - (len(lines)-1)*infoLineHeight
	for _, line := range lines {
		text.Draw(h.panel, line, face, panelPadding, y, infoColor)
		y += infoLineHeight
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := buttonOn, buttonLabel
	if !enabled {
		bg, fg = buttonOff, mutedColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()+bounds.Dy())/2
	text.Draw(h.panel, label, face, x, y, fg)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	infoLineHeight = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
