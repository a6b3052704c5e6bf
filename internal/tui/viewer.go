// Package tui renders an elements world in a terminal and drives it from
// the keyboard.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"elemental-ca/internal/core"
	"elemental-ca/internal/sims/elements"
	"elemental-ca/pkg/elemental"
)

// frameInterval is how often the viewer polls the tick pacer and redraws.
const frameInterval = 16 * time.Millisecond

var glyphs = [elemental.MaterialCount]rune{
	elemental.MaterialNone:   ' ',
	elemental.MaterialEarth:  '.',
	elemental.MaterialStone:  '#',
	elemental.MaterialMud:    ',',
	elemental.MaterialAsh:    ':',
	elemental.MaterialRubble: '%',
	elemental.MaterialGrass:  '"',
	elemental.MaterialWood:   '♣',
	elemental.MaterialWater:  '≈',
	elemental.MaterialOil:    '~',
	elemental.MaterialSteam:  '°',
	elemental.MaterialSmoke:  '░',
	elemental.MaterialFire:   '▲',
}

var windArrows = map[[2]int]rune{
	{0, 0}: '·', {1, 0}: '→', {-1, 0}: '←', {0, 1}: '↓', {0, -1}: '↑',
	{1, 1}: '↘', {-1, 1}: '↙', {1, -1}: '↗', {-1, -1}: '↖',
}

// Viewer draws the world onto a tcell screen: one column per cell, a
// cursor for stimuli and a status line on the bottom row.
type Viewer struct {
	screen tcell.Screen
	world  *elements.World
	pace   *core.FixedStep
	log    *slog.Logger
	styles []tcell.Style

	cx, cy int
	ox, oy int
	seed   int64
	paused bool
	notice string
}

// New returns a viewer for world stepping at tps ticks per second.
func New(screen tcell.Screen, world *elements.World, tps int, seed int64, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	size := world.Size()
	palette := world.Palette()
	styles := make([]tcell.Style, len(palette))
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	for i, c := range palette {
		st := base.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		if _, lvl := elements.DecodeDisplay(uint8(i)); lvl >= 2 {
			st = st.Bold(true)
		}
		styles[i] = st
	}
	return &Viewer{
		screen: screen,
		world:  world,
		pace:   core.NewFixedStep(tps),
		log:    log,
		styles: styles,
		cx:     size.W / 2,
		cy:     size.H / 2,
		seed:   seed,
	}
}

// Run processes input and advances the world until ctx is cancelled or the
// user quits.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(min(frameInterval, v.pace.Interval()))
	defer ticker.Stop()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.screen.Sync()
			case *tcell.EventKey:
				if !v.Apply(keyToAction(ev)) {
					return nil
				}
			}
			v.Draw()
		case <-ticker.C:
			if !v.paused && v.pace.ShouldStep() {
				v.step()
			}
			v.Draw()
		}
	}
}

// Apply performs one action and reports whether the viewer should keep running.
func (v *Viewer) Apply(a Action) bool {
	var err error
	switch a {
	case ActionQuit:
		return false
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		dx, dy := actionToDelta(a)
		size := v.world.Size()
		v.cx = min(max(v.cx+dx, 0), size.W-1)
		v.cy = min(max(v.cy+dy, 0), size.H-1)
	case ActionTorch:
		err = v.world.Torch(v.cx, v.cy)
	case ActionFireball:
		err = v.world.Fireball(v.cx, v.cy)
	case ActionBlast:
		err = v.world.Blast(v.cx, v.cy)
	case ActionDouse:
		err = v.world.Douse(v.cx, v.cy)
	case ActionPause:
		v.paused = !v.paused
	case ActionStep:
		v.step()
	case ActionReset:
		v.world.Reset(v.seed)
		v.notice = ""
	}
	if err != nil {
		v.notice = err.Error()
		v.log.Warn("stimulus failed", "x", v.cx, "y", v.cy, "error", err)
	}
	return true
}

func (v *Viewer) step() {
	if err := v.world.Step(); err != nil {
		v.notice = "tick rejected"
		return
	}
	v.notice = ""
}

// Draw renders the visible part of the world and the status line.
func (v *Viewer) Draw() {
	sw, sh := v.screen.Size()
	viewH := sh - 1
	if sw <= 0 || viewH <= 0 {
		return
	}
	v.follow(sw, viewH)
	v.screen.Clear()

	size := v.world.Size()
	cells := v.world.Cells()
	for sy := 0; sy < viewH; sy++ {
		wy := v.oy + sy
		if wy >= size.H {
			break
		}
		for sx := 0; sx < sw; sx++ {
			wx := v.ox + sx
			if wx >= size.W {
				break
			}
			val := cells[wy*size.W+wx]
			mat, _ := elements.DecodeDisplay(val)
			st := v.styles[min(int(val), len(v.styles)-1)]
			if wx == v.cx && wy == v.cy {
				st = st.Reverse(true)
			}
			v.screen.SetContent(sx, sy, glyphs[mat], nil, st)
		}
	}

	putText(v.screen, 0, viewH, fitWidth(v.statusLine(), sw), tcell.StyleDefault.Reverse(true))
	v.screen.Show()
}

// follow scrolls the viewport so the cursor stays visible.
func (v *Viewer) follow(sw, viewH int) {
	size := v.world.Size()
	if v.cx < v.ox {
		v.ox = v.cx
	} else if v.cx >= v.ox+sw {
		v.ox = v.cx - sw + 1
	}
	if v.cy < v.oy {
		v.oy = v.cy
	} else if v.cy >= v.oy+viewH {
		v.oy = v.cy - viewH + 1
	}
	v.ox = min(max(v.ox, 0), max(size.W-sw, 0))
	v.oy = min(max(v.oy, 0), max(size.H-viewH, 0))
}

func (v *Viewer) statusLine() string {
	px, py := v.world.Wind().Prevailing()
	parts := []string{
		fmt.Sprintf("tick %d", v.world.Engine().Tick()),
		fmt.Sprintf("wind %c", windArrows[[2]int{px, py}]),
	}
	if v.paused {
		parts = append(parts, "paused")
	}
	if v.notice != "" {
		parts = append(parts, v.notice)
	}
	parts = append(parts, v.world.DescribeCell(v.cx, v.cy))
	return strings.Join(parts, " | ")
}

// fitWidth truncates s to w columns and pads it so the status bar spans the row.
func fitWidth(s string, w int) string {
	s = runewidth.Truncate(s, w, "…")
	if pad := w - runewidth.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// putText writes s starting at (x, y), advancing by each rune's cell width.
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		if x >= sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x += max(runewidth.RuneWidth(r), 1)
	}
}
