//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"elemental-ca/internal/core"
	"elemental-ca/internal/render"
	"elemental-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// grayscale is used for sims that do not provide a palette.
var grayscale = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA
	log     *slog.Logger

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	palette := grayscale
	if p, ok := sim.(paletteProvider); ok {
		palette = p.Palette()
	}
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		palette:  palette,
		log:      log,
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.handlePointer()
	g.hud.Update(g.viewWidth())

	if !g.paused || g.tickOnce {
		if err := g.sim.Step(); err != nil {
			g.log.Debug("step rejected", "sim", g.sim.Name(), "error", err)
		}
		g.tickOnce = false
	}
	return nil
}

// handlePointer maps mouse buttons to stimuli on the cell under the cursor:
// left ignites, right detonates, middle douses and T holds a torch.
func (g *Game) handlePointer() {
	x, y, ok := g.cursorCell()
	if !ok {
		g.hud.SetInfo("")
		return
	}
	if d, ok := g.sim.(core.CellDescriber); ok {
		g.hud.SetInfo(d.DescribeCell(x, y))
	}
	s, ok := g.sim.(core.Stimulator)
	if !ok {
		return
	}
	var err error
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		err = s.Fireball(x, y)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		err = s.Blast(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		err = s.Douse(x, y)
	case ebiten.IsKeyPressed(ebiten.KeyT):
		err = s.Torch(x, y)
	}
	if err != nil {
		g.log.Warn("stimulus failed", "x", x, "y", y, "error", err)
	}
}

func (g *Game) cursorCell() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= g.viewWidth() {
		return 0, 0, false
	}
	x, y := mx/g.scale, my/g.scale
	size := g.sim.Size()
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
