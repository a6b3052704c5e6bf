package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elemental-ca/internal/sims/elements"
)

func newTestViewer(t *testing.T, sw, sh int) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	ss.SetSize(sw, sh)
	t.Cleanup(ss.Fini)

	cfg := elements.DefaultConfig()
	cfg.Width, cfg.Height = 24, 12
	cfg.Params = elements.Params{}
	cfg.Workers = 1
	world := elements.NewWithConfig(cfg)
	world.Reset(0)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(ss, world, 30, 0, log), ss
}

func rowText(ss tcell.SimulationScreen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := ss.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestKeyToAction(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionLeft},
		{"vi down", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), ActionDown},
		{"fireball", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone), ActionFireball},
		{"douse", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), ActionDouse},
		{"pause", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionPause},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyToAction(tt.ev))
		})
	}
}

func TestDrawShowsTerrainCursorAndStatus(t *testing.T) {
	v, ss := newTestViewer(t, 30, 8)
	v.Draw()

	r, _, _, _ := ss.GetContent(0, 0)
	assert.Equal(t, '.', r, "bare earth")

	_, _, st, _ := ss.GetContent(v.cx-v.ox, v.cy-v.oy)
	_, _, attrs := st.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "cursor cell is highlighted")

	status := rowText(ss, 7, 30)
	assert.True(t, strings.HasPrefix(status, "tick 0 | wind"), status)

	// The 12-row world does not fit in 7 rows, so the view follows the cursor.
	assert.Equal(t, 0, v.oy)
	for range 4 {
		v.Apply(ActionDown)
	}
	v.Draw()
	assert.Equal(t, 10-7+1, v.oy)
}

func TestApplyStimuliAndMovement(t *testing.T) {
	v, _ := newTestViewer(t, 30, 14)

	assert.True(t, v.Apply(ActionUp))
	assert.Equal(t, 12/2-1, v.cy)
	for range 40 {
		v.Apply(ActionLeft)
	}
	assert.Equal(t, 0, v.cx, "cursor clamps at the edge")

	require.True(t, v.Apply(ActionFireball))
	c, err := v.world.CellAt(v.cx, v.cy)
	require.NoError(t, err)
	assert.True(t, c.IsBurning())

	v.Apply(ActionDouse)
	c, _ = v.world.CellAt(v.cx, v.cy)
	assert.False(t, c.IsBurning())

	v.Apply(ActionStep)
	assert.Equal(t, uint64(1), v.world.Engine().Tick())

	v.Apply(ActionPause)
	assert.True(t, v.paused)
	assert.Contains(t, v.statusLine(), "paused")

	v.Apply(ActionReset)
	assert.Equal(t, uint64(0), v.world.Engine().Tick())

	assert.False(t, v.Apply(ActionQuit))
}

func TestFitWidth(t *testing.T) {
	assert.Equal(t, "abc  ", fitWidth("abc", 5))
	got := fitWidth("Grass · Burning · Blazing", 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}
