package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elemental-ca/pkg/elemental"
)

func TestLoadWithoutPathOrEnv(t *testing.T) {
	t.Setenv("ELEMENTS_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elements.yaml")
	doc := `
world:
  width: 64
  seed: 9
tuning:
  grass_flash_point: 100
  wind_cadence: 2
metrics:
  addr: ":9100"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 64, cfg.World.Width)
	assert.Equal(t, Default().World.Height, cfg.World.Height, "unset fields keep defaults")
	assert.Equal(t, int64(9), cfg.World.Seed)
	assert.Equal(t, uint8(100), cfg.Tuning.GrassFlashPoint)
	assert.Equal(t, uint64(2), cfg.Tuning.WindCadence)
	assert.Equal(t, elemental.DefaultTuning().EvaporateAbove, cfg.Tuning.EvaporateAbove)
	assert.Equal(t, ":9100", cfg.MetricsAddr())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  height: 12\n"), 0o644))
	t.Setenv("ELEMENTS_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 12, cfg.World.Height)
}

func TestParseRejectsBrokenHysteresis(t *testing.T) {
	_, err := Parse([]byte("tuning:\n  evaporate_above: 190\n  condense_below: 180\n"))
	assert.ErrorIs(t, err, elemental.ErrInvalidTuning)

	_, err = Parse([]byte("world:\n  width: 0\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("world: [1, 2"))
	assert.Error(t, err)
}

func TestMetricsAddrFallsBackToEnv(t *testing.T) {
	t.Setenv("ELEMENTS_METRICS_ADDR", "127.0.0.1:2112")
	cfg := Default()
	assert.Equal(t, "127.0.0.1:2112", cfg.MetricsAddr())
	cfg.Log.Level = "loud"
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}
