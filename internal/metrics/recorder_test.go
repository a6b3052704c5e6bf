package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elemental-ca/pkg/elemental"
)

func TestRecorderCountsTicks(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.TickCompleted(elemental.TickStats{Tick: 1, Duration: time.Millisecond, Burning: 7, Steam: 2, WindMoves: 3})
	r.TickCompleted(elemental.TickStats{Tick: 2, Duration: time.Millisecond, Burning: 4, Reclaimed: 1})
	r.TickRejected(3, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejected))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.burning), "gauge holds the latest tick")
	assert.Equal(t, 0.0, testutil.ToFloat64(r.steam))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.windMoves))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reclaimed))

	n, err := testutil.GatherAndCount(reg, "elements_tick_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecorderObservesEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	e, err := elemental.NewEngine(elemental.Options{Observer: r})
	require.NoError(t, err)
	g, err := elemental.NewGrid(9, 9)
	require.NoError(t, err)

	report, err := e.TriggerExplosion(g, elemental.Point{X: 4, Y: 4}, 100, 1)
	require.NoError(t, err)
	require.NoError(t, e.AdvanceTick(g, nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.blasts))
	assert.Equal(t, float64(report.Cells()), testutil.ToFloat64(r.blastCells))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ticks))
}
