package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"elemental-ca/pkg/elemental"
)

const namespace = "elements"

// Recorder turns engine telemetry into Prometheus metrics. It implements
// elemental.Observer.
type Recorder struct {
	ticks        prometheus.Counter
	rejected     prometheus.Counter
	blasts       prometheus.Counter
	blastCells   prometheus.Counter
	windMoves    prometheus.Counter
	reclaimed    prometheus.Counter
	tickDuration prometheus.Histogram
	burning      prometheus.Gauge
	steam        prometheus.Gauge
	waterlogged  prometheus.Gauge
}

var _ elemental.Observer = (*Recorder)(nil)

// NewRecorder creates the metrics and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Ticks completed and swapped in.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_rejected_total",
			Help:      "Ticks discarded because they violated an invariant.",
		}),
		blasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blasts_total",
			Help:      "Explosions applied, detected or triggered.",
		}),
		blastCells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blast_cells_total",
			Help:      "Cells touched by explosions.",
		}),
		windMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wind_moves_total",
			Help:      "Gas and ash moves made by the wind pass.",
		}),
		reclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reclaimed_cells_total",
			Help:      "Burnt cells that returned to earth.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in AdvanceTick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		burning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "burning_cells",
			Help:      "Cells on fire after the last tick.",
		}),
		steam: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "steam_cells",
			Help:      "Cells holding steam after the last tick.",
		}),
		waterlogged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "waterlogged_cells",
			Help:      "Fully saturated cells after the last tick.",
		}),
	}
	reg.MustRegister(r.ticks, r.rejected, r.blasts, r.blastCells, r.windMoves,
		r.reclaimed, r.tickDuration, r.burning, r.steam, r.waterlogged)
	return r
}

// TickCompleted records a swapped tick.
func (r *Recorder) TickCompleted(s elemental.TickStats) {
	r.ticks.Inc()
	r.tickDuration.Observe(s.Duration.Seconds())
	r.windMoves.Add(float64(s.WindMoves))
	r.reclaimed.Add(float64(s.Reclaimed))
	r.burning.Set(float64(s.Burning))
	r.steam.Set(float64(s.Steam))
	r.waterlogged.Set(float64(s.Waterlogged))
}

// TickRejected records a discarded tick.
func (r *Recorder) TickRejected(uint64, error) {
	r.rejected.Inc()
}

// BlastApplied records one explosion.
func (r *Recorder) BlastApplied(b elemental.BlastReport) {
	r.blasts.Inc()
	r.blastCells.Add(float64(b.Cells()))
}

// Serve exposes the gatherer on addr under /metrics. The server runs in its
// own goroutine; the caller shuts it down.
func Serve(addr string, g prometheus.Gatherer, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "error", err)
		}
	}()
	return srv
}
