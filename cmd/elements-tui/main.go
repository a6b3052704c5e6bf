package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"elemental-ca/internal/config"
	"elemental-ca/internal/metrics"
	"elemental-ca/internal/sims/elements"
	"elemental-ca/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (falls back to $ELEMENTS_CONFIG)")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus listen address, e.g. :9464 (falls back to $ELEMENTS_METRICS_ADDR)")
	seed := flag.Int64("seed", 0, "override the configured seed")
	flag.Parse()

	if err := run(*configPath, *metricsAddr, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "elements-tui:", err)
		os.Exit(1)
	}
}

func run(configPath, metricsAddr string, seed int64) error {
	fc, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if fc == nil {
		d := config.Default()
		fc = &d
	}
	if metricsAddr != "" {
		fc.Metrics.Addr = metricsAddr
	}
	if seed != 0 {
		fc.World.Seed = seed
	}

	// The terminal belongs to tcell, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if fc.Log.File != "" {
		f, err := os.OpenFile(fc.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: fc.LogLevel()}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewRecorder(reg)
	if addr := fc.MetricsAddr(); addr != "" {
		srv := metrics.Serve(addr, reg, log)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	world := elements.NewWithConfig(elements.FromFile(fc), elements.WithLogger(log), elements.WithObserver(recorder))
	world.Reset(0)
	log.Info("world ready", "width", fc.World.Width, "height", fc.World.Height, "seed", fc.World.Seed)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := tui.New(screen, world, fc.World.TPS, fc.World.Seed, log)
	if err := viewer.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
