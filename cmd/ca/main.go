//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"elemental-ca/internal/app"
	"elemental-ca/internal/config"
	"elemental-ca/internal/core"
	"elemental-ca/internal/sims/elements"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sim, err := buildSim(cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg, log)
	size := sim.Size()

	ebiten.SetWindowTitle("elemental-ca - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("game exited", "error", err)
		os.Exit(1)
	}
}

// buildSim prefers a YAML configuration for the elements sim and falls back
// to the registry defaults otherwise.
func buildSim(cfg *app.Config, log *slog.Logger) (core.Sim, error) {
	if cfg.Sim == "elements" {
		fc, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		if fc != nil {
			if cfg.Seed == app.NewConfig().Seed {
				cfg.Seed = fc.World.Seed
			}
			return elements.NewWithConfig(elements.FromFile(fc), elements.WithLogger(log)), nil
		}
	}
	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return nil, errors.New("unknown sim " + cfg.Sim)
	}
	return factory(nil), nil
}
