package elements

import (
	"context"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"elemental-ca/pkg/elemental"
)

// FireSpread captures telemetry from a deterministic grass-fire run used for
// tuning.
type FireSpread struct {
	// MaxDistance records the farthest Euclidean distance (in cells) that
	// fire reached from the ignition point.
	MaxDistance float64
	// MaxDistanceStep stores the tick at which the farthest distance was first reached.
	MaxDistanceStep int
	PeakBurning     int
	// LastBurningStep records the final tick that still had a burning cell.
	LastBurningStep int
	// Burnt counts cells left as ash or rubble when the run ends.
	Burnt          int
	StepsSimulated int
}

// FireSpreadResult runs a deterministic scenario: the world is covered in
// calm grass, the centre cell is ignited violently and the engine advances
// for up to steps ticks. The run ends early once nothing has burned for a
// while.
func FireSpreadResult(cfg Config, steps int) (FireSpread, error) {
	if steps <= 0 {
		return FireSpread{}, nil
	}
	cfg.Params = Params{}
	world := NewWithConfig(cfg)
	world.Reset(0)

	grass := elemental.Cell{Solid: elemental.SolidGrass}
	for y := 0; y < world.h; y++ {
		for x := 0; x < world.w; x++ {
			if err := world.grid.Put(x, y, grass); err != nil {
				return FireSpread{}, err
			}
		}
	}
	cx, cy := world.w/2, world.h/2
	if err := world.Fireball(cx, cy); err != nil {
		return FireSpread{}, fmt.Errorf("ignite centre: %w", err)
	}

	var result FireSpread
	measure := func(step int) int {
		burning := 0
		for y := 0; y < world.h; y++ {
			for x := 0; x < world.w; x++ {
				if !world.grid.At(x, y).IsBurning() {
					continue
				}
				burning++
				dist := math.Hypot(float64(x-cx), float64(y-cy))
				if dist > result.MaxDistance {
					result.MaxDistance = dist
					result.MaxDistanceStep = step
				}
			}
		}
		result.PeakBurning = max(result.PeakBurning, burning)
		if burning > 0 {
			result.LastBurningStep = step
		}
		return burning
	}

	const quietLimit = 16
	quiet := 0
	measure(0)
	for step := 1; step <= steps; step++ {
		if err := world.Step(); err != nil {
			return result, fmt.Errorf("step %d: %w", step, err)
		}
		result.StepsSimulated = step
		if measure(step) > 0 {
			quiet = 0
			continue
		}
		quiet++
		if quiet >= quietLimit {
			break
		}
	}

	result.Burnt = world.grid.Count(func(c elemental.Cell) bool {
		return c.Solid == elemental.SolidAsh || c.Solid == elemental.SolidRubble
	})
	return result, nil
}

// SweepRecord is one evaluated point of a fire-spread sweep.
type SweepRecord struct {
	GrassFlashPoint  uint8
	FireExposureHeat uint8
	Result           FireSpread
}

// FireSpreadSweep evaluates every combination of grass flash point and fire
// exposure heat on up to workers goroutines. Combinations that fail tuning
// validation are skipped. Records are ordered by burnt area, then reach.
func FireSpreadSweep(ctx context.Context, base Config, flashPoints, exposures []uint8, steps, workers int) ([]SweepRecord, error) {
	type job struct {
		flash, exposure uint8
	}
	var jobs []job
	for _, f := range flashPoints {
		for _, e := range exposures {
			t := base.Tuning
			t.GrassFlashPoint = f
			t.FireExposureHeat = e
			if t.Validate() != nil {
				continue
			}
			jobs = append(jobs, job{flash: f, exposure: e})
		}
	}

	records := make([]SweepRecord, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := base
			cfg.Tuning.GrassFlashPoint = j.flash
			cfg.Tuning.FireExposureHeat = j.exposure
			// Each run already fans out per tick; keep runs single-threaded.
			cfg.Workers = 1
			res, err := FireSpreadResult(cfg, steps)
			if err != nil {
				return fmt.Errorf("flash %d exposure %d: %w", j.flash, j.exposure, err)
			}
			records[i] = SweepRecord{GrassFlashPoint: j.flash, FireExposureHeat: j.exposure, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(records, func(a, b SweepRecord) int {
		if a.Result.Burnt != b.Result.Burnt {
			return b.Result.Burnt - a.Result.Burnt
		}
		switch {
		case a.Result.MaxDistance > b.Result.MaxDistance:
			return -1
		case a.Result.MaxDistance < b.Result.MaxDistance:
			return 1
		}
		return 0
	})
	return records, nil
}
