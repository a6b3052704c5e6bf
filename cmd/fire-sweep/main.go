package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"elemental-ca/internal/sims/elements"
)

type byteList []uint8

func (l *byteList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

func (l *byteList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return err
		}
		*l = append(*l, uint8(v))
	}
	return nil
}

func main() {
	steps := flag.Int("steps", 300, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel scenario evaluations")
	width := flag.Int("width", 64, "map width for sweep runs")
	height := flag.Int("height", 64, "map height for sweep runs")
	top := flag.Int("top", 5, "number of results to print")
	var flashPoints, exposures byteList
	flag.Var(&flashPoints, "flash", "grass flash points to try (comma separated, repeatable)")
	flag.Var(&exposures, "exposure", "fire exposure heats to try (comma separated, repeatable)")
	flag.Parse()

	if len(flashPoints) == 0 {
		flashPoints = byteList{90, 105, 120, 135, 150}
	}
	if len(exposures) == 0 {
		exposures = byteList{6, 9, 12, 16, 20}
	}

	cfg := elements.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height

	baseline, err := elements.FireSpreadResult(cfg, *steps)
	if err != nil {
		fmt.Fprintln(os.Stderr, "baseline:", err)
		os.Exit(1)
	}
	fmt.Printf("Baseline: burnt %d, reach %.2f at step %d, peak burning %d, last burning step %d/%d\n",
		baseline.Burnt, baseline.MaxDistance, baseline.MaxDistanceStep, baseline.PeakBurning, baseline.LastBurningStep, baseline.StepsSimulated)

	fmt.Printf("Sweeping %d combinations (%d workers, %d steps)\n", len(flashPoints)*len(exposures), *workers, *steps)
	start := time.Now()
	records, err := elements.FireSpreadSweep(context.Background(), cfg, flashPoints, exposures, *steps, *workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sweep:", err)
		os.Exit(1)
	}

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(records)), time.Since(start).Round(time.Millisecond))
	for i, rec := range records[:min(*top, len(records))] {
		r := rec.Result
		fmt.Printf("%2d) flash=%d exposure=%d burnt=%d reach=%.2f step=%d peak=%d last=%d/%d\n",
			i+1, rec.GrassFlashPoint, rec.FireExposureHeat, r.Burnt, r.MaxDistance, r.MaxDistanceStep, r.PeakBurning, r.LastBurningStep, r.StepsSimulated)
	}
}
