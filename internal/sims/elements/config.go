package elements

import (
	"strconv"

	"elemental-ca/internal/config"
	"elemental-ca/pkg/elemental"
)

// Params holds the world-generation knobs for the elements sim.
type Params struct {
	StoneChance float64

	GrassPatchCount     int
	GrassPatchRadiusMin int
	GrassPatchRadiusMax int
	GrassPatchDensity   float64

	WoodGroveCount  int
	WoodGroveRadius int

	PondCount     int
	PondRadiusMin int
	PondRadiusMax int

	OilSlickCount  int
	OilSlickRadius int

	WindStrength   int
	WindVariance   int
	WindNoiseScale float64
}

// Config controls the elements world dimensions, engine options and rules.
type Config struct {
	Width  int
	Height int

	Seed int64

	Workers int
	Strict  bool

	Params Params
	Tuning elemental.Tuning
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	wind := elemental.DefaultWindNoise(0)
	return Config{
		Width:   160,
		Height:  96,
		Seed:    1337,
		Workers: 4,
		Strict:  true,
		Params: Params{
			StoneChance:         0.04,
			GrassPatchCount:     18,
			GrassPatchRadiusMin: 4,
			GrassPatchRadiusMax: 11,
			GrassPatchDensity:   0.85,
			WoodGroveCount:      6,
			WoodGroveRadius:     4,
			PondCount:           4,
			PondRadiusMin:       2,
			PondRadiusMax:       6,
			OilSlickCount:       2,
			OilSlickRadius:      3,
			WindStrength:        int(wind.Strength),
			WindVariance:        int(wind.Variance),
			WindNoiseScale:      wind.Scale,
		},
		Tuning: elemental.DefaultTuning(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	p := &c.Params
	setInt(cfg, "w", 1, &c.Width)
	setInt(cfg, "h", 1, &c.Height)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	setInt(cfg, "workers", 1, &c.Workers)
	if v, ok := cfg["strict"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Strict = parsed
		}
	}

	setFloat(cfg, "stone_chance", &p.StoneChance)
	setInt(cfg, "grass_patch_count", 0, &p.GrassPatchCount)
	setInt(cfg, "grass_patch_radius_min", 0, &p.GrassPatchRadiusMin)
	setInt(cfg, "grass_patch_radius_max", 0, &p.GrassPatchRadiusMax)
	if p.GrassPatchRadiusMax < p.GrassPatchRadiusMin {
		p.GrassPatchRadiusMax = p.GrassPatchRadiusMin
	}
	setFloat(cfg, "grass_patch_density", &p.GrassPatchDensity)
	setInt(cfg, "wood_grove_count", 0, &p.WoodGroveCount)
	setInt(cfg, "wood_grove_radius", 0, &p.WoodGroveRadius)
	setInt(cfg, "pond_count", 0, &p.PondCount)
	setInt(cfg, "pond_radius_min", 0, &p.PondRadiusMin)
	setInt(cfg, "pond_radius_max", 0, &p.PondRadiusMax)
	if p.PondRadiusMax < p.PondRadiusMin {
		p.PondRadiusMax = p.PondRadiusMin
	}
	setInt(cfg, "oil_slick_count", 0, &p.OilSlickCount)
	setInt(cfg, "oil_slick_radius", 0, &p.OilSlickRadius)
	setInt(cfg, "wind_strength", 0, &p.WindStrength)
	setInt(cfg, "wind_variance", 0, &p.WindVariance)
	setFloat(cfg, "wind_noise_scale", &p.WindNoiseScale)

	t := c.Tuning
	for _, knob := range tuningKnobs {
		v, ok := cfg[knob.key]
		if !ok {
			continue
		}
		if parsed, err := strconv.Atoi(v); err == nil {
			knob.set(&t, parsed)
		}
	}
	if t.Validate() == nil {
		c.Tuning = t
	}
	return c
}

// FromFile maps a loaded configuration file onto the sim config.
func FromFile(fc *config.Config) Config {
	c := DefaultConfig()
	if fc == nil {
		return c
	}
	c.Width = fc.World.Width
	c.Height = fc.World.Height
	c.Seed = fc.World.Seed
	c.Workers = fc.World.Workers
	c.Strict = fc.World.Strict
	c.Params.WindStrength = int(fc.Wind.Strength)
	c.Params.WindVariance = int(fc.Wind.Variance)
	c.Params.WindNoiseScale = fc.Wind.Scale
	c.Tuning = fc.Tuning
	return c
}

func setInt(cfg map[string]string, key string, min int, dst *int) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
		*dst = parsed
	}
}

func setFloat(cfg map[string]string, key string, dst *float64) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
		*dst = parsed
	}
}
