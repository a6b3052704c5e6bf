package elements

import (
	"elemental-ca/internal/core"
	"elemental-ca/pkg/elemental"
)

// tuningKnob exposes one engine threshold to flags and the HUD.
type tuningKnob struct {
	group string
	key   string
	label string
	max   int
	hud   bool

	get func(elemental.Tuning) int
	set func(*elemental.Tuning, int)
}

func u8Knob(group, key, label string, hud bool, field func(*elemental.Tuning) *uint8) tuningKnob {
	return tuningKnob{
		group: group, key: key, label: label, max: 255, hud: hud,
		get: func(t elemental.Tuning) int { return int(*field(&t)) },
		set: func(t *elemental.Tuning, v int) { *field(t) = uint8(min(max(v, 0), 255)) },
	}
}

func u16Knob(group, key, label string, hud bool, field func(*elemental.Tuning) *uint16) tuningKnob {
	return tuningKnob{
		group: group, key: key, label: label, max: 65535, hud: hud,
		get: func(t elemental.Tuning) int { return int(*field(&t)) },
		set: func(t *elemental.Tuning, v int) { *field(t) = uint16(min(max(v, 0), 65535)) },
	}
}

func cadenceKnob(group, key, label string, hud bool, field func(*elemental.Tuning) *uint64) tuningKnob {
	return tuningKnob{
		group: group, key: key, label: label, max: 4096, hud: hud,
		get: func(t elemental.Tuning) int { return int(*field(&t)) },
		set: func(t *elemental.Tuning, v int) { *field(t) = uint64(min(max(v, 1), 4096)) },
	}
}

func intKnob(group, key, label string, limit int, hud bool, field func(*elemental.Tuning) *int) tuningKnob {
	return tuningKnob{
		group: group, key: key, label: label, max: limit, hud: hud,
		get: func(t elemental.Tuning) int { return *field(&t) },
		set: func(t *elemental.Tuning, v int) { *field(t) = min(max(v, 0), limit) },
	}
}

var tuningKnobs = []tuningKnob{
	u8Knob("Diffusion", "conductivity", "Heat conductivity", true, func(t *elemental.Tuning) *uint8 { return &t.Conductivity }),
	u8Knob("Diffusion", "moisture_spread", "Moisture spread", false, func(t *elemental.Tuning) *uint8 { return &t.MoistureSpread }),

	u8Knob("Fire", "grass_flash_point", "Grass flash point", true, func(t *elemental.Tuning) *uint8 { return &t.GrassFlashPoint }),
	u8Knob("Fire", "wood_flash_point", "Wood flash point", true, func(t *elemental.Tuning) *uint8 { return &t.WoodFlashPoint }),
	u8Knob("Fire", "stone_flash_point", "Stone flash point", false, func(t *elemental.Tuning) *uint8 { return &t.StoneFlashPoint }),
	u8Knob("Fire", "oil_flash_point", "Oil flash point", false, func(t *elemental.Tuning) *uint8 { return &t.OilFlashPoint }),
	u8Knob("Fire", "fire_exposure_heat", "Fire exposure heat", true, func(t *elemental.Tuning) *uint8 { return &t.FireExposureHeat }),
	u8Knob("Fire", "burn_heat", "Burn heat", false, func(t *elemental.Tuning) *uint8 { return &t.BurnHeat }),
	u8Knob("Fire", "extinguish_wet", "Extinguish moisture", false, func(t *elemental.Tuning) *uint8 { return &t.ExtinguishWet }),
	u8Knob("Fire", "grass_fuel", "Grass fuel", false, func(t *elemental.Tuning) *uint8 { return &t.GrassFuel }),
	u8Knob("Fire", "wood_fuel", "Wood fuel", false, func(t *elemental.Tuning) *uint8 { return &t.WoodFuel }),

	u8Knob("Phase", "evaporate_above", "Evaporate above", true, func(t *elemental.Tuning) *uint8 { return &t.EvaporateAbove }),
	u8Knob("Phase", "condense_below", "Condense below", true, func(t *elemental.Tuning) *uint8 { return &t.CondenseBelow }),
	u8Knob("Phase", "evaporation_cost", "Evaporation cost", false, func(t *elemental.Tuning) *uint8 { return &t.EvaporationCost }),
	u8Knob("Phase", "mud_above", "Mud above", false, func(t *elemental.Tuning) *uint8 { return &t.MudAbove }),
	u8Knob("Phase", "mud_dry_below", "Mud dries below", false, func(t *elemental.Tuning) *uint8 { return &t.MudDryBelow }),

	u8Knob("Decay", "heat_decay", "Heat decay", false, func(t *elemental.Tuning) *uint8 { return &t.HeatDecay }),
	u8Knob("Decay", "wet_decay", "Moisture decay", false, func(t *elemental.Tuning) *uint8 { return &t.WetDecay }),
	u8Knob("Decay", "pressure_decay", "Pressure decay", false, func(t *elemental.Tuning) *uint8 { return &t.PressureDecay }),
	cadenceKnob("Decay", "reclaim_cadence", "Reclaim cadence", false, func(t *elemental.Tuning) *uint64 { return &t.ReclaimCadence }),
	u16Knob("Decay", "reclaim_after", "Reclaim after", true, func(t *elemental.Tuning) *uint16 { return &t.ReclaimAfter }),

	cadenceKnob("Wind", "wind_cadence", "Wind cadence", true, func(t *elemental.Tuning) *uint64 { return &t.WindCadence }),
	cadenceKnob("Wind", "wind_regen_cadence", "Wind regen cadence", false, func(t *elemental.Tuning) *uint64 { return &t.WindRegenCadence }),
	u8Knob("Wind", "wind_move_above", "Wind moves above", false, func(t *elemental.Tuning) *uint8 { return &t.WindMoveAbove }),
	u8Knob("Wind", "ash_lift_above", "Ash lifts above", false, func(t *elemental.Tuning) *uint8 { return &t.AshLiftAbove }),
	u8Knob("Wind", "gust_above", "Gust above", false, func(t *elemental.Tuning) *uint8 { return &t.GustAbove }),

	u8Knob("Blast", "explosion_pressure", "Explosion pressure", false, func(t *elemental.Tuning) *uint8 { return &t.ExplosionPressure }),
	intKnob("Blast", "hop_decay_percent", "Hop decay %", 99, true, func(t *elemental.Tuning) *int { return &t.HopDecayPercent }),
	u8Knob("Blast", "fire_intensity", "Blast fire intensity", false, func(t *elemental.Tuning) *uint8 { return &t.FireIntensity }),
	u8Knob("Blast", "shatter_intensity", "Shatter intensity", false, func(t *elemental.Tuning) *uint8 { return &t.ShatterIntensity }),
	intKnob("Blast", "blast_radius", "Blast radius", 16, true, func(t *elemental.Tuning) *int { return &t.BlastRadius }),
}

func findKnob(key string) (tuningKnob, bool) {
	for _, k := range tuningKnobs {
		if k.key == key {
			return k, true
		}
	}
	return tuningKnob{}, false
}

// Parameters reports the world, terrain and rule parameters for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.IntParam("workers", "Workers", w.cfg.Workers),
				core.BoolParam("strict", "Strict ticks", w.cfg.Strict),
				core.IntParam("tick", "Tick", int(w.engine.Tick())),
				core.IntParam("rejected", "Rejected ticks", w.rejected),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				core.FloatParam("stone_chance", "Stone chance", params.StoneChance),
				core.IntParam("grass_patch_count", "Grass patch count", params.GrassPatchCount),
				core.FloatParam("grass_patch_density", "Grass patch density", params.GrassPatchDensity),
				core.IntParam("wood_grove_count", "Wood grove count", params.WoodGroveCount),
				core.IntParam("pond_count", "Pond count", params.PondCount),
				core.IntParam("oil_slick_count", "Oil slick count", params.OilSlickCount),
			},
		},
		{
			Name: "Wind Field",
			Params: []core.Parameter{
				core.IntParam("wind_strength", "Wind strength", params.WindStrength),
				core.IntParam("wind_variance", "Wind variance", params.WindVariance),
				core.FloatParam("wind_noise_scale", "Wind noise scale", params.WindNoiseScale),
			},
		},
	}

	t := w.engine.Tuning()
	index := map[string]int{}
	for _, k := range tuningKnobs {
		i, ok := index[k.group]
		if !ok {
			i = len(groups)
			index[k.group] = i
			groups = append(groups, core.ParameterGroup{Name: k.group})
		}
		groups[i].Params = append(groups[i].Params, core.IntParam(k.key, k.label, k.get(t)))
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the rule knobs adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	var out []core.ParameterControl
	for _, k := range tuningKnobs {
		if !k.hud {
			continue
		}
		out = append(out, core.ParameterControl{
			Key:    k.key,
			Label:  k.label,
			Type:   core.ParamTypeInt,
			Step:   1,
			Min:    0,
			Max:    float64(k.max),
			HasMin: true,
			HasMax: true,
		})
	}
	return out
}

// SetIntParameter updates a rule knob. Values that would break the rule set
// (for example closing the evaporation/condensation gap) are refused.
func (w *World) SetIntParameter(key string, value int) bool {
	k, ok := findKnob(key)
	if !ok {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	t := w.engine.Tuning()
	k.set(&t, value)
	if err := w.engine.SetTuning(t); err != nil {
		w.log.Debug("parameter refused", "key", key, "value", value, "error", err)
		return false
	}
	w.cfg.Tuning = t
	return true
}
