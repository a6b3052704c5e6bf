package elemental

import (
	"errors"
	"fmt"
)

// ErrInvalidTuning is returned by Tuning.Validate.
var ErrInvalidTuning = errors.New("elemental: invalid tuning")

// minHysteresisGap is the smallest allowed distance between the evaporation
// and condensation thresholds.
const minHysteresisGap = 20

// Tuning holds every threshold and rate the engine uses. Values are plain
// data so hosts can load them from configuration files.
type Tuning struct {
	Conductivity   uint8 `yaml:"conductivity"`
	MoistureSpread uint8 `yaml:"moisture_spread"`

	FireExposureHeat    uint8 `yaml:"fire_exposure_heat"`
	BurnHeat            uint8 `yaml:"burn_heat"`
	BurnPressure        uint8 `yaml:"burn_pressure"`
	OilBurnPressure     uint8 `yaml:"oil_burn_pressure"`
	ExtinguishWet       uint8 `yaml:"extinguish_wet"`
	ResidualHeatPercent int   `yaml:"residual_heat_percent"`

	GrassFlashPoint uint8 `yaml:"grass_flash_point"`
	WoodFlashPoint  uint8 `yaml:"wood_flash_point"`
	StoneFlashPoint uint8 `yaml:"stone_flash_point"`
	OilFlashPoint   uint8 `yaml:"oil_flash_point"`

	GrassFuel uint8 `yaml:"grass_fuel"`
	WoodFuel  uint8 `yaml:"wood_fuel"`
	StoneFuel uint8 `yaml:"stone_fuel"`
	OilFuel   uint8 `yaml:"oil_fuel"`
	FlashFuel uint8 `yaml:"flash_fuel"`

	EvaporateAbove  uint8 `yaml:"evaporate_above"`
	CondenseBelow   uint8 `yaml:"condense_below"`
	EvaporationCost uint8 `yaml:"evaporation_cost"`
	MudAbove        uint8 `yaml:"mud_above"`
	MudDryBelow     uint8 `yaml:"mud_dry_below"`

	HeatDecay       uint8  `yaml:"heat_decay"`
	WetDecay        uint8  `yaml:"wet_decay"`
	PressureDecay   uint8  `yaml:"pressure_decay"`
	SmokePressure   uint8  `yaml:"smoke_pressure"`
	DisturbHeat     uint8  `yaml:"disturb_heat"`
	ReclaimCadence  uint64 `yaml:"reclaim_cadence"`
	ReclaimAfter    uint16 `yaml:"reclaim_after"`
	ReclaimWetAbove uint8  `yaml:"reclaim_wet_above"`

	WindCadence      uint64 `yaml:"wind_cadence"`
	WindRegenCadence uint64 `yaml:"wind_regen_cadence"`
	WindMoveAbove    uint8  `yaml:"wind_move_above"`
	AshLiftAbove     uint8  `yaml:"ash_lift_above"`
	GustAbove        uint8  `yaml:"gust_above"`
	GustBleed        uint8  `yaml:"gust_bleed"`

	ExplosionPressure   uint8 `yaml:"explosion_pressure"`
	ExplosionHeat       uint8 `yaml:"explosion_heat"`
	HopDecayPercent     int   `yaml:"hop_decay_percent"`
	IntensityFloor      uint8 `yaml:"intensity_floor"`
	FireIntensity       uint8 `yaml:"fire_intensity"`
	ShatterIntensity    uint8 `yaml:"shatter_intensity"`
	AshScatterIntensity uint8 `yaml:"ash_scatter_intensity"`
	BlastRadius         int   `yaml:"blast_radius"`
}

// DefaultTuning returns the stock rule set.
func DefaultTuning() Tuning {
	return Tuning{
		Conductivity:   64,
		MoistureSpread: 48,

		FireExposureHeat:    12,
		BurnHeat:            16,
		BurnPressure:        3,
		OilBurnPressure:     9,
		ExtinguishWet:       200,
		ResidualHeatPercent: 60,

		GrassFlashPoint: 120,
		WoodFlashPoint:  180,
		StoneFlashPoint: 250,
		OilFlashPoint:   90,

		GrassFuel: 24,
		WoodFuel:  96,
		StoneFuel: 6,
		OilFuel:   48,
		FlashFuel: 4,

		EvaporateAbove:  200,
		CondenseBelow:   180,
		EvaporationCost: 8,
		MudAbove:        160,
		MudDryBelow:     96,

		HeatDecay:       1,
		WetDecay:        1,
		PressureDecay:   1,
		SmokePressure:   48,
		DisturbHeat:     48,
		ReclaimCadence:  64,
		ReclaimAfter:    1920,
		ReclaimWetAbove: 128,

		WindCadence:      4,
		WindRegenCadence: 256,
		WindMoveAbove:    48,
		AshLiftAbove:     128,
		GustAbove:        200,
		GustBleed:        6,

		ExplosionPressure:   200,
		ExplosionHeat:       230,
		HopDecayPercent:     20,
		IntensityFloor:      8,
		FireIntensity:       160,
		ShatterIntensity:    200,
		AshScatterIntensity: 96,
		BlastRadius:         4,
	}
}

// Validate checks the relationships between thresholds.
func (t Tuning) Validate() error {
	if t.EvaporateAbove < t.CondenseBelow || t.EvaporateAbove-t.CondenseBelow < minHysteresisGap {
		return fmt.Errorf("%w: evaporate_above (%d) must exceed condense_below (%d) by at least %d",
			ErrInvalidTuning, t.EvaporateAbove, t.CondenseBelow, minHysteresisGap)
	}
	if t.EvaporationCost >= t.EvaporateAbove-t.CondenseBelow {
		return fmt.Errorf("%w: evaporation_cost (%d) must be smaller than the phase gap",
			ErrInvalidTuning, t.EvaporationCost)
	}
	if t.MudAbove <= t.MudDryBelow {
		return fmt.Errorf("%w: mud_above (%d) must exceed mud_dry_below (%d)",
			ErrInvalidTuning, t.MudAbove, t.MudDryBelow)
	}
	if t.HopDecayPercent < 1 || t.HopDecayPercent > 99 {
		return fmt.Errorf("%w: hop_decay_percent %d outside 1..99", ErrInvalidTuning, t.HopDecayPercent)
	}
	if t.IntensityFloor == 0 {
		return fmt.Errorf("%w: intensity_floor must be positive", ErrInvalidTuning)
	}
	if t.ResidualHeatPercent < 0 || t.ResidualHeatPercent > 100 {
		return fmt.Errorf("%w: residual_heat_percent %d outside 0..100", ErrInvalidTuning, t.ResidualHeatPercent)
	}
	if t.ReclaimCadence == 0 || t.WindCadence == 0 || t.WindRegenCadence == 0 {
		return fmt.Errorf("%w: cadences must be positive", ErrInvalidTuning)
	}
	if t.BlastRadius < 0 {
		return fmt.Errorf("%w: blast_radius must not be negative", ErrInvalidTuning)
	}
	return nil
}

// FlashPoint returns the lowest heat at which the cell's fuel ignites and
// whether it holds any fuel at all.
func (t Tuning) FlashPoint(c Cell) (uint8, bool) {
	point, ok := uint8(255), false
	consider := func(p uint8) {
		if !ok || p < point {
			point = p
		}
		ok = true
	}
	switch c.Solid {
	case SolidGrass:
		consider(t.GrassFlashPoint)
	case SolidWood:
		consider(t.WoodFlashPoint)
	case SolidStone:
		consider(t.StoneFlashPoint)
	}
	if c.Liquid == LiquidOil {
		consider(t.OilFlashPoint)
	}
	return point, ok
}

// FuelFor returns the burn time a fire started in c receives. Oil adds to
// whatever the solid layer provides.
func (t Tuning) FuelFor(c Cell) uint8 {
	var fuel uint8
	switch c.Solid {
	case SolidGrass:
		fuel = t.GrassFuel
	case SolidWood:
		fuel = t.WoodFuel
	case SolidStone:
		fuel = t.StoneFuel
	}
	if c.Liquid == LiquidOil {
		fuel = addSat(fuel, t.OilFuel)
	}
	return fuel
}
