package elemental

// SolidKind identifies the occupant of a cell's solid layer. The zero value
// means the layer is empty.
type SolidKind uint8

const (
	SolidNone SolidKind = iota
	SolidEarth
	SolidStone
	SolidMud
	SolidAsh
	SolidRubble
	SolidGrass
	SolidWood
	solidKinds
)

// LiquidKind identifies the occupant of a cell's liquid layer.
type LiquidKind uint8

const (
	LiquidNone LiquidKind = iota
	LiquidWater
	LiquidOil
	liquidKinds
)

// GasKind identifies the occupant of a cell's gas layer.
type GasKind uint8

const (
	GasNone GasKind = iota
	GasSteam
	GasSmoke
	GasFire
	gasKinds
)

var solidNames = [...]string{"none", "earth", "stone", "mud", "ash", "rubble", "grass", "wood"}
var liquidNames = [...]string{"none", "water", "oil"}
var gasNames = [...]string{"none", "steam", "smoke", "fire"}

func (k SolidKind) String() string {
	if k >= solidKinds {
		return "invalid"
	}
	return solidNames[k]
}

func (k LiquidKind) String() string {
	if k >= liquidKinds {
		return "invalid"
	}
	return liquidNames[k]
}

func (k GasKind) String() string {
	if k >= gasKinds {
		return "invalid"
	}
	return gasNames[k]
}

// Valid reports whether k is a known solid kind.
func (k SolidKind) Valid() bool { return k < solidKinds }

// Valid reports whether k is a known liquid kind.
func (k LiquidKind) Valid() bool { return k < liquidKinds }

// Valid reports whether k is a known gas kind.
func (k GasKind) Valid() bool { return k < gasKinds }

// Anchored reports whether the solid is structural and must never be moved
// by wind or explosions.
func (k SolidKind) Anchored() bool {
	switch k {
	case SolidEarth, SolidStone, SolidMud, SolidRubble:
		return true
	}
	return false
}

// Cell is the per-tile state: three material layers plus saturating scalars.
// The zero value is empty, cold, dry air.
type Cell struct {
	Solid  SolidKind
	Liquid LiquidKind
	Gas    GasKind

	Heat     uint8
	Wet      uint8
	Pressure uint8

	// Fuel is the remaining burn time of a Fire layer, in ticks.
	Fuel uint8
	// Calm counts ticks since the cell was last disturbed.
	Calm uint16
}

// IsWaterlogged reports whether the cell is fully saturated with moisture.
func (c Cell) IsWaterlogged() bool { return c.Wet == 255 }

// CanIgnite reports whether fire may take hold. Waterlogged cells and cells
// holding steam are immune.
func (c Cell) CanIgnite() bool { return !c.IsWaterlogged() && c.Gas != GasSteam }

// IsBurning reports whether the gas layer holds fire.
func (c Cell) IsBurning() bool { return c.Gas == GasFire }

// IsAir reports whether every layer is empty.
func (c Cell) IsAir() bool {
	return c.Solid == SolidNone && c.Liquid == LiquidNone && c.Gas == GasNone
}

// Anchored reports whether the cell's solid layer is structural.
func (c Cell) Anchored() bool { return c.Solid.Anchored() }

// Valid reports whether every layer holds a known kind.
func (c Cell) Valid() bool {
	return c.Solid.Valid() && c.Liquid.Valid() && c.Gas.Valid()
}

// Material is a layer-agnostic identifier of what a cell shows.
type Material uint8

const (
	MaterialNone Material = iota
	MaterialEarth
	MaterialStone
	MaterialMud
	MaterialAsh
	MaterialRubble
	MaterialGrass
	MaterialWood
	MaterialWater
	MaterialOil
	MaterialSteam
	MaterialSmoke
	MaterialFire
	// MaterialCount is the number of materials, for sizing lookup tables.
	MaterialCount
)

var materialNames = [...]string{
	"air", "earth", "stone", "mud", "ash", "rubble", "grass", "wood",
	"water", "oil", "steam", "smoke", "fire",
}

func (m Material) String() string {
	if m >= MaterialCount {
		return "invalid"
	}
	return materialNames[m]
}

// VisibleMaterial returns the topmost occupant: gas over liquid over solid.
func (c Cell) VisibleMaterial() Material {
	switch {
	case c.Gas != GasNone && c.Gas.Valid():
		return MaterialSteam + Material(c.Gas-GasSteam)
	case c.Liquid != LiquidNone && c.Liquid.Valid():
		return MaterialWater + Material(c.Liquid-LiquidWater)
	case c.Solid != SolidNone && c.Solid.Valid():
		return MaterialEarth + Material(c.Solid-SolidEarth)
	}
	return MaterialNone
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func subSat(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}

// clampU8 narrows an int into the scalar range.
func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func scale(v uint8, percent int) uint8 {
	return clampU8(int(v) * percent / 100)
}
