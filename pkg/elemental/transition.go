package elemental

// Transition applies threshold-driven state changes. Conditions are read
// from front, the cell as it was at the start of the tick; changes are made
// to next, and only while the affected layer is still present there, so a
// transition never contradicts what the reaction step already decided.
func (t Tuning) Transition(front, next Cell) Cell {
	if front.IsBurning() && front.Fuel == 0 && next.IsBurning() {
		next = t.burnOut(next)
	} else {
		next = t.gradualIgnition(front, next)
	}

	if front.Liquid == LiquidWater && front.Heat > t.EvaporateAbove && next.Liquid == LiquidWater {
		next.Liquid = LiquidNone
		if next.Gas != GasFire {
			next.Gas = GasSteam
		}
		next.Heat = subSat(next.Heat, t.EvaporationCost)
		next.Wet = 0
	}

	if front.Gas == GasSteam && front.Heat < t.CondenseBelow && next.Gas == GasSteam {
		next.Gas = GasNone
		if next.Liquid == LiquidNone {
			next.Liquid = LiquidWater
			next.Wet = 255
		} else {
			next.Wet = addSat(next.Wet, 128)
		}
	}

	switch {
	case front.Solid == SolidEarth && front.Wet > t.MudAbove && next.Solid == SolidEarth:
		next.Solid = SolidMud
	case front.Solid == SolidMud && front.Wet < t.MudDryBelow && next.Solid == SolidMud:
		next.Solid = SolidEarth
	}
	return next
}

func (t Tuning) gradualIgnition(front, next Cell) Cell {
	if front.IsBurning() || !front.CanIgnite() || !next.CanIgnite() || next.IsBurning() {
		return next
	}
	point, ok := t.FlashPoint(front)
	if !ok || front.Heat < point {
		return next
	}
	fuel := t.FuelFor(next)
	if fuel == 0 {
		return next
	}
	next.Gas = GasFire
	next.Fuel = fuel
	next.Calm = 0
	return next
}

// burnOut ends combustion: the flame becomes smoke and the fuel leaves its
// residue behind.
func (t Tuning) burnOut(c Cell) Cell {
	c.Gas = GasSmoke
	c.Fuel = 0
	switch c.Solid {
	case SolidGrass, SolidWood:
		c.Solid = SolidAsh
	case SolidStone:
		c.Solid = SolidRubble
	}
	if c.Liquid == LiquidOil {
		c.Liquid = LiquidNone
	}
	c.Heat = scale(c.Heat, t.ResidualHeatPercent)
	if c.Pressure < t.SmokePressure {
		c.Pressure = t.SmokePressure
	}
	return c
}

// Ignite performs violent ignition: the cell bursts into flame at full heat
// regardless of its flash point. It reports false, leaving c unchanged, when
// the cell cannot ignite.
func (t Tuning) Ignite(c Cell) (Cell, bool) {
	if !c.CanIgnite() {
		return c, false
	}
	if !c.IsBurning() {
		fuel := t.FuelFor(c)
		if fuel == 0 {
			fuel = t.FlashFuel
		}
		c.Fuel = fuel
	}
	c.Gas = GasFire
	c.Heat = 255
	c.Calm = 0
	return c, true
}
