package elemental

// Decay applies the fast per-tick residual decay to c: heat, moisture and
// pressure drift back toward zero, and smoke clears once its pressure is
// spent. Standing water keeps its moisture.
func (t Tuning) Decay(c Cell) Cell {
	c.Heat = subSat(c.Heat, t.HeatDecay)
	if c.Liquid != LiquidWater {
		c.Wet = subSat(c.Wet, t.WetDecay)
	}
	c.Pressure = subSat(c.Pressure, t.PressureDecay)
	if c.Gas == GasSmoke && c.Pressure == 0 {
		c.Gas = GasNone
	}
	return c
}

// Disturbed reports whether c is being acted upon strongly enough to reset
// its calm counter.
func (t Tuning) Disturbed(c Cell) bool {
	return c.IsBurning() || c.Heat >= t.DisturbHeat || c.Pressure > t.PressureDecay
}

// Settle advances or resets the calm counter.
func (t Tuning) Settle(c Cell) Cell {
	if t.Disturbed(c) {
		c.Calm = 0
	} else if c.Calm < ^uint16(0) {
		c.Calm++
	}
	return c
}

// Reclaim is the slow pass: burnt ground that has been left alone long
// enough returns to earth. Moist ground recovers four times sooner.
func (t Tuning) Reclaim(c Cell) Cell {
	if c.Solid != SolidAsh && c.Solid != SolidRubble {
		return c
	}
	need := t.ReclaimAfter
	if c.Wet > t.ReclaimWetAbove {
		need /= 4
	}
	if c.Calm < need {
		return c
	}
	c.Solid = SolidEarth
	c.Calm = 0
	return c
}

// ApplyFullDecayCycle runs the fast decay, updates the calm counter and, when
// slow is set, the reclaim pass.
func (t Tuning) ApplyFullDecayCycle(c Cell, slow bool) Cell {
	c = t.Settle(t.Decay(c))
	if slow {
		c = t.Reclaim(c)
	}
	return c
}
