package elemental

// React computes the scalar exchange for one cell against its Moore
// neighbourhood: heat and moisture diffusion, fire exposure, burning and
// extinguishing. It reads start-of-tick values only and returns the
// next-state cell.
func (t Tuning) React(self Cell, n [8]Cell) Cell {
	out := self

	var heatSum, wetSum, burning int
	soaked := false
	for _, nb := range n {
		heatSum += int(nb.Heat)
		wetSum += int(nb.Wet)
		if nb.IsBurning() {
			burning++
		}
		if nb.Wet >= t.ExtinguishWet || nb.Liquid == LiquidWater {
			soaked = true
		}
	}

	out.Heat = diffuse(self.Heat, heatSum, t.Conductivity)
	if self.Liquid == LiquidWater {
		out.Wet = 255
	} else {
		out.Wet = diffuse(self.Wet, wetSum, t.MoistureSpread)
	}

	if self.CanIgnite() && burning > 0 {
		out.Heat = addSat(out.Heat, clampU8(burning*int(t.FireExposureHeat)))
	}

	if !self.IsBurning() {
		return out
	}
	if soaked || out.Wet >= t.ExtinguishWet {
		out.Gas = GasSteam
		out.Heat = scale(out.Heat, t.ResidualHeatPercent)
		out.Fuel = 0
		return out
	}
	out.Heat = addSat(out.Heat, t.BurnHeat)
	out.Fuel = subSat(out.Fuel, 1)
	if self.Liquid == LiquidOil {
		out.Pressure = addSat(out.Pressure, t.OilBurnPressure)
	} else {
		out.Pressure = addSat(out.Pressure, t.BurnPressure)
	}
	return out
}

// diffuse moves v toward the mean of eight neighbours by rate/256 of the gap.
func diffuse(v uint8, sum int, rate uint8) uint8 {
	gap := sum/8 - int(v)
	return clampU8(int(v) + gap*int(rate)/256)
}
