package elemental

import (
	"errors"
	"fmt"
)

// ErrInvalidBlast is returned for explosions with a negative radius.
var ErrInvalidBlast = errors.New("elemental: invalid blast")

// Blast is a pending explosive displacement event.
type Blast struct {
	Origin    Point
	Intensity uint8
	Radius    int
}

// Deposit records the energy one cell received from a blast.
type Deposit struct {
	Point
	Hop       int
	Intensity uint8
}

// BlastReport summarises an applied blast.
type BlastReport struct {
	Origin    Point
	Intensity uint8
	MaxHop    int
	Deposits  []Deposit
}

// Cells returns how many cells the blast touched.
func (r BlastReport) Cells() int { return len(r.Deposits) }

// hopIntensities lists the intensity delivered at each hop, stopping at the
// radius or once the next value would fall below the floor. Values strictly
// decrease.
func (t Tuning) hopIntensities(intensity uint8, radius int) []uint8 {
	levels := []uint8{intensity}
	cur := intensity
	for hop := 1; hop <= radius; hop++ {
		cur = uint8(int(cur) * (100 - t.HopDecayPercent) / 100)
		if cur < t.IntensityFloor {
			break
		}
		levels = append(levels, cur)
	}
	return levels
}

type blastNode struct {
	x, y, hop int
}

// displace runs a bounded breadth-first flood over Moore adjacency from the
// blast origin. visited is scratch space sized to buf and is left cleared on
// return. Every cell is visited at most once.
func (t Tuning) displace(buf []Cell, w, h int, b Blast, visited []bool) BlastReport {
	report := BlastReport{Origin: b.Origin, Intensity: b.Intensity}
	if b.Intensity == 0 {
		return report
	}
	levels := t.hopIntensities(b.Intensity, b.Radius)

	start := b.Origin.Y*w + b.Origin.X
	visited[start] = true
	queue := []blastNode{{b.Origin.X, b.Origin.Y, 0}}
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		i := n.y*w + n.x
		level := levels[n.hop]
		buf[i] = t.deposit(buf[i], level)
		report.Deposits = append(report.Deposits, Deposit{Point: Point{n.x, n.y}, Hop: n.hop, Intensity: level})
		report.MaxHop = max(report.MaxHop, n.hop)

		if n.hop+1 >= len(levels) {
			continue
		}
		for _, o := range MooreOffsets {
			nx, ny := n.x+o.X, n.y+o.Y
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			j := ny*w + nx
			if visited[j] {
				continue
			}
			visited[j] = true
			queue = append(queue, blastNode{nx, ny, n.hop + 1})
		}
	}

	buf[start].Pressure = 0
	for _, d := range report.Deposits {
		visited[d.Y*w+d.X] = false
	}
	return report
}

// deposit applies one hop's energy to a cell. Structural solids stay where
// they are; stone may shatter in place. Ash hit hard enough is blown away:
// it is removed from the cell, not pushed into a neighbour.
func (t Tuning) deposit(c Cell, intensity uint8) Cell {
	c.Heat = addSat(c.Heat, intensity)
	c.Pressure = addSat(c.Pressure, intensity/2)
	c.Calm = 0

	if intensity >= t.ShatterIntensity && c.Solid == SolidStone {
		c.Solid = SolidRubble
	}
	if intensity >= t.AshScatterIntensity && c.Solid == SolidAsh {
		c.Solid = SolidNone
	}
	if intensity >= t.FireIntensity {
		if lit, ok := t.Ignite(c); ok {
			return lit
		}
	}
	if c.Gas == GasNone {
		c.Gas = GasSmoke
	}
	return c
}

// detectBlasts scans start-of-tick cells for combustion pressure high enough
// to explode.
func (t Tuning) detectBlasts(front []Cell, w int) []Blast {
	var out []Blast
	for i, c := range front {
		if c.Pressure <= t.ExplosionPressure {
			continue
		}
		if !c.IsBurning() && c.Heat < t.ExplosionHeat {
			continue
		}
		out = append(out, Blast{
			Origin:    Point{X: i % w, Y: i / w},
			Intensity: c.Pressure,
			Radius:    t.BlastRadius,
		})
	}
	return out
}

func (g *Grid) checkBlast(b Blast) error {
	if err := g.checkBounds(b.Origin.X, b.Origin.Y); err != nil {
		return err
	}
	if b.Radius < 0 {
		return fmt.Errorf("%w: radius %d", ErrInvalidBlast, b.Radius)
	}
	return nil
}
