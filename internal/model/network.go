package model

import (
	"errors"
	"fmt"
	"math"
)

// Bus identifies a network node.
type Bus int

// Generator defines the dispatchable unit attached to a bus.
// Units:
//   - PminMW/PmaxMW: MW
//   - QminMVAr/QmaxMVAr: MVAr
//   - CostB: $/MWh linear coefficient; also scales the quadratic and fixed terms
//     of the cost curve (see opf.Build).
type Generator struct {
	Bus      Bus
	PminMW   float64
	PmaxMW   float64
	QminMVAr float64
	QmaxMVAr float64
	CostB    float64
}

// Demand is the fixed load at a bus. A bus without a Demand entry gets no
// nodal balance constraint at all; that exclusion is deliberate.
type Demand struct {
	PdMW   float64
	QdMVAr float64
}

// Line is a branch between two buses. Lines are declared in one direction
// only and the model treats that direction as significant: flow variables
// and balance sums are indexed by ordered pairs, and the reverse pair of a
// declared line is not connected. R, X and B are per-unit on the system base.
type Line struct {
	From    Bus
	To      Bus
	R       float64
	X       float64
	B       float64 // shunt susceptance; carried in the data, not used by the flow equations
	LimitMW float64
}

// Impedance returns the impedance magnitude z = sqrt(r^2 + x^2).
func (l Line) Impedance() float64 {
	return math.Sqrt(l.R*l.R + l.X*l.X)
}

// ImpedanceAngle returns theta = atan(x/r), or pi/2 for a purely reactive line.
func (l Line) ImpedanceAngle() float64 {
	if l.R == 0 {
		return math.Pi / 2
	}
	return math.Atan(l.X / l.R)
}

// Susceptance returns bij = 1/x.
func (l Line) Susceptance() float64 {
	return 1 / l.X
}

// Case is a complete, immutable network description. Generators and Demands
// are keyed by bus; iteration order is always driven by the Buses slice so
// model construction stays deterministic.
type Case struct {
	Name       string
	SbaseMW    float64
	Buses      []Bus
	Slack      Bus
	Generators map[Bus]Generator
	Demands    map[Bus]Demand
	Lines      []Line
}

// HasLine reports whether an explicit line entry exists for the ordered
// pair (from, to). This is the connectivity indicator cx(i,j); it is
// asymmetric whenever a pair is declared in only one direction.
func (c *Case) HasLine(from, to Bus) bool {
	_, ok := c.Line(from, to)
	return ok
}

// Line returns the declared line for the ordered pair (from, to).
func (c *Case) Line(from, to Bus) (Line, bool) {
	for _, l := range c.Lines {
		if l.From == from && l.To == to {
			return l, true
		}
	}
	return Line{}, false
}

// HasBus reports whether b is in the declared bus set.
func (c *Case) HasBus(b Bus) bool {
	for _, bus := range c.Buses {
		if bus == b {
			return true
		}
	}
	return false
}

// Validate fails fast on malformed tables so the builder never produces a
// silently infeasible model.
func (c *Case) Validate() error {
	if c == nil {
		return errors.New("case is nil")
	}
	if c.SbaseMW <= 0 {
		return errors.New("SbaseMW must be > 0")
	}
	if len(c.Buses) == 0 {
		return errors.New("bus set is empty")
	}
	seen := make(map[Bus]bool, len(c.Buses))
	for _, b := range c.Buses {
		if seen[b] {
			return fmt.Errorf("duplicate bus %d", b)
		}
		seen[b] = true
	}
	if !c.HasBus(c.Slack) {
		return fmt.Errorf("slack bus %d is not in the bus set", c.Slack)
	}
	for b, g := range c.Generators {
		if b != g.Bus {
			return fmt.Errorf("generator keyed at bus %d declares bus %d", b, g.Bus)
		}
		if !c.HasBus(b) {
			return fmt.Errorf("generator at unknown bus %d", b)
		}
		if g.PminMW > g.PmaxMW {
			return fmt.Errorf("generator at bus %d: pmin %.3f > pmax %.3f", b, g.PminMW, g.PmaxMW)
		}
		if g.QminMVAr > g.QmaxMVAr {
			return fmt.Errorf("generator at bus %d: Qmin %.3f > Qmax %.3f", b, g.QminMVAr, g.QmaxMVAr)
		}
	}
	for b := range c.Demands {
		if !c.HasBus(b) {
			return fmt.Errorf("demand at unknown bus %d", b)
		}
	}
	pairs := make(map[[2]Bus]bool, len(c.Lines))
	for _, l := range c.Lines {
		if !c.HasBus(l.From) || !c.HasBus(l.To) {
			return fmt.Errorf("line (%d,%d) references a bus outside the bus set", l.From, l.To)
		}
		if l.From == l.To {
			return fmt.Errorf("line (%d,%d) connects a bus to itself", l.From, l.To)
		}
		key := [2]Bus{l.From, l.To}
		if pairs[key] {
			return fmt.Errorf("duplicate line entry (%d,%d)", l.From, l.To)
		}
		pairs[key] = true
		if l.X <= 0 {
			return fmt.Errorf("line (%d,%d): reactance must be > 0", l.From, l.To)
		}
		if l.R < 0 {
			return fmt.Errorf("line (%d,%d): resistance must be >= 0", l.From, l.To)
		}
		if l.LimitMW <= 0 {
			return fmt.Errorf("line (%d,%d): thermal limit must be > 0", l.From, l.To)
		}
	}
	return nil
}
