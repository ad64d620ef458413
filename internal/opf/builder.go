package opf

import (
	"fmt"
	"math"

	"acopf/internal/model"
	"acopf/internal/nlp"
)

// Build translates a network case into a fully specified nonlinear program.
// The returned model is immutable and consumed once by the solver; the Index
// locates each variable in the solution vector afterwards.
//
// The formulation is kept exactly as in the source study, including its
// directed-connectivity quirks:
//   - flow variables exist for every ordered bus pair, but only declared
//     pairs get flow equations, and only their Pij gets the thermal bound;
//   - nodal balance at bus i sums inflows Pij[j,i] over declared (j,i) only,
//     so the reverse direction of a declared line never enters a balance;
//   - Pg/Qg at a bus with demand but no generator stay free variables;
//   - voltage magnitudes carry no bounds anywhere.
func Build(c *model.Case) (*nlp.Model, *Index, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("case %q: %w", c.Name, err)
	}

	idx := NewIndex(c)
	sbase := c.SbaseMW
	vars := make([]nlp.Variable, idx.Len())

	for _, b := range c.Buses {
		pg := nlp.Free(fmt.Sprintf("Pg[%d]", b))
		qg := nlp.Free(fmt.Sprintf("Qg[%d]", b))
		if g, ok := c.Generators[b]; ok {
			pg = nlp.Bounded(pg.Name, g.PminMW/sbase, g.PmaxMW/sbase)
			qg = nlp.Bounded(qg.Name, g.QminMVAr/sbase, g.QmaxMVAr/sbase)
		}
		vars[idx.Pg(b)] = pg
		vars[idx.Qg(b)] = qg

		vars[idx.Va(b)] = nlp.Bounded(fmt.Sprintf("Va[%d]", b), -math.Pi/2, math.Pi/2)

		// Voltage magnitudes are free; a flat 1.0 p.u. start keeps the solve
		// away from the degenerate all-zero voltage point. The slack bus
		// start is the 1.0 / 0 rad anchor, as an initial value only.
		v := nlp.Free(fmt.Sprintf("V[%d]", b))
		v.Init = 1.0
		vars[idx.V(b)] = v
	}

	for _, i := range c.Buses {
		for _, j := range c.Buses {
			pij := nlp.Free(fmt.Sprintf("Pij[%d,%d]", i, j))
			if l, ok := c.Line(i, j); ok {
				pij = nlp.Bounded(pij.Name, -l.LimitMW/sbase, l.LimitMW/sbase)
			}
			vars[idx.Pij(i, j)] = pij
			vars[idx.Qij(i, j)] = nlp.Free(fmt.Sprintf("Qij[%d,%d]", i, j))
		}
	}

	cons := make([]nlp.Constraint, 0, 2*len(c.Lines)+2*len(c.Demands))
	for _, l := range c.Lines {
		cons = append(cons, realFlowConstraint(idx, l))
	}
	for _, l := range c.Lines {
		cons = append(cons, reactiveFlowConstraint(idx, l))
	}
	for _, b := range c.Buses {
		if d, ok := c.Demands[b]; ok {
			cons = append(cons, balanceConstraint(idx, c, b, d.PdMW/sbase, true))
		}
	}
	for _, b := range c.Buses {
		if d, ok := c.Demands[b]; ok {
			cons = append(cons, balanceConstraint(idx, c, b, d.QdMVAr/sbase, false))
		}
	}

	m := &nlp.Model{
		Vars:      vars,
		EqCons:    cons,
		Objective: costObjective(idx, c),
	}
	return m, idx, nil
}

// realFlowConstraint builds
//
//	Pij - (Vi^2 cos th - Vi Vj cos(Vai - Vaj + th)) / z = 0
//
// for a declared line, with its analytic gradient.
func realFlowConstraint(idx *Index, l model.Line) nlp.Constraint {
	z, th := l.Impedance(), l.ImpedanceAngle()
	pij, vi, vj := idx.Pij(l.From, l.To), idx.V(l.From), idx.V(l.To)
	vai, vaj := idx.Va(l.From), idx.Va(l.To)
	return nlp.Constraint{
		Name: fmt.Sprintf("pflow[%d,%d]", l.From, l.To),
		F: func(x, grad []float64) float64 {
			u := x[vai] - x[vaj] + th
			cosU := math.Cos(u)
			if grad != nil {
				zeroFill(grad)
				grad[pij] = 1
				grad[vi] = -(2*x[vi]*math.Cos(th) - x[vj]*cosU) / z
				grad[vj] = x[vi] * cosU / z
				grad[vai] = -x[vi] * x[vj] * math.Sin(u) / z
				grad[vaj] = x[vi] * x[vj] * math.Sin(u) / z
			}
			return x[pij] - (x[vi]*x[vi]*math.Cos(th)-x[vi]*x[vj]*cosU)/z
		},
	}
}

// reactiveFlowConstraint is the sine counterpart of realFlowConstraint.
func reactiveFlowConstraint(idx *Index, l model.Line) nlp.Constraint {
	z, th := l.Impedance(), l.ImpedanceAngle()
	qij, vi, vj := idx.Qij(l.From, l.To), idx.V(l.From), idx.V(l.To)
	vai, vaj := idx.Va(l.From), idx.Va(l.To)
	return nlp.Constraint{
		Name: fmt.Sprintf("qflow[%d,%d]", l.From, l.To),
		F: func(x, grad []float64) float64 {
			u := x[vai] - x[vaj] + th
			sinU := math.Sin(u)
			if grad != nil {
				zeroFill(grad)
				grad[qij] = 1
				grad[vi] = -(2*x[vi]*math.Sin(th) - x[vj]*sinU) / z
				grad[vj] = x[vi] * sinU / z
				grad[vai] = x[vi] * x[vj] * math.Cos(u) / z
				grad[vaj] = -x[vi] * x[vj] * math.Cos(u) / z
			}
			return x[qij] - (x[vi]*x[vi]*math.Sin(th)-x[vi]*x[vj]*sinU)/z
		},
	}
}

// balanceConstraint builds the nodal balance at a demand bus:
//
//	Pg[i] - Pd[i] - sum over declared (j,i) of Pij[j,i] = 0
//
// (or the Qg/Qd/Qij analogue). Only buses with a demand entry get one.
func balanceConstraint(idx *Index, c *model.Case, bus model.Bus, demandPU float64, real bool) nlp.Constraint {
	gen := idx.Pg(bus)
	name := fmt.Sprintf("pbalance[%d]", bus)
	if !real {
		gen = idx.Qg(bus)
		name = fmt.Sprintf("qbalance[%d]", bus)
	}
	var inflows []int
	for _, j := range c.Buses {
		if !c.HasLine(j, bus) {
			continue
		}
		if real {
			inflows = append(inflows, idx.Pij(j, bus))
		} else {
			inflows = append(inflows, idx.Qij(j, bus))
		}
	}
	return nlp.Constraint{
		Name: name,
		F: func(x, grad []float64) float64 {
			if grad != nil {
				zeroFill(grad)
				grad[gen] = 1
				for _, pos := range inflows {
					grad[pos] = -1
				}
			}
			v := x[gen] - demandPU
			for _, pos := range inflows {
				v -= x[pos]
			}
			return v
		},
	}
}

// costObjective is the total generation cost
//
//	sum over generator buses of Pg b Sbase + Pg^2 b Sbase^2 + b
//
// with Pg in per-unit. The constant b term is a fixed cost per generator,
// charged regardless of output.
func costObjective(idx *Index, c *model.Case) nlp.Func {
	sbase := c.SbaseMW
	type term struct {
		pos int
		b   float64
	}
	var terms []term
	for _, bus := range c.Buses {
		if g, ok := c.Generators[bus]; ok {
			terms = append(terms, term{pos: idx.Pg(bus), b: g.CostB})
		}
	}
	return func(x, grad []float64) float64 {
		if grad != nil {
			zeroFill(grad)
		}
		cost := 0.0
		for _, t := range terms {
			pg := x[t.pos]
			cost += pg*t.b*sbase + pg*pg*t.b*sbase*sbase + t.b
			if grad != nil {
				grad[t.pos] = t.b*sbase + 2*pg*t.b*sbase*sbase
			}
		}
		return cost
	}
}

func zeroFill(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
