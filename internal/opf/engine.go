package opf

import (
	"fmt"

	"acopf/internal/model"
	"acopf/internal/nlp"
)

// Engine bundles the model builder and the solver behind one Run call:
// case in, solved results out. It holds no state between runs.
type Engine struct {
	solver *nlp.Solver
}

// New returns an engine with the solver's default settings, which is what
// the one-shot CLI uses.
func New() (*Engine, error) {
	return NewWithSettings(nlp.Settings{})
}

// NewWithSettings lets the API server override accuracy and iteration
// budgets. Settings are validated up front so a misconfigured engine fails
// at startup, not mid-solve.
func NewWithSettings(settings nlp.Settings) (*Engine, error) {
	solver, err := nlp.NewSolver(settings)
	if err != nil {
		return nil, err
	}
	return &Engine{solver: solver}, nil
}

// BusResult holds the solved quantities for one bus. The Has flags report
// whether the solver returned a value; a failed solve leaves them all false
// and the reporter skips such rows silently.
type BusResult struct {
	Bus model.Bus

	PgMW  float64
	HasPg bool

	QgMVAr float64
	HasQg  bool

	VaRad float64
	HasVa bool

	Vpu  float64
	HasV bool
}

// FlowResult is the solved flow on one declared line, in physical units.
type FlowResult struct {
	From  model.Bus
	To    model.Bus
	PMW   float64
	QMVAr float64
	Has   bool
}

// Result is everything a solve produces.
type Result struct {
	CaseName string
	Status   nlp.Status

	// ObjectiveCost is the generation cost at the final iterate, in $.
	ObjectiveCost float64
	// MaxViolation is the largest equality-constraint residual, per-unit.
	MaxViolation float64
	Iterations   int

	Buses []BusResult
	Flows []FlowResult
}

// Solved reports whether the solver terminated at an optimal point.
func (r *Result) Solved() bool { return r.Status == nlp.StatusOptimal }

// Run builds the model for a case, solves it once, and extracts per-bus and
// per-line values. A malformed case or model is an error; a non-optimal
// termination is not, and whatever values the solver produced are carried
// through best-effort.
func (e *Engine) Run(c *model.Case) (*Result, error) {
	m, idx, err := Build(c)
	if err != nil {
		return nil, err
	}
	sol, err := e.solver.Solve(m)
	if err != nil {
		return nil, fmt.Errorf("solve %q: %w", c.Name, err)
	}

	res := &Result{
		CaseName:      c.Name,
		Status:        sol.Status,
		ObjectiveCost: sol.Objective,
		MaxViolation:  sol.MaxViolation,
		Iterations:    sol.Iterations,
	}

	sbase := c.SbaseMW
	for _, b := range c.Buses {
		row := BusResult{Bus: b}
		if v, ok := sol.Value(idx.Pg(b)); ok {
			row.PgMW, row.HasPg = v*sbase, true
		}
		if v, ok := sol.Value(idx.Qg(b)); ok {
			row.QgMVAr, row.HasQg = v*sbase, true
		}
		if v, ok := sol.Value(idx.Va(b)); ok {
			row.VaRad, row.HasVa = v, true
		}
		if v, ok := sol.Value(idx.V(b)); ok {
			row.Vpu, row.HasV = v, true
		}
		res.Buses = append(res.Buses, row)
	}
	for _, l := range c.Lines {
		flow := FlowResult{From: l.From, To: l.To}
		p, pok := sol.Value(idx.Pij(l.From, l.To))
		q, qok := sol.Value(idx.Qij(l.From, l.To))
		if pok && qok {
			flow.PMW, flow.QMVAr, flow.Has = p*sbase, q*sbase, true
		}
		res.Flows = append(res.Flows, flow)
	}
	return res, nil
}
