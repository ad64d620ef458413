package nlp

import (
	"errors"
	"fmt"
	"math"
)

// Func evaluates a scalar function of x. When grad is non-nil it must be
// filled with the full dense gradient (len(grad) == len(x), zeros included).
type Func func(x []float64, grad []float64) float64

// Variable is one continuous decision variable. Lower/Upper may be ±Inf;
// Init is the starting value handed to the solver (clamped into the bounds
// if it falls outside them).
type Variable struct {
	Name  string
	Lower float64
	Upper float64
	Init  float64
}

// Free returns an unbounded variable starting at 0.
func Free(name string) Variable {
	return Variable{Name: name, Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Bounded returns a variable with box bounds, starting at the midpoint.
func Bounded(name string, lower, upper float64) Variable {
	return Variable{Name: name, Lower: lower, Upper: upper, Init: (lower + upper) / 2}
}

// Constraint is a scalar equality constraint F(x) = 0.
type Constraint struct {
	Name string
	F    Func
}

// Model is a fully specified nonlinear program:
//
//	minimize  Objective(x)
//	subject to EqCons[j](x) = 0 for all j
//	and        Lower_i <= x_i <= Upper_i
//
// A Model is a plain value: build it once, hand it to Solver.Solve, discard.
// There is no shared registry and nothing in the model mutates during a solve.
type Model struct {
	Vars      []Variable
	EqCons    []Constraint
	Objective Func
}

// Validate rejects structurally broken models before any iteration runs.
func (m *Model) Validate() error {
	if m == nil {
		return errors.New("model is nil")
	}
	if len(m.Vars) == 0 {
		return errors.New("model has no variables")
	}
	if m.Objective == nil {
		return errors.New("model has no objective")
	}
	for i, v := range m.Vars {
		if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) {
			return fmt.Errorf("variable %q (index %d): NaN bound", v.Name, i)
		}
		if v.Lower > v.Upper {
			return fmt.Errorf("variable %q (index %d): lower bound %g > upper bound %g", v.Name, i, v.Lower, v.Upper)
		}
	}
	for j, c := range m.EqCons {
		if c.F == nil {
			return fmt.Errorf("constraint %q (index %d) has no function", c.Name, j)
		}
	}
	return nil
}
