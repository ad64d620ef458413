package nlp

import (
	"errors"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Settings controls the augmented-Lagrangian solve. The zero value of any
// field selects its default; the defaults are what the one-shot CLI runs
// with and what the accuracy contract in the tests assumes.
type Settings struct {
	// Accuracy is the feasibility and convergence tolerance.
	Accuracy float64
	// MaxOuterIterations bounds the multiplier-update loop.
	MaxOuterIterations int
	// InnerIterations bounds each L-BFGS subproblem.
	InnerIterations int
	// InitialPenalty, PenaltyGrowth and MaxPenalty shape the quadratic
	// penalty on constraint violation.
	InitialPenalty float64
	PenaltyGrowth  float64
	MaxPenalty     float64
}

const (
	defaultAccuracy       = 1e-8
	defaultMaxOuter       = 80
	defaultInnerIters     = 3000
	defaultInitialPenalty = 10
	defaultPenaltyGrowth  = 10
	defaultMaxPenalty     = 1e12
)

func (s Settings) withDefaults() Settings {
	if s.Accuracy == 0 {
		s.Accuracy = defaultAccuracy
	}
	if s.MaxOuterIterations == 0 {
		s.MaxOuterIterations = defaultMaxOuter
	}
	if s.InnerIterations == 0 {
		s.InnerIterations = defaultInnerIters
	}
	if s.InitialPenalty == 0 {
		s.InitialPenalty = defaultInitialPenalty
	}
	if s.PenaltyGrowth == 0 {
		s.PenaltyGrowth = defaultPenaltyGrowth
	}
	if s.MaxPenalty == 0 {
		s.MaxPenalty = defaultMaxPenalty
	}
	return s
}

func (s Settings) validate() error {
	if s.Accuracy < 0 || s.MaxOuterIterations < 0 || s.InnerIterations < 0 {
		return errors.New("settings must be non-negative")
	}
	if s.PenaltyGrowth != 0 && s.PenaltyGrowth <= 1 {
		return errors.New("PenaltyGrowth must be > 1")
	}
	return nil
}

// Solver minimizes an equality-constrained Model by the classic augmented
// Lagrangian scheme: bound constraints are folded away by smooth variable
// transforms, and each outer iteration minimizes
//
//	L(x) = f(x) - sum_j lambda_j c_j(x) + (rho/2) sum_j c_j(x)^2
//
// with L-BFGS, then updates the multipliers lambda_j <- lambda_j - rho c_j
// and grows rho while the violation is not shrinking.
type Solver struct {
	settings Settings
}

// NewSolver validates the settings and returns a ready solver.
func NewSolver(settings Settings) (*Solver, error) {
	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("nlp solver settings: %w", err)
	}
	return &Solver{settings: settings.withDefaults()}, nil
}

// Solve runs the model to termination. An error is returned only for a
// malformed model; every numerical outcome, including infeasibility and
// iteration exhaustion, is reported through Solution.Status with the last
// iterate attached best-effort.
func (sv *Solver) Solve(m *Model) (sol *Solution, err error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}

	// A panic inside a user callback is a solver error, not a crash. This
	// recover only covers the direct calls below; during Minimize the
	// callbacks run on goroutines the optimizer owns, so the adapters trap
	// their own panics and raise the panicked flag instead.
	defer func() {
		if r := recover(); r != nil {
			sol = &Solution{Status: StatusSolverError}
			err = nil
		}
	}()

	st := sv.settings
	n := len(m.Vars)
	meq := len(m.EqCons)

	trans := make([]transform, n)
	s0 := make([]float64, n)
	for i, v := range m.Vars {
		trans[i] = transform{lower: v.Lower, upper: v.Upper}
		s0[i] = trans[i].toS(v.Init)
	}

	al := &augLag{
		model:  m,
		trans:  trans,
		lambda: make([]float64, meq),
		rho:    st.InitialPenalty,
		x:      make([]float64, n),
		gx:     make([]float64, n),
		gbuf:   make([]float64, n),
		c:      make([]float64, meq),
	}

	problem := optimize.Problem{
		Func: al.value,
		Grad: al.gradient,
	}

	var (
		x            = make([]float64, n)
		c            = make([]float64, meq)
		prevViol     = math.Inf(1)
		prevObj      = math.NaN()
		haveIter     bool
		lastInnerErr string
	)

	best := &Solution{Status: StatusIterationLimit}
	for outer := 0; outer < st.MaxOuterIterations; outer++ {
		result, innerErr := optimize.Minimize(problem, s0, &optimize.Settings{
			GradientThreshold: st.Accuracy * 1e-2,
			MajorIterations:   st.InnerIterations,
		}, &optimize.LBFGS{})
		if al.panicked {
			if haveIter {
				best.Status = StatusSolverError
				return best, nil
			}
			return &Solution{Status: StatusSolverError}, nil
		}
		if result == nil {
			if haveIter {
				best.Status = StatusSolverError
				return best, nil
			}
			return &Solution{Status: StatusSolverError}, nil
		}
		// A line-search failure with a usable iterate is survivable: the
		// multiplier update below changes the subproblem. A stuck subproblem
		// is not silent either way, since an unchanged violation grows the
		// penalty until the MaxPenalty check terminates the solve.
		reportInnerError(&lastInnerErr, outer, innerErr)

		copy(s0, result.X)
		al.toPrimal(result.X, x)
		obj := m.Objective(x, nil)
		viol := 0.0
		for j, con := range m.EqCons {
			c[j] = con.F(x, nil)
			viol = math.Max(viol, math.Abs(c[j]))
		}

		best.X = append(best.X[:0], x...)
		best.Objective = obj
		best.MaxViolation = viol
		best.Iterations = outer + 1
		haveIter = true

		if math.IsNaN(obj) || math.IsNaN(viol) {
			best.Status = StatusSolverError
			return best, nil
		}

		converged := viol <= st.Accuracy &&
			!math.IsNaN(prevObj) &&
			math.Abs(obj-prevObj) <= st.Accuracy*(1+math.Abs(obj))
		if converged {
			best.Status = StatusOptimal
			return best, nil
		}

		// Multiplier update, then penalty growth if the violation is not
		// shrinking fast enough.
		for j := range al.lambda {
			al.lambda[j] -= al.rho * c[j]
		}
		if viol > 0.25*prevViol && viol > st.Accuracy {
			if al.rho >= st.MaxPenalty {
				best.Status = StatusInfeasible
				return best, nil
			}
			al.rho = math.Min(al.rho*st.PenaltyGrowth, st.MaxPenalty)
		}
		prevViol = viol
		prevObj = obj
	}

	best.Status = StatusIterationLimit
	return best, nil
}

// reportInnerError logs an inner solve failure, skipping repeats of the same
// message so a line-search failure recurring across outers appears once.
func reportInnerError(last *string, outer int, err error) {
	if err == nil {
		return
	}
	if err.Error() == *last {
		return
	}
	*last = err.Error()
	log.Printf("nlp: inner solve at outer iteration %d: %v", outer, err)
}

// augLag evaluates the augmented Lagrangian and its gradient in the
// transformed (unconstrained) coordinates. Minimize calls value and gradient
// from goroutines it owns, where a callback panic would escape every recover
// on the solver's own stack; the adapters trap it, set panicked, and hand the
// optimizer NaN so it stops early.
type augLag struct {
	model  *Model
	trans  []transform
	lambda []float64
	rho    float64

	panicked bool

	x    []float64 // primal point, reused across evaluations
	gx   []float64 // accumulated primal gradient
	gbuf []float64 // scratch gradient for one callback
	c    []float64 // constraint values
}

func (al *augLag) toPrimal(s, x []float64) {
	for i, t := range al.trans {
		x[i] = t.toX(s[i])
	}
}

func (al *augLag) value(s []float64) (v float64) {
	defer func() {
		if r := recover(); r != nil {
			al.panicked = true
			v = math.NaN()
		}
	}()
	al.toPrimal(s, al.x)
	v = al.model.Objective(al.x, nil)
	for j, con := range al.model.EqCons {
		cj := con.F(al.x, nil)
		v += -al.lambda[j]*cj + al.rho/2*cj*cj
	}
	return v
}

func (al *augLag) gradient(grad, s []float64) {
	defer func() {
		if r := recover(); r != nil {
			al.panicked = true
			for i := range grad {
				grad[i] = math.NaN()
			}
		}
	}()
	al.toPrimal(s, al.x)
	al.model.Objective(al.x, al.gx)
	for j, con := range al.model.EqCons {
		cj := con.F(al.x, al.gbuf)
		w := -al.lambda[j] + al.rho*cj
		for i := range al.gx {
			al.gx[i] += w * al.gbuf[i]
		}
	}
	for i, t := range al.trans {
		grad[i] = al.gx[i] * t.dXdS(s[i])
	}
}
