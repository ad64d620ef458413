package nlp

// Status is the categorical outcome of a solve attempt.
type Status int

const (
	StatusUnknown Status = iota
	// StatusOptimal means the iterate satisfies the equality constraints to
	// within the configured accuracy and the inner minimization converged.
	StatusOptimal
	// StatusInfeasible means the penalty on constraint violation was driven
	// to its ceiling without producing a feasible iterate.
	StatusInfeasible
	// StatusIterationLimit means the outer iteration budget ran out first.
	StatusIterationLimit
	// StatusSolverError means evaluation failed (panic, NaN blow-up) or the
	// inner minimizer could make no progress at all.
	StatusSolverError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusIterationLimit:
		return "maxIterations"
	case StatusSolverError:
		return "error"
	default:
		return "unknown"
	}
}

// Solution carries the termination status plus, when available, a full
// assignment of values to every decision variable. A non-optimal status
// with a non-nil X is a best-effort assignment: the last iterate reached
// before termination.
type Solution struct {
	Status       Status
	X            []float64
	Objective    float64
	MaxViolation float64
	Iterations   int
}

// IsOptimal reports whether the solve terminated at an optimal point.
func (s *Solution) IsOptimal() bool { return s.Status == StatusOptimal }

// HasValues reports whether any variable assignment is available.
func (s *Solution) HasValues() bool { return s != nil && len(s.X) > 0 }

// Value returns the solved value for variable index i and whether one is
// available. Out-of-range indices and value-less solutions report false.
func (s *Solution) Value(i int) (float64, bool) {
	if s == nil || i < 0 || i >= len(s.X) {
		return 0, false
	}
	return s.X[i], true
}
