package nlp

import "math"

// transform maps one bounded variable x to an unconstrained internal
// variable s, so the inner minimizer never has to know about bounds:
//
//	free:        x = s
//	boxed:       x = l + (u-l)(sin s + 1)/2
//	lower only:  x = l + s^2
//	upper only:  x = u - s^2
//
// The sine form lets a boxed variable sit exactly on either bound, which
// matters for bound-active optima.
type transform struct {
	lower, upper float64
}

func (t transform) hasLower() bool { return !math.IsInf(t.lower, -1) }
func (t transform) hasUpper() bool { return !math.IsInf(t.upper, 1) }

// toX maps internal s to the bounded variable value.
func (t transform) toX(s float64) float64 {
	switch {
	case t.hasLower() && t.hasUpper():
		return t.lower + (t.upper-t.lower)*(math.Sin(s)+1)/2
	case t.hasLower():
		return t.lower + s*s
	case t.hasUpper():
		return t.upper - s*s
	default:
		return s
	}
}

// dXdS is the chain-rule factor dx/ds at internal value s.
func (t transform) dXdS(s float64) float64 {
	switch {
	case t.hasLower() && t.hasUpper():
		return (t.upper - t.lower) / 2 * math.Cos(s)
	case t.hasLower():
		return 2 * s
	case t.hasUpper():
		return -2 * s
	default:
		return 1
	}
}

// toS inverts toX, clamping x into the bounds first.
func (t transform) toS(x float64) float64 {
	switch {
	case t.hasLower() && t.hasUpper():
		if t.upper == t.lower {
			return 0
		}
		u := 2*(x-t.lower)/(t.upper-t.lower) - 1
		u = math.Max(-1, math.Min(1, u))
		return math.Asin(u)
	case t.hasLower():
		return math.Sqrt(math.Max(0, x-t.lower))
	case t.hasUpper():
		return math.Sqrt(math.Max(0, t.upper-x))
	default:
		return x
	}
}
