package calc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sweep holds the relative-error curves of a set of methods against a
// shared step-width axis, ready for log-log plotting.
type Sweep struct {
	H      []float64
	Errors map[string][]float64
	Orders map[string]int
}

// RelError is |(num - exact) / exact|.
func RelError(num, exact float64) float64 {
	return math.Abs((num - exact) / exact)
}

// DiffSweep evaluates all differentiation rules for f at x0 over num
// logarithmically spaced steps h in [hMin, hMax] and records the
// relative error against the analytic derivative value exact.
func DiffSweep(f Func, exact, x0, hMin, hMax float64, num int) *Sweep {
	s := &Sweep{
		H:      floats.LogSpan(make([]float64, num), hMin, hMax),
		Errors: make(map[string][]float64, len(DiffMethods)),
		Orders: make(map[string]int, len(DiffMethods)),
	}

	for _, m := range DiffMethods {
		errs := make([]float64, num)
		for i, h := range s.H {
			errs[i] = RelError(m.Eval(f, x0, h), exact)
		}
		s.Errors[m.Name] = errs
		s.Orders[m.Name] = m.Order
	}

	return s
}

// QuadSweep evaluates all quadrature rules for f over [a, b] with
// subinterval counts N logarithmically spaced in [nMin, nMax], and
// records the relative error against the analytic integral exact.
// The sweep axis is the stripe width h = (b-a)/N.
func QuadSweep(f Func, exact, a, b float64, nMin, nMax, num int) *Sweep {
	ns := floats.LogSpan(make([]float64, num), float64(nMin), float64(nMax))

	s := &Sweep{
		H:      make([]float64, num),
		Errors: make(map[string][]float64, len(QuadMethods)),
		Orders: make(map[string]int, len(QuadMethods)),
	}

	counts := make([]int, num)
	for i, nf := range ns {
		counts[i] = int(nf)
		if counts[i] < 1 {
			counts[i] = 1
		}
		s.H[i] = (b - a) / float64(counts[i])
	}

	for _, m := range QuadMethods {
		errs := make([]float64, num)
		for i, n := range counts {
			errs[i] = RelError(m.Eval(f, a, b, n), exact)
		}
		s.Errors[m.Name] = errs
		s.Orders[m.Name] = m.Order
	}

	return s
}

// Scaling returns the ideal c*h^order curve through the sweep axis,
// used to overlay expected convergence behaviour.
func (s *Sweep) Scaling(order int) []float64 {
	out := make([]float64, len(s.H))
	for i, h := range s.H {
		out[i] = math.Pow(h, float64(order))
	}
	return out
}
