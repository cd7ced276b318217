package calc

import (
	"math"
	"testing"
)

// Reference case: integrate cosh(2x) over [-pi/2, pi/3]; the
// antiderivative is sinh(2x)/2.
func cosh2x(x float64) float64 { return math.Cosh(2 * x) }

func cosh2xIntegral(a, b float64) float64 {
	return math.Sinh(2*b)/2 - math.Sinh(2*a)/2
}

func TestQuadMethodsConverge(t *testing.T) {
	a, b := -math.Pi/2, math.Pi/3
	exact := cosh2xIntegral(a, b)

	tests := []struct {
		name string
		eval func(Func, float64, float64, int) float64
		n    int
		tol  float64
	}{
		{"midpoint", MidpointInt, 1000, 1e-5},
		{"trapezoid", TrapezoidInt, 1000, 1e-5},
		{"simpson", SimpsonInt, 100, 1e-8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.eval(cosh2x, a, b, tt.n)
			if err := math.Abs(got - exact); err > tt.tol {
				t.Errorf("error %.3e exceeds %.1e", err, tt.tol)
			}
		})
	}
}

func TestQuadSingleStripe(t *testing.T) {
	// N=1 must degenerate cleanly to a single stripe of width b-a
	// instead of producing NaN.
	got := MidpointInt(cosh2x, 0, 1, 1)
	want := cosh2x(0.5)
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("midpoint N=1 = %v, want f(0.5) = %v", got, want)
	}

	if math.IsNaN(TrapezoidInt(cosh2x, 0, 1, 1)) {
		t.Error("trapezoid N=1 produced NaN")
	}
	if math.IsNaN(SimpsonInt(cosh2x, 0, 1, 1)) {
		t.Error("simpson N=1 produced NaN")
	}
}

func TestQuadErrorOrders(t *testing.T) {
	a, b := -math.Pi/2, math.Pi/3
	exact := cosh2xIntegral(a, b)

	for _, m := range QuadMethods {
		e1 := RelError(m.Eval(cosh2x, a, b, 10), exact)
		e2 := RelError(m.Eval(cosh2x, a, b, 100), exact)

		gain := math.Log10(e1 / e2)
		if math.Abs(gain-float64(m.Order)) > 0.5 {
			t.Errorf("%s: observed order %.2f, want %d", m.Name, gain, m.Order)
		}
	}
}

func TestSimpsonExactForCubics(t *testing.T) {
	// Simpson's rule integrates polynomials up to degree 3 exactly.
	cubic := func(x float64) float64 { return x*x*x - 2*x*x + x - 1 }
	got := SimpsonInt(cubic, 0, 2, 7)
	// x^4/4 - 2x^3/3 + x^2/2 - x evaluated at 2
	want := 4.0 - 16.0/3 + 2.0 - 2.0
	if math.Abs(got-want) > 1e-13 {
		t.Errorf("simpson on cubic = %v, want %v", got, want)
	}
}
