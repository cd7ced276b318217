package calc

import (
	"math"
	"testing"
)

// Reference case: f(x) = arctan(x^3) at x0 = 1/3, with analytic
// derivative 3x^2 / (x^6 + 1).
func arctanCubed(x float64) float64 { return math.Atan(x * x * x) }

func arctanCubedPrime(x float64) float64 {
	return 3 * x * x / (math.Pow(x, 6) + 1)
}

func TestDiffMethodsConverge(t *testing.T) {
	x0 := 1.0 / 3.0
	exact := arctanCubedPrime(x0)

	tests := []struct {
		name string
		eval func(Func, float64, float64) float64
		h    float64
		tol  float64
	}{
		{"forward", ForwardDiff, 1e-6, 1e-5},
		{"central", CentralDiff, 1e-4, 1e-8},
		{"extrapolated", ExtrapolatedDiff, 1e-2, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.eval(arctanCubed, x0, tt.h)
			if err := math.Abs(got - exact); err > tt.tol {
				t.Errorf("error %.3e exceeds %.1e", err, tt.tol)
			}
		})
	}
}

func TestDiffErrorOrders(t *testing.T) {
	x0 := 1.0 / 3.0
	exact := arctanCubedPrime(x0)

	// Shrinking h by 10 should shrink the error by roughly 10^order,
	// evaluated well above the round-off floor.
	for _, m := range DiffMethods {
		h1, h2 := 1e-2, 1e-3
		e1 := RelError(m.Eval(arctanCubed, x0, h1), exact)
		e2 := RelError(m.Eval(arctanCubed, x0, h2), exact)

		gain := math.Log10(e1 / e2)
		if math.Abs(gain-float64(m.Order)) > 0.5 {
			t.Errorf("%s: observed order %.2f, want %d", m.Name, gain, m.Order)
		}
	}
}

func TestDiffSweepShape(t *testing.T) {
	x0 := 1.0 / 3.0
	s := DiffSweep(arctanCubed, arctanCubedPrime(x0), x0, 1e-10, 1.0, 100)

	if len(s.H) != 100 {
		t.Fatalf("axis length = %d, want 100", len(s.H))
	}
	if s.H[0] >= s.H[len(s.H)-1] {
		t.Error("sweep axis should ascend")
	}
	for _, m := range DiffMethods {
		if len(s.Errors[m.Name]) != 100 {
			t.Errorf("%s: missing error series", m.Name)
		}
	}
}
