package stochastic

import (
	"math"
	"testing"
)

func TestRunWalkSnapshotSeries(t *testing.T) {
	par := DefaultWalkParams()
	par.Walkers = 2000
	par.TMax = 10
	res := RunWalk(par)

	if len(res.Snapshots) != 11 {
		t.Fatalf("snapshots = %d, want 11", len(res.Snapshots))
	}
	if res.Snapshots[0].Survive != 1 {
		t.Errorf("initial survival = %.3f, want 1", res.Snapshots[0].Survive)
	}
	for i := 1; i < len(res.Snapshots); i++ {
		if res.Snapshots[i].Survive > res.Snapshots[i-1].Survive {
			t.Errorf("survival increased between t=%d and t=%d", i-1, i)
		}
	}
}

func TestRunWalkMatchesFreeTheory(t *testing.T) {
	// absorbing wall far away: the ensemble should track the free
	// Gaussian mean x0 + v*t and variance 2*D*t
	par := DefaultWalkParams()
	par.Walkers = 5000
	par.TMax = 10
	par.XAbs = 1e9
	res := RunWalk(par)

	s := res.Snapshots[10]
	wantMean := par.X0 + par.VDrift*10
	wantVar := 2 * par.D * 10

	if math.Abs(s.Mean-wantMean) > 0.2 {
		t.Errorf("mean = %.3f, want %.3f", s.Mean, wantMean)
	}
	if math.Abs(s.Variance-wantVar)/wantVar > 0.1 {
		t.Errorf("variance = %.3f, want %.3f", s.Variance, wantVar)
	}
}

func TestRunWalkAbsorption(t *testing.T) {
	par := DefaultWalkParams()
	par.Walkers = 3000
	par.TMax = 40
	res := RunWalk(par)

	last := res.Snapshots[len(res.Snapshots)-1]
	if last.Survive >= 1 {
		t.Error("no walkers absorbed after 40 time units")
	}
	for _, x := range last.Pos {
		if x >= par.XAbs {
			t.Fatalf("survivor at x=%.3f beyond the wall", x)
		}
	}
}

func TestFreeDensityMoments(t *testing.T) {
	par := DefaultWalkParams()
	n := 4001
	x := make([]float64, n)
	for i := range x {
		x[i] = -40 + float64(i)*0.02
	}

	rho := FreeDensity(x, par, 10)
	var norm, mean float64
	for i, r := range rho {
		norm += r * 0.02
		mean += x[i] * r * 0.02
	}
	if math.Abs(norm-1) > 1e-3 {
		t.Errorf("norm = %.4f, want 1", norm)
	}
	if math.Abs(mean-1) > 1e-2 {
		t.Errorf("mean = %.4f, want 1", mean)
	}
}

func TestAbsorbedDensityVanishesAtWall(t *testing.T) {
	par := DefaultWalkParams()
	x := []float64{0, 5, 10, par.XAbs, par.XAbs + 1}
	rho := AbsorbedDensity(x, par, 20)

	if rho[3] > 1e-9 || rho[4] != 0 {
		t.Errorf("density at/beyond wall = (%.2e, %.2e), want 0", rho[3], rho[4])
	}
	if rho[0] <= 0 {
		t.Error("density in the interior should be positive")
	}

	free := FreeDensity(x, par, 20)
	for i := range rho {
		if rho[i] > free[i]+1e-12 {
			t.Errorf("absorbed density exceeds free density at x=%.1f", x[i])
		}
	}
}

func TestDensitiesAtTimeZero(t *testing.T) {
	par := DefaultWalkParams()
	x := []float64{-1, 0, 1}
	for i, r := range FreeDensity(x, par, 0) {
		if r != 0 {
			t.Errorf("free density[%d] = %.3f at t=0, want 0", i, r)
		}
	}
	for i, r := range AbsorbedDensity(x, par, 0) {
		if r != 0 {
			t.Errorf("absorbed density[%d] = %.3f at t=0, want 0", i, r)
		}
	}
}
