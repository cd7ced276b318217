package physics

import (
	"context"
	"math"
	"testing"

	"github.com/numlab/physlab/internal/dynamo"
	"github.com/numlab/physlab/internal/integrators"
)

func TestDoubleWellForce(t *testing.T) {
	d := NewDrivenDoubleWell()

	// At the undriven fixed points dV/dx = 0: 4x^3 - 2x + A = 0.
	// Check the force at x=0 is just -A.
	dx := d.Derive(dynamo.State{0, 0}, 0, 0)
	if dx[0] != 0 {
		t.Errorf("xdot at rest = %v, want 0", dx[0])
	}
	if math.Abs(dx[1]-(-d.A)) > 1e-15 {
		t.Errorf("pdot at origin = %v, want %v", dx[1], -d.A)
	}
}

func TestDoubleWellEnergyMinima(t *testing.T) {
	d := &DrivenDoubleWell{A: 0.2}

	// The two wells sit near x = +-1/sqrt(2); the deeper well is the
	// one the asymmetry term -A*x... with +A*x in H, the left well
	// (x<0) is lower for A>0.
	eLeft := d.Energy(dynamo.State{-0.73, 0})
	eRight := d.Energy(dynamo.State{0.69, 0})
	if eLeft >= eRight {
		t.Errorf("left well should be deeper: E(-0.73)=%v E(0.69)=%v", eLeft, eRight)
	}
	if d.Energy(dynamo.State{0, 0}) <= eLeft {
		t.Error("barrier top should lie above the wells")
	}
}

func TestUndrivenEnergyConservation(t *testing.T) {
	d := &DrivenDoubleWell{A: 0.2, B: 0, Omega: 1}
	sim := dynamo.New(d, integrators.NewRK4(), d.Drive())

	cfg := dynamo.Config{Dt: 0.01, Duration: 50.0, ValidateState: true}
	result, err := sim.Run(context.Background(), dynamo.State{1.0, 0.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.EnergyDrift > 1e-6 {
		t.Errorf("undriven well should conserve energy, drift = %.3e", result.EnergyDrift)
	}
}

func TestSineDrivePhase(t *testing.T) {
	s := &SineDrive{Amplitude: 0.1, Omega: 1.0}

	if f := s.Force(nil, 0); f != 0 {
		t.Errorf("drive at t=0 = %v, want 0", f)
	}
	if f := s.Force(nil, math.Pi/2); math.Abs(f+0.1) > 1e-15 {
		t.Errorf("drive at quarter period = %v, want -0.1", f)
	}
}

func TestStrobePeriod(t *testing.T) {
	d := &DrivenDoubleWell{A: 0.2, B: 0.1, Omega: 2.0}
	if math.Abs(d.Period()-math.Pi) > 1e-15 {
		t.Errorf("period = %v, want pi", d.Period())
	}
}
