package physics

import (
	"math"

	"github.com/numlab/physlab/internal/dynamo"
)

// DrivenDoubleWell models a particle in the driven double-well potential
//
//	V(x, t) = x^4 - x^2 + x*(A + B*sin(omega*t))
//
// with dimensionless Hamiltonian H(x, p, t) = p^2/2 + V(x, t). The state
// vector is [x, p]. The time-dependent part of the force enters through
// a SineDrive so the same model serves the undriven (B=0) case.
type DrivenDoubleWell struct {
	A, B, Omega float64
}

func NewDrivenDoubleWell() *DrivenDoubleWell {
	return &DrivenDoubleWell{A: 0.2, B: 0.1, Omega: 1.0}
}

func (d *DrivenDoubleWell) StateDim() int { return 2 }

func (d *DrivenDoubleWell) Derive(s dynamo.State, f float64, _ float64) dynamo.State {
	if len(s) < 2 {
		return make(dynamo.State, 2)
	}
	x := s[0]
	return dynamo.State{s[1], -4*x*x*x + 2*x - d.A + f}
}

// Drive returns the sinusoidal forcing -B*sin(omega*t) belonging to this
// well's parameters.
func (d *DrivenDoubleWell) Drive() dynamo.Drive {
	return &SineDrive{Amplitude: d.B, Omega: d.Omega}
}

// Energy evaluates the autonomous (B=0) Hamiltonian, the quantity whose
// level sets are drawn as phase-space contours.
func (d *DrivenDoubleWell) Energy(s dynamo.State) float64 {
	if len(s) < 2 {
		return 0
	}
	x, p := s[0], s[1]
	return 0.5*p*p + x*x*x*x - x*x + d.A*x
}

// Period of the drive, the sampling interval of the stroboscopic section.
func (d *DrivenDoubleWell) Period() float64 {
	return 2 * math.Pi / d.Omega
}

func (d *DrivenDoubleWell) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (d *DrivenDoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B, "omega": d.Omega}
}

func (d *DrivenDoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "A":
		d.A = v
	case "B":
		d.B = v
	case "omega":
		if v == 0 {
			return dynamo.ErrParameterBounds
		}
		d.Omega = v
	}
	return nil
}

// ContourLevels are the energies whose level curves get overlaid on
// phase-space portraits of the well.
var ContourLevels = []float64{0.0, 0.05, 0.1, 0.25, 0.5, 0.75, 1.0, 1.25, 1.5}
