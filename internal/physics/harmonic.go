package physics

import "github.com/numlab/physlab/internal/dynamo"

// Harmonic is the textbook oscillator x'' = -omega^2 x, used as a known
// reference system for integrator comparisons.
type Harmonic struct {
	Omega float64
}

func NewHarmonic() *Harmonic {
	return &Harmonic{Omega: 1.0}
}

func (h *Harmonic) StateDim() int { return 2 }

func (h *Harmonic) Derive(s dynamo.State, f float64, _ float64) dynamo.State {
	if len(s) < 2 {
		return make(dynamo.State, 2)
	}
	return dynamo.State{s[1], -h.Omega*h.Omega*s[0] + f}
}

func (h *Harmonic) Energy(s dynamo.State) float64 {
	if len(s) < 2 {
		return 0
	}
	x, p := s[0], s[1]
	return 0.5*p*p + 0.5*h.Omega*h.Omega*x*x
}

func (h *Harmonic) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }
