package physics

import (
	"math"

	"github.com/numlab/physlab/internal/dynamo"
)

// SineDrive supplies the forcing term -Amplitude*sin(Omega*t).
type SineDrive struct {
	Amplitude float64
	Omega     float64
}

func (s *SineDrive) Force(_ dynamo.State, t float64) float64 {
	return -s.Amplitude * math.Sin(s.Omega*t)
}
