package main

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/numlab/physlab/internal/dynamo"
	"github.com/numlab/physlab/internal/integrators"
	"github.com/numlab/physlab/internal/physics"
	"github.com/numlab/physlab/internal/quantum"
	"github.com/numlab/physlab/internal/viz"
)

const (
	stepsPerFrame = 8
	trailCap      = 4000
)

func newLiveSource(name string) (viz.Source, error) {
	switch name {
	case "well":
		return newWellSource(), nil
	case "evolve":
		return newEvolveSource()
	case "walk":
		return newWalkSource(), nil
	default:
		return nil, fmt.Errorf("no live view for experiment: %s", name)
	}
}

// wellSource animates the driven double well in the phase plane.
type wellSource struct {
	well   *physics.DrivenDoubleWell
	drive  dynamo.Drive
	integ  dynamo.Integrator
	state  dynamo.State
	t      float64
	trail  []struct{ x, p float64 }
	energy []float64
}

func newWellSource() *wellSource {
	well := physics.NewDrivenDoubleWell()
	well.A = tilt
	well.B = amplitude
	if omega != 0 {
		well.Omega = omega
	}
	s := &wellSource{
		well:  well,
		drive: well.Drive(),
		integ: integrators.NewRK4(),
	}
	s.Reset()
	return s
}

func (s *wellSource) Title() string { return "driven double well" }

func (s *wellSource) Reset() {
	s.state = dynamo.State{x0, p0}
	s.t = 0
	s.trail = s.trail[:0]
	s.energy = s.energy[:0]
}

func (s *wellSource) Advance() bool {
	for i := 0; i < stepsPerFrame; i++ {
		f := s.drive.Force(s.state, s.t)
		s.state = s.integ.Step(s.well, s.state, f, s.t, dt)
		s.t += dt
	}
	s.trail = append(s.trail, struct{ x, p float64 }{s.state[0], s.state[1]})
	if len(s.trail) > trailCap {
		s.trail = s.trail[len(s.trail)-trailCap:]
	}
	s.energy = append(s.energy, s.well.Energy(s.state))
	return true
}

func (s *wellSource) Window() (float64, float64, float64, float64) {
	return -1.8, 1.8, -1.8, 1.8
}

func (s *wellSource) Draw(f *viz.Frame) {
	for _, pt := range s.trail {
		f.Plot(pt.x, pt.p)
	}
}

func (s *wellSource) Stats() []viz.Stat {
	return []viz.Stat{
		{Label: "t", Value: fmt.Sprintf("%.2f", s.t)},
		{Label: "x", Value: fmt.Sprintf("%.4f", s.state[0])},
		{Label: "p", Value: fmt.Sprintf("%.4f", s.state[1])},
		{Label: "energy", Value: fmt.Sprintf("%.4f", s.well.Energy(s.state))},
		{Label: "amplitude", Value: fmt.Sprintf("%.3f", s.well.B)},
	}
}

func (s *wellSource) Series() []float64 { return s.energy }

// evolveSource animates a tunneling wave packet.
type evolveSource struct {
	spec   *quantum.Spectrum
	ev     *quantum.Evolution
	dx     float64
	t      float64
	rho    []float64
	peak   []float64
	rhoMax float64
}

func newEvolveSource() (*evolveSource, error) {
	x, dx := quantum.Discretize(-1.5, 1.5, 400)
	spec, err := quantum.Solve(hEff, x, quantum.AsymmetricDoubleWell(tilt))
	if err != nil {
		return nil, err
	}

	phi := quantum.Gaussian(x, packetX0, sigma, packetP0, hEff)
	s := &evolveSource{
		spec: spec,
		ev:   quantum.NewEvolution(spec, phi),
		dx:   dx,
	}
	s.Reset()
	return s, nil
}

func (s *evolveSource) Title() string { return "wave packet evolution" }

func (s *evolveSource) Reset() {
	s.t = 0
	s.peak = s.peak[:0]
	s.rho = quantum.Density(s.ev.At(0))
	s.rhoMax = 0
	for _, r := range s.rho {
		if r > s.rhoMax {
			s.rhoMax = r
		}
	}
	if s.rhoMax == 0 {
		s.rhoMax = 1
	}
}

func (s *evolveSource) Advance() bool {
	s.t += 0.05
	s.rho = quantum.Density(s.ev.At(s.t))
	peak := 0.0
	for _, r := range s.rho {
		if r > peak {
			peak = r
		}
	}
	s.peak = append(s.peak, peak)
	return true
}

func (s *evolveSource) Window() (float64, float64, float64, float64) {
	return s.spec.X[0], s.spec.X[len(s.spec.X)-1], 0, s.rhoMax * 1.2
}

func (s *evolveSource) Draw(f *viz.Frame) {
	f.Polyline(s.spec.X, s.rho)
}

func (s *evolveSource) Stats() []viz.Stat {
	return []viz.Stat{
		{Label: "t", Value: fmt.Sprintf("%.2f", s.t)},
		{Label: "norm", Value: fmt.Sprintf("%.6f", quantum.Norm(s.ev.At(s.t), s.dx))},
		{Label: "energy", Value: fmt.Sprintf("%.5f", s.ev.Energy)},
		{Label: "residual", Value: fmt.Sprintf("%.2e", s.ev.Residual)},
	}
}

func (s *evolveSource) Series() []float64 { return s.peak }

// walkSource animates the drift-diffusion walker histogram.
type walkSource struct {
	gauss    distuv.Normal
	pos      []float64
	total    int
	t        float64
	survival []float64
}

func newWalkSource() *walkSource {
	s := &walkSource{total: walkers}
	s.Reset()
	return s
}

func (s *walkSource) Title() string { return "drift-diffusion walkers" }

func (s *walkSource) Reset() {
	s.gauss = distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
	s.pos = make([]float64, s.total)
	s.t = 0
	s.survival = s.survival[:0]
}

func (s *walkSource) Advance() bool {
	sigma := math.Sqrt(2 * diffD * dt)
	for i := 0; i < stepsPerFrame; i++ {
		alive := s.pos[:0]
		for _, x := range s.pos {
			x += vDrift*dt + sigma*s.gauss.Rand()
			if x < xAbs {
				alive = append(alive, x)
			}
		}
		s.pos = alive
		s.t += dt
	}
	s.survival = append(s.survival, float64(len(s.pos))/float64(s.total))
	return len(s.pos) > 0 && s.t < tMax
}

func (s *walkSource) Window() (float64, float64, float64, float64) {
	return -20, xAbs + 2, 0, 0.3
}

func (s *walkSource) Draw(f *viz.Frame) {
	const bins = 60
	lo, hi, _, top := s.Window()
	w := (hi - lo) / bins

	counts := make([]float64, bins)
	for _, x := range s.pos {
		b := int((x - lo) / w)
		if b >= 0 && b < bins {
			counts[b]++
		}
	}

	norm := 1 / (float64(s.total) * w)
	for b, c := range counts {
		x := lo + (float64(b)+0.5)*w
		h := c * norm
		if h > top {
			h = top
		}
		f.Polyline([]float64{x, x}, []float64{0, h})
	}
	// absorbing wall
	f.Polyline([]float64{xAbs, xAbs}, []float64{0, top})
}

func (s *walkSource) Stats() []viz.Stat {
	mean := 0.0
	for _, x := range s.pos {
		mean += x
	}
	if len(s.pos) > 0 {
		mean /= float64(len(s.pos))
	}
	return []viz.Stat{
		{Label: "t", Value: fmt.Sprintf("%.2f", s.t)},
		{Label: "alive", Value: fmt.Sprintf("%d / %d", len(s.pos), s.total)},
		{Label: "mean", Value: fmt.Sprintf("%.3f", mean)},
		{Label: "drift", Value: fmt.Sprintf("%.2f", vDrift)},
	}
}

func (s *walkSource) Series() []float64 { return s.survival }
