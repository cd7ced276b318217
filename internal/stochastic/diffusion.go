package stochastic

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WalkParams configures the drift-diffusion walker ensemble. Walkers
// start at X0 and follow the Euler-Maruyama update
//
//	x += vDrift*dt + sqrt(2*D*dt)*xi,  xi ~ N(0, 1)
//
// and are removed once they cross the absorbing wall at XAbs.
type WalkParams struct {
	Walkers int
	X0      float64
	VDrift  float64
	D       float64
	Dt      float64
	XAbs    float64
	TMax    float64 // snapshots are taken at t = 0, 1, ..., TMax
	Seed    uint64
}

// DefaultWalkParams matches the classroom setup.
func DefaultWalkParams() WalkParams {
	return WalkParams{
		Walkers: 10000,
		X0:      0,
		VDrift:  0.1,
		D:       1.5,
		Dt:      0.01,
		XAbs:    15,
		TMax:    40,
		Seed:    1,
	}
}

// Snapshot records the surviving ensemble at one integer time.
type Snapshot struct {
	T        float64
	Survive  float64 // surviving fraction of the initial ensemble
	Mean     float64
	Variance float64 // sample variance (ddof=1) of survivors
	Pos      []float64
}

// WalkResult holds the snapshot series of one ensemble run.
type WalkResult struct {
	Params    WalkParams
	Snapshots []Snapshot
}

// RunWalk propagates the ensemble and records a snapshot at every
// integer time up to TMax.
func RunWalk(par WalkParams) *WalkResult {
	src := rand.NewSource(par.Seed)
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	pos := make([]float64, par.Walkers)
	for i := range pos {
		pos[i] = par.X0
	}

	res := &WalkResult{Params: par}
	res.Snapshots = append(res.Snapshots, snapshot(0, pos, par.Walkers))

	sigma := math.Sqrt(2 * par.D * par.Dt)
	stepsPerUnit := int(math.Round(1 / par.Dt))

	for t := 1; float64(t) <= par.TMax; t++ {
		for s := 0; s < stepsPerUnit; s++ {
			alive := pos[:0]
			for _, x := range pos {
				x += par.VDrift*par.Dt + sigma*gauss.Rand()
				if x < par.XAbs {
					alive = append(alive, x)
				}
			}
			pos = alive
		}
		res.Snapshots = append(res.Snapshots, snapshot(float64(t), pos, par.Walkers))
	}

	return res
}

func snapshot(t float64, pos []float64, total int) Snapshot {
	s := Snapshot{
		T:       t,
		Survive: float64(len(pos)) / float64(total),
		Pos:     append([]float64(nil), pos...),
	}
	if len(pos) > 0 {
		s.Mean = stat.Mean(pos, nil)
	}
	if len(pos) > 1 {
		s.Variance = stat.Variance(pos, nil)
	}
	return s
}

// FreeDensity is the unbounded drift-diffusion density at time t,
// a Gaussian with mean x0 + v*t and variance 2*D*t.
func FreeDensity(x []float64, par WalkParams, t float64) []float64 {
	if t == 0 {
		return make([]float64, len(x))
	}
	return GaussianPDF(x, par.X0+par.VDrift*t, math.Sqrt(2*par.D*t))
}

// AbsorbedDensity is the drift-diffusion density in the presence of
// the absorbing wall, built by the image-charge construction: the free
// Gaussian minus a weighted image Gaussian reflected about the wall,
//
//	rho(x, t) = g(x; x0 + v*t, s)
//	          - exp(v*(xa - x0)/D) * g(x; 2*xa - x0 + v*t, s)
//
// clipped to zero beyond the wall.
func AbsorbedDensity(x []float64, par WalkParams, t float64) []float64 {
	out := make([]float64, len(x))
	if t == 0 {
		return out
	}

	s := math.Sqrt(2 * par.D * t)
	weight := math.Exp(par.VDrift * (par.XAbs - par.X0) / par.D)
	free := distuv.Normal{Mu: par.X0 + par.VDrift*t, Sigma: s}
	image := distuv.Normal{Mu: 2*par.XAbs - par.X0 + par.VDrift*t, Sigma: s}

	for i, xi := range x {
		if xi >= par.XAbs {
			continue
		}
		v := free.Prob(xi) - weight*image.Prob(xi)
		if v > 0 {
			out[i] = v
		}
	}
	return out
}
